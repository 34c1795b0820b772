package cmd

import (
	"fmt"
	"strings"

	"github.com/probelabs/deepscout/internal/config"
	"github.com/probelabs/deepscout/internal/researcher"
	"github.com/probelabs/deepscout/internal/runner"
	"github.com/probelabs/deepscout/internal/store"
)

// suggestedTopics seed the interactive topic menu.
var suggestedTopics = []string{
	"The impact of AI on climate change research",
	"Quantum computing applications in cryptography",
	"Sustainable energy solutions for urban environments",
	"The impact of large language models on software development productivity",
}

const customTopicLabel = "Custom topic..."

// chooseTopic returns a topic from flags or the interactive menu.
func chooseTopic(flagTopic string) (string, error) {
	if flagTopic != "" {
		return flagTopic, nil
	}

	opts := make([]SelectOption[string], 0, len(suggestedTopics)+1)
	for _, t := range suggestedTopics {
		opts = append(opts, SelectOption[string]{Label: t, Value: t})
	}
	opts = append(opts, SelectOption[string]{Label: customTopicLabel, Value: ""})

	topic, err := promptSelect("Research topic", opts, 0)
	if err != nil {
		return "", err
	}
	if topic == "" {
		topic, err = promptString("Enter your research topic", "", "")
		if err != nil {
			return "", err
		}
	}
	if strings.TrimSpace(topic) == "" {
		return "", fmt.Errorf("no topic given")
	}
	return topic, nil
}

// choosePreset returns a preset id from flags or the interactive menu,
// limited to presets runnable with the configured credentials.
func choosePreset(cfg *config.Config, flagPreset string) (string, error) {
	if flagPreset != "" {
		if _, err := cfg.Preset(flagPreset); err != nil {
			return "", err
		}
		return config.NormalizePresetID(flagPreset), nil
	}

	ids := cfg.AvailablePresets()
	opts := make([]SelectOption[string], 0, len(ids))
	all := cfg.AllPresets()
	for _, id := range ids {
		p := all[id]
		opts = append(opts, SelectOption[string]{
			Label: fmt.Sprintf("%s (%s)", p.Name, p.Provider),
			Value: id,
		})
	}
	return promptSelect("Research configuration", opts, 0)
}

// openHistory opens the run store, or returns nil when history is disabled.
func openHistory(cfg *config.Config) (*store.History, error) {
	if cfg.History.Disabled {
		return nil, nil
	}
	path := cfg.History.Path
	if path == "" {
		path = config.DefaultHistoryPath()
	}
	return store.Open(config.ExpandHome(path))
}

// saveRuns persists a batch of results; history errors are reported but
// never fail the command.
func saveRuns(h *store.History, topic string, results []runner.Result) {
	if h == nil {
		return
	}
	for _, r := range results {
		run := store.Run{
			ID:         r.RunID,
			Topic:      topic,
			PresetID:   r.PresetID,
			ConfigName: r.ConfigName,
			Provider:   r.Provider,
			Duration:   r.Duration,
			Success:    r.Success,
			Error:      r.Error,
		}
		if r.Report != nil {
			run.Report = r.Report.Text
			run.SourceCount = len(r.Report.Sources)
		}
		if err := h.Save(run); err != nil {
			fmt.Printf("warning: could not save run %s: %v\n", r.RunID, err)
		}
	}
}

// stagePrinter prints pipeline stage transitions for one preset.
func stagePrinter(prefix string) func(string, researcher.Stage) {
	return func(presetID string, stage researcher.Stage) {
		fmt.Printf("%s[%s] %s...\n", prefix, presetID, stage)
	}
}
