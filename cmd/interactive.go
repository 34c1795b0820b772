package cmd

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/probelabs/deepscout/internal/config"
	"github.com/probelabs/deepscout/internal/report"
	"github.com/probelabs/deepscout/internal/runner"
)

type menuAction int

const (
	actionResearch menuAction = iota
	actionCompare
	actionPresets
	actionQuit
)

func interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Menu-driven session: research, compare and inspect presets in a loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			// Config edits made while the session is open take effect on
			// the next menu action.
			var mu sync.Mutex
			current := func() *config.Config {
				mu.Lock()
				defer mu.Unlock()
				return cfg
			}
			if _, statErr := os.Stat(cfgPath); statErr == nil {
				watcher, werr := config.NewWatcher(cfgPath)
				if werr == nil {
					watcher.OnChange(func(next *config.Config) {
						mu.Lock()
						cfg = next
						mu.Unlock()
						fmt.Println("\n(config reloaded)")
					})
					if werr := watcher.Start(); werr == nil {
						defer watcher.Stop()
					}
				}
			}

			fmt.Println("deepscout interactive session. Ctrl+C or Quit to leave.")
			for {
				action, err := promptSelect("What next?", []SelectOption[menuAction]{
					{Label: "Run research on a topic", Value: actionResearch},
					{Label: "Compare all available presets", Value: actionCompare},
					{Label: "List presets", Value: actionPresets},
					{Label: "Quit", Value: actionQuit},
				}, 0)
				if err != nil {
					return err
				}
				if action == actionQuit {
					return nil
				}

				if err := runInteractiveAction(cmd, current(), action); err != nil {
					fmt.Printf("Error: %v\n", err)
					cont, perr := promptConfirm("Continue the session?", true)
					if perr != nil || !cont {
						return nil
					}
				}
			}
		},
	}
}

func runInteractiveAction(cmd *cobra.Command, cfg *config.Config, action menuAction) error {
	switch action {
	case actionResearch:
		topic, err := chooseTopic("")
		if err != nil {
			return err
		}
		presetID, err := choosePreset(cfg, "")
		if err != nil {
			return err
		}

		history, err := openHistory(cfg)
		if err != nil {
			return err
		}
		if history != nil {
			defer history.Close()
		}

		r := runner.New(cfg, runner.Events{OnStage: stagePrinter("  ")})
		results, err := r.Run(cmd.Context(), topic, []string{presetID})
		if err != nil {
			return err
		}
		saveRuns(history, topic, results)

		res := results[0]
		if !res.Success {
			return fmt.Errorf("research failed: %s", res.Error)
		}
		fmt.Println(report.Panel(
			fmt.Sprintf("%s (%.1fs)", res.ConfigName, res.Duration.Seconds()),
			preview(res.Report.Text),
		))
		return nil

	case actionCompare:
		topic, err := chooseTopic("")
		if err != nil {
			return err
		}

		history, err := openHistory(cfg)
		if err != nil {
			return err
		}
		if history != nil {
			defer history.Close()
		}

		r := runner.New(cfg, runner.Events{
			OnStart: func(id string, p config.Preset) { fmt.Printf("Testing %s...\n", p.Name) },
		})
		results, err := r.Run(cmd.Context(), topic, cfg.AvailablePresets())
		if err != nil {
			return err
		}
		saveRuns(history, topic, results)

		analysis := runner.Analyze(results)
		fmt.Println(report.SummaryTable(results))
		fmt.Println(report.AnalysisSummary(analysis))

		if paths, err := report.ExportComparison(cfg.Export.Dir, topic, results, analysis, time.Now()); err == nil {
			fmt.Printf("Saved: %s\n", paths.JSON)
		}
		return nil

	case actionPresets:
		all := cfg.AllPresets()
		for _, id := range cfg.AvailablePresets() {
			p := all[id]
			fmt.Printf("  %-16s %s (%s)\n", id, p.Name, p.Provider)
		}
		return nil
	}
	return nil
}

func preview(text string) string {
	const max = 2000
	if len(text) <= max {
		return text
	}
	return text[:max] + "\n\n... (report continues)"
}
