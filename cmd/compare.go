package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/probelabs/deepscout/internal/config"
	"github.com/probelabs/deepscout/internal/report"
	"github.com/probelabs/deepscout/internal/runner"
)

func compareCmd() *cobra.Command {
	var (
		flagTopic    string
		flagPresets  []string
		flagNoExport bool
		flagYes      bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every available preset on one topic and compare the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			topic, err := chooseTopic(flagTopic)
			if err != nil {
				return err
			}

			presetIDs := flagPresets
			if len(presetIDs) == 0 {
				presetIDs = cfg.AvailablePresets()
			}
			for i, id := range presetIDs {
				presetIDs[i] = config.NormalizePresetID(id)
			}

			fmt.Printf("Comparing %d configurations on: %s\n", len(presetIDs), topic)
			if !flagYes {
				all := cfg.AllPresets()
				for _, id := range presetIDs {
					if p, ok := all[id]; ok {
						fmt.Printf("  - %s (%s)\n", p.Name, p.Provider)
					} else {
						fmt.Printf("  - %s (unknown preset)\n", id)
					}
				}
				ok, err := promptConfirm("Run the comparison?", true)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}

			history, err := openHistory(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			if history != nil {
				defer history.Close()
			}

			r := runner.New(cfg, runner.Events{
				OnStart: func(id string, p config.Preset) {
					fmt.Printf("\nTesting %s...\n", p.Name)
				},
				OnStage: stagePrinter("  "),
				OnFinished: func(res runner.Result) {
					if res.Success {
						fmt.Printf("  %s completed in %.1fs\n", res.ConfigName, res.Duration.Seconds())
					} else {
						fmt.Printf("  %s failed: %s\n", res.ConfigName, res.Error)
					}
				},
			})

			results, err := r.Run(cmd.Context(), topic, presetIDs)
			if err != nil {
				return err
			}
			saveRuns(history, topic, results)

			analysis := runner.Analyze(results)

			fmt.Println()
			fmt.Println(report.SummaryTable(results))
			fmt.Println()
			fmt.Println(report.AnalysisSummary(analysis))
			if previews := report.Previews(results, 3, 300); previews != "" {
				fmt.Println()
				fmt.Println(previews)
			}

			if !flagNoExport {
				paths, err := report.ExportComparison(cfg.Export.Dir, topic, results, analysis, time.Now())
				if err != nil {
					return err
				}
				fmt.Println("\nComparison results saved to:")
				fmt.Printf("  JSON:     %s\n", paths.JSON)
				fmt.Printf("  Markdown: %s\n", paths.Markdown)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flagTopic, "topic", "t", "", "research topic (interactive menu when omitted)")
	cmd.Flags().StringSliceVarP(&flagPresets, "preset", "p", nil, "preset ids to compare (default: all available)")
	cmd.Flags().BoolVar(&flagNoExport, "no-export", false, "skip writing JSON/Markdown artifacts")
	cmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "run without confirming")
	return cmd
}
