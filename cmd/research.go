package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/probelabs/deepscout/internal/report"
	"github.com/probelabs/deepscout/internal/runner"
)

func researchCmd() *cobra.Command {
	var (
		flagTopic  string
		flagPreset string
		flagSave   bool
	)

	cmd := &cobra.Command{
		Use:   "research",
		Short: "Run one research preset on a topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			topic, err := chooseTopic(flagTopic)
			if err != nil {
				return err
			}
			presetID, err := choosePreset(cfg, flagPreset)
			if err != nil {
				return err
			}

			history, err := openHistory(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			if history != nil {
				defer history.Close()
			}

			r := runner.New(cfg, runner.Events{
				OnStage: stagePrinter("  "),
			})

			fmt.Printf("Researching: %s\n", topic)
			results, err := r.Run(cmd.Context(), topic, []string{presetID})
			if err != nil {
				return err
			}
			saveRuns(history, topic, results)

			res := results[0]
			if !res.Success {
				return fmt.Errorf("research failed after %.1fs: %s", res.Duration.Seconds(), res.Error)
			}

			fmt.Println()
			fmt.Println(report.Panel(
				fmt.Sprintf("%s (%.1fs, %d chars)", res.ConfigName, res.Duration.Seconds(), res.ReportLength()),
				res.Report.Text,
			))

			if len(res.Report.Sources) > 0 {
				fmt.Println("\nSources:")
				for _, s := range res.Report.Sources {
					fmt.Printf("  - %s\n", s)
				}
			}

			if flagSave {
				path, err := report.SaveReport(cfg.Export.Dir, topic, res.Report.Text, time.Now())
				if err != nil {
					return err
				}
				fmt.Printf("\nReport saved to: %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flagTopic, "topic", "t", "", "research topic (interactive menu when omitted)")
	cmd.Flags().StringVarP(&flagPreset, "preset", "p", "", "preset id (interactive menu when omitted)")
	cmd.Flags().BoolVar(&flagSave, "save", false, "write the report to the export directory")
	return cmd
}
