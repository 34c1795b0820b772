package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/probelabs/deepscout/internal/eval"
)

func evalCmd() *cobra.Command {
	var (
		flagSamples bool
		flagExport  bool
		flagLimit   int
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Score stored reports (or built-in samples) on quality dimensions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var inputs []eval.ReportInput
			if flagSamples {
				inputs = eval.SampleReports
			} else {
				history, err := openHistory(cfg)
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				if history == nil {
					return fmt.Errorf("history is disabled; use --samples")
				}
				defer history.Close()

				runs, err := history.Recent(flagLimit)
				if err != nil {
					return err
				}
				for _, r := range runs {
					if !r.Success || r.Report == "" {
						continue
					}
					preset, perr := cfg.Preset(r.PresetID)
					model := ""
					searchAPI := ""
					if perr == nil {
						model = preset.FinalReportModel
						searchAPI = string(preset.SearchAPI)
					}
					inputs = append(inputs, eval.ReportInput{
						ID:           r.ID,
						Topic:        r.Topic,
						Model:        model,
						SearchAPI:    searchAPI,
						Text:         r.Report,
						SourceCount:  r.SourceCount,
						ResearchTime: r.Duration.Seconds(),
					})
				}
				if len(inputs) == 0 {
					return fmt.Errorf("no stored reports to evaluate; run a research first or use --samples")
				}
			}

			evals := eval.Evaluate(inputs)

			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "REPORT\tMODEL\tOVERALL\tCOMPR\tSOURCES\tSTRUCT\tACCUR\tCLARITY")
			for _, e := range evals {
				fmt.Fprintf(w, "%s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
					e.ID, e.Model, e.Overall, e.Comprehensiveness, e.SourceDiversity,
					e.StructureQuality, e.Accuracy, e.Clarity)
			}
			w.Flush()

			if best := eval.Best(evals); best != nil {
				fmt.Printf("\nBest report: %s (%s), overall %.3f\n", best.ID, best.Model, best.Overall)
			}

			fmt.Println("\nModel performance:")
			for _, p := range eval.AnalyzeModels(evals) {
				fmt.Printf("  %-40s %.3f avg over %d report(s)  [%s]\n",
					p.Model, p.AverageScore, p.Reports, p.Recommendation)
			}

			if flagExport {
				path, err := eval.Export(cfg.Export.Dir, evals, time.Now())
				if err != nil {
					return err
				}
				fmt.Printf("\nEvaluation results exported to: %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagSamples, "samples", false, "score the built-in sample reports")
	cmd.Flags().BoolVar(&flagExport, "export", false, "write evaluation_results.json to the export directory")
	cmd.Flags().IntVar(&flagLimit, "limit", 20, "how many recent runs to score")
	return cmd
}
