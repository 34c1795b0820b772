package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/probelabs/deepscout/internal/config"
)

func presetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Inspect research configurations",
	}
	cmd.AddCommand(presetsListCmd())
	cmd.AddCommand(presetsShowCmd())
	return cmd
}

func presetsListCmd() *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List presets and whether they are runnable with current credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			all := cfg.AllPresets()
			ids := make([]string, 0, len(all))
			for id := range all {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			if jsonOutput {
				type entry struct {
					ID        string        `json:"id"`
					Available bool          `json:"available"`
					Preset    config.Preset `json:"preset"`
				}
				out := make([]entry, 0, len(ids))
				for _, id := range ids {
					out = append(out, entry{ID: id, Available: cfg.PresetAvailable(all[id]), Preset: all[id]})
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPROVIDER\tSEARCH\tITER\tUNITS\tAVAILABLE")
			for _, id := range ids {
				p := all[id]
				avail := "no"
				if cfg.PresetAvailable(p) {
					avail = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
					id, p.Name, p.Provider, p.SearchAPI, p.MaxIterations, p.MaxConcurrentUnits, avail)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func presetsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one preset in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			p, err := cfg.Preset(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", p.Name)
			fmt.Printf("  Provider:             %s\n", p.Provider)
			fmt.Printf("  Research model:       %s\n", p.ResearchModel)
			fmt.Printf("  Final report model:   %s\n", p.FinalReportModel)
			fmt.Printf("  Compression model:    %s\n", p.CompressionModel)
			fmt.Printf("  Summarization model:  %s\n", p.SummarizationModel)
			fmt.Printf("  Search API:           %s\n", p.SearchAPI)
			fmt.Printf("  Max iterations:       %d\n", p.MaxIterations)
			fmt.Printf("  Max concurrent units: %d\n", p.MaxConcurrentUnits)
			if cfg.PresetAvailable(p) {
				fmt.Println("  Available:            yes")
			} else {
				fmt.Println("  Available:            no (missing credentials)")
			}
			return nil
		},
	}
}
