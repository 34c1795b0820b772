package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and search past research runs",
	}
	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historySearchCmd())
	cmd.AddCommand(historyShowCmd())
	return cmd
}

func historyListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			history, err := openHistory(cfg)
			if err != nil {
				return err
			}
			if history == nil {
				return fmt.Errorf("history is disabled in config")
			}
			defer history.Close()

			runs, err := history.Recent(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No runs recorded yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tWHEN\tTOPIC\tPRESET\tSTATUS\tDURATION")
			for _, r := range runs {
				status := "failed"
				if r.Success {
					status = "ok"
				}
				fmt.Fprintf(w, "%s\t%s\t%.40s\t%s\t%s\t%.1fs\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Topic, r.PresetID, status, r.Duration.Seconds())
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "how many runs to list")
	return cmd
}

func historySearchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over stored reports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			history, err := openHistory(cfg)
			if err != nil {
				return err
			}
			if history == nil {
				return fmt.Errorf("history is disabled in config")
			}
			defer history.Close()

			hits, err := history.Search(args[0], limit)
			if err != nil {
				return err
			}
			if len(hits) == 0 {
				fmt.Println("No matches.")
				return nil
			}

			for _, hit := range hits {
				fmt.Printf("%s  (%.2f)  %s\n", hit.Run.ID, hit.Score, hit.Run.Topic)
				fmt.Printf("    %s\n", hit.Snippet)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum matches")
	return cmd
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the stored report of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			history, err := openHistory(cfg)
			if err != nil {
				return err
			}
			if history == nil {
				return fmt.Errorf("history is disabled in config")
			}
			defer history.Close()

			run, err := history.Get(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Topic:    %s\n", run.Topic)
			fmt.Printf("Preset:   %s (%s)\n", run.PresetID, run.ConfigName)
			fmt.Printf("When:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Duration: %.1fs\n", run.Duration.Seconds())
			if !run.Success {
				fmt.Printf("Error:    %s\n", run.Error)
				return nil
			}
			fmt.Printf("Sources:  %d\n\n", run.SourceCount)
			fmt.Println(run.Report)
			return nil
		},
	}
}
