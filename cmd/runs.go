package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/store"
)

var (
	runsLimit  int
	runsStatus string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List past scan runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store.Driver, storeDSN())
		if err != nil {
			return eris.Wrap(err, "runs: open store")
		}
		defer func() { _ = st.Close() }()

		runs, err := st.ListRuns(ctx, store.RunFilter{
			Status: model.RunStatus(runsStatus),
			Limit:  runsLimit,
		})
		if err != nil {
			return eris.Wrap(err, "runs: list")
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		fmt.Printf("%-36s  %-9s  %5s  %7s  %-19s  %s\n", "ID", "STATUS", "URLS", "MATCHED", "STARTED", "SOURCE")
		for _, run := range runs {
			fmt.Printf("%-36s  %-9s  %5d  %7d  %-19s  %s\n",
				run.ID, run.Status, run.URLCount, run.MatchCount,
				run.StartedAt.Format("2006-01-02 15:04:05"), run.Source,
			)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "show at most N runs")
	runsCmd.Flags().StringVar(&runsStatus, "status", "", "filter by status (running, complete, failed)")

	rootCmd.AddCommand(runsCmd)
}
