package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/picsort/internal/cli"
	"github.com/Veraticus/picsort/internal/common"
)

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Browse past sorting runs",
		Long:  `Read the run ledger: every sorting run and the outcome of each image it processed.`,
	}

	cmd.AddCommand(listRunsCmd())
	cmd.AddCommand(showRunCmd())

	return cmd
}

func listRunsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.ListRuns(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, cli.NoteStyle.Render("No runs recorded yet. Use 'picsort sort --ledger' to record one."))
				return nil
			}
			fmt.Fprintln(out, cli.RenderRunsTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to show (0 for all)")
	return cmd
}

func showRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show the per-image results of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			run, err := store.GetRun(ctx, args[0])
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(fmt.Sprintf("no run with ID %q", args[0]), err)
				}
				return fmt.Errorf("failed to get run: %w", err)
			}

			results, err := store.GetResults(ctx, run.ID)
			if err != nil {
				return fmt.Errorf("failed to get results: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.RenderSummary(run, false))
			if len(results) > 0 {
				fmt.Fprintln(out, cli.RenderResultsTable(results))
			}
			return nil
		},
	}
}
