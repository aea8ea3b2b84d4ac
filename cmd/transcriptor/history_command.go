package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"transcriptor/internal/history"
	"transcriptor/internal/language"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past transcription requests",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			requests, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(requests) == 0 {
				fmt.Fprintln(out, "No requests recorded")
				return nil
			}

			rows := make([][]string, 0, len(requests))
			for _, request := range requests {
				detail := request.ArtifactName
				if request.Status == history.StatusFailed {
					detail = request.ErrorMessage
				}
				rows = append(rows, []string{
					request.CreatedAt.Local().Format("2006-01-02 15:04"),
					request.SourceName,
					request.Model,
					request.Format,
					string(request.Status),
					language.Display(request.DetectedLanguage),
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Source", "Model", "Format", "Status", "Language", "Result"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))

			summary, err := store.Summarize(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Total: %d requests, %d packaged, %d failed\n",
				summary.Total, summary.Packaged, summary.Failed)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of requests to show (0 for all)")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d requests\n", removed)
			return nil
		},
	}
}
