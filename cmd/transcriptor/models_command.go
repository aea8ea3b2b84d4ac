package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"transcriptor/internal/transcribe"
)

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "models",
		Short:       "List the supported Whisper models",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			models := transcribe.Models()
			rows := make([][]string, 0, len(models))
			for _, model := range models {
				rows = append(rows, []string{model.ID, model.Label, model.Parameters, model.Tradeoff})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Name", "Parameters", "Tradeoff"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}
