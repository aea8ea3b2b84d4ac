package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"transcriptor/internal/staging"
)

func newStagingCommand(ctx *commandContext) *cobra.Command {
	stagingCmd := &cobra.Command{
		Use:   "staging",
		Short: "Manage staged media",
	}

	stagingCmd.AddCommand(newStagingCleanCommand(ctx))

	return stagingCmd
}

func newStagingCleanCommand(ctx *commandContext) *cobra.Command {
	var maxAgeHours int

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove stale staged media",
		Long: `Remove staged media files left behind by crashed or killed runs.

Files younger than the age threshold are kept: they may belong to a
request still in flight.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			maxAge := time.Duration(maxAgeHours) * time.Hour
			if maxAgeHours < 0 {
				return fmt.Errorf("--max-age must not be negative")
			}
			if maxAgeHours == 0 {
				maxAge = time.Duration(cfg.Staging.MaxAgeHours) * time.Hour
			}

			result := staging.CleanStale(cmd.Context(), cfg.Paths.StagingDir, maxAge, logger)

			out := cmd.OutOrStdout()
			if result.Skipped {
				fmt.Fprintln(out, "Cleanup already running elsewhere; nothing done")
				return nil
			}
			if len(result.Removed) == 0 && len(result.Errors) == 0 {
				fmt.Fprintln(out, "No stale staged media to clean")
				return nil
			}
			if len(result.Errors) > 0 {
				fmt.Fprintf(out, "Removed %d staged files, %d errors\n", len(result.Removed), len(result.Errors))
				for _, e := range result.Errors {
					fmt.Fprintf(out, "  Error: %s: %v\n", e.Path, e.Error)
				}
				return nil
			}
			fmt.Fprintf(out, "Removed %d staged files\n", len(result.Removed))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxAgeHours, "max-age", 0, "Age threshold in hours (default: staging.max_age_hours from config)")
	return cmd
}
