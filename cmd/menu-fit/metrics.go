package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"menu-fit/internal/metrics"
)

func (c *cli) newMetricsCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show daily usage and system health",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := c.logger(false)
			if err != nil {
				return err
			}
			defer logger.Sync()

			store, err := c.openMetrics(logger)
			if err != nil {
				return err
			}
			defer store.Close()

			usage, err := store.GetDailyUsage(cmd.Context(), days)
			if err != nil {
				return err
			}
			health := metrics.GetSysHealth(filepath.Dir(c.cfg.Database.Path))
			fmt.Fprintln(cmd.OutOrStdout(), metrics.FormatReport(usage, health))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "number of days to report")
	return cmd
}

func (c *cli) newMetricsCleanupCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "metrics-cleanup",
		Short: "Remove usage records older than --days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 0 {
				return fmt.Errorf("--days must not be negative, got %d", days)
			}
			logger, err := c.logger(false)
			if err != nil {
				return err
			}
			defer logger.Sync()

			store, err := c.openMetrics(logger)
			if err != nil {
				return err
			}
			defer store.Close()

			affected, err := store.Cleanup(cmd.Context(), days)
			if err != nil {
				return fmt.Errorf("cleanup failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully removed %d old usage records.\n", affected)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "keep records for the last N days")
	return cmd
}
