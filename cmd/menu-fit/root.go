package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"menu-fit/internal/config"
	"menu-fit/internal/database"
	"menu-fit/internal/logging"
	"menu-fit/internal/metrics"
)

// cli carries what every subcommand needs once the config is loaded.
type cli struct {
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "menu-fit",
		Short: "Weekly healthy meal planner",
		Long: `menu-fit asks for your goal, dietary preferences and the ingredients you
have at home, then shows a seven day menu, a weekly planner to tick off
meals and a shopping list you can export.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v, err := config.New(c.cfgFile)
			if err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI()
		},
	}
	root.PersistentFlags().StringVarP(&c.cfgFile, "config", "c", "", "config file (default is ./config.yaml)")

	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Open the interactive terminal planner (default)",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.runTUI()
			},
		},
		c.newExportCmd(),
		c.newMetricsCmd(),
		c.newMetricsCleanupCmd(),
	)
	return root
}

// logger returns a logger writing to stderr, or to the configured log file
// when the terminal is owned by the UI.
func (c *cli) logger(toFile bool) (*zap.Logger, error) {
	opts := logging.Options{
		Level:       c.cfg.Logging.Level,
		Development: c.cfg.Logging.Development,
	}
	if toFile {
		opts.File = c.cfg.Logging.File
	}
	return logging.New(opts)
}

// openMetrics opens the usage database. Callers close the returned store.
func (c *cli) openMetrics(logger *zap.Logger) (*metrics.Store, error) {
	db, err := database.NewDB(c.cfg.Database.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return metrics.NewStore(db.SQL), nil
}
