package main

import (
	"go.uber.org/zap"

	"menu-fit/internal/metrics"
	"menu-fit/internal/storage"
	"menu-fit/internal/tui"
)

func (c *cli) runTUI() error {
	logger, err := c.logger(true)
	if err != nil {
		return err
	}
	defer logger.Sync()

	exports, err := storage.NewExportStore(c.cfg.Export.Dir)
	if err != nil {
		return err
	}

	// The planner works without metrics; a broken database only costs the
	// usage report.
	store, err := c.openMetrics(logger)
	if err != nil {
		logger.Warn("usage metrics disabled", zap.Error(err))
	} else {
		defer store.Close()
	}

	logger.Info("starting terminal UI", zap.String("export_dir", exports.Dir()))
	return tui.Run(tui.Options{
		Exports:  exports,
		Recorder: metrics.NewRecorder(store, metrics.ChannelTUI, logger),
		Logger:   logger,
	}, c.cfg.TUI.AltScreen)
}
