package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"menu-fit/internal/metrics"
	"menu-fit/internal/shopping"
	"menu-fit/internal/storage"
)

func (c *cli) newExportCmd() *cobra.Command {
	var (
		dir       string
		toStdout  bool
		timestamp bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the weekly shopping list as plain text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := shopping.NewSampleList()
			if toStdout {
				if err := list.WriteExport(cmd.OutOrStdout()); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout())
				return err
			}

			logger, err := c.logger(false)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if dir == "" {
				dir = c.cfg.Export.Dir
			}
			exports, err := storage.NewExportStore(dir)
			if err != nil {
				return err
			}
			data := []byte(list.Export())
			var path string
			if timestamp {
				path, err = exports.SaveTimestamped(shopping.ExportFilename, time.Now(), data)
			} else {
				path, err = exports.Save(shopping.ExportFilename, data)
			}
			if err != nil {
				return err
			}

			store, err := c.openMetrics(logger)
			if err != nil {
				logger.Warn("usage metrics disabled", zap.Error(err))
			} else {
				defer store.Close()
			}
			metrics.NewRecorder(store, metrics.ChannelCLI, logger).ListExported(path)

			fmt.Fprintf(cmd.OutOrStdout(), "Lista exportada a %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory to write the list to (default export.dir)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the list instead of writing a file")
	cmd.Flags().BoolVar(&timestamp, "timestamp", false, "append the current time to the file name")
	return cmd
}
