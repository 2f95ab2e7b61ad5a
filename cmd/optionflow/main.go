package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"optionflow/config"
	"optionflow/internal/deribit/collector"
	"optionflow/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "optionflow",
		Short:         "Weekly option writer/buyer flow dashboard for Deribit",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and refresh it periodically",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, func(ctx context.Context, c *collector.Collector) error {
				return c.Serve(ctx)
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "snapshot",
		Short: "Build one snapshot and print it as a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, func(ctx context.Context, c *collector.Collector) error {
				_, err := c.Snapshot(ctx, cmd.OutOrStdout())
				return err
			})
		},
	})

	return root
}

func run(parent context.Context, configPath string, fn func(context.Context, *collector.Collector) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// viper config
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	c, err := collector.New(cfg, log)
	if err != nil {
		log.Error("collector init failed", zap.Error(err))
		return err
	}
	defer c.Close()

	if err := fn(ctx, c); err != nil {
		log.Error("command failed", zap.Error(err))
		return err
	}
	return nil
}
