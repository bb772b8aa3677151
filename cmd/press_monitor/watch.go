package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the monitor continuously with a daily schedule",
	Long:  "Run one check cycle immediately, then check every configured company once a day at the configured time. Stops on SIGINT or SIGTERM.",
	RunE:  runWatch,
}

var watchConfigPath string

func init() {
	watchCmd.Flags().StringVarP(&watchConfigPath, "config", "c", "config.json", "Path to config file")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(watchConfigPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	m, cleanup, err := buildMonitor(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer cleanup()

	err = m.Watch(ctx, monitorCompanies(cfg), cfg.ScheduleTime, cfg.Parallelism)
	if err == context.Canceled {
		return nil
	}
	return err
}
