package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/press-monitor/internal/config"
	"github.com/jonathan/press-monitor/internal/monitor"
	"github.com/jonathan/press-monitor/internal/notify"
	"github.com/jonathan/press-monitor/internal/store"
	"github.com/jonathan/press-monitor/internal/summarize"
)

// loadConfig reads, defaults, and validates the monitor configuration.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore connects to the configured database.
func openStore(ctx context.Context, cfg *config.Config) (store.DB, error) {
	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// buildMonitor wires the notifier and summarizer from the configuration.
// Without an API key the monitor runs with summarization disabled; the
// returned cleanup closes the summarizer when one was created.
func buildMonitor(ctx context.Context, cfg *config.Config, db store.DB) (*monitor.Monitor, func(), error) {
	var notifier notify.Notifier = &notify.LogNotifier{}
	if cfg.Email != nil {
		notifier = notify.NewEmailNotifier(*cfg.Email)
	}

	var summarizer summarize.Summarizer
	cleanup := func() {}
	if cfg.APIKey != "" {
		gemini, err := summarize.NewGemini(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create summarizer: %w", err)
		}
		summarizer = gemini
		cleanup = func() { _ = gemini.Close() }
	} else {
		fmt.Fprintln(os.Stderr, "Warning: GEMINI_API_KEY not set, summarization disabled")
	}

	m := monitor.New(db, &monitor.Config{
		Notifier:   notifier,
		Summarizer: summarizer,
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})
	return m, cleanup, nil
}

// monitorCompanies converts configured companies to monitor inputs.
func monitorCompanies(cfg *config.Config) []monitor.Company {
	companies := make([]monitor.Company, 0, len(cfg.Companies))
	for _, c := range cfg.Companies {
		companies = append(companies, monitor.Company{
			Name:      c.Name,
			URL:       c.URL,
			Extractor: c.Extractor,
		})
	}
	return companies
}
