package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/press-monitor/internal/monitor"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one check cycle for every configured company",
	Long:  "Fetch each company's press release page once, detect and persist new releases, and send notifications. Exits when the cycle completes.",
	RunE:  runCheck,
}

var (
	checkConfigPath string
	checkCompany    string
)

func init() {
	checkCmd.Flags().StringVarP(&checkConfigPath, "config", "c", "config.json", "Path to config file")
	checkCmd.Flags().StringVar(&checkCompany, "company", "", "Check only the named company")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(checkConfigPath)
	if err != nil {
		return err
	}

	ctx := context.Background()

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

	companies := monitorCompanies(cfg)
	if checkCompany != "" {
		companies = filterCompanies(companies, checkCompany)
		if len(companies) == 0 {
			return fmt.Errorf("company not found in config: %s", checkCompany)
		}
	}

	reports := m.CheckAll(ctx, companies, cfg.Parallelism)

	var total, failed int
	for idx, report := range reports {
		if report == nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: check failed\n", companies[idx].Name)
			continue
		}
		total += len(report.New)
		fmt.Fprintf(os.Stdout, "%s: %d candidates, %d new\n", report.CompanyName, report.Candidates, len(report.New))
	}
	fmt.Fprintf(os.Stdout, "Done: %d new press releases across %d companies (%d failed)\n", total, len(companies), failed)

	return nil
}

func filterCompanies(companies []monitor.Company, name string) []monitor.Company {
	var kept []monitor.Company
	for _, c := range companies {
		if c.Name == name {
			kept = append(kept, c)
		}
	}
	return kept
}
