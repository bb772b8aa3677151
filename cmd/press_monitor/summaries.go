package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/press-monitor/internal/store"
)

var summariesCmd = &cobra.Command{
	Use:   "summaries",
	Short: "List generated article summaries",
	Long:  "List AI-generated summaries of archived press release articles, newest first.",
	RunE:  runSummaries,
}

var (
	summariesConfigPath string
	summariesCompany    string
	summariesLimit      int
)

func init() {
	summariesCmd.Flags().StringVarP(&summariesConfigPath, "config", "c", "config.json", "Path to config file")
	summariesCmd.Flags().StringVar(&summariesCompany, "company", "", "Filter by company name")
	summariesCmd.Flags().IntVar(&summariesLimit, "limit", 0, "Maximum rows to print")

	rootCmd.AddCommand(summariesCmd)
}

func runSummaries(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(summariesConfigPath)
	if err != nil {
		return err
	}

	ctx := context.Background()

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	listings, err := db.ListSummaries(ctx, store.SummaryFilters{
		Company: summariesCompany,
		Limit:   summariesLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list summaries: %w", err)
	}

	if len(listings) == 0 {
		fmt.Fprintln(os.Stdout, "No summaries stored.")
		return nil
	}

	for _, listing := range listings {
		fmt.Fprintf(os.Stdout, "=== %s - %s (%s, %s)\n%s\n\n",
			listing.CompanyName, listing.Title,
			listing.ModelName, listing.CreatedAt.Format("2006-01-02"),
			listing.Summary)
	}
	return nil
}
