package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/press-monitor/internal/store"
)

var releasesCmd = &cobra.Command{
	Use:   "releases",
	Short: "List stored press releases",
	Long:  "List press releases recorded by past check cycles, newest first.",
	RunE:  runReleases,
}

var (
	releasesConfigPath string
	releasesCompany    string
	releasesDays       int
	releasesLimit      int
)

func init() {
	releasesCmd.Flags().StringVarP(&releasesConfigPath, "config", "c", "config.json", "Path to config file")
	releasesCmd.Flags().StringVar(&releasesCompany, "company", "", "Filter by company name")
	releasesCmd.Flags().IntVar(&releasesDays, "days", 0, "Only releases first seen within the last N days")
	releasesCmd.Flags().IntVar(&releasesLimit, "limit", 0, "Maximum rows to print")

	rootCmd.AddCommand(releasesCmd)
}

func runReleases(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(releasesConfigPath)
	if err != nil {
		return err
	}

	ctx := context.Background()

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	releases, err := db.ListReleases(ctx, store.ReleaseFilters{
		Company: releasesCompany,
		Days:    releasesDays,
		Limit:   releasesLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list releases: %w", err)
	}

	if len(releases) == 0 {
		fmt.Fprintln(os.Stdout, "No press releases stored.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FIRST SEEN\tCOMPANY\tDATE\tTITLE\tLINK")
	for _, rel := range releases {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			rel.FirstSeen.Format("2006-01-02"), rel.CompanyName, rel.Date, rel.Title, rel.Link)
	}
	return w.Flush()
}
