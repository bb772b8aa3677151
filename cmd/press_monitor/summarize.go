package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/press-monitor/internal/summarize"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Generate summaries for archived articles that have none",
	Long:  "Backfill summaries: find archived articles with no summary for the configured model and summarize each one. Articles already summarized are never re-sent to the model.",
	RunE:  runSummarize,
}

var (
	summarizeConfigPath string
	summarizeCompany    string
	summarizeLimit      int
)

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeConfigPath, "config", "c", "config.json", "Path to config file")
	summarizeCmd.Flags().StringVar(&summarizeCompany, "company", "", "Only articles for the named company")
	summarizeCmd.Flags().IntVar(&summarizeLimit, "limit", 0, "Maximum articles to summarize")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(summarizeConfigPath)
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or 'api_key' in config)")
	}

	ctx := context.Background()

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	gemini, err := summarize.NewGemini(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to create summarizer: %w", err)
	}
	defer gemini.Close()

	cached := summarize.NewCached(db, gemini)

	articles, err := db.ListUnsummarized(ctx, gemini.Model(), summarizeCompany, summarizeLimit)
	if err != nil {
		return fmt.Errorf("failed to list unsummarized articles: %w", err)
	}

	if len(articles) == 0 {
		fmt.Fprintln(os.Stdout, "Nothing to summarize.")
		return nil
	}

	var done, failed int
	for i := range articles {
		article := &articles[i]
		if _, err := cached.SummarizeArticle(ctx, article); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Failed to summarize %s: %v\n", article.Title, err)
			continue
		}
		done++
		fmt.Fprintf(os.Stdout, "Summarized: %s - %s\n", article.CompanyName, article.Title)
	}

	fmt.Fprintf(os.Stdout, "Done: %d summarized, %d failed\n", done, failed)
	return nil
}
