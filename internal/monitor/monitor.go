// Package monitor runs the change-detection cycle: fetch a company's listing
// page, extract candidates, diff their fingerprints against the store, then
// archive, summarize, persist, and notify the new ones.
package monitor

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/press-monitor/internal/archive"
	"github.com/jonathan/press-monitor/internal/extract"
	"github.com/jonathan/press-monitor/internal/fetch"
	"github.com/jonathan/press-monitor/internal/fingerprint"
	"github.com/jonathan/press-monitor/internal/notify"
	"github.com/jonathan/press-monitor/internal/store"
	"github.com/jonathan/press-monitor/internal/summarize"
	"github.com/jonathan/press-monitor/internal/types"
)

// DefaultParallelism bounds concurrent company checks in CheckAll.
const DefaultParallelism = 4

// Company identifies one monitored press release page.
type Company struct {
	Name string
	URL  string
	// Extractor names the extraction variant; empty selects the default
	// heuristics.
	Extractor string
}

// Monitor drives check cycles against a store, notifier, and optional
// summarization pipeline.
type Monitor struct {
	db         store.DB
	notifier   notify.Notifier
	archiver   *archive.Archiver
	summarizer *summarize.CachedSummarizer
	opts       *fetch.Options
	useBrowser bool
	verbose    bool
}

// Config holds Monitor construction options. Summarizer may be nil, in which
// case new releases are persisted and notified without generated summaries.
type Config struct {
	Notifier   notify.Notifier
	Summarizer summarize.Summarizer
	Fetch      *fetch.Options
	UseBrowser bool
	Verbose    bool
}

// New creates a Monitor writing through db.
func New(db store.DB, config *Config) *Monitor {
	if config == nil {
		config = &Config{}
	}
	opts := config.Fetch
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	notifier := config.Notifier
	if notifier == nil {
		notifier = &notify.LogNotifier{}
	}

	m := &Monitor{
		db:       db,
		notifier: notifier,
		archiver: archive.New(db, &archive.Config{
			Fetch:      opts,
			UseBrowser: config.UseBrowser,
			Verbose:    config.Verbose,
		}),
		opts:       opts,
		useBrowser: config.UseBrowser,
		verbose:    config.Verbose,
	}
	if config.Summarizer != nil {
		m.summarizer = summarize.NewCached(db, config.Summarizer)
	}
	return m
}

// Check runs one cycle for one company. Fetch, parse, and extraction failures
// abort the cycle with no writes; archiving, summarization, and notification
// failures are logged and the cycle still persists every new release.
func (m *Monitor) Check(ctx context.Context, company Company) (*types.CheckReport, error) {
	extractor, err := extract.Get(company.Extractor)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", company.Name, err)
	}

	body, err := m.fetchListing(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", company.Name, err)
	}

	page, err := extract.ParsePage(body)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", company.Name, err)
	}

	candidates, err := extractor.Extract(page, company.URL)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", company.Name, err)
	}

	now := time.Now().UTC()
	report := &types.CheckReport{
		CompanyName: company.Name,
		CheckedAt:   now,
		Candidates:  len(candidates),
	}

	// Diff every candidate before writing anything new, so a store failure
	// mid-scan cannot leave a half-notified batch.
	var fresh []types.CandidateRecord
	var freshHashes []string
	for _, rec := range candidates {
		hash := fingerprint.Hash(rec)
		existing, err := m.db.Lookup(ctx, company.Name, hash)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", company.Name, err)
		}
		if existing != nil {
			if err := m.db.Touch(ctx, existing, now); err != nil {
				return nil, fmt.Errorf("checking %s: %w", company.Name, err)
			}
			report.Unchanged++
			continue
		}
		fresh = append(fresh, rec)
		freshHashes = append(freshHashes, hash)
	}

	if len(fresh) == 0 {
		return report, nil
	}

	report.Summaries = make(map[string]string)
	for idx, rec := range fresh {
		release, err := m.db.UpsertNew(ctx, company.Name, rec, freshHashes[idx], now)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", company.Name, err)
		}
		report.New = append(report.New, *release)

		article, err := m.archiver.Archive(ctx, release)
		if err != nil {
			log.Printf("[MONITOR] %s: failed to archive %s: %v", company.Name, release.Link, err)
			continue
		}
		if m.summarizer == nil {
			continue
		}
		summary, err := m.summarizer.SummarizeArticle(ctx, article)
		if err != nil {
			log.Printf("[MONITOR] %s: failed to summarize %s: %v", company.Name, release.Link, err)
			continue
		}
		report.Summaries[release.ContentHash] = summary
	}

	if err := m.notifier.Notify(ctx, company.Name, report.New, report.Summaries); err != nil {
		log.Printf("[MONITOR] %s: notification failed: %v", company.Name, err)
	} else {
		report.Notified = true
	}

	return report, nil
}

// CheckAll runs Check for every company with bounded parallelism. A failing
// company never stops the others; its slot in the returned reports is nil and
// its error is logged.
func (m *Monitor) CheckAll(ctx context.Context, companies []Company, parallelism int) []*types.CheckReport {
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}

	reports := make([]*types.CheckReport, len(companies))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for idx, company := range companies {
		g.Go(func() error {
			report, err := m.Check(gctx, company)
			if err != nil {
				log.Printf("[MONITOR] %v", err)
				return nil
			}
			reports[idx] = report
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

// fetchListing retrieves the company's listing page, falling back to headless
// rendering when the plain response looks like an unrendered shell.
func (m *Monitor) fetchListing(ctx context.Context, company Company) (string, error) {
	result, err := fetch.URL(ctx, company.URL, m.opts)
	if err != nil {
		return "", err
	}

	if m.useBrowser && fetch.ShouldUseBrowser(result.HTML) {
		rendered, browserErr := fetch.WithBrowser(ctx, company.URL, m.opts.Timeout, m.verbose)
		if browserErr != nil {
			log.Printf("[MONITOR] %s: browser rendering failed, using plain fetch: %v", company.Name, browserErr)
			return result.HTML, nil
		}
		return rendered, nil
	}

	return result.HTML, nil
}
