// Package store persists press release observations, archived article
// content, and generated summaries. Handles are constructed once per process
// and passed in explicitly, so tests can substitute the in-memory
// implementation for the database-backed ones.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/press-monitor/internal/types"
)

// ErrSummaryConflict is returned by Put when a different summary already
// exists for the same (content, model) key. Summaries are write-once; a
// conflicting second write indicates a non-deterministic producer and is
// surfaced so the caller can log it.
var ErrSummaryConflict = errors.New("conflicting summary already stored for this content and model")

// Store persists press release observations and archived articles.
// Lookup and UpsertNew are keyed access on (company, content hash); no
// operation scans by content.
type Store interface {
	// Lookup returns the stored release for the key, or (nil, nil) when the
	// key has never been observed.
	Lookup(ctx context.Context, company, contentHash string) (*types.PressRelease, error)

	// UpsertNew records the first observation of a fingerprint, with
	// first_seen == last_checked == now. If the key already exists the
	// stored fields are left untouched and the existing row is returned
	// with last_checked advanced.
	UpsertNew(ctx context.Context, company string, rec types.CandidateRecord, contentHash string, now time.Time) (*types.PressRelease, error)

	// Touch advances last_checked on an existing row. Title, link, summary,
	// and date are never overwritten: the hash is the identity, and a
	// matched hash means the content is unchanged.
	Touch(ctx context.Context, release *types.PressRelease, now time.Time) error

	// ListReleases returns stored releases, newest first.
	ListReleases(ctx context.Context, filters ReleaseFilters) ([]types.PressRelease, error)

	// SaveArticle stores the archived body of a press release article.
	SaveArticle(ctx context.Context, article *types.ArchivedArticle) error

	// ListUnsummarized returns archived articles that have no summary for
	// the given model yet, newest first.
	ListUnsummarized(ctx context.Context, modelName, company string, limit int) ([]types.ArchivedArticle, error)

	Close() error
}

// SummaryCache persists generated summaries keyed by (content, model), so an
// expensive summarization call runs at most once per key.
type SummaryCache interface {
	// Get returns the cached summary, or (nil, nil) on a miss.
	Get(ctx context.Context, contentID uuid.UUID, modelName string) (*types.ArticleSummary, error)

	// Put stores a summary. A second Put with identical text is a no-op; a
	// second Put with different text returns ErrSummaryConflict and leaves
	// the stored summary untouched.
	Put(ctx context.Context, summary *types.ArticleSummary) error

	// ListSummaries returns stored summaries joined with their article's
	// title and company, newest first.
	ListSummaries(ctx context.Context, filters SummaryFilters) ([]SummaryListing, error)
}

// DB is the union of Store and SummaryCache backed by a single database.
type DB interface {
	Store
	SummaryCache
}

// ReleaseFilters narrows ListReleases output. Zero values mean "no filter";
// Limit falls back to a server-side default.
type ReleaseFilters struct {
	Company string
	// Days keeps only releases first seen within the last N days.
	Days  int
	Limit int
}

// SummaryFilters narrows ListSummaries output.
type SummaryFilters struct {
	Company string
	Limit   int
}

// SummaryListing is a summary row joined with its article metadata for
// display.
type SummaryListing struct {
	types.ArticleSummary
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
}

// defaultListLimit bounds unfiltered list queries.
const defaultListLimit = 50
