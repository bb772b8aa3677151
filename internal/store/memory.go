package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/press-monitor/internal/types"
)

// MemoryStore is an in-process DB implementation. It backs tests and ad-hoc
// runs where persistence across processes is not needed.
type MemoryStore struct {
	mu        sync.Mutex
	nextID    int64
	releases  map[string]*types.PressRelease  // keyed by company + "\x00" + hash
	articles  map[uuid.UUID]*types.ArchivedArticle
	summaries map[string]*types.ArticleSummary // keyed by contentID + "\x00" + model
}

var _ DB = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		releases:  make(map[string]*types.PressRelease),
		articles:  make(map[uuid.UUID]*types.ArchivedArticle),
		summaries: make(map[string]*types.ArticleSummary),
	}
}

func releaseKey(company, contentHash string) string {
	return company + "\x00" + contentHash
}

func summaryKey(contentID uuid.UUID, modelName string) string {
	return contentID.String() + "\x00" + modelName
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

// Lookup implements Store.
func (s *MemoryStore) Lookup(_ context.Context, company, contentHash string) (*types.PressRelease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rel, ok := s.releases[releaseKey(company, contentHash)]
	if !ok {
		return nil, nil
	}
	copied := *rel
	return &copied, nil
}

// UpsertNew implements Store.
func (s *MemoryStore) UpsertNew(_ context.Context, company string, rec types.CandidateRecord, contentHash string, now time.Time) (*types.PressRelease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := releaseKey(company, contentHash)
	if existing, ok := s.releases[key]; ok {
		existing.LastChecked = now
		copied := *existing
		return &copied, nil
	}

	s.nextID++
	rel := &types.PressRelease{
		ID:          s.nextID,
		CompanyName: company,
		Title:       rec.Title,
		Link:        rec.Link,
		Summary:     rec.Summary,
		Date:        rec.Date,
		ContentHash: contentHash,
		FirstSeen:   now,
		LastChecked: now,
	}
	s.releases[key] = rel
	copied := *rel
	return &copied, nil
}

// Touch implements Store.
func (s *MemoryStore) Touch(_ context.Context, release *types.PressRelease, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.releases[releaseKey(release.CompanyName, release.ContentHash)]
	if !ok {
		return fmt.Errorf("release not found: %s/%s", release.CompanyName, release.ContentHash)
	}
	existing.LastChecked = now
	release.LastChecked = now
	return nil
}

// ListReleases implements Store.
func (s *MemoryStore) ListReleases(_ context.Context, filters ReleaseFilters) ([]types.PressRelease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if filters.Limit <= 0 {
		filters.Limit = defaultListLimit
	}
	var cutoff time.Time
	if filters.Days > 0 {
		cutoff = time.Now().AddDate(0, 0, -filters.Days)
	}

	var releases []types.PressRelease
	for _, rel := range s.releases {
		if filters.Company != "" && rel.CompanyName != filters.Company {
			continue
		}
		if filters.Days > 0 && rel.FirstSeen.Before(cutoff) {
			continue
		}
		releases = append(releases, *rel)
	}

	sort.Slice(releases, func(i, j int) bool {
		return releases[i].FirstSeen.After(releases[j].FirstSeen)
	})
	if len(releases) > filters.Limit {
		releases = releases[:filters.Limit]
	}
	return releases, nil
}

// SaveArticle implements Store.
func (s *MemoryStore) SaveArticle(_ context.Context, article *types.ArchivedArticle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *article
	s.articles[article.ID] = &copied
	return nil
}

// ListUnsummarized implements Store.
func (s *MemoryStore) ListUnsummarized(_ context.Context, modelName, company string, limit int) ([]types.ArchivedArticle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = defaultListLimit
	}

	var articles []types.ArchivedArticle
	for _, a := range s.articles {
		if company != "" && a.CompanyName != company {
			continue
		}
		if _, ok := s.summaries[summaryKey(a.ID, modelName)]; ok {
			continue
		}
		articles = append(articles, *a)
	}

	sort.Slice(articles, func(i, j int) bool {
		return articles[i].ArchivedAt.After(articles[j].ArchivedAt)
	})
	if len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

// Get implements SummaryCache.
func (s *MemoryStore) Get(_ context.Context, contentID uuid.UUID, modelName string) (*types.ArticleSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum, ok := s.summaries[summaryKey(contentID, modelName)]
	if !ok {
		return nil, nil
	}
	copied := *sum
	return &copied, nil
}

// Put implements SummaryCache.
func (s *MemoryStore) Put(_ context.Context, summary *types.ArticleSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := summaryKey(summary.ContentID, summary.ModelName)
	if existing, ok := s.summaries[key]; ok {
		if existing.Summary != summary.Summary {
			return fmt.Errorf("%w: content %s model %s", ErrSummaryConflict, summary.ContentID, summary.ModelName)
		}
		return nil
	}
	copied := *summary
	s.summaries[key] = &copied
	return nil
}

// ListSummaries implements SummaryCache.
func (s *MemoryStore) ListSummaries(_ context.Context, filters SummaryFilters) ([]SummaryListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if filters.Limit <= 0 {
		filters.Limit = defaultListLimit
	}

	var listings []SummaryListing
	for _, sum := range s.summaries {
		article, ok := s.articles[sum.ContentID]
		if !ok {
			continue
		}
		if filters.Company != "" && article.CompanyName != filters.Company {
			continue
		}
		listings = append(listings, SummaryListing{
			ArticleSummary: *sum,
			Title:          article.Title,
			CompanyName:    article.CompanyName,
		})
	}

	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	if len(listings) > filters.Limit {
		listings = listings[:filters.Limit]
	}
	return listings, nil
}
