package summarize

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/press-monitor/internal/store"
	"github.com/jonathan/press-monitor/internal/types"
)

// CachedSummarizer wraps a Summarizer with the summary cache: a hit skips
// the model call entirely, and a miss writes through after generation.
type CachedSummarizer struct {
	cache store.SummaryCache
	inner Summarizer
}

// NewCached creates a cache-checking summarizer.
func NewCached(cache store.SummaryCache, inner Summarizer) *CachedSummarizer {
	return &CachedSummarizer{cache: cache, inner: inner}
}

// Model returns the wrapped summarizer's model identifier.
func (c *CachedSummarizer) Model() string {
	return c.inner.Model()
}

// SummarizeArticle returns the summary for an archived article, generating
// and caching it on a miss. A cache write failure does not discard the
// generated summary; it is logged and the text is returned anyway.
func (c *CachedSummarizer) SummarizeArticle(ctx context.Context, article *types.ArchivedArticle) (string, error) {
	cached, err := c.cache.Get(ctx, article.ID, c.inner.Model())
	if err != nil {
		return "", fmt.Errorf("checking summary cache: %w", err)
	}
	if cached != nil {
		return cached.Summary, nil
	}

	summary, err := c.inner.Summarize(ctx, article.Content)
	if err != nil {
		return "", err
	}

	putErr := c.cache.Put(ctx, &types.ArticleSummary{
		ContentID: article.ID,
		ModelName: c.inner.Model(),
		Summary:   summary,
		CreatedAt: time.Now().UTC(),
	})
	if putErr != nil {
		if errors.Is(putErr, store.ErrSummaryConflict) {
			// A different summary won the race. Keep the stored one so
			// repeated reads stay consistent.
			log.Printf("[SUMMARIZE] %v", putErr)
			if stored, getErr := c.cache.Get(ctx, article.ID, c.inner.Model()); getErr == nil && stored != nil {
				return stored.Summary, nil
			}
		} else {
			log.Printf("[SUMMARIZE] failed to cache summary for %s: %v", article.ID, putErr)
		}
	}

	return summary, nil
}

// Close closes the wrapped summarizer.
func (c *CachedSummarizer) Close() error {
	return c.inner.Close()
}
