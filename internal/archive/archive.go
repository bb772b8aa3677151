// Package archive downloads press release article pages and persists their
// readable body text. The archived row's ID is the content reference that
// summaries are generated against.
package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/press-monitor/internal/fetch"
	"github.com/jonathan/press-monitor/internal/store"
	"github.com/jonathan/press-monitor/internal/types"
)

// Archiver fetches article pages and stores their extracted content.
type Archiver struct {
	store      store.Store
	opts       *fetch.Options
	useBrowser bool
	verbose    bool
}

// Config holds Archiver construction options.
type Config struct {
	Fetch *fetch.Options
	// UseBrowser enables headless rendering when the plain fetch of an
	// article returns an unrendered SPA shell.
	UseBrowser bool
	Verbose    bool
}

// New creates an Archiver writing through the given store.
func New(st store.Store, config *Config) *Archiver {
	if config == nil {
		config = &Config{}
	}
	opts := config.Fetch
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	return &Archiver{
		store:      st,
		opts:       opts,
		useBrowser: config.UseBrowser,
		verbose:    config.Verbose,
	}
}

// Archive downloads the article behind a press release and persists its
// extracted text. It returns the stored article, whose ID serves as the
// content reference for summarization.
func (a *Archiver) Archive(ctx context.Context, release *types.PressRelease) (*types.ArchivedArticle, error) {
	result, err := fetch.URL(ctx, release.Link, a.opts)
	if err != nil {
		return nil, fmt.Errorf("downloading article: %w", err)
	}

	content, err := fetch.ExtractMainText(result.HTML)
	if err != nil {
		return nil, fmt.Errorf("extracting article text: %w", err)
	}

	if a.useBrowser && fetch.ShouldUseBrowser(content) {
		html, browserErr := fetch.WithBrowser(ctx, release.Link, a.opts.Timeout, a.verbose)
		if browserErr == nil {
			result.HTML = html
			if rendered, textErr := fetch.ExtractMainText(html); textErr == nil {
				content = rendered
			}
		}
		// Rendering failures fall back to whatever the plain fetch produced.
	}

	article := &types.ArchivedArticle{
		ID:             uuid.New(),
		PressReleaseID: release.ID,
		CompanyName:    release.CompanyName,
		Title:          release.Title,
		URL:            release.Link,
		Content:        content,
		HTMLLength:     len(result.HTML),
		ArchivedAt:     time.Now().UTC(),
	}

	if err := a.store.SaveArticle(ctx, article); err != nil {
		return nil, fmt.Errorf("saving article: %w", err)
	}
	return article, nil
}
