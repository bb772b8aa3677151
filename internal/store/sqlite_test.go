package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/press-monitor/internal/types"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "monitor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_UpsertLookupTouch(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()
	first := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	second := first.Add(24 * time.Hour)

	miss, err := s.Lookup(ctx, "Acme", "hash1")
	require.NoError(t, err)
	assert.Nil(t, miss)

	rec := types.CandidateRecord{Title: "T", Link: "https://x.example/t", Summary: "S", Date: "2026-08-01"}
	rel, err := s.UpsertNew(ctx, "Acme", rec, "hash1", first)
	require.NoError(t, err)
	assert.NotZero(t, rel.ID)
	assert.Equal(t, "hash1", rel.ContentHash)
	assert.True(t, rel.FirstSeen.Equal(first))
	assert.True(t, rel.LastChecked.Equal(first))

	// Re-upserting the same key keeps the row and only advances last_checked.
	again, err := s.UpsertNew(ctx, "Acme", types.CandidateRecord{Title: "Changed"}, "hash1", second)
	require.NoError(t, err)
	assert.Equal(t, rel.ID, again.ID)
	assert.Equal(t, "T", again.Title)
	assert.True(t, again.FirstSeen.Equal(first))
	assert.True(t, again.LastChecked.Equal(second))

	third := second.Add(24 * time.Hour)
	require.NoError(t, s.Touch(ctx, again, third))

	got, err := s.Lookup(ctx, "Acme", "hash1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.FirstSeen.Equal(first))
	assert.True(t, got.LastChecked.Equal(third))
}

func TestSQLite_ListReleases(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := s.UpsertNew(ctx, "Acme", types.CandidateRecord{Title: "Old", Link: "l1"}, "h1", now.AddDate(0, 0, -30))
	require.NoError(t, err)
	_, err = s.UpsertNew(ctx, "Acme", types.CandidateRecord{Title: "Recent", Link: "l2"}, "h2", now)
	require.NoError(t, err)
	_, err = s.UpsertNew(ctx, "Globex", types.CandidateRecord{Title: "Other", Link: "l3"}, "h3", now)
	require.NoError(t, err)

	all, err := s.ListReleases(ctx, ReleaseFilters{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.NotEqual(t, "Old", all[0].Title) // newest first

	acme, err := s.ListReleases(ctx, ReleaseFilters{Company: "Acme", Days: 7})
	require.NoError(t, err)
	require.Len(t, acme, 1)
	assert.Equal(t, "Recent", acme[0].Title)
}

func TestSQLite_ArticlesAndSummaries(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()
	now := time.Now().UTC()

	rel, err := s.UpsertNew(ctx, "Acme", types.CandidateRecord{Title: "T", Link: "https://x.example/t"}, "h1", now)
	require.NoError(t, err)

	article := &types.ArchivedArticle{
		ID:             uuid.New(),
		PressReleaseID: rel.ID,
		CompanyName:    "Acme",
		Title:          "T",
		URL:            "https://x.example/t",
		Content:        "Body text",
		HTMLLength:     1234,
		ArchivedAt:     now,
	}
	require.NoError(t, s.SaveArticle(ctx, article))

	pending, err := s.ListUnsummarized(ctx, "model-a", "", 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, article.ID, pending[0].ID)
	assert.Equal(t, "Body text", pending[0].Content)

	summary := &types.ArticleSummary{
		ContentID: article.ID,
		ModelName: "model-a",
		Summary:   "- point",
		CreatedAt: now,
	}
	require.NoError(t, s.Put(ctx, summary))

	// Write-once semantics.
	require.NoError(t, s.Put(ctx, summary))
	conflicting := *summary
	conflicting.Summary = "- different"
	assert.ErrorIs(t, s.Put(ctx, &conflicting), ErrSummaryConflict)

	got, err := s.Get(ctx, article.ID, "model-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "- point", got.Summary)

	pending, err = s.ListUnsummarized(ctx, "model-a", "", 0)
	require.NoError(t, err)
	assert.Empty(t, pending)

	listings, err := s.ListSummaries(ctx, SummaryFilters{Company: "Acme"})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "T", listings[0].Title)
	assert.Equal(t, article.ID, listings[0].ContentID)
}
