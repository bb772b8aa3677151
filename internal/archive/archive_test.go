package archive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/press-monitor/internal/store"
	"github.com/jonathan/press-monitor/internal/types"
)

const articleHTML = `
<html><body>
	<nav>Navigation</nav>
	<article>
		<h1>Acme Acquires Widget Co</h1>
		<p>Acme today announced the acquisition of Widget Co.</p>
	</article>
</body></html>`

func TestArchive_SavesExtractedContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	st := store.NewMemoryStore()
	archiver := New(st, nil)

	release := &types.PressRelease{
		ID:          7,
		CompanyName: "Acme",
		Title:       "Acme Acquires Widget Co",
		Link:        server.URL + "/news/acquisition",
		ContentHash: "hash1",
	}

	article, err := archiver.Archive(context.Background(), release)
	require.NoError(t, err)
	assert.NotEqual(t, article.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, int64(7), article.PressReleaseID)
	assert.Equal(t, "Acme", article.CompanyName)
	assert.Equal(t, release.Link, article.URL)
	assert.Contains(t, article.Content, "announced the acquisition")
	assert.NotContains(t, article.Content, "Navigation")
	assert.Greater(t, article.HTMLLength, 0)

	// The article is persisted and shows up as pending summarization.
	pending, err := st.ListUnsummarized(context.Background(), "model-a", "", 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, article.ID, pending[0].ID)
}

func TestArchive_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	archiver := New(store.NewMemoryStore(), nil)

	_, err := archiver.Archive(context.Background(), &types.PressRelease{Link: server.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "downloading article")
}

func TestArchive_InvalidLink(t *testing.T) {
	archiver := New(store.NewMemoryStore(), nil)

	_, err := archiver.Archive(context.Background(), &types.PressRelease{Link: "not-a-url"})
	require.Error(t, err)
}
