package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLitePath(t *testing.T) {
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "monitor.db"))
	require.NoError(t, err)
	defer db.Close()

	_, ok := db.(*SQLiteStore)
	assert.True(t, ok)
}
