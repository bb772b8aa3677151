package store

import (
	"context"
	"strings"
)

// Open selects a backend from the database URL: postgres:// and
// postgresql:// URLs connect over pgx, anything else is treated as a SQLite
// file path.
func Open(ctx context.Context, databaseURL string) (DB, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return ConnectPostgres(ctx, databaseURL)
	}
	return OpenSQLite(databaseURL)
}
