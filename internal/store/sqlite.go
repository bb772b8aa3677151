package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jonathan/press-monitor/internal/types"
)

// SQLiteStore implements DB on an embedded SQLite database file. It keeps
// separate read and write handles; the write handle is limited to a single
// connection to avoid SQLITE_BUSY under concurrent company cycles.
type SQLiteStore struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

var _ DB = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the database file at dbPath.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &SQLiteStore{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS press_releases (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			company_name TEXT NOT NULL,
			title        TEXT NOT NULL,
			link         TEXT NOT NULL,
			summary      TEXT NOT NULL DEFAULT '',
			date         TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL,
			first_seen   DATETIME NOT NULL,
			last_checked DATETIME NOT NULL,
			UNIQUE (company_name, content_hash)
		);
		CREATE INDEX IF NOT EXISTS idx_releases_first_seen ON press_releases(first_seen DESC);

		CREATE TABLE IF NOT EXISTS archived_articles (
			id               TEXT PRIMARY KEY,
			press_release_id INTEGER NOT NULL,
			company_name     TEXT NOT NULL,
			title            TEXT NOT NULL,
			url              TEXT NOT NULL,
			content          TEXT NOT NULL,
			html_length      INTEGER NOT NULL DEFAULT 0,
			archived_at      DATETIME NOT NULL,
			FOREIGN KEY (press_release_id) REFERENCES press_releases(id)
		);

		CREATE TABLE IF NOT EXISTS article_summaries (
			content_id TEXT NOT NULL,
			model_name TEXT NOT NULL,
			summary    TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			PRIMARY KEY (content_id, model_name),
			FOREIGN KEY (content_id) REFERENCES archived_articles(id)
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

// Close closes both handles.
func (s *SQLiteStore) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Lookup implements Store.
func (s *SQLiteStore) Lookup(ctx context.Context, company, contentHash string) (*types.PressRelease, error) {
	var rel types.PressRelease
	err := s.readDB.QueryRowContext(ctx,
		`SELECT id, company_name, title, link, summary, date, content_hash, first_seen, last_checked
		 FROM press_releases WHERE company_name = ? AND content_hash = ?`,
		company, contentHash,
	).Scan(&rel.ID, &rel.CompanyName, &rel.Title, &rel.Link, &rel.Summary, &rel.Date,
		&rel.ContentHash, &rel.FirstSeen, &rel.LastChecked)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("looking up release: %w", err)
	}
	return &rel, nil
}

// UpsertNew implements Store.
func (s *SQLiteStore) UpsertNew(ctx context.Context, company string, rec types.CandidateRecord, contentHash string, now time.Time) (*types.PressRelease, error) {
	_, err := s.writeDB.ExecContext(ctx,
		`INSERT INTO press_releases (company_name, title, link, summary, date, content_hash, first_seen, last_checked)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(company_name, content_hash) DO UPDATE SET last_checked = excluded.last_checked`,
		company, rec.Title, rec.Link, rec.Summary, rec.Date, contentHash, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("upserting release: %w", err)
	}

	rel, err := s.Lookup(ctx, company, contentHash)
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, fmt.Errorf("upserted release not found: %s/%s", company, contentHash)
	}
	return rel, nil
}

// Touch implements Store.
func (s *SQLiteStore) Touch(ctx context.Context, release *types.PressRelease, now time.Time) error {
	_, err := s.writeDB.ExecContext(ctx,
		`UPDATE press_releases SET last_checked = ? WHERE company_name = ? AND content_hash = ?`,
		now, release.CompanyName, release.ContentHash,
	)
	if err != nil {
		return fmt.Errorf("touching release: %w", err)
	}
	release.LastChecked = now
	return nil
}

// ListReleases implements Store.
func (s *SQLiteStore) ListReleases(ctx context.Context, filters ReleaseFilters) ([]types.PressRelease, error) {
	if filters.Limit <= 0 {
		filters.Limit = defaultListLimit
	}

	query := `SELECT id, company_name, title, link, summary, date, content_hash, first_seen, last_checked
		FROM press_releases WHERE 1=1`
	var args []any

	if filters.Company != "" {
		query += " AND company_name = ?"
		args = append(args, filters.Company)
	}
	if filters.Days > 0 {
		query += " AND first_seen >= ?"
		args = append(args, time.Now().AddDate(0, 0, -filters.Days))
	}

	query += " ORDER BY first_seen DESC LIMIT ?"
	args = append(args, filters.Limit)

	rows, err := s.readDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}
	defer rows.Close()

	var releases []types.PressRelease
	for rows.Next() {
		var rel types.PressRelease
		if err := rows.Scan(&rel.ID, &rel.CompanyName, &rel.Title, &rel.Link, &rel.Summary, &rel.Date,
			&rel.ContentHash, &rel.FirstSeen, &rel.LastChecked); err != nil {
			return nil, fmt.Errorf("scanning release: %w", err)
		}
		releases = append(releases, rel)
	}
	return releases, rows.Err()
}

// SaveArticle implements Store.
func (s *SQLiteStore) SaveArticle(ctx context.Context, article *types.ArchivedArticle) error {
	_, err := s.writeDB.ExecContext(ctx,
		`INSERT INTO archived_articles (id, press_release_id, company_name, title, url, content, html_length, archived_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		article.ID.String(), article.PressReleaseID, article.CompanyName, article.Title,
		article.URL, article.Content, article.HTMLLength, article.ArchivedAt,
	)
	if err != nil {
		return fmt.Errorf("saving article: %w", err)
	}
	return nil
}

// ListUnsummarized implements Store.
func (s *SQLiteStore) ListUnsummarized(ctx context.Context, modelName, company string, limit int) ([]types.ArchivedArticle, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT a.id, a.press_release_id, a.company_name, a.title, a.url, a.content, a.html_length, a.archived_at
		FROM archived_articles a
		LEFT JOIN article_summaries s ON s.content_id = a.id AND s.model_name = ?
		WHERE s.content_id IS NULL`
	args := []any{modelName}

	if company != "" {
		query += " AND a.company_name = ?"
		args = append(args, company)
	}

	query += " ORDER BY a.archived_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.readDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing unsummarized articles: %w", err)
	}
	defer rows.Close()

	var articles []types.ArchivedArticle
	for rows.Next() {
		var a types.ArchivedArticle
		var id string
		if err := rows.Scan(&id, &a.PressReleaseID, &a.CompanyName, &a.Title, &a.URL,
			&a.Content, &a.HTMLLength, &a.ArchivedAt); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parsing article id %q: %w", id, err)
		}
		a.ID = parsed
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// Get implements SummaryCache.
func (s *SQLiteStore) Get(ctx context.Context, contentID uuid.UUID, modelName string) (*types.ArticleSummary, error) {
	var sum types.ArticleSummary
	var id string
	err := s.readDB.QueryRowContext(ctx,
		`SELECT content_id, model_name, summary, created_at
		 FROM article_summaries WHERE content_id = ? AND model_name = ?`,
		contentID.String(), modelName,
	).Scan(&id, &sum.ModelName, &sum.Summary, &sum.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("getting summary: %w", err)
	}
	sum.ContentID = contentID
	return &sum, nil
}

// Put implements SummaryCache.
func (s *SQLiteStore) Put(ctx context.Context, summary *types.ArticleSummary) error {
	res, err := s.writeDB.ExecContext(ctx,
		`INSERT INTO article_summaries (content_id, model_name, summary, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(content_id, model_name) DO NOTHING`,
		summary.ContentID.String(), summary.ModelName, summary.Summary, summary.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("putting summary: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected > 0 {
		return nil
	}

	existing, err := s.Get(ctx, summary.ContentID, summary.ModelName)
	if err != nil {
		return err
	}
	if existing != nil && existing.Summary != summary.Summary {
		return fmt.Errorf("%w: content %s model %s", ErrSummaryConflict, summary.ContentID, summary.ModelName)
	}
	return nil
}

// ListSummaries implements SummaryCache.
func (s *SQLiteStore) ListSummaries(ctx context.Context, filters SummaryFilters) ([]SummaryListing, error) {
	if filters.Limit <= 0 {
		filters.Limit = defaultListLimit
	}

	query := `SELECT s.content_id, s.model_name, s.summary, s.created_at, a.title, a.company_name
		FROM article_summaries s
		JOIN archived_articles a ON a.id = s.content_id
		WHERE 1=1`
	var args []any

	if filters.Company != "" {
		query += " AND a.company_name = ?"
		args = append(args, filters.Company)
	}

	query += " ORDER BY s.created_at DESC LIMIT ?"
	args = append(args, filters.Limit)

	rows, err := s.readDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing summaries: %w", err)
	}
	defer rows.Close()

	var listings []SummaryListing
	for rows.Next() {
		var l SummaryListing
		var id string
		if err := rows.Scan(&id, &l.ModelName, &l.Summary, &l.CreatedAt, &l.Title, &l.CompanyName); err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parsing content id %q: %w", id, err)
		}
		l.ContentID = parsed
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
