package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/press-monitor/internal/types"
)

// PostgresStore implements DB on a PostgreSQL connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ DB = (*PostgresStore)(nil)

// ConnectPostgres establishes a connection pool and ensures the schema
// exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.init(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) init(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS press_releases (
			id           BIGSERIAL PRIMARY KEY,
			company_name TEXT NOT NULL,
			title        TEXT NOT NULL,
			link         TEXT NOT NULL,
			summary      TEXT NOT NULL DEFAULT '',
			date         TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL,
			first_seen   TIMESTAMPTZ NOT NULL,
			last_checked TIMESTAMPTZ NOT NULL,
			UNIQUE (company_name, content_hash)
		);

		CREATE TABLE IF NOT EXISTS archived_articles (
			id               UUID PRIMARY KEY,
			press_release_id BIGINT NOT NULL REFERENCES press_releases(id),
			company_name     TEXT NOT NULL,
			title            TEXT NOT NULL,
			url              TEXT NOT NULL,
			content          TEXT NOT NULL,
			html_length      INTEGER NOT NULL DEFAULT 0,
			archived_at      TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS article_summaries (
			content_id UUID NOT NULL REFERENCES archived_articles(id),
			model_name TEXT NOT NULL,
			summary    TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (content_id, model_name)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// Lookup implements Store.
func (s *PostgresStore) Lookup(ctx context.Context, company, contentHash string) (*types.PressRelease, error) {
	var rel types.PressRelease
	err := s.pool.QueryRow(ctx,
		`SELECT id, company_name, title, link, summary, date, content_hash, first_seen, last_checked
		 FROM press_releases WHERE company_name = $1 AND content_hash = $2`,
		company, contentHash,
	).Scan(&rel.ID, &rel.CompanyName, &rel.Title, &rel.Link, &rel.Summary, &rel.Date,
		&rel.ContentHash, &rel.FirstSeen, &rel.LastChecked)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up release: %w", err)
	}
	return &rel, nil
}

// UpsertNew implements Store.
func (s *PostgresStore) UpsertNew(ctx context.Context, company string, rec types.CandidateRecord, contentHash string, now time.Time) (*types.PressRelease, error) {
	var rel types.PressRelease
	err := s.pool.QueryRow(ctx,
		`INSERT INTO press_releases (company_name, title, link, summary, date, content_hash, first_seen, last_checked)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		 ON CONFLICT (company_name, content_hash) DO UPDATE SET last_checked = EXCLUDED.last_checked
		 RETURNING id, company_name, title, link, summary, date, content_hash, first_seen, last_checked`,
		company, rec.Title, rec.Link, rec.Summary, rec.Date, contentHash, now,
	).Scan(&rel.ID, &rel.CompanyName, &rel.Title, &rel.Link, &rel.Summary, &rel.Date,
		&rel.ContentHash, &rel.FirstSeen, &rel.LastChecked)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert release: %w", err)
	}
	return &rel, nil
}

// Touch implements Store.
func (s *PostgresStore) Touch(ctx context.Context, release *types.PressRelease, now time.Time) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE press_releases SET last_checked = $1 WHERE company_name = $2 AND content_hash = $3`,
		now, release.CompanyName, release.ContentHash,
	)
	if err != nil {
		return fmt.Errorf("failed to touch release: %w", err)
	}
	release.LastChecked = now
	return nil
}

// ListReleases implements Store.
func (s *PostgresStore) ListReleases(ctx context.Context, filters ReleaseFilters) ([]types.PressRelease, error) {
	if filters.Limit <= 0 {
		filters.Limit = defaultListLimit
	}

	query := `SELECT id, company_name, title, link, summary, date, content_hash, first_seen, last_checked
		FROM press_releases WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Company != "" {
		query += fmt.Sprintf(" AND company_name = $%d", argNum)
		args = append(args, filters.Company)
		argNum++
	}
	if filters.Days > 0 {
		query += fmt.Sprintf(" AND first_seen >= NOW() - ($%d * INTERVAL '1 day')", argNum)
		args = append(args, filters.Days)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY first_seen DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}
	defer rows.Close()

	var releases []types.PressRelease
	for rows.Next() {
		var rel types.PressRelease
		if err := rows.Scan(&rel.ID, &rel.CompanyName, &rel.Title, &rel.Link, &rel.Summary, &rel.Date,
			&rel.ContentHash, &rel.FirstSeen, &rel.LastChecked); err != nil {
			return nil, fmt.Errorf("failed to scan release: %w", err)
		}
		releases = append(releases, rel)
	}
	return releases, rows.Err()
}

// SaveArticle implements Store.
func (s *PostgresStore) SaveArticle(ctx context.Context, article *types.ArchivedArticle) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO archived_articles (id, press_release_id, company_name, title, url, content, html_length, archived_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		article.ID, article.PressReleaseID, article.CompanyName, article.Title,
		article.URL, article.Content, article.HTMLLength, article.ArchivedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}
	return nil
}

// ListUnsummarized implements Store.
func (s *PostgresStore) ListUnsummarized(ctx context.Context, modelName, company string, limit int) ([]types.ArchivedArticle, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT a.id, a.press_release_id, a.company_name, a.title, a.url, a.content, a.html_length, a.archived_at
		FROM archived_articles a
		LEFT JOIN article_summaries s ON s.content_id = a.id AND s.model_name = $1
		WHERE s.content_id IS NULL`
	args := []any{modelName}
	argNum := 2

	if company != "" {
		query += fmt.Sprintf(" AND a.company_name = $%d", argNum)
		args = append(args, company)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY a.archived_at DESC LIMIT $%d", argNum)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsummarized articles: %w", err)
	}
	defer rows.Close()

	var articles []types.ArchivedArticle
	for rows.Next() {
		var a types.ArchivedArticle
		if err := rows.Scan(&a.ID, &a.PressReleaseID, &a.CompanyName, &a.Title, &a.URL,
			&a.Content, &a.HTMLLength, &a.ArchivedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// Get implements SummaryCache.
func (s *PostgresStore) Get(ctx context.Context, contentID uuid.UUID, modelName string) (*types.ArticleSummary, error) {
	var sum types.ArticleSummary
	err := s.pool.QueryRow(ctx,
		`SELECT content_id, model_name, summary, created_at
		 FROM article_summaries WHERE content_id = $1 AND model_name = $2`,
		contentID, modelName,
	).Scan(&sum.ContentID, &sum.ModelName, &sum.Summary, &sum.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}
	return &sum, nil
}

// Put implements SummaryCache.
func (s *PostgresStore) Put(ctx context.Context, summary *types.ArticleSummary) error {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO article_summaries (content_id, model_name, summary, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (content_id, model_name) DO NOTHING`,
		summary.ContentID, summary.ModelName, summary.Summary, summary.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to put summary: %w", err)
	}
	if tag.RowsAffected() > 0 {
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
func (s *PostgresStore) ListSummaries(ctx context.Context, filters SummaryFilters) ([]SummaryListing, error) {
	if filters.Limit <= 0 {
		filters.Limit = defaultListLimit
	}

	query := `SELECT s.content_id, s.model_name, s.summary, s.created_at, a.title, a.company_name
		FROM article_summaries s
		JOIN archived_articles a ON a.id = s.content_id
		WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Company != "" {
		query += fmt.Sprintf(" AND a.company_name = $%d", argNum)
		args = append(args, filters.Company)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY s.created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer rows.Close()

	var listings []SummaryListing
	for rows.Next() {
		var l SummaryListing
		if err := rows.Scan(&l.ContentID, &l.ModelName, &l.Summary, &l.CreatedAt, &l.Title, &l.CompanyName); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
