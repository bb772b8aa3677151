// Package types defines the shared data structures passed between the
// monitor's extraction, storage, and notification layers.
package types

import (
	"time"

	"github.com/google/uuid"
)

// CandidateRecord is a press release parsed from a listing page but not yet
// checked against the store. Title and Link are required; Summary and Date
// default to the empty string when the page does not provide them, so every
// candidate carries a complete field tuple for fingerprinting.
type CandidateRecord struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Summary string `json:"summary,omitempty"`
	Date    string `json:"date,omitempty"`
}

// PressRelease is a persisted press release observation. Identity is the
// (CompanyName, ContentHash) pair: two observations with the same normalized
// fields map to the same row, and a change to any field produces a new row.
type PressRelease struct {
	ID          int64     `json:"id"`
	CompanyName string    `json:"company_name"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Summary     string    `json:"summary,omitempty"`
	Date        string    `json:"date,omitempty"`
	ContentHash string    `json:"content_hash"`
	FirstSeen   time.Time `json:"first_seen"`
	LastChecked time.Time `json:"last_checked"`
}

// ArchivedArticle holds the downloaded body of a press release article.
// Its ID is the content reference that summaries are keyed on.
type ArchivedArticle struct {
	ID             uuid.UUID `json:"id"`
	PressReleaseID int64     `json:"press_release_id"`
	CompanyName    string    `json:"company_name"`
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Content        string    `json:"content"`
	HTMLLength     int       `json:"html_length"`
	ArchivedAt     time.Time `json:"archived_at"`
}

// ArticleSummary is a generated summary for an archived article. A summary is
// written at most once per (ContentID, ModelName) pair and is immutable after.
type ArticleSummary struct {
	ContentID uuid.UUID `json:"content_id"`
	ModelName string    `json:"model_name"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// CheckReport describes the outcome of one check cycle for one company.
type CheckReport struct {
	CompanyName string         `json:"company_name"`
	CheckedAt   time.Time      `json:"checked_at"`
	Candidates  int            `json:"candidates"`
	Unchanged   int            `json:"unchanged"`
	New         []PressRelease `json:"new,omitempty"`
	// Summaries maps a new release's content hash to its generated summary.
	// A release missing from the map was persisted and notified without one.
	Summaries map[string]string `json:"summaries,omitempty"`
	Notified  bool              `json:"notified"`
}
