package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/press-monitor/internal/types"
)

func TestBuildSubject(t *testing.T) {
	assert.Equal(t, "[Press Release Alert] 1 New Press Releases", buildSubject(1))
	assert.Equal(t, "[Press Release Alert] 3 New Press Releases", buildSubject(3))
}

func TestBuildBody(t *testing.T) {
	releases := []types.PressRelease{
		{
			Title:       "Acme Acquires Widget Co",
			Date:        "2026-08-15",
			Link:        "https://acme.example/news/1",
			Summary:     "Acme announced the acquisition.",
			ContentHash: "hash1",
		},
		{
			Title:       "Q2 Results",
			Link:        "https://acme.example/news/2",
			ContentHash: "hash2",
		},
	}
	summaries := map[string]string{
		"hash1": "- deal closes Q4\n- all-cash",
	}

	body := buildBody(releases, summaries)

	assert.Contains(t, body, "New press releases detected:")
	assert.Contains(t, body, "1. Acme Acquires Widget Co")
	assert.Contains(t, body, "   Date: 2026-08-15")
	assert.Contains(t, body, "   Link: https://acme.example/news/1")
	assert.Contains(t, body, "   Summary: Acme announced the acquisition.")
	assert.Contains(t, body, "   AI Summary: - deal closes Q4\n   - all-cash")

	// The second release has no listing summary and no generated one.
	assert.Contains(t, body, "2. Q2 Results")
	assert.NotContains(t, body, "Summary: \n")
}

func TestBuildBody_NoSummaries(t *testing.T) {
	releases := []types.PressRelease{{Title: "T", Link: "L", ContentHash: "h"}}

	body := buildBody(releases, nil)
	assert.Contains(t, body, "1. T")
	assert.NotContains(t, body, "AI Summary")
}

func TestEmailNotifier_BuildMessage(t *testing.T) {
	n := NewEmailNotifier(EmailConfig{
		From: "monitor@example.com",
		To:   "alerts@example.com",
	})

	msg := string(n.buildMessage("subject line", "line one\nline two"))

	assert.Contains(t, msg, "From: monitor@example.com\r\n")
	assert.Contains(t, msg, "To: alerts@example.com\r\n")
	assert.Contains(t, msg, "Subject: subject line\r\n")
	assert.Contains(t, msg, "\r\n\r\nline one\r\nline two")
}

func TestEmailNotifier_EmptyBatchIsNoop(t *testing.T) {
	// No SMTP server configured; an empty batch must not try to connect.
	n := NewEmailNotifier(EmailConfig{SMTPHost: "smtp.invalid", SMTPPort: 465})

	err := n.Notify(context.Background(), "Acme", nil, nil)
	assert.NoError(t, err)
}
