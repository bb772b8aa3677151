// Package notify delivers batched new-release alerts. One message carries a
// company's whole batch for a cycle; delivery failure is the caller's to log
// and never blocks persistence.
package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/press-monitor/internal/types"
)

// Notifier delivers one alert for a company's batch of new releases.
// summaries maps a release's content hash to its generated summary; releases
// absent from the map are delivered without one.
type Notifier interface {
	Notify(ctx context.Context, company string, releases []types.PressRelease, summaries map[string]string) error
}

// LogNotifier writes alerts to the process log. It is the fallback when no
// email configuration is present.
type LogNotifier struct{}

var _ Notifier = (*LogNotifier)(nil)

// Notify implements Notifier.
func (n *LogNotifier) Notify(_ context.Context, company string, releases []types.PressRelease, _ map[string]string) error {
	log.Printf("[NOTIFY] %s: %d new press releases", company, len(releases))
	for _, rel := range releases {
		log.Printf("[NOTIFY]   %s - %s", rel.Title, rel.Link)
	}
	return nil
}

// buildSubject formats the alert subject line.
func buildSubject(count int) string {
	return fmt.Sprintf("[Press Release Alert] %d New Press Releases", count)
}

// buildBody formats the alert body: a numbered list with date, link, the
// listing summary, and the generated summary when one exists.
func buildBody(releases []types.PressRelease, summaries map[string]string) string {
	var sb strings.Builder
	sb.WriteString("New press releases detected:\n\n")

	for idx, rel := range releases {
		sb.WriteString(fmt.Sprintf("%d. %s\n", idx+1, rel.Title))
		sb.WriteString(fmt.Sprintf("   Date: %s\n", rel.Date))
		sb.WriteString(fmt.Sprintf("   Link: %s\n", rel.Link))
		if rel.Summary != "" {
			sb.WriteString(fmt.Sprintf("   Summary: %s\n", rel.Summary))
		}
		if generated, ok := summaries[rel.ContentHash]; ok && generated != "" {
			sb.WriteString(fmt.Sprintf("   AI Summary: %s\n", indentContinuations(generated)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// indentContinuations keeps multi-line summaries aligned under their label.
func indentContinuations(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), "\n", "\n   ")
}
