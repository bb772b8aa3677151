package extract

import (
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/jonathan/press-monitor/internal/types"
)

// RSSExtractor handles press centres that publish their releases as an RSS
// or Atom feed instead of an HTML listing. Point the company URL at the feed
// and select this variant.
type RSSExtractor struct{}

// Name implements Extractor.
func (e *RSSExtractor) Name() string { return "rss" }

// Extract implements Extractor. It parses Page.Raw as a feed; feed items
// without a title or link are skipped.
func (e *RSSExtractor) Extract(page *Page, baseURL string) ([]types.CandidateRecord, error) {
	if page == nil {
		return nil, &Error{Variant: e.Name(), Message: "nil page"}
	}

	feed, err := gofeed.NewParser().ParseString(page.Raw)
	if err != nil {
		return nil, &Error{Variant: e.Name(), Message: "failed to parse feed", Cause: err}
	}

	records := make([]types.CandidateRecord, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}

		date := ""
		if item.PublishedParsed != nil {
			date = item.PublishedParsed.Format("2006-01-02")
		} else if item.Published != "" {
			date = strings.TrimSpace(item.Published)
		}

		records = append(records, types.CandidateRecord{
			Title:   title,
			Link:    resolveLink(link, baseURL),
			Summary: strings.TrimSpace(item.Description),
			Date:    date,
		})
	}

	return records, nil
}
