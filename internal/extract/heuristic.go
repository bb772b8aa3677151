package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/press-monitor/internal/types"
)

// HeuristicExtractor is the default variant. It walks a cascade of selector
// patterns common to press release listings and accepts lower recall on
// unusual markup; sites that need better coverage register a tuned variant.
type HeuristicExtractor struct{}

// itemSelectors are tried in order; the first set that matches anything wins.
var itemSelectors = []string{
	".press-release-item, .news-item, article, .press-release",
	".news-listing article, .press-releases li, .news-container .item",
}

// Name implements Extractor.
func (e *HeuristicExtractor) Name() string { return "default" }

// Extract implements Extractor. A page with no recognizable listing items
// yields an empty slice, which callers treat as "no candidates this cycle".
func (e *HeuristicExtractor) Extract(page *Page, baseURL string) ([]types.CandidateRecord, error) {
	if page == nil || page.Doc == nil {
		return nil, &Error{Variant: e.Name(), Message: "nil page"}
	}

	items := findItems(page.Doc)

	records := make([]types.CandidateRecord, 0, items.Length())
	items.Each(func(_ int, item *goquery.Selection) {
		rec, ok := extractItem(item, baseURL)
		if !ok {
			// Malformed item: missing title or link. Skip it and keep
			// extracting the rest of the page.
			return
		}
		records = append(records, rec)
	})

	return records, nil
}

// findItems runs the selector cascade and falls back to any div whose class
// mentions news or press.
func findItems(doc *goquery.Document) *goquery.Selection {
	for _, selector := range itemSelectors {
		if items := doc.Find(selector); items.Length() > 0 {
			return items
		}
	}

	return doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, exists := s.Attr("class")
		if !exists {
			return false
		}
		class = strings.ToLower(class)
		return strings.Contains(class, "news") || strings.Contains(class, "press")
	})
}

// extractItem pulls one candidate out of a listing item. It returns false
// when the item lacks a title or link.
func extractItem(item *goquery.Selection, baseURL string) (types.CandidateRecord, bool) {
	title := strings.TrimSpace(item.Find("h2, h3, .title, a strong").First().Text())

	link, hasLink := item.Find("a").First().Attr("href")
	if item.Is("a") {
		// The item itself may be the anchor (card-style listings).
		if href, ok := item.Attr("href"); ok {
			link, hasLink = href, true
		}
	}

	if title == "" || !hasLink || link == "" {
		return types.CandidateRecord{}, false
	}

	date := strings.TrimSpace(item.Find(".date, time, .published, .timestamp").First().Text())
	summary := strings.TrimSpace(item.Find(".summary, .excerpt, .description, p").First().Text())

	return types.CandidateRecord{
		Title:   title,
		Link:    resolveLink(link, baseURL),
		Summary: summary,
		Date:    date,
	}, true
}
