package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/press-monitor/internal/types"
)

// ThamesWaterExtractor is a site-tuned variant for the Thames Water media
// centre, which renders each release as an anchor card with CSS-module
// hashed class names the default heuristics never match.
type ThamesWaterExtractor struct{}

// shortDatePattern matches the listing's abbreviated "20/03 13:30" stamps.
var shortDatePattern = regexp.MustCompile(`^\d{2}/\d{2} \d{2}:\d{2}`)

// Name implements Extractor.
func (e *ThamesWaterExtractor) Name() string { return "thameswater" }

// Extract implements Extractor.
func (e *ThamesWaterExtractor) Extract(page *Page, baseURL string) ([]types.CandidateRecord, error) {
	if page == nil || page.Doc == nil {
		return nil, &Error{Variant: e.Name(), Message: "nil page"}
	}

	items := page.Doc.Find("a.Article-module__article__lWN7y")

	records := make([]types.CandidateRecord, 0, items.Length())
	items.Each(func(_ int, item *goquery.Selection) {
		link, hasLink := item.Attr("href")
		title := strings.TrimSpace(item.Find("h3.Typography-module__heading-4__exIrU").First().Text())
		if title == "" || !hasLink || link == "" {
			return
		}

		date := strings.TrimSpace(item.Find("time").First().Text())
		summary := strings.TrimSpace(item.Find("div.BasicHtml-module__main__3BwiX p").First().Text())

		records = append(records, types.CandidateRecord{
			Title:   title,
			Link:    resolveLink(link, baseURL),
			Summary: summary,
			Date:    normalizeShortDate(date),
		})
	})

	return records, nil
}

// normalizeShortDate rewrites "DD/MM HH:MM" stamps to "YYYY-MM-DD", assuming
// the current year since the listing omits it. Anything else passes through
// unchanged.
func normalizeShortDate(date string) string {
	if !shortDatePattern.MatchString(date) {
		return date
	}
	parts := strings.SplitN(strings.Fields(date)[0], "/", 2)
	if len(parts) != 2 {
		return date
	}
	return fmt.Sprintf("%d-%s-%s", time.Now().Year(), parts[1], parts[0])
}
