// Package extract turns a fetched listing page into candidate press release
// records. Extraction strategies are named variants behind one contract, so a
// site with markup the default heuristics cannot read gets its own extractor
// without touching the rest of the pipeline.
package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/press-monitor/internal/types"
)

// Page is the parsed input handed to an extractor. Doc is the HTML tree;
// Raw keeps the original response body for variants that parse a non-HTML
// format such as an RSS feed.
type Page struct {
	Raw string
	Doc *goquery.Document
}

// ParsePage builds a Page from a raw response body.
func ParsePage(body string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, &Error{Variant: "", Message: "failed to parse document", Cause: err}
	}
	return &Page{Raw: body, Doc: doc}, nil
}

// Extractor maps a parsed page and its base URL to an ordered sequence of
// candidate records (document order, no ranking). Implementations must skip
// individual malformed items rather than fail the whole page, and must return
// an empty slice, not an error, when the page has no matching items.
type Extractor interface {
	// Name returns the registry identifier of this variant.
	Name() string
	// Extract returns the candidates found on the page. Relative links
	// beginning with "/" are resolved against baseURL before being returned.
	Extract(page *Page, baseURL string) ([]types.CandidateRecord, error)
}

// Error represents a page-level extraction failure. Per-item problems are
// handled by skipping the item and never surface as an Error.
type Error struct {
	Variant string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract error (%s): %s: %v", e.Variant, e.Message, e.Cause)
	}
	return fmt.Sprintf("extract error (%s): %s", e.Variant, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// resolveLink makes a listing link absolute. Links starting with "/" are
// joined to the scheme and host of the listing page; everything else passes
// through unchanged.
func resolveLink(link, baseURL string) string {
	if !strings.HasPrefix(link, "/") {
		return link
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return link
	}
	return base.Scheme + "://" + base.Host + link
}
