package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Acme Newsroom</title>
    <item>
      <title>Acme Launches Product</title>
      <link>https://acme.example/news/launch</link>
      <description>The new product is available today.</description>
      <pubDate>Mon, 10 Aug 2026 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title></title>
      <link>https://acme.example/news/untitled</link>
    </item>
    <item>
      <title>Relative Link Item</title>
      <link>/news/relative</link>
    </item>
  </channel>
</rss>`

func TestRSS_ExtractsFeedItems(t *testing.T) {
	page := &Page{Raw: sampleFeed}

	records, err := (&RSSExtractor{}).Extract(page, "https://acme.example/feed.xml")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Acme Launches Product", records[0].Title)
	assert.Equal(t, "https://acme.example/news/launch", records[0].Link)
	assert.Equal(t, "The new product is available today.", records[0].Summary)
	assert.Equal(t, "2026-08-10", records[0].Date)

	assert.Equal(t, "https://acme.example/news/relative", records[1].Link)
	assert.Empty(t, records[1].Date)
}

func TestRSS_InvalidFeed(t *testing.T) {
	page := &Page{Raw: "<html><body>not a feed</body></html>"}

	_, err := (&RSSExtractor{}).Extract(page, "https://acme.example/feed.xml")
	require.Error(t, err)

	var exErr *Error
	assert.ErrorAs(t, err, &exErr)
	assert.Equal(t, "rss", exErr.Variant)
}
