package extract

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThamesWater_ExtractsArticleCards(t *testing.T) {
	html := `
	<html><body>
		<a class="Article-module__article__lWN7y" href="/media/incident-update">
			<h3 class="Typography-module__heading-4__exIrU">Supply restored in Oxford</h3>
			<time>20/03 13:30</time>
			<div class="BasicHtml-module__main__3BwiX"><p>Engineers have completed repairs.</p></div>
		</a>
		<a class="Article-module__article__lWN7y" href="https://www.thameswater.co.uk/media/other">
			<h3 class="Typography-module__heading-4__exIrU">Planned maintenance</h3>
		</a>
	</body></html>`

	records, err := (&ThamesWaterExtractor{}).Extract(mustParse(t, html), "https://www.thameswater.co.uk/about-us/newsroom")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Supply restored in Oxford", records[0].Title)
	assert.Equal(t, "https://www.thameswater.co.uk/media/incident-update", records[0].Link)
	assert.Equal(t, fmt.Sprintf("%d-03-20", time.Now().Year()), records[0].Date)
	assert.Equal(t, "Engineers have completed repairs.", records[0].Summary)

	assert.Equal(t, "Planned maintenance", records[1].Title)
	assert.Empty(t, records[1].Date)
}

func TestThamesWater_SkipsCardsWithoutTitle(t *testing.T) {
	html := `
	<html><body>
		<a class="Article-module__article__lWN7y" href="/media/untitled"></a>
	</body></html>`

	records, err := (&ThamesWaterExtractor{}).Extract(mustParse(t, html), "https://www.thameswater.co.uk")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNormalizeShortDate(t *testing.T) {
	year := time.Now().Year()

	assert.Equal(t, fmt.Sprintf("%d-12-05", year), normalizeShortDate("05/12 09:15"))
	// Full dates and free text pass through unchanged.
	assert.Equal(t, "2026-03-20", normalizeShortDate("2026-03-20"))
	assert.Equal(t, "20 March 2026", normalizeShortDate("20 March 2026"))
	assert.Equal(t, "", normalizeShortDate(""))
}
