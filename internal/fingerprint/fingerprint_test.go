package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/press-monitor/internal/types"
)

func TestHash_Stable(t *testing.T) {
	rec := types.CandidateRecord{
		Title:   "Acme Announces Q3 Results",
		Link:    "https://acme.example/news/q3",
		Summary: "Revenue up 12%",
		Date:    "2026-08-01",
	}

	assert.Equal(t, Hash(rec), Hash(rec))
}

func TestHash_KnownValue(t *testing.T) {
	// md5("Title|https://x.example/a|Sum|2026-01-01")
	rec := types.CandidateRecord{
		Title:   "Title",
		Link:    "https://x.example/a",
		Summary: "Sum",
		Date:    "2026-01-01",
	}

	assert.Equal(t, "be650d3e7b83f8beb0073966276fe4ab", Hash(rec))
}

func TestHash_TrimsFields(t *testing.T) {
	plain := types.CandidateRecord{Title: "A", Link: "https://x.example", Summary: "S", Date: "2026-01-01"}
	padded := types.CandidateRecord{Title: " A ", Link: "https://x.example\n", Summary: "\tS", Date: " 2026-01-01 "}

	assert.Equal(t, Hash(plain), Hash(padded))
}

func TestHash_CaseSensitive(t *testing.T) {
	lower := types.CandidateRecord{Title: "title", Link: "https://x.example"}
	upper := types.CandidateRecord{Title: "Title", Link: "https://x.example"}

	assert.NotEqual(t, Hash(lower), Hash(upper))
}

func TestHash_SensitiveToEachField(t *testing.T) {
	base := types.CandidateRecord{Title: "T", Link: "L", Summary: "S", Date: "D"}

	variants := []types.CandidateRecord{
		{Title: "T2", Link: "L", Summary: "S", Date: "D"},
		{Title: "T", Link: "L2", Summary: "S", Date: "D"},
		{Title: "T", Link: "L", Summary: "S2", Date: "D"},
		{Title: "T", Link: "L", Summary: "S", Date: "D2"},
	}
	for _, v := range variants {
		assert.NotEqual(t, Hash(base), Hash(v))
	}
}

func TestHash_EmptyOptionalFields(t *testing.T) {
	rec := types.CandidateRecord{Title: "T", Link: "L"}

	hash := Hash(rec)
	assert.Len(t, hash, 32)
	assert.Regexp(t, "^[0-9a-f]{32}$", hash)
}
