// Package fingerprint computes the deduplication identity of a candidate
// record. The hash is stable across runs: the same normalized field tuple
// always produces the same hex digest, and any field change produces a
// different one. It is an identity key, not an integrity check.
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/jonathan/press-monitor/internal/types"
)

// delimiter joins the fields before hashing. A pipe is not expected inside
// trimmed titles, URLs, or date strings, so field boundaries stay unambiguous.
const delimiter = "|"

// Hash returns the content hash for a candidate record as lowercase hex.
// Fields are trimmed of surrounding whitespace but not case-folded: title
// casing is part of the record's identity.
func Hash(rec types.CandidateRecord) string {
	content := strings.Join([]string{
		strings.TrimSpace(rec.Title),
		strings.TrimSpace(rec.Link),
		strings.TrimSpace(rec.Summary),
		strings.TrimSpace(rec.Date),
	}, delimiter)

	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}
