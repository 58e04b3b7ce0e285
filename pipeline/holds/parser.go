// Package holds parses the curated status document into hold records and
// filters them for notification eligibility. Parsing and readiness
// filtering are deliberately separate operations.
package holds

import (
	"errors"
	"os"
	"regexp"
	"strings"

	contractx "github.com/daltonw/bookline/pipeline/contract"
)

// DefaultPath is the well-known status document location, relative to the
// run's working directory.
const DefaultPath = "holds.md"

// A record line looks like:
//
//	- "Wild Robot" by Peter Brown | Status: Ready for Pickup | Branch: Noe Valley | Why: robots and sci-fi
//
// Title and author must not contain the pipe field delimiter.
var recordRe = regexp.MustCompile(`-\s+"([^"]+)"\s+by\s+([^|]+)\|\s*Status:\s*([^|]+)\|\s*Branch:\s*([^|]+)\|\s*Why:\s*(.+)`)

// Parse extracts hold records from a status document in document order.
// Each record is a single physical line; anything that does not match the
// record grammar is skipped silently. Parse never fails.
func Parse(doc string) []contractx.HoldRecord {
	var records []contractx.HoldRecord
	for _, line := range strings.Split(doc, "\n") {
		m := recordRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		records = append(records, contractx.HoldRecord{
			Title:  strings.TrimSpace(m[1]),
			Author: strings.TrimSpace(m[2]),
			Status: strings.TrimSpace(m[3]),
			Branch: strings.TrimSpace(m[4]),
			Why:    strings.TrimSpace(m[5]),
		})
	}
	return records
}

// FilterReady keeps the records whose status equals "ready for pickup",
// ignoring case. Filtering an already-filtered sequence is a no-op.
func FilterReady(records []contractx.HoldRecord) []contractx.HoldRecord {
	var ready []contractx.HoldRecord
	for _, r := range records {
		if strings.EqualFold(r.Status, contractx.StatusReady) {
			ready = append(ready, r)
		}
	}
	return ready
}

// Load reads and parses the status document at path. A missing document
// yields an empty result, not an error.
func Load(path string) ([]contractx.HoldRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return Parse(string(data)), nil
}
