package domain

import "fmt"

// NoDateBucket is the grouping key for highlights whose creation timestamp is
// missing or unparsable.
const NoDateBucket = "no-date"

// TimeBucketFor returns the quarterly grouping key for a highlight, e.g.
// "2023-Q2", or NoDateBucket when the timestamp cannot be classified.
// Buckets are ephemeral; they are recomputed on every run.
func TimeBucketFor(h Highlight) string {
	t, ok := h.CreatedTime()
	if !ok {
		return NoDateBucket
	}
	quarter := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", t.Year(), quarter)
}
