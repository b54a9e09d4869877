package domain

import "time"

// Highlight represents a user's saved excerpt fetched from the Readwise API.
// Optional fields use pointers so "absent" and "zero" stay distinguishable.
type Highlight struct {
	ID     int64  `json:"id"`
	BookID *int64 `json:"book_id,omitempty"`

	Text string `json:"text"`
	Note string `json:"note,omitempty"`

	// HighlightedAt is kept as the raw ISO-8601 string from the API; it may
	// be absent or unparsable and downstream stages must tolerate both.
	HighlightedAt *string `json:"highlighted_at,omitempty"`

	Location *int  `json:"location,omitempty"`
	Tags     []Tag `json:"tags,omitempty"`
}

// Tag is a name attached to a highlight.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreatedTime parses the highlight's creation timestamp. The second return
// value is false when the timestamp is missing or unparsable.
func (h *Highlight) CreatedTime() (time.Time, bool) {
	if h.HighlightedAt == nil || *h.HighlightedAt == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, *h.HighlightedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TagNames returns the non-empty tag names in order.
func (h *Highlight) TagNames() []string {
	var names []string
	for _, t := range h.Tags {
		if t.Name != "" {
			names = append(names, t.Name)
		}
	}
	return names
}
