package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"readwise-notifier/internal/domain"
)

// DatePolicy selects which side of the age window survives the date filter.
type DatePolicy string

const (
	DatePolicyNone   DatePolicy = ""
	DatePolicyRecent DatePolicy = "recent"
	DatePolicyOld    DatePolicy = "old"
)

// recentWindowDays splits "recent" highlights from "old" ones.
const recentWindowDays = 730

// minHighlightRunes is the minimum trimmed length a highlight must have to
// count as substantive.
const minHighlightRunes = 20

// DefaultNoisePatterns are matched case-insensitively against text plus note.
var DefaultNoisePatterns = []string{"by readwise team"}

// placeholderAuthor marks editorial content injected by the platform itself.
const placeholderAuthor = "readwise team"

// FilterService holds the pure list-in/list-out cleaning stages. Every stage
// tolerates malformed records by excluding them, never by failing.
type FilterService struct {
	logger domain.Logger
}

func NewFilterService(logger domain.Logger) *FilterService {
	return &FilterService{logger: logger}
}

// FilterQuality retains highlights whose trimmed text is at least 20
// characters, excluding effectively-empty captures.
func (s *FilterService) FilterQuality(highlights []domain.Highlight) []domain.Highlight {
	kept := make([]domain.Highlight, 0, len(highlights))
	for _, h := range highlights {
		if utf8.RuneCountInString(strings.TrimSpace(h.Text)) >= minHighlightRunes {
			kept = append(kept, h)
		}
	}
	s.logger.Info("quality filter applied", "before", len(highlights), "after", len(kept))
	return kept
}

// FilterByDate keeps highlights on the configured side of the 730-day window.
// With no policy the input passes through untouched. While a policy is active,
// highlights with missing or unparsable timestamps cannot be classified and
// are dropped.
func (s *FilterService) FilterByDate(highlights []domain.Highlight, policy DatePolicy, now time.Time) []domain.Highlight {
	if policy == DatePolicyNone {
		return highlights
	}

	cutoff := now.AddDate(0, 0, -recentWindowDays)
	kept := make([]domain.Highlight, 0, len(highlights))
	for _, h := range highlights {
		created, ok := h.CreatedTime()
		if !ok {
			continue
		}
		recent := created.After(cutoff)
		if (policy == DatePolicyRecent && recent) || (policy == DatePolicyOld && !recent) {
			kept = append(kept, h)
		}
	}
	s.logger.Info("date filter applied", "policy", string(policy), "before", len(highlights), "after", len(kept))
	return kept
}

// FilterNoise drops highlights matching any configured pattern in their text
// or note, and highlights whose book author is the platform placeholder.
// Patterns are data-driven so new ones need no code change.
func (s *FilterService) FilterNoise(highlights []domain.Highlight, books map[int64]domain.Book, patterns []string) []domain.Highlight {
	if len(patterns) == 0 {
		patterns = DefaultNoisePatterns
	}

	kept := make([]domain.Highlight, 0, len(highlights))
	for _, h := range highlights {
		if s.isNoise(h, books, patterns) {
			continue
		}
		kept = append(kept, h)
	}
	s.logger.Info("noise filter applied", "before", len(highlights), "after", len(kept))
	return kept
}

func (s *FilterService) isNoise(h domain.Highlight, books map[int64]domain.Book, patterns []string) bool {
	haystack := strings.ToLower(h.Text + " " + h.Note)
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(pattern)) {
			return true
		}
	}

	if h.BookID != nil {
		if book, ok := books[*h.BookID]; ok && book.Author != nil {
			author := strings.ToLower(strings.TrimSpace(*book.Author))
			if author == placeholderAuthor {
				return true
			}
		}
	}
	return false
}
