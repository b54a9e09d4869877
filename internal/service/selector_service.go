package service

import (
	"sort"

	"readwise-notifier/internal/domain"
)

// SelectorService chooses one highlight from a filtered list. Randomness is
// injected through domain.RandomSource so selections are scriptable in tests.
type SelectorService struct {
	random domain.RandomSource
	logger domain.Logger
}

func NewSelectorService(random domain.RandomSource, logger domain.Logger) *SelectorService {
	return &SelectorService{random: random, logger: logger}
}

// SelectUniform picks one element with equal probability per element. Returns
// false on empty input.
func (s *SelectorService) SelectUniform(highlights []domain.Highlight) (domain.Highlight, bool) {
	if len(highlights) == 0 {
		return domain.Highlight{}, false
	}
	return highlights[s.random.Intn(len(highlights))], true
}

// SelectAgeNormalized picks a quarterly time bucket uniformly at random, then
// a highlight uniformly within it. Every period with at least one surviving
// highlight gets equal selection probability regardless of how many
// highlights it contributed, so sparse old quarters are not drowned out by
// dense recent ones.
func (s *SelectorService) SelectAgeNormalized(highlights []domain.Highlight) (domain.Highlight, bool) {
	if len(highlights) == 0 {
		return domain.Highlight{}, false
	}

	buckets := make(map[string][]domain.Highlight)
	for _, h := range highlights {
		key := domain.TimeBucketFor(h)
		buckets[key] = append(buckets[key], h)
	}

	if len(buckets) == 0 {
		// Unreachable with non-empty input; kept as a uniform fallback.
		return s.SelectUniform(highlights)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	key := keys[s.random.Intn(len(keys))]
	bucket := buckets[key]
	picked := bucket[s.random.Intn(len(bucket))]

	s.logger.Info("age-normalized selection",
		"buckets", len(keys),
		"bucket", key,
		"bucket_size", len(bucket),
		"highlight_id", picked.ID)
	return picked, true
}
