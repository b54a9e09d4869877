package service

import (
	"context"
	"time"

	"readwise-notifier/internal/domain"
)

// Outcome is the terminal state of one run.
type Outcome string

const (
	OutcomeSent                 Outcome = "sent"
	OutcomeAnalyzed             Outcome = "analyzed"
	OutcomeNoHighlights         Outcome = "no_highlights"
	OutcomeNoneAfterFilters     Outcome = "none_after_filters"
	OutcomeNoneAfterNoiseFilter Outcome = "none_after_noise_filter"
	OutcomeSendFailed           Outcome = "send_failed"
)

// RunOptions carries the per-invocation CLI choices.
type RunOptions struct {
	DateFilter  DatePolicy
	AgeRandom   bool
	AnalyzeOnly bool
	TestFormat  bool
	Limit       int
}

// RunResult pairs the terminal outcome with the distribution report computed
// along the way.
type RunResult struct {
	Outcome Outcome
	Report  DistributionReport
}

// DigestService sequences one full run: fetch, analyze, filter, select,
// format, notify. All entities live for a single invocation; nothing is
// persisted between runs.
type DigestService struct {
	source        domain.HighlightSource
	notifier      domain.Notifier
	filters       *FilterService
	selector      *SelectorService
	formatter     *FormatterService
	analyzer      *AnalyzerService
	noisePatterns []string
	logger        domain.Logger

	now func() time.Time
}

func NewDigestService(
	source domain.HighlightSource,
	notifier domain.Notifier,
	filters *FilterService,
	selector *SelectorService,
	formatter *FormatterService,
	analyzer *AnalyzerService,
	noisePatterns []string,
	logger domain.Logger,
) *DigestService {
	return &DigestService{
		source:        source,
		notifier:      notifier,
		filters:       filters,
		selector:      selector,
		formatter:     formatter,
		analyzer:      analyzer,
		noisePatterns: noisePatterns,
		logger:        logger,
		now:           time.Now,
	}
}

// Run executes the pipeline. The reference time is read once here and
// threaded through filtering and formatting so those stages stay pure.
func (s *DigestService) Run(ctx context.Context, opts RunOptions) (RunResult, error) {
	now := s.now()

	highlights, err := s.source.FetchHighlights(ctx, opts.Limit)
	if err != nil {
		// The whole fetch is abandoned on any page fault; no partial data.
		s.logger.Error("failed to fetch highlights", err)
		highlights = nil
	}
	if len(highlights) == 0 {
		s.logger.Warn("No highlights found")
		return RunResult{Outcome: OutcomeNoHighlights}, domain.ErrNoHighlights
	}

	books, err := s.source.FetchBooks(ctx)
	if err != nil {
		// Best effort: missing books degrade to placeholder titles downstream.
		s.logger.Warn("failed to fetch books, continuing with placeholders", "error", err)
		books = map[int64]domain.Book{}
	}

	report := s.analyzer.Analyze(highlights, now)
	if opts.AnalyzeOnly {
		return RunResult{Outcome: OutcomeAnalyzed, Report: report}, nil
	}

	if opts.TestFormat {
		// Parsed but inert: kept as an informational marker only.
		s.logger.Info("test-format mode requested, pipeline unaffected")
	}

	filtered := s.filters.FilterByDate(highlights, opts.DateFilter, now)
	if len(filtered) == 0 {
		return RunResult{Outcome: OutcomeNoneAfterFilters, Report: report}, domain.ErrNoneAfterFilters
	}

	filtered = s.filters.FilterQuality(filtered)
	if len(filtered) == 0 {
		return RunResult{Outcome: OutcomeNoneAfterFilters, Report: report}, domain.ErrNoneAfterFilters
	}

	filtered = s.filters.FilterNoise(filtered, books, s.noisePatterns)
	if len(filtered) == 0 {
		return RunResult{Outcome: OutcomeNoneAfterNoiseFilter, Report: report}, domain.ErrNoneAfterNoise
	}

	var picked domain.Highlight
	var ok bool
	if opts.AgeRandom {
		picked, ok = s.selector.SelectAgeNormalized(filtered)
	} else {
		picked, ok = s.selector.SelectUniform(filtered)
	}
	if !ok {
		return RunResult{Outcome: OutcomeNoneAfterFilters, Report: report}, domain.ErrNothingSelected
	}

	title := domain.ResolveTitle(picked.BookID, books)
	var book domain.Book
	if picked.BookID != nil {
		book = books[*picked.BookID]
	}

	message := s.formatter.Format(picked, title, book, now)
	if err := s.notifier.Notify(ctx, message); err != nil {
		return RunResult{Outcome: OutcomeSendFailed, Report: report}, domain.ErrSendFailed
	}

	s.logger.Info("run complete", "highlight_id", picked.ID, "book", title)
	return RunResult{Outcome: OutcomeSent, Report: report}, nil
}
