package service

import (
	"sort"
	"time"

	"readwise-notifier/internal/domain"
)

// DistributionReport summarizes how a highlight collection spreads over time.
// It is observability output only and has no control-flow effect on a run.
type DistributionReport struct {
	Total      int
	YearCounts map[int]int
	NoDate     int
	Recent     int // created within the last 730 days
	Old        int
}

// Years returns the years present in ascending order.
func (r DistributionReport) Years() []int {
	years := make([]int, 0, len(r.YearCounts))
	for year := range r.YearCounts {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// AnalyzerService computes distribution reports over fetched highlights.
type AnalyzerService struct {
	logger domain.Logger
}

func NewAnalyzerService(logger domain.Logger) *AnalyzerService {
	return &AnalyzerService{logger: logger}
}

// Analyze counts highlights per creation year and across the recent/old
// split. Undated highlights land in NoDate and in neither split.
func (s *AnalyzerService) Analyze(highlights []domain.Highlight, now time.Time) DistributionReport {
	report := DistributionReport{
		Total:      len(highlights),
		YearCounts: make(map[int]int),
	}

	cutoff := now.AddDate(0, 0, -recentWindowDays)
	for _, h := range highlights {
		created, ok := h.CreatedTime()
		if !ok {
			report.NoDate++
			continue
		}
		report.YearCounts[created.Year()]++
		if created.After(cutoff) {
			report.Recent++
		} else {
			report.Old++
		}
	}

	s.logger.Info("highlight distribution",
		"total", report.Total,
		"recent", report.Recent,
		"old", report.Old,
		"no_date", report.NoDate,
		"years", len(report.YearCounts))
	return report
}
