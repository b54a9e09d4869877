package main

import (
	"fmt"
	"log"
	"os"

	"readwise-notifier/internal/config"
	"readwise-notifier/internal/output"
	"readwise-notifier/internal/service"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dateFilter  string
	ageRandom   bool
	analyzeOnly bool
	testFormat  bool
	limit       int
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "notifier",
		Short: "Post one Readwise highlight to a Slack channel",
		Long: "Fetches the user's Readwise highlights, filters out noise and " +
			"near-empty captures, selects one highlight (uniformly or with " +
			"age-normalized bucketing) and posts it to a Slack incoming webhook.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVar(&dateFilter, "date-filter", "", "restrict highlights by age: recent (last 730 days) or old")
	rootCmd.Flags().BoolVar(&ageRandom, "age-random", false, "select via age-normalized quarterly buckets instead of uniformly")
	rootCmd.Flags().BoolVar(&analyzeOnly, "analyze-only", false, "fetch and report the highlight distribution, skip selection and send")
	rootCmd.Flags().BoolVar(&testFormat, "test-format", false, "informational marker only; does not alter the pipeline")
	rootCmd.Flags().IntVar(&limit, "limit", 0, "cap the number of highlights fetched (0 = no cap)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	policy, err := parseDatePolicy(dateFilter)
	if err != nil {
		return err
	}

	// Wiring
	container := config.NewContainer()
	if err := config.Validate(container.Config); err != nil {
		return err
	}
	logger := container.Logger

	runID := uuid.NewString()
	logger.Info("run starting",
		"run_id", runID,
		"date_filter", dateFilter,
		"age_random", ageRandom,
		"analyze_only", analyzeOnly)

	result, err := container.DigestService.Run(cmd.Context(), service.RunOptions{
		DateFilter:  policy,
		AgeRandom:   ageRandom,
		AnalyzeOnly: analyzeOnly,
		TestFormat:  testFormat,
		Limit:       limit,
	})
	if err != nil {
		logger.Error("run failed", err, "run_id", runID, "outcome", string(result.Outcome))
		return err
	}

	if result.Outcome == service.OutcomeAnalyzed {
		_, noColor := os.LookupEnv("NO_COLOR")
		output.NewReportPrinter(os.Stdout, !noColor).Print(result.Report)
	}

	logger.Info("run finished", "run_id", runID, "outcome", string(result.Outcome))
	return nil
}

func parseDatePolicy(raw string) (service.DatePolicy, error) {
	switch raw {
	case "":
		return service.DatePolicyNone, nil
	case "recent":
		return service.DatePolicyRecent, nil
	case "old":
		return service.DatePolicyOld, nil
	default:
		return service.DatePolicyNone, fmt.Errorf("invalid --date-filter %q: must be recent or old", raw)
	}
}
