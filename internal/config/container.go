package config

import (
	"math/rand"
	"time"

	"readwise-notifier/internal/domain"
	"readwise-notifier/internal/repository"
	"readwise-notifier/internal/service"
	"readwise-notifier/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config   domain.Config
	Logger   domain.Logger
	Source   domain.HighlightSource
	Notifier domain.Notifier

	FilterService    *service.FilterService
	SelectorService  *service.SelectorService
	FormatterService *service.FormatterService
	AnalyzerService  *service.AnalyzerService
	DigestService    *service.DigestService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel(), config.GetLogFile())

	source := repository.NewReadwiseClient(config, appLogger)
	notifier := repository.NewSlackWebhook(config, appLogger)

	random := rand.New(rand.NewSource(time.Now().UnixNano()))

	filters := service.NewFilterService(appLogger)
	selector := service.NewSelectorService(random, appLogger)
	formatter := service.NewFormatterService()
	analyzer := service.NewAnalyzerService(appLogger)

	digest := service.NewDigestService(
		source,
		notifier,
		filters,
		selector,
		formatter,
		analyzer,
		config.GetNoisePatterns(),
		appLogger,
	)

	return &Container{
		Config:           config,
		Logger:           appLogger,
		Source:           source,
		Notifier:         notifier,
		FilterService:    filters,
		SelectorService:  selector,
		FormatterService: formatter,
		AnalyzerService:  analyzer,
		DigestService:    digest,
	}
}
