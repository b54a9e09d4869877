package domain

import "errors"

// Domain errors
var (
	ErrNoHighlights     = errors.New("no highlights found")
	ErrNoneAfterFilters = errors.New("no highlights left after filtering")
	ErrNoneAfterNoise   = errors.New("no highlights left after noise filtering")
	ErrNothingSelected  = errors.New("no highlight selected")
	ErrSendFailed       = errors.New("failed to send notification")
)
