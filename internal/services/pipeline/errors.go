package pipeline

import "errors"

// Common errors
var (
	// ErrAlreadyProcessing is returned when a pass is submitted for a
	// fingerprint that already has one in flight
	ErrAlreadyProcessing = errors.New("video is already being processed")

	// ErrNoSubtitles is returned when a render is requested for a session
	// with no subtitle data
	ErrNoSubtitles = errors.New("session has no subtitles")
)
