package service

import (
	"errors"
	"fmt"
)

var (
	ErrReaderNil = errors.New("reader is nil")

	// ErrCSVDecode marks an upload that is not a well-formed CSV.
	ErrCSVDecode = errors.New("csv decode error")
	// ErrStorage marks a failure writing, reading or removing the transient upload.
	ErrStorage = errors.New("storage error")

	// ErrRecommendation marks any failure producing a recommendation.
	ErrRecommendation = errors.New("recommendation error")
	// ErrNoCompletions is returned when the model answers without a usable completion.
	ErrNoCompletions = errors.New("model returned no completion")

	// ErrOrderFailed is reserved for a real ordering provider; the stub never returns it.
	ErrOrderFailed = errors.New("order failed")
)

// IngestionError describes a failed upload intake. Kind is ErrCSVDecode or ErrStorage,
// so callers can use errors.Is on either the kind or the underlying cause.
type IngestionError struct {
	Op   string
	Kind error
	Err  error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingest %s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *IngestionError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// RecommendationError wraps a failed model call. StatusCode is the upstream HTTP status, or 0 when
// no response was received.
type RecommendationError struct {
	StatusCode int
	Err        error
}

func (e *RecommendationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("recommend: upstream status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("recommend: %v", e.Err)
}

func (e *RecommendationError) Unwrap() []error {
	return []error{ErrRecommendation, e.Err}
}
