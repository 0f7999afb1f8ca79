package pipeline

import (
	"errors"
	"fmt"

	"github.com/jonathan/trend-resolver/internal/classify"
)

// ErrorKind classifies a per-candidate failure. None of them aborts a run.
type ErrorKind string

const (
	// KindSourceUnavailable means a search or model call failed and an empty result was substituted
	KindSourceUnavailable ErrorKind = "source_unavailable"
	// KindMalformedModelOutput means the model answered with unusable output and a fallback was used
	KindMalformedModelOutput ErrorKind = "malformed_model_output"
	// KindPersistenceFailure means storing the final records failed and zero were counted as saved
	KindPersistenceFailure ErrorKind = "persistence_failure"
)

// StageError records a recovered failure for one candidate at one state.
type StageError struct {
	Kind  ErrorKind
	State State
	Trend string
	Cause error
}

func (e *StageError) Error() string {
	if e.Trend == "" {
		return fmt.Sprintf("%s at %s: %v", e.Kind, e.State, e.Cause)
	}
	return fmt.Sprintf("%s at %s for %q: %v", e.Kind, e.State, e.Trend, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// kindOf maps a collaborator error onto the failure taxonomy.
func kindOf(err error) ErrorKind {
	var outErr *classify.ModelOutputError
	if errors.As(err, &outErr) {
		return KindMalformedModelOutput
	}
	return KindSourceUnavailable
}
