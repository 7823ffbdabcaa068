package pipeline

import "fmt"

// Error is a fatal per-stage pipeline failure. Retrying with the same
// input reproduces the same failure, so callers must not retry
// transparently.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pipeline %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func stageError(stage, format string, args ...any) *Error {
	return &Error{Stage: stage, Err: fmt.Errorf(format, args...)}
}
