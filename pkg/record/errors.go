package record

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every backend. Callers match with errors.Is.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNotFound           = errors.New("record not found")
	ErrRequestFailed      = errors.New("request failed")
	ErrPartialFailure     = errors.New("partial failure")
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// PartialFailureError reports a batch call that succeeded overall while some
// of its per-record operations failed.
type PartialFailureError struct {
	Op     string
	Failed int
	Total  int
	Reason string
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: %d of %d records failed: %s", e.Op, e.Failed, e.Total, e.Reason)
}

func (e *PartialFailureError) Unwrap() error { return ErrPartialFailure }

// FieldError is one failed input check. A list of them is returned wrapped in
// ErrInvalidArgument by Service.Create and Service.Update.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects input-check failures for one record.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "no field errors"
	}
	if len(fe) == 1 {
		return fe[0].Field + ": " + fe[0].Message
	}
	return fmt.Sprintf("%s: %s (and %d more)", fe[0].Field, fe[0].Message, len(fe)-1)
}

func (fe FieldErrors) Unwrap() error { return ErrInvalidArgument }

// NewNotFound wraps ErrNotFound with the table and id that were missing.
func NewNotFound(table string, id int64) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, table, id)
}
