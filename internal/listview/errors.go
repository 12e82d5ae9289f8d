package listview

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrLoadFailed marks a failed collection read. The list is replaced by
	// an error state until a retry succeeds.
	ErrLoadFailed = errors.New("load failed")
	// ErrWriteFailed marks a rejected create, update or delete. It is never
	// retried automatically.
	ErrWriteFailed = errors.New("write failed")
	// ErrValidationFailed marks fields rejected before anything is sent.
	ErrValidationFailed = errors.New("validation failed")

	ErrUnknownRecord = errors.New("record not in collection")
	ErrNoEdit        = errors.New("edit surface is not open")
	ErrNoNavigator   = errors.New("no navigator configured")
	ErrStale         = errors.New("response superseded by a newer reload")
)

// ValidationError maps each offending field to its message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}

	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}

	return ErrValidationFailed.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
