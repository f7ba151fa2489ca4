package journal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation = errors.New("journal: validation failed")
	ErrNotFound   = errors.New("journal: entry not found")
	ErrStorage    = errors.New("journal: storage failed")
)

// FieldError describes one rejected field of a draft.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every field of a draft that failed validation.
// Nothing is mutated when it is returned.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "journal: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Message is the user facing text for an alert.
func (e *ValidationError) Message() string {
	if len(e.Fields) == 0 {
		return "Please check the entry."
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "\n")
}

// NotFoundError is returned when an operation targets an id that is not in
// the collection.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("journal: entry %q not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StorageError wraps a persistence failure. The in-memory collection is left
// as it was before the failed operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("journal: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
