package results

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOwnerRequired is returned when a submission has no owner identity.
	ErrOwnerRequired = errors.New("owner is required")

	// ErrIncomplete matches *IncompleteError.
	ErrIncomplete = errors.New("answer set is incomplete")

	// ErrProfileNotFound means the computed code has no descriptive content.
	// It signals broken content data and is never defaulted.
	ErrProfileNotFound = errors.New("could not calculate your result")

	// ErrPersist matches *PersistError.
	ErrPersist = errors.New("failed to save result")

	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("result not found")
)

// IncompleteError lists what is wrong with a submitted answer set.
type IncompleteError struct {
	Missing []int
	Unknown []int
}

func (e *IncompleteError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("%d unanswered (%s)", len(e.Missing), joinInts(e.Missing)))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, fmt.Sprintf("unknown question ids (%s)", joinInts(e.Unknown)))
	}
	return fmt.Sprintf("%s: %s", ErrIncomplete, strings.Join(parts, "; "))
}

func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncomplete
}

// PersistError carries the fully computed record so the write can be
// retried without recomputing it.
type PersistError struct {
	Record *Record
	Err    error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPersist, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

func (e *PersistError) Is(target error) bool {
	return target == ErrPersist
}

func joinInts(ids []int) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = fmt.Sprint(id)
	}
	return strings.Join(s, ", ")
}
