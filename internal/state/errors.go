package state

import (
	"errors"
	"fmt"
)

// LookupError is returned when a video number is outside [1, Count].
type LookupError struct {
	Number int
	Count  int
}

func (e *LookupError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("invalid video number: %d (no videos tracked yet, run mirava to scan)", e.Number)
	}
	return fmt.Sprintf("invalid video number: %d. Must be between 1 and %d", e.Number, e.Count)
}

// WriteError is returned when the state file could not be written.
// The previously saved file is left untouched.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// IsLookup reports whether err is a LookupError.
func IsLookup(err error) bool {
	var e *LookupError
	return errors.As(err, &e)
}

// IsWrite reports whether err is a WriteError.
func IsWrite(err error) bool {
	var e *WriteError
	return errors.As(err, &e)
}
