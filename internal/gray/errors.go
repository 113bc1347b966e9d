package gray

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates a character outside {0,1}.
	ErrInvalidInput = errors.New("gray: please enter only binary digits (0 or 1)")

	ErrUnknownMode = errors.New("gray: unknown conversion mode")

	// ErrLengthMismatch is returned by Hamming for strings of unequal length.
	ErrLengthMismatch = errors.New("gray: bit strings differ in length")
)

// InputError pinpoints the first offending character of rejected input.
type InputError struct {
	Pos     int
	Char    rune
	Wrapped error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %q at position %d", e.Wrapped, e.Char, e.Pos)
}

func (e *InputError) Unwrap() error {
	return e.Wrapped
}
