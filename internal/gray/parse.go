package gray

import "fmt"

// BitString is input that has passed Parse.
type BitString string

// Parse guards the converters. The empty string is accepted and converts to
// an empty result.
func Parse(s string) (BitString, error) {
	for i, c := range s {
		if c != '0' && c != '1' {
			return "", &InputError{Pos: i, Char: c, Wrapped: ErrInvalidInput}
		}
	}
	return BitString(s), nil
}

// ConvertChecked validates s before converting it.
func ConvertChecked(mode Mode, s string) (Result, error) {
	bits, err := Parse(s)
	if err != nil {
		return Result{}, err
	}
	return Convert(mode, string(bits)), nil
}

// Hamming counts the positions at which a and b differ.
func Hamming(a, b string) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	n := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			n++
		}
	}
	return n, nil
}
