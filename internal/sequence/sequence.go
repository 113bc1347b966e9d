// Package sequence builds full reflected Gray code tables for a fixed width.
package sequence

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/graycode/internal/gray"
)

const MaxWidth = 16

var (
	ErrWidth = errors.New("sequence: width out of range")

	// ErrNotAdjacent indicates two neighbouring codes differing in more
	// or fewer than one bit.
	ErrNotAdjacent = errors.New("sequence: neighbouring codes are not adjacent")
)

type Entry struct {
	Value  int    `json:"value"`
	Binary string `json:"binary"`
	Gray   string `json:"gray"`
}

// Table lists every value of the given width alongside its Gray encoding.
func Table(width int) ([]Entry, error) {
	if width < 1 || width > MaxWidth {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrWidth, width, MaxWidth)
	}

	n := 1 << width
	entries := make([]Entry, n)
	for v := 0; v < n; v++ {
		bin := fmt.Sprintf("%0*b", width, v)
		entries[v] = Entry{
			Value:  v,
			Binary: bin,
			Gray:   gray.BinaryToGray(bin).Result,
		}
	}
	return entries, nil
}

// Verify checks the cyclic single-bit-change property of a table.
func Verify(entries []Entry) error {
	if len(entries) < 2 {
		return nil
	}
	for i := range entries {
		a := entries[i]
		b := entries[(i+1)%len(entries)]
		d, err := gray.Hamming(a.Gray, b.Gray)
		if err != nil {
			return err
		}
		if d != 1 {
			return fmt.Errorf("%w: %s -> %s (distance %d)", ErrNotAdjacent, a.Gray, b.Gray, d)
		}
	}
	return nil
}

// Plot charts the numeric value of each Gray code against its position.
func Plot(entries []Entry, width, height int) string {
	if len(entries) == 0 {
		return ""
	}
	data := make([]float64, len(entries))
	for i, e := range entries {
		v, _ := strconv.ParseUint(e.Gray, 2, 64)
		data[i] = float64(v)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("gray code value by position (%d-bit)", len(entries[0].Gray))),
	)
}
