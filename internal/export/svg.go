package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/graycode/internal/sequence"
)

const (
	labelWidth = 40
	trackGap   = 12
)

// TimingSVG draws a Gray code table as a timing diagram: one square-wave
// track per bit, MSB on top, one column per table entry.
func TimingSVG(entries []sequence.Entry, cell, track int) string {
	if len(entries) == 0 {
		return ""
	}
	if cell <= 0 {
		cell = 16
	}
	if track <= 0 {
		track = 24
	}

	bits := len(entries[0].Gray)
	width := labelWidth + len(entries)*cell
	height := bits*(track+trackGap) + trackGap

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g font-family="monospace" font-size="12" fill="#888899">
`, width, height, width, height))

	for b := 0; b < bits; b++ {
		top := trackGap + b*(track+trackGap)
		sb.WriteString(fmt.Sprintf(`<text x="4" y="%d">G%d</text>
`, top+track/2+4, b))
	}
	sb.WriteString("</g>\n<g fill=\"none\" stroke=\"#00ff88\" stroke-width=\"1.5\">\n")

	for b := 0; b < bits; b++ {
		top := trackGap + b*(track+trackGap)
		high, low := top, top+track

		var path strings.Builder
		level := func(i int) int {
			if entries[i].Gray[b] == '1' {
				return high
			}
			return low
		}

		y := level(0)
		path.WriteString(fmt.Sprintf("M%d,%d", labelWidth, y))
		for i := range entries {
			x := labelWidth + i*cell
			if ny := level(i); ny != y {
				path.WriteString(fmt.Sprintf(" L%d,%d", x, ny))
				y = ny
			}
			path.WriteString(fmt.Sprintf(" L%d,%d", x+cell, y))
		}
		sb.WriteString(fmt.Sprintf(`<path d="%s"/>
`, path.String()))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
