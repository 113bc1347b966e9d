package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/graycode/internal/gray"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var ErrUnknownFormat = errors.New("report: unknown format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (want text, json or csv)", ErrUnknownFormat, s)
}

type ExportData struct {
	Mode   gray.Mode   `json:"mode"`
	Input  string      `json:"input"`
	Output string      `json:"output"`
	Steps  []gray.Step `json:"steps"`
}

func Write(w io.Writer, f Format, mode gray.Mode, input string, res gray.Result) error {
	switch f {
	case FormatText:
		return Text(w, mode, input, res)
	case FormatJSON:
		return JSON(w, mode, input, res)
	case FormatCSV:
		return CSV(w, res)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Text writes the plain report offered for download:
//
//	Input (Gray): 1011
//	Output (Binary): 1101
//
//	Conversion Steps:
//	1. MSB remains same: 1
//	   Result: 1
func Text(w io.Writer, mode gray.Mode, input string, res gray.Result) error {
	lines := make([]string, len(res.Steps))
	for i, s := range res.Steps {
		lines[i] = fmt.Sprintf("%d. %s\n   Result: %s", s.Index, s.Description, s.Cumulative)
	}
	_, err := fmt.Fprintf(w, "Input (%s): %s\nOutput (%s): %s\n\nConversion Steps:\n%s",
		mode.SourceLabel(), input, mode.TargetLabel(), res.Result, strings.Join(lines, "\n"))
	return err
}

func JSON(w io.Writer, mode gray.Mode, input string, res gray.Result) error {
	data := ExportData{
		Mode:   mode,
		Input:  input,
		Output: res.Result,
		Steps:  res.Steps,
	}
	if data.Steps == nil {
		data.Steps = []gray.Step{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func CSV(w io.Writer, res gray.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "description", "result"}); err != nil {
		return err
	}
	for _, s := range res.Steps {
		if err := cw.Write([]string{strconv.Itoa(s.Index), s.Description, s.Cumulative}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Plot charts the numeric value of the accumulated prefix after every step.
func Plot(res gray.Result, width, height int) string {
	if len(res.Steps) < 2 {
		return ""
	}
	data := make([]float64, len(res.Steps))
	for i, s := range res.Steps {
		// prefixes longer than 64 bits saturate
		v, _ := strconv.ParseUint(s.Cumulative, 2, 64)
		data[i] = float64(v)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("accumulated value per step"),
	)
}
