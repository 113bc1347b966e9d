// Package batch converts many bit strings concurrently.
package batch

import (
	"bufio"
	"context"
	"io"
	"runtime"
	"strings"
	"sync"

	"github.com/san-kum/graycode/internal/gray"
)

// Item is the outcome for one input line. Err is set when the line was
// rejected by gray.Parse; Result is then zero.
type Item struct {
	Line   int
	Input  string
	Result gray.Result
	Err    error
}

// Line is one non-blank input line and its 1-based position in the source.
type Line struct {
	N    int
	Text string
}

// Lines numbers texts consecutively from 1.
func Lines(texts ...string) []Line {
	lines := make([]Line, len(texts))
	for i, t := range texts {
		lines[i] = Line{N: i + 1, Text: t}
	}
	return lines
}

// Run converts every input with up to workers goroutines. Items come back in
// input order. Invalid lines do not stop the batch.
func Run(ctx context.Context, mode gray.Mode, inputs []Line, workers int) ([]Item, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	items := make([]Item, len(inputs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				in := inputs[idx]
				res, err := gray.ConvertChecked(mode, in.Text)
				items[idx] = Item{Line: in.N, Input: in.Text, Result: res, Err: err}
			}
		}()
	}

	var cancelled error
feed:
	for i := range inputs {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}
	return items, nil
}

// ReadLines collects the non-blank lines of r with surrounding whitespace
// removed, keeping their line numbers in r.
func ReadLines(r io.Reader) ([]Line, error) {
	var lines []Line
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		lines = append(lines, Line{N: n, Text: text})
	}
	return lines, sc.Err()
}

// Failed counts items carrying an error.
func Failed(items []Item) int {
	n := 0
	for _, it := range items {
		if it.Err != nil {
			n++
		}
	}
	return n
}
