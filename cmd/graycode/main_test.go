package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/graycode/internal/gray"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvertText(t *testing.T) {
	out, err := execute(t, "", "convert", "1011")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.HasPrefix(out, "Input (Gray): 1011\nOutput (Binary): 1101\n\nConversion Steps:\n1. MSB remains same: 1\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestConvertJSON(t *testing.T) {
	out, err := execute(t, "", "convert", "-m", "b2g", "-f", "json", "1101")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(out, `"output": "1011"`) || !strings.Contains(out, `"mode": "binary-to-gray"`) {
		t.Errorf("unexpected json:\n%s", out)
	}
}

func TestConvertInvalid(t *testing.T) {
	_, err := execute(t, "", "convert", "10201")
	if !errors.Is(err, gray.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestConvertPreset(t *testing.T) {
	out, err := execute(t, "", "convert", "--preset", "ones")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(out, "Output (Gray): 100000") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := execute(t, "", "convert", "--preset", "nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestConvertToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if _, err := execute(t, "", "convert", "-o", path, "0"); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Output (Binary): 0") {
		t.Errorf("unexpected file contents:\n%s", data)
	}
}

func TestSaveListShow(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "", "--data", dir, "convert", "--save", "1011"); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	out, err := execute(t, "", "--data", dir, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got:\n%s", out)
	}
	id := strings.Fields(lines[1])[0]

	out, err = execute(t, "", "--data", dir, "show", id)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "4. B[3] = B[2] XOR G[3] = 0 XOR 1 = 1\n   Result: 1101") {
		t.Errorf("unexpected report:\n%s", out)
	}
}

func TestBatch(t *testing.T) {
	out, err := execute(t, "1101\n\n111111\n", "batch", "-m", "b2g")
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if !strings.Contains(out, "1011") || !strings.Contains(out, "100000") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = execute(t, "1\nx\n", "batch")
	if !errors.Is(err, gray.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(out, "error:") {
		t.Errorf("expected error row, got:\n%s", out)
	}
}

func TestTable(t *testing.T) {
	out, err := execute(t, "", "table", "--verify", "2")
	if err != nil {
		t.Fatalf("table failed: %v", err)
	}
	for _, g := range []string{"00", "01", "11", "10"} {
		if !strings.Contains(out, g) {
			t.Errorf("missing %s in:\n%s", g, out)
		}
	}
	if !strings.Contains(out, "ok:") {
		t.Error("expected verification message")
	}

	if _, err := execute(t, "", "table", "0"); err == nil {
		t.Error("expected width error")
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graycode.yaml")
	if _, err := execute(t, "", "init-config", path); err != nil {
		t.Fatalf("init-config failed: %v", err)
	}
	if _, err := execute(t, "", "init-config", path); err == nil {
		t.Error("expected refusal to overwrite")
	}

	if err := os.WriteFile(path, []byte("mode: binary-to-gray\nformat: csv\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "", "--config", path, "convert", "11")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.HasPrefix(out, "index,description,result\n") || !strings.Contains(out, "10") {
		t.Errorf("expected csv from config, got:\n%s", out)
	}
}

func TestTableSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gray.svg")
	if _, err := execute(t, "", "table", "--svg", path, "3"); err != nil {
		t.Fatalf("table failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Errorf("expected svg, got:\n%s", data)
	}
}

type failingCloser struct {
	bytes.Buffer
	closeErr error
}

func (f *failingCloser) Close() error { return f.closeErr }

func TestWriteCloseReportsCloseError(t *testing.T) {
	errClose := errors.New("flush failed")
	wc := &failingCloser{closeErr: errClose}

	err := writeClose(wc, func(w io.Writer) error {
		_, err := io.WriteString(w, "report")
		return err
	})
	if !errors.Is(err, errClose) {
		t.Errorf("expected close error, got %v", err)
	}
	if wc.String() != "report" {
		t.Errorf("expected report written, got %q", wc.String())
	}

	errWrite := errors.New("write failed")
	err = writeClose(&failingCloser{}, func(io.Writer) error { return errWrite })
	if !errors.Is(err, errWrite) {
		t.Errorf("expected write error, got %v", err)
	}
}

func TestConvertToMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.txt")
	if _, err := execute(t, "", "convert", "-o", path, "1"); err == nil {
		t.Error("expected error writing into a missing directory")
	}
}

func TestBatchReportsSourceLines(t *testing.T) {
	out, err := execute(t, "1011\n\n\n10x1\n", "batch")
	if !errors.Is(err, gray.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	found := false
	for _, line := range strings.Split(out, "\n") {
		if f := strings.Fields(line); len(f) > 1 && f[1] == "10x1" {
			found = true
			if f[0] != "4" {
				t.Errorf("expected line 4, got %s", f[0])
			}
		}
	}
	if !found {
		t.Errorf("missing row for 10x1:\n%s", out)
	}
}
