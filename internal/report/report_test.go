package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/graycode/internal/gray"
)

func TestText(t *testing.T) {
	var buf bytes.Buffer
	res := gray.GrayToBinary("101")
	if err := Text(&buf, gray.ModeGrayToBinary, "101", res); err != nil {
		t.Fatalf("text failed: %v", err)
	}

	want := "Input (Gray): 101\n" +
		"Output (Binary): 110\n" +
		"\n" +
		"Conversion Steps:\n" +
		"1. MSB remains same: 1\n" +
		"   Result: 1\n" +
		"2. B[1] = B[0] XOR G[1] = 1 XOR 0 = 1\n" +
		"   Result: 11\n" +
		"3. B[2] = B[1] XOR G[2] = 1 XOR 1 = 0\n" +
		"   Result: 110"
	if buf.String() != want {
		t.Errorf("unexpected report:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestText_BinaryLabels(t *testing.T) {
	var buf bytes.Buffer
	_ = Text(&buf, gray.ModeBinaryToGray, "1101", gray.BinaryToGray("1101"))
	if !strings.HasPrefix(buf.String(), "Input (Binary): 1101\nOutput (Gray): 1011\n") {
		t.Errorf("unexpected header: %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, gray.ModeBinaryToGray, "", gray.BinaryToGray("")); err != nil {
		t.Fatalf("json failed: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["mode"] != "binary-to-gray" {
		t.Errorf("expected mode binary-to-gray, got %v", got["mode"])
	}
	steps, ok := got["steps"].([]any)
	if !ok || len(steps) != 0 {
		t.Errorf("expected empty steps array, got %v", got["steps"])
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, gray.GrayToBinary("10")); err != nil {
		t.Fatalf("csv failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "index,description,result" {
		t.Errorf("unexpected header %q", lines[0])
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "JSON", "csv"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestPlot(t *testing.T) {
	if Plot(gray.GrayToBinary("1"), 40, 5) != "" {
		t.Error("expected no plot for a single step")
	}
	if out := Plot(gray.GrayToBinary("10110"), 40, 5); !strings.Contains(out, "accumulated value") {
		t.Errorf("expected caption, got:\n%s", out)
	}
}
