package main

import (
	"bytes"
	"strings"
	"testing"
)

func runFor(t *testing.T, args []string, stdin string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = run(args, strings.NewReader(stdin), &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestRunGenerateDefaultDesign(t *testing.T) {
	out, errOut, code := runFor(t, nil, "hi\n")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, errOut)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
}

func TestRunGenerateNamedDesign(t *testing.T) {
	out, errOut, code := runFor(t, []string{"-d", "simple"}, "hi\n")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, errOut)
	}
	if !strings.HasPrefix(out, "+") {
		t.Errorf("output %q does not start with simple design's corner", out)
	}
}

func TestRunUnknownDesignIsUsageError(t *testing.T) {
	_, errOut, code := runFor(t, []string{"-d", "nosuchdesign"}, "hi\n")
	if code == 0 {
		t.Fatalf("expected non-zero exit code for unknown design")
	}
	if errOut == "" {
		t.Errorf("expected an error message on stderr")
	}
}

func TestRunRemoveRoundTrip(t *testing.T) {
	boxed, _, code := runFor(t, []string{"-d", "simple"}, "hi\n")
	if code != 0 {
		t.Fatalf("generate failed: code=%d", code)
	}
	stripped, errOut, code := runFor(t, []string{"-d", "simple", "-r"}, boxed)
	if code != 0 {
		t.Fatalf("remove failed: code=%d stderr=%q", code, errOut)
	}
	if got := strings.TrimRight(stripped, "\n"); got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}

func TestRunHelpExitsZeroWithoutOutput(t *testing.T) {
	out, errOut, code := runFor(t, []string{"-h"}, "")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if out != "" {
		t.Errorf("expected no stdout for -h, got %q", out)
	}
	if errOut == "" {
		t.Errorf("expected usage text on stderr for -h")
	}
}

func TestRunVersionExitsZero(t *testing.T) {
	_, errOut, code := runFor(t, []string{"-v"}, "")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(errOut, "boxes") {
		t.Errorf("expected version string on stderr, got %q", errOut)
	}
}

func TestRunUnknownOptionIsUsageError(t *testing.T) {
	_, _, code := runFor(t, []string{"--bogus"}, "hi\n")
	if code == 0 {
		t.Errorf("expected non-zero exit code for unknown option")
	}
}

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("10x3")
	if err != nil {
		t.Fatalf("parseSize error: %v", err)
	}
	if w != 10 || h != 3 {
		t.Errorf("got (%d,%d), want (10,3)", w, h)
	}
	if _, _, err := parseSize("bogus"); err == nil {
		t.Errorf("expected error for malformed size spec")
	}
}

func TestParseTabs(t *testing.T) {
	width, mode, err := parseTabs("4k")
	if err != nil {
		t.Fatalf("parseTabs error: %v", err)
	}
	if width != 4 {
		t.Errorf("width = %d, want 4", width)
	}
	if mode != 1 { // input.TabKeep
		t.Errorf("mode = %v, want TabKeep", mode)
	}
	if _, _, err := parseTabs("x"); err == nil {
		t.Errorf("expected error for tab spec with no leading digits")
	}
}

func TestScanFlagsEqualsForm(t *testing.T) {
	var design string
	rest, err := scanFlags([]string{"--design=simple", "file.txt"},
		map[string]*string{"--design": &design}, nil)
	if err != nil {
		t.Fatalf("scanFlags error: %v", err)
	}
	if design != "simple" {
		t.Errorf("design = %q, want %q", design, "simple")
	}
	if len(rest) != 1 || rest[0] != "file.txt" {
		t.Errorf("rest = %v, want [file.txt]", rest)
	}
}

func TestScanFlagsMissingValue(t *testing.T) {
	var design string
	_, err := scanFlags([]string{"-d"}, map[string]*string{"-d": &design}, nil)
	if err == nil {
		t.Errorf("expected error for flag missing its value")
	}
}
