package input

import (
	"strings"
	"testing"

	"github.com/stlalpha/boxes/internal/shape"
)

func TestReadBasic(t *testing.T) {
	in, err := Read(strings.NewReader("hello\nworld\n"), Options{TabWidth: 8, IndentMode: shape.IndentBox})
	if err != nil {
		t.Fatal(err)
	}
	if len(in.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(in.Lines))
	}
	if in.Lines[0].Text.String() != "hello" || in.Lines[1].Text.String() != "world" {
		t.Errorf("unexpected line contents: %q %q", in.Lines[0].Text.String(), in.Lines[1].Text.String())
	}
	if !in.FinalNewline {
		t.Error("expected FinalNewline=true")
	}
}

func TestReadNoFinalNewline(t *testing.T) {
	in, err := Read(strings.NewReader("hello"), Options{TabWidth: 8})
	if err != nil {
		t.Fatal(err)
	}
	if in.FinalNewline {
		t.Error("expected FinalNewline=false")
	}
	if len(in.Lines) != 1 || in.Lines[0].Text.String() != "hello" {
		t.Errorf("unexpected lines: %+v", in.Lines)
	}
}

func TestCommonIndentStripped(t *testing.T) {
	in, err := Read(strings.NewReader("  first\n    second\n"), Options{TabWidth: 8, IndentMode: shape.IndentBox})
	if err != nil {
		t.Fatal(err)
	}
	if in.CommonIndent != 2 {
		t.Fatalf("CommonIndent = %d, want 2", in.CommonIndent)
	}
	if in.Lines[0].Text.String() != "first" {
		t.Errorf("line0 = %q, want %q", in.Lines[0].Text.String(), "first")
	}
	if in.Lines[1].Text.String() != "  second" {
		t.Errorf("line1 = %q, want %q", in.Lines[1].Text.String(), "  second")
	}
}

func TestCommonIndentKeptInTextMode(t *testing.T) {
	in, err := Read(strings.NewReader("  first\n    second\n"), Options{TabWidth: 8, IndentMode: shape.IndentText})
	if err != nil {
		t.Fatal(err)
	}
	if in.Lines[0].Text.String() != "  first" {
		t.Errorf("line0 = %q, want indentation kept", in.Lines[0].Text.String())
	}
}

func TestTabExpansionKeepsPositions(t *testing.T) {
	in, err := Read(strings.NewReader("\tindented\n"), Options{TabWidth: 4, TabMode: TabKeep, IndentMode: shape.IndentText})
	if err != nil {
		t.Fatal(err)
	}
	if len(in.Lines[0].TabPositions) != 1 || in.Lines[0].TabPositions[0] != 0 {
		t.Errorf("TabPositions = %v, want [0]", in.Lines[0].TabPositions)
	}
	if in.Lines[0].Text.String() != "    indented" {
		t.Errorf("expanded text = %q", in.Lines[0].Text.String())
	}
}

func TestZeroNonBlankLines(t *testing.T) {
	in, err := Read(strings.NewReader("\n\n"), Options{TabWidth: 8})
	if err != nil {
		t.Fatal(err)
	}
	first, end := in.NonBlankLineRange()
	if first != 0 || end != 0 {
		t.Errorf("NonBlankLineRange() = (%d, %d), want (0, 0)", first, end)
	}
}
