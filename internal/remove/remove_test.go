package remove

import (
	"strings"
	"testing"

	"github.com/stlalpha/boxes/internal/bxstring"
	"github.com/stlalpha/boxes/internal/input"
	"github.com/stlalpha/boxes/internal/shape"
)

func fixedEntry(text string, w, h int) *shape.Entry {
	lines := make([]*bxstring.BXString, h)
	for i := range lines {
		lines[i] = bxstring.FromASCII(text)
	}
	return &shape.Entry{Width: w, Height: h, Lines: lines}
}

func elasticEntry(text string, w, h int) *shape.Entry {
	e := fixedEntry(text, w, h)
	e.Elastic = true
	return e
}

func simpleBoxDesign() *shape.Design {
	d := &shape.Design{Name: "simple"}
	d.Shapes[shape.NW] = fixedEntry("+", 1, 1)
	d.Shapes[shape.NE] = fixedEntry("+", 1, 1)
	d.Shapes[shape.SE] = fixedEntry("+", 1, 1)
	d.Shapes[shape.SW] = fixedEntry("+", 1, 1)
	d.Shapes[shape.N] = elasticEntry("-", 1, 1)
	d.Shapes[shape.S] = elasticEntry("-", 1, 1)
	d.Shapes[shape.W] = elasticEntry("|", 1, 1)
	d.Shapes[shape.E] = elasticEntry("|", 1, 1)
	return d
}

func readBoxed(t *testing.T, text string) *input.Input {
	t.Helper()
	in, err := input.Read(strings.NewReader(text), input.Options{TabWidth: 8, Removing: true})
	if err != nil {
		t.Fatal(err)
	}
	return in
}

func TestRemoveSimpleBox(t *testing.T) {
	d := simpleBoxDesign()
	boxed := "+----+\n|hi  |\n+----+\n"
	in := readBoxed(t, boxed)

	out, err := Remove(d, in, Options{IndentMode: shape.IndentBox})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Lines) != 1 {
		t.Fatalf("got %d body lines, want 1: %v", len(out.Lines), linesToStrings(out))
	}
	got := out.Lines[0].Text.String()
	if got != "hi" && strings.TrimRight(got, " ") != "hi" {
		t.Errorf("body line = %q, want content to reduce to %q", got, "hi")
	}
}

func TestRemoveNoBoxReturnsInputUnchanged(t *testing.T) {
	d := simpleBoxDesign()
	in := readBoxed(t, "\n\n")
	out, err := Remove(d, in, Options{IndentMode: shape.IndentBox})
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("expected the all-blank input to be returned unchanged")
	}
}

func TestKillBlankShrinksBodyPaddingLines(t *testing.T) {
	d := simpleBoxDesign()
	boxed := "+----+\n|    |\n|hi  |\n|    |\n+----+\n"
	in := readBoxed(t, boxed)

	out, err := Remove(d, in, Options{IndentMode: shape.IndentBox, KillBlank: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Lines) != 1 {
		t.Fatalf("got %d body lines, want 1 after kill-blank: %v", len(out.Lines), linesToStrings(out))
	}
}

func linesToStrings(in *input.Input) []string {
	out := make([]string, len(in.Lines))
	for i, l := range in.Lines {
		out[i] = l.Text.String()
	}
	return out
}
