package detect

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

func starDesign() *shape.Design {
	d := &shape.Design{Name: "stars"}
	d.Shapes[shape.NW] = fixedEntry("/*", 2, 1)
	d.Shapes[shape.NE] = fixedEntry("*\\", 2, 1)
	d.Shapes[shape.SE] = fixedEntry("*/", 2, 1)
	d.Shapes[shape.SW] = fixedEntry("\\*", 2, 1)
	d.Shapes[shape.N] = elasticEntry("*", 1, 1)
	d.Shapes[shape.S] = elasticEntry("*", 1, 1)
	d.Shapes[shape.W] = elasticEntry("*", 1, 1)
	d.Shapes[shape.E] = elasticEntry("*", 1, 1)
	return d
}

func otherDesign() *shape.Design {
	d := &shape.Design{Name: "pipes"}
	d.Shapes[shape.NW] = fixedEntry("+-", 2, 1)
	d.Shapes[shape.NE] = fixedEntry("-+", 2, 1)
	d.Shapes[shape.SE] = fixedEntry("-+", 2, 1)
	d.Shapes[shape.SW] = fixedEntry("+-", 2, 1)
	d.Shapes[shape.N] = elasticEntry("=", 1, 1)
	d.Shapes[shape.S] = elasticEntry("=", 1, 1)
	d.Shapes[shape.W] = elasticEntry("|", 1, 1)
	d.Shapes[shape.E] = elasticEntry("|", 1, 1)
	return d
}

func TestDetectPicksMatchingDesign(t *testing.T) {
	catalog := []*shape.Design{otherDesign(), starDesign()}
	text := "/*****\\\n* hi   *\n\\*****/\n"
	in, err := input.Read(strings.NewReader(text), input.Options{TabWidth: 8})
	if err != nil {
		t.Fatal(err)
	}
	got := Detect(catalog, in)
	if got == nil {
		t.Fatal("Detect returned nil")
	}
	if got.Design.Name != "stars" {
		t.Errorf("Detect picked %q, want %q (hits=%d)", got.Design.Name, "stars", got.Hits)
	}
}

func TestDetectEmptyInputScoresZero(t *testing.T) {
	catalog := []*shape.Design{starDesign()}
	in, err := input.Read(strings.NewReader(""), input.Options{TabWidth: 8})
	if err != nil {
		t.Fatal(err)
	}
	got := Detect(catalog, in)
	if got == nil {
		t.Fatal("Detect returned nil")
	}
	if got.Hits != 0 {
		t.Errorf("Hits = %d, want 0 for empty input", got.Hits)
	}
}

func TestViableModesSkipsIgnoreInvisibleInputWhenNoInvisibles(t *testing.T) {
	modes := viableModes(false)
	for _, m := range modes {
		if m == IgnoreInvisibleInput {
			t.Errorf("viableModes(false) should not include IgnoreInvisibleInput, got %v", modes)
		}
	}
}
