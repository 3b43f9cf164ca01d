// Package detect scores every known design against an analyzed input
// and picks the best match when the user does not supply -d.
package detect

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/stlalpha/boxes/internal/bxstring"
	"github.com/stlalpha/boxes/internal/input"
	"github.com/stlalpha/boxes/internal/shape"
)

// Mode is one of the four shape/input comparison modes, tried in order.
type Mode int

const (
	Literal Mode = iota
	IgnoreInvisibleInput
	IgnoreInvisibleShape
	IgnoreInvisibleAll
)

// scoreThreshold is the hit count above which a mode is considered
// conclusive and later modes are skipped.
const scoreThreshold = 2

// Score is one design's result: its hit count and the mode that
// produced it.
type Score struct {
	Design *shape.Design
	Hits   int
	Mode   Mode
}

// Detect scores every design in catalog against in and returns the
// winner. Ties are broken by catalog order (the first design reaching
// the winning score keeps it). Detect returns nil only if catalog is
// empty; when every design scores zero, it returns the first design
// with Hits == 0.
func Detect(catalog []*shape.Design, in *input.Input) *Score {
	inputHasInvisible := inputContainsInvisible(in)

	var best *Score
	for _, m := range viableModes(inputHasInvisible) {
		for _, d := range catalog {
			hits := scoreDesign(d, in, m)
			if best == nil || hits > best.Hits {
				best = &Score{Design: d, Hits: hits, Mode: m}
			}
		}
		if best != nil && best.Hits > scoreThreshold {
			return best
		}
	}
	return best
}

// viableModes filters the four comparison modes to those whose
// input-side invisibility expectation matches reality: ignore-invisible
// modes that claim to "strip" input invisibles are only meaningfully
// different from literal mode when the input actually has some invisible
// content; the "ignore-invisible-all" fallback is always viable.
func viableModes(inputHasInvisible bool) []Mode {
	modes := []Mode{Literal}
	if inputHasInvisible {
		modes = append(modes, IgnoreInvisibleInput)
	}
	modes = append(modes, IgnoreInvisibleShape, IgnoreInvisibleAll)
	return modes
}

func inputContainsInvisible(in *input.Input) bool {
	for _, l := range in.Lines {
		if l.Text.NumInvisible > 0 {
			return true
		}
	}
	return false
}

func scoreDesign(d *shape.Design, in *input.Input, mode Mode) int {
	if len(in.Lines) == 0 {
		return 0
	}
	hits := 0
	hits += scoreCorners(d, in, mode)
	hits += scoreHorizontalEdges(d, in, mode)
	hits += scoreVerticalEdges(d, in, mode)
	return hits
}

// prep returns the text to match against, honoring mode's invisibility
// stripping for whichever side (input or shape) mode names.
func prep(b *bxstring.BXString, stripInput, stripShape bool, isShape bool) string {
	s := b.String()
	if (isShape && stripShape) || (!isShape && stripInput) {
		s = ansi.Strip(s)
	}
	return s
}

func modeStrips(mode Mode) (stripInput, stripShape bool) {
	switch mode {
	case IgnoreInvisibleInput:
		return true, false
	case IgnoreInvisibleShape:
		return false, true
	case IgnoreInvisibleAll:
		return true, true
	default:
		return false, false
	}
}

func scoreCorners(d *shape.Design, in *input.Input, mode Mode) int {
	stripInput, stripShape := modeStrips(mode)
	hits := 0

	type corner struct {
		pos   shape.Position
		west  bool // true: match as prefix; false: match as suffix
		first bool // true: against the first input row; false: against the last
	}
	corners := []corner{
		{shape.NW, true, true},
		{shape.NE, false, true},
		{shape.SE, false, false},
		{shape.SW, true, false},
	}

	for _, c := range corners {
		side := shape.Top
		if c.pos == shape.SE || c.pos == shape.SW {
			side = shape.Bottom
		}
		if d.SideEmpty(side) {
			continue
		}
		e := d.Shapes[c.pos]
		if e.Empty() {
			continue
		}
		row := in.Lines[0].Text
		if !c.first {
			row = in.Lines[len(in.Lines)-1].Text
		}
		rowText := prep(row, stripInput, stripShape, false)
		for _, l := range e.Lines {
			shapeText := prep(l, stripInput, stripShape, true)
			if shapeText == "" {
				continue
			}
			if c.west && strings.HasPrefix(rowText, shapeText) {
				hits++
			} else if !c.west && strings.HasSuffix(rowText, shapeText) {
				hits++
			}
		}
	}
	return hits
}

func scoreHorizontalEdges(d *shape.Design, in *input.Input, mode Mode) int {
	stripInput, stripShape := modeStrips(mode)
	hits := 0

	sides := []struct {
		side shape.Side
		row  *bxstring.BXString
	}{
		{shape.Top, in.Lines[0].Text},
		{shape.Bottom, in.Lines[len(in.Lines)-1].Text},
	}
	for _, s := range sides {
		if d.SideEmpty(s.side) {
			continue
		}
		rowText := prep(s.row, stripInput, stripShape, false)
		for _, p := range shape.SidePositions[s.side][1:4] {
			e := d.Shapes[p]
			if e.Empty() {
				continue
			}
			for _, l := range e.Lines {
				shapeText := prep(l, stripInput, stripShape, true)
				if shapeText == "" {
					continue
				}
				need := shapeText
				if e.Elastic {
					need = shapeText + shapeText
				}
				if strings.Contains(rowText, need) {
					hits++
				}
			}
		}
	}
	return hits
}

func scoreVerticalEdges(d *shape.Design, in *input.Input, mode Mode) int {
	stripInput, stripShape := modeStrips(mode)
	hits := 0

	sides := []shape.Side{shape.Left, shape.Right}
	for _, side := range sides {
		if d.SideEmpty(side) {
			continue
		}
		for i := 1; i < len(in.Lines)-1; i++ {
			rowText := prep(in.Lines[i].Text, stripInput, stripShape, false)
			matched := false
			for _, p := range shape.SidePositions[side][1:4] {
				e := d.Shapes[p]
				if e.Empty() || matched {
					continue
				}
				for _, l := range e.Lines {
					shapeText := prep(l, stripInput, stripShape, true)
					if shapeText != "" && strings.Contains(rowText, shapeText) {
						matched = true
						break
					}
				}
			}
			if matched {
				hits++
			}
		}
	}
	return hits
}
