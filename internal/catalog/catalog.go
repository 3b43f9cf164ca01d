// Package catalog supplies the small set of designs boxes ships with
// when no config file is loaded. Full config-file lexing/parsing into
// Design records belongs to an external collaborator; this package
// instead builds a handful of designs directly as data,
// covering the same shape/sizing/tag machinery a parsed config would
// produce, so cmd/boxes has something to generate/remove/detect against
// out of the box.
package catalog

import (
	"github.com/stlalpha/boxes/internal/bxstring"
	"github.com/stlalpha/boxes/internal/shape"
)

func line(text string) *bxstring.BXString { return bxstring.FromASCII(text) }

func entry(height, width int, elastic bool, lines ...string) *shape.Entry {
	rows := make([]*bxstring.BXString, len(lines))
	for i, l := range lines {
		rows[i] = line(l)
	}
	return &shape.Entry{Height: height, Width: width, Elastic: elastic, Lines: rows}
}

func empty() *shape.Entry { return &shape.Entry{} }

// classicDesign is the classic C comment box: a single elastic '*' rule
// on all four sides, with '/'/'\\' corners.
func classicDesign() *shape.Design {
	d := &shape.Design{
		Name:     "classic",
		Aliases:  []string{"c"},
		Author:   "boxes",
		Designer: "Thomas Jensen",
		Sample: "/***********\\\n" +
			"*  hello    *\n" +
			"\\***********/",
		Indent:    shape.IndentBox,
		MinWidth:  10,
		MinHeight: 3,
		MaxShapeH: 1,
		Padding:   shape.Padding{Top: 0, Right: 1, Bottom: 0, Left: 1},
		Tags:      map[string]bool{"ascii": true, "box": true},
	}
	d.Shapes[shape.NW] = entry(1, 1, false, "/")
	d.Shapes[shape.NE] = entry(1, 1, false, "\\")
	d.Shapes[shape.SE] = entry(1, 1, false, "/")
	d.Shapes[shape.SW] = entry(1, 1, false, "\\")
	d.Shapes[shape.N] = entry(1, 1, true, "*")
	d.Shapes[shape.S] = entry(1, 1, true, "*")
	d.Shapes[shape.E] = entry(1, 1, true, "*")
	d.Shapes[shape.W] = entry(1, 1, true, "*")
	for _, p := range []shape.Position{shape.NNW, shape.NNE, shape.ENE, shape.ESE, shape.SSE, shape.SSW, shape.WSW, shape.WNW} {
		d.Shapes[p] = empty()
	}
	return d
}

// simpleDesign is a minimal ASCII box with plain '+'/'-'/'|' shapes,
// useful as a stable round-trip fixture.
func simpleDesign() *shape.Design {
	d := &shape.Design{
		Name:      "simple",
		Author:    "boxes",
		Sample:    "+------+\n|      |\n+------+",
		Indent:    shape.IndentBox,
		MinWidth:  6,
		MinHeight: 3,
		MaxShapeH: 1,
		Padding:   shape.Padding{Top: 0, Right: 1, Bottom: 0, Left: 1},
		Tags:      map[string]bool{"ascii": true},
	}
	d.Shapes[shape.NW] = entry(1, 1, false, "+")
	d.Shapes[shape.NE] = entry(1, 1, false, "+")
	d.Shapes[shape.SE] = entry(1, 1, false, "+")
	d.Shapes[shape.SW] = entry(1, 1, false, "+")
	d.Shapes[shape.N] = entry(1, 1, true, "-")
	d.Shapes[shape.S] = entry(1, 1, true, "-")
	d.Shapes[shape.E] = entry(1, 1, true, "|")
	d.Shapes[shape.W] = entry(1, 1, true, "|")
	for _, p := range []shape.Position{shape.NNW, shape.NNE, shape.ENE, shape.ESE, shape.SSE, shape.SSW, shape.WSW, shape.WNW} {
		d.Shapes[p] = empty()
	}
	return d
}

// stoneDesign exercises the three-edge, both-outer-elastic sizing path:
// NNW and NNE are elastic "=" runs flanking a fixed single "+" at N, so
// horizontal sizing must alternate growth between the two outer elastic
// slots to converge.
func stoneDesign() *shape.Design {
	d := &shape.Design{
		Name:      "stone",
		Aliases:   []string{"block"},
		Author:    "boxes",
		Sample:    "+==+==+\n| text |\n+==+==+",
		Indent:    shape.IndentBox,
		MinWidth:  9,
		MinHeight: 3,
		MaxShapeH: 1,
		Padding:   shape.Padding{Top: 0, Right: 1, Bottom: 0, Left: 1},
		Tags:      map[string]bool{"ascii": true},
	}
	d.Shapes[shape.NW] = entry(1, 1, false, "+")
	d.Shapes[shape.NE] = entry(1, 1, false, "+")
	d.Shapes[shape.SE] = entry(1, 1, false, "+")
	d.Shapes[shape.SW] = entry(1, 1, false, "+")
	d.Shapes[shape.NNW] = entry(1, 1, true, "=")
	d.Shapes[shape.NNE] = entry(1, 1, true, "=")
	d.Shapes[shape.SSW] = entry(1, 1, true, "=")
	d.Shapes[shape.SSE] = entry(1, 1, true, "=")
	d.Shapes[shape.N] = entry(1, 1, false, "+")
	d.Shapes[shape.S] = entry(1, 1, false, "+")
	d.Shapes[shape.E] = entry(1, 1, true, "|")
	d.Shapes[shape.W] = entry(1, 1, true, "|")
	for _, p := range []shape.Position{shape.ENE, shape.ESE, shape.WSW, shape.WNW} {
		d.Shapes[p] = empty()
	}
	return d
}

// Default returns the builtin catalog, in a fixed order so detection
// tie-breaking by catalog position is deterministic across runs.
func Default() []*shape.Design {
	return []*shape.Design{classicDesign(), simpleDesign(), stoneDesign()}
}

// AdHoc builds the -c/--create design: a box whose west (and, by
// mirroring, every other) shape is the string the user supplied. The
// string becomes every corner as a fixed shape and every edge as an
// elastic one, so it repeats to fill whatever size the input needs.
func AdHoc(str string) *shape.Design {
	if str == "" {
		str = " "
	}
	w := line(str).NumColumns
	d := &shape.Design{
		Name:      "ad-hoc",
		Indent:    shape.IndentBox,
		MinWidth:  2 * w,
		MinHeight: 2,
		MaxShapeH: 1,
		Padding:   shape.Padding{Left: 1, Right: 1},
	}
	corner := entry(1, w, false, str)
	d.Shapes[shape.NW] = corner
	d.Shapes[shape.NE] = cloneEntry(corner)
	d.Shapes[shape.SE] = cloneEntry(corner)
	d.Shapes[shape.SW] = cloneEntry(corner)
	d.Shapes[shape.N] = elasticClone(corner)
	d.Shapes[shape.S] = elasticClone(corner)
	d.Shapes[shape.E] = elasticClone(corner)
	d.Shapes[shape.W] = elasticClone(corner)
	for _, p := range []shape.Position{shape.NNW, shape.NNE, shape.ENE, shape.ESE, shape.SSE, shape.SSW, shape.WSW, shape.WNW} {
		d.Shapes[p] = empty()
	}
	return d
}

func cloneEntry(e *shape.Entry) *shape.Entry {
	lines := append([]*bxstring.BXString(nil), e.Lines...)
	return &shape.Entry{Height: e.Height, Width: e.Width, Elastic: e.Elastic, Lines: lines}
}

func elasticClone(e *shape.Entry) *shape.Entry {
	c := cloneEntry(e)
	c.Elastic = true
	return c
}
