// Package sizing computes, for a chosen design and an input extent, how
// many times each of a side's elastic edge shapes must repeat so that
// fixed and elastic shape fragments tile correctly on both axes.
package sizing

import "github.com/stlalpha/boxes/internal/shape"

// Horizontal holds the converged per-side elastic-repetition result for
// the top and bottom sides: each side's three edge slots ("iltf",
// individual lines/columns to fill) record how many columns that edge
// must contribute, and Width is the common converged inner box width.
type Horizontal struct {
	TopILTF, BotILTF [3]int
	Width            int
}

// Vertical is Horizontal's counterpart for the left and right sides,
// in lines instead of columns.
type Vertical struct {
	LeftILTF, RightILTF [3]int
	Height              int
}

// HorizontalPrecalc sizes the top and bottom sides together.
// targetWidth should already reflect
// max(input.max_columns, design.min_width - width(NW) - width(NE)); the
// caller computes that since it requires the NW/NE widths already in
// scope at the call site.
func HorizontalPrecalc(d *shape.Design, targetWidth int) Horizontal {
	top := newEdgeSide(d, shape.Top, targetWidth)
	bot := newEdgeSide(d, shape.Bottom, targetWidth)

	converge(top, bot, targetWidth)

	return Horizontal{TopILTF: top.iltf, BotILTF: bot.iltf, Width: top.width}
}

// VerticalPrecalc is HorizontalPrecalc's counterpart for height.
func VerticalPrecalc(d *shape.Design, targetHeight int) Vertical {
	left := newEdgeSideVertical(d, shape.Left, targetHeight)
	right := newEdgeSideVertical(d, shape.Right, targetHeight)

	converge(left, right, targetHeight)

	return Vertical{LeftILTF: left.iltf, RightILTF: right.iltf, Height: left.width}
}

// edgeSide tracks one side's three edge slots (the middle three of its
// 5-tuple) during convergence. "width" is overloaded to mean height for
// the vertical pass; the two are structurally identical.
type edgeSide struct {
	widths  [3]int // each edge's natural width/height
	elastic [3]bool
	present [3]bool
	iltf    [3]int
	width   int
	toggle  int // alternates which outer edge grows when both are elastic
}

func newEdgeSide(d *shape.Design, side shape.Side, target int) *edgeSide {
	positions := shape.SidePositions[side]
	s := &edgeSide{}
	any := false
	for i, p := range positions[1:4] {
		e := d.Shapes[p]
		if e.Empty() {
			continue
		}
		s.widths[i] = e.Width
		s.elastic[i] = e.Elastic
		s.present[i] = true
		any = true
	}
	if !any {
		s.width = target // an empty side trivially matches any target
	}
	return s
}

func newEdgeSideVertical(d *shape.Design, side shape.Side, target int) *edgeSide {
	positions := shape.SidePositions[side]
	s := &edgeSide{}
	any := false
	for i, p := range positions[1:4] {
		e := d.Shapes[p]
		if e.Empty() {
			continue
		}
		s.widths[i] = e.Height
		s.elastic[i] = e.Elastic
		s.present[i] = true
		any = true
	}
	if !any {
		s.width = target
	}
	return s
}

// converge runs the two-sides-balanced loop: repeatedly grow whichever
// side is currently behind (ties broken toward a, i.e. top/left) until
// both sides have reached target and are equal to each other. A side
// with no edges at all takes on the other side's converged width. A
// design passing shape.Design.Validate always has at least one elastic
// edge per non-empty side, so this always terminates.
func converge(a, b *edgeSide, target int) {
	for a.width < target || b.width < target || a.width != b.width {
		cur, other := a, b
		if a.width > b.width {
			cur, other = b, a
		}
		if !cur.grow() {
			if !cur.present[0] && !cur.present[1] && !cur.present[2] {
				cur.width = other.width
				continue
			}
			break // a validated design never reaches this
		}
	}
}

// grow allocates the next slot this side's edge count calls for:
// non-elastics once each, then elastics repeatedly (alternating
// between two outer elastics when both are present). Returns false if no
// further growth is possible.
func (s *edgeSide) grow() bool {
	numsh := 0
	for _, p := range s.present {
		if p {
			numsh++
		}
	}

	switch numsh {
	case 0:
		return false
	case 1:
		idx := s.onlyPresent()
		return s.allocate(idx)
	case 2:
		i0, i1 := s.twoPresent()
		nonElastic, elastic := i0, i1
		if s.elastic[i0] {
			nonElastic, elastic = i1, i0
		}
		if s.iltf[nonElastic] == 0 {
			return s.allocate(nonElastic)
		}
		return s.allocate(elastic)
	case 3:
		for i := 0; i < 3; i++ {
			if s.present[i] && !s.elastic[i] && s.iltf[i] == 0 {
				return s.allocate(i)
			}
		}
		if s.present[0] && s.elastic[0] && s.present[2] && s.elastic[2] {
			idx := 0
			if s.toggle == 1 {
				idx = 2
			}
			s.toggle = 1 - s.toggle
			return s.allocate(idx)
		}
		for i := 0; i < 3; i++ {
			if s.present[i] && s.elastic[i] {
				return s.allocate(i)
			}
		}
		return false
	}
	return false
}

func (s *edgeSide) allocate(idx int) bool {
	s.iltf[idx] += s.widths[idx]
	s.width += s.widths[idx]
	return true
}

func (s *edgeSide) onlyPresent() int {
	for i, p := range s.present {
		if p {
			return i
		}
	}
	return -1
}

func (s *edgeSide) twoPresent() (int, int) {
	var out []int
	for i, p := range s.present {
		if p {
			out = append(out, i)
		}
	}
	return out[0], out[1]
}
