// Package generate implements side assembly and output composition:
// turning a sized design plus an analyzed input into the final sequence
// of output rows.
package generate

import "github.com/stlalpha/boxes/internal/bxstring"
import "github.com/stlalpha/boxes/internal/shape"

// AssembleSide builds one side's strip of rows in natural top-to-bottom
// / left-to-right reading order. iltf is the per-edge-slot extent
// computed by sizing.Horizontal/VerticalPrecalc.
//
// Top and Bottom strips hold only the three edge shapes: their width is
// exactly the converged inner width, with no corner columns, since the
// corners are rendered separately as the first/last rows of the Left and
// Right strips, which DO carry their bracketing corners across their
// full height. The row composition can then write left[j], top[j],
// right[j] for a top-slab row without double-drawing the corner: the
// corner lives only in left[j]/right[j].
func AssembleSide(d *shape.Design, side shape.Side, iltf [3]int, targetExtent int) []*bxstring.BXString {
	switch side {
	case shape.Top, shape.Bottom:
		return assembleEdgeRows(d, side, iltf)
	default:
		return assembleVertical(d, side, iltf)
	}
}

// assembleEdgeRows builds a side's inner rectangle row by row, corners
// excluded: each row concatenates, per edge slot, that edge's line r
// repeated to fill iltf[k] columns. Top's 5-tuple already runs
// west-to-east; Bottom's (SE, SSE, S, SSW, SW) runs east-to-west, so its
// edge order is taken in reverse.
func assembleEdgeRows(d *shape.Design, side shape.Side, iltf [3]int) []*bxstring.BXString {
	positions := shape.SidePositions[side]
	edgeOrder := [3]int{0, 1, 2}
	if side == shape.Bottom {
		edgeOrder = [3]int{2, 1, 0}
	}
	h := sideHeight(d, positions)
	rows := make([]*bxstring.BXString, h)
	for r := 0; r < h; r++ {
		row := bxstring.FromRunes(nil)
		for _, k := range edgeOrder {
			e := d.Shapes[positions[1+k]]
			if e.Empty() || iltf[k] == 0 {
				continue
			}
			row = row.Concat(repeatLine(e.Lines[r%e.Height], e.Width, iltf[k]))
		}
		rows[r] = row
	}
	return rows
}

// assembleVertical stacks the side's upper corner, then its three edges
// top-to-bottom (cycling each edge's own lines to fill iltf[k] rows),
// then its lower corner. Right's 5-tuple (NE, ENE, E, ESE, SE) is already
// top-to-bottom; Left's (SW, WSW, W, WNW, NW) runs bottom-to-top, so its
// corner roles and edge order are taken in reverse.
func assembleVertical(d *shape.Design, side shape.Side, iltf [3]int) []*bxstring.BXString {
	positions := shape.SidePositions[side]
	upper, lower := positions[0], positions[4]
	edgeOrder := [3]int{0, 1, 2}
	if side == shape.Left {
		upper, lower = positions[4], positions[0]
		edgeOrder = [3]int{2, 1, 0}
	}

	var rows []*bxstring.BXString
	if c := d.Shapes[upper]; !c.Empty() {
		rows = append(rows, c.Lines...)
	}
	for _, k := range edgeOrder {
		e := d.Shapes[positions[1+k]]
		if e.Empty() || iltf[k] == 0 {
			continue
		}
		for i := 0; i < iltf[k]; i++ {
			rows = append(rows, e.Lines[i%e.Height])
		}
	}
	if c := d.Shapes[lower]; !c.Empty() {
		rows = append(rows, c.Lines...)
	}
	return rows
}

// sideHeight finds the shared height of a horizontal side's shapes,
// preferring either corner and falling back to the first present edge.
func sideHeight(d *shape.Design, positions [5]shape.Position) int {
	if c := d.Shapes[positions[0]]; !c.Empty() {
		return c.Height
	}
	if c := d.Shapes[positions[4]]; !c.Empty() {
		return c.Height
	}
	for _, p := range positions[1:4] {
		if e := d.Shapes[p]; !e.Empty() {
			return e.Height
		}
	}
	return 0
}

// repeatLine concatenates line with itself enough times to fill total
// columns, given it is unitWidth columns wide. total is always an exact
// multiple of unitWidth, since sizing only ever grows a slot by whole
// copies of its edge's width.
func repeatLine(line *bxstring.BXString, unitWidth, total int) *bxstring.BXString {
	if total <= 0 || unitWidth <= 0 {
		return bxstring.FromRunes(nil)
	}
	count := total / unitWidth
	parts := make([]*bxstring.BXString, count)
	for i := range parts {
		parts[i] = line
	}
	return bxstring.Concat(parts...)
}

