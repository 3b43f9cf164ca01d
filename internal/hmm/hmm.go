// Package hmm implements the backtracking shape matcher: it decides
// whether a horizontal side's prepared shape lines can explain a row of
// input, given elastic repetition and partial blank trimming at both
// ends.
package hmm

import "github.com/stlalpha/boxes/internal/bxstring"

// Line is one "prepared" shape line participating in the match: its
// text and whether it may repeat.
type Line struct {
	Text    *bxstring.BXString
	Elastic bool
}

// Match reports whether input[cur:end] (visible-index half-open range)
// can be tiled by shapes[shapeIdx:].
func Match(in *bxstring.BXString, cur, end int, shapes []Line, shapeIdx int, anchoredLeft, anchoredRight bool) bool {
	return match(in, cur, end, shapes, shapeIdx, anchoredLeft, anchoredRight)
}

func match(in *bxstring.BXString, cur, end int, shapes []Line, shapeIdx int, anchoredLeft, anchoredRight bool) bool {
	// Case 1: slide right when the left corner hasn't consumed anything
	// non-blank yet.
	if !anchoredLeft {
		if ok := trySlideRight(in, cur, end, shapes, shapeIdx, anchoredRight); ok {
			return true
		}
		if allEmpty(shapes, shapeIdx) {
			return isBlankRange(in, cur, end)
		}
		return false
	}

	// Case 2: input exhausted; remaining shapes must all be satisfiable
	// by emptiness.
	if cur == end {
		return allEmpty(shapes, shapeIdx)
	}

	// Case 3: shapes exhausted; remaining input must be blank.
	if shapeIdx >= len(shapes) {
		return isBlankRange(in, cur, end)
	}

	// Case 4: current shape empty, tail-recurse.
	if shapes[shapeIdx].Text == nil || shapes[shapeIdx].Text.NumVisible == 0 {
		return match(in, cur, end, shapes, shapeIdx+1, anchoredLeft, anchoredRight)
	}

	// Case 5: normal match attempt at cur.
	return matchHere(in, cur, end, shapes, shapeIdx, anchoredLeft, anchoredRight)
}

// trySlideRight handles case 1: scan shapes[shapeIdx:] for the first
// non-empty one, try to find it in [cur,end) after consuming only
// blanks, and recurse past it.
func trySlideRight(in *bxstring.BXString, cur, end int, shapes []Line, shapeIdx int, anchoredRight bool) bool {
	for i := shapeIdx; i < len(shapes); i++ {
		s := shapes[i]
		if s.Text == nil || s.Text.NumVisible == 0 {
			continue
		}
		for pos := cur; ; pos++ {
			if n, ok := tryMatchAt(in, pos, end, s.Text); ok {
				if match(in, pos+n, end, shapes, i+1, true, anchoredRight) {
					return true
				}
				if s.Elastic && match(in, pos+n, end, shapes, i, true, anchoredRight) {
					return true
				}
			}
			if pos >= end || !isBlankAt(in, pos) {
				break
			}
		}
		return false // only the first non-empty shape in range is ever tried
	}
	return false
}

// matchHere handles case 5: the current shape must match starting
// exactly at cur.
func matchHere(in *bxstring.BXString, cur, end int, shapes []Line, shapeIdx int, anchoredLeft, anchoredRight bool) bool {
	s := shapes[shapeIdx]
	text := s.Text

	if _, ok := tryMatchAt(in, cur, end, text); ok {
		next := cur + text.NumVisible
		if match(in, next, end, shapes, shapeIdx+1, anchoredLeft, anchoredRight) {
			return true
		}
		if s.Elastic && match(in, next, end, shapes, shapeIdx, anchoredLeft, anchoredRight) {
			return true
		}
	}

	if !anchoredRight {
		if shortened, ok := shortenFromRight(text); ok {
			shrunk := shapes[shapeIdx]
			shrunk.Text = shortened
			newShapes := append(append([]Line{}, shapes[:shapeIdx]...), append([]Line{shrunk}, shapes[shapeIdx+1:]...)...)
			return matchHere(in, cur, end, newShapes, shapeIdx, anchoredLeft, anchoredRight)
		}
	}
	return false
}

// tryMatchAt reports whether text occurs in in starting exactly at
// visible index cur, without exceeding end.
func tryMatchAt(in *bxstring.BXString, cur, end int, text *bxstring.BXString) (int, bool) {
	n := text.NumVisible
	if cur+n > end {
		return 0, false
	}
	candidate := in.Substring(cur, cur+n)
	if candidate.Equal(text) {
		return n, true
	}
	return 0, false
}

func isBlankAt(in *bxstring.BXString, i int) bool {
	return in.Substring(i, i+1).IsBlank()
}

func isBlankRange(in *bxstring.BXString, from, to int) bool {
	return in.Substring(from, to).IsBlank()
}

func allEmpty(shapes []Line, from int) bool {
	for i := from; i < len(shapes); i++ {
		if shapes[i].Text != nil && shapes[i].Text.NumVisible > 0 {
			return false
		}
	}
	return true
}

// shortenFromRight implements Shorten with prefer_left=false, removing
// one trailing blank if present. Only blanks may be removed, so a shape
// with no trailing blank cannot be shortened further.
func shortenFromRight(text *bxstring.BXString) (*bxstring.BXString, bool) {
	if text.NumVisible == 0 {
		return nil, false
	}
	last := text.Substring(text.NumVisible-1, text.NumVisible)
	if !last.IsBlank() {
		return nil, false
	}
	return text.Substring(0, text.NumVisible-1), true
}
