// Package bxstring implements an immutable, column- and
// visibility-aware string model. Every character is either
// visible (it contributes to display width) or invisible (it is part of
// an ANSI CSI escape sequence). All box generation and removal logic in
// this module operates over this type rather than over raw strings, so
// that tabs, double-wide glyphs, and ANSI color never throw off column
// arithmetic.
package bxstring

import (
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/stlalpha/boxes/internal/ansi"
)

// BXString is a single line (or fragment) of text. Treat values as
// read-only: every transformation below returns a new BXString rather
// than mutating the receiver.
type BXString struct {
	CodePoints    []rune
	AsciiShadow   string
	NumCodePoints int
	NumVisible    int
	NumInvisible  int
	NumColumns    int
	Indent        int
	Trailing      int
	// FirstOf[v] is the code-point index of the first code point
	// associated with visible character v: the start of any invisible
	// prefix preceding it. FirstOf[NumVisible] is the terminator slot,
	// pointing at any trailing invisible suffix (or at NumCodePoints).
	FirstOf []int
	// VisibleAt[v] is the code-point index of visible character v itself.
	VisibleAt []int
}

// FromASCII builds a BXString from a plain ASCII/UTF-8 Go string.
func FromASCII(s string) *BXString {
	return FromRunes([]rune(s))
}

// FromRunes builds a BXString from a sequence of Unicode scalar values
// (UTF-32 code points), scanning left to right and classifying ANSI CSI
// sequences as invisible.
func FromRunes(runes []rune) *BXString {
	b := &BXString{CodePoints: append([]rune(nil), runes...)}
	b.build()
	return b
}

func (b *BXString) build() {
	n := len(b.CodePoints)
	b.FirstOf = make([]int, 0, n+1)
	b.VisibleAt = make([]int, 0, n)

	pendingStart := -1 // -1 == no invisible prefix currently pending
	shadow := make([]rune, 0, n)

	i := 0
	for i < n {
		r := b.CodePoints[i]
		if r == ansi.ESC {
			if end, ok := ansi.ScanCSI(b.CodePoints, i); ok {
				if pendingStart == -1 {
					pendingStart = i
				}
				isReset := ansi.IsReset(b.CodePoints, i, end)
				b.NumInvisible += end - i
				i = end
				if isReset {
					pendingStart = -1
				}
				continue
			}
		}

		// Visible character.
		if pendingStart == -1 {
			b.FirstOf = append(b.FirstOf, i)
		} else {
			b.FirstOf = append(b.FirstOf, pendingStart)
			pendingStart = -1
		}
		b.VisibleAt = append(b.VisibleAt, i)
		b.NumVisible++

		width := columnWidth(r)
		b.NumColumns += width
		shadow = append(shadow, shadowRune(r, width)...)
		i++
	}

	// Terminator slot: any invisible suffix attaches here.
	if pendingStart == -1 {
		b.FirstOf = append(b.FirstOf, n)
	} else {
		b.FirstOf = append(b.FirstOf, pendingStart)
	}

	b.NumCodePoints = n
	b.AsciiShadow = string(shadow)
	b.Indent, b.Trailing = computeIndentTrailing(b.CodePoints, b.VisibleAt)
}

// columnWidth classifies a single visible code point's display width:
// 0 for combining marks, 1 or 2 for ordinary printable characters, with
// go-runewidth supplying the East Asian wide/fullwidth classification.
func columnWidth(r rune) int {
	if isBlank(r) {
		if r == '\t' {
			return 1 // tabs are expanded to spaces before bxstring sees them in normal use; treat raw tabs as one column
		}
		return runewidth.RuneWidth(r)
	}
	return runewidth.RuneWidth(r)
}

func isBlank(r rune) bool {
	return r == '\t' || unicode.IsSpace(r)
}

func shadowRune(r rune, width int) []rune {
	if width <= 0 {
		return nil
	}
	if isBlank(r) {
		out := make([]rune, width)
		for i := range out {
			out[i] = ' '
		}
		return out
	}
	if r < 0x80 && r >= 0x20 {
		out := make([]rune, width)
		out[0] = r
		for i := 1; i < width; i++ {
			out[i] = 'x'
		}
		return out
	}
	out := make([]rune, width)
	for i := range out {
		out[i] = 'x'
	}
	return out
}

// computeIndentTrailing scans the visible characters (in code-point
// order) to find the leading and trailing run of blank columns. A
// string that is entirely blank reports all of it as indent and zero
// trailing.
func computeIndentTrailing(codePoints []rune, visibleAt []int) (indent, trailing int) {
	if len(visibleAt) == 0 {
		return 0, 0
	}
	firstNonBlank := -1
	for idx, cpi := range visibleAt {
		if !isBlank(codePoints[cpi]) {
			firstNonBlank = idx
			break
		}
	}
	if firstNonBlank == -1 {
		// Entirely blank: all of it counts as indent, no trailing.
		for _, cpi := range visibleAt {
			indent += columnWidth(codePoints[cpi])
		}
		return indent, 0
	}
	for i := 0; i < firstNonBlank; i++ {
		indent += columnWidth(codePoints[visibleAt[i]])
	}
	lastNonBlank := len(visibleAt) - 1
	for lastNonBlank >= 0 && isBlank(codePoints[visibleAt[lastNonBlank]]) {
		lastNonBlank--
	}
	for i := lastNonBlank + 1; i < len(visibleAt); i++ {
		trailing += columnWidth(codePoints[visibleAt[i]])
	}
	return indent, trailing
}

// Len returns the number of Unicode scalar values (visible + invisible).
func (b *BXString) Len() int { return b.NumCodePoints }

// IsBlank reports whether every visible character is blank.
func (b *BXString) IsBlank() bool {
	return b.Indent == b.NumColumns
}

// Clone returns an independent deep copy.
func (b *BXString) Clone() *BXString {
	return FromRunes(b.CodePoints)
}
