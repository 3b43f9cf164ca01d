package bxstring

import (
	"fmt"

	"github.com/stlalpha/boxes/internal/ansi"
)

// Substring returns the visible characters [from, to) (half-open, in
// visible-index space), along with any invisible runs attached to them.
// The result ends at FirstOf[to], so an invisible suffix held in the
// receiver's terminator slot is never included; a reset after the last
// visible character is not held there and is kept when to == NumVisible.
func (b *BXString) Substring(from, to int) *BXString {
	if from < 0 {
		from = 0
	}
	if to > b.NumVisible {
		to = b.NumVisible
	}
	if from >= to {
		return FromRunes(nil)
	}
	start := b.FirstOf[from]
	end := b.FirstOf[to]
	return FromRunes(b.CodePoints[start:end])
}

// SubstringTrim is Substring followed by a TrimBoth.
func (b *BXString) SubstringTrim(from, to int) *BXString {
	return b.Substring(from, to).TrimBoth()
}

// Concat appends other after the receiver.
func (b *BXString) Concat(other *BXString) *BXString {
	if b.NumVisible == 0 && b.NumInvisible == 0 {
		return other.Clone()
	}
	if other.NumVisible == 0 && other.NumInvisible == 0 {
		return b.Clone()
	}
	combined := make([]rune, 0, len(b.CodePoints)+len(other.CodePoints))
	combined = append(combined, b.CodePoints...)
	combined = append(combined, other.CodePoints...)
	return FromRunes(combined)
}

// Concat is a package-level convenience for chaining many fragments,
// as the generator does when assembling a row from indent, left shape,
// padding, content, and right shape.
func Concat(parts ...*BXString) *BXString {
	if len(parts) == 0 {
		return FromRunes(nil)
	}
	result := parts[0]
	for _, p := range parts[1:] {
		result = result.Concat(p)
	}
	return result
}

// IndexRune searches for r among the receiver's visible characters,
// returning its visible index or -1. IndexRuneFrom resumes the search
// starting at visible index from.
func (b *BXString) IndexRune(r rune) int {
	return b.IndexRuneFrom(r, 0)
}

func (b *BXString) IndexRuneFrom(r rune, from int) int {
	for v := from; v < b.NumVisible; v++ {
		if b.CodePoints[b.VisibleAt[v]] == r {
			return v
		}
	}
	return -1
}

// CutFrontColumns removes leading visible characters totalling n display
// columns (and any invisible prefix attached to them). It is used to
// strip a common indent, which is measured in columns rather than
// characters. n must land on a character boundary, which is true
// whenever n does not exceed the receiver's Indent, since that entire
// region is blank and single-column blanks are the overwhelmingly common
// case.
func (b *BXString) CutFrontColumns(n int) *BXString {
	if n <= 0 {
		return b.Clone()
	}
	col := 0
	v := 0
	for v < b.NumVisible && col < n {
		col += columnWidth(b.CodePoints[b.VisibleAt[v]])
		v++
	}
	return b.CutFront(v)
}

// CutFront removes n visible characters (and any invisible prefix
// attached to them) from the front, returning the remainder.
func (b *BXString) CutFront(n int) *BXString {
	if n <= 0 {
		return b.Clone()
	}
	if n >= b.NumVisible {
		// Keep only a trailing invisible suffix, if any.
		start := b.FirstOf[b.NumVisible]
		return FromRunes(b.CodePoints[start:])
	}
	start := b.FirstOf[n]
	return FromRunes(b.CodePoints[start:])
}

// TrimLeft drops leading blank visible characters (and their attached
// invisible prefixes).
func (b *BXString) TrimLeft() *BXString {
	v := 0
	for v < b.NumVisible && isBlank(b.CodePoints[b.VisibleAt[v]]) {
		v++
	}
	return b.CutFront(v)
}

// TrimRight drops trailing blank visible characters. Invisible code
// points among or after those blanks are kept.
func (b *BXString) TrimRight() *BXString {
	v := b.NumVisible
	for v > 0 && isBlank(b.CodePoints[b.VisibleAt[v-1]]) {
		v--
	}
	return b.Substring(0, v).Concat(b.trailingInvisibleSuffix(v))
}

// trailingInvisibleSuffix returns the invisible code points from
// FirstOf[from] onward, skipping the visible characters among them, so
// TrimRight doesn't discard a reset sequence that was only there to close
// out color state.
func (b *BXString) trailingInvisibleSuffix(from int) *BXString {
	var out []rune
	cp := b.FirstOf[from]
	for v := from; v < b.NumVisible; v++ {
		out = append(out, b.CodePoints[cp:b.VisibleAt[v]]...)
		cp = b.VisibleAt[v] + 1
	}
	out = append(out, b.CodePoints[cp:]...)
	return FromRunes(out)
}

// TrimBoth trims both ends.
func (b *BXString) TrimBoth() *BXString {
	return b.TrimLeft().TrimRight()
}

// PrependSpaces returns a new BXString with n ASCII space characters
// inserted at the front.
func (b *BXString) PrependSpaces(n int) *BXString {
	if n <= 0 {
		return b.Clone()
	}
	return FromRunes(spaces(n)).Concat(b)
}

// AppendSpaces returns a new BXString with n ASCII space characters
// appended at the end.
func (b *BXString) AppendSpaces(n int) *BXString {
	if n <= 0 {
		return b.Clone()
	}
	return b.Concat(FromRunes(spaces(n)))
}

func spaces(n int) []rune {
	out := make([]rune, n)
	for i := range out {
		out[i] = ' '
	}
	return out
}

// VisibleOnly strips every invisible code point, keeping only the
// visible characters. Used by the ignore-invisible-* detector modes and
// the remover's color-removed body-row matching.
func (b *BXString) VisibleOnly() *BXString {
	out := make([]rune, b.NumVisible)
	for v, cpi := range b.VisibleAt {
		out[v] = b.CodePoints[cpi]
	}
	return FromRunes(out)
}

// Equal is a case-sensitive, code-point-exact comparison.
func (b *BXString) Equal(other *BXString) bool {
	if len(b.CodePoints) != len(other.CodePoints) {
		return false
	}
	for i, r := range b.CodePoints {
		if other.CodePoints[i] != r {
			return false
		}
	}
	return true
}

// String renders the receiver back to a Go string.
func (b *BXString) String() string {
	return string(b.CodePoints)
}

// Context names one of the five per-use character-class predicates.
type Context int

const (
	ContextAnywhere Context = iota
	ContextInShape
	ContextInSample
	ContextInFilename
	ContextInKV
)

func allowedControl(r rune, ctx Context) bool {
	switch ctx {
	case ContextAnywhere, ContextInSample:
		return r == '\r' || r == '\n' || r == ansi.ESC
	case ContextInShape:
		return r == ansi.ESC
	case ContextInFilename, ContextInKV:
		return false
	default:
		return false
	}
}

// isControl reports whether r is a C0 control character other than TAB,
// which every context accepts unconditionally.
func isControl(r rune) bool {
	return (r < 0x20 || r == 0x7f) && r != '\t'
}

// Validate walks the receiver's raw code points (visible and invisible)
// and rejects any control character not admitted by ctx.
// A well-formed CSI sequence is accepted as a unit
// whenever ESC itself is admitted by ctx; its parameter/final bytes are
// ordinary printable ASCII and never rejected on their own.
func (b *BXString) Validate(ctx Context) error {
	cp := b.CodePoints
	i := 0
	for i < len(cp) {
		r := cp[i]
		if isControl(r) && !allowedControl(r, ctx) {
			return fmt.Errorf("disallowed character %U at code point %d", r, i)
		}
		if r == ansi.ESC {
			if end, ok := ansi.ScanCSI(cp, i); ok {
				i = end
				continue
			}
		}
		i++
	}
	return nil
}
