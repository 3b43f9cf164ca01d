// Package ansi recognizes ANSI CSI escape sequences within a stream of
// Unicode code points and classifies which of them are "resets", the
// handful of SGR sequences that clear accumulated color/attribute
// state. bxstring's construction scan builds on it, and cmd/boxes uses
// its Strip to drop color from the rendered output.
package ansi

import "github.com/charmbracelet/x/ansi"

// ESC is the escape code point that starts every CSI sequence.
const ESC = 0x1b

// CSIIntroducer reports whether r can follow ESC to start a CSI sequence.
// The accepted grammar allows both the standard '[' and the legacy '('
// introducer used by some of the original tool's designs.
func CSIIntroducer(r rune) bool {
	return r == '[' || r == '('
}

// IsParamOrIntermediate reports whether r is a CSI parameter or
// intermediate byte (anything between the introducer and the final byte).
func IsParamOrIntermediate(r rune) bool {
	return r >= 0x20 && r < 0x40
}

// IsFinalByte reports whether r terminates a CSI sequence.
func IsFinalByte(r rune) bool {
	return r >= 0x40 && r <= 0x7e
}

// ScanCSI attempts to scan a CSI sequence starting at runes[i], where
// runes[i] is assumed to be ESC. It returns the exclusive end index of the
// sequence (pointing one past the final byte) and true on success. On
// failure (not actually a CSI sequence, or an unterminated one at EOF) it
// returns i+1 and false: callers should treat runes[i] as an ordinary,
// rejected control character rather than consume more input.
func ScanCSI(runes []rune, i int) (end int, ok bool) {
	n := len(runes)
	if i >= n || runes[i] != ESC {
		return i + 1, false
	}
	if i+1 >= n || !CSIIntroducer(runes[i+1]) {
		return i + 1, false
	}
	j := i + 2
	for j < n && IsParamOrIntermediate(runes[j]) {
		j++
	}
	if j >= n || !IsFinalByte(runes[j]) {
		return i + 1, false
	}
	return j + 1, true
}

// resetSuffixes enumerates the parameter+final-byte tails (after the
// introducer) recognized as a "CSI reset": ESC[0m, ESC[m,
// ESC[10m, ESC[39m, ESC[49m, ESC[59m, ESC[75m, and the same seven with '('
// in place of '['.
var resetSuffixes = map[string]bool{
	"0m":  true,
	"m":   true,
	"10m": true,
	"39m": true,
	"49m": true,
	"59m": true,
	"75m": true,
}

// IsReset reports whether the CSI sequence runes[i:end] (as returned by
// ScanCSI) is a reset sequence. Resets clear bxstring's
// "pending invisible prefix" so a subsequent visible character is not
// annotated with a stale color run.
func IsReset(runes []rune, i, end int) bool {
	if end-i < 3 {
		return false
	}
	if runes[i] != ESC || !CSIIntroducer(runes[i+1]) {
		return false
	}
	suffix := string(runes[i+2 : end])
	return resetSuffixes[suffix]
}

// Strip removes ANSI escape sequences from s, returning only the visible
// text. Used by cmd/boxes when color output is off.
func Strip(s string) string {
	return ansi.Strip(s)
}
