// Package input implements the input model: reading lines,
// expanding tabs, recording common indentation, and applying forward
// substitution rules before generation.
package input

import (
	"bufio"
	"fmt"
	"io"
	"regexp"

	"github.com/stlalpha/boxes/internal/bxstring"
	"github.com/stlalpha/boxes/internal/shape"
)

// maxLineBytes bounds a single input line, guarding against unbounded
// memory growth on pathological input.
const maxLineBytes = 1 << 20

// TabMode selects how tabs are handled (-t n[eku]).
type TabMode int

const (
	TabExpand   TabMode = iota // e: expand, don't remember original positions
	TabKeep                    // k: expand, remember positions for later restoration
	TabUnexpand                // u: expand, then write the output's common indent as tabs
)

// Line is one line of input text.
type Line struct {
	Text *bxstring.BXString
	// TabPositions records the columns at which a tab was expanded,
	// populated only when TabMode is TabKeep, so the exact tab pattern
	// can be re-emitted within the leading indent on output.
	TabPositions []int
}

// Input is the full, read-once (or twice, in mend mode) input model.
type Input struct {
	Lines        []Line
	MaxColumns   int
	CommonIndent int
	FinalNewline bool
}

// Options configures reading and analysis.
type Options struct {
	TabWidth int
	TabMode  TabMode
	// Removing indicates this read is feeding the remover rather than
	// the generator: common indent is not stripped from the lines (the
	// remover restores it explicitly in its own write-back phase), since
	// removal needs to see the box as the user actually typed it.
	Removing bool
	// IndentMode mirrors the chosen design's indentation mode; common
	// indent is only stripped when it is not IndentText.
	IndentMode shape.IndentMode
	// Replace are the design's forward substitution rules, applied after
	// analysis. Nil when no design is yet known (e.g.
	// during detection).
	Replace []shape.Rule
}

// Read reads lines from r, expands tabs, builds each line's bxstring,
// computes MaxColumns/CommonIndent, strips common indent where
// applicable, and applies forward substitution rules.
func Read(r io.Reader, opts Options) (*Input, error) {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 8
	}

	raw, finalNewline, err := readRawLines(r)
	if err != nil {
		return nil, err
	}

	in := &Input{FinalNewline: finalNewline}
	in.Lines = make([]Line, len(raw))
	for i, text := range raw {
		expanded, tabPositions := expandTabs(text, opts.TabWidth, opts.TabMode)
		in.Lines[i] = Line{
			Text:         bxstring.FromASCII(expanded),
			TabPositions: tabPositions,
		}
	}

	in.recompute()

	if !opts.Removing && opts.IndentMode != shape.IndentText && in.CommonIndent > 0 {
		in.stripCommonIndent()
	}

	if len(opts.Replace) > 0 {
		if err := in.applyRules(opts.Replace); err != nil {
			return nil, err
		}
	}

	return in, nil
}

// readRawLines splits r into lines, stripping a trailing CR and/or LF
// from each. It reports whether the final line in the input ended with a
// newline, so the generator/remover can decide whether to append one to
// the last emitted row.
func readRawLines(r io.Reader) ([]string, bool, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	var lines []string
	finalNewline := false

	for {
		chunk, err := br.ReadString('\n')
		if len(chunk) > maxLineBytes {
			return nil, false, fmt.Errorf("input line exceeds %d bytes", maxLineBytes)
		}
		if len(chunk) == 0 && err != nil {
			break // clean EOF, nothing left to flush
		}

		hadNewline := len(chunk) > 0 && chunk[len(chunk)-1] == '\n'
		if hadNewline {
			chunk = chunk[:len(chunk)-1]
		}
		if len(chunk) > 0 && chunk[len(chunk)-1] == '\r' {
			chunk = chunk[:len(chunk)-1]
		}
		finalNewline = hadNewline
		lines = append(lines, chunk)

		if err != nil {
			break // err is io.EOF here; the unterminated final chunk was already flushed above
		}
	}
	return lines, finalNewline, nil
}

// expandTabs replaces tabs with spaces up to the next tab stop, and (in
// TabKeep mode) records the pre-expansion column of each tab.
func expandTabs(s string, width int, mode TabMode) (string, []int) {
	var out []rune
	var positions []int
	col := 0
	for _, r := range s {
		if r == '\t' {
			if mode == TabKeep {
				positions = append(positions, col)
			}
			next := ((col / width) + 1) * width
			for col < next {
				out = append(out, ' ')
				col++
			}
			continue
		}
		out = append(out, r)
		col++ // column-exact width accounting happens later via bxstring; this is a byte-position proxy sufficient for tab-stop math on ASCII/box content
	}
	return string(out), positions
}

// recompute recalculates MaxColumns and CommonIndent from the current
// line set.
func (in *Input) recompute() {
	in.MaxColumns = 0
	minIndent := -1
	for _, l := range in.Lines {
		if l.Text.NumColumns > in.MaxColumns {
			in.MaxColumns = l.Text.NumColumns
		}
		if l.Text.IsBlank() {
			continue
		}
		if minIndent == -1 || l.Text.Indent < minIndent {
			minIndent = l.Text.Indent
		}
	}
	if minIndent == -1 {
		minIndent = 0
	}
	in.CommonIndent = minIndent
}

func (in *Input) stripCommonIndent() {
	for i := range in.Lines {
		in.Lines[i].Text = in.Lines[i].Text.CutFrontColumns(in.CommonIndent)
	}
	in.MaxColumns -= in.CommonIndent
	if in.MaxColumns < 0 {
		in.MaxColumns = 0
	}
}

// applyRules runs each forward replacement rule, in order, over every
// line's string form, rebuilding the line's bxstring afterward so its
// metrics stay consistent.
func (in *Input) applyRules(rules []shape.Rule) error {
	for i := range in.Lines {
		text := in.Lines[i].Text.String()
		for _, rule := range rules {
			re, ok := rule.Pattern.(*regexp.Regexp)
			if !ok {
				return fmt.Errorf("replacement rule %q: not a compiled regexp", rule.Source)
			}
			if rule.Mode == shape.RuleOnce {
				loc := re.FindStringIndex(text)
				if loc == nil {
					continue
				}
				text = text[:loc[0]] + re.ReplaceAllString(text[loc[0]:loc[1]], rule.Replacement) + text[loc[1]:]
			} else {
				text = re.ReplaceAllString(text, rule.Replacement)
			}
		}
		in.Lines[i].Text = bxstring.FromASCII(text)
	}
	in.recompute()
	return nil
}

// Recompute is the exported form of recompute, used by the remover after
// it has rewritten the line set to re-derive MaxColumns/CommonIndent for
// the stripped body.
func (in *Input) Recompute() { in.recompute() }

// ApplyReverseRules runs a design's reverse rules over the (already
// unboxed) body text, reusing the same substitution machinery as the
// forward rules applied on read.
func (in *Input) ApplyReverseRules(rules []shape.Rule) error {
	return in.applyRules(rules)
}

// ApplyRules is the exported form of applyRules, used by the mend
// orchestrator to re-apply a design's forward substitution rules
// to a body that was just produced by the remover, before handing it to
// the generator as the second phase of one mend run.
func (in *Input) ApplyRules(rules []shape.Rule) error {
	return in.applyRules(rules)
}

// PrepareForMendGenerate re-derives MaxColumns/CommonIndent and, unless
// mode is IndentText, strips the common indent back off the body lines
// the remover just restored, putting the Input back into the same
// shape a fresh Read would have produced, so the generate half of a mend
// run re-adds exactly that indent via its own indent prefix instead of
// doubling it.
func (in *Input) PrepareForMendGenerate(mode shape.IndentMode) {
	in.recompute()
	if mode != shape.IndentText {
		in.stripCommonIndent()
	}
}

// NonBlankLineRange returns the index of the first and one-past-the-last
// non-blank line, or (0, 0) if the input is entirely blank. An entirely
// blank input must exit cleanly without output.
func (in *Input) NonBlankLineRange() (first, end int) {
	first, end = -1, -1
	for i, l := range in.Lines {
		if !l.Text.IsBlank() {
			if first == -1 {
				first = i
			}
			end = i + 1
		}
	}
	if first == -1 {
		return 0, 0
	}
	return first, end
}
