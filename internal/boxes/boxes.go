// Package boxes orchestrates the input reader, design
// selection/autodetection, and the generate/remove pipeline behind the
// three top-level actions a run can take: generate, remove, or mend
// (remove immediately followed by generate on the same input).
package boxes

import (
	"bufio"
	"io"

	"github.com/stlalpha/boxes/internal/boxerr"
	"github.com/stlalpha/boxes/internal/detect"
	"github.com/stlalpha/boxes/internal/generate"
	"github.com/stlalpha/boxes/internal/input"
	"github.com/stlalpha/boxes/internal/remove"
	"github.com/stlalpha/boxes/internal/shape"
)

// Action selects which of the three top-level operations Run performs.
type Action int

const (
	ActionGenerate Action = iota
	ActionRemove
	ActionMend
)

// Options configures one end-to-end run.
type Options struct {
	Catalog []*shape.Design
	// Design is the chosen design (-d/-c). Nil means "autodetect",
	// which is only valid for ActionRemove/ActionMend.
	Design *shape.Design

	Action Action

	TabWidth int
	TabMode  input.TabMode

	Generate generate.Options
	Remove   remove.Options
}

// FindDesign looks up name against a catalog's primary names and
// aliases, case-insensitively.
func FindDesign(catalog []*shape.Design, name string) (*shape.Design, error) {
	for _, d := range catalog {
		if d.MatchesName(name) {
			return d, nil
		}
	}
	return nil, boxerr.DesignNotFound(name)
}

// Run reads r, performs opts.Action, and writes the result to w followed
// by each line's EOL. It returns the design actually used (the chosen
// one, or the autodetected one), which callers may want to report.
func Run(r io.Reader, w io.Writer, opts Options) (*shape.Design, error) {
	removing := opts.Action == ActionRemove || opts.Action == ActionMend

	readOpts := input.Options{
		TabWidth: opts.TabWidth,
		TabMode:  opts.TabMode,
		Removing: removing,
	}
	if opts.Design != nil {
		readOpts.IndentMode = opts.Design.Indent
		if !removing {
			readOpts.Replace = opts.Design.Replace
		}
	}

	in, err := input.Read(r, readOpts)
	if err != nil {
		return nil, boxerr.Wrap(boxerr.KindInputIO, "reading input", err)
	}

	if first, end := in.NonBlankLineRange(); first == end {
		return opts.Design, nil
	}

	design := opts.Design
	if design == nil {
		if !removing {
			return nil, boxerr.Usagef("no design selected")
		}
		// Removing is always true on this path, so input.Read above
		// never stripped common indent regardless of an as-yet-unknown
		// design's indent mode. No re-read is needed once detection
		// picks the design.
		score := detect.Detect(opts.Catalog, in)
		if score == nil || score.Hits == 0 {
			return nil, boxerr.AutodetectFailed()
		}
		design = score.Design
	}

	genOpts := opts.Generate
	if genOpts.Padding == (shape.Padding{}) {
		genOpts.Padding = design.Padding
	}

	switch opts.Action {
	case ActionGenerate:
		return design, writeGenerated(w, design, in, genOpts)
	case ActionRemove:
		stripped, err := remove.Remove(design, in, opts.Remove)
		if err != nil {
			return design, err
		}
		return design, writeLines(w, stripped, opts.Generate.EOL)
	case ActionMend:
		mendOpts := opts.Remove
		mendOpts.Mend = true
		stripped, err := remove.Remove(design, in, mendOpts)
		if err != nil {
			return design, err
		}
		stripped.PrepareForMendGenerate(design.Indent)
		if len(design.Replace) > 0 {
			if err := stripped.ApplyRules(design.Replace); err != nil {
				return design, err
			}
		}
		return design, writeGenerated(w, design, stripped, genOpts)
	default:
		return design, boxerr.Internalf("unknown action %d", opts.Action)
	}
}

func writeGenerated(w io.Writer, d *shape.Design, in *input.Input, opts generate.Options) error {
	lines, err := generate.Generate(d, in, opts)
	if err != nil {
		return err
	}
	eol := opts.EOL
	if eol == "" {
		eol = "\n"
	}
	return writeStrings(w, lines, eol, in.FinalNewline)
}

func writeLines(w io.Writer, in *input.Input, eol string) error {
	if eol == "" {
		eol = "\n"
	}
	lines := make([]string, len(in.Lines))
	for i, l := range in.Lines {
		lines[i] = l.Text.TrimRight().String()
	}
	return writeStrings(w, lines, eol, in.FinalNewline)
}

func writeStrings(w io.Writer, lines []string, eol string, finalNewline bool) error {
	bw := bufio.NewWriter(w)
	for i, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return boxerr.Wrap(boxerr.KindOutputIO, "writing output", err)
		}
		if i < len(lines)-1 || finalNewline {
			if _, err := bw.WriteString(eol); err != nil {
				return boxerr.Wrap(boxerr.KindOutputIO, "writing output", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return boxerr.Wrap(boxerr.KindOutputIO, "flushing output", err)
	}
	return nil
}
