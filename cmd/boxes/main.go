// Command boxes surrounds, strips, or mends an ASCII/Unicode text box
// around stdin (or an input file). Flag handling supports short/long
// option pairs sharing one destination, a -help/-version printer, and
// explicit os.Exit codes instead of panics.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"golang.org/x/term"
	"golang.org/x/text/encoding/charmap"

	"github.com/stlalpha/boxes/internal/ansi"
	"github.com/stlalpha/boxes/internal/boxerr"
	"github.com/stlalpha/boxes/internal/boxes"
	"github.com/stlalpha/boxes/internal/catalog"
	"github.com/stlalpha/boxes/internal/generate"
	"github.com/stlalpha/boxes/internal/input"
	"github.com/stlalpha/boxes/internal/logging"
	"github.com/stlalpha/boxes/internal/remove"
	"github.com/stlalpha/boxes/internal/shape"
)

const version = "boxes (Go reimplementation) 1.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run implements the command-line surface over injectable streams so it
// can be exercised without touching the real process stdio.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, action, infile, outfile, err := parseArgs(args, stderr)
	if err != nil {
		if err == flagExitOK {
			return 0
		}
		fmt.Fprintln(stderr, err)
		printUsage(stderr)
		return boxerr.ExitCodeOf(err)
	}

	in := stdin
	if infile != "" {
		f, err := os.Open(infile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return boxerr.KindInputIO.ExitCode()
		}
		defer f.Close()
		in = f
	}

	decoded, err := decodeInput(in, opts.encoding, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return boxerr.KindInputIO.ExitCode()
	}

	runOpts := boxes.Options{
		Catalog:  opts.catalog,
		Design:   opts.design,
		Action:   action,
		TabWidth: opts.tabWidth,
		TabMode:  opts.tabMode,
		Generate: opts.generate,
		Remove:   opts.remove,
	}

	var outBuf bytes.Buffer
	_, runErr := boxes.Run(bytes.NewReader(decoded), &outBuf, runOpts)
	if runErr != nil {
		fmt.Fprintln(stderr, runErr)
		return boxerr.ExitCodeOf(runErr)
	}

	rendered := outBuf.Bytes()
	if !opts.useColor(os.Stdout) {
		rendered = []byte(ansiStrip(string(rendered)))
	}

	if outfile != "" {
		encoded, err := encodeOutput(rendered, opts.encoding, stderr)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return boxerr.KindOutputIO.ExitCode()
		}
		if err := os.WriteFile(outfile, encoded, 0o644); err != nil {
			fmt.Fprintln(stderr, err)
			return boxerr.KindOutputIO.ExitCode()
		}
		return 0
	}

	if _, err := stdout.Write(rendered); err != nil {
		fmt.Fprintln(stderr, err)
		return boxerr.KindOutputIO.ExitCode()
	}
	return 0
}

// flagExitOK signals -help/-version already printed their output and the
// process should exit 0 without further action.
var flagExitOK = fmt.Errorf("exit-ok")

type cliOptions struct {
	catalog  []*shape.Design
	design   *shape.Design
	encoding string
	tabWidth int
	tabMode  input.TabMode
	generate generate.Options
	remove   remove.Options
	// colorForce is nil for "--color"/"--no-color" unset (auto-detect
	// from the terminal), or a pointer to
	// the forced value.
	colorForce *bool
}

// useColor resolves --color/--no-color against terminal capability
// detection. boxes never interprets the ANSI it passes through; this
// only decides whether to strip it from the final rendered output when
// the destination can't display it.
func (o *cliOptions) useColor(out *os.File) bool {
	if o.colorForce != nil {
		return *o.colorForce
	}
	if !term.IsTerminal(int(out.Fd())) {
		return false
	}
	return colorprofile.Detect(out, os.Environ()) < colorprofile.Ascii
}

func ansiStrip(s string) string { return ansi.Strip(s) }

func parseArgs(args []string, stderr io.Writer) (*cliOptions, boxes.Action, string, string, error) {
	opts := &cliOptions{
		catalog:  catalog.Default(),
		tabWidth: 8,
		tabMode:  input.TabExpand,
		generate: generate.Options{EOL: "\n", TabWidth: 8},
	}
	action := boxes.ActionGenerate

	var (
		align      string
		create     string
		color      bool
		noColor    bool
		designName string
		eol        string
		configFile string
		help       bool
		indentMode string
		killBlank  bool
		noKill     bool
		mend       bool
		sizeSpec   string
		tabs       string
		remv       bool
		showVer    bool
		extra      string
		padding    string
	)

	rest, err := scanFlags(args, map[string]*string{
		"-a": &align, "--align": &align,
		"-c": &create, "--create": &create,
		"-d": &designName, "--design": &designName,
		"-e": &eol, "--eol": &eol,
		"-f": &configFile, "--config": &configFile,
		"-i": &indentMode, "--indent": &indentMode,
		"-n": &opts.encoding, "--encoding": &opts.encoding,
		"-p": &padding, "--padding": &padding,
		"-s": &sizeSpec, "--size": &sizeSpec,
		"-t": &tabs, "--tabs": &tabs,
		"-x": &extra, "--extra": &extra,
	}, map[string]*bool{
		"--color": &color, "--no-color": &noColor,
		"-h": &help, "--help": &help,
		"-k": &killBlank, "--kill-blank": &killBlank,
		"--no-kill-blank": &noKill,
		"-m": &mend, "--mend": &mend,
		"-r": &remv, "--remove": &remv,
		"-v": &showVer, "--version": &showVer,
	})
	if err != nil {
		return nil, action, "", "", err
	}

	if help {
		printUsage(stderr)
		return nil, action, "", "", flagExitOK
	}
	if showVer {
		fmt.Fprintln(stderr, version)
		return nil, action, "", "", flagExitOK
	}

	if extra != "" {
		applyExtra(extra)
	}

	if designName != "" {
		d, err := boxes.FindDesign(opts.catalog, designName)
		if err != nil {
			return nil, action, "", "", err
		}
		opts.design = d
	}
	if create != "" {
		opts.design = catalog.AdHoc(create)
	}

	if mend {
		action = boxes.ActionMend
		opts.remove.Mend = true
		opts.remove.KillBlank = false
	} else if remv {
		action = boxes.ActionRemove
	}
	if killBlank {
		opts.remove.KillBlank = true
	}
	if noKill {
		opts.remove.KillBlank = false
	}

	switch strings.ToUpper(eol) {
	case "":
	case "CRLF":
		opts.generate.EOL = "\r\n"
	case "LF":
		opts.generate.EOL = "\n"
	case "CR":
		opts.generate.EOL = "\r"
	default:
		return nil, action, "", "", boxerr.Usagef("invalid -e/--eol value %q", eol)
	}

	if indentMode != "" {
		switch indentMode {
		case "box":
			opts.generate.IndentMode = shape.IndentBox
			opts.remove.IndentMode = shape.IndentBox
		case "text":
			opts.generate.IndentMode = shape.IndentText
			opts.remove.IndentMode = shape.IndentText
		case "none":
			opts.generate.IndentMode = shape.IndentNone
			opts.remove.IndentMode = shape.IndentNone
		default:
			return nil, action, "", "", boxerr.Usagef("invalid -i/--indent value %q", indentMode)
		}
	} else if opts.design != nil {
		opts.generate.IndentMode = opts.design.Indent
		opts.remove.IndentMode = opts.design.Indent
	}

	if align != "" {
		if err := applyAlign(align, opts); err != nil {
			return nil, action, "", "", err
		}
	}
	if padding != "" {
		if err := applyPadding(padding, opts); err != nil {
			return nil, action, "", "", err
		}
	}
	if sizeSpec != "" {
		w, h, err := parseSize(sizeSpec)
		if err != nil {
			return nil, action, "", "", err
		}
		opts.generate.MinWidth, opts.generate.MinHeight = w, h
	}
	if tabs != "" {
		width, mode, err := parseTabs(tabs)
		if err != nil {
			return nil, action, "", "", err
		}
		opts.tabWidth, opts.tabMode = width, mode
		opts.generate.TabMode = mode
		opts.generate.TabWidth = width
	}

	_ = configFile // config-file discovery/parsing is handled by an external collaborator
	switch {
	case color:
		t := true
		opts.colorForce = &t
	case noColor:
		f := false
		opts.colorForce = &f
	}

	if opts.design == nil && action == boxes.ActionGenerate {
		opts.design = opts.catalog[0]
		if indentMode == "" {
			opts.generate.IndentMode = opts.design.Indent
			opts.remove.IndentMode = opts.design.Indent
		}
	}

	var infile, outfile string
	if len(rest) > 0 {
		infile = rest[0]
	}
	if len(rest) > 1 {
		outfile = rest[1]
	}

	return opts, action, infile, outfile, nil
}

// scanFlags is a small hand-rolled pass supporting both short (-a) and
// long (--align) option spellings sharing one destination, since the
// standard flag package does not let two names alias one variable
// without registering it twice under both forms, which is exactly what
// this does, driven by lookup tables instead of repeating every
// flag.StringVar/BoolVar call twice.
func scanFlags(args []string, strs map[string]*string, bools map[string]*bool) ([]string, error) {
	var rest []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if name, val, has := strings.Cut(a, "="); has && (strs[name] != nil || bools[name] != nil) {
			a = name
			if dst, ok := strs[a]; ok {
				*dst = val
				continue
			}
		}
		if dst, ok := strs[a]; ok {
			i++
			if i >= len(args) {
				return nil, boxerr.Usagef("option %s requires a value", a)
			}
			*dst = args[i]
			continue
		}
		if dst, ok := bools[a]; ok {
			*dst = true
			continue
		}
		if strings.HasPrefix(a, "-") && a != "-" {
			return nil, boxerr.Usagef("unknown option %s", a)
		}
		rest = append(rest, a)
	}
	return rest, nil
}

func applyAlign(spec string, opts *cliOptions) error {
	switch spec {
	case "l":
		opts.generate.JAlign, opts.generate.HAlign, opts.generate.VAlign = generate.JLeft, generate.HLeft, generate.VCenter
		return nil
	case "r":
		opts.generate.JAlign, opts.generate.HAlign, opts.generate.VAlign = generate.JRight, generate.HRight, generate.VCenter
		return nil
	case "c":
		opts.generate.JAlign, opts.generate.HAlign, opts.generate.VAlign = generate.JCenter, generate.HCenter, generate.VCenter
		return nil
	}
	for _, tok := range strings.Fields(spec) {
		if len(tok) < 2 {
			return boxerr.Usagef("invalid -a/--align token %q", tok)
		}
		kind, val := tok[0], tok[1]
		switch kind {
		case 'h':
			switch val {
			case 'l':
				opts.generate.HAlign = generate.HLeft
			case 'c':
				opts.generate.HAlign = generate.HCenter
			case 'r':
				opts.generate.HAlign = generate.HRight
			default:
				return boxerr.Usagef("invalid -a/--align token %q", tok)
			}
		case 'v':
			switch val {
			case 't':
				opts.generate.VAlign = generate.VTop
			case 'c':
				opts.generate.VAlign = generate.VCenter
			case 'b':
				opts.generate.VAlign = generate.VBottom
			default:
				return boxerr.Usagef("invalid -a/--align token %q", tok)
			}
		case 'j':
			switch val {
			case 'l':
				opts.generate.JAlign = generate.JLeft
			case 'c':
				opts.generate.JAlign = generate.JCenter
			case 'r':
				opts.generate.JAlign = generate.JRight
			default:
				return boxerr.Usagef("invalid -a/--align token %q", tok)
			}
		default:
			return boxerr.Usagef("invalid -a/--align token %q", tok)
		}
	}
	return nil
}

// applyPadding parses a -p/--padding spec: one or more "{a,h,v,t,r,b,l}N"
// terms, applied in order so a later term overrides an earlier
// one's effect on the same side.
func applyPadding(spec string, opts *cliOptions) error {
	for _, tok := range strings.Fields(spec) {
		if len(tok) < 2 {
			return boxerr.Usagef("invalid -p/--padding token %q", tok)
		}
		kind := tok[0]
		n, err := strconv.Atoi(tok[1:])
		if err != nil {
			return boxerr.Usagef("invalid -p/--padding token %q", tok)
		}
		p := &opts.generate.Padding
		switch kind {
		case 'a':
			p.Top, p.Right, p.Bottom, p.Left = n, n, n, n
		case 'h':
			p.Left, p.Right = n, n
		case 'v':
			p.Top, p.Bottom = n, n
		case 't':
			p.Top = n
		case 'r':
			p.Right = n
		case 'b':
			p.Bottom = n
		case 'l':
			p.Left = n
		default:
			return boxerr.Usagef("invalid -p/--padding token %q", tok)
		}
	}
	return nil
}

func parseSize(spec string) (w, h int, err error) {
	parts := strings.SplitN(strings.ToLower(spec), "x", 2)
	if len(parts) != 2 {
		return 0, 0, boxerr.Usagef("invalid -s/--size value %q, want WxH", spec)
	}
	w, err1 := strconv.Atoi(parts[0])
	h, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, boxerr.Usagef("invalid -s/--size value %q, want WxH", spec)
	}
	return w, h, nil
}

func parseTabs(spec string) (int, input.TabMode, error) {
	i := 0
	for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, 0, boxerr.Usagef("invalid -t/--tabs value %q", spec)
	}
	width, _ := strconv.Atoi(spec[:i])
	mode := input.TabExpand
	if i < len(spec) {
		switch spec[i] {
		case 'e':
			mode = input.TabExpand
		case 'k':
			mode = input.TabKeep
		case 'u':
			mode = input.TabUnexpand
		default:
			return 0, 0, boxerr.Usagef("invalid -t/--tabs mode %q", spec[i:])
		}
	}
	return width, mode, nil
}

func applyExtra(spec string) {
	const prefix = "debug:"
	if strings.HasPrefix(spec, prefix) {
		logging.EnableAreas(strings.TrimPrefix(spec, prefix))
	}
}

// decodeInput reads all of r and, when encoding names a non-UTF-8
// codepage, transcodes it to UTF-8 so the rest of the pipeline's
// internal UTF-32 representation always starts from valid UTF-8. An
// unrecognized -n value falls back to the system encoding with a
// warning.
func decodeInput(r io.Reader, encoding string, stderr io.Writer) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if encoding == "" || strings.EqualFold(encoding, "utf-8") || strings.EqualFold(encoding, "utf8") {
		return raw, nil
	}
	dec := codepageDecoder(encoding)
	if dec == nil {
		fmt.Fprintf(stderr, "warning: unknown encoding %q, using system encoding\n", encoding)
		return raw, nil
	}
	out, err := dec.Bytes(raw)
	if err != nil {
		return raw, nil
	}
	return out, nil
}

func encodeOutput(utf8 []byte, encoding string, stderr io.Writer) ([]byte, error) {
	if encoding == "" || strings.EqualFold(encoding, "utf-8") || strings.EqualFold(encoding, "utf8") {
		return utf8, nil
	}
	enc := codepageEncoder(encoding)
	if enc == nil {
		return utf8, nil
	}
	out, err := enc.Bytes(utf8)
	if err != nil {
		return utf8, nil
	}
	return out, nil
}

func codepageDecoder(name string) interface{ Bytes([]byte) ([]byte, error) } {
	switch strings.ToLower(name) {
	case "cp437", "ibm437":
		return charmap.CodePage437.NewDecoder()
	case "cp850", "ibm850":
		return charmap.CodePage850.NewDecoder()
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder()
	}
	return nil
}

func codepageEncoder(name string) interface{ Bytes([]byte) ([]byte, error) } {
	switch strings.ToLower(name) {
	case "cp437", "ibm437":
		return charmap.CodePage437.NewEncoder()
	case "cp850", "ibm850":
		return charmap.CodePage850.NewEncoder()
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewEncoder()
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: boxes [options] [infile [outfile]]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -a, --align <fmt>        alignment: h{l,c,r} v{t,c,b} j{l,c,r}, or l/r/c")
	fmt.Fprintln(w, "  -c, --create <str>       ad-hoc design with str as the west shape")
	fmt.Fprintln(w, "      --color/--no-color   force ANSI color on/off")
	fmt.Fprintln(w, "  -d, --design <name>      select a design by name or alias")
	fmt.Fprintln(w, "  -e, --eol <CRLF|LF|CR>   end-of-line override")
	fmt.Fprintln(w, "  -f, --config <file>      explicit config file (external collaborator)")
	fmt.Fprintln(w, "  -h, --help               this help")
	fmt.Fprintln(w, "  -i, --indent <mode>      box|text|none")
	fmt.Fprintln(w, "  -k, --kill-blank         kill blank lines on remove")
	fmt.Fprintln(w, "      --no-kill-blank      disable kill-blank")
	fmt.Fprintln(w, "  -m, --mend               remove then redraw")
	fmt.Fprintln(w, "  -n, --encoding <enc>     input/output encoding override")
	fmt.Fprintln(w, "  -p, --padding <fmt>      {a,h,v,t,r,b,l}<n>, repeatable")
	fmt.Fprintln(w, "  -r, --remove             remove box")
	fmt.Fprintln(w, "  -s, --size <WxH>         minimum box size")
	fmt.Fprintln(w, "  -t, --tabs <n[eku]>      tab stop and mode")
	fmt.Fprintln(w, "  -v, --version            print version")
	fmt.Fprintln(w, "  -x, --extra <arg>        debug:<area,area,...>")
}
