// Package boxerr implements the error-kind/exit-code model: every
// fallible operation returns a plain error, and a small set of kinds
// carries the canonical exit code a caller (only cmd/boxes's main)
// should use when it prints the error and stops, without calling
// os.Exit from library code.
package boxerr

import "fmt"

// Kind distinguishes the error categories.
type Kind int

const (
	// KindUsage is a bad option or bad option value.
	KindUsage Kind = iota
	// KindInputIO is "cannot open input" / a read failure.
	KindInputIO
	// KindOutputIO is "cannot open output".
	KindOutputIO
	// KindConfig is a config-file syntax/validation error.
	KindConfig
	// KindDesignSelection is a named design that does not exist.
	KindDesignSelection
	// KindAutodetect is autodetection failure during remove.
	KindAutodetect
	// KindInternal is a programmer-error invariant violation.
	KindInternal
)

// ExitCode returns the canonical process exit code for k:
// 0 success (never produced by an error), 1 general error, 9 cannot open
// input, 10 cannot open output.
func (k Kind) ExitCode() int {
	switch k {
	case KindInputIO:
		return 9
	case KindOutputIO:
		return 10
	default:
		return 1
	}
}

// Error is a kinded error carrying its canonical exit code.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a kinded error from a message.
func New(k Kind, msg string) *Error {
	return &Error{Kind: k, Msg: msg}
}

// Wrap builds a kinded error wrapping an underlying cause.
func Wrap(k Kind, msg string, err error) *Error {
	return &Error{Kind: k, Msg: msg, Err: err}
}

// Usagef builds a KindUsage error.
func Usagef(format string, args ...any) *Error {
	return New(KindUsage, fmt.Sprintf(format, args...))
}

// Configf builds a KindConfig error in the "file: line: message" shape.
// file/line are zero-valued by external collaborators that have not yet
// attached position info.
func Configf(file string, line int, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	if file != "" {
		if line > 0 {
			msg = fmt.Sprintf("%s: %d: %s", file, line, msg)
		} else {
			msg = fmt.Sprintf("%s: %s", file, msg)
		}
	}
	return New(KindConfig, msg)
}

// Internalf builds a KindInternal error, printed with an "internal
// error" prefix.
func Internalf(format string, args ...any) *Error {
	return New(KindInternal, "internal error: "+fmt.Sprintf(format, args...))
}

// AutodetectFailed is the fixed message reported when autodetection
// fails during remove.
func AutodetectFailed() *Error {
	return New(KindAutodetect, "Box design autodetection failed. Use -d option.")
}

// DesignNotFound reports a -d/-c name that does not match any catalog
// design or alias.
func DesignNotFound(name string) *Error {
	return New(KindDesignSelection, fmt.Sprintf("invalid design name: %q", name))
}

// ExitCodeOf returns the canonical exit code for any error: kinded
// errors per their Kind, anything else as the general-error code 1.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	if be, ok := err.(*Error); ok {
		return be.Kind.ExitCode()
	}
	return 1
}
