package domain

import (
	"errors"
	"fmt"
)

// Kind classifies why a run stopped
type Kind int

const (
	KindConfiguration Kind = iota + 1 // missing module declaration, cursor outside a test, unsaved buffer
	KindToolMissing                   // rebar or erl not found
	KindCompile                       // unexpected build tool output
	KindRuntime                       // nonzero exit from the runtime
	KindTestFailure                   // the test ran and failed
)

var kindNames = map[Kind]string{
	KindConfiguration: "configuration error",
	KindToolMissing:   "tool missing",
	KindCompile:       "compile error",
	KindRuntime:       "runtime error",
	KindTestFailure:   "test failure",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "error"
}

// ExitCode maps a kind to the process exit code used by the CLI
func (k Kind) ExitCode() int {
	switch k {
	case KindTestFailure:
		return 1
	case KindConfiguration:
		return 2
	case KindToolMissing:
		return 3
	case KindCompile:
		return 4
	case KindRuntime:
		return 5
	}
	return 1
}

// Error is a run-terminating error. It supports wrapping via Unwrap so errors.Is/As work.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

// NewError creates an Error with a formatted message
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapError creates an Error that wraps an underlying cause
func WrapError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error of the same kind, so errors.Is(err, ErrToolMissing) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Cause == nil && t.Kind == e.Kind
}

// ExitCode returns the exit code for this error's kind
func (e *Error) ExitCode() int { return e.Kind.ExitCode() }

// Kind sentinels for errors.Is
var (
	ErrConfiguration = &Error{Kind: KindConfiguration}
	ErrToolMissing   = &Error{Kind: KindToolMissing}
	ErrCompile       = &Error{Kind: KindCompile}
	ErrRuntime       = &Error{Kind: KindRuntime}
	ErrTestFailure   = &Error{Kind: KindTestFailure}
)

// KindOf returns the kind of err, or 0 if err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ExitCodeOf extracts an exit code from any error, defaulting to 1
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return 1
}
