// Package errors is a drop-in replacement for the standard library errors package that lets errors carry
// [slog.Attr] annotations and the source location where they were wrapped.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// The standard library functions are re-exported so that importing this package is enough.
//
//nolint:gochecknoglobals // aliases to the standard library.
var (
	New    = errors.New
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

type annotatedError struct {
	msg   string
	cause error
	attrs []slog.Attr
	pc    uintptr
}

func (e *annotatedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.cause
}

// NewSentinel creates an error meant to be declared as a package level variable and compared with [Is].
//
// Sentinels don't record a source location since they are created at init time.
func NewSentinel(msg string) error {
	return &annotatedError{msg: msg, cause: nil, attrs: nil, pc: 0}
}

// Wrap annotates err with a message and optional attributes. The caller location is recorded and
// reported by [SlogError].
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, cause: err, attrs: attrs, pc: callerPC(3)} //nolint:mnd // skip Callers and Wrap.
}

// DecoratePanic converts a recovered panic value into an error that points to the panicking line.
// Returns nil when excp is nil.
func DecoratePanic(excp any) error {
	if excp == nil {
		return nil
	}
	var cause error
	switch v := excp.(type) {
	case error:
		cause = v
	default:
		cause = fmt.Errorf("%v", v)
	}
	return &annotatedError{msg: "panic", cause: cause, attrs: nil, pc: panicPC()}
}

// SlogError renders err as a slog group containing the message, the accumulated annotations and the
// innermost recorded source location.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}

	var (
		annotations []any
		pc          uintptr
	)
	walk(err, func(ae *annotatedError) {
		for _, a := range ae.attrs {
			annotations = append(annotations, a)
		}
		if ae.pc != 0 {
			pc = ae.pc
		}
	})

	attrs := []any{slog.String("message", err.Error())}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}
	if source := formatPC(pc); source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	return slog.Group("error", attrs...)
}

// walk visits every annotated error in the tree, outermost first.
func walk(err error, visit func(*annotatedError)) {
	if err == nil {
		return
	}
	if ae, ok := err.(*annotatedError); ok { //nolint:errorlint // we walk the tree manually.
		visit(ae)
	}
	switch u := err.(type) { //nolint:errorlint // we walk the tree manually.
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			walk(e, visit)
		}
	case interface{ Unwrap() error }:
		walk(u.Unwrap(), visit)
	}
}

func callerPC(skip int) uintptr {
	var pcs [1]uintptr
	if runtime.Callers(skip, pcs[:]) < 1 {
		return 0
	}
	return pcs[0]
}

// panicPC finds the frame that called panic by looking for the runtime panic frame on the stack.
func panicPC() uintptr {
	const depth = 32
	pcs := make([]uintptr, depth)
	n := runtime.Callers(1, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	afterPanic := false
	for {
		frame, more := frames.Next()
		if afterPanic {
			return frame.PC
		}
		if strings.HasPrefix(frame.Function, "runtime.gopanic") {
			afterPanic = true
		}
		if !more {
			return 0
		}
	}
}

func formatPC(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	file := frame.File
	if i := strings.LastIndex(file, "/"); i >= 0 {
		file = file[i+1:]
	}
	return fmt.Sprintf("%s:%d", file, frame.Line)
}
