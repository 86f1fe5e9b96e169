// Package apperr defines the error taxonomy shared by the generation pipeline.
//
// Every failure that can reach the tool boundary is one of the kinds below. The
// tool adapter converts them into an error result, so no caller outside this
// module ever has to inspect them directly.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, one per kind. Use errors.Is to classify an *Error.
var (
	ErrValidation  = errors.New("validation error")
	ErrUnknownTool = errors.New("unknown tool")
	ErrConnection  = errors.New("connection error")
	ErrQuery       = errors.New("query error")
	ErrFileSystem  = errors.New("file system error")
)

// Kind classifies an Error.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnknownTool
	KindConnection
	KindQuery
	KindFileSystem
)

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindUnknownTool:
		return ErrUnknownTool
	case KindConnection:
		return ErrConnection
	case KindQuery:
		return ErrQuery
	case KindFileSystem:
		return ErrFileSystem
	default:
		return nil
	}
}

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindUnknownTool:
		return "UnknownToolError"
	case KindConnection:
		return "ConnectionError"
	case KindQuery:
		return "QueryError"
	case KindFileSystem:
		return "FileSystemError"
	default:
		return "Error"
	}
}

// Error is a classified failure.
type Error struct {
	Kind    Kind
	Op      string // what was being done, e.g. "list tables" or a file path
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Op != "" {
		b.WriteString(" (")
		b.WriteString(e.Op)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Validation creates a ValidationError with a formatted message.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// UnknownTool creates an UnknownToolError for the given tool name.
func UnknownTool(name string) *Error {
	return &Error{Kind: KindUnknownTool, Message: fmt.Sprintf("unknown tool: %s", name)}
}

// Connection wraps a resource acquisition failure.
func Connection(cause error) *Error {
	return &Error{Kind: KindConnection, Message: "unable to connect to database", Cause: cause}
}

// Query wraps a failed required query.
func Query(op string, cause error) *Error {
	return &Error{Kind: KindQuery, Op: op, Cause: cause}
}

// FileSystem wraps a directory or file write failure.
func FileSystem(path string, cause error) *Error {
	return &Error{Kind: KindFileSystem, Op: path, Cause: cause}
}

// KindOf returns the kind of err, or 0 when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
