// Package apperrors defines the engine's error taxonomy. Fatal input
// and snapshot errors abort the run; unresolved references are only
// logged as warnings and never surface here.
package apperrors

import (
	"errors"
	"fmt"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
)

// Category routes an error to the right log channel and exit message.
type Category string

const (
	CategoryInput    Category = "input"
	CategorySnapshot Category = "snapshot"
	CategoryArchive  Category = "archive"
)

// EngineError wraps an errbuilder error with the engine category.
type EngineError struct {
	*errbuilder.ErrBuilder
	Category Category
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Category, e.ErrBuilder.Msg)
}

func (e *EngineError) Unwrap() error {
	return e.ErrBuilder.Unwrap()
}

// NewFatalInputError reports an unreadable or unparseable corpus file.
// The offending file is carried in the error details so the process can
// name it in its exit message.
func NewFatalInputError(file string, cause error) *EngineError {
	details := errbuilder.ErrorMap{}
	details.Set("file", errors.New(file))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unreadable input corpus %s", file)).
		WithDetails(errbuilder.NewErrDetails(details))
	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return &EngineError{ErrBuilder: builder, Category: CategoryInput}
}

// NewSnapshotError reports a failure while serializing or writing a
// derived document. No partial output survives one of these.
func NewSnapshotError(path string, cause error) *EngineError {
	details := errbuilder.ErrorMap{}
	details.Set("path", errors.New(path))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("failed to write snapshot %s", path)).
		WithDetails(errbuilder.NewErrDetails(details))
	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return &EngineError{ErrBuilder: builder, Category: CategorySnapshot}
}

// NewArchiveError reports a run-archive failure.
func NewArchiveError(msg string, cause error) *EngineError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(msg)
	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return &EngineError{ErrBuilder: builder, Category: CategoryArchive}
}

// IsFatalInput reports whether err (or anything it wraps) is a fatal
// input error.
func IsFatalInput(err error) bool {
	var ee *EngineError
	return errors.As(err, &ee) && ee.Category == CategoryInput
}
