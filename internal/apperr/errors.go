// Package apperr defines the error kinds shared across cookfind.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrIO          = errors.New("i/o error")
	ErrParse       = errors.New("parse error")
	ErrInvalidPath = errors.New("invalid path")
	ErrTree        = errors.New("tree error")
)

// Error carries an error kind together with the offending path.
// errors.Is matches both the kind sentinel and the wrapped cause.
type Error struct {
	Kind error
	Path string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Path)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is this error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// New returns an *Error of the given kind.
func New(kind error, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// IO wraps err as an ErrIO for path.
func IO(path string, err error) *Error { return New(ErrIO, path, err) }

// Parse wraps err as an ErrParse for path.
func Parse(path string, err error) *Error { return New(ErrParse, path, err) }

// InvalidPath returns an ErrInvalidPath for path with an optional cause.
func InvalidPath(path string, err error) *Error { return New(ErrInvalidPath, path, err) }
