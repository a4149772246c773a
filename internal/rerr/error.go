// Package rerr defines the offset+code error type every validator and
// reader stage emits, and the OFFSET_HEX: [CODE] MESSAGE rendering used on
// stderr.
package rerr

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Error is a located protocol error: the byte offset at which it was
// detected, a short code (E1x, E3x, ... E9xxx per the error-code table),
// and a human message.
type Error struct {
	Offset uint64
	Code   string
	Msg    string

	// wrapped holds an underlying cause, if any, for xerrors.Unwrap.
	wrapped error
}

func New(offset uint64, code, format string, args ...interface{}) *Error {
	return &Error{Offset: offset, Code: code, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(offset uint64, code string, err error) *Error {
	return &Error{Offset: offset, Code: code, Msg: err.Error(), wrapped: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%#x: [%s] %s", e.Offset, e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.wrapped }

// Is reports whether target is an *Error with the same Code, letting callers
// do errors.Is(err, rerr.New(0, "E10", "")) style code matching without
// caring about offset or message.
func (e *Error) Is(target error) bool {
	var o *Error
	if !xerrors.As(target, &o) {
		return false
	}
	return o.Code == e.Code
}

// Fatal wraps a stream-ending error (truncated RDH, corrupt offset,
// unsupported header version) that terminates the reader rather than being
// collected as a protocol-grammar violation.
type Fatal struct {
	*Error
}

func NewFatal(offset uint64, code, format string, args ...interface{}) *Fatal {
	return &Fatal{New(offset, code, format, args...)}
}
