package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies generator failures.
type ErrorKind string

const (
	UnsupportedContext ErrorKind = "unsupported context"
	UnknownParameter   ErrorKind = "unknown parameter"
	DuplicateDefault   ErrorKind = "duplicate default"
	MalformedDirective ErrorKind = "malformed directive"
	MalformedSource    ErrorKind = "malformed source"
	TooManyDefaults    ErrorKind = "too many defaults"
	ShapeCollision     ErrorKind = "shape collision"
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrUnsupportedContext = errors.New(string(UnsupportedContext))
	ErrUnknownParameter   = errors.New(string(UnknownParameter))
	ErrDuplicateDefault   = errors.New(string(DuplicateDefault))
	ErrMalformedDirective = errors.New(string(MalformedDirective))
	ErrMalformedSource    = errors.New(string(MalformedSource))
	ErrTooManyDefaults    = errors.New(string(TooManyDefaults))
	ErrShapeCollision     = errors.New(string(ShapeCollision))
)

var sentinels = map[ErrorKind]error{
	UnsupportedContext: ErrUnsupportedContext,
	UnknownParameter:   ErrUnknownParameter,
	DuplicateDefault:   ErrDuplicateDefault,
	MalformedDirective: ErrMalformedDirective,
	MalformedSource:    ErrMalformedSource,
	TooManyDefaults:    ErrTooManyDefaults,
	ShapeCollision:     ErrShapeCollision,
}

// Error is a fatal generator error tied to an annotation site.
type Error struct {
	Kind ErrorKind
	File string
	Line int
	Func string
	Msg  string
}

// Errorf builds an *Error for fn with a formatted message.
func Errorf(kind ErrorKind, fn string, format string, args ...any) *Error {
	return &Error{Kind: kind, Func: fn, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Func != "" {
		msg = fmt.Sprintf("%s: %s", e.Func, msg)
	}
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
	case e.File != "":
		return fmt.Sprintf("%s: %s", e.File, msg)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return sentinels[e.Kind]
}

// At fills in the position of e if it is not already set and returns e.
func (e *Error) At(file string, line int) *Error {
	if e.File == "" {
		e.File = file
	}
	if e.Line == 0 {
		e.Line = line
	}
	return e
}
