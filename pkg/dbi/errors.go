// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package dbi

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures reported by the client layer.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindBadPointer
	KindNoMemory
	KindNoConn
	KindUnsupported
	KindBadName
	KindBadIndex
	KindBadType
	KindBadObject
	KindDriver
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "no error"
	case KindBadPointer:
		return "bad pointer"
	case KindNoMemory:
		return "out of memory"
	case KindNoConn:
		return "no connection"
	case KindUnsupported:
		return "unsupported"
	case KindBadName:
		return "bad name"
	case KindBadIndex:
		return "bad index"
	case KindBadType:
		return "bad type"
	case KindBadObject:
		return "bad object"
	case KindDriver:
		return "driver error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the error type returned by every fallible operation. Driver
// failures carry the engine's native code, SQLSTATE when the engine reports
// one, and the engine message.
type Error struct {
	Kind    ErrorKind
	Code    int
	State   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := "dbi: " + e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.State != "" {
		msg += fmt.Sprintf(" [%s]", e.State)
	}
	if e.Kind == KindDriver && e.Code != 0 {
		msg += fmt.Sprintf(" (code %d)", e.Code)
	}
	return msg
}

// Unwrap returns the underlying driver error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. This lets callers
// write errors.Is(err, dbi.ErrBadIndex).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is.
var (
	ErrBadPointer  = &Error{Kind: KindBadPointer}
	ErrNoMemory    = &Error{Kind: KindNoMemory}
	ErrNoConn      = &Error{Kind: KindNoConn}
	ErrUnsupported = &Error{Kind: KindUnsupported}
	ErrBadName     = &Error{Kind: KindBadName}
	ErrBadIndex    = &Error{Kind: KindBadIndex}
	ErrBadType     = &Error{Kind: KindBadType}
	ErrBadObject   = &Error{Kind: KindBadObject}
	ErrDriver      = &Error{Kind: KindDriver}
)

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// driverError converts a failure returned from a driver into a KindDriver
// error, keeping an existing *Error untouched.
func driverError(err error, op string) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	de := &Error{Kind: KindDriver, Message: fmt.Sprintf("%s: %v", op, err), Err: err}
	var coded CodedError
	if errors.As(err, &coded) {
		de.Code = coded.NativeCode()
		de.State = coded.SQLState()
	}
	return de
}

// CodedError is implemented by driver errors that expose the engine's native
// error number and SQLSTATE.
type CodedError interface {
	error
	NativeCode() int
	SQLState() string
}

// DriverFailure wraps an engine error with its native code and SQLSTATE.
// Drivers return it from ConnHandle and QueryHandle methods.
type DriverFailure struct {
	Code  int
	State string
	Err   error
}

func (f *DriverFailure) Error() string    { return f.Err.Error() }
func (f *DriverFailure) Unwrap() error    { return f.Err }
func (f *DriverFailure) NativeCode() int  { return f.Code }
func (f *DriverFailure) SQLState() string { return f.State }
