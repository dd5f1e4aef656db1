// seehuhn.de/go/picosvg - reduce SVG documents to a minimal subset
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package svgerr defines the structured errors reported while reducing an
// SVG document.
//
// Every error carries a [Code] and, where one is known, the element it
// refers to. Elements are identified by their id attribute or, for elements
// without an id, by a structural path such as "/svg[0]/g[1]/path[0]".
//
//	if svgerr.Is(err, svgerr.CyclicUseReference) {
//		// ...
//	}
package svgerr

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

// Error codes.
const (
	MalformedPathData       Code = "MALFORMED_PATH_DATA"
	MalformedDocument       Code = "MALFORMED_DOCUMENT"
	UnresolvedReference     Code = "UNRESOLVED_REFERENCE"
	CyclicUseReference      Code = "CYCLIC_USE_REFERENCE"
	CyclicGradientReference Code = "CYCLIC_GRADIENT_REFERENCE"
	CyclicClipReference     Code = "CYCLIC_CLIP_REFERENCE"
	DepthExceeded           Code = "DEPTH_EXCEEDED"
	SingularTransform       Code = "SINGULAR_TRANSFORM"
	GeometryReductionError  Code = "GEOMETRY_REDUCTION"
	UnsupportedFeature      Code = "UNSUPPORTED_FEATURE"
)

// Error is a structured error with a code, the offending element and an
// optional cause.
type Error struct {
	Code    Code   // machine-readable error code
	Node    string // id or structural path of the element, may be empty
	Message string // human-readable message
	Cause   error  // underlying error, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Node != "" {
		msg += " at " + e.Node
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error with the given code that wraps cause.
// If cause is nil, Wrap returns nil.
func Wrap(code Code, cause error, format string, args ...any) error {
	if cause == nil {
		return nil
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// At returns a copy of e which refers to the given element.
func (e *Error) At(node string) *Error {
	e2 := *e
	e2.Node = node
	return &e2
}

// Locate attaches node to err if err is an [*Error] without a location.
// Other errors are returned unchanged.
func Locate(err error, node string) error {
	var e *Error
	if errors.As(err, &e) && e.Node == "" {
		if e == err {
			return e.At(node)
		}
		return &Error{Code: e.Code, Node: node, Cause: err}
	}
	return err
}

// Is reports whether any error in err's chain has the given code.
func Is(err error, code Code) bool {
	var e *Error
	for err != nil {
		if errors.As(err, &e) {
			if e.Code == code {
				return true
			}
			err = e.Cause
			continue
		}
		return false
	}
	return false
}

// CodeOf returns the code of the first [*Error] in err's chain, or the
// empty string if there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
