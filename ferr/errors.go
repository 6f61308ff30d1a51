/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package ferr provides the error taxonomy used across the runtime: a
// CodeError-tagged error with parent chains and captured stack frames,
// compatible with the standard errors.Is/errors.As.
//
// Every suspension-point failure (interruption, timeout, I/O, protocol,
// TLS, explicit HTTP status, usage violation) is raised as an *Err built
// from one of the CodeError ranges in code.go, so callers can branch on
// Kind() instead of matching error strings.
package ferr

import (
	"errors"
	"fmt"
	"runtime"
)

// Err is the concrete error type, handed to callers as *Err; its fields
// are unexported, so callers interact with it through its methods, the
// error interface and the package level helpers.
type Err struct {
	code   CodeError
	msg    string
	parent []error
	frame  runtime.Frame
}

func getFrame() runtime.Frame {
	var pcs [1]uintptr
	n := runtime.Callers(3, pcs[:])
	if n < 1 {
		return runtime.Frame{}
	}
	frames := runtime.CallersFrames(pcs[:n])
	f, _ := frames.Next()
	return f
}

// New builds an *Err with the given code, message and optional parents.
func New(code CodeError, message string, parent ...error) *Err {
	return &Err{
		code:   code,
		msg:    message,
		parent: filterNil(parent),
		frame:  getFrame(),
	}
}

// Newf is New with fmt.Sprintf-style formatting of the message.
func Newf(code CodeError, pattern string, args ...any) *Err {
	return &Err{
		code:  code,
		msg:   fmt.Sprintf(pattern, args...),
		frame: getFrame(),
	}
}

func filterNil(in []error) []error {
	out := make([]error, 0, len(in))
	for _, e := range in {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Error implements the error interface.
func (e *Err) Error() string {
	if e == nil {
		return ""
	}
	msg := e.msg
	if msg == "" {
		msg = e.code.message()
	}
	return msg
}

// Code returns the CodeError classifying this error.
func (e *Err) Code() CodeError {
	if e == nil {
		return UnknownError
	}
	return e.code
}

// Kind returns the taxonomy bucket of this error's code.
func (e *Err) Kind() Kind {
	return e.Code().Kind()
}

// File and Line report where the error was constructed, for diagnostics.
func (e *Err) File() string { return e.frame.File }
func (e *Err) Line() int    { return e.frame.Line }

// IsCode reports whether this error's own code equals the given code
// (parents are not consulted).
func (e *Err) IsCode(code CodeError) bool {
	return e != nil && e.code == code
}

// HasCode reports whether this error or any parent has the given code.
func (e *Err) HasCode(code CodeError) bool {
	if e == nil {
		return false
	}
	if e.code == code {
		return true
	}
	for _, p := range e.parent {
		if Has(p, code) {
			return true
		}
	}
	return false
}

// Add appends parents to this error's parent chain.
func (e *Err) Add(parent ...error) {
	if e == nil {
		return
	}
	e.parent = append(e.parent, filterNil(parent)...)
}

// Unwrap satisfies errors.Is/errors.As multi-parent unwrapping (Go 1.20+).
func (e *Err) Unwrap() []error {
	if e == nil {
		return nil
	}
	return e.parent
}

// Is reports whether target is a *Err with the same code, satisfying the
// errors.Is contract for sentinel-style comparisons against a bare
// ferr.New(code, "") value.
func (e *Err) Is(target error) bool {
	var t *Err
	if errors.As(target, &t) {
		return e != nil && t != nil && e.code == t.code
	}
	return false
}

// Is reports whether the given error is a *Err (anywhere in its chain).
func Is(e error) bool {
	var t *Err
	return errors.As(e, &t)
}

// Get extracts the *Err from e, or nil if e does not contain one.
func Get(e error) *Err {
	var t *Err
	if errors.As(e, &t) {
		return t
	}
	return nil
}

// Has reports whether e or one of its parents carries the given code.
func Has(e error, code CodeError) bool {
	t := Get(e)
	if t == nil {
		return false
	}
	return t.HasCode(code)
}

// Make wraps a plain error into an *Err with UnknownError, or returns it
// unchanged if it already is one.
func Make(e error) *Err {
	if e == nil {
		return nil
	}
	if t := Get(e); t != nil {
		return t
	}
	return &Err{code: UnknownError, msg: e.Error(), frame: getFrame()}
}
