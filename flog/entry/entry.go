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

// Package entry models a single log entry under construction: message,
// level, fields, attached errors, and (for access logs) the request/response
// metadata named in the accessLogFormat placeholders.
package entry

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/fibernet/flog/fields"
	"github.com/nabbar/fibernet/flog/level"
)

// FuncLog is called by Log() to hand the finished entry to the engine.
type FuncLog func(lvl level.Level, message string, fields fields.Fields, errs []error)

// Entry is a builder for one log line. It is not safe for concurrent use;
// each call site should build and Log() its own Entry.
type Entry struct {
	logFct  FuncLog
	lvl     level.Level
	message string
	data    any
	fld     fields.Fields
	errs    []error
}

// New creates an Entry that, on Log(), hands itself to fct.
func New(fct FuncLog, lvl level.Level, message string) *Entry {
	return &Entry{logFct: fct, lvl: lvl, message: message, fld: make(fields.Fields)}
}

func (e *Entry) FieldAdd(key string, val any) *Entry {
	e.fld[key] = val
	return e
}

func (e *Entry) FieldMerge(f fields.Fields) *Entry {
	e.fld = e.fld.Merge(f)
	return e
}

func (e *Entry) DataSet(data any) *Entry {
	e.data = data
	return e
}

func (e *Entry) ErrorAdd(cleanNil bool, errs ...error) *Entry {
	for _, er := range errs {
		if er == nil && cleanNil {
			continue
		}
		e.errs = append(e.errs, er)
	}
	return e
}

// Check logs the entry at lvlNoErr if no errors were attached, otherwise at
// the entry's configured level, and returns true iff there were no errors.
func (e *Entry) Check(lvlNoErr level.Level) bool {
	ok := len(e.errs) == 0
	if ok {
		e.lvl = lvlNoErr
	}
	e.Log()
	return ok
}

// Log hands the built entry to the owning logger.
func (e *Entry) Log() {
	if e.logFct == nil {
		return
	}
	if e.data != nil {
		e.fld = e.fld.Merge(fields.Fields{"data": e.data})
	}
	e.logFct(e.lvl, e.message, e.fld, e.errs)
}

// AccessFields builds the field set for a combined-log-format style access
// log entry: h (remote host), l (ident, always "-"), u (remote user),
// t (time), r (request line), s (status), b (size), T (latency seconds),
// D (latency microseconds).
func AccessFields(remoteAddr, remoteUser string, localtime time.Time, latency time.Duration, method, request, proto string, status int, size int64) fields.Fields {
	return fields.Fields{
		"h": remoteAddr,
		"l": "-",
		"u": remoteUser,
		"t": localtime.Format(time.RFC3339),
		"r": method + " " + request + " " + proto,
		"s": status,
		"b": size,
		"T": latency.Seconds(),
		"D": latency.Microseconds(),
	}
}

// LogrusFields is a convenience conversion for callers wiring a logrus hook.
func LogrusFields(f fields.Fields) logrus.Fields { return f.Logrus() }
