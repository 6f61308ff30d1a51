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

package flog

import (
	"io"
	"log"

	"github.com/hashicorp/go-hclog"

	"github.com/nabbar/fibernet/flog/fields"
	"github.com/nabbar/fibernet/flog/level"
)

// hclogShim adapts a Logger to hclog.Logger so background components that
// expect the Hashicorp logging interface (as vendored libraries sometimes
// do) log through the same sink as the rest of the runtime.
type hclogShim struct {
	l    Logger
	name string
}

// NewHCLogAdapter wraps l as an hclog.Logger.
func NewHCLogAdapter(l Logger, name string) hclog.Logger {
	return &hclogShim{l: l, name: name}
}

func (h *hclogShim) Log(lvl hclog.Level, msg string, args ...any) {
	h.l.LogDetails(fromHCLevel(lvl), msg, nil, argsToFields(args))
}

func fromHCLevel(lvl hclog.Level) level.Level {
	switch lvl {
	case hclog.Trace, hclog.Debug:
		return level.DebugLevel
	case hclog.Warn:
		return level.WarnLevel
	case hclog.Error:
		return level.ErrorLevel
	default:
		return level.InfoLevel
	}
}

func argsToFields(args []any) fields.Fields {
	f := make(fields.Fields, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		if k, ok := args[i].(string); ok {
			f[k] = args[i+1]
		}
	}
	return f
}

func (h *hclogShim) Trace(msg string, args ...any) { h.Log(hclog.Trace, msg, args...) }
func (h *hclogShim) Debug(msg string, args ...any) { h.Log(hclog.Debug, msg, args...) }
func (h *hclogShim) Info(msg string, args ...any)  { h.Log(hclog.Info, msg, args...) }
func (h *hclogShim) Warn(msg string, args ...any)  { h.Log(hclog.Warn, msg, args...) }
func (h *hclogShim) Error(msg string, args ...any) { h.Log(hclog.Error, msg, args...) }

func (h *hclogShim) IsTrace() bool { return h.l.GetLevel() == level.DebugLevel }
func (h *hclogShim) IsDebug() bool { return h.l.GetLevel() >= level.DebugLevel }
func (h *hclogShim) IsInfo() bool  { return h.l.GetLevel() >= level.InfoLevel }
func (h *hclogShim) IsWarn() bool  { return h.l.GetLevel() >= level.WarnLevel }
func (h *hclogShim) IsError() bool { return h.l.GetLevel() >= level.ErrorLevel }

func (h *hclogShim) ImpliedArgs() []any { return nil }
func (h *hclogShim) With(args ...any) hclog.Logger {
	c := h.l.Clone()
	c.SetFields(h.l.GetFields().Merge(argsToFields(args)))
	return &hclogShim{l: c, name: h.name}
}
func (h *hclogShim) Name() string { return h.name }
func (h *hclogShim) Named(name string) hclog.Logger {
	return &hclogShim{l: h.l, name: h.name + "." + name}
}
func (h *hclogShim) ResetNamed(name string) hclog.Logger {
	return &hclogShim{l: h.l, name: name}
}
func (h *hclogShim) SetLevel(lvl hclog.Level)    { h.l.SetLevel(fromHCLevel(lvl)) }
func (h *hclogShim) GetLevel() hclog.Level       { return hclog.Info }
func (h *hclogShim) StandardLogger(opts *hclog.StandardLoggerOptions) *log.Logger {
	return log.New(h.StandardWriter(opts), "", 0)
}
func (h *hclogShim) StandardWriter(opts *hclog.StandardLoggerOptions) io.Writer { return h.l }
