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

// Package flog is the structured logger used across every other package in
// this module: reactor, scheduler, stream, transport, httpcore and
// websocket all log through a flog.Logger rather than the standard log
// package.
//
// The engine is sirupsen/logrus; output hooks are pluggable (stdout,
// stderr, append-only file without rotation) and color-aware via fatih/color + mattn/go-colorable
// when the hook is attached to a terminal.
package flog

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/nabbar/fibernet/flog/entry"
	"github.com/nabbar/fibernet/flog/fields"
	"github.com/nabbar/fibernet/flog/level"
)

// Logger is the main logging interface. It doubles as an io.Writer so it
// can be handed to components (e.g. http.Server.ErrorLog) that expect one.
type Logger interface {
	io.Writer

	SetLevel(lvl level.Level)
	GetLevel() level.Level

	SetFields(f fields.Fields)
	GetFields() fields.Fields

	AddHook(h logrus.Hook)

	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warning(message string, args ...any)
	Error(message string, args ...any)
	Fatal(message string, args ...any)
	Panic(message string, args ...any)

	LogDetails(lvl level.Level, message string, errs []error, fields fields.Fields)

	// CheckError logs at lvlKO if err is non-nil (returning false), or at
	// lvlOK if lvlOK != NilLevel and err is nil (returning true unconditionally).
	CheckError(lvlKO, lvlOK level.Level, message string, err ...error) bool

	Entry(lvl level.Level, message string) *entry.Entry

	// Access builds a combined-log-format access entry from request/response
	// metadata (remote address, latency, method, status, size).
	Access(remoteAddr, remoteUser string, localtime time.Time, latency time.Duration, method, request, proto string, status int, size int64) *entry.Entry

	// SetSPF13Level bridges a jwalterweatherman notepad (used only by the
	// config loader's pre-init diagnostics) to this logger's level.
	SetSPF13Level(lvl level.Level, nb *jww.Notepad)

	Clone() Logger
}

type lgr struct {
	mu  sync.RWMutex
	ctx context.Context
	l   *logrus.Logger
	fld fields.Fields
	lvl level.Level
}

// New returns a Logger bound to ctx with InfoLevel and no hooks attached
// (callers add hooks via AddHook - see NewStdoutHook/NewStderrHook/NewFileHook).
func New(ctx context.Context) Logger {
	if ctx == nil {
		ctx = context.Background()
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	g := &lgr{ctx: ctx, l: l, fld: make(fields.Fields)}
	g.SetLevel(level.InfoLevel)
	return g
}

func (g *lgr) SetLevel(lvl level.Level) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lvl = lvl
	g.l.SetLevel(lvl.Logrus())
}

func (g *lgr) GetLevel() level.Level {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.lvl
}

func (g *lgr) SetFields(f fields.Fields) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fld = f
}

func (g *lgr) GetFields() fields.Fields {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.fld.Clone()
}

func (g *lgr) AddHook(h logrus.Hook) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.l.AddHook(h)
}

func (g *lgr) Write(p []byte) (int, error) {
	g.LogDetails(level.InfoLevel, string(p), nil, nil)
	return len(p), nil
}

func (g *lgr) LogDetails(lvl level.Level, message string, errs []error, f fields.Fields) {
	g.mu.RLock()
	base := g.fld
	off := g.lvl == level.NilLevel
	g.mu.RUnlock()
	if off {
		return
	}

	all := base.Merge(f)
	fe := g.l.WithFields(all.Logrus())
	if len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			if e != nil {
				msgs = append(msgs, e.Error())
			}
		}
		if len(msgs) > 0 {
			fe = fe.WithField("errors", msgs)
		}
	}

	switch lvl {
	case level.PanicLevel:
		fe.Panic(message)
	case level.FatalLevel:
		fe.Fatal(message)
	case level.ErrorLevel:
		fe.Error(message)
	case level.WarnLevel:
		fe.Warn(message)
	case level.DebugLevel:
		fe.Debug(message)
	case level.NilLevel:
		// dropped
	default:
		fe.Info(message)
	}
}

func (g *lgr) logf(lvl level.Level, message string, args ...any) {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	g.LogDetails(lvl, message, nil, nil)
}

func (g *lgr) Debug(message string, args ...any)   { g.logf(level.DebugLevel, message, args...) }
func (g *lgr) Info(message string, args ...any)    { g.logf(level.InfoLevel, message, args...) }
func (g *lgr) Warning(message string, args ...any) { g.logf(level.WarnLevel, message, args...) }
func (g *lgr) Error(message string, args ...any)   { g.logf(level.ErrorLevel, message, args...) }
func (g *lgr) Fatal(message string, args ...any)   { g.logf(level.FatalLevel, message, args...) }
func (g *lgr) Panic(message string, args ...any)   { g.logf(level.PanicLevel, message, args...) }

func (g *lgr) CheckError(lvlKO, lvlOK level.Level, message string, err ...error) bool {
	var errs []error
	for _, e := range err {
		if e != nil {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		g.LogDetails(lvlKO, message, errs, nil)
		return false
	}
	if lvlOK != level.NilLevel {
		g.LogDetails(lvlOK, message, nil, nil)
	}
	return true
}

func (g *lgr) Entry(lvl level.Level, message string) *entry.Entry {
	return entry.New(func(lvl level.Level, message string, f fields.Fields, errs []error) {
		g.LogDetails(lvl, message, errs, f)
	}, lvl, message)
}

func (g *lgr) Access(remoteAddr, remoteUser string, localtime time.Time, latency time.Duration, method, request, proto string, status int, size int64) *entry.Entry {
	e := g.Entry(level.InfoLevel, "access")
	e.FieldMerge(entry.AccessFields(remoteAddr, remoteUser, localtime, latency, method, request, proto, status, size))
	return e
}

func (g *lgr) SetSPF13Level(lvl level.Level, nb *jww.Notepad) {
	if nb == nil {
		return
	}
	nb.SetLogThreshold(jww.Threshold(lvl.Int()))
	nb.SetStdoutThreshold(jww.Threshold(lvl.Int()))
}

func (g *lgr) Clone() Logger {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := &lgr{ctx: g.ctx, l: logrus.New(), fld: g.fld.Clone(), lvl: g.lvl}
	n.l.SetOutput(g.l.Out)
	n.l.SetLevel(g.lvl.Logrus())
	for _, h := range g.l.Hooks[n.lvl.Logrus()] {
		n.l.AddHook(h)
	}
	return n
}
