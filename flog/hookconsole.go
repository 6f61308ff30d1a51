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
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
)

// consoleHook writes formatted entries to a writer. When colorize is set the
// whole formatted line is printed in its level's color (via
// mattn/go-colorable, fatih/color), and fatih/color falls back to plain
// text when stdout is not a terminal - matching the teacher's console
// package idiom of "color only when attached to a tty".
type consoleHook struct {
	out       io.Writer
	formatter logrus.Formatter
	levels    []logrus.Level
	colorize  bool
}

func levelColor(l logrus.Level) *color.Color {
	switch l {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return color.New(color.FgRed, color.Bold)
	case logrus.WarnLevel:
		return color.New(color.FgYellow)
	case logrus.DebugLevel, logrus.TraceLevel:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgGreen)
	}
}

// NewStdoutHook writes entries of every level to stdout.
func NewStdoutHook() logrus.Hook {
	return &consoleHook{
		out:       colorable.NewColorableStdout(),
		formatter: &logrus.TextFormatter{FullTimestamp: true},
		levels:    logrus.AllLevels,
		colorize:  true,
	}
}

// NewStderrHook writes entries of the given levels to stderr; with no
// levels given it takes panic, fatal, error and warning, so only
// warnings and worse go there.
func NewStderrHook(levels ...logrus.Level) logrus.Hook {
	if len(levels) == 0 {
		levels = []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}
	}
	return &consoleHook{
		out:       colorable.NewColorableStderr(),
		formatter: &logrus.TextFormatter{FullTimestamp: true},
		levels:    levels,
		colorize:  true,
	}
}

func (h *consoleHook) Levels() []logrus.Level { return h.levels }

func (h *consoleHook) Fire(e *logrus.Entry) error {
	b, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	if !h.colorize {
		_, err = h.out.Write(b)
		return err
	}
	c := levelColor(e.Level)
	_, err = c.Fprint(h.out, string(b))
	return err
}

// NewFileHook appends formatted entries to the file at path, creating it
// (and its parent directory) if necessary. Callers are responsible for
// closing the returned io.Closer on shutdown.
func NewFileHook(path string, levels ...logrus.Level) (logrus.Hook, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	if len(levels) == 0 {
		levels = logrus.AllLevels
	}
	return &consoleHook{
		out:       f,
		formatter: &logrus.JSONFormatter{},
		levels:    levels,
	}, f, nil
}
