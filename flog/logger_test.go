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

package flog_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/fibernet/flog"
	"github.com/nabbar/fibernet/flog/fields"
	"github.com/nabbar/fibernet/flog/level"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestFlog(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "flog suite")
}

type bufHook struct {
	buf *bytes.Buffer
}

func (b *bufHook) Levels() []logrus.Level { return logrus.AllLevels }
func (b *bufHook) Fire(e *logrus.Entry) error {
	line, err := e.String()
	if err != nil {
		return err
	}
	b.buf.WriteString(line)
	return nil
}

var _ = Describe("Logger", func() {
	It("filters below the configured level", func() {
		buf := &bytes.Buffer{}
		l := flog.New(nil)
		l.AddHook(&bufHook{buf: buf})
		l.SetLevel(level.WarnLevel)

		l.Debug("should not appear")
		l.Warning("should appear")

		Expect(buf.String()).ToNot(ContainSubstring("should not appear"))
		Expect(buf.String()).To(ContainSubstring("should appear"))
	})

	It("merges base fields with entry fields", func() {
		buf := &bytes.Buffer{}
		l := flog.New(nil)
		l.AddHook(&bufHook{buf: buf})
		l.SetFields(fields.Fields{"service": "fibernet"})

		l.Entry(level.InfoLevel, "hello").FieldAdd("k", "v").Log()

		Expect(buf.String()).To(ContainSubstring("service=fibernet"))
		Expect(buf.String()).To(ContainSubstring("k=v"))
	})

	It("CheckError logs KO on error and returns false", func() {
		buf := &bytes.Buffer{}
		l := flog.New(nil)
		l.AddHook(&bufHook{buf: buf})

		ok := l.CheckError(level.ErrorLevel, level.InfoLevel, "op failed", nil)
		Expect(ok).To(BeTrue())

		ok = l.CheckError(level.ErrorLevel, level.InfoLevel, "op failed", bytes.ErrTooLarge)
		Expect(ok).To(BeFalse())
		Expect(buf.String()).To(ContainSubstring("op failed"))
	})

	It("builds an access entry with the accessLogFormat placeholders", func() {
		buf := &bytes.Buffer{}
		l := flog.New(nil)
		l.AddHook(&bufHook{buf: buf})

		l.Access("127.0.0.1", "-", time.Now(), 12*time.Millisecond, "GET", "/", "HTTP/1.1", 200, 5).Log()

		Expect(buf.String()).To(ContainSubstring(`s=200`))
		Expect(buf.String()).To(ContainSubstring(`b=5`))
	})
})
