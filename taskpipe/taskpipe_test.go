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

package taskpipe_test

import (
	"io"
	"testing"
	"time"

	"github.com/nabbar/fibernet/fdur"
	"github.com/nabbar/fibernet/taskpipe"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTaskpipe(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "taskpipe suite")
}

var _ = Describe("Pipe", func() {
	It("round-trips a write/read smaller than capacity", func() {
		p := taskpipe.New(16, false)
		n, err := p.Write([]byte("hello"), taskpipe.ModeAll)
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(5))

		buf := make([]byte, 5)
		n, err = p.Read(buf, taskpipe.ModeAll)
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(5))
		Expect(string(buf)).To(Equal("hello"))
	})

	It("returns 0 without blocking for a ModeImmediate write once full without grow", func() {
		p := taskpipe.New(4, false)
		n, err := p.Write([]byte("abcd"), taskpipe.ModeAll)
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(4))

		n, err = p.Write([]byte("e"), taskpipe.ModeImmediate)
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(0))
	})

	It("grows capacity to admit a full write when growWhenFull is set", func() {
		p := taskpipe.New(2, true)
		n, err := p.Write([]byte("abcdef"), taskpipe.ModeAll)
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(6))
		Expect(p.Cap()).To(BeNumerically(">=", 6))
	})

	It("unblocks a pending Read with io.EOF once closed and drained", func() {
		p := taskpipe.New(16, false)
		done := make(chan error, 1)
		buf := make([]byte, 4)

		go func() {
			_, err := p.Read(buf, taskpipe.ModeAll)
			done <- err
		}()

		time.Sleep(20 * time.Millisecond)
		Expect(p.Close()).ToNot(HaveOccurred())

		Eventually(done).Should(Receive(Equal(io.EOF)))
	})

	It("WaitForData reports false on timeout with nothing buffered", func() {
		p := taskpipe.New(4, false)
		Expect(p.WaitForData(fdur.Duration(10 * time.Millisecond))).To(BeFalse())
	})

	It("preserves FIFO order across interleaved writes", func() {
		p := taskpipe.New(64, false)
		_, _ = p.Write([]byte("first-"), taskpipe.ModeAll)
		_, _ = p.Write([]byte("second"), taskpipe.ModeAll)

		buf := make([]byte, 12)
		n, err := p.Read(buf, taskpipe.ModeAll)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("first-second"))
	})
})
