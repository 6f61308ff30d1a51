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

package stream_test

import (
	"io"
	"testing"
	"time"

	"github.com/nabbar/fibernet/fdur"
	"github.com/nabbar/fibernet/stream"
	"github.com/nabbar/fibernet/taskpipe"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestStream(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "stream suite")
}

var _ = Describe("Memory", func() {
	It("round-trips a write then read", func() {
		m := stream.NewMemory(nil)
		n, err := m.Write([]byte("payload"), stream.ModeAll)
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(7))

		buf := make([]byte, 7)
		n, err = m.Read(buf, stream.ModeAll)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("payload"))
	})

	It("reports its length", func() {
		m := stream.NewMemory([]byte("abcde"))
		size, known := m.Len()
		Expect(known).To(BeTrue())
		Expect(size).To(Equal(int64(5)))
	})
})

var _ = Describe("Buffered", func() {
	It("Peek does not consume bytes", func() {
		m := stream.NewMemory([]byte("hello world"))
		b := stream.NewBuffered(m)

		peeked, err := b.Peek()
		Expect(err).ToNot(HaveOccurred())
		Expect(string(peeked)).To(Equal("hello world"))

		buf := make([]byte, 5)
		n, err := b.Read(buf, stream.ModeAll)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("hello"))
	})

	It("ReadUntil returns up to and including the delimiter", func() {
		m := stream.NewMemory([]byte("GET / HTTP/1.1\r\nHost: x\r\n"))
		b := stream.NewBuffered(m)

		line, err := b.ReadUntil('\n', 128)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(line)).To(Equal("GET / HTTP/1.1\r\n"))
	})

	It("fails when the delimiter is not found within max", func() {
		m := stream.NewMemory([]byte("no newline here"))
		b := stream.NewBuffered(m)

		_, err := b.ReadUntil('\n', 4)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Counted", func() {
	It("reports io.EOF once the limit is reached", func() {
		m := stream.NewMemory([]byte("abcdefgh"))
		cr := stream.NewCountedReader(m, 4)

		buf := make([]byte, 8)
		n, err := cr.Read(buf, stream.ModeAll)
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(4))

		n, err = cr.Read(buf, stream.ModeAll)
		Expect(n).To(Equal(0))
		Expect(err).To(Equal(io.EOF))
	})

	It("rejects a write exceeding the configured limit", func() {
		m := stream.NewMemory(nil)
		cw := stream.NewCountedWriter(m, 2)

		_, err := cw.Write([]byte("abc"), stream.ModeAll)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Chunked", func() {
	It("round-trips a chunked body", func() {
		m := stream.NewMemory(nil)
		cw := stream.NewChunkedWriter(m)

		_, err := cw.Write([]byte("hello, "), stream.ModeAll)
		Expect(err).ToNot(HaveOccurred())
		_, err = cw.Write([]byte("world"), stream.ModeAll)
		Expect(err).ToNot(HaveOccurred())
		Expect(cw.Finalize()).ToNot(HaveOccurred())

		b := stream.NewBuffered(m)
		cr := stream.NewChunkedReader(b)

		out := make([]byte, 0, 16)
		buf := make([]byte, 4)
		for {
			n, rerr := cr.Read(buf, stream.ModeAll)
			out = append(out, buf[:n]...)
			if rerr == io.EOF {
				break
			}
			Expect(rerr).ToNot(HaveOccurred())
		}
		Expect(string(out)).To(Equal("hello, world"))
	})
})

var _ = Describe("TaskPipeStream", func() {
	It("exposes WaitForData across the wrapped pipe", func() {
		p := taskpipe.New(32, false)
		s := stream.NewTaskPipeStream(p)

		Expect(s.WaitForData(fdur.Duration(10 * time.Millisecond))).To(BeFalse())

		_, err := s.Write([]byte("hi"), stream.ModeAll)
		Expect(err).ToNot(HaveOccurred())
		Expect(s.WaitForData(fdur.Duration(10 * time.Millisecond))).To(BeTrue())
	})
})
