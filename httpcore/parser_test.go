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

package httpcore_test

import (
	"github.com/nabbar/fibernet/httpcore"
	"github.com/nabbar/fibernet/stream"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func bufferedFrom(s string) *stream.Buffered {
	return stream.NewBuffered(stream.NewMemory([]byte(s)))
}

var _ = Describe("ParseRequest", func() {
	It("parses a simple GET", func() {
		req, err := httpcore.ParseRequest(bufferedFrom("GET /a/b?x=1 HTTP/1.1\r\nHost: example.com\r\n\r\n"), 4096)
		Expect(err).ToNot(HaveOccurred())
		Expect(req.Method).To(Equal("GET"))
		Expect(req.Target.Path).To(Equal("/a/b"))
		Expect(req.Target.RawQuery).To(Equal("x=1"))
		Expect(req.Header.Get("Host")).To(Equal("example.com"))
		Expect(req.HTTPVersion()).To(Equal("HTTP/1.1"))
	})

	It("unfolds an obs-fold continuation line", func() {
		req, err := httpcore.ParseRequest(bufferedFrom(
			"GET / HTTP/1.1\r\nHost: example.com\r\nX-Long: part1\r\n part2\r\n\r\n"), 4096)
		Expect(err).ToNot(HaveOccurred())
		Expect(req.Header.Get("X-Long")).To(Equal("part1 part2"))
	})

	It("rejects a malformed header line", func() {
		_, err := httpcore.ParseRequest(bufferedFrom("GET / HTTP/1.1\r\nHost example.com\r\n\r\n"), 4096)
		Expect(err).To(HaveOccurred())
	})

	It("rejects HTTP/1.1 requests missing a Host header", func() {
		_, err := httpcore.ParseRequest(bufferedFrom("GET / HTTP/1.1\r\n\r\n"), 4096)
		Expect(err).To(HaveOccurred())
		var se *httpcore.StatusError
		Expect(err).To(BeAssignableToTypeOf(se))
	})

	It("rejects a request exceeding maxHeaderBytes with a 431", func() {
		_, err := httpcore.ParseRequest(bufferedFrom("GET / HTTP/1.1\r\nHost: example.com\r\n\r\n"), 4)
		Expect(err).To(HaveOccurred())
		se, ok := err.(*httpcore.StatusError)
		Expect(ok).To(BeTrue())
		Expect(se.Status).To(Equal(431))
	})

	It("rejects an unsupported HTTP version", func() {
		_, err := httpcore.ParseRequest(bufferedFrom("GET / HTTP/2.0\r\nHost: x\r\n\r\n"), 4096)
		Expect(err).To(HaveOccurred())
	})
})
