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

package httpcore

import (
	"github.com/nabbar/fibernet/stream"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ResponseWriter", func() {
	It("starts mutable and commits on WriteHeader", func() {
		w := newResponseWriter()
		Expect(w.Committed()).To(BeFalse())
		Expect(w.WriteHeader(200)).To(Succeed())
		Expect(w.Committed()).To(BeTrue())
	})

	It("stays mutable across a 1xx informational status", func() {
		w := newResponseWriter()
		Expect(w.WriteHeader(100)).To(Succeed())
		Expect(w.Committed()).To(BeFalse())
		Expect(w.WriteHeader(200)).To(Succeed())
		Expect(w.Committed()).To(BeTrue())
	})

	It("rejects a second WriteHeader once committed", func() {
		w := newResponseWriter()
		Expect(w.WriteHeader(200)).To(Succeed())
		Expect(w.WriteHeader(500)).To(HaveOccurred())
	})

	It("streams body bytes through the prepared writer and finalizes", func() {
		mem := stream.NewMemory(nil)
		w := newResponseWriter()
		w.bodyOut = mem
		w.contentLen = 5
		n, err := w.Write([]byte("hello"))
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(5))
		Expect(w.Finalize()).To(Succeed())
		Expect(w.closeConn).To(BeFalse())
	})

	It("flags the connection for close when the body falls short of Content-Length", func() {
		mem := stream.NewMemory(nil)
		w := newResponseWriter()
		w.bodyOut = mem
		w.contentLen = 5
		_, err := w.Write([]byte("hi"))
		Expect(err).ToNot(HaveOccurred())
		Expect(w.Finalize()).To(HaveOccurred())
		Expect(w.closeConn).To(BeTrue())
	})

	It("rejects writes after Finalize", func() {
		w := newResponseWriter()
		w.bodyOut = stream.NewMemory(nil)
		Expect(w.Finalize()).To(Succeed())
		_, err := w.Write([]byte("x"))
		Expect(err).To(HaveOccurred())
	})
})
