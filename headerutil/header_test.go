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

package headerutil_test

import (
	"testing"

	"github.com/nabbar/fibernet/headerutil"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestHeaderutil(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "headerutil suite")
}

var _ = Describe("Header", func() {
	It("is case-insensitive on Get/Set/Add", func() {
		h := headerutil.New()
		h.Add("content-type", "text/plain")
		h.Add("Content-Type", "charset=utf-8")
		Expect(h.Get("CONTENT-TYPE")).To(Equal("text/plain"))
		Expect(h.Values("Content-Type")).To(HaveLen(2))
	})

	It("canonicalizes field names", func() {
		Expect(headerutil.CanonicalKey("x-request-id")).To(Equal("X-Request-Id"))
	})

	It("unfolds obsolete line folding into a single space", func() {
		Expect(headerutil.UnfoldObsFold("value\r\n  continued")).To(Equal("value continued"))
	})
})
