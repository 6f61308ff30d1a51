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

package mimeutil_test

import (
	"testing"

	"github.com/nabbar/fibernet/mimeutil"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMimeutil(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "mimeutil suite")
}

var _ = Describe("TypeByFileName", func() {
	It("resolves a known extension", func() {
		Expect(mimeutil.TypeByFileName("index.html")).To(Equal("text/html; charset=utf-8"))
	})

	It("falls back to octet-stream for an unknown extension", func() {
		Expect(mimeutil.TypeByFileName("blob.xyz")).To(Equal("application/octet-stream"))
	})
})

var _ = Describe("ParseContentType", func() {
	It("splits media type from parameters", func() {
		mt, params := mimeutil.ParseContentType("multipart/form-data; boundary=xyz")
		Expect(mt).To(Equal("multipart/form-data"))
		Expect(params["boundary"]).To(Equal("xyz"))
	})
})
