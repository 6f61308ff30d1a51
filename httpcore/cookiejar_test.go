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
	"path/filepath"

	"github.com/nabbar/fibernet/httpcore"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CookieJar", func() {
	It("stores a Set-Cookie and replays it for a matching domain/path", func() {
		jar, err := httpcore.NewCookieJar(httpcore.CookieJarConfig{SymmetricWWW: true})
		Expect(err).ToNot(HaveOccurred())

		jar.SetFromResponse("example.com", "/", []string{"session=abc123; Path=/; Secure"})

		Expect(jar.CookieHeader("example.com", "/dashboard", true)).To(Equal("session=abc123"))
		Expect(jar.CookieHeader("example.com", "/dashboard", false)).To(Equal(""))
	})

	It("relaxes domain matching across a www. prefix when enabled", func() {
		jar, _ := httpcore.NewCookieJar(httpcore.CookieJarConfig{SymmetricWWW: true})
		jar.SetFromResponse("www.example.com", "/", []string{"id=1; Path=/"})
		Expect(jar.CookieHeader("example.com", "/", false)).To(Equal("id=1"))
	})

	It("does not relax www. matching when disabled", func() {
		jar, _ := httpcore.NewCookieJar(httpcore.CookieJarConfig{SymmetricWWW: false})
		jar.SetFromResponse("www.example.com", "/", []string{"id=1; Path=/"})
		Expect(jar.CookieHeader("example.com", "/", false)).To(Equal(""))
	})

	It("persists across jar instances via its backing file", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "cookies.jar")

		j1, err := httpcore.NewCookieJar(httpcore.CookieJarConfig{Path: path, SymmetricWWW: true})
		Expect(err).ToNot(HaveOccurred())
		j1.SetFromResponse("example.com", "/", []string{"a=1; Path=/"})

		j2, err := httpcore.NewCookieJar(httpcore.CookieJarConfig{Path: path, SymmetricWWW: true})
		Expect(err).ToNot(HaveOccurred())
		Expect(j2.CookieHeader("example.com", "/", false)).To(Equal("a=1"))
	})
})
