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

package fnetcfg_test

import (
	"path/filepath"

	"github.com/nabbar/fibernet/fnetcfg"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ClientConfig", func() {
	It("builds a pool and a client with the configured MaxRedirects and no cookie jar", func() {
		cfg := &fnetcfg.ClientConfig{MaxRedirects: 5}

		pool, err := cfg.BuildPool()
		Expect(err).ToNot(HaveOccurred())
		Expect(pool).ToNot(BeNil())

		cl, err := cfg.BuildClient(pool)
		Expect(err).ToNot(HaveOccurred())
		Expect(cl.MaxRedirects).To(Equal(5))
		Expect(cl.Jar).To(BeNil())
	})

	It("wires a file-backed cookie jar when CookieJarPath is set", func() {
		cfg := &fnetcfg.ClientConfig{CookieJarPath: filepath.Join(GinkgoT().TempDir(), "cookies.txt")}

		pool, err := cfg.BuildPool()
		Expect(err).ToNot(HaveOccurred())

		cl, err := cfg.BuildClient(pool)
		Expect(err).ToNot(HaveOccurred())
		Expect(cl.Jar).ToNot(BeNil())
	})
})
