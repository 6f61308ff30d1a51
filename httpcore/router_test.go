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
	"github.com/nabbar/fibernet/urlutil"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func reqFor(method, path string) *httpcore.Request {
	return &httpcore.Request{Method: method, Target: urlutil.Target{Path: path, RawPath: path}}
}

var _ = Describe("Router", func() {
	It("matches a literal path", func() {
		rt := httpcore.NewRouter()
		called := false
		rt.Handle("GET", "/health", func(w *httpcore.ResponseWriter, r *httpcore.Request) { called = true })

		h, ok := rt.Match(reqFor("GET", "/health"))
		Expect(ok).To(BeTrue())
		h(nil, reqFor("GET", "/health"))
		Expect(called).To(BeTrue())
	})

	It("captures a named parameter segment", func() {
		rt := httpcore.NewRouter()
		rt.Handle("GET", "/users/:id", func(w *httpcore.ResponseWriter, r *httpcore.Request) {})

		req := reqFor("GET", "/users/42")
		h, ok := rt.Match(req)
		Expect(ok).To(BeTrue())
		h(nil, req)
		Expect(req.Params["id"]).To(Equal("42"))
	})

	It("captures a tail match", func() {
		rt := httpcore.NewRouter()
		rt.Handle("GET", "/static/*", func(w *httpcore.ResponseWriter, r *httpcore.Request) {})

		req := reqFor("GET", "/static/js/app.js")
		h, ok := rt.Match(req)
		Expect(ok).To(BeTrue())
		h(nil, req)
		Expect(req.Tail).To(Equal("/js/app.js"))
	})

	It("gives priority to the first matching route in insertion order", func() {
		rt := httpcore.NewRouter()
		first := false
		rt.Handle("GET", "/a/:x", func(w *httpcore.ResponseWriter, r *httpcore.Request) { first = true })
		rt.Handle("GET", "/a/b", func(w *httpcore.ResponseWriter, r *httpcore.Request) {})

		h, ok := rt.Match(reqFor("GET", "/a/b"))
		Expect(ok).To(BeTrue())
		h(nil, reqFor("GET", "/a/b"))
		Expect(first).To(BeTrue())
	})

	It("reports no match for an unregistered method", func() {
		rt := httpcore.NewRouter()
		rt.Handle("GET", "/x", func(w *httpcore.ResponseWriter, r *httpcore.Request) {})
		_, ok := rt.Match(reqFor("POST", "/x"))
		Expect(ok).To(BeFalse())
	})

	It("keeps a %2F-escaped segment whole instead of splitting on it", func() {
		rt := httpcore.NewRouter()
		rt.Handle("GET", "/tag/:tag", func(w *httpcore.ResponseWriter, r *httpcore.Request) {})

		tgt, err := urlutil.ParseRequestTarget("/tag/foo%2Fbar")
		Expect(err).ToNot(HaveOccurred())
		req := &httpcore.Request{Method: "GET", Target: tgt}

		h, ok := rt.Match(req)
		Expect(ok).To(BeTrue())
		h(nil, req)
		Expect(req.Params["tag"]).To(Equal("foo/bar"))
	})

	It("404s a literal three-segment path that only looks like the escaped form", func() {
		rt := httpcore.NewRouter()
		rt.Handle("GET", "/tag/:tag", func(w *httpcore.ResponseWriter, r *httpcore.Request) {})

		tgt, err := urlutil.ParseRequestTarget("/tag/foo/bar")
		Expect(err).ToNot(HaveOccurred())
		req := &httpcore.Request{Method: "GET", Target: tgt}

		_, ok := rt.Match(req)
		Expect(ok).To(BeFalse())
	})
})
