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

package fctx_test

import (
	"context"
	"testing"

	"github.com/nabbar/fibernet/fctx"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestFctx(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "fctx suite")
}

var _ = Describe("Store", func() {
	It("stores and loads typed keys", func() {
		s := fctx.New[string](context.Background())
		s.Store("peer", "127.0.0.1:1234")

		v, ok := s.Load("peer")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("127.0.0.1:1234"))

		_, ok = s.Load("missing")
		Expect(ok).To(BeFalse())
	})

	It("LoadOrStore only stores once", func() {
		s := fctx.New[string](nil)
		v, loaded := s.LoadOrStore("k", 1)
		Expect(loaded).To(BeFalse())
		Expect(v).To(Equal(1))

		v, loaded = s.LoadOrStore("k", 2)
		Expect(loaded).To(BeTrue())
		Expect(v).To(Equal(1))
	})

	It("Walk visits every key and can short-circuit", func() {
		s := fctx.New[int](nil)
		s.Store(1, "a")
		s.Store(2, "b")

		seen := 0
		complete := s.Walk(func(key int, val any) bool {
			seen++
			return false
		})
		Expect(complete).To(BeFalse())
		Expect(seen).To(Equal(1))
	})

	It("Clone copies entries into a fresh context", func() {
		s := fctx.New[string](nil)
		s.Store("a", 1)
		c := s.Clone(context.Background())
		v, ok := c.Load("a")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(1))

		c.Store("b", 2)
		_, ok = s.Load("b")
		Expect(ok).To(BeFalse())
	})

	It("Delete removes a key", func() {
		s := fctx.New[string](nil)
		s.Store("a", 1)
		s.Delete("a")
		_, ok := s.Load("a")
		Expect(ok).To(BeFalse())
	})
})
