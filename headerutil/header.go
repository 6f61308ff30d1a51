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

// Package headerutil provides a case-insensitive, multi-value HTTP header
// map, canonicalizing field names per RFC 7230's token grammar.
package headerutil

import (
	"sort"
	"strings"
)

// Header maps a canonical field name to its value(s) in arrival order.
type Header map[string][]string

// New returns an empty Header.
func New() Header { return make(Header) }

// Add appends value to key's existing values.
func (h Header) Add(key, value string) {
	h[CanonicalKey(key)] = append(h[CanonicalKey(key)], value)
}

// Set replaces key's values with the single value given.
func (h Header) Set(key, value string) {
	h[CanonicalKey(key)] = []string{value}
}

// Get returns the first value associated with key, or "".
func (h Header) Get(key string) string {
	v := h[CanonicalKey(key)]
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// Values returns every value associated with key.
func (h Header) Values(key string) []string { return h[CanonicalKey(key)] }

// Del removes key.
func (h Header) Del(key string) { delete(h, CanonicalKey(key)) }

// Has reports whether key has at least one value.
func (h Header) Has(key string) bool { return len(h[CanonicalKey(key)]) > 0 }

// Clone returns a deep copy.
func (h Header) Clone() Header {
	out := make(Header, len(h))
	for k, vv := range h {
		cp := make([]string, len(vv))
		copy(cp, vv)
		out[k] = cp
	}
	return out
}

// Keys returns the canonical key names, sorted for deterministic iteration.
func (h Header) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CanonicalKey rewrites a header field name to Header-Case-Form
// ("content-type" -> "Content-Type"), per RFC 7230 canonicalization.
// Input is not checked against the token grammar: letters are re-cased and
// every other byte is kept as is, rather than rejected, since obs-fold and
// permissive parsing already happen upstream in the parser.
func CanonicalKey(key string) string {
	if key == "" {
		return key
	}
	b := []byte(key)
	upper := true
	for i, c := range b {
		if upper && 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		} else if !upper && 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
		upper = c == '-'
	}
	return string(b)
}

// UnfoldObsFold collapses an obsolete line-folded continuation (CRLF or LF
// followed by a run of spaces/tabs) into a single space, per RFC 7230
// §3.2.4. The parser assembles a header value from one or more physical
// lines before calling this; a value with no embedded CR/LF is untouched.
func UnfoldObsFold(v string) string {
	if !strings.ContainsAny(v, "\r\n") {
		return v
	}
	var b strings.Builder
	b.Grow(len(v))
	i := 0
	for i < len(v) {
		c := v[i]
		if c == '\r' || c == '\n' {
			for i < len(v) && (v[i] == '\r' || v[i] == '\n') {
				i++
			}
			for i < len(v) && (v[i] == ' ' || v[i] == '\t') {
				i++
			}
			b.WriteByte(' ')
			continue
		}
		b.WriteByte(c)
		i++
	}
	return strings.TrimSpace(b.String())
}
