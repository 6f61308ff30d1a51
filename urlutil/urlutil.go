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

// Package urlutil parses an HTTP request-target (origin-form or
// absolute-form, RFC 7230 §5.3) and the small set of path helpers the
// router and client need. It is a thin shim over net/url rather than a
// hand-rolled parser: the request-target grammar IS URI grammar, and
// vendoring a parallel implementation (as badu-http's url package does,
// essentially reproducing net/url verbatim) would only add a translation
// step with no new behavior.
package urlutil

import (
	"net/url"
	"strings"

	"github.com/nabbar/fibernet/ferr"
)

// Target is a parsed request-target: Path/RawQuery for origin-form, plus
// Absolute (the full *url.URL) when absolute-form was used (proxy
// requests). RawPath is the path exactly as it appeared on the wire,
// percent-escapes intact; routing must split on RawPath, not Path, or a
// segment-internal "%2F" is indistinguishable from a literal "/" (Path
// is already decoded by net/url).
type Target struct {
	Path     string
	RawPath  string
	RawQuery string
	Absolute *url.URL
}

// ParseRequestTarget parses the target token of a request line. "*" (the
// OPTIONS asterisk-form) yields Path "*". An absolute-form target
// ("http://host/path") yields both Path/RawQuery and Absolute set.
func ParseRequestTarget(target string) (Target, error) {
	if target == "*" {
		return Target{Path: "*", RawPath: "*"}, nil
	}
	if strings.HasPrefix(target, "/") {
		u, err := url.ParseRequestURI(target)
		if err != nil {
			return Target{}, ferr.New(ferr.ProtocolError, "urlutil: invalid origin-form target", err)
		}
		return Target{Path: u.Path, RawPath: u.EscapedPath(), RawQuery: u.RawQuery}, nil
	}
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return Target{}, ferr.New(ferr.ProtocolError, "urlutil: invalid absolute-form target", err)
	}
	return Target{Path: u.Path, RawPath: u.EscapedPath(), RawQuery: u.RawQuery, Absolute: u}, nil
}

// SplitPath splits a URL path into its non-empty, %-decoded segments.
// Pass the RawPath (escaped) form so a segment-internal "%2F" survives as
// one segment instead of being read back as a path separator.
func SplitPath(p string) ([]string, error) {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	out := make([]string, 0, len(parts))
	for _, seg := range parts {
		if seg == "" {
			continue
		}
		dec, err := url.PathUnescape(seg)
		if err != nil {
			return nil, ferr.New(ferr.ProtocolError, "urlutil: invalid percent-encoding in path segment", err)
		}
		out = append(out, dec)
	}
	return out, nil
}

// ParseQuery parses a raw query string into a multimap, ignoring malformed
// pairs rather than failing the whole request (matching RFC 3986's "the
// query component is opaque to the generic syntax" looseness).
func ParseQuery(raw string) map[string][]string {
	values, _ := url.ParseQuery(raw)
	return values
}
