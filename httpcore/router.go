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
	"strings"

	"github.com/nabbar/fibernet/urlutil"
)

// HandlerFunc processes one request, writing its response through w.
type HandlerFunc func(w *ResponseWriter, r *Request)

type route struct {
	method  string // "" or "*" matches any method
	segs    []string
	tail    bool
	handler HandlerFunc
}

// Router matches a method+path against routes in insertion order; the
// first match wins. A segment starting with ':' captures one path
// segment as a named parameter; a segment equal to "*" is a tail match
// capturing the remainder (possibly empty), and must be the route's last
// segment.
type Router struct {
	routes []route
}

// NewRouter returns an empty Router.
func NewRouter() *Router { return &Router{} }

// Handle registers pattern for method ("*" matches any method).
func (rt *Router) Handle(method, pattern string, handler HandlerFunc) {
	segs, err := urlutil.SplitPath(pattern)
	if err != nil {
		segs = strings.Split(strings.Trim(pattern, "/"), "/")
	}
	tail := false
	if len(segs) > 0 && segs[len(segs)-1] == "*" {
		tail = true
		segs = segs[:len(segs)-1]
	}
	rt.routes = append(rt.routes, route{method: method, segs: segs, tail: tail, handler: handler})
}

// Match finds the first route whose method and path pattern match,
// returning its handler with captured params/tail populated onto req.
func (rt *Router) Match(req *Request) (HandlerFunc, bool) {
	reqSegs, err := urlutil.SplitPath(req.Target.RawPath)
	if err != nil {
		return nil, false
	}

	for _, rte := range rt.routes {
		if rte.method != "" && rte.method != "*" && rte.method != req.Method {
			continue
		}
		if !rte.tail && len(reqSegs) != len(rte.segs) {
			continue
		}
		if rte.tail && len(reqSegs) < len(rte.segs) {
			continue
		}

		params := map[string]string{}
		ok := true
		for i, seg := range rte.segs {
			switch {
			case strings.HasPrefix(seg, ":"):
				params[seg[1:]] = reqSegs[i]
			case seg == reqSegs[i]:
			default:
				ok = false
			}
			if !ok {
				break
			}
		}
		if !ok {
			continue
		}

		req.Params = params
		if rte.tail {
			req.Tail = "/" + strings.Join(reqSegs[len(rte.segs):], "/")
			if len(reqSegs) == len(rte.segs) {
				req.Tail = ""
			}
		}
		return rte.handler, true
	}
	return nil, false
}
