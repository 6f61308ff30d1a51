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

// Package ginbridge lets a *gin.Engine sit in front of a fiber connection:
// Wrap adapts an httpcore.Request/ResponseWriter pair into the
// net/http types gin.Engine.ServeHTTP expects, so application routes,
// middleware (auth, logging, recovery) and gin.H JSON rendering run
// unchanged on top of the cooperative-scheduling transport underneath.
package ginbridge

import (
	"bufio"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/nabbar/fibernet/ferr"
	"github.com/nabbar/fibernet/httpcore"
	"github.com/nabbar/fibernet/stream"
)

// Wrap returns an httpcore.HandlerFunc that dispatches every request to
// engine. Register it as a catch-all tail route ("/*") on an
// httpcore.Router to hand an entire subtree to gin.
func Wrap(engine *gin.Engine) httpcore.HandlerFunc {
	return func(w *httpcore.ResponseWriter, r *httpcore.Request) {
		req, err := toHTTPRequest(r)
		if err != nil {
			_ = w.WriteHeader(http.StatusBadRequest)
			return
		}
		engine.ServeHTTP(&responseWriter{w: w}, req)
	}
}

func toHTTPRequest(r *httpcore.Request) (*http.Request, error) {
	u := &url.URL{Path: r.Target.Path, RawPath: r.Target.RawPath, RawQuery: r.Target.RawQuery}
	if r.Target.Absolute != nil {
		u = r.Target.Absolute
	}

	var body io.ReadCloser
	if r.Body != nil {
		body = io.NopCloser(&readerAdapter{src: r.Body})
	} else {
		body = http.NoBody
	}

	req, err := http.NewRequest(r.Method, u.String(), body)
	if err != nil {
		return nil, ferr.New(ferr.ProtocolError, "ginbridge: build request", err)
	}
	req.Proto = r.HTTPVersion()
	req.ProtoMajor = r.ProtoMajor
	req.ProtoMinor = r.ProtoMinor
	req.RemoteAddr = addrString(r.RemoteAddr)
	req.Header = make(http.Header, len(r.Header))
	for _, k := range r.Header.Keys() {
		req.Header[k] = r.Header.Values(k)
	}
	req.Host = r.Header.Get("Host")
	return req, nil
}

func addrString(a net.Addr) string {
	if a == nil {
		return ""
	}
	return a.String()
}

// readerAdapter makes a stream.Reader satisfy io.Reader.
type readerAdapter struct {
	src stream.Reader
}

func (a *readerAdapter) Read(p []byte) (int, error) {
	return a.src.Read(p, stream.ModeOnce)
}

// responseWriter makes an *httpcore.ResponseWriter satisfy http.ResponseWriter
// (and http.Flusher, since gin's logger/recovery middleware type-assert it).
// Header mutations land in hdr, a gin-owned map, until WriteHeader commits
// them onto the underlying ResponseWriter's own Header.
type responseWriter struct {
	w           *httpcore.ResponseWriter
	hdr         http.Header
	wroteHeader bool
}

func (rw *responseWriter) Header() http.Header {
	if rw.hdr == nil {
		rw.hdr = make(http.Header)
	}
	return rw.hdr
}

func (rw *responseWriter) WriteHeader(status int) {
	if rw.wroteHeader {
		return
	}
	rw.wroteHeader = true
	for k, v := range rw.hdr {
		for _, vv := range v {
			rw.w.Header.Add(k, vv)
		}
	}
	_ = rw.w.WriteHeader(status)
}

func (rw *responseWriter) Write(p []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.w.Write(p)
}

func (rw *responseWriter) Flush() {}
