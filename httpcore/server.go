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
	"fmt"
	"net"
	"strconv"
	"strings"

	"golang.org/x/net/idna"

	"github.com/nabbar/fibernet/ferr"
	"github.com/nabbar/fibernet/flog"
	"github.com/nabbar/fibernet/headerutil"
	"github.com/nabbar/fibernet/stream"
)

// RejectFunc is consulted against the peer address before the handler
// runs; returning true rejects the connection with a 403.
type RejectFunc func(remote net.Addr) bool

// ErrorPageFunc renders the body of a non-2xx response the dispatcher
// generates itself (parse failure, rejected connection, unmatched route,
// handler panic) rather than a handler. status is the HTTP status being
// sent; message is the short diagnostic text (e.g. "Missing Host header.").
type ErrorPageFunc func(status int, message string) []byte

// Config configures one Dispatch invocation per accepted connection.
type Config struct {
	// VHosts maps a Host header value (host[:port] or bare host) to a
	// Router. "" is the default, used when no Host entry matches or the
	// request carries none (HTTP/1.0).
	VHosts         map[string]*Router
	MaxHeaderBytes int
	Reject         RejectFunc
	// ErrorPage renders dispatcher-generated error bodies (400/403/404/431/
	// 500/...). Defaults to defaultErrorPage, a one-line plain-text body,
	// when nil.
	ErrorPage ErrorPageFunc
	Log       flog.Logger
}

func (c *Config) renderError(status int, message string) []byte {
	if c.ErrorPage != nil {
		return c.ErrorPage(status, message)
	}
	return defaultErrorPage(status, message)
}

// defaultErrorPage renders a one-line plain-text body: "404 Not Found:
// <message>\n". message is included verbatim so a caller that greps the
// response body for a specific diagnostic (e.g. "Missing Host header.")
// finds it regardless of which status text wraps it.
func defaultErrorPage(status int, message string) []byte {
	return []byte(fmt.Sprintf("%d %s: %s\n", status, ReasonPhrase(status), message))
}

func (c *Config) router(host string) *Router {
	host = normalizeHost(host)
	if r, ok := c.VHosts[host]; ok {
		return r
	}
	if i := strings.IndexByte(host, ':'); i >= 0 {
		if r, ok := c.VHosts[host[:i]]; ok {
			return r
		}
	}
	return c.VHosts[""]
}

// normalizeHost lowercases host and, for an internationalized domain,
// rewrites it to its ASCII (punycode) form so a VHosts key written in
// either form matches. Host values that are not valid domains (IP
// literals, malformed input) pass through unchanged.
func normalizeHost(host string) string {
	if host == "" {
		return host
	}
	ascii, err := idna.Lookup.ToASCII(strings.ToLower(host))
	if err != nil {
		return strings.ToLower(host)
	}
	return ascii
}

func (c *Config) maxHeaderBytes() int {
	if c.MaxHeaderBytes > 0 {
		return c.MaxHeaderBytes
	}
	return 16 * 1024
}

// Dispatch implements transport.Handler: parse/route/invoke/finalize one
// or more requests on conn until the connection's own framing (or the
// handler) asks to close, then closes conn.
func Dispatch(cfg *Config, conn *stream.Conn) {
	defer func() { _ = conn.Close() }()
	buffered := stream.NewBuffered(conn)

	for {
		req, err := ParseRequest(buffered, cfg.maxHeaderBytes())
		if err != nil {
			writeParseError(cfg, conn, err)
			return
		}

		if cfg.Reject != nil && cfg.Reject(conn.Raw().RemoteAddr()) {
			writeStatusOnly(cfg, conn, req, 403, "Forbidden")
			return
		}

		body, berr := resolveRequestBody(req, buffered)
		if berr != nil {
			writeParseError(cfg, conn, berr)
			return
		}
		req.Body = body
		req.RemoteAddr = conn.Raw().RemoteAddr()

		w := newResponseWriter()
		rt := cfg.router(req.Header.Get(headerutil.Host))

		closeAfter := !req.KeepAliveRequested()
		handled := invokeHandler(cfg, rt, w, req)
		if !handled {
			_ = w.WriteHeader(404)
			_, _ = w.Write(cfg.renderError(404, "Not Found"))
		}
		out := stream.NewMemory(nil)
		prepareFraming(w, req, out)
		writeResponse(conn, w, req)
		_, _ = conn.Write(out.Bytes(), stream.ModeAll)
		if w.closeConn {
			closeAfter = true
		}

		if closeAfter {
			return
		}
	}
}

func invokeHandler(cfg *Config, rt *Router, w *ResponseWriter, req *Request) (handled bool) {
	defer func() {
		if r := recover(); r != nil {
			if cfg.Log != nil {
				cfg.Log.Error(fmt.Sprintf("httpcore: handler panic: %v", r))
			}
			if !w.Committed() {
				_ = w.WriteHeader(500)
				_, _ = w.Write(cfg.renderError(500, "Internal Server Error"))
			} else {
				w.closeConn = true
			}
			handled = true
		}
	}()

	if rt == nil {
		return false
	}
	h, ok := rt.Match(req)
	if !ok {
		return false
	}
	h(w, req)
	return true
}

// prepareFraming chooses counted vs chunked response framing and attaches
// the matching stream.Writer, layered over out, to w, which flushes the
// handler's buffered bytes through it into out. The dispatcher writes out
// to the connection only after the status line and headers. The handler has
// already returned by the time this runs and bodyOut is never attached
// before it, so pending always holds the whole body; a handler that didn't
// set Content-Length itself still gets counted framing derived from
// len(pending) rather than falling back to chunked.
func prepareFraming(w *ResponseWriter, req *Request, out stream.Writer) {
	if w.Header.Get(headerutil.ContentLength) == "" {
		w.setContentLength(int64(len(w.pending)))
	}

	if cl := w.Header.Get(headerutil.ContentLength); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil {
			w.contentLen = n
			w.counted = stream.NewCountedWriter(out, n)
			if err = w.attachBodyOut(w.counted); err != nil {
				w.closeConn = true
			}
			return
		}
	}

	if req.ProtoMajor == 1 && req.ProtoMinor == 0 {
		w.closeConn = true
		if err := w.attachBodyOut(out); err != nil {
			w.closeConn = true
		}
		return
	}

	w.Header.Set(headerutil.TransferEncoding, "chunked")
	w.chunked = stream.NewChunkedWriter(out)
	if err := w.attachBodyOut(w.chunked); err != nil {
		w.closeConn = true
	}
}

func writeResponse(conn *stream.Conn, w *ResponseWriter, req *Request) {
	if err := w.Finalize(); err != nil {
		w.closeConn = true
	}
	if w.closeConn {
		w.Header.Set(headerutil.Connection, "close")
	}
	writeStatusLine(conn, req, w.Status)
	writeHeaderBlock(conn, w.Header)
}

func writeStatusLine(conn *stream.Conn, req *Request, status int) {
	line := fmt.Sprintf("%s %d %s\r\n", req.HTTPVersion(), status, ReasonPhrase(status))
	_, _ = conn.Write([]byte(line), stream.ModeAll)
}

func writeHeaderBlock(conn *stream.Conn, h headerutil.Header) {
	var b strings.Builder
	for _, k := range h.Keys() {
		for _, v := range h.Values(k) {
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(v)
			b.WriteString("\r\n")
		}
	}
	b.WriteString("\r\n")
	_, _ = conn.Write([]byte(b.String()), stream.ModeAll)
}

func writeStatusOnly(cfg *Config, conn *stream.Conn, req *Request, status int, message string) {
	body := cfg.renderError(status, message)
	h := headerutil.New()
	h.Set(headerutil.ContentLength, strconv.Itoa(len(body)))
	h.Set(headerutil.Connection, "close")
	writeStatusLine(conn, req, status)
	writeHeaderBlock(conn, h)
	_, _ = conn.Write(body, stream.ModeAll)
}

func writeParseError(cfg *Config, conn *stream.Conn, err error) {
	status := 400
	message := err.Error()
	if se, ok := err.(*StatusError); ok {
		status = se.Status
		message = se.Message
	} else if fe := ferr.Get(err); fe != nil && fe.Kind() == ferr.KindHTTPStatus {
		status = int(fe.Code())
		message = fe.Error()
	}
	body := cfg.renderError(status, message)
	h := headerutil.New()
	h.Set(headerutil.ContentLength, strconv.Itoa(len(body)))
	h.Set(headerutil.Connection, "close")
	line := fmt.Sprintf("HTTP/1.1 %d %s\r\n", status, ReasonPhrase(status))
	_, _ = conn.Write([]byte(line), stream.ModeAll)
	writeHeaderBlock(conn, h)
	_, _ = conn.Write(body, stream.ModeAll)
}
