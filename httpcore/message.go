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
	"net"
	"strings"

	"github.com/nabbar/fibernet/headerutil"
	"github.com/nabbar/fibernet/stream"
	"github.com/nabbar/fibernet/urlutil"
)

// Request is one parsed HTTP request. On a request from the server
// dispatcher Body is never nil: a request without a body gets an empty
// stream.Memory, and counted/chunked framing resolving to zero length
// isn't special-cased (an empty Counted/Chunked reader is still used).
type Request struct {
	Method     string
	Target     urlutil.Target
	ProtoMajor int
	ProtoMinor int
	Header     headerutil.Header
	Body       stream.Reader
	RemoteAddr net.Addr

	// Params holds named-segment captures from router matching; Tail
	// holds a "*" tail match (including any leading "/").
	Params map[string]string
	Tail   string
}

// HTTPVersion renders "HTTP/major.minor".
func (r *Request) HTTPVersion() string {
	if r.ProtoMajor == 1 && r.ProtoMinor == 0 {
		return "HTTP/1.0"
	}
	return "HTTP/1.1"
}

// KeepAliveRequested reports whether the request's own framing wants the
// connection kept open: HTTP/1.1 defaults to keep-alive unless
// "Connection: close" is present; HTTP/1.0 defaults to close unless
// "Connection: keep-alive" is present.
func (r *Request) KeepAliveRequested() bool {
	conn := r.Header.Get("Connection")
	if r.ProtoMajor == 1 && r.ProtoMinor == 0 {
		return equalFoldToken(conn, "keep-alive")
	}
	return !equalFoldToken(conn, "close")
}

func equalFoldToken(header, token string) bool {
	for _, f := range strings.Split(header, ",") {
		if strings.EqualFold(strings.TrimSpace(f), token) {
			return true
		}
	}
	return false
}
