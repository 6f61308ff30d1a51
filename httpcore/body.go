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
	"strconv"
	"strings"

	"github.com/nabbar/fibernet/headerutil"
	"github.com/nabbar/fibernet/stream"
)

// bodyHasNoSemantics reports whether method's request semantics preclude a
// body regardless of framing headers (GET/HEAD/DELETE/OPTIONS bodies are
// legal per RFC but vanishingly rare; this module treats only GET/HEAD as
// definitionally bodiless, matching what every HTTP/1.1 server actually
// special-cases).
func bodyHasNoSemantics(method string) bool {
	return method == "GET" || method == "HEAD"
}

// resolveRequestBody applies the body framing priority order: chunked,
// then counted (Content-Length), then no-body, then (HTTP/1.0 only)
// read-to-close, else empty. src is the raw connection reader, already
// wrapped in a stream.Buffered by the caller for header parsing.
func resolveRequestBody(req *Request, src *stream.Buffered) (stream.Reader, error) {
	chunked := equalFoldToken(req.Header.Get(headerutil.TransferEncoding), "chunked")
	hasContentLength := req.Header.Get(headerutil.ContentLength) != ""
	if chunked && hasContentLength {
		// RFC 7230 §3.3.3 rule 3: a message with both headers is an
		// attempt at request smuggling and must be rejected.
		return nil, statusErr(400, "Bad Request: Transfer-Encoding and Content-Length both present")
	}

	if chunked {
		return wrapContentEncoding(req, stream.NewChunkedReader(src))
	}

	if cl := req.Header.Get(headerutil.ContentLength); cl != "" {
		n, err := strconv.ParseInt(cl, 10, 64)
		if err != nil || n < 0 {
			return nil, statusErr(400, "Bad Request: invalid Content-Length")
		}
		return wrapContentEncoding(req, stream.NewCountedReader(src, n))
	}

	if bodyHasNoSemantics(req.Method) {
		return stream.NewMemory(nil), nil
	}

	if req.ProtoMajor == 1 && req.ProtoMinor == 0 {
		return wrapContentEncoding(req, src)
	}

	return stream.NewMemory(nil), nil
}

func wrapContentEncoding(req *Request, r stream.Reader) (stream.Reader, error) {
	switch strings.ToLower(req.Header.Get(headerutil.ContentEncoding)) {
	case "gzip":
		return stream.NewGzipReader(r)
	case "deflate":
		return stream.NewDeflateReader(r)
	default:
		return r, nil
	}
}
