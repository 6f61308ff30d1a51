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

	"github.com/nabbar/fibernet/ferr"
	"github.com/nabbar/fibernet/headerutil"
	"github.com/nabbar/fibernet/stream"
)

// responseState is the response state machine named in the server
// dispatcher contract: headersMutable -> headersCommitted -> bodyClosed.
type responseState int32

const (
	stateHeadersMutable responseState = iota
	stateHeadersCommitted
	stateBodyClosed
)

// ResponseWriter is the handler-facing side of a response. It is owned by
// the handler fiber only and must not be handed to a background fiber.
type ResponseWriter struct {
	Status int
	Header headerutil.Header

	state       responseState
	bodyWritten int64
	contentLen  int64 // -1 = unknown
	bodyOut     stream.Writer
	pending     []byte // buffered until the dispatcher attaches bodyOut
	chunked     *stream.ChunkedWriter
	counted     *stream.CountedWriter
	closeConn   bool
}

func newResponseWriter() *ResponseWriter {
	return &ResponseWriter{Status: 200, Header: headerutil.New(), contentLen: -1}
}

// WriteHeader commits status+headers at the given code without writing
// body bytes. A 1xx status may be sent without transitioning: it is
// informational and a real final status always follows.
func (w *ResponseWriter) WriteHeader(status int) error {
	if w.state == stateHeadersCommitted || w.state == stateBodyClosed {
		return ferr.New(ferr.UsageError, "httpcore: headers already committed")
	}
	w.Status = status
	if status >= 100 && status < 200 {
		return nil
	}
	w.state = stateHeadersCommitted
	return nil
}

// Write commits headers (with status 200 if none was set) on first call,
// then streams body bytes through whatever framing the dispatcher
// attached. A handler runs before the dispatcher has decided the
// response's wire framing (it depends on the handler's own headers), so
// bytes written before bodyOut is attached are buffered in pending and
// flushed by flushPending once the dispatcher calls attachBodyOut.
func (w *ResponseWriter) Write(p []byte) (int, error) {
	if w.state == stateBodyClosed {
		return 0, ferr.New(ferr.UsageError, "httpcore: write after finalize")
	}
	if w.state == stateHeadersMutable {
		if err := w.WriteHeader(w.Status); err != nil {
			return 0, err
		}
	}
	w.bodyWritten += int64(len(p))
	if w.contentLen >= 0 && w.bodyWritten > w.contentLen {
		return 0, ferr.New(ferr.ProtocolError, "httpcore: response body exceeds Content-Length")
	}
	if w.bodyOut == nil {
		w.pending = append(w.pending, p...)
		return len(p), nil
	}
	return w.bodyOut.Write(p, stream.ModeAll)
}

// attachBodyOut is called by the dispatcher once response framing is
// decided; it wires out as the body writer and flushes whatever the
// handler buffered before framing was available.
func (w *ResponseWriter) attachBodyOut(out stream.Writer) error {
	w.bodyOut = out
	if len(w.pending) == 0 {
		return nil
	}
	p := w.pending
	w.pending = nil
	_, err := out.Write(p, stream.ModeAll)
	return err
}

// Finalize closes body framing (emitting the chunked terminator if
// applicable) and transitions to bodyClosed. Calling Finalize before any
// Write commits empty-body headers.
func (w *ResponseWriter) Finalize() error {
	if w.state == stateBodyClosed {
		return nil
	}
	if w.state == stateHeadersMutable {
		if err := w.WriteHeader(w.Status); err != nil {
			return err
		}
	}
	w.state = stateBodyClosed
	if w.chunked != nil {
		return w.chunked.Finalize()
	}
	if w.contentLen >= 0 && w.bodyWritten < w.contentLen {
		// Body shorter than declared Content-Length: the framing is now
		// internally inconsistent, so the connection cannot be reused.
		w.closeConn = true
		return ferr.New(ferr.ProtocolError, "httpcore: response body shorter than Content-Length")
	}
	return nil
}

// Committed reports whether headers have already been sent.
func (w *ResponseWriter) Committed() bool { return w.state != stateHeadersMutable }

func (w *ResponseWriter) setContentLength(n int64) {
	w.contentLen = n
	w.Header.Set("Content-Length", strconv.FormatInt(n, 10))
}
