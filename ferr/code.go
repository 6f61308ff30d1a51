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

package ferr

// CodeError is a numeric error classification, similar in spirit to HTTP
// status codes. The scheduler, stream, transport and httpcore packages all
// raise errors through one of the ranges below rather than ad-hoc sentinel
// values, so a caller can branch on Kind() without string matching.
type CodeError uint16

// Error kind ranges. Each suspension-point failure named in the error
// taxonomy is a distinct range so handlers cannot accidentally translate an
// interruption into an HTTP status or vice versa.
const (
	UnknownError CodeError = 0

	// Interrupted: a suspending call was cancelled via scheduler.Interrupt.
	Interrupted CodeError = 1000

	// TimedOut: a suspending call exceeded its timeout.
	TimedOut CodeError = 1001

	// IOError: transport-level failure (peer reset, partial read at eof, fd error).
	IOError CodeError = 1100

	// ProtocolError: malformed HTTP or WebSocket bytes.
	ProtocolError CodeError = 1200

	// TLSError: handshake or record failure.
	TLSError CodeError = 1300

	// HTTPStatusError: an explicit non-2xx signal raised by a handler.
	// The numeric value of the code carries the HTTP status itself
	// (400-599), allowing CodeError(status) round-tripping.
	HTTPStatusErrorBase CodeError = 400

	// UsageError: contract violation (write after finalize, header set
	// after commit, returning a non-borrowed pool item).
	UsageError CodeError = 1400
)

// Kind classifies a CodeError into one of the taxonomy buckets from the
// error handling design. HTTP status codes (100-599) are reported as
// KindHTTPStatus.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInterrupted
	KindTimedOut
	KindIOError
	KindProtocolError
	KindTLSError
	KindHTTPStatus
	KindUsageError
)

// Kind returns the taxonomy bucket for a CodeError.
func (c CodeError) Kind() Kind {
	switch {
	case c == Interrupted:
		return KindInterrupted
	case c == TimedOut:
		return KindTimedOut
	case c == IOError:
		return KindIOError
	case c == ProtocolError:
		return KindProtocolError
	case c == TLSError:
		return KindTLSError
	case c == UsageError:
		return KindUsageError
	case c >= 100 && c < 600:
		return KindHTTPStatus
	default:
		return KindUnknown
	}
}

// idMsgFct stores the mapping between error codes and their message
// functions, so callers can customize wording for a given code without
// forking the package.
var idMsgFct = make(map[CodeError]func(CodeError) string)

// RegisterMessage installs a custom message function for a code.
func RegisterMessage(code CodeError, fct func(CodeError) string) {
	idMsgFct[code] = fct
}

func (c CodeError) message() string {
	if fct, ok := idMsgFct[c]; ok {
		return fct(c)
	}
	switch c {
	case UnknownError:
		return "unknown error"
	case Interrupted:
		return "interrupted"
	case TimedOut:
		return "timed out"
	case IOError:
		return "i/o error"
	case ProtocolError:
		return "protocol error"
	case TLSError:
		return "tls error"
	case UsageError:
		return "usage error"
	default:
		if c.Kind() == KindHTTPStatus {
			return "http status error"
		}
		return "error"
	}
}
