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

	"golang.org/x/net/http/httpguts"

	"github.com/nabbar/fibernet/headerutil"
	"github.com/nabbar/fibernet/stream"
	"github.com/nabbar/fibernet/urlutil"
)

// StatusError carries an HTTP status the parser/dispatcher wants emitted
// directly (400, 431, ...), as opposed to a ferr.Kind the dispatcher must
// translate.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

func statusErr(status int, msg string) error { return &StatusError{Status: status, Message: msg} }

// ParseRequest reads and parses one request line and header block from b.
// maxHeaderBytes bounds the total bytes consumed across the request line
// and every header line combined; exceeding it yields a 431.
func ParseRequest(b *stream.Buffered, maxHeaderBytes int) (*Request, error) {
	total := 0

	line, err := b.ReadUntil('\n', maxHeaderBytes)
	if err != nil {
		return nil, statusErr(431, "Request Header Fields Too Large")
	}
	total += len(line)
	reqLine := strings.TrimRight(string(line), "\r\n")

	method, target, proto, err := parseRequestLine(reqLine)
	if err != nil {
		return nil, err
	}

	major, minor, err := parseHTTPVersion(proto)
	if err != nil {
		return nil, err
	}

	hdr := headerutil.New()
	var lastKey string
	for {
		line, err = b.ReadUntil('\n', maxHeaderBytes-total)
		if err != nil {
			return nil, statusErr(431, "Request Header Fields Too Large")
		}
		total += len(line)
		raw := strings.TrimRight(string(line), "\r\n")
		if raw == "" {
			break
		}

		if raw[0] == ' ' || raw[0] == '\t' {
			if lastKey == "" {
				return nil, statusErr(400, "Bad Request: unexpected header continuation")
			}
			vv := hdr.Values(lastKey)
			if len(vv) > 0 {
				vv[len(vv)-1] = headerutil.UnfoldObsFold(vv[len(vv)-1] + "\r\n" + raw)
			}
			continue
		}

		idx := strings.IndexByte(raw, ':')
		if idx <= 0 {
			return nil, statusErr(400, "Bad Request: malformed header line")
		}
		name := strings.TrimSpace(raw[:idx])
		value := strings.TrimSpace(raw[idx+1:])
		if !httpguts.ValidHeaderFieldName(name) {
			return nil, statusErr(400, "Bad Request: invalid header field name")
		}
		if !httpguts.ValidHeaderFieldValue(value) {
			return nil, statusErr(400, "Bad Request: invalid header field value")
		}
		hdr.Add(name, value)
		lastKey = headerutil.CanonicalKey(name)
	}

	target2, terr := urlutil.ParseRequestTarget(target)
	if terr != nil {
		return nil, statusErr(400, "Bad Request: malformed request-target")
	}

	if major == 1 && minor == 1 && hdr.Get(headerutil.Host) == "" {
		return nil, statusErr(400, "Missing Host header.")
	}

	return &Request{
		Method:     method,
		Target:     target2,
		ProtoMajor: major,
		ProtoMinor: minor,
		Header:     hdr,
	}, nil
}

func parseRequestLine(line string) (method, target, proto string, err error) {
	sp1 := strings.IndexByte(line, ' ')
	if sp1 <= 0 {
		return "", "", "", statusErr(400, "Bad Request: malformed request line")
	}
	rest := line[sp1+1:]
	sp2 := strings.LastIndexByte(rest, ' ')
	if sp2 <= 0 {
		return "", "", "", statusErr(400, "Bad Request: malformed request line")
	}
	method = line[:sp1]
	target = rest[:sp2]
	proto = rest[sp2+1:]
	if !isValidToken(method) {
		return "", "", "", statusErr(400, "Bad Request: invalid method token")
	}
	return method, target, proto, nil
}

func isValidToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !httpguts.IsTokenRune(r) {
			return false
		}
	}
	return true
}

func parseHTTPVersion(proto string) (major, minor int, err error) {
	const prefix = "HTTP/"
	if !strings.HasPrefix(proto, prefix) {
		return 0, 0, statusErr(400, "Bad Request: unsupported protocol")
	}
	rest := proto[len(prefix):]
	dot := strings.IndexByte(rest, '.')
	if dot < 0 {
		return 0, 0, statusErr(400, "Bad Request: malformed HTTP version")
	}
	maj, e1 := strconv.Atoi(rest[:dot])
	min, e2 := strconv.Atoi(rest[dot+1:])
	if e1 != nil || e2 != nil || maj != 1 || (min != 0 && min != 1) {
		return 0, 0, statusErr(400, "Bad Request: unsupported HTTP version")
	}
	return maj, min, nil
}

