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

// multipart/form-data decoding is implemented directly against the
// standard library's mime/multipart: the wire format (boundary framing,
// part headers) is specified byte-for-byte by RFC 2046/7578, and no
// ecosystem package retrieved alongside this module reimplements it any
// more correctly than the standard library package that originates the
// format. This is the second core component justified on the stdlib per
// the grounding ledger's required-justification rule (the first is
// gzip/deflate in the stream package).
package httpcore

import (
	"io"
	"mime/multipart"

	"github.com/nabbar/fibernet/ferr"
	"github.com/nabbar/fibernet/stream"
)

// streamIoReader adapts a stream.Reader (mode-parameterized) to the plain
// io.Reader mime/multipart expects, reading in ModeAll (block for a full
// buffer's worth) to match multipart's own buffering expectations.
type streamIoReader struct{ r stream.Reader }

func (s streamIoReader) Read(p []byte) (int, error) { return s.r.Read(p, stream.ModeAll) }

// FormPart is one decoded multipart/form-data part: a field name, an
// optional filename (for file parts), its headers, and its content read
// entirely into memory.
type FormPart struct {
	Name     string
	FileName string
	Header   map[string][]string
	Content  []byte
}

// MultipartForm parses body as multipart/form-data using boundary (as
// extracted from the request's Content-Type parameters). maxMemory bounds
// the total bytes buffered across all parts combined.
func MultipartForm(body stream.Reader, boundary string, maxMemory int64) ([]FormPart, error) {
	mr := multipart.NewReader(streamIoReader{body}, boundary)
	var out []FormPart
	var total int64

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ferr.New(ferr.ProtocolError, "httpcore: multipart parse", err)
		}

		content, err := io.ReadAll(io.LimitReader(part, maxMemory-total+1))
		_ = part.Close()
		if err != nil {
			return nil, ferr.New(ferr.ProtocolError, "httpcore: multipart part read", err)
		}
		total += int64(len(content))
		if total > maxMemory {
			return nil, ferr.New(ferr.ProtocolError, "httpcore: multipart form exceeds max memory")
		}

		out = append(out, FormPart{
			Name:     part.FormName(),
			FileName: part.FileName(),
			Header:   map[string][]string(part.Header),
			Content:  content,
		})
	}
	return out, nil
}
