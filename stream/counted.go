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

package stream

import (
	"io"

	"github.com/nabbar/fibernet/ferr"
)

// CountedReader enforces a fixed-length frame: it refuses to read past
// limit and reports io.EOF once the limit is reached, matching the
// semantics an HTTP/1 body with a known Content-Length needs regardless of
// how much more the underlying connection has buffered.
type CountedReader struct {
	src       Reader
	remaining int64
}

// NewCountedReader wraps src, exposing at most limit bytes.
func NewCountedReader(src Reader, limit int64) *CountedReader {
	return &CountedReader{src: src, remaining: limit}
}

// Remaining reports how many bytes may still be read before eof.
func (c *CountedReader) Remaining() int64 { return c.remaining }

func (c *CountedReader) Read(buf []byte, mode Mode) (int, error) {
	if c.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(buf)) > c.remaining {
		buf = buf[:c.remaining]
	}
	n, err := c.src.Read(buf, mode)
	c.remaining -= int64(n)
	return n, err
}

func (c *CountedReader) Len() (int64, bool) { return c.remaining, true }

// CountedWriter enforces that no more than limit bytes are ever written,
// failing the write attempting to exceed it.
type CountedWriter struct {
	dst       Writer
	remaining int64
}

// NewCountedWriter wraps dst, limiting total writes to limit bytes.
func NewCountedWriter(dst Writer, limit int64) *CountedWriter {
	return &CountedWriter{dst: dst, remaining: limit}
}

func (c *CountedWriter) Write(buf []byte, mode Mode) (int, error) {
	if int64(len(buf)) > c.remaining {
		return 0, ferr.New(ferr.ProtocolError, "stream: write exceeds counted frame limit")
	}
	n, err := c.dst.Write(buf, mode)
	c.remaining -= int64(n)
	return n, err
}

func (c *CountedWriter) Flush() error {
	if f, ok := c.dst.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
