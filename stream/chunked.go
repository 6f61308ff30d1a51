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
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/nabbar/fibernet/ferr"
)

// ChunkedReader converts HTTP/1 chunk-framed bytes read from src into a
// plain readable stream, terminating on the zero-length chunk. Trailer
// headers (if any) are read and discarded before Read returns io.EOF;
// they are not surfaced to the caller.
type ChunkedReader struct {
	src       *Buffered
	remaining int64
	done      bool
}

// NewChunkedReader wraps a Buffered source positioned at the start of the
// first chunk size line.
func NewChunkedReader(src *Buffered) *ChunkedReader {
	return &ChunkedReader{src: src}
}

func (c *ChunkedReader) Read(buf []byte, mode Mode) (int, error) {
	if c.done {
		return 0, io.EOF
	}
	if c.remaining == 0 {
		if err := c.nextChunkSize(); err != nil {
			return 0, err
		}
		if c.done {
			return 0, io.EOF
		}
	}
	if int64(len(buf)) > c.remaining {
		buf = buf[:c.remaining]
	}
	n, err := c.src.Read(buf, mode)
	c.remaining -= int64(n)
	if c.remaining == 0 {
		// consume the trailing CRLF after the chunk data
		if _, terr := c.src.ReadUntil('\n', 2); terr != nil {
			return n, terr
		}
	}
	return n, err
}

func (c *ChunkedReader) nextChunkSize() error {
	line, err := c.src.ReadUntil('\n', 64)
	if err != nil {
		return err
	}
	line = bytes.TrimRight(line, "\r\n")
	if semi := bytes.IndexByte(line, ';'); semi >= 0 {
		line = line[:semi]
	}
	size, err := strconv.ParseInt(string(line), 16, 64)
	if err != nil {
		return ferr.New(ferr.ProtocolError, fmt.Sprintf("stream: invalid chunk size %q", line), err)
	}
	if size == 0 {
		c.done = true
		// consume trailer section up to the final blank line
		for {
			trailer, terr := c.src.ReadUntil('\n', 8192)
			if terr != nil {
				return terr
			}
			if len(bytes.TrimRight(trailer, "\r\n")) == 0 {
				break
			}
		}
		return nil
	}
	c.remaining = size
	return nil
}

// ChunkedWriter batches writes into HTTP/1 chunks, emitting the
// terminating zero-chunk on Finalize.
type ChunkedWriter struct {
	dst       Writer
	finalized bool
}

// NewChunkedWriter wraps dst, which receives the chunk-framed bytes.
func NewChunkedWriter(dst Writer) *ChunkedWriter {
	return &ChunkedWriter{dst: dst}
}

func (c *ChunkedWriter) Write(buf []byte, mode Mode) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	header := []byte(strconv.FormatInt(int64(len(buf)), 16) + "\r\n")
	if _, err := c.dst.Write(header, ModeAll); err != nil {
		return 0, err
	}
	n, err := c.dst.Write(buf, ModeAll)
	if err != nil {
		return n, err
	}
	if _, err := c.dst.Write([]byte("\r\n"), ModeAll); err != nil {
		return n, err
	}
	return n, nil
}

// Finalize emits the terminating zero-chunk and an empty trailer section.
// Idempotent once already finalized.
func (c *ChunkedWriter) Finalize() error {
	if c.finalized {
		return nil
	}
	c.finalized = true
	_, err := c.dst.Write([]byte("0\r\n\r\n"), ModeAll)
	return err
}

func (c *ChunkedWriter) Flush() error {
	if f, ok := c.dst.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
