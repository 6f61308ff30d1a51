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

	"github.com/nabbar/fibernet/fdur"
	"github.com/nabbar/fibernet/ferr"
)

// Buffered wraps any Reader, adding Peek and ReadUntil over a bounded
// internal buffer. It is the adapter the HTTP request parser reads the
// request line and headers through.
type Buffered struct {
	src  Reader
	wait Waiter
	buf  bytes.Buffer
	eof  bool
}

// NewBuffered wraps src (optionally also a Waiter, for WaitForData
// delegation) with a buffered front-end.
func NewBuffered(src Reader) *Buffered {
	b := &Buffered{src: src}
	b.wait, _ = src.(Waiter)
	return b
}

// fill reads at least one more chunk from src into the internal buffer,
// unless eof was already observed.
func (b *Buffered) fill(mode Mode) error {
	if b.eof {
		return nil
	}
	var chunk [4096]byte
	n, err := b.src.Read(chunk[:], mode)
	if n > 0 {
		b.buf.Write(chunk[:n])
	}
	if err != nil {
		b.eof = true
		return err
	}
	return nil
}

// Peek returns a borrowed view of the currently buffered bytes, reading
// more from src if the buffer is empty and not at eof.
func (b *Buffered) Peek() ([]byte, error) {
	if b.buf.Len() == 0 && !b.eof {
		if err := b.fill(ModeOnce); err != nil && b.buf.Len() == 0 {
			return nil, err
		}
	}
	return b.buf.Bytes(), nil
}

// Read drains the internal buffer first, then falls through to src.
func (b *Buffered) Read(buf []byte, mode Mode) (int, error) {
	if b.buf.Len() > 0 {
		return b.buf.Read(buf)
	}
	if b.eof {
		return 0, nil
	}
	return b.src.Read(buf, mode)
}

// ReadUntil reads (buffering as needed) until delim is found, returning the
// bytes up to and including delim. It fails with a ProtocolError-kind
// error if delim is not found within max bytes.
func (b *Buffered) ReadUntil(delim byte, max int) ([]byte, error) {
	for {
		if idx := bytes.IndexByte(b.buf.Bytes(), delim); idx >= 0 {
			out := make([]byte, idx+1)
			_, _ = b.buf.Read(out)
			return out, nil
		}
		if b.buf.Len() >= max {
			return nil, ferr.New(ferr.ProtocolError, "stream: delimiter not found within max bytes")
		}
		if b.eof {
			return nil, ferr.New(ferr.IOError, "stream: eof before delimiter")
		}
		if err := b.fill(ModeOnce); err != nil {
			if b.buf.Len() > 0 {
				continue
			}
			return nil, err
		}
	}
}

// WaitForData delegates to the wrapped source's Waiter when it implements
// one, reporting true immediately if bytes are already buffered.
func (b *Buffered) WaitForData(d fdur.Duration) bool {
	if b.buf.Len() > 0 {
		return true
	}
	if b.wait != nil {
		return b.wait.WaitForData(d)
	}
	return false
}

// Empty reports whether both the internal buffer and (if known) the
// upstream source are empty.
func (b *Buffered) Empty() bool {
	if b.buf.Len() > 0 {
		return false
	}
	if b.wait != nil {
		return b.wait.Empty()
	}
	return true
}

// DataAvailableForRead reports buffered bytes plus whatever the upstream
// source can report without blocking.
func (b *Buffered) DataAvailableForRead() int {
	n := b.buf.Len()
	if b.wait != nil {
		n += b.wait.DataAvailableForRead()
	}
	return n
}

// LeastSize blocks (via WaitForData) until at least one byte is available
// or eof, then reports how many are buffered.
func (b *Buffered) LeastSize() int {
	if b.buf.Len() > 0 {
		return b.buf.Len()
	}
	b.WaitForData(fdur.MaxDuration)
	return b.buf.Len()
}

// Close releases the buffer and propagates to src if it is a Closer.
func (b *Buffered) Close() error {
	b.buf.Reset()
	if c, ok := b.src.(Closer); ok {
		return c.Close()
	}
	return nil
}
