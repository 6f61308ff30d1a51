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
	"errors"
	"io"

	"github.com/nabbar/fibernet/fdur"
)

var (
	errInvalidWhence     = errors.New("stream: memory: invalid whence")
	errNegativePosition  = errors.New("stream: memory: negative position")
)

// Memory is an in-memory stream over a byte slice: readable, peekable,
// writable, seekable and length-known. Used for request/response bodies
// small enough to buffer entirely (multipart form fields, test fixtures,
// redirect bodies that must be replayed) and as the task-pipe stream's
// sibling for same-process producer/consumer wiring that doesn't need
// real blocking.
//
// Read and Write share the slice but track independent cursors (rpos,
// wpos) so a body can be written once, read to completion, Seek back to
// the start, and read again without disturbing what was written.
type Memory struct {
	data   []byte
	rpos   int64
	wpos   int64
	closed bool
}

// NewMemory returns an empty Memory stream, or one pre-seeded with initial.
func NewMemory(initial []byte) *Memory {
	m := &Memory{}
	if len(initial) > 0 {
		m.data = append(m.data, initial...)
		m.wpos = int64(len(m.data))
	}
	return m
}

func (m *Memory) Read(buf []byte, _ Mode) (int, error) {
	if m.closed {
		return 0, io.ErrClosedPipe
	}
	if m.rpos >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(buf, m.data[m.rpos:])
	m.rpos += int64(n)
	return n, nil
}

func (m *Memory) Peek() ([]byte, error) { return m.data[m.rpos:], nil }

func (m *Memory) Write(buf []byte, _ Mode) (int, error) {
	if m.closed {
		return 0, io.ErrClosedPipe
	}
	if m.wpos < int64(len(m.data)) {
		n := copy(m.data[m.wpos:], buf)
		m.wpos += int64(n)
		if n < len(buf) {
			m.data = append(m.data, buf[n:]...)
			m.wpos = int64(len(m.data))
		}
		return len(buf), nil
	}
	m.data = append(m.data, buf...)
	m.wpos = int64(len(m.data))
	return len(buf), nil
}

func (m *Memory) Flush() error    { return nil }
func (m *Memory) Finalize() error { return nil }

func (m *Memory) Close() error {
	m.closed = true
	m.data = nil
	m.rpos, m.wpos = 0, 0
	return nil
}

// Seek repositions the read cursor; whence follows io.Seek* semantics.
// The write cursor is independent and unaffected.
func (m *Memory) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = m.rpos
	case io.SeekEnd:
		base = int64(len(m.data))
	default:
		return 0, errInvalidWhence
	}
	pos := base + offset
	if pos < 0 {
		return 0, errNegativePosition
	}
	m.rpos = pos
	return pos, nil
}

func (m *Memory) Len() (int64, bool) { return int64(len(m.data)), true }

func (m *Memory) Empty() bool               { return m.rpos >= int64(len(m.data)) }
func (m *Memory) LeastSize() int            { return len(m.data) - int(m.rpos) }
func (m *Memory) DataAvailableForRead() int { return len(m.data) - int(m.rpos) }
func (m *Memory) WaitForData(fdur.Duration) bool {
	return m.rpos < int64(len(m.data))
}

// Bytes returns the full buffered content without consuming it.
func (m *Memory) Bytes() []byte { return m.data }
