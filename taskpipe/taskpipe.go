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

// Package taskpipe implements a bounded FIFO byte pipe usable across both
// goroutine and OS-thread boundaries, guarded by a mutex and condition
// variable rather than an unbuffered/buffered Go channel, so capacity can
// grow on demand and readers/writers can each observe how many bytes are
// currently buffered.
package taskpipe

import (
	"bytes"
	"io"
	"sync"

	"github.com/nabbar/fibernet/fdur"
	"github.com/nabbar/fibernet/ferr"
	"github.com/nabbar/fibernet/syncx"
)

// Mode selects blocking behavior for Read/Write.
type Mode uint8

const (
	// ModeAll blocks until the full buffer is read/written, or the pipe closes.
	ModeAll Mode = iota
	// ModeOnce performs a single underlying read/write, partial is allowed.
	ModeOnce
	// ModeImmediate never blocks: returns 0 immediately if nothing can proceed.
	ModeImmediate
)

// Pipe is a bounded FIFO. The zero value is not usable; construct with New.
type Pipe struct {
	mu       sync.Mutex
	notEmpty *syncx.Cond
	notFull  *syncx.Cond
	buf      bytes.Buffer
	cap      int
	growable bool
	closed   bool
}

// New creates a Pipe with the given capacity in bytes. If growWhenFull is
// true, Write expands capacity to admit a full write instead of blocking.
func New(capacity int, growWhenFull bool) *Pipe {
	p := &Pipe{cap: capacity, growable: growWhenFull}
	p.notEmpty = syncx.NewCond(&p.mu)
	p.notFull = syncx.NewCond(&p.mu)
	return p
}

// Len returns the number of bytes currently buffered.
func (p *Pipe) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buf.Len()
}

// Cap returns the current capacity (may exceed the constructed capacity if
// growable and a write forced an expansion).
func (p *Pipe) Cap() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cap
}

// Peek returns a borrowed view of the contiguous readable bytes, without
// consuming them. The slice is only valid until the next Read/Write/Close.
func (p *Pipe) Peek() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buf.Bytes()
}

// Close marks the pipe closed and wakes every blocked reader/writer. Further
// Reads drain remaining buffered bytes then report io.EOF; further Writes
// fail immediately.
func (p *Pipe) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()
	p.notEmpty.Broadcast()
	p.notFull.Broadcast()
	return nil
}

// WaitForData blocks (bounded by d) until at least one byte is buffered, the
// pipe closes, or the timeout elapses; it reports whether data is available.
func (p *Pipe) WaitForData(d fdur.Duration) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.buf.Len() == 0 && !p.closed {
		if !p.notEmpty.WaitTimeout(d) {
			return p.buf.Len() > 0
		}
	}
	return p.buf.Len() > 0
}

// Read copies buffered bytes into buf per mode, returning io.EOF once the
// pipe is closed and drained.
func (p *Pipe) Read(buf []byte, mode Mode) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.buf.Len() == 0 {
		if p.closed {
			return 0, io.EOF
		}
		if mode == ModeImmediate {
			return 0, nil
		}
		p.notEmpty.Wait()
	}

	n, _ := p.buf.Read(buf)
	p.notFull.Broadcast()

	if mode == ModeAll {
		for n < len(buf) {
			for p.buf.Len() == 0 {
				if p.closed {
					return n, nil
				}
				p.notEmpty.Wait()
			}
			m, _ := p.buf.Read(buf[n:])
			n += m
			p.notFull.Broadcast()
		}
	}
	return n, nil
}

// Write appends buf to the pipe per mode, blocking while full unless mode is
// ModeImmediate or the pipe was constructed with growWhenFull.
func (p *Pipe) Write(buf []byte, mode Mode) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, ferr.New(ferr.IOError, "taskpipe: write on closed pipe")
	}

	written := 0
	for written < len(buf) {
		free := p.cap - p.buf.Len()
		if free <= 0 {
			if p.growable {
				p.cap += len(buf) - written
				free = p.cap - p.buf.Len()
			} else if mode == ModeImmediate {
				return written, nil
			} else {
				p.notFull.Wait()
				if p.closed {
					return written, ferr.New(ferr.IOError, "taskpipe: write on closed pipe")
				}
				continue
			}
		}

		chunk := buf[written:]
		if len(chunk) > free {
			chunk = chunk[:free]
		}
		n, _ := p.buf.Write(chunk)
		written += n
		p.notEmpty.Broadcast()

		if mode == ModeOnce {
			return written, nil
		}
	}
	return written, nil
}
