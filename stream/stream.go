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

// Package stream defines a capability-lattice byte-stream contract:
// readable, peekable, writable, flushable, finalizable, seekable,
// length-known, connection-close-aware. A concrete stream declares the
// subset of small interfaces it implements; wrappers only need to forward
// the capabilities their underlying stream actually has. Adapters in this
// package compose these capabilities over TCP/TLS connections, in-memory
// buffers, task pipes, and the chunked/gzip/deflate/counted codecs the
// HTTP engine needs.
package stream

import (
	"github.com/nabbar/fibernet/fdur"
)

// Mode selects blocking behavior for Read/Write, mirroring taskpipe.Mode.
type Mode uint8

const (
	// ModeAll fills buf completely (Read) or writes all of buf (Write),
	// or fails/returns short only at eof/close.
	ModeAll Mode = iota
	// ModeOnce performs a single underlying operation; partial results
	// are allowed (>=1 byte unless eof).
	ModeOnce
	// ModeImmediate never blocks: returns 0 if no data/room is available
	// right now.
	ModeImmediate
)

// Reader is a stream capable of reading.
type Reader interface {
	Read(buf []byte, mode Mode) (int, error)
}

// Peeker inspects already-buffered bytes without consuming them.
type Peeker interface {
	Peek() ([]byte, error)
}

// Writer is a stream capable of writing.
type Writer interface {
	Write(buf []byte, mode Mode) (int, error)
}

// Flusher commits buffered writes downstream.
type Flusher interface {
	Flush() error
}

// Finalizer signals end-of-stream to the downstream. Permitted once;
// calling it again is a no-op. Writers above a chunked adapter must call
// this to emit the terminating chunk.
type Finalizer interface {
	Finalize() error
}

// Seeker repositions a stream that knows its own length (files, in-memory
// buffers); not implemented by network streams.
type Seeker interface {
	Seek(offset int64, whence int) (int64, error)
}

// LengthKnower reports a stream's total byte length, when known in advance
// (Content-Length bodies, files, in-memory buffers).
type LengthKnower interface {
	Len() (size int64, known bool)
}

// Waiter exposes the readiness introspection every stream needs for the
// scheduler to suspend a fiber until bytes are available.
type Waiter interface {
	// Empty reports whether the stream currently has zero buffered bytes
	// (does not imply eof).
	Empty() bool
	// LeastSize is the minimum number of bytes known to be readable
	// without blocking longer than necessary; blocks until at least one
	// such byte is present or eof.
	LeastSize() int
	// DataAvailableForRead is the number of bytes immediately readable
	// without blocking at all.
	DataAvailableForRead() int
	// WaitForData blocks (bounded by timeout) until data is available or
	// eof, reporting which occurred first.
	WaitForData(timeout fdur.Duration) bool
}

// Closer releases the stream's resources; for a wrapper, Close propagates
// to the wrapped stream.
type Closer interface {
	Close() error
}

// ConnCloseAware reports whether the underlying connection (if any) has
// been closed by the remote peer, independent of this stream's own Close.
type ConnCloseAware interface {
	ConnectionClosed() bool
}
