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
	"net"
	"sync/atomic"

	"github.com/nabbar/fibernet/fdur"
	"github.com/nabbar/fibernet/reactor"
)

// Conn wraps a net.Conn as a full-duplex Reader+Writer+Waiter+Closer,
// reporting readiness via reactor.WaitReadable rather than a real fd
// registration table. This is the base every buffered/chunked/gzip/TLS
// adapter composes over for TCP, UNIX and TLS connections.
type Conn struct {
	c      net.Conn
	closed atomic.Bool
}

// NewConn wraps c.
func NewConn(c net.Conn) *Conn { return &Conn{c: c} }

// Raw returns the underlying net.Conn, e.g. for TLS handshake access or
// local/remote address metadata.
func (s *Conn) Raw() net.Conn { return s.c }

func (s *Conn) Read(buf []byte, mode Mode) (int, error) {
	if mode == ModeImmediate {
		if ready, err := reactor.WaitReadable(s.c, 0); err != nil {
			return 0, err
		} else if !ready {
			return 0, nil
		}
	}
	n, err := s.c.Read(buf)
	if err == io.EOF {
		s.closed.Store(true)
	}
	return n, err
}

func (s *Conn) Write(buf []byte, _ Mode) (int, error) {
	return s.c.Write(buf)
}

func (s *Conn) Flush() error { return nil }

func (s *Conn) Close() error {
	s.closed.Store(true)
	return s.c.Close()
}

func (s *Conn) ConnectionClosed() bool { return s.closed.Load() }

func (s *Conn) Empty() bool { return s.DataAvailableForRead() == 0 }

// LeastSize blocks until the connection is readable or eof, then returns 1
// (a raw socket cannot report an exact buffered count without consuming).
func (s *Conn) LeastSize() int {
	if s.WaitForData(fdur.MaxDuration) {
		return 1
	}
	return 0
}

// DataAvailableForRead reports 1 if an immediate (non-blocking) readiness
// probe finds data, 0 otherwise.
func (s *Conn) DataAvailableForRead() int {
	ready, err := reactor.WaitReadable(s.c, 0)
	if err != nil || !ready {
		return 0
	}
	return 1
}

func (s *Conn) WaitForData(d fdur.Duration) bool {
	ready, err := reactor.WaitReadable(s.c, d)
	return err == nil && ready
}
