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

package transport

import (
	"context"
	"crypto/tls"
	"net"
	"os"
	"sync/atomic"

	"github.com/nabbar/fibernet/ferr"
	"github.com/nabbar/fibernet/flog"
	"github.com/nabbar/fibernet/scheduler"
	"github.com/nabbar/fibernet/stream"
)

// StreamServer accepts connections on a stream-oriented transport (TCP or
// UNIX domain sockets) and hands each one to a Handler on its own fiber,
// spawned on the supplied Scheduler. One accept loop runs per Listen call;
// Close unblocks it.
type StreamServer struct {
	network string
	address string
	tlsCfg  *tls.Config
	handler Handler
	sched   *scheduler.Scheduler
	log     flog.Logger

	ln      net.Listener
	running atomic.Bool
	gone    atomic.Bool
	open    atomic.Int64
}

// NewStreamServer builds a server for network "tcp", "tcp4", "tcp6" or
// "unix". tlsCfg may be nil for a plaintext listener.
func NewStreamServer(network, address string, handler Handler, sched *scheduler.Scheduler, tlsCfg *tls.Config, log flog.Logger) *StreamServer {
	return &StreamServer{network: network, address: address, handler: handler, sched: sched, tlsCfg: tlsCfg, log: log}
}

// Listen binds and accepts until ctx is cancelled or Close is called.
func (s *StreamServer) Listen(ctx context.Context) error {
	ln, err := net.Listen(s.network, s.address)
	if err != nil {
		return ferr.New(ferr.IOError, "transport: listen", err)
	}
	if s.tlsCfg != nil {
		ln = tls.NewListener(ln, s.tlsCfg)
	}
	s.ln = ln
	s.running.Store(true)
	s.gone.Store(false)
	defer func() {
		s.running.Store(false)
		s.gone.Store(true)
	}()

	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()

	for {
		c, aerr := ln.Accept()
		if aerr != nil {
			if s.gone.Load() {
				return nil
			}
			return ferr.New(ferr.IOError, "transport: accept", aerr)
		}

		conn := stream.NewConn(c)
		s.open.Add(1)
		s.sched.Spawn(ctx, func(fctx context.Context) error {
			defer s.open.Add(-1)
			defer func() { _ = conn.Close() }()
			s.handler(conn)
			return nil
		})
	}
}

// Addr returns the bound local address, or nil before Listen succeeds.
func (s *StreamServer) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

func (s *StreamServer) IsRunning() bool      { return s.running.Load() }
func (s *StreamServer) IsGone() bool         { return s.gone.Load() }
func (s *StreamServer) OpenConnections() int64 { return s.open.Load() }

// Close stops accepting and unblocks Listen. Already-accepted connections
// finish running their fiber; it does not forcibly cut them off.
func (s *StreamServer) Close() error {
	s.gone.Store(true)
	if s.ln == nil {
		return nil
	}
	err := s.ln.Close()
	if s.network == "unix" {
		_ = os.Remove(s.address)
	}
	return err
}
