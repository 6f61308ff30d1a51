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
	"net"
	"os"
	"sync/atomic"

	"github.com/nabbar/fibernet/ferr"
	"github.com/nabbar/fibernet/flog"
	"github.com/nabbar/fibernet/scheduler"
)

// PacketServer reads datagrams off a connectionless transport (UDP or
// unixgram) and dispatches each one to a PacketHandler on its own fiber.
// There is no per-peer connection object; reply writes back to whichever
// address sent the datagram being handled.
type PacketServer struct {
	network string
	address string
	handler PacketHandler
	sched   *scheduler.Scheduler
	log     flog.Logger

	pc      net.PacketConn
	running atomic.Bool
	gone    atomic.Bool
	maxSize int
}

// NewPacketServer builds a server for network "udp", "udp4", "udp6" or
// "unixgram". maxSize bounds the datagram read buffer; 0 defaults to 64KiB.
func NewPacketServer(network, address string, handler PacketHandler, sched *scheduler.Scheduler, log flog.Logger, maxSize int) *PacketServer {
	if maxSize <= 0 {
		maxSize = 65536
	}
	return &PacketServer{network: network, address: address, handler: handler, sched: sched, log: log, maxSize: maxSize}
}

// Listen binds and reads until ctx is cancelled or Close is called.
func (s *PacketServer) Listen(ctx context.Context) error {
	pc, err := net.ListenPacket(s.network, s.address)
	if err != nil {
		return ferr.New(ferr.IOError, "transport: listen packet", err)
	}
	s.pc = pc
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
		buf := make([]byte, s.maxSize)
		n, addr, rerr := pc.ReadFrom(buf)
		if rerr != nil {
			if s.gone.Load() {
				return nil
			}
			return ferr.New(ferr.IOError, "transport: read packet", rerr)
		}
		data := buf[:n]
		from := addr

		s.sched.Spawn(ctx, func(fctx context.Context) error {
			s.handler(data, func(resp []byte) error {
				_, werr := pc.WriteTo(resp, from)
				return werr
			})
			return nil
		})
	}
}

func (s *PacketServer) Addr() net.Addr {
	if s.pc == nil {
		return nil
	}
	return s.pc.LocalAddr()
}

func (s *PacketServer) IsRunning() bool { return s.running.Load() }
func (s *PacketServer) IsGone() bool    { return s.gone.Load() }

func (s *PacketServer) Close() error {
	s.gone.Store(true)
	if s.pc == nil {
		return nil
	}
	err := s.pc.Close()
	if s.network == "unixgram" {
		_ = os.Remove(s.address)
	}
	return err
}
