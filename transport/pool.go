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
	"sync"

	"github.com/nabbar/fibernet/ferr"
	"github.com/nabbar/fibernet/stream"
	"github.com/nabbar/fibernet/syncx"
)

// Key identifies one pool partition: a distinct (network, address, TLS)
// triple gets its own idle-connection set and its own borrow limit.
type Key struct {
	Network string
	Address string
	TLS     bool
}

type slot struct {
	admit *syncx.Weighted
	idle  []*stream.Conn
}

// Pool is a keyed client connection pool: check-out hands out an idle
// connection if one passes a best-effort liveness probe, otherwise dials a
// new one, bounded by maxPerKey concurrent borrows for that key.
type Pool struct {
	mu        sync.Mutex
	slots     map[Key]*slot
	maxPerKey int64
	tlsCfg    *tls.Config
	dialer    net.Dialer
}

// NewPool returns a pool allowing at most maxPerKey concurrently borrowed
// connections per Key. tlsCfg is used for every Key with TLS set; pass nil
// if the pool never dials TLS.
func NewPool(maxPerKey int64, tlsCfg *tls.Config) *Pool {
	return &Pool{slots: make(map[Key]*slot), maxPerKey: maxPerKey, tlsCfg: tlsCfg}
}

func (p *Pool) slotFor(k Key) *slot {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.slots[k]
	if !ok {
		s = &slot{admit: syncx.NewWeighted(p.maxPerKey)}
		p.slots[k] = s
	}
	return s
}

// Borrow acquires the key's admission slot (blocking until one is free or
// ctx is done), then returns an idle connection that still looks writable,
// or dials a fresh one. reused reports which: a caller that hits a
// transient write/read error on a reused connection knows it may retry on
// a fresh one, where the same error on a freshly dialed connection is real.
func (p *Pool) Borrow(ctx context.Context, k Key) (conn *stream.Conn, reused bool, err error) {
	s := p.slotFor(k)
	if err = s.admit.Acquire(ctx, 1); err != nil {
		return nil, false, ferr.New(ferr.TimedOut, "transport: pool borrow", err)
	}

	p.mu.Lock()
	for len(s.idle) > 0 {
		c := s.idle[len(s.idle)-1]
		s.idle = s.idle[:len(s.idle)-1]
		p.mu.Unlock()
		if !c.ConnectionClosed() {
			return c, true, nil
		}
		p.mu.Lock()
	}
	p.mu.Unlock()

	raw, derr := p.dial(ctx, k)
	if derr != nil {
		s.admit.Release(1)
		return nil, false, derr
	}
	return stream.NewConn(raw), false, nil
}

func (p *Pool) dial(ctx context.Context, k Key) (net.Conn, error) {
	c, err := p.dialer.DialContext(ctx, k.Network, k.Address)
	if err != nil {
		return nil, ferr.New(ferr.IOError, "transport: dial", err)
	}
	if k.TLS {
		tc := tls.Client(c, p.tlsCfg)
		if err = tc.HandshakeContext(ctx); err != nil {
			_ = c.Close()
			return nil, ferr.New(ferr.TLSError, "transport: handshake", err)
		}
		return tc, nil
	}
	return c, nil
}

// Return releases the key's admission slot. A still-open conn is kept for
// reuse; a closed one is dropped.
func (p *Pool) Return(k Key, c *stream.Conn) {
	s := p.slotFor(k)
	if !c.ConnectionClosed() {
		p.mu.Lock()
		s.idle = append(s.idle, c)
		p.mu.Unlock()
	}
	s.admit.Release(1)
}

// KeyStats reports one Key partition's admission usage, for metrics export.
type KeyStats struct {
	Key    Key
	InUse  int64
	Idle   int
	Max    int64
}

// Stats snapshots every partition's admission usage.
func (p *Pool) Stats() []KeyStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]KeyStats, 0, len(p.slots))
	for k, s := range p.slots {
		out = append(out, KeyStats{Key: k, InUse: s.admit.InUse(), Idle: len(s.idle), Max: s.admit.Max()})
	}
	return out
}

// Close closes every idle connection across all keys.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var first error
	for _, s := range p.slots {
		for _, c := range s.idle {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
		s.idle = nil
	}
	return first
}
