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

// Package reactor converts OS readiness notifications into wake-ups.
// Rather than reimplementing an epoll/kqueue loop, it rides on Go's runtime
// netpoller: readiness waits are expressed as net.Conn deadlines plus a
// non-consuming MSG_PEEK probe (see waiter_unix.go), and timers are plain
// time.Timer instances. Process signals are delivered through os/signal,
// with the signal set built via golang.org/x/sys/unix numeric constants so
// callers can name signals the same way across the one Linux/Darwin/BSD
// target this module runs on.
package reactor

import (
	"os"
	"sync"
	"time"

	"github.com/nabbar/fibernet/fdur"
	"github.com/nabbar/fibernet/ferr"
)

// EventSet is a bitmask over the readiness events a Handle may wait for.
type EventSet uint8

const (
	EventRead EventSet = 1 << iota
	EventWrite
	EventError
)

func (e EventSet) Has(o EventSet) bool { return e&o != 0 }

// WaitResult reports why Wait returned.
type WaitResult struct {
	Ready       EventSet
	TimedOut    bool
	Interrupted bool
}

// Handle is an opaque association between a waiter and an OS-level
// readiness source. One Handle wakes at most one fiber per Reactor
// iteration.
type Handle struct {
	id uint64
}

// Reactor multiplexes readiness waits and timers for the fibers running on
// one thread. A Reactor is not safe to Wait on concurrently from two
// goroutines for the *same* Handle, but distinct Handles may be waited on
// concurrently.
type Reactor struct {
	mu      sync.Mutex
	nextID  uint64
	interr  map[uint64]chan struct{}
	closed  bool
	wakeCh  chan uint64
}

// New returns a ready-to-use Reactor.
func New() *Reactor {
	return &Reactor{
		interr: make(map[uint64]chan struct{}),
		wakeCh: make(chan uint64, 64),
	}
}

// register allocates a Handle and the interruption channel backing it.
func (r *Reactor) register() Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	r.interr[id] = make(chan struct{}, 1)
	return Handle{id: id}
}

// Interrupt marks h's waiter for interruption: its next Wait call fails with
// an interruption result instead of blocking. Edge-triggered - the flag is
// consumed by the first Wait that observes it.
func (r *Reactor) Interrupt(h Handle) {
	r.mu.Lock()
	ch, ok := r.interr[h.id]
	r.mu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Cancel releases the resources backing h. Safe to call more than once.
func (r *Reactor) Cancel(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.interr, h.id)
}

// HandleCount returns the number of currently registered handles, for
// metrics export.
func (r *Reactor) HandleCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.interr)
}

func (r *Reactor) interruptChan(h Handle) chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interr[h.id]
}

// Timer registers a new Handle and starts a timer that fires at deadline,
// returning both. Callers may Stop the timer early; Cancel releases the
// Handle but does not stop the timer.
func (r *Reactor) Timer(deadline time.Time) (Handle, *time.Timer) {
	h := r.register()
	t := time.NewTimer(time.Until(deadline))
	return h, t
}

// WaitTimer blocks until t fires, the reactor Handle h is interrupted, or
// the bound context (via Interrupt) cancels it.
func (r *Reactor) WaitTimer(h Handle, t *time.Timer) WaitResult {
	ic := r.interruptChan(h)
	select {
	case <-t.C:
		return WaitResult{TimedOut: true}
	case <-ic:
		t.Stop()
		return WaitResult{Interrupted: true}
	}
}

// Sleep suspends the caller for d, honoring interruption of h.
func (r *Reactor) Sleep(h Handle, d fdur.Duration) WaitResult {
	if d.IsMax() {
		ic := r.interruptChan(h)
		<-ic
		return WaitResult{Interrupted: true}
	}
	hh, t := r.Timer(time.Now().Add(d.Time()))
	defer r.Cancel(hh)
	return r.WaitTimer(h, t)
}

// NewHandle exposes register for callers (stream/transport waiters) that
// need an interruptible Handle without an attached timer.
func (r *Reactor) NewHandle() Handle { return r.register() }

// Signals subscribes to OS signals and returns a channel delivering them;
// callers are expected to select on it alongside their own Handles. Stop
// must be called to release the os/signal subscription.
func (r *Reactor) Signals(sig ...os.Signal) (ch <-chan os.Signal, stop func()) {
	c := make(chan os.Signal, 1)
	notify(c, sig...)
	return c, func() { stopNotify(c) }
}

// ErrInterrupted is returned by higher layers translating a WaitResult with
// Interrupted=true into an error-returning API.
var ErrInterrupted = ferr.New(ferr.Interrupted, "reactor: wait interrupted")
