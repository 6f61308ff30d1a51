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

package syncx

import (
	"context"
	"sync"
	"time"

	"github.com/nabbar/fibernet/fdur"
)

// Cond is a condition variable with a timed Wait, used wherever a suspension
// point needs to block on an arbitrary predicate (task pipe readability,
// pool slot availability) rather than a single semaphore count.
type Cond struct {
	L  sync.Locker
	ch chan struct{}
	mu sync.Mutex
}

// NewCond returns a Cond whose Wait/WaitTimeout unlock/relock l.
func NewCond(l sync.Locker) *Cond {
	return &Cond{L: l, ch: make(chan struct{})}
}

// Wait unlocks L, blocks until Signal/Broadcast, then relocks L.
func (c *Cond) Wait() {
	ch := c.currentChan()
	c.L.Unlock()
	<-ch
	c.L.Lock()
}

// WaitTimeout is Wait bounded by d (fdur.MaxDuration means unbounded); it
// reports whether it woke due to Signal/Broadcast (true) or timed out (false).
func (c *Cond) WaitTimeout(d fdur.Duration) bool {
	ch := c.currentChan()
	c.L.Unlock()
	defer c.L.Lock()

	if d.IsMax() {
		<-ch
		return true
	}

	t := time.NewTimer(d.Time())
	defer t.Stop()

	select {
	case <-ch:
		return true
	case <-t.C:
		return false
	}
}

// WaitTimeoutCtx is WaitTimeout, additionally waking when ctx is done so a
// suspension point can observe external cancellation (e.g. a task
// interrupt) while blocked. Reports true only when woken by
// Signal/Broadcast; both a timeout and a done ctx report false, so the
// caller distinguishes them via ctx.Err() if it needs to.
func (c *Cond) WaitTimeoutCtx(ctx context.Context, d fdur.Duration) bool {
	ch := c.currentChan()
	c.L.Unlock()
	defer c.L.Lock()

	if d.IsMax() {
		select {
		case <-ch:
			return true
		case <-ctx.Done():
			return false
		}
	}

	t := time.NewTimer(d.Time())
	defer t.Stop()

	select {
	case <-ch:
		return true
	case <-t.C:
		return false
	case <-ctx.Done():
		return false
	}
}

// Signal wakes every current waiter, exactly as Broadcast does.
func (c *Cond) Signal() { c.Broadcast() }

// Broadcast wakes every goroutine currently blocked in Wait/WaitTimeout.
func (c *Cond) Broadcast() {
	c.mu.Lock()
	old := c.ch
	c.ch = make(chan struct{})
	c.mu.Unlock()
	close(old)
}

func (c *Cond) currentChan() chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ch
}
