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

package scheduler

import (
	"context"
	"sync"

	"github.com/nabbar/fibernet/fdur"
	"github.com/nabbar/fibernet/syncx"
)

// Matcher reports whether it wants to handle msg. Receive dispatches on the
// first envelope (scanning from the mailbox head) for which some supplied
// Matcher returns true.
type Matcher func(msg any) bool

// Mailbox is a per-task ordered sequence of heterogeneous envelopes backing
// inter-task messaging: Send appends, Receive scans from the head and
// removes the first envelope any supplied Matcher accepts. Receive also
// wakes on the owning task's ctx so Task.Interrupt can pull a fiber back
// out of a blocked receive, matching every other suspension point.
type Mailbox struct {
	mu    sync.Mutex
	cond  *syncx.Cond
	queue []any
	ctx   context.Context
}

func newMailbox(ctx context.Context) *Mailbox {
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Mailbox{ctx: ctx}
	m.cond = syncx.NewCond(&m.mu)
	return m
}

// Send appends msg to the tail of the mailbox and wakes any blocked Receive.
func (m *Mailbox) Send(msg any) {
	m.mu.Lock()
	m.queue = append(m.queue, msg)
	m.mu.Unlock()
	m.cond.Broadcast()
}

// Len reports how many envelopes are currently queued.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Receive blocks (bounded by timeout) until an envelope matching one of the
// given matchers is available, then removes and returns it. With no
// matchers, any envelope at the head matches. It also returns (nil, false)
// if the owning task is interrupted while blocked.
func (m *Mailbox) Receive(timeout fdur.Duration, matchers ...Matcher) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for {
		if idx, ok := m.firstMatch(matchers); ok {
			msg := m.queue[idx]
			m.queue = append(m.queue[:idx], m.queue[idx+1:]...)
			return msg, true
		}
		if !m.cond.WaitTimeoutCtx(m.ctx, timeout) {
			return nil, false
		}
	}
}

func (m *Mailbox) firstMatch(matchers []Matcher) (int, bool) {
	if len(matchers) == 0 {
		if len(m.queue) > 0 {
			return 0, true
		}
		return 0, false
	}
	for i, msg := range m.queue {
		for _, match := range matchers {
			if match(msg) {
				return i, true
			}
		}
	}
	return 0, false
}
