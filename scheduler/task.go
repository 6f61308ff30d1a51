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

// Package scheduler implements the cooperative fiber runtime: spawn, yield,
// sleep, join, interrupt and a per-fiber mailbox, layered over goroutines and
// a reactor. Lifecycle tracking (running/stopped, restart-replaces-previous)
// follows the shape of the teacher's runner/startStop package; fan-out and
// graceful shutdown of worker pools uses golang.org/x/sync/errgroup, and
// each fiber is tagged with a trace id from hashicorp/go-uuid for log
// correlation.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/hashicorp/go-uuid"

	"github.com/nabbar/fibernet/fdur"
	"github.com/nabbar/fibernet/ferr"
	"github.com/nabbar/fibernet/reactor"
)

// State is a Task's position in the created -> running -> waiting ->
// runnable -> terminated lifecycle.
type State int32

const (
	StateCreated State = iota
	StateRunning
	StateWaiting
	StateRunnable
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateWaiting:
		return "waiting"
	case StateRunnable:
		return "runnable"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Func is the body of a fiber.
type Func func(ctx context.Context) error

// Task is a fiber: a goroutine bound to a Scheduler, with a private
// reactor Handle for interruption and a mailbox for point-to-point
// messaging.
type Task struct {
	id      uint64
	trace   string
	sched   *Scheduler
	ctx     context.Context
	cancel  context.CancelFunc
	handle  reactor.Handle
	state   atomic.Int32
	errOnce chan struct{}
	err     error
	mbox    *Mailbox
}

func newTask(parent context.Context, sched *Scheduler, id uint64) *Task {
	ctx, cancel := context.WithCancel(parent)
	trace, _ := uuid.GenerateUUID()
	t := &Task{
		id:      id,
		trace:   trace,
		sched:   sched,
		ctx:     ctx,
		cancel:  cancel,
		handle:  sched.reactor.NewHandle(),
		errOnce: make(chan struct{}),
		mbox:    newMailbox(ctx),
	}
	t.state.Store(int32(StateCreated))
	return t
}

// ID is the task's monotonic identity, unique within its Scheduler.
func (t *Task) ID() uint64 { return t.id }

// Trace is the hashicorp/go-uuid tag used to correlate log lines for this
// fiber across its lifetime.
func (t *Task) Trace() string { return t.trace }

// State reports the task's current lifecycle position.
func (t *Task) State() State { return State(t.state.Load()) }

// Mailbox returns the task's inbound mailbox.
func (t *Task) Mailbox() *Mailbox { return t.mbox }

// Context is the cancellation context bound to this task: Interrupt
// cancels it, and every suspension point inside the task body should
// select on ctx.Done().
func (t *Task) Context() context.Context { return t.ctx }

// Interrupt marks the task for interruption: its next suspension point
// (sleep, mailbox receive, reactor wait) fails with an interruption error.
// Edge-triggered - calling it twice before the fiber observes it has no
// additional effect.
func (t *Task) Interrupt() {
	t.sched.reactor.Interrupt(t.handle)
	t.cancel()
}

// Sleep suspends the task for d, honoring interruption.
func (t *Task) Sleep(d fdur.Duration) error {
	t.setState(StateWaiting)
	defer t.setState(StateRunnable)

	res := t.sched.reactor.Sleep(t.handle, d)
	if res.Interrupted {
		return reactor.ErrInterrupted
	}
	return nil
}

// Join blocks until the task terminates, then re-raises its error if any.
func (t *Task) Join(ctx context.Context) error {
	select {
	case <-t.errOnce:
		return t.err
	case <-ctx.Done():
		return ferr.New(ferr.TimedOut, "scheduler: join wait cancelled")
	}
}

func (t *Task) setState(s State) { t.state.Store(int32(s)) }

func (t *Task) finish(err error) {
	t.err = err
	t.setState(StateTerminated)
	t.cancel()
	close(t.errOnce)
	t.sched.forget(t)
}

func (t *Task) String() string {
	return fmt.Sprintf("task#%d[%s]", t.id, t.State())
}
