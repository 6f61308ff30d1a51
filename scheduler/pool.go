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
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/nabbar/fibernet/flog"
	"github.com/nabbar/fibernet/syncx"
)

// Pool is a fixed set of Schedulers, each with its own reactor and fiber
// set, used for spawn_worker load balancing (round-robin) and for bounding
// total fiber concurrency via a Weighted admission semaphore.
type Pool struct {
	workers []*Scheduler
	next    atomic.Uint64
	admit   *syncx.Weighted
	grp     *errgroup.Group
	grpCtx  context.Context
}

// NewPool creates size Schedulers and an admission semaphore bounding
// concurrently-running worker fibers at maxConcurrent (0 disables the
// bound). size defaults to syncx.MaxSimultaneous() when <= 0.
func NewPool(ctx context.Context, log flog.Logger, size int, maxConcurrent int64) *Pool {
	if size <= 0 {
		size = syncx.MaxSimultaneous()
	}
	g, gctx := errgroup.WithContext(ctx)
	p := &Pool{
		workers: make([]*Scheduler, size),
		grp:     g,
		grpCtx:  gctx,
	}
	if maxConcurrent > 0 {
		p.admit = syncx.NewWeighted(maxConcurrent)
	}
	for i := range p.workers {
		p.workers[i] = New(log)
	}
	return p
}

// Size returns the number of Schedulers in the pool.
func (p *Pool) Size() int { return len(p.workers) }

// SpawnWorker schedules fn on an unspecified worker Scheduler (round-robin),
// honoring the pool's admission semaphore if configured. Its error is also
// fed into the pool's errgroup so Wait can observe the first worker fiber
// failure across the whole pool.
func (p *Pool) SpawnWorker(parent context.Context, fn Func) *Task {
	idx := int(p.next.Add(1)-1) % len(p.workers)
	sched := p.workers[idx]

	done := make(chan error, 1)
	wrapped := func(ctx context.Context) error {
		var err error
		if p.admit != nil {
			if err = p.admit.Acquire(ctx, 1); err != nil {
				done <- err
				return err
			}
			defer p.admit.Release(1)
		}
		err = fn(ctx)
		done <- err
		return err
	}
	t := sched.Spawn(parent, wrapped)
	p.grp.Go(func() error { return <-done })
	return t
}

// Wait blocks until every SpawnWorker fiber started so far has terminated,
// returning the first non-nil error (if any), mirroring errgroup.Group's
// fail-fast context cancellation for the rest of the pool.
func (p *Pool) Wait() error { return p.grp.Wait() }

// Context is cancelled once any SpawnWorker fiber returns a non-nil error.
func (p *Pool) Context() context.Context { return p.grpCtx }

// Shutdown interrupts every worker Scheduler's fibers and waits for them.
func (p *Pool) Shutdown() {
	for _, w := range p.workers {
		w.Shutdown()
	}
}

// FiberCount sums the runnable/blocked fiber count across every worker
// Scheduler, for metrics export.
func (p *Pool) FiberCount() int {
	n := 0
	for _, w := range p.workers {
		n += w.Count()
	}
	return n
}

// AdmitInUse returns the number of admission units currently held by
// in-flight SpawnWorker calls, or 0 if the pool has no admission bound.
func (p *Pool) AdmitInUse() int64 {
	if p.admit == nil {
		return 0
	}
	return p.admit.InUse()
}

// AdmitMax returns the pool's admission bound, or 0 if unbounded.
func (p *Pool) AdmitMax() int64 {
	if p.admit == nil {
		return 0
	}
	return p.admit.Max()
}
