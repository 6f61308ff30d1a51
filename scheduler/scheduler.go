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
	"sync/atomic"

	"github.com/nabbar/fibernet/flog"
	"github.com/nabbar/fibernet/reactor"
)

// Scheduler owns one reactor and the set of fibers ("tasks") spawned onto
// it. Tasks never migrate between Schedulers; spawning on a worker pool
// picks a Scheduler, not a thread, but each Scheduler is expected to be
// driven by its own dedicated goroutine in typical use (one reactor per
// thread).
type Scheduler struct {
	reactor *reactor.Reactor
	log     flog.Logger
	mu      sync.Mutex
	tasks   map[uint64]*Task
	nextID  uint64
	wg      sync.WaitGroup
	closed  atomic.Bool
}

// New returns a Scheduler with its own Reactor.
func New(log flog.Logger) *Scheduler {
	if log == nil {
		log = flog.New(nil)
	}
	return &Scheduler{
		reactor: reactor.New(),
		log:     log,
		tasks:   make(map[uint64]*Task),
	}
}

// Reactor exposes the Scheduler's reactor for stream/transport layers that
// need to register their own interruptible waits on this thread.
func (s *Scheduler) Reactor() *reactor.Reactor { return s.reactor }

// Spawn schedules fn as a new fiber on this Scheduler and returns
// immediately with the Task handle; fn runs on a goroutine owned by this
// Scheduler.
func (s *Scheduler) Spawn(parent context.Context, fn Func) *Task {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	t := newTask(parent, s, id)
	s.tasks[id] = t
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		t.setState(StateRunning)
		err := runGuarded(fn, t.ctx)
		if err != nil {
			s.log.Entry(errLevel(err), "fiber terminated with error").
				FieldAdd("task", t.id).FieldAdd("trace", t.trace).ErrorAdd(false, err).Log()
		}
		t.finish(err)
	}()
	return t
}

func (s *Scheduler) forget(t *Task) {
	s.mu.Lock()
	delete(s.tasks, t.id)
	s.mu.Unlock()
}

// Count reports the number of fibers currently tracked (running or
// recently spawned) by this Scheduler.
func (s *Scheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Shutdown interrupts every tracked fiber and waits for them to terminate.
func (s *Scheduler) Shutdown() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.mu.Lock()
	tasks := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	s.mu.Unlock()

	for _, t := range tasks {
		t.Interrupt()
	}
	s.wg.Wait()
}

func runGuarded(fn Func, ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoverToError(r)
		}
	}()
	return fn(ctx)
}
