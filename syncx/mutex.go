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

// Package syncx collects the synchronization primitives shared by the
// scheduler, stream and transport layers: a recursive mutex (owner-aware,
// re-entrant from the same goroutine), a condition variable with a timeout,
// and a weighted admission semaphore built on golang.org/x/sync/semaphore.
package syncx

import (
	"sync"
	"sync/atomic"
)

// RecursiveMutex can be locked multiple times by the same goroutine without
// deadlocking; the final matching Unlock releases it for other goroutines.
// Ownership is tracked by goroutine id obtained from the runtime stack trace,
// matching the common Go idiom for reentrant locks (the stdlib deliberately
// omits one).
type RecursiveMutex struct {
	mu    sync.Mutex
	owner int64
	count int32
}

func (r *RecursiveMutex) Lock() {
	id := goroutineID()
	if atomic.LoadInt64(&r.owner) == id {
		r.count++
		return
	}
	r.mu.Lock()
	atomic.StoreInt64(&r.owner, id)
	r.count = 1
}

func (r *RecursiveMutex) Unlock() {
	if atomic.LoadInt64(&r.owner) != goroutineID() {
		panic("syncx: Unlock of unlocked or foreign RecursiveMutex")
	}
	r.count--
	if r.count == 0 {
		atomic.StoreInt64(&r.owner, 0)
		r.mu.Unlock()
	}
}

// TryLock attempts to acquire the mutex without blocking.
func (r *RecursiveMutex) TryLock() bool {
	id := goroutineID()
	if atomic.LoadInt64(&r.owner) == id {
		r.count++
		return true
	}
	if !r.mu.TryLock() {
		return false
	}
	atomic.StoreInt64(&r.owner, id)
	r.count = 1
	return true
}
