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
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/nabbar/fibernet/fdur"
)

// Weighted is an admission-control semaphore used by worker pools and
// connection pools to bound concurrency (max_per_key, worker-thread count).
type Weighted struct {
	sem    *semaphore.Weighted
	max    int64
	inUse  atomic.Int64
}

// NewWeighted returns a Weighted semaphore admitting up to max concurrent
// holders.
func NewWeighted(max int64) *Weighted {
	return &Weighted{sem: semaphore.NewWeighted(max), max: max}
}

// Max returns the configured capacity.
func (w *Weighted) Max() int64 { return w.max }

// InUse returns the number of units currently held, for metrics export.
func (w *Weighted) InUse() int64 { return w.inUse.Load() }

// Acquire blocks (honoring ctx cancellation) until n units are available.
func (w *Weighted) Acquire(ctx context.Context, n int64) error {
	if err := w.sem.Acquire(ctx, n); err != nil {
		return err
	}
	w.inUse.Add(n)
	return nil
}

// TryAcquire acquires n units without blocking, reporting success.
func (w *Weighted) TryAcquire(n int64) bool {
	if w.sem.TryAcquire(n) {
		w.inUse.Add(n)
		return true
	}
	return false
}

// AcquireTimeout acquires n units, bounded by d.
func (w *Weighted) AcquireTimeout(n int64, d fdur.Duration) error {
	if d.IsMax() {
		return w.Acquire(context.Background(), n)
	}
	ctx, cancel := context.WithTimeout(context.Background(), d.Time())
	defer cancel()
	return w.Acquire(ctx, n)
}

// Release returns n units to the semaphore.
func (w *Weighted) Release(n int64) {
	w.inUse.Add(-n)
	w.sem.Release(n)
}

// MaxSimultaneous returns a sane default pool size derived from GOMAXPROCS,
// used as the fallback worker-thread count when a pool size is not
// explicitly configured.
func MaxSimultaneous() int {
	if n := runtime.GOMAXPROCS(0); n > 0 {
		return n
	}
	return 1
}
