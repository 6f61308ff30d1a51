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

// Package fctx provides a generic, typed key/value store layered on top of
// context.Context: instead of hidden task-local storage, fibers and HTTP
// requests each carry an explicit Store[T] that is passed into handlers.
package fctx

import (
	"context"
	"sync"
)

// FuncWalk is called for each stored key/value; return false to stop the walk.
type FuncWalk[T comparable] func(key T, val any) bool

// Store is a thread-safe typed attribute map bound to a context.Context.
// It backs both fiber-local attributes (scheduler) and HTTP request/response
// attributes (httpcore): peer address, TLS info, parsed form, parsed JSON,
// uploaded files, mailbox envelopes.
type Store[T comparable] interface {
	context.Context

	Load(key T) (val any, ok bool)
	Store(key T, val any)
	Delete(key T)
	LoadOrStore(key T, val any) (actual any, loaded bool)
	Walk(fct FuncWalk[T]) bool
	Clone(ctx context.Context) Store[T]
}

type store[T comparable] struct {
	context.Context
	mu sync.RWMutex
	m  map[T]any
}

// New creates a Store bound to ctx. If ctx is nil, context.Background is used.
func New[T comparable](ctx context.Context) Store[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	return &store[T]{Context: ctx, m: make(map[T]any)}
}

func (s *store[T]) Load(key T) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *store[T]) Store(key T, val any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = val
}

func (s *store[T]) Delete(key T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}

func (s *store[T]) LoadOrStore(key T, val any) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.m[key]; ok {
		return v, true
	}
	s.m[key] = val
	return val, false
}

func (s *store[T]) Walk(fct FuncWalk[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k, v := range s.m {
		if !fct(k, v) {
			return false
		}
	}
	return true
}

func (s *store[T]) Clone(ctx context.Context) Store[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := New[T](ctx).(*store[T])
	for k, v := range s.m {
		n.m[k] = v
	}
	return n
}
