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

package stream

import (
	"github.com/nabbar/fibernet/fdur"
	"github.com/nabbar/fibernet/taskpipe"
)

// TaskPipeStream presents a taskpipe.Pipe as a Reader+Writer+Waiter+Closer,
// so one fiber's body can be written through the pipe while another fiber
// (possibly on a different thread) reads it as an ordinary stream - the
// adapter an internally-proxied request/response body or a WebSocket
// sub-protocol relay is built from.
type TaskPipeStream struct {
	p *taskpipe.Pipe
}

// NewTaskPipeStream wraps p.
func NewTaskPipeStream(p *taskpipe.Pipe) *TaskPipeStream { return &TaskPipeStream{p: p} }

func (t *TaskPipeStream) Read(buf []byte, mode Mode) (int, error) {
	return t.p.Read(buf, taskpipe.Mode(mode))
}

func (t *TaskPipeStream) Write(buf []byte, mode Mode) (int, error) {
	return t.p.Write(buf, taskpipe.Mode(mode))
}

func (t *TaskPipeStream) Peek() ([]byte, error) { return t.p.Peek(), nil }

func (t *TaskPipeStream) Close() error { return t.p.Close() }

func (t *TaskPipeStream) Empty() bool               { return t.p.Len() == 0 }
func (t *TaskPipeStream) LeastSize() int            { t.p.WaitForData(fdur.MaxDuration); return t.p.Len() }
func (t *TaskPipeStream) DataAvailableForRead() int { return t.p.Len() }
func (t *TaskPipeStream) WaitForData(d fdur.Duration) bool { return t.p.WaitForData(d) }
