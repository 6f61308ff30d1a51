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

// Package transport provides stream (TCP, UNIX) and packet (UDP, unixgram)
// listeners/connectors, each accepted connection handed to a handler on its
// own fiber, plus a keyed client connection pool. It is the layer HTTP
// servers and clients are built on top of.
package transport

import (
	"github.com/nabbar/fibernet/stream"
)

// Handler processes one stream connection. It owns conn for the lifetime
// of the call and must close it (directly or via conn.Close) before
// returning.
type Handler func(conn *stream.Conn)

// PacketHandler processes one received datagram. reply, if non-nil, sends
// a response datagram back to the sender; it may be called zero or more
// times.
type PacketHandler func(data []byte, reply func([]byte) error)
