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

//go:build !unix

package reactor

import (
	"net"

	"github.com/nabbar/fibernet/fdur"
)

// WaitReadable on non-unix targets falls back to a deadline-bounded
// zero-length Read; it cannot peek without consuming, so callers on these
// targets should prefer the buffered stream adapter's own readiness tracking.
func WaitReadable(conn net.Conn, timeout fdur.Duration) (bool, error) {
	return waitReadableFallback(conn, timeout)
}

func waitReadableFallback(conn net.Conn, timeout fdur.Duration) (bool, error) {
	if !timeout.IsMax() {
		_ = conn.SetReadDeadline(timeoutDeadline(timeout))
		defer conn.SetReadDeadline(noDeadline)
	}
	var b [0]byte
	_, err := conn.Read(b[:])
	if err != nil {
		if isTimeout(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
