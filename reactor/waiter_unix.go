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

//go:build unix

package reactor

import (
	"net"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/nabbar/fibernet/fdur"
)

// WaitReadable blocks (bounded by timeout) until conn has at least one byte
// available to read without consuming it, using a non-blocking MSG_PEEK
// probe driven by the runtime netpoller through SyscallConn - the same
// technique database drivers use to detect a dead connection without
// stealing application bytes.
func WaitReadable(conn net.Conn, timeout fdur.Duration) (ready bool, err error) {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		// Fall back to a deadline-bounded zero-length Read: not a true
		// peek, but every stdlib net.Conn supports at least this much.
		return waitReadableFallback(conn, timeout)
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return false, err
	}

	immediate := timeout <= 0
	if !timeout.IsMax() && !immediate {
		_ = conn.SetReadDeadline(timeoutDeadline(timeout))
		defer conn.SetReadDeadline(noDeadline)
	}

	var probe [1]byte
	var n int
	var perr error
	cerr := raw.Read(func(fd uintptr) bool {
		n, _, perr = unix.Recvfrom(int(fd), probe[:], unix.MSG_PEEK|unix.MSG_DONTWAIT)
		// false on EAGAIN parks the caller in the netpoller until the
		// socket turns readable or the read deadline passes.
		return immediate || (perr != unix.EAGAIN && perr != unix.EWOULDBLOCK)
	})
	if cerr != nil {
		if isTimeout(cerr) {
			return false, nil
		}
		return false, cerr
	}
	if perr == unix.EAGAIN || perr == unix.EWOULDBLOCK {
		return false, nil
	}
	if perr != nil {
		return false, perr
	}
	return n > 0, nil
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
