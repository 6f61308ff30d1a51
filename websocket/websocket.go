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

// Package websocket implements the RFC 6455 upgrade handshake and frame
// codec directly over stream.Conn, with automatic ping/pong handling and
// fragment reassembly.
package websocket

import (
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/nabbar/fibernet/ferr"
	"github.com/nabbar/fibernet/headerutil"
	"github.com/nabbar/fibernet/httpcore"
	"github.com/nabbar/fibernet/stream"
)

const acceptGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// AcceptKey computes the Sec-WebSocket-Accept digest for a client's
// Sec-WebSocket-Key per RFC 6455 §1.3: base64 of SHA-1 of the key
// concatenated with the fixed handshake GUID.
func AcceptKey(clientKey string) string {
	h := sha1.Sum([]byte(clientKey + acceptGUID))
	return base64.StdEncoding.EncodeToString(h[:])
}

// Upgrade validates req as a WebSocket upgrade request, writes the 101
// response directly to conn, and returns a framed Conn bound to it.
// The caller's server dispatcher must treat the connection as consumed
// by Upgrade (no further HTTP framing follows) and stop its own
// read/response loop once Upgrade returns without error.
func Upgrade(req *httpcore.Request, conn *stream.Conn) (*Conn, error) {
	if !equalFoldContains(req.Header.Get(headerutil.Upgrade), "websocket") {
		return nil, httpStatusErr(400, "Bad Request: missing Upgrade: websocket")
	}
	if !equalFoldContains(req.Header.Get(headerutil.Connection), "upgrade") {
		return nil, httpStatusErr(400, "Bad Request: missing Connection: Upgrade")
	}
	if req.Header.Get(headerutil.SecWebSocketVersion) != "13" {
		return nil, httpStatusErr(426, "Upgrade Required: unsupported Sec-WebSocket-Version")
	}
	key := req.Header.Get(headerutil.SecWebSocketKey)
	if key == "" {
		return nil, httpStatusErr(400, "Bad Request: missing Sec-WebSocket-Key")
	}

	var b strings.Builder
	b.WriteString("HTTP/1.1 101 Switching Protocols\r\n")
	fmt.Fprintf(&b, "%s: websocket\r\n", headerutil.Upgrade)
	fmt.Fprintf(&b, "%s: Upgrade\r\n", headerutil.Connection)
	fmt.Fprintf(&b, "%s: %s\r\n", headerutil.SecWebSocketAccept, AcceptKey(key))
	b.WriteString("\r\n")

	if _, err := conn.Write([]byte(b.String()), stream.ModeAll); err != nil {
		return nil, ferr.New(ferr.IOError, "websocket: write handshake response", err)
	}

	return NewServerConn(conn), nil
}

func equalFoldContains(header, token string) bool {
	for _, f := range strings.Split(header, ",") {
		if strings.EqualFold(strings.TrimSpace(f), token) {
			return true
		}
	}
	return false
}

func httpStatusErr(status int, msg string) error {
	return ferr.New(ferr.CodeError(status), msg)
}
