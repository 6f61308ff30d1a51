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

package websocket

import (
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/nabbar/fibernet/fdur"
	"github.com/nabbar/fibernet/ferr"
	"github.com/nabbar/fibernet/stream"
)

// Conn is one framed WebSocket connection atop a stream.Conn. A server
// Conn (from Upgrade) writes unmasked frames and requires masked frames
// from its peer; a client Conn does the reverse, per RFC 6455 §5.1.
type Conn struct {
	raw      *stream.Conn
	isServer bool

	writeMu sync.Mutex
	closed  atomic.Bool
}

// NewClientConn wraps an already-upgraded client-side connection (the
// handshake's HTTP round trip is the caller's responsibility; this
// module only frames the data channel once negotiated).
func NewClientConn(raw *stream.Conn) *Conn {
	return &Conn{raw: raw, isServer: false}
}

// NewServerConn wraps a server-side connection whose handshake was
// already completed out of band (Upgrade is the usual path; this
// constructor serves callers that terminate the HTTP upgrade themselves,
// e.g. behind a reverse proxy).
func NewServerConn(raw *stream.Conn) *Conn {
	return &Conn{raw: raw, isServer: true}
}

func (c *Conn) sendsMasked() bool { return !c.isServer }

// Connected reports whether no close frame has been sent on this Conn and
// the underlying connection is still open.
func (c *Conn) Connected() bool {
	return !c.closed.Load() && !c.raw.ConnectionClosed()
}

// WaitForData reports whether a readable frame is likely available
// within d, without consuming it.
func (c *Conn) WaitForData(d fdur.Duration) bool { return c.raw.WaitForData(d) }

// SendText sends a single-frame text message.
func (c *Conn) SendText(s string) error { return c.send(OpText, []byte(s)) }

// SendBinary sends a single-frame binary message.
func (c *Conn) SendBinary(b []byte) error { return c.send(OpBinary, b) }

// SendPing sends a ping control frame; payload must be 125 bytes or less.
func (c *Conn) SendPing(payload []byte) error { return c.send(OpPing, payload) }

// SendPong sends a pong control frame, normally in response to a ping
// ReceiveText/ReceiveBinary already answered automatically; exposed for
// unsolicited pongs (RFC 6455 §5.5.3 permits them as a keepalive).
func (c *Conn) SendPong(payload []byte) error { return c.send(OpPong, payload) }

// SendClose sends a close frame carrying code and reason, then marks the
// connection closed for further sends. It does not itself close the
// underlying transport; the caller (or the peer's close frame) does.
func (c *Conn) SendClose(code uint16, reason string) error {
	payload := make([]byte, 2+len(reason))
	binary.BigEndian.PutUint16(payload, code)
	copy(payload[2:], reason)
	err := c.send(OpClose, payload)
	c.closed.Store(true)
	return err
}

func (c *Conn) send(op Opcode, payload []byte) error {
	if len(payload) > maxControlPayload && (op == OpClose || op == OpPing || op == OpPong) {
		return ferr.New(ferr.UsageError, "websocket: control payload exceeds 125 bytes")
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return writeFrame(c.raw, c.sendsMasked(), true, op, payload)
}

// ReceiveText blocks for the next complete text message, reassembling
// continuation frames and answering ping frames with an automatic pong
// along the way. A peer close frame is echoed and reported as an
// IOError-kind error carrying the peer's close reason.
func (c *Conn) ReceiveText() (string, error) {
	b, err := c.receiveMessage(OpText)
	return string(b), err
}

// ReceiveBinary is ReceiveText's binary-message counterpart.
func (c *Conn) ReceiveBinary() ([]byte, error) {
	return c.receiveMessage(OpBinary)
}

func (c *Conn) receiveMessage(want Opcode) ([]byte, error) {
	var assembled []byte
	first := true

	for {
		h, err := readFrameHeader(c.raw)
		if err != nil {
			return nil, err
		}
		if c.isServer && !h.masked {
			return nil, ferr.New(ferr.ProtocolError, "websocket: client frame not masked")
		}
		if !c.isServer && h.masked {
			return nil, ferr.New(ferr.ProtocolError, "websocket: server frame masked")
		}

		payload, err := readFramePayload(c.raw, h)
		if err != nil {
			return nil, err
		}

		switch h.opcode {
		case OpPing:
			if err = c.send(OpPong, payload); err != nil {
				return nil, err
			}
			continue
		case OpPong:
			continue
		case OpClose:
			code, reason := parseCloseFrame(payload)
			_ = c.SendClose(code, reason)
			return nil, ferrClosed(code, reason)
		case OpContinuation:
			if first {
				return nil, ferr.New(ferr.ProtocolError, "websocket: continuation without a preceding frame")
			}
		case OpText, OpBinary:
			if !first {
				return nil, ferr.New(ferr.ProtocolError, "websocket: new message before prior one finished")
			}
			if h.opcode != want {
				return nil, ferr.New(ferr.ProtocolError, "websocket: unexpected message type")
			}
		default:
			return nil, ferr.New(ferr.ProtocolError, "websocket: unknown opcode")
		}

		assembled = append(assembled, payload...)
		first = false
		if h.fin {
			return assembled, nil
		}
	}
}

func parseCloseFrame(payload []byte) (uint16, string) {
	if len(payload) < 2 {
		return 1005, ""
	}
	return binary.BigEndian.Uint16(payload), string(payload[2:])
}

func ferrClosed(code uint16, reason string) error {
	msg := "websocket: connection closed"
	if reason != "" {
		msg += ": " + reason
	}
	return ferr.New(ferr.IOError, msg)
}
