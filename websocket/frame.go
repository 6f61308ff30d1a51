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
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/nabbar/fibernet/ferr"
	"github.com/nabbar/fibernet/stream"
)

// Opcode identifies a frame's payload interpretation per RFC 6455 §5.2.
type Opcode uint8

const (
	OpContinuation Opcode = 0x0
	OpText         Opcode = 0x1
	OpBinary       Opcode = 0x2
	OpClose        Opcode = 0x8
	OpPing         Opcode = 0x9
	OpPong         Opcode = 0xA
)

const maxControlPayload = 125

type frameHeader struct {
	fin        bool
	opcode     Opcode
	masked     bool
	payloadLen uint64
	maskKey    [4]byte
}

func readFrameHeader(r stream.Reader) (frameHeader, error) {
	var h frameHeader
	b := make([]byte, 2)
	if _, err := readFull(r, b); err != nil {
		return h, err
	}
	h.fin = b[0]&0x80 != 0
	if b[0]&0x70 != 0 {
		return h, ferr.New(ferr.ProtocolError, "websocket: reserved bits set")
	}
	h.opcode = Opcode(b[0] & 0x0F)
	h.masked = b[1]&0x80 != 0
	length := uint64(b[1] & 0x7F)

	switch length {
	case 126:
		ext := make([]byte, 2)
		if _, err := readFull(r, ext); err != nil {
			return h, err
		}
		length = uint64(binary.BigEndian.Uint16(ext))
	case 127:
		ext := make([]byte, 8)
		if _, err := readFull(r, ext); err != nil {
			return h, err
		}
		length = binary.BigEndian.Uint64(ext)
	}
	h.payloadLen = length

	if h.masked {
		mk := make([]byte, 4)
		if _, err := readFull(r, mk); err != nil {
			return h, err
		}
		copy(h.maskKey[:], mk)
	}

	if !h.fin && (h.opcode == OpClose || h.opcode == OpPing || h.opcode == OpPong) {
		return h, ferr.New(ferr.ProtocolError, "websocket: control frame must not be fragmented")
	}
	if (h.opcode == OpClose || h.opcode == OpPing || h.opcode == OpPong) && h.payloadLen > maxControlPayload {
		return h, ferr.New(ferr.ProtocolError, "websocket: control frame payload too large")
	}
	return h, nil
}

func readFramePayload(r stream.Reader, h frameHeader) ([]byte, error) {
	payload := make([]byte, h.payloadLen)
	if h.payloadLen > 0 {
		if _, err := readFull(r, payload); err != nil {
			return nil, err
		}
	}
	if h.masked {
		applyMask(payload, h.maskKey)
	}
	return payload, nil
}

func readFull(r stream.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:], stream.ModeAll)
		total += n
		if err != nil {
			if total == len(buf) {
				return total, nil
			}
			return total, ferr.New(ferr.IOError, "websocket: short frame read", err)
		}
		if n == 0 {
			return total, ferr.New(ferr.IOError, "websocket: connection closed mid-frame", io.ErrUnexpectedEOF)
		}
	}
	return total, nil
}

func applyMask(data []byte, key [4]byte) {
	for i := range data {
		data[i] ^= key[i%4]
	}
}

func writeFrame(w stream.Writer, masked bool, fin bool, opcode Opcode, payload []byte) error {
	var b []byte
	b0 := byte(opcode)
	if fin {
		b0 |= 0x80
	}
	b = append(b, b0)

	n := len(payload)
	switch {
	case n <= 125:
		b = append(b, maskBit(masked, byte(n)))
	case n <= 0xFFFF:
		b = append(b, maskBit(masked, 126))
		ext := make([]byte, 2)
		binary.BigEndian.PutUint16(ext, uint16(n))
		b = append(b, ext...)
	default:
		b = append(b, maskBit(masked, 127))
		ext := make([]byte, 8)
		binary.BigEndian.PutUint64(ext, uint64(n))
		b = append(b, ext...)
	}

	out := payload
	if masked {
		var key [4]byte
		if _, err := rand.Read(key[:]); err != nil {
			return ferr.New(ferr.IOError, "websocket: generate mask key", err)
		}
		b = append(b, key[:]...)
		out = make([]byte, n)
		copy(out, payload)
		applyMask(out, key)
	}
	b = append(b, out...)

	if _, err := w.Write(b, stream.ModeAll); err != nil {
		return ferr.New(ferr.IOError, "websocket: write frame", err)
	}
	return nil
}

func maskBit(masked bool, length byte) byte {
	if masked {
		return length | 0x80
	}
	return length
}
