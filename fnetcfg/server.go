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

package fnetcfg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nabbar/fibernet/httpcore"
	"github.com/nabbar/fibernet/transport"
)

// ListenAddr is one resolved (network, address) pair a ServerConfig
// expands to: one per entry in BindAddresses, each combined with Port
// unless the entry is already a UNIX socket path.
type ListenAddr struct {
	Network string
	Address string
}

// Listens expands BindAddresses x Port into the concrete addresses
// transport.NewStreamServer binds to. A bind address starting with "/" is
// a UNIX socket path and never gets a port appended; any other entry is
// combined with Port (0 meaning an ephemeral port, left to the listener).
func (c *ServerConfig) Listens() []ListenAddr {
	out := make([]ListenAddr, 0, len(c.BindAddresses))
	for _, addr := range c.BindAddresses {
		if strings.HasPrefix(addr, "/") {
			out = append(out, ListenAddr{Network: "unix", Address: addr})
			continue
		}
		out = append(out, ListenAddr{Network: "tcp", Address: fmt.Sprintf("%s:%s", addr, strconv.Itoa(int(c.Port)))})
	}
	return out
}

// DispatchConfig builds the httpcore.Config this server dispatches
// requests with. vhosts maps HostName (or "" for the default) to a
// pre-built *httpcore.Router; the caller assembles routers separately
// since routes are code, not data. reject and errPage are optional
// callbacks (either may be nil) wired onto the returned Config's Reject
// and ErrorPage fields.
func (c *ServerConfig) DispatchConfig(router *httpcore.Router, reject httpcore.RejectFunc, errPage httpcore.ErrorPageFunc) *httpcore.Config {
	vhosts := map[string]*httpcore.Router{c.HostName: router}
	return &httpcore.Config{
		VHosts:         vhosts,
		MaxHeaderBytes: c.MaxRequestHeaderSize,
		Reject:         reject,
		ErrorPage:      errPage,
	}
}

// BuildTLS builds the transport.TLSConfig for this server, or nil if TLS
// is not configured.
func (c *ServerConfig) BuildTLS() (*transport.TLSConfig, error) {
	if c.TLS == nil {
		return nil, nil
	}
	return c.TLS.Build()
}
