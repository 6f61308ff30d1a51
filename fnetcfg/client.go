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
	"github.com/nabbar/fibernet/httpcore"
	"github.com/nabbar/fibernet/transport"
)

func (c *ClientConfig) maxPerKey() int64 {
	if c.MaxPerKey > 0 {
		return int64(c.MaxPerKey)
	}
	return 8
}

// BuildPool builds the transport.Pool this client borrows connections
// from. NetworkInterface and Proxy are accepted as configuration surface
// (per the enumerated client options) but have no effect yet: binding a
// pool dialer to a specific local interface and routing through an HTTP
// proxy both require a custom net.Dialer/DialContext the pool does not
// currently expose a hook for.
func (c *ClientConfig) BuildPool() (*transport.Pool, error) {
	var tlsCfg *transport.TLSConfig
	if c.TLS != nil {
		var err error
		if tlsCfg, err = c.TLS.Build(); err != nil {
			return nil, err
		}
	}
	if tlsCfg != nil {
		return transport.NewPool(c.maxPerKey(), tlsCfg.Client()), nil
	}
	return transport.NewPool(c.maxPerKey(), nil), nil
}

// BuildClient builds the httpcore.Client bound to pool, with MaxRedirects
// and (if CookieJarPath is set) a file-backed cookie jar wired in.
func (c *ClientConfig) BuildClient(pool *transport.Pool) (*httpcore.Client, error) {
	cl := httpcore.NewClient(pool)
	cl.MaxRedirects = c.MaxRedirects

	if c.CookieJarPath != "" {
		jar, err := httpcore.NewCookieJar(httpcore.CookieJarConfig{
			Path:         c.CookieJarPath,
			SymmetricWWW: c.CookieJarSymmetricWWW,
		})
		if err != nil {
			return nil, err
		}
		cl.Jar = jar
	}

	return cl, nil
}
