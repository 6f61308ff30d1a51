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

package httpcore

import (
	"bufio"
	"context"
	"net"
	"net/url"

	"github.com/nabbar/fibernet/headerutil"
	"github.com/nabbar/fibernet/stream"
	"github.com/nabbar/fibernet/transport"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("redirect handling", func() {
	base, _ := url.Parse("http://example.com/a")

	It("downgrades 303 to a bodiless GET", func() {
		prev := &ClientRequest{Method: "POST", URL: base, Header: headerutil.New(), Body: stream.NewMemory([]byte("x"))}
		resp := &ClientResponse{Status: 303, Header: headerutil.New()}
		resp.Header.Set(headerutil.Location, "/b")

		next, err := nextRequest(prev, resp, "/b")
		Expect(err).ToNot(HaveOccurred())
		Expect(next.Method).To(Equal("GET"))
		Expect(next.Body).To(BeNil())
		Expect(next.URL.Path).To(Equal("/b"))
	})

	It("preserves method and a re-readable body across a 307", func() {
		prev := &ClientRequest{Method: "PUT", URL: base, Header: headerutil.New(), Body: stream.NewMemory([]byte("x"))}
		resp := &ClientResponse{Status: 307, Header: headerutil.New()}

		next, err := nextRequest(prev, resp, "/b")
		Expect(err).ToNot(HaveOccurred())
		Expect(next.Method).To(Equal("PUT"))
		Expect(next.Body).ToNot(BeNil())
	})

	It("computes a tcp/tls pool key from the request URL", func() {
		u, _ := url.Parse("https://example.com/x")
		k := clientKey(u)
		Expect(k.Network).To(Equal("tcp"))
		Expect(k.TLS).To(BeTrue())
		Expect(k.Address).To(Equal("example.com:443"))
	})
})

var _ = Describe("idempotent retry", func() {
	It("retries a GET on a fresh connection when the reused one died idle", func() {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = ln.Close() }()

		go func() {
			for i := 0; i < 2; i++ {
				conn, aerr := ln.Accept()
				if aerr != nil {
					return
				}
				readRequestHead(conn)
				_, _ = conn.Write([]byte("HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n"))
				if i == 0 {
					// The first connection dies right after answering, as
					// if it had been idle-closed by the peer, while the
					// client still believes it can be reused.
					_ = conn.Close()
				} else {
					defer func() { _ = conn.Close() }()
				}
			}
		}()

		pool := transport.NewPool(4, nil)
		client := NewClient(pool)

		u, _ := url.Parse("http://" + ln.Addr().String() + "/x")

		resp1, err := client.Do(context.Background(), &ClientRequest{Method: "GET", URL: u, Header: headerutil.New()})
		Expect(err).ToNot(HaveOccurred())
		Expect(resp1.Status).To(Equal(200))

		resp2, err := client.Do(context.Background(), &ClientRequest{Method: "GET", URL: u, Header: headerutil.New()})
		Expect(err).ToNot(HaveOccurred())
		Expect(resp2.Status).To(Equal(200))
	})
})

func readRequestHead(conn net.Conn) {
	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil || line == "\r\n" || line == "\n" {
			return
		}
	}
}
