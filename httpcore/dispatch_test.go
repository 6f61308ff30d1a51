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

package httpcore_test

import (
	"bufio"
	"io"
	"net"
	"strings"

	"github.com/nabbar/fibernet/httpcore"
	"github.com/nabbar/fibernet/stream"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Dispatch", func() {
	It("routes a request end to end and closes on Connection: close", func() {
		serverSide, clientSide := net.Pipe()

		rt := httpcore.NewRouter()
		rt.Handle("GET", "/hello", func(w *httpcore.ResponseWriter, r *httpcore.Request) {
			w.Header.Set("Content-Length", "5")
			_, _ = w.Write([]byte("howdy"))
		})
		cfg := &httpcore.Config{VHosts: map[string]*httpcore.Router{"": rt}}

		done := make(chan struct{})
		go func() {
			httpcore.Dispatch(cfg, stream.NewConn(serverSide))
			close(done)
		}()

		_, err := clientSide.Write([]byte("GET /hello HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n"))
		Expect(err).ToNot(HaveOccurred())

		r := bufio.NewReader(clientSide)
		status, err := r.ReadString('\n')
		Expect(err).ToNot(HaveOccurred())
		Expect(status).To(ContainSubstring("200"))

		var body string
		for {
			line, rerr := r.ReadString('\n')
			if strings.TrimRight(line, "\r\n") == "" {
				break
			}
			if rerr != nil {
				break
			}
		}
		buf := make([]byte, 5)
		_, _ = r.Read(buf)
		body = string(buf)
		Expect(body).To(Equal("howdy"))

		Eventually(done).Should(BeClosed())
	})

	It("derives Content-Length from the buffered body when the handler sets none", func() {
		serverSide, clientSide := net.Pipe()

		rt := httpcore.NewRouter()
		rt.Handle("GET", "/", func(w *httpcore.ResponseWriter, r *httpcore.Request) {
			w.Header.Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("Hello"))
		})
		cfg := &httpcore.Config{VHosts: map[string]*httpcore.Router{"": rt}}

		done := make(chan struct{})
		go func() {
			httpcore.Dispatch(cfg, stream.NewConn(serverSide))
			close(done)
		}()

		_, err := clientSide.Write([]byte("GET / HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n"))
		Expect(err).ToNot(HaveOccurred())

		r := bufio.NewReader(clientSide)
		status, err := r.ReadString('\n')
		Expect(err).ToNot(HaveOccurred())
		Expect(status).To(ContainSubstring("200"))

		var sawLength bool
		for {
			line, rerr := r.ReadString('\n')
			trimmed := strings.TrimRight(line, "\r\n")
			if trimmed == "" || rerr != nil {
				break
			}
			if trimmed == "Content-Length: 5" {
				sawLength = true
			}
		}
		Expect(sawLength).To(BeTrue())

		buf := make([]byte, 5)
		_, _ = io.ReadFull(r, buf)
		Expect(string(buf)).To(Equal("Hello"))

		Eventually(done).Should(BeClosed())
	})

	It("emits a 400 body naming the missing Host header", func() {
		serverSide, clientSide := net.Pipe()
		cfg := &httpcore.Config{VHosts: map[string]*httpcore.Router{"": httpcore.NewRouter()}}

		done := make(chan struct{})
		go func() {
			httpcore.Dispatch(cfg, stream.NewConn(serverSide))
			close(done)
		}()

		_, err := clientSide.Write([]byte("GET / HTTP/1.1\r\n\r\n"))
		Expect(err).ToNot(HaveOccurred())

		r := bufio.NewReader(clientSide)
		status, err := r.ReadString('\n')
		Expect(err).ToNot(HaveOccurred())
		Expect(status).To(ContainSubstring("400"))

		for {
			line, rerr := r.ReadString('\n')
			if strings.TrimRight(line, "\r\n") == "" || rerr != nil {
				break
			}
		}
		rest, _ := io.ReadAll(r)
		Expect(string(rest)).To(ContainSubstring("Missing Host header."))

		Eventually(done).Should(BeClosed())
	})

	It("emits an implicit 404 for an unmatched route", func() {
		serverSide, clientSide := net.Pipe()
		cfg := &httpcore.Config{VHosts: map[string]*httpcore.Router{"": httpcore.NewRouter()}}

		done := make(chan struct{})
		go func() {
			httpcore.Dispatch(cfg, stream.NewConn(serverSide))
			close(done)
		}()

		_, err := clientSide.Write([]byte("GET /missing HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n"))
		Expect(err).ToNot(HaveOccurred())

		r := bufio.NewReader(clientSide)
		status, err := r.ReadString('\n')
		Expect(err).ToNot(HaveOccurred())
		Expect(status).To(ContainSubstring("404"))

		Eventually(done).Should(BeClosed())
	})
})
