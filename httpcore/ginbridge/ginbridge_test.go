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

package ginbridge_test

import (
	"bufio"
	"net"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nabbar/fibernet/httpcore"
	"github.com/nabbar/fibernet/httpcore/ginbridge"
	"github.com/nabbar/fibernet/stream"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Wrap", func() {
	It("serves a gin route mounted behind a tail route", func() {
		gin.SetMode(gin.TestMode)
		engine := gin.New()
		engine.GET("/api/ping", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		rt := httpcore.NewRouter()
		rt.Handle("*", "/api/*", ginbridge.Wrap(engine))
		cfg := &httpcore.Config{VHosts: map[string]*httpcore.Router{"": rt}}

		serverSide, clientSide := net.Pipe()
		done := make(chan struct{})
		go func() {
			httpcore.Dispatch(cfg, stream.NewConn(serverSide))
			close(done)
		}()

		_, err := clientSide.Write([]byte("GET /api/ping HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n"))
		Expect(err).ToNot(HaveOccurred())

		r := bufio.NewReader(clientSide)
		status, err := r.ReadString('\n')
		Expect(err).ToNot(HaveOccurred())
		Expect(status).To(ContainSubstring("200"))

		var headers []string
		for {
			line, rerr := r.ReadString('\n')
			trimmed := strings.TrimRight(line, "\r\n")
			if trimmed == "" {
				break
			}
			headers = append(headers, trimmed)
			if rerr != nil {
				break
			}
		}
		Expect(strings.Join(headers, "\n")).To(ContainSubstring("Content-Type: application/json"))

		body, _ := r.ReadString('}')
		Expect(body).To(ContainSubstring(`"status":"ok"`))

		Eventually(done).Should(BeClosed())
	})

	It("returns 404 through gin for an unmatched gin route", func() {
		gin.SetMode(gin.TestMode)
		engine := gin.New()

		rt := httpcore.NewRouter()
		rt.Handle("*", "/api/*", ginbridge.Wrap(engine))
		cfg := &httpcore.Config{VHosts: map[string]*httpcore.Router{"": rt}}

		serverSide, clientSide := net.Pipe()
		done := make(chan struct{})
		go func() {
			httpcore.Dispatch(cfg, stream.NewConn(serverSide))
			close(done)
		}()

		_, err := clientSide.Write([]byte("GET /api/missing HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n"))
		Expect(err).ToNot(HaveOccurred())

		r := bufio.NewReader(clientSide)
		status, err := r.ReadString('\n')
		Expect(err).ToNot(HaveOccurred())
		Expect(status).To(ContainSubstring("404"))

		Eventually(done).Should(BeClosed())
	})
})
