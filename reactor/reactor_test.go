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

package reactor_test

import (
	"net"
	"testing"
	"time"

	"github.com/nabbar/fibernet/fdur"
	"github.com/nabbar/fibernet/reactor"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestReactor(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "reactor suite")
}

var _ = Describe("Reactor", func() {
	It("times out a Sleep with no interruption", func() {
		r := reactor.New()
		h := r.NewHandle()
		defer r.Cancel(h)

		start := time.Now()
		res := r.Sleep(h, fdur.Duration(30*time.Millisecond))
		Expect(res.TimedOut).To(BeTrue())
		Expect(res.Interrupted).To(BeFalse())
		Expect(time.Since(start)).To(BeNumerically(">=", 25*time.Millisecond))
	})

	It("wakes a Sleep early on Interrupt", func() {
		r := reactor.New()
		h := r.NewHandle()
		defer r.Cancel(h)

		done := make(chan reactor.WaitResult, 1)
		go func() { done <- r.Sleep(h, fdur.MaxDuration) }()

		time.Sleep(20 * time.Millisecond)
		r.Interrupt(h)

		Eventually(done).Should(Receive(HaveField("Interrupted", BeTrue())))
	})

	It("WaitReadable detects data without consuming it", func() {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
		defer ln.Close()

		accepted := make(chan net.Conn, 1)
		go func() {
			c, aerr := ln.Accept()
			Expect(aerr).ToNot(HaveOccurred())
			accepted <- c
		}()

		client, err := net.Dial("tcp", ln.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer client.Close()

		server := <-accepted
		defer server.Close()

		_, err = client.Write([]byte("x"))
		Expect(err).ToNot(HaveOccurred())

		ready, err := reactor.WaitReadable(server, fdur.Duration(200*time.Millisecond))
		Expect(err).ToNot(HaveOccurred())
		Expect(ready).To(BeTrue())

		buf := make([]byte, 1)
		n, err := server.Read(buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(1))
	})

	It("WaitReadable times out when nothing is written", func() {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
		defer ln.Close()

		accepted := make(chan net.Conn, 1)
		go func() {
			c, aerr := ln.Accept()
			Expect(aerr).ToNot(HaveOccurred())
			accepted <- c
		}()

		client, err := net.Dial("tcp", ln.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer client.Close()

		server := <-accepted
		defer server.Close()

		ready, err := reactor.WaitReadable(server, fdur.Duration(30*time.Millisecond))
		Expect(err).ToNot(HaveOccurred())
		Expect(ready).To(BeFalse())
	})
})
