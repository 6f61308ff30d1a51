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

package fnetcfg_test

import (
	"github.com/nabbar/fibernet/fnetcfg"
	"github.com/nabbar/fibernet/httpcore"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ServerConfig", func() {
	It("expands bind addresses and port into tcp listen targets", func() {
		cfg := &fnetcfg.ServerConfig{BindAddresses: []string{"0.0.0.0", "127.0.0.1"}, Port: 8080}
		listens := cfg.Listens()
		Expect(listens).To(HaveLen(2))
		Expect(listens[0]).To(Equal(fnetcfg.ListenAddr{Network: "tcp", Address: "0.0.0.0:8080"}))
		Expect(listens[1]).To(Equal(fnetcfg.ListenAddr{Network: "tcp", Address: "127.0.0.1:8080"}))
	})

	It("treats a leading slash as a UNIX socket path, ignoring Port", func() {
		cfg := &fnetcfg.ServerConfig{BindAddresses: []string{"/tmp/fnetcfg.sock"}, Port: 8080}
		listens := cfg.Listens()
		Expect(listens).To(Equal([]fnetcfg.ListenAddr{{Network: "unix", Address: "/tmp/fnetcfg.sock"}}))
	})

	It("builds an httpcore.Config with the host-named vhost", func() {
		cfg := &fnetcfg.ServerConfig{BindAddresses: []string{"0.0.0.0"}, HostName: "example.test", MaxRequestHeaderSize: 4096}
		router := httpcore.NewRouter()
		dc := cfg.DispatchConfig(router, nil, nil)
		Expect(dc.MaxHeaderBytes).To(Equal(4096))
		Expect(dc.VHosts["example.test"]).To(BeIdenticalTo(router))
	})
})
