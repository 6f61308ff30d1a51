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
	"os"
	"path/filepath"
	"time"

	"github.com/nabbar/fibernet/fnetcfg"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const serverYAML = `
server:
  bind_addresses: ["0.0.0.0"]
  port: 8443
  host_name: "example.test"
  max_request_header_size: 16384
  read_timeout: "5s"
  write_timeout: "10s"
  options:
    keep_alive: true
    parse_json_body: true
`

var _ = Describe("Loader", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "config.yaml")
		Expect(os.WriteFile(path, []byte(serverYAML), 0o644)).To(Succeed())
	})

	It("loads and validates a ServerConfig", func() {
		l, err := fnetcfg.NewLoader(path)
		Expect(err).ToNot(HaveOccurred())

		cfg, err := l.LoadServer("server")
		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.BindAddresses).To(Equal([]string{"0.0.0.0"}))
		Expect(cfg.Port).To(BeEquivalentTo(8443))
		Expect(cfg.ReadTimeout.Time()).To(Equal(5 * time.Second))
		Expect(cfg.Options.ParseJSONBody).To(BeTrue())
	})

	It("rejects a ServerConfig with no bind addresses", func() {
		bad := filepath.Join(GinkgoT().TempDir(), "bad.yaml")
		Expect(os.WriteFile(bad, []byte("server:\n  port: 80\n"), 0o644)).To(Succeed())

		l, err := fnetcfg.NewLoader(bad)
		Expect(err).ToNot(HaveOccurred())

		_, err = l.LoadServer("server")
		Expect(err).To(HaveOccurred())
	})

	It("invokes OnChange callbacks when the file is rewritten", func() {
		l, err := fnetcfg.NewLoader(path)
		Expect(err).ToNot(HaveOccurred())

		changed := make(chan struct{}, 1)
		l.OnChange(func() { changed <- struct{}{} })

		Expect(os.WriteFile(path, []byte(serverYAML+"  port: 9443\n"), 0o644)).To(Succeed())

		Eventually(changed, 2*time.Second, 20*time.Millisecond).Should(Receive())
	})
})
