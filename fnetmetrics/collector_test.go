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

package fnetmetrics_test

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nabbar/fibernet/fnetmetrics"
	"github.com/nabbar/fibernet/reactor"
	"github.com/nabbar/fibernet/scheduler"
	"github.com/nabbar/fibernet/transport"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Collector", func() {
	It("reports reactor and scheduler gauge families for freshly built sources", func() {
		rx := reactor.New()
		sp := scheduler.NewPool(context.Background(), nil, 2, 0)
		pl := transport.NewPool(4, nil)

		reg := prometheus.NewRegistry()
		reg.MustRegister(fnetmetrics.NewCollector(fnetmetrics.Sources{Reactor: rx, Scheduler: sp, Pool: pl}))

		families, err := reg.Gather()
		Expect(err).ToNot(HaveOccurred())

		names := map[string]bool{}
		for _, f := range families {
			names[f.GetName()] = true
		}
		Expect(names).To(HaveKey("fibernet_reactor_handles"))
		Expect(names).To(HaveKey("fibernet_scheduler_fibers"))
		Expect(names).To(HaveKey("fibernet_scheduler_admit_max"))
	})

	It("omits families whose source is nil", func() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(fnetmetrics.NewCollector(fnetmetrics.Sources{}))

		families, err := reg.Gather()
		Expect(err).ToNot(HaveOccurred())
		Expect(families).To(BeEmpty())
	})
})
