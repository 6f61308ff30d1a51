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

// Package fnetmetrics exports live occupancy of the reactor, scheduler and
// transport pool as prometheus gauges, one Collector scraped on demand
// rather than a background ticker: every exported value is read from its
// source's own accessor at Collect time, so there is no separate counter
// state to drift from the thing it describes.
package fnetmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nabbar/fibernet/reactor"
	"github.com/nabbar/fibernet/scheduler"
	"github.com/nabbar/fibernet/transport"
)

// Sources names the components a Collector reads from. Any field may be
// nil, in which case the metrics it would contribute are simply not
// reported.
type Sources struct {
	Reactor   *reactor.Reactor
	Scheduler *scheduler.Pool
	Pool      *transport.Pool
}

var (
	descHandles = prometheus.NewDesc(
		"fibernet_reactor_handles", "Number of handles currently registered with the reactor.", nil, nil)
	descFibers = prometheus.NewDesc(
		"fibernet_scheduler_fibers", "Number of fibers currently tracked across all workers.", nil, nil)
	descAdmitInUse = prometheus.NewDesc(
		"fibernet_scheduler_admit_in_use", "Concurrent fiber-admission slots currently granted.", nil, nil)
	descAdmitMax = prometheus.NewDesc(
		"fibernet_scheduler_admit_max", "Concurrent fiber-admission slot limit.", nil, nil)
	descPoolInUse = prometheus.NewDesc(
		"fibernet_transport_pool_in_use", "Connections currently borrowed from the pool, per key.",
		[]string{"network", "address", "tls"}, nil)
	descPoolIdle = prometheus.NewDesc(
		"fibernet_transport_pool_idle", "Idle connections held by the pool, per key.",
		[]string{"network", "address", "tls"}, nil)
	descPoolMax = prometheus.NewDesc(
		"fibernet_transport_pool_max", "Per-key connection admission limit.",
		[]string{"network", "address", "tls"}, nil)
)

// Collector implements prometheus.Collector over Sources.
type Collector struct {
	src Sources
}

// NewCollector returns a Collector ready to be passed to a
// prometheus.Registry's MustRegister.
func NewCollector(src Sources) *Collector {
	return &Collector{src: src}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- descHandles
	ch <- descFibers
	ch <- descAdmitInUse
	ch <- descAdmitMax
	ch <- descPoolInUse
	ch <- descPoolIdle
	ch <- descPoolMax
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c.src.Reactor != nil {
		ch <- prometheus.MustNewConstMetric(descHandles, prometheus.GaugeValue, float64(c.src.Reactor.HandleCount()))
	}
	if c.src.Scheduler != nil {
		ch <- prometheus.MustNewConstMetric(descFibers, prometheus.GaugeValue, float64(c.src.Scheduler.FiberCount()))
		ch <- prometheus.MustNewConstMetric(descAdmitInUse, prometheus.GaugeValue, float64(c.src.Scheduler.AdmitInUse()))
		ch <- prometheus.MustNewConstMetric(descAdmitMax, prometheus.GaugeValue, float64(c.src.Scheduler.AdmitMax()))
	}
	if c.src.Pool != nil {
		for _, s := range c.src.Pool.Stats() {
			labels := []string{s.Key.Network, s.Key.Address, boolLabel(s.Key.TLS)}
			ch <- prometheus.MustNewConstMetric(descPoolInUse, prometheus.GaugeValue, float64(s.InUse), labels...)
			ch <- prometheus.MustNewConstMetric(descPoolIdle, prometheus.GaugeValue, float64(s.Idle), labels...)
			ch <- prometheus.MustNewConstMetric(descPoolMax, prometheus.GaugeValue, float64(s.Max), labels...)
		}
	}
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
