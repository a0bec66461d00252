/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

// Package metrics exposes the Prometheus counters and gauges the transfer
// stack increments as it runs: dropped datagrams, queue drops, retransmits,
// timer expiries and bytes moved. Every collector is safe to use before
// MustRegister is called; registering the same set twice against one
// registry panics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "udpxfer"

// Collectors groups every metric this module produces, labelled by the
// negotiated ARQ protocol ("SW" / "GBN", from protocol.Type.String) where
// the distinction matters.
type Collectors struct {
	DroppedDatagrams  *prometheus.CounterVec
	FlowQueueDrops    *prometheus.CounterVec
	Retransmissions   *prometheus.CounterVec
	TimerExpirations  *prometheus.CounterVec
	BytesTransferred  *prometheus.CounterVec
	ActiveConnections prometheus.Gauge
}

// New builds a fresh, unregistered Collectors set.
func New() *Collectors {
	return &Collectors{
		DroppedDatagrams: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_datagrams_total",
			Help:      "Datagrams discarded, by reason: malformed, protocol_mismatch, unknown_peer or send_error.",
		}, []string{"reason"}),
		FlowQueueDrops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flow_queue_drops_total",
			Help:      "Packets dropped because a peer's inbound queue was full.",
		}, []string{"protocol"}),
		Retransmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retransmissions_total",
			Help:      "Data packets resent after a timer expiry.",
		}, []string{"protocol"}),
		TimerExpirations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "timer_expirations_total",
			Help:      "Retransmit timer firings observed by an engine.",
		}, []string{"protocol"}),
		BytesTransferred: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_transferred_total",
			Help:      "Payload bytes accepted by a receiver, by direction.",
		}, []string{"direction"}),
		ActiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_connections",
			Help:      "Connections currently in ESTABLISHED or CLOSING state.",
		}),
	}
}

// MustRegister registers every collector against reg, panicking on a
// duplicate-registration error as prometheus.MustRegister does.
func (c *Collectors) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		c.DroppedDatagrams,
		c.FlowQueueDrops,
		c.Retransmissions,
		c.TimerExpirations,
		c.BytesTransferred,
		c.ActiveConnections,
	)
}

// Default is a process-wide, unregistered instance. datagram.Bind uses it,
// and the session package falls back to it when a config carries no
// Collectors; other code receives its Collectors through constructors so
// tests can supply an isolated instance instead.
var Default = New()
