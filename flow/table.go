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

// Package flow demultiplexes a single server-side datagram endpoint into
// one inbound packet queue per live peer. The acceptor is the only writer
// of flow entries; connection sockets are the only readers of queues.
package flow

import (
	"net"
	"sync"

	"github.com/nabbar/udpxfer/metrics"
	"github.com/nabbar/udpxfer/packet"
)

// QueueSize bounds each peer's inbound queue. A peer that outpaces its own
// connection socket's consumer has packets dropped from the tail rather
// than blocking the acceptor's single dispatch goroutine.
const QueueSize = 64

// Table maps peer address (by its string form) to that peer's inbound
// packet queue. Exactly one queue exists per live peer; Dispatch on an
// unknown peer is a caller error the acceptor never makes (it always Adds
// before the first Dispatch for a new peer).
type Table struct {
	mu  sync.RWMutex
	m   map[string]chan packet.Packet
	col *metrics.Collectors
}

// New builds an empty flow table reporting drops through col. Pass nil to
// disable metrics (used by tests that do not care about counters).
func New(col *metrics.Collectors) *Table {
	return &Table{
		m:   make(map[string]chan packet.Packet),
		col: col,
	}
}

func key(peer net.Addr) string {
	return peer.String()
}

// Add registers peer, creating its queue. Calling Add on an already-live
// peer replaces the queue (the acceptor never does this in practice; the
// dispatch table routes a duplicate SYN to the drop case, not here).
func (t *Table) Add(peer net.Addr) <-chan packet.Packet {
	t.mu.Lock()
	defer t.mu.Unlock()

	ch := make(chan packet.Packet, QueueSize)
	t.m[key(peer)] = ch
	return ch
}

// Remove deletes peer's entry, closing its queue. Safe to call on a peer
// that is not present.
func (t *Table) Remove(peer net.Addr) {
	t.mu.Lock()
	defer t.mu.Unlock()

	k := key(peer)
	if ch, ok := t.m[k]; ok {
		close(ch)
		delete(t.m, k)
	}
}

// Exists reports whether peer currently has a live flow.
func (t *Table) Exists(peer net.Addr) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.m[key(peer)]
	return ok
}

// Dispatch enqueues pkt onto peer's queue. If the queue is full the packet
// is dropped (soft-cap, drop-tail) and counted; the sender's own
// retransmit timer recovers from the loss exactly as it would from a
// network-dropped datagram.
func (t *Table) Dispatch(peer net.Addr, pkt packet.Packet) bool {
	t.mu.RLock()
	ch, ok := t.m[key(peer)]
	t.mu.RUnlock()

	if !ok {
		return false
	}

	select {
	case ch <- pkt:
		return true
	default:
		if t.col != nil {
			t.col.FlowQueueDrops.WithLabelValues(pkt.ProtocolType().String()).Inc()
		}
		return false
	}
}

// Len reports the number of live flows, used by the acceptor's admission
// control and by tests asserting flows are removed on FIN.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.m)
}
