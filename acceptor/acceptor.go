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

// Package acceptor runs the single background task that demultiplexes a
// server's listening endpoint: SYN handshakes create flows and yield
// connection sockets, everything else is routed to an existing flow's
// queue or dropped per the dispatch table.
package acceptor

import (
	"context"
	"net"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/nabbar/udpxfer/connsock"
	"github.com/nabbar/udpxfer/datagram"
	"github.com/nabbar/udpxfer/flow"
	"github.com/nabbar/udpxfer/ioutils/fileDescriptor"
	"github.com/nabbar/udpxfer/metrics"
	"github.com/nabbar/udpxfer/packet"
	"github.com/nabbar/udpxfer/protocol"
)

// MaxPendingFlows bounds how many live flows the acceptor admits at once.
// A SYN arriving once the budget is exhausted is dropped rather than
// queued; the peer's handshake retry loop will succeed once a slot frees.
const MaxPendingFlows = 256

// minFileDescriptors is the floor New tries to raise the process's open
// file limit to: one descriptor per pending flow's storage file, plus the
// listening socket and headroom for the client binaries sharing the limit.
const minFileDescriptors = MaxPendingFlows + 64

// AcceptQueueSize bounds the buffer of ready connection sockets awaiting a
// session task. A full queue causes new SYNs to be dropped just as an
// exhausted semaphore would, since nothing would ever drain the flow.
const AcceptQueueSize = 32

// Logger is the minimal structured-debug hook the acceptor calls for each
// malformed datagram, each SYN dropped at capacity, and once in New to
// report the file descriptor limit. Other drops are only counted in
// metrics. Sessions and the CLI wire this to the shared logger package;
// tests may pass nil.
type Logger func(msg string, fields map[string]interface{})

// Acceptor binds one server endpoint and demultiplexes it into per-peer
// connection sockets.
type Acceptor struct {
	ep       datagram.Endpoint
	selector protocol.Type
	flows    *flow.Table
	sem      *semaphore.Weighted
	out      chan connsock.ConnSocket
	col      *metrics.Collectors
	log      Logger

	mu     sync.Mutex
	closed bool
}

// New binds hostPort and prepares an Acceptor that only admits connections
// negotiating selector.
func New(hostPort string, selector protocol.Type, col *metrics.Collectors, log Logger) (*Acceptor, error) {
	if cur, _, err := fileDescriptor.SystemFileDescriptor(minFileDescriptors); err == nil && log != nil {
		log("file descriptor limit", map[string]interface{}{"current": cur, "wanted": minFileDescriptors})
	}

	ep, err := datagram.BindWithMetrics(hostPort, col)
	if err != nil {
		return nil, err
	}

	return &Acceptor{
		ep:       ep,
		selector: selector,
		flows:    flow.New(col),
		sem:      semaphore.NewWeighted(MaxPendingFlows),
		out:      make(chan connsock.ConnSocket, AcceptQueueSize),
		col:      col,
		log:      log,
	}, nil
}

// LocalAddr returns the bound address.
func (a *Acceptor) LocalAddr() net.Addr {
	return a.ep.LocalAddr()
}

// Accept returns the channel of ready connection sockets. The session
// orchestrator ranges over it, spawning one task per accepted connection.
func (a *Acceptor) Accept() <-chan connsock.ConnSocket {
	return a.out
}

// Close releases the listening endpoint. Run returns shortly after.
func (a *Acceptor) Close() error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	return a.ep.Close()
}

func (a *Acceptor) logf(msg string, fields map[string]interface{}) {
	if a.log != nil {
		a.log(msg, fields)
	}
}

// Run is the single background demultiplexing task. It blocks until ctx is
// cancelled or the endpoint is closed.
func (a *Acceptor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		raw, peer, err := a.ep.RecvFrom()
		if err != nil {
			return
		}

		pkt, err := packet.Decode(raw)
		if err != nil {
			if a.col != nil {
				a.col.DroppedDatagrams.WithLabelValues("malformed").Inc()
			}
			a.logf("dropping malformed datagram", map[string]interface{}{"peer": peer.String()})
			continue
		}

		a.dispatch(ctx, peer, pkt)
	}
}

func (a *Acceptor) dispatch(ctx context.Context, peer net.Addr, pkt packet.Packet) {
	if pkt.ProtocolType() != a.selector {
		a.sendFIN(peer)
		if a.col != nil {
			a.col.DroppedDatagrams.WithLabelValues("protocol_mismatch").Inc()
		}
		return
	}

	live := a.flows.Exists(peer)

	switch {
	case pkt.IsSYN() && !live:
		a.admit(ctx, peer, pkt)

	case pkt.IsSYN() && live:
		// duplicate handshake: drop, the peer retries until SYN|ACK arrives.

	case pkt.IsFIN() && live:
		a.flows.Dispatch(peer, pkt)
		a.flows.Remove(peer)
		a.sem.Release(1)

	case live:
		a.flows.Dispatch(peer, pkt)

	default:
		if a.col != nil {
			a.col.DroppedDatagrams.WithLabelValues("unknown_peer").Inc()
		}
	}
}

func (a *Acceptor) admit(ctx context.Context, peer net.Addr, pkt packet.Packet) {
	if !a.sem.TryAcquire(1) {
		a.logf("dropping SYN: acceptor at capacity", map[string]interface{}{"peer": peer.String()})
		return
	}

	in := a.flows.Add(peer)

	ack := packet.Packet{Proto: a.selector, Mode: pkt.TransferMode(), SYN: true, ACK: true}
	raw, err := packet.Encode(ack)
	if err != nil {
		a.flows.Remove(peer)
		a.sem.Release(1)
		return
	}

	if err = a.ep.SendTo(raw, peer); err != nil {
		a.flows.Remove(peer)
		a.sem.Release(1)
		return
	}

	sock := connsock.NewServer(a.ep, peer, a.selector, pkt.TransferMode(), in)

	select {
	case a.out <- sock:
	case <-ctx.Done():
	default:
		// accept queue saturated: undo the admission, the peer will retry.
		a.flows.Remove(peer)
		a.sem.Release(1)
	}
}

func (a *Acceptor) sendFIN(peer net.Addr) {
	raw, err := packet.Encode(packet.Packet{Proto: a.selector, FIN: true})
	if err != nil {
		return
	}
	_ = a.ep.SendTo(raw, peer)
}
