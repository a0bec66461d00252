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

// Package testtransport provides a lossy connsock.ConnSocket decorator so
// engine tests can exercise retransmission and timer-expiry paths on a
// real loopback socket pair without depending on actual kernel/network
// packet loss, which isn't reproducible in a test run.
package testtransport

import (
	"context"
	"math/rand"

	"github.com/nabbar/udpxfer/connsock"
	"github.com/nabbar/udpxfer/packet"
)

// Lossy wraps a connsock.ConnSocket and silently discards outgoing data
// and ACK packets with a fixed probability, as if they vanished in
// transit. SYN and FIN packets are never dropped: the scenarios this
// models (spec.md §8's loss-rate transfers) exercise the ARQ data path's
// recovery, not handshake/teardown retry, which already has its own
// dedicated tests.
type Lossy struct {
	connsock.ConnSocket
	rnd  *rand.Rand
	prob float64
}

// Wrap returns sock decorated so each data/ACK Send has probability p of
// being silently dropped. seed makes one test's loss pattern
// reproducible across runs without affecting any other test's RNG.
func Wrap(sock connsock.ConnSocket, p float64, seed int64) *Lossy {
	return &Lossy{ConnSocket: sock, rnd: rand.New(rand.NewSource(seed)), prob: p}
}

func (l *Lossy) Send(ctx context.Context, pkt packet.Packet) error {
	if !pkt.IsSYN() && !pkt.IsFIN() && l.rnd.Float64() < l.prob {
		return nil
	}
	return l.ConnSocket.Send(ctx, pkt)
}

// DuplicateAcks wraps a ConnSocket and re-sends every ACK other than a
// FIN-ACK a second time right behind the first, modeling a duplicate ACK that reaches the sender
// while its retransmit timer is already firing. The sender must treat the
// repeat as a no-op: applyAck finds nothing left in unacked at or before
// the already-acknowledged sequence number, so base does not move again.
type DuplicateAcks struct {
	connsock.ConnSocket
}

// Duplicate returns sock decorated so each non-FIN ACK it sends goes out twice.
func Duplicate(sock connsock.ConnSocket) *DuplicateAcks {
	return &DuplicateAcks{ConnSocket: sock}
}

func (d *DuplicateAcks) Send(ctx context.Context, pkt packet.Packet) error {
	if err := d.ConnSocket.Send(ctx, pkt); err != nil {
		return err
	}
	if pkt.IsACK() && !pkt.IsFIN() {
		return d.ConnSocket.Send(ctx, pkt)
	}
	return nil
}
