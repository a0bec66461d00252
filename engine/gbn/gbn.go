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

// Package gbn implements the Go-Back-N ARQ sender and receiver loops. The
// sender is a single synchronous loop: it fills the window, then blocks on
// one recv() whose deadline doubles as the retransmit timer, so there is
// never a timer goroutine to leak or fire a zombie retransmission after a
// valid ACK — each iteration's context.WithTimeout is cancelled before the
// next is created.
package gbn

import (
	"context"

	"github.com/bits-and-blooms/bitset"

	"github.com/nabbar/udpxfer/connsock"
	"github.com/nabbar/udpxfer/engine"
	"github.com/nabbar/udpxfer/filestream"
	"github.com/nabbar/udpxfer/metrics"
	"github.com/nabbar/udpxfer/packet"
	"github.com/nabbar/udpxfer/protocol"
)

// Logger receives one line per retransmit/timeout/discard, or nil to
// disable this engine's debug logging.
type Logger func(msg string, fields map[string]interface{})

// seqLTE implements the conventional 16-bit modular "a <= b" predicate:
// (b-a) mod 2^16 < 2^15.
func seqLTE(a, b uint16) bool {
	return uint16(b-a) < 1<<15
}

// Run drives the Go-Back-N exchange in the role selected by isSender.
func Run(ctx context.Context, sock connsock.ConnSocket, fs filestream.FileStream, isSender bool, col *metrics.Collectors, log Logger) error {
	if isSender {
		return runSenderFrom(ctx, sock, fs, col, log, 0)
	}
	return runReceiverFrom(ctx, sock, fs, col, log, 0)
}

func logf(log Logger, msg string, fields map[string]interface{}) {
	if log != nil {
		log(msg, fields)
	}
}

type sender struct {
	sock    connsock.ConnSocket
	fs      filestream.FileStream
	col     *metrics.Collectors
	log     Logger
	base    uint16
	nextSeq uint16
	unacked []packet.Packet
	inFlt   *bitset.BitSet
	eof     bool

	// onBaseAdvance, set only by tests via export_test.go, is invoked each
	// time applyAck moves base forward. Production callers never set it.
	onBaseAdvance func(old, new uint16)
}

// newSender builds a sender with base and nextSeq preset to start, the
// seam export_test.go uses to drive the wraparound boundary without
// pushing 2^16 real packets through a test.
func newSender(sock connsock.ConnSocket, fs filestream.FileStream, col *metrics.Collectors, log Logger, start uint16) *sender {
	return &sender{
		sock:    sock,
		fs:      fs,
		col:     col,
		log:     log,
		base:    start,
		nextSeq: start,
		inFlt:   bitset.New(engine.Window),
	}
}

func runSenderFrom(ctx context.Context, sock connsock.ConnSocket, fs filestream.FileStream, col *metrics.Collectors, log Logger, start uint16) error {
	return newSender(sock, fs, col, log, start).loop(ctx)
}

func (s *sender) loop(ctx context.Context) error {
	sock, col := s.sock, s.col

	consecutiveTimeouts := 0

	for {
		if err := s.fillWindow(ctx); err != nil {
			return err
		}

		if s.eof && len(s.unacked) == 0 {
			return sock.Disconnect(ctx)
		}

		tctx, cancel := context.WithTimeout(ctx, engine.TimeoutInterval)
		ack, err := sock.Recv(tctx)
		cancel()

		if err != nil {
			consecutiveTimeouts++
			if col != nil {
				col.TimerExpirations.WithLabelValues(protocol.TypeGBN.String()).Inc()
			}

			if consecutiveTimeouts >= engine.RetransmissionRetries {
				_ = sock.Disconnect(ctx)
				return engine.ErrPeerUnresponsive.Error(nil)
			}

			s.retransmitAll(ctx)
			continue
		}

		consecutiveTimeouts = 0

		if !ack.IsACK() {
			continue
		}

		s.applyAck(ack.AckNum)
	}
}

func (s *sender) fillWindow(ctx context.Context) error {
	for !s.eof && uint16(s.nextSeq-s.base) < engine.Window {
		chunk, err := s.fs.ReadChunk()
		if err != nil {
			return err
		}
		if len(chunk) == 0 {
			s.eof = true
			break
		}

		pkt := packet.Packet{
			Proto:   s.sock.Protocol(),
			Mode:    s.sock.Mode(),
			SeqNum:  s.nextSeq,
			Payload: chunk,
		}

		if err = s.sock.Send(ctx, pkt); err != nil {
			return err
		}

		s.unacked = append(s.unacked, pkt)
		s.inFlt.Set(uint(s.nextSeq) % engine.Window)

		if s.col != nil {
			s.col.BytesTransferred.WithLabelValues("sent").Add(float64(len(chunk)))
		}

		s.nextSeq++
	}

	return nil
}

func (s *sender) applyAck(ackNum uint16) {
	popped := false

	for len(s.unacked) > 0 && seqLTE(s.unacked[0].SeqNum, ackNum) {
		s.inFlt.Clear(uint(s.unacked[0].SeqNum) % engine.Window)
		s.unacked = s.unacked[1:]
		popped = true
	}

	if popped {
		old := s.base
		s.base = ackNum + 1
		if s.onBaseAdvance != nil {
			s.onBaseAdvance(old, s.base)
		}
	}
}

func (s *sender) retransmitAll(ctx context.Context) {
	logf(s.log, "gbn sender timer expired, retransmitting window", map[string]interface{}{"base": s.base, "in_flight": len(s.unacked)})

	for _, pkt := range s.unacked {
		if err := s.sock.Send(ctx, pkt); err != nil {
			return
		}
		if s.col != nil {
			s.col.Retransmissions.WithLabelValues(protocol.TypeGBN.String()).Inc()
		}
	}
}

func runReceiverFrom(ctx context.Context, sock connsock.ConnSocket, fs filestream.FileStream, col *metrics.Collectors, log Logger, start uint16) error {
	ackNum := start

	for {
		pkt, err := sock.Recv(ctx)
		if err != nil {
			return err
		}
		if sock.IsClosed() {
			return nil
		}
		if pkt.IsFIN() {
			return nil
		}

		reply := packet.Packet{Proto: sock.Protocol(), Mode: sock.Mode(), ACK: true}

		if pkt.SeqNum == ackNum {
			if err = fs.WriteChunk(pkt.Payload); err != nil {
				return err
			}
			if col != nil {
				col.BytesTransferred.WithLabelValues("received").Add(float64(len(pkt.Payload)))
			}
			reply.AckNum = ackNum
			ackNum++
		} else {
			logf(log, "gbn receiver discarding out-of-order packet", map[string]interface{}{"seq": pkt.SeqNum, "expected": ackNum})
			reply.AckNum = ackNum - 1
		}

		if err = sock.Send(ctx, reply); err != nil {
			return err
		}
	}
}
