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

// Package sw implements the Stop-and-Wait ARQ sender and receiver loops
// over a connsock.ConnSocket and a filestream.FileStream.
package sw

import (
	"context"

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

// Run drives the full-duplex-by-role Stop-and-Wait exchange: Send reads
// from fs and writes to sock; Recv reads from sock and writes to fs. The
// direction is fixed by isSender, decided by the session from MODE.
func Run(ctx context.Context, sock connsock.ConnSocket, fs filestream.FileStream, isSender bool, col *metrics.Collectors, log Logger) error {
	if isSender {
		return runSender(ctx, sock, fs, col, log)
	}
	return runReceiver(ctx, sock, fs, col, log)
}

func logf(log Logger, msg string, fields map[string]interface{}) {
	if log != nil {
		log(msg, fields)
	}
}

func runSender(ctx context.Context, sock connsock.ConnSocket, fs filestream.FileStream, col *metrics.Collectors, log Logger) error {
	var seqNum uint16

	for {
		chunk, err := fs.ReadChunk()
		if err != nil {
			return err
		}
		if len(chunk) == 0 {
			return sock.Disconnect(ctx)
		}

		data := packet.Packet{
			Proto:   sock.Protocol(),
			Mode:    sock.Mode(),
			SeqNum:  seqNum,
			Payload: chunk,
		}

		acked := false
		for attempt := 0; attempt < engine.RetransmissionRetries; attempt++ {
			if err = sock.Send(ctx, data); err != nil {
				return err
			}

			tctx, cancel := context.WithTimeout(ctx, engine.TimeoutInterval)
			ack, rerr := sock.Recv(tctx)
			cancel()

			if rerr == nil && ack.IsACK() && ack.AckNum == seqNum {
				acked = true
				break
			}

			if col != nil {
				col.TimerExpirations.WithLabelValues(protocol.TypeSW.String()).Inc()
				col.Retransmissions.WithLabelValues(protocol.TypeSW.String()).Inc()
			}
			logf(log, "sw sender timeout, retransmitting", map[string]interface{}{"seq": seqNum, "attempt": attempt})
		}

		if !acked {
			_ = sock.Disconnect(ctx)
			return engine.ErrPeerUnresponsive.Error(nil)
		}

		if col != nil {
			col.BytesTransferred.WithLabelValues("sent").Add(float64(len(chunk)))
		}

		seqNum ^= 1
	}
}

func runReceiver(ctx context.Context, sock connsock.ConnSocket, fs filestream.FileStream, col *metrics.Collectors, log Logger) error {
	var ackNum uint16

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
			ackNum ^= 1
		} else {
			logf(log, "sw receiver discarding out-of-phase duplicate", map[string]interface{}{"seq": pkt.SeqNum, "expected": ackNum})
		}

		reply.AckNum = ackNum
		if err = sock.Send(ctx, reply); err != nil {
			return err
		}
	}
}
