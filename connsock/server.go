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

package connsock

import (
	"context"
	"net"
	"sync/atomic"

	"github.com/nabbar/udpxfer/datagram"
	"github.com/nabbar/udpxfer/packet"
	"github.com/nabbar/udpxfer/protocol"
)

// server is the server-side ConnSocket yielded by the acceptor: it shares
// the acceptor's endpoint and reads from that peer's flow-table queue
// rather than from the socket directly.
type server struct {
	ep    datagram.Endpoint
	peer  net.Addr
	proto protocol.Type
	mode  protocol.Mode
	state atomic.Int32

	in <-chan packet.Packet
}

// NewServer wraps an already-established flow (the acceptor has already
// completed the SYN|ACK handshake) as a ConnSocket. in is the peer's
// flow-table queue; it is closed by the acceptor on FIN/teardown.
func NewServer(ep datagram.Endpoint, peer net.Addr, proto protocol.Type, mode protocol.Mode, in <-chan packet.Packet) ConnSocket {
	s := &server{ep: ep, peer: peer, proto: proto, mode: mode, in: in}
	s.state.Store(int32(StateEstablished))
	return s
}

func (s *server) Protocol() protocol.Type { return s.proto }
func (s *server) Mode() protocol.Mode     { return s.mode }
func (s *server) State() State            { return State(s.state.Load()) }
func (s *server) IsClosed() bool          { return s.State() == StateClosed }

// Connect is a no-op: the acceptor already completed the handshake before
// handing this socket to the session.
func (s *server) Connect(_ context.Context) error {
	return nil
}

func (s *server) sendRaw(pkt packet.Packet) error {
	raw, err := packet.Encode(pkt)
	if err != nil {
		return err
	}
	return s.ep.SendTo(raw, s.peer)
}

func (s *server) Send(_ context.Context, pkt packet.Packet) error {
	if s.IsClosed() {
		return ErrClosedSocket.Error(nil)
	}
	return s.sendRaw(pkt)
}

func (s *server) Recv(ctx context.Context) (packet.Packet, error) {
	if s.IsClosed() {
		return packet.Packet{}, ErrClosedSocket.Error(nil)
	}

	select {
	case <-ctx.Done():
		return packet.Packet{}, ctx.Err()
	case pkt, ok := <-s.in:
		if !ok {
			s.state.Store(int32(StateClosed))
			return packet.Packet{}, ErrClosedSocket.Error(nil)
		}

		if pkt.IsFIN() {
			if !pkt.IsACK() {
				_ = s.sendRaw(packet.Packet{Proto: s.proto, Mode: s.mode, FIN: true, ACK: true})
			}
			s.state.Store(int32(StateClosed))
		}

		return pkt, nil
	}
}

func (s *server) Disconnect(ctx context.Context) error {
	if s.State() == StateClosed {
		return nil
	}
	s.state.Store(int32(StateClosing))

	fin := packet.Packet{Proto: s.proto, Mode: s.mode, FIN: true}

	for attempt := 0; attempt < DisconnectRetries; attempt++ {
		if err := s.sendRaw(fin); err != nil {
			break
		}

		tctx, cancel := context.WithTimeout(ctx, DisconnectTimeout)
		pkt, err := s.waitOne(tctx)
		cancel()

		if err == nil && pkt.IsFIN() && pkt.IsACK() {
			break
		}
	}

	s.state.Store(int32(StateClosed))
	return nil
}

func (s *server) waitOne(ctx context.Context) (packet.Packet, error) {
	select {
	case <-ctx.Done():
		return packet.Packet{}, ctx.Err()
	case pkt, ok := <-s.in:
		if !ok {
			return packet.Packet{}, ErrClosedSocket.Error(nil)
		}
		return pkt, nil
	}
}
