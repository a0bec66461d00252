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

// client is the client-side ConnSocket: it owns its datagram endpoint and
// talks to exactly one peer. A single background goroutine reads from the
// endpoint for the socket's lifetime so Connect/Recv never race each other
// on the same underlying net.UDPConn.
type client struct {
	ep    datagram.Endpoint
	peer  net.Addr
	proto protocol.Type
	mode  protocol.Mode
	state atomic.Int32

	in chan packet.Packet
}

// NewClient binds a fresh endpoint and wraps it as a not-yet-connected
// ConnSocket targeting peer with the given protocol and mode.
func NewClient(localHostPort string, peer net.Addr, proto protocol.Type, mode protocol.Mode) (ConnSocket, error) {
	ep, err := datagram.Bind(localHostPort)
	if err != nil {
		return nil, err
	}

	c := &client{
		ep:    ep,
		peer:  peer,
		proto: proto,
		mode:  mode,
		in:    make(chan packet.Packet, 16),
	}
	c.state.Store(int32(StateConnecting))

	go c.readLoop()

	return c, nil
}

// readLoop owns the only RecvFrom call on this endpoint. Datagrams from an
// address other than peer, or that fail to decode, are dropped silently.
func (c *client) readLoop() {
	for {
		raw, from, err := c.ep.RecvFrom()
		if err != nil {
			return
		}
		if from.String() != c.peer.String() {
			continue
		}

		pkt, err := packet.Decode(raw)
		if err != nil {
			continue
		}

		select {
		case c.in <- pkt:
		default:
			// inbound queue saturated: drop, sender's own timer recovers.
		}
	}
}

func (c *client) Protocol() protocol.Type { return c.proto }
func (c *client) Mode() protocol.Mode     { return c.mode }
func (c *client) State() State            { return State(c.state.Load()) }
func (c *client) IsClosed() bool          { return c.State() == StateClosed }

func (c *client) sendRaw(pkt packet.Packet) error {
	raw, err := packet.Encode(pkt)
	if err != nil {
		return err
	}
	return c.ep.SendTo(raw, c.peer)
}

func (c *client) waitPacket(ctx context.Context) (packet.Packet, error) {
	select {
	case <-ctx.Done():
		return packet.Packet{}, ctx.Err()
	case pkt := <-c.in:
		return pkt, nil
	}
}

func (c *client) Connect(ctx context.Context) error {
	syn := packet.Packet{Proto: c.proto, Mode: c.mode, SYN: true}

	for attempt := 0; attempt < HandshakeRetries; attempt++ {
		if err := c.sendRaw(syn); err != nil {
			return err
		}

		tctx, cancel := context.WithTimeout(ctx, HandshakeTimeout)
		pkt, err := c.waitPacket(tctx)
		cancel()

		if err == nil && pkt.IsSYN() && pkt.IsACK() && pkt.ProtocolType() == c.proto {
			c.state.Store(int32(StateEstablished))
			return nil
		}
	}

	return ErrHandshakeFailed.Error(nil)
}

func (c *client) Send(_ context.Context, pkt packet.Packet) error {
	if c.IsClosed() {
		return ErrClosedSocket.Error(nil)
	}
	return c.sendRaw(pkt)
}

func (c *client) Recv(ctx context.Context) (packet.Packet, error) {
	if c.IsClosed() {
		return packet.Packet{}, ErrClosedSocket.Error(nil)
	}

	pkt, err := c.waitPacket(ctx)
	if err != nil {
		return packet.Packet{}, err
	}

	if pkt.IsFIN() {
		if !pkt.IsACK() {
			_ = c.sendRaw(packet.Packet{Proto: c.proto, Mode: c.mode, FIN: true, ACK: true})
		}
		c.state.Store(int32(StateClosed))
	}

	return pkt, nil
}

func (c *client) Disconnect(ctx context.Context) error {
	if c.State() == StateClosed {
		return nil
	}
	c.state.Store(int32(StateClosing))

	fin := packet.Packet{Proto: c.proto, Mode: c.mode, FIN: true}

	for attempt := 0; attempt < DisconnectRetries; attempt++ {
		if err := c.sendRaw(fin); err != nil {
			break
		}

		tctx, cancel := context.WithTimeout(ctx, DisconnectTimeout)
		pkt, err := c.waitPacket(tctx)
		cancel()

		if err == nil && pkt.IsFIN() && pkt.IsACK() {
			break
		}
	}

	c.state.Store(int32(StateClosed))
	_ = c.ep.Close()
	return nil
}
