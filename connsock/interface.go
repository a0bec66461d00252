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

// Package connsock gives the client and server sides of one logical
// connection the same contract: connect, send, recv, disconnect, is_closed.
// The client variant owns a dedicated datagram endpoint; the server variant
// shares the acceptor's endpoint and reads from a flow-table queue.
package connsock

import (
	"context"
	"time"

	"github.com/nabbar/udpxfer/packet"
	"github.com/nabbar/udpxfer/protocol"
)

// State is the connection lifecycle position. Transitions are one-way:
// CONNECTING -> ESTABLISHED -> CLOSING -> CLOSED.
type State int32

const (
	StateConnecting State = iota
	StateEstablished
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateEstablished:
		return "ESTABLISHED"
	case StateClosing:
		return "CLOSING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Handshake timing, recommended values from the wire contract.
const (
	HandshakeTimeout = 1500 * time.Millisecond
	HandshakeRetries = 5

	DisconnectTimeout = 1 * time.Second
	DisconnectRetries = 5
)

// ConnSocket is the per-connection ordered packet channel consumed by a
// protocol engine or the session's filename negotiation step.
type ConnSocket interface {
	// Connect performs the client-side SYN handshake. No-op on the server
	// variant, which is already ESTABLISHED when handed to the session.
	Connect(ctx context.Context) error

	// Send forwards pkt to the peer. Fails with ErrClosedSocket once the
	// connection has reached CLOSED.
	Send(ctx context.Context, pkt packet.Packet) error

	// Recv suspends until a packet is available. On a FIN without ACK it
	// replies FIN|ACK and transitions to CLOSED before returning the
	// packet; the next call observes CLOSED via IsClosed.
	Recv(ctx context.Context) (packet.Packet, error)

	// Disconnect runs the teardown handshake, always ending in CLOSED even
	// if the peer never acknowledges.
	Disconnect(ctx context.Context) error

	// IsClosed reports whether the connection has reached CLOSED.
	IsClosed() bool

	// Protocol returns the ARQ protocol negotiated at handshake.
	Protocol() protocol.Type

	// Mode returns the negotiated transfer direction.
	Mode() protocol.Mode

	// State returns the current lifecycle state.
	State() State
}
