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

// Package datagram binds a single UDP-like listening endpoint and exposes
// non-blocking send and blocking receive over it. It carries no protocol
// semantics: callers are responsible for framing, retries and demultiplexing.
package datagram

import (
	"net"
)

// RecvBufferSize is the size of the buffer used for each recvfrom(2) call.
// Any datagram larger than this is truncated by the kernel; the codec above
// will reject it as malformed since its declared LEN cannot match.
const RecvBufferSize = 2048

// Endpoint is a bound datagram socket shared by every connection multiplexed
// over it. The acceptor and flow table sit on top of Endpoint on the server
// side; a client connection socket owns one Endpoint exclusively.
type Endpoint interface {
	// LocalAddr returns the address this endpoint is bound to.
	LocalAddr() net.Addr

	// SendTo is a best-effort, non-blocking write of b to peer. It may fail
	// transiently (e.g. ENOBUFS) and never retries internally; callers own
	// retry policy.
	SendTo(b []byte, peer net.Addr) error

	// RecvFrom suspends until a datagram arrives or the endpoint is closed.
	// Returns the raw bytes (up to RecvBufferSize) and the sender's address.
	RecvFrom() ([]byte, net.Addr, error)

	// Close releases the underlying socket. RecvFrom unblocks with an error.
	Close() error
}

// ResolveUDPAddr parses host:port into a *net.UDPAddr, the address type
// every Endpoint implementation in this package works with.
func ResolveUDPAddr(hostPort string) (*net.UDPAddr, error) {
	addr, err := net.ResolveUDPAddr("udp", hostPort)
	if err != nil {
		return nil, ErrResolveAddr.Error(err)
	}
	return addr, nil
}
