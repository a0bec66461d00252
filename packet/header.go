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

// Package packet implements the wire codec for the 6-byte transfer header:
// encode/decode only, no I/O, no retained state.
package packet

import (
	"github.com/nabbar/udpxfer/protocol"
)

// HeaderSize is the fixed on-wire header length in bytes.
const HeaderSize = 6

// MaxPayload is the largest payload LEN can express (10 bits).
const MaxPayload = 1023

// Packet is the decoded representation of one datagram: header fields plus
// the payload bytes. The zero value is a valid, empty SW data packet.
type Packet struct {
	Proto   protocol.Type
	Mode    protocol.Mode
	SYN     bool
	FIN     bool
	ACK     bool
	SeqNum  uint16
	AckNum  uint16
	Payload []byte
}

// IsSYN reports the SYN flag.
func (p Packet) IsSYN() bool { return p.SYN }

// IsFIN reports the FIN flag.
func (p Packet) IsFIN() bool { return p.FIN }

// IsACK reports the ACK flag.
func (p Packet) IsACK() bool { return p.ACK }

// ProtocolType returns the negotiated ARQ protocol carried on this packet.
func (p Packet) ProtocolType() protocol.Type { return p.Proto }

// TransferMode returns the direction bit carried on this packet.
func (p Packet) TransferMode() protocol.Mode { return p.Mode }

// Len returns the payload length, matching the wire LEN field.
func (p Packet) Len() int { return len(p.Payload) }

// Equal compares two packets field by field, including payload bytes. Used
// by round-trip tests asserting decode(encode(p)) == p.
func (p Packet) Equal(o Packet) bool {
	if p.Proto != o.Proto || p.Mode != o.Mode {
		return false
	}
	if p.SYN != o.SYN || p.FIN != o.FIN || p.ACK != o.ACK {
		return false
	}
	if p.SeqNum != o.SeqNum || p.AckNum != o.AckNum {
		return false
	}
	if len(p.Payload) != len(o.Payload) {
		return false
	}
	for i := range p.Payload {
		if p.Payload[i] != o.Payload[i] {
			return false
		}
	}
	return true
}
