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

package packet

import (
	"encoding/binary"

	"github.com/nabbar/udpxfer/protocol"
)

// bit layout of the first 2 header bytes:
//
//	byte 0: PP M S F A LL  (PP=protocol type, M=MODE, S=SYN, F=FIN, A=ACK, LL=high 2 bits of LEN)
//	byte 1: LLLLLLLL       (low 8 bits of LEN)
//
// As a big-endian 16-bit word over bytes 0-1:
//
//	bit 15-14 PROTOCOL_TYPE
//	bit 13    MODE
//	bit 12    SYN
//	bit 11    FIN
//	bit 10    ACK
//	bit 9-0   LEN (10 bits)
const (
	shiftProto = 14
	shiftMode  = 13
	shiftSYN   = 12
	shiftFIN   = 11
	shiftACK   = 10
	maskLen    = 0x03FF
)

// Encode serializes pkt into its wire form: 6-byte header followed by the
// payload. It rejects payloads over MaxPayload and protocol types the
// implementation does not negotiate.
func Encode(pkt Packet) ([]byte, error) {
	if len(pkt.Payload) > MaxPayload {
		return nil, ErrPayloadTooLarge.Error(nil)
	}
	if !pkt.Proto.Valid() {
		return nil, ErrInvalidProtocol.Error(nil)
	}

	buf := make([]byte, HeaderSize+len(pkt.Payload))

	var word uint16
	word |= uint16(pkt.Proto&0x3) << shiftProto
	word |= uint16(pkt.Mode&0x1) << shiftMode
	if pkt.SYN {
		word |= 1 << shiftSYN
	}
	if pkt.FIN {
		word |= 1 << shiftFIN
	}
	if pkt.ACK {
		word |= 1 << shiftACK
	}
	word |= uint16(len(pkt.Payload)) & maskLen

	binary.BigEndian.PutUint16(buf[0:2], word)
	binary.BigEndian.PutUint16(buf[2:4], pkt.SeqNum)
	binary.BigEndian.PutUint16(buf[4:6], pkt.AckNum)
	copy(buf[HeaderSize:], pkt.Payload)

	return buf, nil
}

// Decode parses a raw datagram into a Packet. It fails with MalformedPacket
// when the input is shorter than HeaderSize or when the declared LEN does
// not match the number of bytes following the header.
func Decode(raw []byte) (Packet, error) {
	if len(raw) < HeaderSize {
		return Packet{}, ErrMalformedPacket.Error(nil)
	}

	word := binary.BigEndian.Uint16(raw[0:2])
	length := int(word & maskLen)

	if len(raw)-HeaderSize != length {
		return Packet{}, ErrMalformedPacket.Error(nil)
	}

	pkt := Packet{
		Proto:  protocol.Type((word >> shiftProto) & 0x3),
		Mode:   protocol.Mode((word >> shiftMode) & 0x1),
		SYN:    (word>>shiftSYN)&0x1 == 1,
		FIN:    (word>>shiftFIN)&0x1 == 1,
		ACK:    (word>>shiftACK)&0x1 == 1,
		SeqNum: binary.BigEndian.Uint16(raw[2:4]),
		AckNum: binary.BigEndian.Uint16(raw[4:6]),
	}

	if length > 0 {
		pkt.Payload = make([]byte, length)
		copy(pkt.Payload, raw[HeaderSize:])
	}

	return pkt, nil
}
