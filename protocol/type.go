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

// Package protocol defines the ARQ protocol and transfer-direction enums
// shared by every packet, engine and CLI flag in the transport.
package protocol

import "strings"

// Type selects the ARQ recovery strategy negotiated at handshake. It occupies
// the 2-bit PROTOCOL_TYPE field of the packet header.
type Type uint8

const (
	// TypeSW is Stop-and-Wait: at most one outstanding data packet.
	TypeSW Type = iota
	// TypeGBN is Go-Back-N: a fixed-size sliding window of outstanding packets.
	TypeGBN
	// typeReserved2 and typeReserved3 are unused PROTOCOL_TYPE values.
	typeReserved2
	typeReserved3
)

func (t Type) String() string {
	switch t {
	case TypeSW:
		return "SW"
	case TypeGBN:
		return "GBN"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether t is a protocol this implementation negotiates.
func (t Type) Valid() bool {
	return t == TypeSW || t == TypeGBN
}

// ParseType accepts "SW" / "GBN", case-insensitive, matching the CLI's
// `-r PROTOCOL` flag.
func ParseType(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SW":
		return TypeSW, nil
	case "GBN":
		return TypeGBN, nil
	default:
		return 0, ErrUnknownType.Error(nil)
	}
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	v, e := ParseType(string(b))
	if e != nil {
		return e
	}
	*t = v
	return nil
}

// Mode carries the MODE bit: the direction of the file relative to the peer
// that is not the server, i.e. which side is the source of the bytes.
type Mode uint8

const (
	// ModeDownload: the server is the source, the client the sink.
	ModeDownload Mode = iota
	// ModeUpload: the client is the source, the server the sink.
	ModeUpload
)

func (m Mode) String() string {
	switch m {
	case ModeDownload:
		return "DOWNLOAD"
	case ModeUpload:
		return "UPLOAD"
	default:
		return "UNKNOWN"
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DOWNLOAD":
		return ModeDownload, nil
	case "UPLOAD":
		return ModeUpload, nil
	default:
		return 0, ErrUnknownMode.Error(nil)
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, e := ParseMode(string(b))
	if e != nil {
		return e
	}
	*m = v
	return nil
}
