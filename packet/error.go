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
	"github.com/nabbar/udpxfer/errors"
)

const (
	// ErrMalformedPacket is returned by Decode on a truncated header or a
	// LEN field that disagrees with the bytes actually present. Callers at
	// the datagram layer drop the datagram and log at debug level; this
	// error is never surfaced to a session or CLI exit code.
	ErrMalformedPacket errors.CodeError = iota + errors.MinPkgPacket
	// ErrPayloadTooLarge is returned by Encode when payload exceeds MaxPayload.
	ErrPayloadTooLarge
	// ErrInvalidProtocol is returned by Encode for a PROTOCOL_TYPE this
	// implementation does not negotiate.
	ErrInvalidProtocol
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrMalformedPacket)
	errors.RegisterIdFctMessage(ErrMalformedPacket, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case ErrMalformedPacket:
		return "malformed packet: short header or LEN/payload mismatch"
	case ErrPayloadTooLarge:
		return "payload exceeds maximum of 1023 bytes"
	case ErrInvalidProtocol:
		return "packet carries an unnegotiated protocol type"
	}

	return ""
}
