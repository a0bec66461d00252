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

package session

import (
	"github.com/nabbar/udpxfer/errors"
)

const (
	// ErrNegotiationFailed is surfaced when the filename exchange exhausts
	// its retransmission budget without a matching ACK.
	ErrNegotiationFailed errors.CodeError = iota + errors.MinPkgSession
	// ErrFilenameTooLarge rejects a filename that would not fit a single packet payload.
	ErrFilenameTooLarge
	// ErrInvalidFilename rejects a filename escaping the storage directory.
	ErrInvalidFilename
	// ErrCancelled is returned when ctx is cancelled mid-transfer after a
	// best-effort FIN has already been sent.
	ErrCancelled
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrNegotiationFailed)
	errors.RegisterIdFctMessage(ErrNegotiationFailed, getMessage)
	errors.RegisterIdFctMessage(ErrFilenameTooLarge, getMessage)
	errors.RegisterIdFctMessage(ErrInvalidFilename, getMessage)
	errors.RegisterIdFctMessage(ErrCancelled, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case ErrNegotiationFailed:
		return "filename negotiation exhausted its retransmission budget"
	case ErrFilenameTooLarge:
		return "filename does not fit in a single packet payload"
	case ErrInvalidFilename:
		return "filename is empty or escapes the storage directory"
	case ErrCancelled:
		return "transfer cancelled"
	}

	return ""
}
