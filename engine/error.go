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

// Package engine holds the error codes and tunables shared by the SW and
// GBN sender/receiver implementations in their respective subpackages.
package engine

import (
	"time"

	"github.com/nabbar/udpxfer/errors"
)

const (
	// TimeoutInterval bounds how long a sender waits for an ACK before
	// retransmitting.
	TimeoutInterval = 750 * time.Millisecond

	// RetransmissionRetries is how many consecutive timeouts without a
	// matching ACK surface PeerUnresponsive.
	RetransmissionRetries = 10

	// Window is the Go-Back-N sender window size W.
	Window = 8
)

const (
	// ErrPeerUnresponsive is surfaced after RetransmissionRetries
	// consecutive timeouts.
	ErrPeerUnresponsive errors.CodeError = iota + errors.MinPkgEngine
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrPeerUnresponsive)
	errors.RegisterIdFctMessage(ErrPeerUnresponsive, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case ErrPeerUnresponsive:
		return "peer stopped acknowledging: retransmission budget exhausted"
	}

	return ""
}
