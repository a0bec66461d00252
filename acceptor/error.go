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

package acceptor

import (
	"github.com/nabbar/udpxfer/errors"
)

const (
	// ErrProtocolMismatch is sent as a FIN reply when an incoming SYN
	// carries a PROTOCOL_TYPE other than the acceptor's selector.
	ErrProtocolMismatch errors.CodeError = iota + errors.MinPkgAcceptor
	// ErrAcceptorClosed reports a closed acceptor. No function of this
	// package returns it: Close releases the endpoint and Run returns.
	ErrAcceptorClosed
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrProtocolMismatch)
	errors.RegisterIdFctMessage(ErrProtocolMismatch, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case ErrProtocolMismatch:
		return "peer requested a protocol the server is not configured for"
	case ErrAcceptorClosed:
		return "acceptor is closed"
	}

	return ""
}
