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

package datagram

import (
	"github.com/nabbar/udpxfer/errors"
)

const (
	// ErrResolveAddr wraps a net.ResolveUDPAddr failure.
	ErrResolveAddr errors.CodeError = iota + errors.MinPkgDatagram
	// ErrListen wraps a net.ListenUDP failure.
	ErrListen
	// ErrClosed is returned by SendTo/RecvFrom once Close has been called.
	ErrClosed
	// ErrSend wraps a transient write failure from SendTo.
	ErrSend
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrResolveAddr)
	errors.RegisterIdFctMessage(ErrResolveAddr, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case ErrResolveAddr:
		return "cannot resolve UDP address"
	case ErrListen:
		return "cannot bind UDP listening endpoint"
	case ErrClosed:
		return "endpoint is closed"
	case ErrSend:
		return "transient failure sending datagram"
	}

	return ""
}
