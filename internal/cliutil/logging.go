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

package cliutil

import (
	"github.com/nabbar/udpxfer/acceptor"
	"github.com/nabbar/udpxfer/logger"
	"github.com/nabbar/udpxfer/session"
)

// SessionLogger adapts a logger.Logger into the session package's structured
// Logger func, logging every event at Info.
func SessionLogger(l logger.Logger) session.Logger {
	if l == nil {
		return nil
	}
	return func(msg string, fields map[string]interface{}) {
		l.Info(msg, fields)
	}
}

// AcceptorLogger adapts a logger.Logger into the acceptor package's Logger
// func, logging every dropped/malformed datagram at Debug.
func AcceptorLogger(l logger.Logger) acceptor.Logger {
	if l == nil {
		return nil
	}
	return func(msg string, fields map[string]interface{}) {
		l.Debug(msg, fields)
	}
}
