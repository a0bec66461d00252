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

// Package filestream is the only file-I/O surface the protocol engines
// consume: open, chunked read, chunked write, close. It wraps
// github.com/nabbar/udpxfer/file/progress for buffered, flush-on-write
// access and optionally throttles throughput with golang.org/x/time/rate.
package filestream

import (
	"golang.org/x/time/rate"
)

// MaxChunk is the largest chunk ReadChunk ever returns, chosen comfortably
// under the wire's 1023-byte payload ceiling.
const MaxChunk = 1000

// FileStream is consumed by the SW and GBN engines; they never touch
// *os.File or the filesystem directly.
type FileStream interface {
	// ReadChunk returns up to MaxChunk bytes. A zero-length, nil-error
	// result signals EOF.
	ReadChunk() ([]byte, error)

	// WriteChunk appends b to the file and flushes.
	WriteChunk(b []byte) error

	// Close releases the underlying file handle.
	Close() error

	// Size returns the current on-disk size of the underlying file, for
	// callers that need a transfer total (e.g. a progress bar) up front.
	Size() (int64, error)

	// OnProgress registers fct to be called with the cumulative byte count
	// every time a chunk is read or written. A nil fct is ignored.
	OnProgress(fct func(current int64))
}

// NewLimiter returns a limiter that throttles WriteChunk/ReadChunk to at
// most bytesPerSecond, shared by every chunk of the stream. A
// bytesPerSecond of zero or less gives an unlimited limiter, as does
// passing a nil *rate.Limiter to OpenReader/OpenWriter.
func NewLimiter(bytesPerSecond int) *rate.Limiter {
	if bytesPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, MaxChunk)
	}
	return rate.NewLimiter(rate.Limit(bytesPerSecond), MaxChunk)
}
