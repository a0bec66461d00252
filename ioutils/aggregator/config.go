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
 */

// Package aggregator serializes concurrent writes onto a single output
// function through a buffered channel and one consumer goroutine.
package aggregator

import (
	"context"
	"time"
)

// Config defines the configuration for creating a new Aggregator.
type Config struct {
	// AsyncTimer specifies the interval for calling AsyncFct. Disabled if <= 0.
	AsyncTimer time.Duration

	// AsyncMax is kept for wire-compatibility with callers; async calls always
	// run detached from the write loop so this only caps how many can be in
	// flight at once (0 or negative: unbounded).
	AsyncMax int

	// AsyncFct is called periodically, detached from the write loop.
	AsyncFct func(ctx context.Context)

	// SyncTimer specifies the interval for calling SyncFct. Disabled if <= 0.
	SyncTimer time.Duration

	// SyncFct is called periodically on the same goroutine as FctWriter, so it
	// can safely touch state FctWriter owns (e.g. detect file rotation).
	SyncFct func(ctx context.Context)

	// BufWriter is the channel capacity for pending writes. Defaults to 1.
	BufWriter int

	// FctWriter receives every buffered write, one at a time.
	FctWriter func(p []byte) (n int, err error)
}
