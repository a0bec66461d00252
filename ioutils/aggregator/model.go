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

package aggregator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrInvalidWriter is returned by New when Config.FctWriter is nil.
	ErrInvalidWriter = errors.New("invalid writer")

	// ErrStillRunning is returned by Start when the aggregator is already running.
	ErrStillRunning = errors.New("still running")

	// ErrClosedResources is returned by Write once the aggregator has been closed.
	ErrClosedResources = errors.New("closed resources")
)

// Aggregator serializes concurrent Write calls onto a single writer function,
// running it from one dedicated goroutine so FctWriter is never called
// concurrently with itself.
type Aggregator interface {
	// Start launches the consumer goroutine. Safe to call once per instance.
	Start(ctx context.Context) error

	// Close stops the consumer goroutine and releases the write channel.
	Close() error

	// Write enqueues p for FctWriter. Blocks while the buffer is full.
	Write(p []byte) (n int, err error)

	// SetLoggerError sets the function used to report write/async errors.
	SetLoggerError(fct func(msg string, err ...error))
}

type agg struct {
	cfg Config

	mw sync.Mutex
	ch chan []byte

	running atomic.Bool
	cancel  context.CancelFunc

	le atomic.Value // func(msg string, err ...error)
}

// New creates a new Aggregator instance with the given configuration.
func New(ctx context.Context, cfg Config) (Aggregator, error) {
	if cfg.FctWriter == nil {
		return nil, ErrInvalidWriter
	}

	if cfg.BufWriter < 1 {
		cfg.BufWriter = 1
	}

	return &agg{cfg: cfg}, nil
}

func (a *agg) logError(msg string, err ...error) {
	if fct, ok := a.le.Load().(func(msg string, err ...error)); ok && fct != nil {
		fct(msg, err...)
	}
}

func (a *agg) SetLoggerError(fct func(msg string, err ...error)) {
	a.le.Store(fct)
}

func (a *agg) Start(ctx context.Context) error {
	a.mw.Lock()
	defer a.mw.Unlock()

	if a.running.Load() {
		return ErrStillRunning
	}

	if ctx == nil {
		ctx = context.Background()
	}

	cctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.ch = make(chan []byte, a.cfg.BufWriter)
	a.running.Store(true)

	go a.run(cctx)

	return nil
}

func (a *agg) run(ctx context.Context) {
	defer a.running.Store(false)

	var asyncTick, syncTick <-chan time.Time

	if a.cfg.AsyncTimer > 0 && a.cfg.AsyncFct != nil {
		t := time.NewTicker(a.cfg.AsyncTimer)
		defer t.Stop()
		asyncTick = t.C
	}

	if a.cfg.SyncTimer > 0 && a.cfg.SyncFct != nil {
		t := time.NewTicker(a.cfg.SyncTimer)
		defer t.Stop()
		syncTick = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-a.ch:
			if !ok {
				return
			}
			if _, e := a.cfg.FctWriter(p); e != nil {
				a.logError("aggregator write", e)
			}
		case <-asyncTick:
			go a.cfg.AsyncFct(ctx)
		case <-syncTick:
			a.cfg.SyncFct(ctx)
		}
	}
}

func (a *agg) Close() error {
	a.mw.Lock()
	defer a.mw.Unlock()

	if !a.running.Load() {
		return nil
	}

	a.cancel()
	a.running.Store(false)

	return nil
}

func (a *agg) Write(p []byte) (n int, err error) {
	if !a.running.Load() {
		return 0, ErrClosedResources
	}

	b := make([]byte, len(p))
	copy(b, p)

	select {
	case a.ch <- b:
		return len(p), nil
	default:
	}

	// buffer full: block, but bail out if the aggregator is closed meanwhile
	select {
	case a.ch <- b:
		return len(p), nil
	case <-time.After(5 * time.Second):
		return 0, ErrClosedResources
	}
}
