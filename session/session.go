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

// Package session orchestrates one end-to-end file transfer on top of an
// already-ESTABLISHED connsock.ConnSocket: filename negotiation, then the
// data phase run by whichever ARQ engine (sw or gbn) the socket negotiated.
package session

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/nabbar/udpxfer/connsock"
	"github.com/nabbar/udpxfer/engine/gbn"
	"github.com/nabbar/udpxfer/engine/sw"
	"github.com/nabbar/udpxfer/filestream"
	"github.com/nabbar/udpxfer/metrics"
	"github.com/nabbar/udpxfer/protocol"
)

// Logger receives one structured line per session lifecycle event, or nil
// to disable this package's logging.
type Logger func(msg string, fields map[string]interface{})

func logf(log Logger, msg string, fields map[string]interface{}) {
	if log != nil {
		log(msg, fields)
	}
}

// runEngine dispatches to the negotiated ARQ implementation.
func runEngine(ctx context.Context, sock connsock.ConnSocket, fs filestream.FileStream, isSender bool, col *metrics.Collectors, log Logger) error {
	switch sock.Protocol() {
	case protocol.TypeGBN:
		return gbn.Run(ctx, sock, fs, isSender, col, gbnLogger(log))
	default:
		return sw.Run(ctx, sock, fs, isSender, col, swLogger(log))
	}
}

func swLogger(log Logger) sw.Logger {
	if log == nil {
		return nil
	}
	return sw.Logger(log)
}

func gbnLogger(log Logger) gbn.Logger {
	if log == nil {
		return nil
	}
	return gbn.Logger(log)
}

// runCancelAware wraps the data phase so a cancelled ctx still attempts a
// best-effort FIN before ErrCancelled is reported, instead of leaving the
// peer to discover the loss only via its own timeout budget.
func runCancelAware(ctx context.Context, sock connsock.ConnSocket, fs filestream.FileStream, isSender bool, col *metrics.Collectors, log Logger) error {
	err := runEngine(ctx, sock, fs, isSender, col, log)
	if err != nil && errors.Is(ctx.Err(), context.Canceled) {
		_ = sock.Disconnect(context.Background())
		return ErrCancelled.Error(nil)
	}
	return err
}

func orDefaultCollectors(col *metrics.Collectors) *metrics.Collectors {
	if col != nil {
		return col
	}
	return metrics.Default
}

func orDefaultLimiter(bytesPerSecond int) *rate.Limiter {
	return filestream.NewLimiter(bytesPerSecond)
}

func fmtErr(prefix string, err error) error {
	return fmt.Errorf("%s: %w", prefix, err)
}
