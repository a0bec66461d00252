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
	"context"
	"path/filepath"

	"github.com/nabbar/udpxfer/connsock"
	"github.com/nabbar/udpxfer/filestream"
	"github.com/nabbar/udpxfer/metrics"
	"github.com/nabbar/udpxfer/protocol"
)

// ClientConfig describes one client-initiated transfer: which local file to
// read or write, and the remote name to negotiate.
type ClientConfig struct {
	LocalDir       string
	LocalFile      string
	RemoteName     string
	BytesPerSecond int
	Overwrite      bool
	Metrics        *metrics.Collectors
	Log            Logger

	// OnOpen, when set, is called once the local file is open and before
	// the data phase starts, so callers can attach a progress indicator.
	OnOpen func(fs filestream.FileStream)
}

// RunClient drives the handshake, filename negotiation and data phase for a
// single client connection. sock must not yet be connected.
func RunClient(ctx context.Context, sock connsock.ConnSocket, cfg ClientConfig) error {
	col := orDefaultCollectors(cfg.Metrics)

	if err := sock.Connect(ctx); err != nil {
		return fmtErr("handshake", err)
	}
	logf(cfg.Log, "handshake established", map[string]interface{}{"protocol": sock.Protocol().String(), "mode": sock.Mode().String()})

	if err := sendFilename(ctx, sock, cfg.RemoteName); err != nil {
		return fmtErr("filename negotiation", err)
	}
	logf(cfg.Log, "filename negotiated", map[string]interface{}{"remote_name": cfg.RemoteName})

	path := filepath.Join(cfg.LocalDir, cfg.LocalFile)
	limiter := orDefaultLimiter(cfg.BytesPerSecond)

	isSender := sock.Mode() == protocol.ModeUpload

	var fs filestream.FileStream
	var err error
	if isSender {
		fs, err = filestream.OpenReader(path, limiter)
	} else {
		fs, err = filestream.OpenWriter(path, cfg.Overwrite, limiter)
	}
	if err != nil {
		_ = sock.Disconnect(ctx)
		return fmtErr("open local file", err)
	}
	defer func() { _ = fs.Close() }()

	if cfg.OnOpen != nil {
		cfg.OnOpen(fs)
	}

	return runCancelAware(ctx, sock, fs, isSender, col, cfg.Log)
}
