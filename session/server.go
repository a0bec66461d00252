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

	"golang.org/x/sync/errgroup"

	"github.com/nabbar/udpxfer/acceptor"
	"github.com/nabbar/udpxfer/connsock"
	"github.com/nabbar/udpxfer/filestream"
	"github.com/nabbar/udpxfer/metrics"
	"github.com/nabbar/udpxfer/protocol"
)

// ServerConfig describes the storage root and tunables shared by every
// connection a Serve loop accepts.
type ServerConfig struct {
	StorageDir     string
	BytesPerSecond int
	Overwrite      bool
	Metrics        *metrics.Collectors
	Log            Logger
}

// Serve accepts connections from acc until ctx is cancelled, running one
// RunServerConn per connection under its own errgroup goroutine so a single
// misbehaving peer never takes down the others.
func Serve(ctx context.Context, acc *acceptor.Acceptor, cfg ServerConfig) error {
	grp, gctx := errgroup.WithContext(context.Background())

	for {
		select {
		case <-ctx.Done():
			_ = acc.Close()
			return grp.Wait()
		case sock, ok := <-acc.Accept():
			if !ok {
				return grp.Wait()
			}
			grp.Go(func() error {
				err := RunServerConn(gctx, sock, cfg)
				if err != nil {
					logf(cfg.Log, "connection ended with error", map[string]interface{}{"error": err.Error()})
				}
				return nil
			})
		}
	}
}

// RunServerConn drives one already-ESTABLISHED server connection: filename
// negotiation, local file open in the mirrored direction, then the data
// phase.
func RunServerConn(ctx context.Context, sock connsock.ConnSocket, cfg ServerConfig) error {
	col := orDefaultCollectors(cfg.Metrics)

	name, err := recvFilename(ctx, sock)
	if err != nil {
		return fmtErr("filename negotiation", err)
	}
	logf(cfg.Log, "filename negotiated", map[string]interface{}{"remote_name": name})

	path := filepath.Join(cfg.StorageDir, name)
	limiter := orDefaultLimiter(cfg.BytesPerSecond)

	// The server is the source for a DOWNLOAD and the sink for an UPLOAD:
	// the opposite of the client's role under the same Mode bit.
	isSender := sock.Mode() == protocol.ModeDownload

	var fs filestream.FileStream
	if isSender {
		fs, err = filestream.OpenReader(path, limiter)
	} else {
		fs, err = filestream.OpenWriter(path, cfg.Overwrite, limiter)
	}
	if err != nil {
		_ = sock.Disconnect(ctx)
		return fmtErr("open storage file", err)
	}
	defer func() { _ = fs.Close() }()

	return runCancelAware(ctx, sock, fs, isSender, col, cfg.Log)
}
