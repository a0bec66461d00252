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
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/nabbar/udpxfer/config"
	"github.com/nabbar/udpxfer/connsock"
	"github.com/nabbar/udpxfer/metrics"
	"github.com/nabbar/udpxfer/protocol"
	"github.com/nabbar/udpxfer/session"
)

// RunTransfer resolves the transfer flag set, dials the server and drives
// one client session in mode. It is the shared body of the upload and
// download binaries, which differ only in the protocol Mode they negotiate.
func RunTransfer(cmd *cobra.Command, mode protocol.Mode, label string) error {
	cfg, err := config.ResolveTransfer(cmd.Flags())
	if err != nil {
		return NewArgError(err)
	}

	log, err := config.NewLogger(cmd.Context(), config.Level(cfg.Verbose, cfg.Quiet), cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	ctx, cancel := WithSignalCancel(cmd.Context())
	defer cancel()

	peer, err := net.ResolveUDPAddr("udp", cfg.HostPort())
	if err != nil {
		return NewArgError(err)
	}

	sock, err := connsock.NewClient("0.0.0.0:0", peer, cfg.Protocol, mode)
	if err != nil {
		return err
	}

	col := metrics.New()

	var bars *mpb.Progress
	if !cfg.Quiet {
		bars = mpb.NewWithContext(ctx)
	}

	err = session.RunClient(ctx, sock, session.ClientConfig{
		LocalDir:       cfg.Dir,
		LocalFile:      cfg.Name,
		RemoteName:     cfg.Name,
		BytesPerSecond: cfg.MaxRate,
		Overwrite:      cfg.Overwrite,
		Metrics:        col,
		Log:            SessionLogger(log),
		OnOpen:         AttachProgress(bars, label+" "+cfg.Name, cfg.Quiet),
	})

	if bars != nil {
		bars.Wait()
	}

	if err != nil {
		if ctx.Err() != nil {
			// a signal cancelled ctx: keep context.Canceled in the chain so
			// ExitCode reports a signalled shutdown.
			return fmt.Errorf("%s: %w: %w", label, err, ctx.Err())
		}
		return fmt.Errorf("%s: %w", label, err)
	}

	return nil
}
