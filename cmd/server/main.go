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

// Command server listens on a UDP port and serves uploads/downloads
// negotiated by connecting clients.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nabbar/udpxfer/acceptor"
	"github.com/nabbar/udpxfer/config"
	"github.com/nabbar/udpxfer/internal/cliutil"
	"github.com/nabbar/udpxfer/metrics"
	"github.com/nabbar/udpxfer/session"
)

func main() {
	cmd := newRootCmd()
	ctx := context.Background()

	err := cmd.ExecuteContext(ctx)

	os.Exit(cliutil.ExitCode(ctx, err))
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Serve file uploads and downloads over UDP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServer,
	}

	config.RegisterServerFlags(cmd.Flags())

	return cmd
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.ResolveServer(cmd.Flags())
	if err != nil {
		return cliutil.NewArgError(err)
	}

	log, err := config.NewLogger(cmd.Context(), config.Level(cfg.Verbose, cfg.Quiet), cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	ctx, cancel := cliutil.WithSignalCancel(cmd.Context())
	defer cancel()

	col := metrics.New()

	acc, err := acceptor.New(cfg.HostPort(), cfg.Protocol, col, cliutil.AcceptorLogger(log))
	if err != nil {
		return err
	}

	log.Info("server listening", map[string]interface{}{
		"address":  cfg.HostPort(),
		"protocol": cfg.Protocol.String(),
		"storage":  cfg.Storage,
	})

	go acc.Run(ctx)

	err = session.Serve(ctx, acc, session.ServerConfig{
		StorageDir:     cfg.Storage,
		BytesPerSecond: cfg.MaxRate,
		Overwrite:      cfg.Overwrite,
		Metrics:        col,
		Log:            cliutil.SessionLogger(log),
	})
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	// Serve only returns once ctx is cancelled by a signal; report it so
	// ExitCode maps the shutdown to ExitCancelled.
	return ctx.Err()
}
