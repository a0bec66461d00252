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

// Command download fetches a remote file from a running server.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/nabbar/udpxfer/config"
	"github.com/nabbar/udpxfer/internal/cliutil"
	"github.com/nabbar/udpxfer/protocol"
)

func main() {
	cmd := newRootCmd()
	ctx := context.Background()

	err := cmd.ExecuteContext(ctx)

	os.Exit(cliutil.ExitCode(ctx, err))
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "download",
		Short:         "Download a remote file from a udpxfer server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cliutil.RunTransfer(cmd, protocol.ModeDownload, "download")
		},
	}

	config.RegisterTransferFlags(cmd.Flags())

	return cmd
}
