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

package config

import (
	"github.com/spf13/pflag"
)

// RegisterCommonFlags defines the flags shared by every binary: peer
// address, negotiated protocol, verbosity, optional log file, an optional
// config file and the transfer-wide rate and overwrite policy.
func RegisterCommonFlags(flags *pflag.FlagSet) {
	flags.StringP("host", "H", "", "remote host to connect to, or local bind address for the server")
	flags.Uint16P("port", "p", 0, "UDP port")
	flags.StringP("protocol", "r", "GBN", "ARQ protocol: SW or GBN")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "only log warnings and errors")
	flags.String("log-file", "", "path to an additional log file")
	flags.String("config", "", "path to a config file (json, yaml or toml) providing any of these flags")
	flags.Int("max-rate", 0, "maximum transfer rate in bytes per second (0 = unlimited)")
	flags.Bool("overwrite", false, "allow overwriting a file that already exists at the write destination")
}

// RegisterServerFlags adds the storage-directory flag used by the server command.
func RegisterServerFlags(flags *pflag.FlagSet) {
	RegisterCommonFlags(flags)
	flags.StringP("storage", "s", "", "directory serving and receiving files")
}

// RegisterTransferFlags adds the local-directory and remote-name flags
// shared by the upload and download commands.
func RegisterTransferFlags(flags *pflag.FlagSet) {
	RegisterCommonFlags(flags)
	flags.StringP("dir", "d", "", "local directory holding the file")
	flags.StringP("name", "n", "", "remote file name to negotiate")
}
