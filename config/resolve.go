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
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nabbar/udpxfer/protocol"
)

// Common holds the flags every binary resolves, after an optional config
// file, UDPXFER_-prefixed environment variables and the CLI have all been
// consulted through viper, in increasing order of precedence.
type Common struct {
	Host      string
	Port      uint16
	Protocol  protocol.Type
	Verbose   bool
	Quiet     bool
	LogFile   string
	MaxRate   int
	Overwrite bool
}

// ServerConfig is the resolved flag set for the server command.
type ServerConfig struct {
	Common
	Storage string
}

// TransferConfig is the resolved flag set shared by upload and download.
type TransferConfig struct {
	Common
	Dir  string
	Name string
}

// newViper builds the viper instance every Resolve* function reads from.
// Precedence, lowest to highest: config file, UDPXFER_-prefixed environment
// variables, explicit CLI flags - viper's own BindPFlags/SetConfigFile
// ordering already gives flags the final word over a loaded config file.
func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("UDPXFER")
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	if file, err := flags.GetString("config"); err == nil && file != "" {
		v.SetConfigFile(file)
		if err = v.ReadInConfig(); err != nil {
			return nil, ErrConfigFile.Error(err)
		}
	}

	return v, nil
}

func resolveCommon(v *viper.Viper) (Common, error) {
	c := Common{
		Host:      v.GetString("host"),
		Port:      uint16(v.GetUint("port")),
		Verbose:   v.GetBool("verbose"),
		Quiet:     v.GetBool("quiet"),
		LogFile:   v.GetString("log-file"),
		MaxRate:   v.GetInt("max-rate"),
		Overwrite: v.GetBool("overwrite"),
	}

	if c.Host == "" {
		return c, ErrMissingHost.Error(nil)
	}
	if c.Port == 0 {
		return c, ErrInvalidPort.Error(nil)
	}

	proto, err := protocol.ParseType(v.GetString("protocol"))
	if err != nil {
		return c, ErrInvalidProtocol.Error(err)
	}
	c.Protocol = proto

	return c, nil
}

// ResolveServer binds flags through viper and validates the server's flag set.
func ResolveServer(flags *pflag.FlagSet) (ServerConfig, error) {
	v, err := newViper(flags)
	if err != nil {
		return ServerConfig{}, err
	}

	common, err := resolveCommon(v)
	if err != nil {
		return ServerConfig{}, err
	}

	storage := v.GetString("storage")
	if storage == "" {
		return ServerConfig{}, ErrMissingStorage.Error(nil)
	}

	return ServerConfig{Common: common, Storage: storage}, nil
}

// ResolveTransfer binds flags through viper and validates the upload/download flag set.
func ResolveTransfer(flags *pflag.FlagSet) (TransferConfig, error) {
	v, err := newViper(flags)
	if err != nil {
		return TransferConfig{}, err
	}

	common, err := resolveCommon(v)
	if err != nil {
		return TransferConfig{}, err
	}

	dir := v.GetString("dir")
	if dir == "" {
		return TransferConfig{}, ErrMissingDir.Error(nil)
	}

	name := v.GetString("name")
	if name == "" {
		return TransferConfig{}, ErrMissingName.Error(nil)
	}

	return TransferConfig{Common: common, Dir: dir, Name: name}, nil
}

// HostPort formats host:port for net.Dial / net.Listen style addresses.
func (c Common) HostPort() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
