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

// Package config registers the CLI flag surface shared by the server,
// upload and download commands and resolves it (pflag + viper) into typed,
// validated configuration structs.
package config

import (
	"github.com/nabbar/udpxfer/errors"
)

const (
	ErrMissingHost errors.CodeError = iota + errors.MinPkgConfig
	ErrInvalidPort
	ErrMissingStorage
	ErrMissingDir
	ErrMissingName
	ErrInvalidProtocol
	ErrConfigFile
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrMissingHost)
	errors.RegisterIdFctMessage(ErrMissingHost, getMessage)
	errors.RegisterIdFctMessage(ErrInvalidPort, getMessage)
	errors.RegisterIdFctMessage(ErrMissingStorage, getMessage)
	errors.RegisterIdFctMessage(ErrMissingDir, getMessage)
	errors.RegisterIdFctMessage(ErrMissingName, getMessage)
	errors.RegisterIdFctMessage(ErrInvalidProtocol, getMessage)
	errors.RegisterIdFctMessage(ErrConfigFile, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case ErrMissingHost:
		return "host is required"
	case ErrInvalidPort:
		return "port must be between 1 and 65535"
	case ErrMissingStorage:
		return "storage directory is required"
	case ErrMissingDir:
		return "local directory is required"
	case ErrMissingName:
		return "remote file name is required"
	case ErrInvalidProtocol:
		return "protocol must be SW or GBN"
	case ErrConfigFile:
		return "failed to read the config file"
	}

	return ""
}
