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

// Package cliutil holds the argument-parsing, logging, signal and exit-code
// plumbing shared by the server, upload and download binaries.
package cliutil

import (
	"context"
	"errors"
)

// ArgError marks an error as an argument/flag-resolution failure, mapped to
// exit code 2 rather than the generic transport/IO exit code 1.
type ArgError struct {
	err error
}

func NewArgError(err error) error {
	if err == nil {
		return nil
	}
	return &ArgError{err: err}
}

func (e *ArgError) Error() string { return e.err.Error() }
func (e *ArgError) Unwrap() error { return e.err }

const (
	ExitOK        = 0
	ExitArgError  = 2
	ExitIOError   = 1
	ExitCancelled = 130
)

// ExitCode classifies err per the CLI's documented exit-code table: nil is
// success, an *ArgError is an argument error, a cancelled context is a
// signalled shutdown, anything else is a transport/IO failure.
func ExitCode(ctx context.Context, err error) int {
	if err == nil {
		return ExitOK
	}

	var argErr *ArgError
	if errors.As(err, &argErr) {
		return ExitArgError
	}

	if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		return ExitCancelled
	}

	return ExitIOError
}
