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

package filestream

import (
	"context"
	"errors"
	"io"
	"os"

	"golang.org/x/time/rate"

	"github.com/nabbar/udpxfer/file/progress"
)

type fileStream struct {
	p       progress.Progress
	limiter *rate.Limiter
}

// OpenReader opens path for reading, the UPLOAD source (client) or
// DOWNLOAD source (server). Fails with ErrFileNotFound if path is absent.
func OpenReader(path string, limiter *rate.Limiter) (FileStream, error) {
	p, err := progress.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileNotFound.Error(err)
		}
		return nil, ErrIO.Error(err)
	}

	return &fileStream{p: p, limiter: orDefault(limiter)}, nil
}

// OpenWriter opens path for writing, the DOWNLOAD destination (client) or
// UPLOAD destination (server). Fails with ErrAlreadyExists when the file is
// already present and overwrite is false.
func OpenWriter(path string, overwrite bool, limiter *rate.Limiter) (FileStream, error) {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return nil, ErrAlreadyExists.Error(nil)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, ErrIO.Error(err)
		}
	}

	p, err := progress.Create(path)
	if err != nil {
		return nil, ErrIO.Error(err)
	}

	return &fileStream{p: p, limiter: orDefault(limiter)}, nil
}

func orDefault(l *rate.Limiter) *rate.Limiter {
	if l == nil {
		return NewLimiter(0)
	}
	return l
}

func (f *fileStream) ReadChunk() ([]byte, error) {
	if err := f.limiter.WaitN(context.Background(), MaxChunk); err != nil {
		return nil, ErrIO.Error(err)
	}

	buf := make([]byte, MaxChunk)
	n, err := f.p.Read(buf)

	if err != nil && err != io.EOF {
		return nil, ErrIO.Error(err)
	}
	if n == 0 {
		return nil, nil
	}

	return buf[:n], nil
}

func (f *fileStream) WriteChunk(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	if err := f.limiter.WaitN(context.Background(), len(b)); err != nil {
		return ErrIO.Error(err)
	}

	if _, err := f.p.Write(b); err != nil {
		return ErrIO.Error(err)
	}

	return ErrIOOrNil(f.p.Sync())
}

// ErrIOOrNil wraps a non-nil sync/flush error as ErrIO, passing nil through.
func ErrIOOrNil(err error) error {
	if err == nil {
		return nil
	}
	return ErrIO.Error(err)
}

func (f *fileStream) Close() error {
	return f.p.Close()
}

func (f *fileStream) Size() (int64, error) {
	fi, err := f.p.Stat()
	if err != nil {
		return 0, ErrIO.Error(err)
	}
	return fi.Size(), nil
}

func (f *fileStream) OnProgress(fct func(current int64)) {
	if fct == nil {
		return
	}
	var total int64
	f.p.RegisterFctIncrement(func(size int64) {
		total += size
		fct(total)
	})
}
