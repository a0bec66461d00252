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
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/nabbar/udpxfer/filestream"
)

// AttachProgress returns a session.ClientConfig.OnOpen callback that renders
// a single mpb bar tracking fs's cumulative byte count against its size.
// Quiet suppresses the bar entirely, returning a no-op.
func AttachProgress(p *mpb.Progress, label string, quiet bool) func(fs filestream.FileStream) {
	if quiet || p == nil {
		return func(filestream.FileStream) {}
	}

	return func(fs filestream.FileStream) {
		total, err := fs.Size()
		if err != nil || total <= 0 {
			total = 0
		}

		bar := p.AddBar(total,
			mpb.PrependDecorators(decor.Name(label)),
			mpb.AppendDecorators(decor.Percentage()),
		)

		var last int64
		fs.OnProgress(func(current int64) {
			_ = bar.IncrInt64(current - last)
			last = current
		})
	}
}
