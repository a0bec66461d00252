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

package filestream_test

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/nabbar/udpxfer/filestream"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FileStream", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "filestream-*")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(dir)
	})

	It("reads a file back in MaxChunk-sized pieces ending in EOF", func() {
		path := filepath.Join(dir, "source.bin")
		data := make([]byte, filestream.MaxChunk*3+17)
		_, _ = rand.Read(data)
		Expect(os.WriteFile(path, data, 0o644)).To(Succeed())

		fs, err := filestream.OpenReader(path, nil)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = fs.Close() }()

		var got []byte
		for {
			chunk, err := fs.ReadChunk()
			Expect(err).ToNot(HaveOccurred())
			if len(chunk) == 0 {
				break
			}
			Expect(len(chunk) <= filestream.MaxChunk).To(BeTrue())
			got = append(got, chunk...)
		}

		Expect(bytes.Equal(got, data)).To(BeTrue())
	})

	It("fails with FileNotFound opening a reader on a missing path", func() {
		_, err := filestream.OpenReader(filepath.Join(dir, "missing.bin"), nil)
		Expect(err).To(HaveOccurred())
	})

	It("fails with AlreadyExists opening a writer without overwrite", func() {
		path := filepath.Join(dir, "dest.bin")
		Expect(os.WriteFile(path, []byte("x"), 0o644)).To(Succeed())

		_, err := filestream.OpenWriter(path, false, nil)
		Expect(err).To(HaveOccurred())
	})

	It("allows overwrite when the policy permits it", func() {
		path := filepath.Join(dir, "dest.bin")
		Expect(os.WriteFile(path, []byte("x"), 0o644)).To(Succeed())

		fs, err := filestream.OpenWriter(path, true, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(fs.WriteChunk([]byte("new content"))).To(Succeed())
		Expect(fs.Close()).To(Succeed())

		got, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(got)).To(Equal("new content"))
	})

	It("writes chunks and flushes so the bytes are durable before Close", func() {
		path := filepath.Join(dir, "written.bin")
		fs, err := filestream.OpenWriter(path, false, nil)
		Expect(err).ToNot(HaveOccurred())

		Expect(fs.WriteChunk([]byte("hello "))).To(Succeed())
		Expect(fs.WriteChunk([]byte("world"))).To(Succeed())

		got, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(got)).To(Equal("hello world"))

		Expect(fs.Close()).To(Succeed())
	})

	It("reports size and drives the progress callback while reading", func() {
		path := filepath.Join(dir, "progress.bin")
		data := make([]byte, filestream.MaxChunk*2+5)
		_, _ = rand.Read(data)
		Expect(os.WriteFile(path, data, 0o644)).To(Succeed())

		fs, err := filestream.OpenReader(path, nil)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = fs.Close() }()

		size, err := fs.Size()
		Expect(err).ToNot(HaveOccurred())
		Expect(size).To(Equal(int64(len(data))))

		var last int64
		fs.OnProgress(func(current int64) { last = current })

		for {
			chunk, err := fs.ReadChunk()
			Expect(err).ToNot(HaveOccurred())
			if len(chunk) == 0 {
				break
			}
		}

		Expect(last).To(Equal(int64(len(data))))
	})
})
