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

package session

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/nabbar/udpxfer/connsock"
	"github.com/nabbar/udpxfer/engine"
	"github.com/nabbar/udpxfer/packet"
)

// sendFilename runs the filename negotiation from the initiating side
// (always the client): a single data packet at SEQ_NUM 0 carrying the UTF-8
// filename, retried exactly like a Stop-and-Wait data packet.
func sendFilename(ctx context.Context, sock connsock.ConnSocket, filename string) error {
	if filename == "" {
		return ErrInvalidFilename.Error(nil)
	}
	if len(filename) > packet.MaxPayload {
		return ErrFilenameTooLarge.Error(nil)
	}

	data := packet.Packet{
		Proto:   sock.Protocol(),
		Mode:    sock.Mode(),
		Payload: []byte(filename),
	}

	for attempt := 0; attempt < engine.RetransmissionRetries; attempt++ {
		if err := sock.Send(ctx, data); err != nil {
			return err
		}

		tctx, cancel := context.WithTimeout(ctx, engine.TimeoutInterval)
		ack, err := sock.Recv(tctx)
		cancel()

		if err == nil && ack.IsACK() && ack.AckNum == 0 {
			return nil
		}
	}

	return ErrNegotiationFailed.Error(nil)
}

// recvFilename awaits the client's filename packet and acknowledges it. The
// returned name is validated against path traversal before use.
func recvFilename(ctx context.Context, sock connsock.ConnSocket) (string, error) {
	pkt, err := sock.Recv(ctx)
	if err != nil {
		return "", err
	}

	name, err := sanitizeFilename(string(pkt.Payload))
	if err != nil {
		return "", err
	}

	reply := packet.Packet{Proto: sock.Protocol(), Mode: sock.Mode(), ACK: true, AckNum: 0}
	if err = sock.Send(ctx, reply); err != nil {
		return "", err
	}

	return name, nil
}

// sanitizeFilename rejects anything but a bare file name: no separators, no
// "..", never empty. The negotiated name is joined under the storage
// directory by the caller, so this is the only defense against escaping it.
func sanitizeFilename(name string) (string, error) {
	if name == "" {
		return "", ErrInvalidFilename.Error(nil)
	}
	if name != filepath.Base(name) || name == "." || name == ".." || strings.Contains(name, "..") {
		return "", ErrInvalidFilename.Error(nil)
	}
	return name, nil
}
