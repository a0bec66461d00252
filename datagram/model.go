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

package datagram

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/nabbar/udpxfer/metrics"
)

type endpoint struct {
	conn   *net.UDPConn
	closed atomic.Bool
	mu     sync.Mutex // serializes concurrent SendTo callers, net.UDPConn allows it but we keep behavior explicit
	col    *metrics.Collectors
}

// Bind opens a UDP listening endpoint at the local address hostPort.
// hostPort may have an empty host ("0.0.0.0") for the server, or a local
// host:port (port 0 for an ephemeral port) for a client socket.
func Bind(hostPort string) (Endpoint, error) {
	return BindWithMetrics(hostPort, metrics.Default)
}

// BindWithMetrics is Bind with an explicit Collectors instance, used by
// tests that want an isolated registry instead of the process default.
func BindWithMetrics(hostPort string, col *metrics.Collectors) (Endpoint, error) {
	addr, err := ResolveUDPAddr(hostPort)
	if err != nil {
		return nil, err
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, ErrListen.Error(err)
	}

	return &endpoint{conn: conn, col: col}, nil
}

func (e *endpoint) LocalAddr() net.Addr {
	return e.conn.LocalAddr()
}

func (e *endpoint) SendTo(b []byte, peer net.Addr) error {
	if e.closed.Load() {
		return ErrClosed.Error(nil)
	}

	udpAddr, ok := peer.(*net.UDPAddr)
	if !ok {
		var err error
		udpAddr, err = net.ResolveUDPAddr("udp", peer.String())
		if err != nil {
			return ErrSend.Error(err)
		}
	}

	e.mu.Lock()
	_, err := e.conn.WriteToUDP(b, udpAddr)
	e.mu.Unlock()

	if err != nil {
		if e.col != nil {
			e.col.DroppedDatagrams.WithLabelValues("send_error").Inc()
		}
		return ErrSend.Error(err)
	}

	return nil
}

func (e *endpoint) RecvFrom() ([]byte, net.Addr, error) {
	buf := make([]byte, RecvBufferSize)

	n, addr, err := e.conn.ReadFromUDP(buf)
	if err != nil {
		if e.closed.Load() {
			return nil, nil, ErrClosed.Error(err)
		}
		return nil, nil, err
	}

	return buf[:n], addr, nil
}

func (e *endpoint) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	return e.conn.Close()
}
