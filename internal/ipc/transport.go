// Package ipc implements the persistent unix-domain-socket connection to a
// local Ethereum node. It owns nothing about the protocol beyond framing:
// outbound writes are raw bytes handed to it by the client, inbound bytes are
// fed through an incremental JSON decoder so that one decoded document equals
// one JSON-RPC envelope regardless of how the kernel fragments or coalesces
// socket reads.
package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dmagro/eth-ipc-wallet/internal/rpc"
)

// DefaultConnectTimeout bounds the initial connection attempt. Once
// connected there is no per-call deadline: a silent node stalls the pipeline
// until a transport error or a fresh connect.
const DefaultConnectTimeout = 2000 * time.Millisecond

// Transport is the socket connection. Exactly one owner (the wallet client)
// writes to it; inbound envelopes and read failures are delivered through
// the handlers installed with SetHandlers before the first Connect.
type Transport struct {
	mu      sync.Mutex
	conn    net.Conn
	closing bool

	timeout time.Duration
	log     *zap.Logger

	onMessage func(json.RawMessage)
	onError   func(error)
}

// New returns a disconnected transport. A zero timeout falls back to
// DefaultConnectTimeout.
func New(log *zap.Logger, timeout time.Duration) *Transport {
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	return &Transport{timeout: timeout, log: log}
}

// SetHandlers installs the inbound message and error callbacks. Must be
// called before Connect.
func (t *Transport) SetHandlers(onMessage func(json.RawMessage), onError func(error)) {
	t.onMessage = onMessage
	t.onError = onError
}

// Connect dials the unix socket at path, bounded by the connect timeout.
func (t *Transport) Connect(path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		return &rpc.TransportError{Op: "connect", Err: errors.New("already connected")}
	}

	conn, err := net.DialTimeout("unix", path, t.timeout)
	if err != nil {
		return &rpc.TransportError{Op: "connect", Err: err}
	}

	t.conn = conn
	t.closing = false
	t.log.Debug("ipc connected", zap.String("path", path))

	go t.readLoop(conn)
	return nil
}

// Connected reports whether the socket is established.
func (t *Transport) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn != nil
}

// Write sends one encoded envelope. Short or failed writes are transport
// failures; the caller aborts the whole pipeline on any error returned here.
func (t *Transport) Write(p []byte) (int, error) {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()

	if conn == nil {
		return 0, &rpc.TransportError{Op: "write", Err: errors.New("not connected")}
	}

	n, err := conn.Write(p)
	if err != nil {
		return n, &rpc.TransportError{Op: "write", Err: err}
	}
	if n < len(p) {
		return n, &rpc.TransportError{Op: "write", Err: fmt.Errorf("short write: %d of %d bytes", n, len(p))}
	}
	return n, nil
}

// Close tears the connection down. Safe to call when already disconnected;
// the read loop exits without reporting an error.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil
	}
	t.closing = true
	err := t.conn.Close()
	t.conn = nil
	return err
}

// readLoop decodes JSON documents off the socket until it dies. json.Decoder
// buffers across reads, so envelopes split over several segments (or several
// envelopes arriving in one segment) are still delivered one at a time.
func (t *Transport) readLoop(conn net.Conn) {
	dec := json.NewDecoder(conn)
	for {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			t.mu.Lock()
			deliberate := t.closing
			if t.conn == conn {
				t.conn = nil
			}
			t.mu.Unlock()

			if deliberate {
				return
			}
			t.log.Warn("ipc read failed", zap.Error(err))
			t.onError(&rpc.TransportError{Op: "read", Err: err})
			return
		}
		t.onMessage(raw)
	}
}
