// Package wallet implements the serialized JSON-RPC request pipeline that
// drives a local Ethereum node over IPC. All wallet operations funnel into a
// single-outstanding-request call stream: one request is active on the
// socket at a time, everything else waits in a FIFO queue, and any failure
// aborts the whole pipeline back to a well-defined idle state.
package wallet

import (
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/dmagro/eth-ipc-wallet/internal/rpc"
)

// Transport is the single local channel the client writes to. Implemented by
// ipc.Transport; tests substitute an in-memory fake.
type Transport interface {
	// SetHandlers installs the inbound message and transport-error callbacks.
	SetHandlers(onMessage func(json.RawMessage), onError func(error))
	Connect(path string) error
	Close() error
	Connected() bool
	Write(p []byte) (int, error)
}

// eventBuffer bounds the event channel. Sized well past the worst-case
// burst of one account-listing batch; the consumer is expected to drain
// continuously, and the client blocks rather than drop an event.
const eventBuffer = 256

// Client owns the transport, the active request slot and the request queue.
// The original design is single-threaded on an event loop; here the transport
// read loop is a goroutine, so one mutex guards all pipeline state instead.
// The invariants are unchanged: at most one active request, strict FIFO
// dispatch, and a full reset on any failure.
type Client struct {
	mu     sync.Mutex
	tr     Transport
	log    *zap.Logger
	ids    rpc.Counter
	active rpc.Request
	queue  rpc.Queue

	accounts  []Account
	peers     uint64
	filterID  uint64
	fairPeers uint64
	goodPeers uint64

	events chan Event
}

// NewClient wires a client to its transport. The transport must not be
// connected yet.
func NewClient(tr Transport, log *zap.Logger) *Client {
	c := &Client{
		tr:        tr,
		log:       log,
		fairPeers: DefaultFairPeers,
		goodPeers: DefaultGoodPeers,
		events:    make(chan Event, eventBuffer),
	}
	tr.SetHandlers(c.handleMessage, c.handleTransportError)
	return c
}

// Events returns the client's notification stream. The consumer must drain
// it for the lifetime of the client.
func (c *Client) Events() <-chan Event { return c.events }

// SetPeerThresholds overrides the peer counts at which the connection is
// graded fair and good.
func (c *Client) SetPeerThresholds(fair, good uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fairPeers = fair
	c.goodPeers = good
}

// Connect opens the socket at path. On success the pending-transaction
// filter is installed immediately, before any caller-issued operation.
func (c *Client) Connect(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tr.Connected() {
		return &rpc.ValidationError{Reason: "already connected"}
	}

	if err := c.tr.Connect(path); err != nil {
		c.abortLocked(err)
		return err
	}

	c.emit(ConnectionStateChanged{Connected: true})
	c.emit(ConnectDone{})

	req := rpc.NewRequest(&c.ids, rpc.OpNewPendingTxFilter, "eth_newPendingTransactionFilter", nil, rpc.NoIndex)
	if err := c.enqueueOrDispatchLocked(req); err != nil {
		return err
	}
	return nil
}

// Close drops the active request and the queue and tears the socket down.
func (c *Client) Close() error {
	c.mu.Lock()
	wasBusy := !c.active.Empty()
	c.active = rpc.Request{}
	c.queue.Clear()
	wasConnected := c.tr.Connected()
	c.mu.Unlock()

	err := c.tr.Close()

	c.mu.Lock()
	if wasBusy {
		c.emit(BusyChanged{Busy: false})
	}
	if wasConnected {
		c.emit(ConnectionStateChanged{Connected: false})
	}
	c.mu.Unlock()
	return err
}

// Connected reports whether the transport has an established socket.
func (c *Client) Connected() bool { return c.tr.Connected() }

// Busy reports whether a request is currently outstanding.
func (c *Client) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.active.Empty()
}

// Peers returns the peer count stored by the last getPeerCount completion.
func (c *Client) Peers() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peers
}

// PendingFilterID returns the id of the pending-transaction filter installed
// at connect time.
func (c *Client) PendingFilterID() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filterID
}

// ListAccounts asks the node for its accounts. Completion arrives as an
// AccountsReady event once every account's balance and transaction count
// follow-up has finished.
func (c *Client) ListAccounts() error {
	return c.call(rpc.OpListAccounts, "personal_listAccounts", nil, rpc.NoIndex)
}

// NewAccount creates a node-managed account protected by password.
func (c *Client) NewAccount(password string, index int) error {
	return c.call(rpc.OpNewAccount, "personal_newAccount", []interface{}{password}, index)
}

// DeleteAccount removes the account at hash, authorized by password.
func (c *Client) DeleteAccount(hash, password string, index int) error {
	return c.call(rpc.OpDeleteAccount, "personal_deleteAccount", []interface{}{hash, password}, index)
}

// UnlockAccount unlocks hash for durationSeconds. The duration goes over the
// wire as a hex big-integer string.
func (c *Client) UnlockAccount(hash, password string, durationSeconds uint64, index int) error {
	params := []interface{}{hash, password, rpc.Uint64ToHex(durationSeconds)}
	return c.call(rpc.OpUnlockAccount, "personal_unlockAccount", params, index)
}

// GetBlockNumber asks for the current block height.
func (c *Client) GetBlockNumber() error {
	return c.call(rpc.OpGetBlockNumber, "eth_blockNumber", nil, rpc.NoIndex)
}

// GetPeerCount asks for the node's peer count.
func (c *Client) GetPeerCount() error {
	return c.call(rpc.OpGetPeerCount, "net_peerCount", nil, rpc.NoIndex)
}

// GetGasPrice asks for the current gas price.
func (c *Client) GetGasPrice() error {
	return c.call(rpc.OpGetGasPrice, "eth_gasPrice", nil, rpc.NoIndex)
}

// NewPendingTransactionFilter installs a pending-transaction filter. Issued
// automatically after every successful connect; callable again if needed.
func (c *Client) NewPendingTransactionFilter() error {
	return c.call(rpc.OpNewPendingTxFilter, "eth_newPendingTransactionFilter", nil, rpc.NoIndex)
}

// SendTransaction submits a value transfer. The amount is an exact decimal
// ether string; it is validated and scaled to hex wei before a call id is
// allocated, so a bad amount never touches the transport.
func (c *Client) SendTransaction(from, to, etherAmount string) error {
	weiHex, err := rpc.EtherToWeiHex(etherAmount)
	if err != nil {
		verr := &rpc.ValidationError{Reason: err.Error()}
		c.mu.Lock()
		c.emit(ErrorEvent{Message: verr.Error(), Code: 0})
		c.mu.Unlock()
		return verr
	}

	params := []interface{}{map[string]interface{}{
		"from":  from,
		"to":    to,
		"value": weiHex,
	}}
	return c.call(rpc.OpSendTransaction, "eth_sendTransaction", params, rpc.NoIndex)
}

// call builds a request for one public operation and feeds it to the
// pipeline. Fails immediately when disconnected instead of queueing blind.
func (c *Client) call(op rpc.Operation, method string, params []interface{}, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tr.Connected() {
		return &rpc.ValidationError{Reason: "not connected"}
	}

	req := rpc.NewRequest(&c.ids, op, method, params, index)
	return c.enqueueOrDispatchLocked(req)
}

// enqueueOrDispatchLocked makes req active and writes it if the slot is
// free, otherwise appends it to the queue. A write failure aborts the whole
// pipeline; no partial state survives.
func (c *Client) enqueueOrDispatchLocked(req rpc.Request) error {
	if !c.active.Empty() {
		c.queue.Push(req)
		return nil
	}

	c.active = req
	c.emit(BusyChanged{Busy: true})
	if err := c.writeActiveLocked(); err != nil {
		c.abortLocked(err)
		return err
	}
	return nil
}

// writeActiveLocked serializes the active request's envelope to the socket.
func (c *Client) writeActiveLocked() error {
	buf, err := json.Marshal(c.active.Envelope())
	if err != nil {
		return &rpc.ProtocolError{Reason: "request encode failed: " + err.Error()}
	}

	c.log.Debug("dispatch",
		zap.Int("id", c.active.CallID()),
		zap.Stringer("op", c.active.Op()),
		zap.String("method", c.active.Method()))

	if _, err := c.tr.Write(buf); err != nil {
		return err
	}
	return nil
}

// retireActiveLocked completes the active request: the next queued request
// is promoted and written, or the pipeline goes idle.
func (c *Client) retireActiveLocked() {
	next, ok := c.queue.Pop()
	if !ok {
		c.active = rpc.Request{}
		c.emit(BusyChanged{Busy: false})
		return
	}

	// Still busy, no BusyChanged: the slot never went empty.
	c.active = next
	if err := c.writeActiveLocked(); err != nil {
		c.abortLocked(err)
	}
}

// abortLocked is the single failure path. Active request and queue are
// discarded as a unit, one error event is emitted with the captured message
// and code, and a connection-state event follows so observers can tell
// whether the socket survived. Results already delivered by earlier calls in
// the same batch are not rolled back.
func (c *Client) abortLocked(err error) {
	c.log.Warn("pipeline abort",
		zap.Error(err),
		zap.Int("dropped", c.queue.Len()))

	wasBusy := !c.active.Empty()
	c.active = rpc.Request{}
	c.queue.Clear()

	// The event carries the node's own message when there is one; wrapping
	// belongs in logs, not in what observers display.
	msg := err.Error()
	var re *rpc.RemoteError
	if errors.As(err, &re) {
		msg = re.Message
	}
	c.emit(ErrorEvent{Message: msg, Code: rpc.ErrorCode(err)})
	c.emit(ConnectionStateChanged{Connected: c.tr.Connected()})
	if wasBusy {
		c.emit(BusyChanged{Busy: false})
	}
}

// handleMessage is called by the transport read loop, one complete JSON
// document at a time.
func (c *Client) handleMessage(raw json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active.Empty() {
		c.abortLocked(&rpc.ProtocolError{Reason: "response with no active request"})
		return
	}

	var resp rpc.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.abortLocked(&rpc.ProtocolError{Reason: "response parse error: " + err.Error()})
		return
	}

	if resp.ID != c.active.CallID() {
		c.abortLocked(&rpc.ProtocolError{Reason: "call number mismatch"})
		return
	}

	switch {
	case len(resp.Result) > 0 && string(resp.Result) != "null":
		if err := c.dispatchResultLocked(resp.Result); err != nil {
			c.abortLocked(err)
		}
	case resp.Error != nil:
		c.abortLocked(&rpc.RemoteError{Message: resp.Error.Message, Code: resp.Error.Code})
	default:
		c.abortLocked(&rpc.ProtocolError{Reason: "result undefined in response"})
	}
}

// handleTransportError is called by the read loop on socket failure.
func (c *Client) handleTransportError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.abortLocked(err)
}

// emit delivers ev to the event channel. Blocks if the consumer has fallen
// eventBuffer events behind; never drops.
func (c *Client) emit(ev Event) {
	c.events <- ev
}
