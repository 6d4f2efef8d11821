package rpc

// Operation tags the kind of call a Request represents. The response
// dispatcher switches exhaustively over this set to pick the decoder for the
// active request, so adding a method means adding a tag here and a case
// there — there is no fallthrough path.
type Operation int

const (
	OpNone Operation = iota // zero value, carried only by the empty sentinel
	OpListAccounts
	OpGetBalance
	OpGetTransactionCount
	OpNewAccount
	OpDeleteAccount
	OpUnlockAccount
	OpGetBlockNumber
	OpGetPeerCount
	OpGetGasPrice
	OpSendTransaction
	OpNewPendingTxFilter
)

// String returns the operation tag name for logs and error messages.
func (o Operation) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpListAccounts:
		return "listAccounts"
	case OpGetBalance:
		return "getBalance"
	case OpGetTransactionCount:
		return "getTransactionCount"
	case OpNewAccount:
		return "newAccount"
	case OpDeleteAccount:
		return "deleteAccount"
	case OpUnlockAccount:
		return "unlockAccount"
	case OpGetBlockNumber:
		return "getBlockNumber"
	case OpGetPeerCount:
		return "getPeerCount"
	case OpGetGasPrice:
		return "getGasPrice"
	case OpSendTransaction:
		return "sendTransaction"
	case OpNewPendingTxFilter:
		return "newPendingTransactionFilter"
	default:
		return "unknown"
	}
}

// NoIndex marks a Request that does not belong to a list position.
const NoIndex = -1

// Request is one pending or dispatched call: operation tag, method name,
// positional params, the call identifier correlating it to its response, and
// an optional index routing the result back to a list entry (which account a
// balance belongs to).
//
// The zero value is the empty sentinel meaning "no call outstanding". An
// empty Request is never written to the transport and never matched against
// a response.
type Request struct {
	callID int
	op     Operation
	method string
	params []interface{}
	index  int
	filled bool
}

// Counter hands out call identifiers. Each Request gets the next value at
// construction time, so identifiers are unique and strictly increasing for
// the lifetime of the owning client. The counter is owned by the client and
// only touched under its lock, not shared process-wide.
type Counter struct {
	next int
}

// Next returns the next call identifier.
func (c *Counter) Next() int {
	id := c.next
	c.next++
	return id
}

// NewRequest builds a non-empty Request with a fresh call id from ids.
func NewRequest(ids *Counter, op Operation, method string, params []interface{}, index int) Request {
	if params == nil {
		params = []interface{}{}
	}
	return Request{
		callID: ids.Next(),
		op:     op,
		method: method,
		params: params,
		index:  index,
		filled: true,
	}
}

// Empty reports whether r is the no-call-outstanding sentinel.
func (r Request) Empty() bool { return !r.filled }

// CallID returns the call identifier assigned at construction.
func (r Request) CallID() int { return r.callID }

// Op returns the operation tag.
func (r Request) Op() Operation { return r.op }

// Method returns the JSON-RPC method name.
func (r Request) Method() string { return r.method }

// Index returns the correlation index, or NoIndex when not applicable.
func (r Request) Index() int { return r.index }

// Envelope wraps the request into its JSON-RPC 2.0 wire form.
func (r Request) Envelope() Envelope {
	return Envelope{
		JSONRPC: "2.0",
		Method:  r.method,
		ID:      r.callID,
		Params:  r.params,
	}
}

// Queue is a FIFO of Requests waiting for the transport to go idle. A
// request enters the queue only while another request is active; it is
// drained one at a time in strict arrival order.
type Queue struct {
	items []Request
}

// Push appends r to the tail.
func (q *Queue) Push(r Request) {
	q.items = append(q.items, r)
}

// Pop removes and returns the head. The second return is false when the
// queue is empty.
func (q *Queue) Pop() (Request, bool) {
	if len(q.items) == 0 {
		return Request{}, false
	}
	head := q.items[0]
	q.items = q.items[1:]
	return head, true
}

// Len returns the number of queued requests.
func (q *Queue) Len() int { return len(q.items) }

// Clear discards everything queued. Used by the pipeline abort path: queued
// calls are dropped, never retried.
func (q *Queue) Clear() {
	q.items = nil
}
