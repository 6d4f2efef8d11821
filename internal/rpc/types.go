// Package rpc defines the JSON-RPC 2.0 wire envelope, the request pipeline
// value types (Call, Queue) and the exact numeric conversions used when
// talking to a local Ethereum node. Everything numeric that comes off the
// wire is a hex string; conversions back to native values go through
// math/big so no wallet amount ever touches floating point.
package rpc

import "encoding/json"

// Envelope represents a JSON-RPC 2.0 request sent to the node.
//
// Example — asking for the current block number:
//
//	{
//	    "jsonrpc": "2.0",
//	    "method":  "eth_blockNumber",
//	    "id":      7,
//	    "params":  []
//	}
//
// Params is []interface{} because parameter types vary per method: strings
// for account hashes and passwords, objects for eth_sendTransaction. The ID
// carries the call identifier that correlates the response to its Call.
type Envelope struct {
	JSONRPC string        `json:"jsonrpc"` // Always "2.0"
	Method  string        `json:"method"`  // RPC method name, e.g. "personal_listAccounts"
	ID      int           `json:"id"`      // Call identifier, unique per dispatched Call
	Params  []interface{} `json:"params"`  // Positional arguments, varies per method
}

// Response represents a JSON-RPC 2.0 response from the node.
//
// Result is kept as json.RawMessage because its shape depends on the method
// that was called: a hex string for eth_blockNumber, an array of hashes for
// personal_listAccounts, a bool for personal_unlockAccount. The per-operation
// handler knows what to expect and decodes it there.
//
// Error is a pointer so "no error" (nil) is distinguishable from an error
// object with code 0.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *ErrorObject    `json:"error,omitempty"`
}

// ErrorObject is the error member of a JSON-RPC response.
//
// Standard codes: -32700 parse error, -32600 invalid request, -32601 method
// not found, -32602 invalid params, -32603 internal error. Geth additionally
// uses -32000 for execution-level failures (e.g. wrong account password).
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
