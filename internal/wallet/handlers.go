package wallet

import (
	"encoding/json"
	"fmt"

	"github.com/dmagro/eth-ipc-wallet/internal/rpc"
)

// dispatchResultLocked routes a non-null result to the decoder for the
// active request's operation. The switch is exhaustive over the operation
// set; an unknown tag is a protocol failure, never a silent fallthrough.
// Each decoder emits its typed event and retires the active request.
func (c *Client) dispatchResultLocked(result json.RawMessage) error {
	switch c.active.Op() {
	case rpc.OpListAccounts:
		return c.handleAccountList(result)
	case rpc.OpGetBalance:
		return c.handleAccountBalance(result)
	case rpc.OpGetTransactionCount:
		return c.handleAccountTransactionCount(result)
	case rpc.OpNewAccount:
		return c.handleNewAccount(result)
	case rpc.OpDeleteAccount:
		return c.handleDeleteAccount(result)
	case rpc.OpUnlockAccount:
		return c.handleUnlockAccount(result)
	case rpc.OpGetBlockNumber:
		return c.handleBlockNumber(result)
	case rpc.OpGetPeerCount:
		return c.handlePeerCount(result)
	case rpc.OpGetGasPrice:
		return c.handleGasPrice(result)
	case rpc.OpSendTransaction:
		return c.handleSendTransaction(result)
	case rpc.OpNewPendingTxFilter:
		return c.handleNewPendingTxFilter(result)
	default:
		return &rpc.ProtocolError{Reason: fmt.Sprintf("no handler for operation %s", c.active.Op())}
	}
}

// handleAccountList starts a fresh account batch: one record per returned
// hash, then a balance and a transaction-count follow-up per account, tagged
// with the account's position. The follow-ups land in the queue in account
// order because the listing request itself is still active.
func (c *Client) handleAccountList(result json.RawMessage) error {
	var hashes []string
	if err := json.Unmarshal(result, &hashes); err != nil {
		return &rpc.ProtocolError{Reason: "account list decode failed: " + err.Error()}
	}

	c.accounts = make([]Account, 0, len(hashes))
	if len(hashes) == 0 {
		// Nothing to follow up on; the batch is already complete.
		c.emit(AccountsReady{})
		c.retireActiveLocked()
		return nil
	}
	for i, hash := range hashes {
		c.accounts = append(c.accounts, Account{Hash: hash, TransactionCount: -1})

		params := []interface{}{hash, "latest"}
		balance := rpc.NewRequest(&c.ids, rpc.OpGetBalance, "eth_getBalance", params, i)
		if err := c.enqueueOrDispatchLocked(balance); err != nil {
			return err
		}
		nonce := rpc.NewRequest(&c.ids, rpc.OpGetTransactionCount, "eth_getTransactionCount", params, i)
		if err := c.enqueueOrDispatchLocked(nonce); err != nil {
			return err
		}
	}

	c.retireActiveLocked()
	return nil
}

func (c *Client) handleAccountBalance(result json.RawMessage) error {
	hex, err := resultString(result)
	if err != nil {
		return err
	}
	ether, err := rpc.WeiHexToEther(hex)
	if err != nil {
		return &rpc.ProtocolError{Reason: "balance decode failed: " + err.Error()}
	}

	idx := c.active.Index()
	if idx < 0 || idx >= len(c.accounts) {
		return &rpc.ProtocolError{Reason: fmt.Sprintf("balance index %d out of range", idx)}
	}
	c.accounts[idx].Balance = ether

	c.retireActiveLocked()
	return nil
}

// handleAccountTransactionCount stores the nonce for its account and, when
// this was the last account in the batch, emits the full list. The
// transaction-count follow-up is queued after the balance follow-up for the
// same index, so index+1 == len(accounts) means the batch is complete.
func (c *Client) handleAccountTransactionCount(result json.RawMessage) error {
	count, err := resultUint64(result)
	if err != nil {
		return err
	}

	idx := c.active.Index()
	if idx < 0 || idx >= len(c.accounts) {
		return &rpc.ProtocolError{Reason: fmt.Sprintf("transaction count index %d out of range", idx)}
	}
	c.accounts[idx].TransactionCount = int64(count)

	if idx+1 == len(c.accounts) {
		list := make([]Account, len(c.accounts))
		copy(list, c.accounts)
		c.emit(AccountsReady{Accounts: list})
	}

	c.retireActiveLocked()
	return nil
}

func (c *Client) handleNewAccount(result json.RawMessage) error {
	addr, err := resultString(result)
	if err != nil {
		return err
	}
	c.emit(NewAccountDone{Address: addr, Index: c.active.Index()})
	c.retireActiveLocked()
	return nil
}

func (c *Client) handleDeleteAccount(result json.RawMessage) error {
	ok, err := resultBool(result)
	if err != nil {
		return err
	}
	c.emit(DeleteAccountDone{OK: ok, Index: c.active.Index()})
	c.retireActiveLocked()
	return nil
}

func (c *Client) handleUnlockAccount(result json.RawMessage) error {
	ok, err := resultBool(result)
	if err != nil {
		return err
	}
	c.emit(UnlockAccountDone{OK: ok, Index: c.active.Index()})
	c.retireActiveLocked()
	return nil
}

func (c *Client) handleBlockNumber(result json.RawMessage) error {
	number, err := resultUint64(result)
	if err != nil {
		return err
	}
	c.emit(BlockNumberDone{Number: number})
	c.retireActiveLocked()
	return nil
}

func (c *Client) handlePeerCount(result json.RawMessage) error {
	count, err := resultUint64(result)
	if err != nil {
		return err
	}
	c.peers = count
	c.emit(PeerCountChanged{Count: count})
	c.retireActiveLocked()
	return nil
}

func (c *Client) handleGasPrice(result json.RawMessage) error {
	hex, err := resultString(result)
	if err != nil {
		return err
	}
	price, err := rpc.WeiHexToEther(hex)
	if err != nil {
		return &rpc.ProtocolError{Reason: "gas price decode failed: " + err.Error()}
	}
	c.emit(GasPriceDone{Price: price})
	c.retireActiveLocked()
	return nil
}

func (c *Client) handleSendTransaction(result json.RawMessage) error {
	hash, err := resultString(result)
	if err != nil {
		return err
	}
	c.emit(TransactionSent{Hash: hash})
	c.retireActiveLocked()
	return nil
}

// handleNewPendingTxFilter stores the filter id for later polling. No event:
// the filter install is internal plumbing after connect.
func (c *Client) handleNewPendingTxFilter(result json.RawMessage) error {
	id, err := resultUint64(result)
	if err != nil {
		return err
	}
	c.filterID = id
	c.retireActiveLocked()
	return nil
}

// resultString decodes a JSON string result.
func resultString(result json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(result, &s); err != nil {
		return "", &rpc.ProtocolError{Reason: "string result decode failed: " + err.Error()}
	}
	return s, nil
}

// resultBool decodes a JSON boolean result.
func resultBool(result json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(result, &b); err != nil {
		return false, &rpc.ProtocolError{Reason: "bool result decode failed: " + err.Error()}
	}
	return b, nil
}

// resultUint64 decodes a hex-string result into uint64.
func resultUint64(result json.RawMessage) (uint64, error) {
	hex, err := resultString(result)
	if err != nil {
		return 0, err
	}
	n, err := rpc.ParseHexUint64(hex)
	if err != nil {
		return 0, &rpc.ProtocolError{Reason: "numeric result decode failed: " + err.Error()}
	}
	return n, nil
}
