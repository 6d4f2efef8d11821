package wallet

// Event is the closed set of notifications the client emits. Each state
// transition and each completed operation produces exactly one event on the
// client's event channel; consumers type-switch over the concrete types.
type Event interface {
	event()
}

// ConnectionStateChanged fires when the connection is established or lost,
// and alongside every pipeline abort so observers can tell "call failed,
// still connected" from "connection lost".
type ConnectionStateChanged struct {
	Connected bool
}

// BusyChanged fires whenever the active request slot transitions between
// empty and occupied.
type BusyChanged struct {
	Busy bool
}

// ErrorEvent carries the message and numeric code captured by a pipeline
// abort. Code is 0 for failures with no inherent code.
type ErrorEvent struct {
	Message string
	Code    int
}

// ConnectDone fires once after a successful connect.
type ConnectDone struct{}

// Account is one node-managed account with its locally accumulated
// annotations. Balance is an exact ether decimal string; TransactionCount is
// -1 until the nonce follow-up for this account completes.
type Account struct {
	Hash             string
	Balance          string
	TransactionCount int64
}

// AccountsReady carries the full account list, fired once per listing after
// the last account's transaction count has been stored.
type AccountsReady struct {
	Accounts []Account
}

// NewAccountDone carries the address of a freshly created account.
type NewAccountDone struct {
	Address string
	Index   int
}

// DeleteAccountDone reports whether the node deleted the account.
type DeleteAccountDone struct {
	OK    bool
	Index int
}

// UnlockAccountDone reports whether the node unlocked the account.
type UnlockAccountDone struct {
	OK    bool
	Index int
}

// TransactionSent carries the hash of a submitted transaction.
type TransactionSent struct {
	Hash string
}

// BlockNumberDone carries the current block height.
type BlockNumberDone struct {
	Number uint64
}

// PeerCountChanged carries the node's current peer count.
type PeerCountChanged struct {
	Count uint64
}

// GasPriceDone carries the current gas price as an exact ether decimal string.
type GasPriceDone struct {
	Price string
}

func (ConnectionStateChanged) event() {}
func (BusyChanged) event()            {}
func (ErrorEvent) event()             {}
func (ConnectDone) event()            {}
func (AccountsReady) event()          {}
func (NewAccountDone) event()         {}
func (DeleteAccountDone) event()      {}
func (UnlockAccountDone) event()      {}
func (TransactionSent) event()        {}
func (BlockNumberDone) event()        {}
func (PeerCountChanged) event()       {}
func (GasPriceDone) event()           {}
