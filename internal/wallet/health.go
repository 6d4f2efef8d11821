package wallet

// Peer-health grading. The grade is a pure function of the peer count
// obtained via net_peerCount; it is presentation-level state, not part of
// the connection state machine.

// Default thresholds: below fair is poor, at or above good is good.
const (
	DefaultFairPeers = 3
	DefaultGoodPeers = 10
)

// PeerHealth classifies how well-connected the node is.
type PeerHealth int

const (
	PeersPoor PeerHealth = iota
	PeersFair
	PeersGood
)

func (h PeerHealth) String() string {
	switch h {
	case PeersFair:
		return "fair"
	case PeersGood:
		return "good"
	default:
		return "poor"
	}
}

// ClassifyPeers grades count against the fair/good thresholds.
func ClassifyPeers(count, fair, good uint64) PeerHealth {
	switch {
	case count >= good:
		return PeersGood
	case count >= fair:
		return PeersFair
	default:
		return PeersPoor
	}
}

// PeerHealth grades the last stored peer count.
func (c *Client) PeerHealth() PeerHealth {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ClassifyPeers(c.peers, c.fairPeers, c.goodPeers)
}

// ConnectionStateString renders the connection state for display, including
// the peer grade when connected.
func (c *Client) ConnectionStateString() string {
	if !c.tr.Connected() {
		return "Disconnected"
	}

	switch c.PeerHealth() {
	case PeersGood:
		return "Connected (good peer count)"
	case PeersFair:
		return "Connected (fair peer count)"
	default:
		return "Connected (poor peer count)"
	}
}
