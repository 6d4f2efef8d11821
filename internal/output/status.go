package output

import (
	"fmt"
	"io"
	"time"

	"github.com/dmagro/eth-ipc-wallet/internal/wallet"
)

// Status is one snapshot of the node as seen through the wallet pipeline.
type Status struct {
	State       string // connection state string incl. peer grade
	Health      wallet.PeerHealth
	BlockNumber uint64
	Peers       uint64
	GasPrice    string // exact ether decimal string
}

// RenderStatusTerminal prints a one-shot status report.
func RenderStatusTerminal(s Status) {
	fmt.Println()
	fmt.Printf("%s\n", bold("Node Status"))
	fmt.Println("────────────────────────────────────────────")
	fmt.Printf("  %-12s %s\n", "State", formatState(s))
	fmt.Printf("  %-12s %d\n", "Block", s.BlockNumber)
	fmt.Printf("  %-12s %d (%s)\n", "Peers", s.Peers, s.Health)
	fmt.Printf("  %-12s %s ETH\n", "Gas price", s.GasPrice)
	fmt.Println()
}

// RenderWatch redraws the status as a refreshing dashboard frame.
func RenderWatch(w io.Writer, s Status, interval time.Duration, clear bool) {
	if clear {
		fmt.Fprint(w, "\033[2J\033[H")
	}

	fmt.Fprintf(w, "%s    refresh %s    %s\n\n",
		bold("eth-ipc-wallet watch"), interval, time.Now().Format("15:04:05"))
	fmt.Fprintf(w, "  %-12s %s\n", "State", formatState(s))
	fmt.Fprintf(w, "  %-12s %d\n", "Block", s.BlockNumber)
	fmt.Fprintf(w, "  %-12s %d (%s)\n", "Peers", s.Peers, s.Health)
	fmt.Fprintf(w, "  %-12s %s ETH\n", "Gas price", s.GasPrice)
	fmt.Fprintf(w, "\nPress Ctrl+C to exit\n")
}

// RenderError prints a pipeline error event.
func RenderError(message string, code int) {
	if code != 0 {
		fmt.Printf("  %s %s (code %d)\n", red("✗"), message, code)
		return
	}
	fmt.Printf("  %s %s\n", red("✗"), message)
}

func formatState(s Status) string {
	switch s.Health {
	case wallet.PeersGood:
		return green(s.State)
	case wallet.PeersFair:
		return yellow(s.State)
	default:
		if s.State == "Disconnected" {
			return red(s.State)
		}
		return yellow(s.State)
	}
}
