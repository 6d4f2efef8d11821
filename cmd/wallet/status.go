package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmagro/eth-ipc-wallet/internal/output"
	"github.com/dmagro/eth-ipc-wallet/internal/wallet"
)

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show connection state, block height, peers and gas price",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			c, err := connect(cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			st, err := fetchStatus(c, responseTimeout)
			if err != nil {
				return err
			}

			output.RenderStatusTerminal(st)
			return nil
		},
	}
	return cmd
}

// fetchStatus issues the three status calls and collects their events. The
// calls queue behind each other in the pipeline; their completions arrive in
// issue order.
func fetchStatus(c *wallet.Client, timeout time.Duration) (output.Status, error) {
	var st output.Status

	if err := c.GetBlockNumber(); err != nil {
		return st, err
	}
	if err := c.GetGasPrice(); err != nil {
		return st, err
	}
	if err := c.GetPeerCount(); err != nil {
		return st, err
	}

	deadline := time.After(timeout)
	for got := 0; got < 3; {
		select {
		case ev := <-c.Events():
			switch v := ev.(type) {
			case wallet.BlockNumberDone:
				st.BlockNumber = v.Number
				got++
			case wallet.GasPriceDone:
				st.GasPrice = v.Price
				got++
			case wallet.PeerCountChanged:
				st.Peers = v.Count
				got++
			case wallet.ErrorEvent:
				return st, errors.New(v.Message)
			}
		case <-deadline:
			return st, errors.New("timed out waiting for node response")
		}
	}

	st.State = c.ConnectionStateString()
	st.Health = c.PeerHealth()
	return st, nil
}
