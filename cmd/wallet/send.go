package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmagro/eth-ipc-wallet/internal/wallet"
)

func sendCmd() *cobra.Command {
	var (
		from   string
		to     string
		amount string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send ether from one account to another",
		Long: `Submit a value transfer through the node. The amount is a decimal ether
string and is converted to wei in exact arithmetic — "0.000000000000000001"
is one wei, and nothing is ever rounded. The sending account must be
unlocked first (see "wallet account unlock").

Example:
  wallet send --from 0xabc... --to 0xdef... --amount 0.5`,
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

			if err := c.SendTransaction(from, to, amount); err != nil {
				return err
			}
			sent, err := waitFor[wallet.TransactionSent](c, responseTimeout)
			if err != nil {
				return err
			}

			fmt.Printf("Transaction submitted: %s\n", sent.Hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Sending account address")
	cmd.Flags().StringVar(&to, "to", "", "Receiving account address")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount in ether (decimal string)")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("amount")
	return cmd
}
