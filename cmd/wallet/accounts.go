package main

import (
	"github.com/spf13/cobra"

	"github.com/dmagro/eth-ipc-wallet/internal/output"
	"github.com/dmagro/eth-ipc-wallet/internal/wallet"
)

func accountsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List node accounts with balances and nonces",
		Long: `List every account the node manages, with its exact ether balance and
transaction count. Balances are shown with all 18 fractional digits; nothing
is rounded.

Example:
  wallet accounts
  wallet accounts --format json`,
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

			if err := c.ListAccounts(); err != nil {
				return err
			}

			ready, err := waitFor[wallet.AccountsReady](c, responseTimeout)
			if err != nil {
				return err
			}

			if format == "json" {
				output.DisableColors()
				return output.RenderAccountsJSON(ready.Accounts)
			}
			output.RenderAccountsTerminal(ready.Accounts)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "terminal", "Output format: terminal|json")
	return cmd
}
