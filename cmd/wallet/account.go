package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmagro/eth-ipc-wallet/internal/wallet"
)

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Create, delete or unlock a node account",
	}

	cmd.AddCommand(accountNewCmd(), accountDeleteCmd(), accountUnlockCmd())
	return cmd
}

func accountNewCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new account protected by a password",
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

			if err := c.NewAccount(password, 0); err != nil {
				return err
			}
			done, err := waitFor[wallet.NewAccountDone](c, responseTimeout)
			if err != nil {
				return err
			}

			fmt.Printf("Created account %s\n", done.Address)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password for the new account")
	cmd.MarkFlagRequired("password")
	return cmd
}

func accountDeleteCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "delete <address>",
		Short: "Delete an account from the node keystore",
		Args:  cobra.ExactArgs(1),
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

			if err := c.DeleteAccount(args[0], password, 0); err != nil {
				return err
			}
			done, err := waitFor[wallet.DeleteAccountDone](c, responseTimeout)
			if err != nil {
				return err
			}

			if !done.OK {
				return fmt.Errorf("node refused to delete %s", args[0])
			}
			fmt.Printf("Deleted account %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password of the account")
	cmd.MarkFlagRequired("password")
	return cmd
}

func accountUnlockCmd() *cobra.Command {
	var (
		password string
		duration uint64
	)

	cmd := &cobra.Command{
		Use:   "unlock <address>",
		Short: "Unlock an account for a limited time",
		Long: `Unlock an account so the node will sign transactions from it. The
duration is in seconds; 0 uses the configured default.`,
		Args: cobra.ExactArgs(1),
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

			if duration == 0 {
				duration = cfg.Wallet.UnlockDuration
			}

			if err := c.UnlockAccount(args[0], password, duration, 0); err != nil {
				return err
			}
			done, err := waitFor[wallet.UnlockAccountDone](c, responseTimeout)
			if err != nil {
				return err
			}

			if !done.OK {
				return fmt.Errorf("node refused to unlock %s", args[0])
			}
			fmt.Printf("Unlocked %s for %ds\n", args[0], duration)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password of the account")
	cmd.Flags().Uint64Var(&duration, "duration", 0, "Unlock duration in seconds (0 = config default)")
	cmd.MarkFlagRequired("password")
	return cmd
}
