// Command wallet is a terminal Ethereum wallet speaking JSON-RPC to a local
// node over its IPC socket. Every subcommand drives the serialized request
// pipeline in internal/wallet and renders the resulting events.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmagro/eth-ipc-wallet/internal/config"
	"github.com/dmagro/eth-ipc-wallet/internal/ipc"
	"github.com/dmagro/eth-ipc-wallet/internal/logging"
	"github.com/dmagro/eth-ipc-wallet/internal/wallet"
)

// responseTimeout bounds how long a command waits for its completion event.
// The pipeline itself has no per-call deadline, so this is the CLI's way of
// not hanging forever on a silent node.
const responseTimeout = 30 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Ethereum wallet over a local node's IPC socket",
		Long: `wallet manages node-held accounts and submits transactions through the
JSON-RPC interface of a local Ethereum node, connected over its unix socket.

All signing stays in the node; this tool never sees a private key.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "config/wallet.yaml", "Config file path")
	rootCmd.PersistentFlags().String("ipc", "", "IPC socket path (overrides config)")

	rootCmd.AddCommand(
		accountsCmd(),
		accountCmd(),
		sendCmd(),
		statusCmd(),
		watchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the configuration, honoring the --ipc override. A
// missing config file is fine when --ipc is given; everything else defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	config.LoadEnv()

	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	ipcPath, _ := cmd.Root().PersistentFlags().GetString("ipc")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		if ipcPath == "" {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = &config.Config{}
		cfg.Node.IPCPath = ipcPath
		if verr := cfg.Validate(); verr != nil {
			return nil, verr
		}
		return cfg, nil
	}

	if ipcPath != "" {
		cfg.Node.IPCPath = ipcPath
	}
	return cfg, nil
}

// connect builds the transport and client from cfg and opens the socket.
// The caller owns the returned client and must Close it.
func connect(cfg *config.Config) (*wallet.Client, error) {
	log := logging.New(cfg.Logging.Level)

	tr := ipc.New(log, cfg.Node.ConnectTimeout)
	c := wallet.NewClient(tr, log)
	c.SetPeerThresholds(cfg.Peers.Fair, cfg.Peers.Good)

	if err := c.Connect(cfg.Node.IPCPath); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Node.IPCPath, err)
	}
	return c, nil
}

// waitFor drains the event stream until the wanted event type arrives, an
// error event aborts the wait, or the timeout trips.
func waitFor[T wallet.Event](c *wallet.Client, timeout time.Duration) (T, error) {
	var zero T
	deadline := time.After(timeout)

	for {
		select {
		case ev := <-c.Events():
			if v, ok := ev.(T); ok {
				return v, nil
			}
			if e, ok := ev.(wallet.ErrorEvent); ok {
				if e.Code != 0 {
					return zero, fmt.Errorf("%s (code %d)", e.Message, e.Code)
				}
				return zero, errors.New(e.Message)
			}
		case <-deadline:
			return zero, errors.New("timed out waiting for node response")
		}
	}
}
