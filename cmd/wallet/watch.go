package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmagro/eth-ipc-wallet/internal/output"
)

func watchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Continuously refresh node status",
		Long: `Poll block height, peer count and gas price on an interval and redraw
the status as a small dashboard. Runs until Ctrl+C.

Example:
  wallet watch
  wallet watch --interval 5s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if interval == 0 {
				interval = cfg.Watch.Interval
			}

			c, err := connect(cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigCh
				cancel()
			}()

			// The poller fills frames, the renderer draws them. Splitting
			// the two keeps a slow terminal from delaying the next poll.
			frames := make(chan output.Status, 1)
			g, gctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()

				for {
					st, err := fetchStatus(c, interval)
					if err != nil {
						return err
					}
					select {
					case frames <- st:
					case <-gctx.Done():
						return nil
					}

					select {
					case <-ticker.C:
					case <-gctx.Done():
						return nil
					}
				}
			})

			g.Go(func() error {
				first := true
				for {
					select {
					case st := <-frames:
						output.RenderWatch(os.Stdout, st, interval, !first)
						first = false
					case <-gctx.Done():
						return nil
					}
				}
			})

			err = g.Wait()
			fmt.Print("\033[2J\033[H")
			fmt.Println("Exiting...")
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Refresh interval (0 = config default)")
	return cmd
}
