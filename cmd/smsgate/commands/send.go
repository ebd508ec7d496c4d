package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// send <carrier> <phone> <message>: deliver one message and wait for the provider.
func sendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <carrier> <phone> <message>",
		Short: "Send one SMS and wait for the provider",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			phone, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid phone number %q: %w", args[1], err)
			}

			ctx := cmd.Context()
			log := newLogger(os.Stderr, cfg)

			d, err := buildDeps(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := d.close(); err != nil {
					log.Error("close dependencies", slog.Any("error", err))
				}
			}()

			svc, err := newService(ctx, cfg, d)
			if err != nil {
				return err
			}
			defer func() {
				if err := svc.Close(ctx); err != nil {
					log.Error("close service", slog.Any("error", err))
				}
			}()

			to, err := svc.Destination(phone, args[0])
			if err != nil {
				return err
			}
			if err := svc.Send(ctx, args[2], phone, args[0]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "sent to", to)
			return nil
		},
	}
	return cmd
}
