package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/smsgate/internal/api"
	"github.com/dmitrymomot/smsgate/internal/server"
)

// serve: run the HTTP service until SIGINT/SIGTERM.
func serveCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("address") {
				cfg.Address = address
			}

			ctx := cmd.Context()
			log := newLogger(os.Stdout, cfg)

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
			log.Info("carrier table loaded",
				slog.Int("carriers", len(svc.CarrierOptions())),
				slog.String("provider", cfg.Provider),
			)

			handler := api.New(svc, api.WithLogger(log), api.WithChecks(d.checks)).Router()

			return server.Run(ctx, handler,
				server.Address(cfg.Address),
				server.Logger(log),
				server.ShutdownTimeout(cfg.ShutdownTimeout),
				server.ShutdownHook(svc.Close),
			)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "listen address (default $SMSGATE_ADDRESS or :8080)")
	return cmd
}
