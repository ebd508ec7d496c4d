// Package commands implements the smsgate command line.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	cfg Config

	carrierSource string
	provider      string
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd(nil).Execute()
}

// newRootCmd builds the command tree. environ replaces the process
// environment when non-nil.
func newRootCmd(environ map[string]string) *cobra.Command {
	root := &cobra.Command{
		Use:           "smsgate",
		Short:         "Send SMS through carrier email gateways",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := LoadConfig(environ)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("carriers") {
				loaded.CarrierSource = carrierSource
			}
			if cmd.Flags().Changed("provider") {
				loaded.Provider = provider
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&carrierSource, "carriers", "",
		"carrier table: file path, http(s) URL or s3://key (default bundled)")
	root.PersistentFlags().StringVar(&provider, "provider", "",
		"email provider: resend, gmail or log (default $SMSGATE_PROVIDER)")

	root.AddCommand(serveCmd(), sendCmd(), carriersCmd())
	return root
}
