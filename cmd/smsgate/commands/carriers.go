package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/smsgate/pkg/carrier"
)

// carriers: list the carrier table; carriers publish <key>: upload it to S3.
func carriersCmd() *cobra.Command {
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "carriers",
		Short: "List known carriers and their gateway templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			d, err := buildDeps(ctx, cfg, newLogger(os.Stderr, cfg))
			if err != nil {
				return err
			}
			defer d.close()

			table, err := loadTable(ctx, d)
			if err != nil {
				return err
			}

			if asCSV {
				return carrier.EncodeCSV(cmd.OutOrStdout(), table.Entries())
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CARRIER\tTEMPLATE")
			for _, e := range table.Entries() {
				fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.Template)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print as CSV")

	cmd.AddCommand(publishCmd())
	return cmd
}

func publishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <key>",
		Short: "Upload the carrier table as CSV to the configured S3 bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			d, err := buildDeps(ctx, cfg, newLogger(os.Stderr, cfg))
			if err != nil {
				return err
			}
			defer d.close()
			if d.store == nil {
				return ErrStorageRequired
			}

			table, err := loadTable(ctx, d)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := carrier.EncodeCSV(&buf, table.Entries()); err != nil {
				return err
			}
			if err := d.store.Put(ctx, args[0], bytes.NewReader(buf.Bytes()), int64(buf.Len()), "text/csv"); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "published %d carriers to %s%s\n", table.Len(), s3Scheme, args[0])
			return nil
		},
	}
}

// loadTable reads the configured table without contacting an email provider.
func loadTable(ctx context.Context, d *deps) (*carrier.Table, error) {
	l, err := newLoader(cfg, d)
	if err != nil {
		return nil, err
	}
	return carrier.Build(ctx, l)
}
