package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/tile-chain/config"
	"github.com/lixenwraith/tile-chain/rules"
)

func newConfigCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the effective configuration as TOML.

Without --config the built-in defaults are printed, which makes a good
starting point for a custom file:

  tile-chain config > tile-chain.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return config.EncodeTOML(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rules",
		Short: "Print the special tile rule table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeRules(cmd.OutOrStdout())
		},
	})

	return cmd
}

func writeRules(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tFIRST\tCONTINUATION\tTRANSPARENT")
	for _, r := range rules.Table() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", r.Kind, r.First, r.Continuation, r.Transparent)
	}
	return tw.Flush()
}
