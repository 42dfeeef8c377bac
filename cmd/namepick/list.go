package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conorfennell/namepick/internal/app"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	var refused bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the accepted names",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := app.OpenStore(opts.cfg.Decisions)
			if err != nil {
				return err
			}
			defer closeStore()

			h, err := store.LoadHistory(cmd.Context())
			if err != nil {
				return err
			}
			pairs := h.Accepted
			if refused {
				pairs = h.Refused
			}
			for _, p := range pairs {
				fmt.Fprintln(os.Stdout, p.String())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&refused, "refused", false, "Print the refused names instead")
	return cmd
}

func newStatsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print review progress as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeStore, err := app.OpenSession(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(sess.Stats())
		},
	}
}
