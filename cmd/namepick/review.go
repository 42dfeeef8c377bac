package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/conorfennell/namepick/internal/app"
	"github.com/conorfennell/namepick/internal/console"
)

func newReviewCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Review candidates in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeStore, err := app.OpenSession(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			err = console.Run(cmd.Context(), sess, os.Stdin, os.Stdout)
			app.WarnUnsaved(sess)
			return err
		},
	}
}
