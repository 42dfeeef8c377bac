package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/conorfennell/namepick/internal/app"
	"github.com/conorfennell/namepick/internal/config"
)

// rootOptions is filled by the persistent pre-run and read by every
// subcommand.
type rootOptions struct {
	configPath string
	cfg        config.Config
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "namepick",
		Short:         "Pick a two-character given name one candidate at a time",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return app.SetupLogging(cfg.Log, os.Stderr)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "namepick.yaml", "Config file path")
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newReviewCommand(opts),
		newServeCommand(opts),
		newListCommand(opts),
		newStatsCommand(opts),
		newImportCommand(opts),
		newVocabCommand(opts),
	)
	return rootCmd
}
