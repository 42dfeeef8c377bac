package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/conorfennell/namepick/internal/decisionlog"
	"github.com/conorfennell/namepick/internal/domain"
	"github.com/conorfennell/namepick/internal/storage"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Copy the text decision logs into the SQLite store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d := opts.cfg.Decisions

			h, err := decisionlog.NewFileStore(d.AcceptedPath, d.RefusedPath).LoadHistory(ctx)
			if err != nil {
				return err
			}

			db, err := storage.Open(d.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			res, err := db.ImportHistory(ctx, h, time.Now().UTC())
			if err != nil {
				return fmt.Errorf("failed to import decisions: %w", err)
			}

			counts, err := db.CountByOutcome(ctx)
			if err != nil {
				return err
			}
			slog.Info("Import finished",
				"db", d.DBPath,
				"imported", res.Imported,
				"unchanged", res.Skipped,
				"accepted", counts[domain.Accept],
				"refused", counts[domain.Refuse],
			)
			return nil
		},
	}
}
