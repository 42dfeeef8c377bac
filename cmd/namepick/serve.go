package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/conorfennell/namepick/internal/app"
	"github.com/conorfennell/namepick/internal/web"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Review candidates in the browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, closeStore, err := app.OpenSession(ctx, opts.cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			handler, err := web.NewServer(sess)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			srv := &http.Server{Addr: opts.cfg.Web.Addr, Handler: handler}

			errCh := make(chan error, 1)
			go func() {
				slog.Info("Server starting", "addr", "http://"+opts.cfg.Web.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("failed to shut down server: %w", err)
				}
				slog.Info("Server stopped")
			}
			app.WarnUnsaved(sess)
			return nil
		},
	}
}
