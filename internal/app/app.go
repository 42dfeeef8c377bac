// Package app assembles a review session from configuration. It is shared by
// the namepick CLI and the desktop binary.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/conorfennell/namepick/internal/config"
	"github.com/conorfennell/namepick/internal/decisionlog"
	"github.com/conorfennell/namepick/internal/domain"
	"github.com/conorfennell/namepick/internal/logging"
	"github.com/conorfennell/namepick/internal/scoring"
	"github.com/conorfennell/namepick/internal/selector"
	"github.com/conorfennell/namepick/internal/session"
	"github.com/conorfennell/namepick/internal/storage"
	"github.com/conorfennell/namepick/internal/sync"
	"github.com/conorfennell/namepick/internal/vocabulary"
)

// SetupLogging installs the configured slog logger as the default.
func SetupLogging(cfg config.Log, w io.Writer) error {
	logger, err := logging.New(cfg.Level, cfg.Format, w)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// OpenStore returns the configured decision store and a function releasing it.
func OpenStore(cfg config.Decisions) (session.Store, func() error, error) {
	switch cfg.Backend {
	case "sqlite":
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case "text", "":
		return decisionlog.NewFileStore(cfg.AcceptedPath, cfg.RefusedPath), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown decision backend %q", cfg.Backend)
}

// OpenSource loads the vocabulary and returns the candidate source: the full
// cross product, or only the configured spelling pairs.
func OpenSource(ctx context.Context, cfg config.Vocabulary) (selector.Source, []domain.Character, error) {
	path, err := sync.Vocabulary(ctx, cfg, nil)
	if err != nil {
		return nil, nil, err
	}
	m, err := vocabulary.Load(path)
	if err != nil {
		return nil, nil, err
	}

	if len(cfg.SpellingPairs) == 0 {
		chars := m.Characters()
		slog.Info("Vocabulary loaded", "path", path, "characters", len(chars))
		return selector.CrossProduct(chars), chars, nil
	}

	selected, err := vocabulary.ParseSpellingPairs(cfg.SpellingPairs)
	if err != nil {
		return nil, nil, err
	}
	source, err := vocabulary.NewSpellingPairs(m, selected)
	if err != nil {
		return nil, nil, err
	}
	chars := source.Characters()
	slog.Info("Vocabulary loaded", "path", path, "characters", len(chars), "spelling_pairs", len(selected))
	return source, chars, nil
}

// OpenSession wires vocabulary, store and scoring parameters into a session.
// The returned function closes the store.
func OpenSession(ctx context.Context, cfg config.Config) (*session.Session, func() error, error) {
	source, chars, err := OpenSource(ctx, cfg.Vocabulary)
	if err != nil {
		return nil, nil, err
	}
	if len(chars) == 0 {
		slog.Warn("Vocabulary is empty, nothing to review", "path", cfg.Vocabulary.Path)
	}

	store, closeStore, err := OpenStore(cfg.Decisions)
	if err != nil {
		return nil, nil, err
	}

	params := scoring.DefaultParams()
	params.SelfPairSentinel = cfg.Scoring.SelfPairSentinel

	sess, err := session.Open(ctx, source, store, params)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return sess, closeStore, nil
}

// WarnUnsaved logs when a surface exits with decisions that were never saved.
func WarnUnsaved(sess *session.Session) {
	if sess.Dirty() {
		slog.Warn("Exiting with unsaved decisions", "unsaved", sess.Stats().Unsaved)
	}
}

// Exit logs err and exits with status 1 when err is non-nil.
func Exit(err error) {
	if err != nil {
		slog.Error("namepick failed", "error", err)
		os.Exit(1)
	}
}
