package decisionlog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/conorfennell/namepick/internal/domain"
)

// FileStore keeps accepted and refused pairs in two plain text files.
type FileStore struct {
	AcceptedPath string
	RefusedPath  string
}

// NewFileStore returns a store over the two given paths.
func NewFileStore(acceptedPath, refusedPath string) *FileStore {
	return &FileStore{AcceptedPath: acceptedPath, RefusedPath: refusedPath}
}

// LoadHistory reads both files. A missing file is an empty history; malformed
// lines are logged and skipped.
func (s *FileStore) LoadHistory(ctx context.Context) (domain.History, error) {
	var h domain.History
	var err error
	if h.Accepted, err = loadPairs(s.AcceptedPath); err != nil {
		return domain.History{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.History{}, err
	}
	if h.Refused, err = loadPairs(s.RefusedPath); err != nil {
		return domain.History{}, err
	}
	return h, nil
}

func loadPairs(path string) ([]domain.Pair, error) {
	pairs, warnings, err := ParseFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("Decision log not found, starting empty", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read decision log %s: %w", path, err)
	}
	for _, w := range warnings {
		slog.Warn("Skipping malformed decision line", "path", w.Path, "line", w.Line, "text", w.Text, "error", w.Err)
	}
	return pairs, nil
}

// SaveHistory overwrites both files.
func (s *FileStore) SaveHistory(ctx context.Context, h domain.History) error {
	if err := WriteFile(s.AcceptedPath, h.Accepted); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return WriteFile(s.RefusedPath, h.Refused)
}
