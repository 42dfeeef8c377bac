package sync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/namepick/internal/config"
	"github.com/conorfennell/namepick/internal/gitsource"
)

// Vocabulary returns the local path of the vocabulary file. Without a git URL
// that is the configured path; otherwise the repository is cloned or pulled
// under the repos directory and the configured path is resolved inside it.
func Vocabulary(ctx context.Context, cfg config.Vocabulary, progress io.Writer) (string, error) {
	if cfg.GitURL == "" {
		return cfg.Path, nil
	}

	if err := os.MkdirAll(cfg.ReposDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create repos directory: %w", err)
	}

	localRepoPath, err := gitUrlToLocalPath(cfg.ReposDir, cfg.GitURL)
	if err != nil {
		return "", err
	}

	slog.Info("Syncing vocabulary source", "url", cfg.GitURL, "path", localRepoPath)
	if err := gitsource.Sync(ctx, cfg.GitURL, localRepoPath, progress); err != nil {
		return "", err
	}

	if filepath.IsAbs(cfg.Path) {
		return cfg.Path, nil
	}
	return filepath.Join(localRepoPath, cfg.Path), nil
}

func gitUrlToLocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err == nil && parsedURL.Scheme == "file" {
		return filepath.Join(baseDir, "local", filepath.Base(parsedURL.Path)), nil
	}
	if err != nil || (parsedURL.Scheme != "https" && parsedURL.Scheme != "http") {
		if strings.Contains(repoURL, "@") {
			parts := strings.Split(repoURL, ":")
			if len(parts) == 2 {
				hostAndUser := strings.Split(parts[0], "@")
				if len(hostAndUser) == 2 {
					host := hostAndUser[1]
					repoPath := strings.TrimSuffix(parts[1], ".git")
					return filepath.Join(baseDir, host, repoPath), nil
				}
			}
		}
		if filepath.IsAbs(repoURL) {
			return filepath.Join(baseDir, "local", strings.TrimSuffix(filepath.Base(repoURL), ".git")), nil
		}
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}

	sanitizedPath := strings.TrimSuffix(parsedURL.Path, ".git")
	return filepath.Join(baseDir, parsedURL.Host, sanitizedPath), nil
}
