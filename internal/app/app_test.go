package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/conorfennell/namepick/internal/config"
	"github.com/conorfennell/namepick/internal/domain"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	vocab := filepath.Join(dir, "words-selected.yaml")
	content := "an:\n  ān: [安]\nxin:\n  xīn: [心, 欣]\n"
	if err := os.WriteFile(vocab, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Vocabulary.Path = vocab
	cfg.Decisions.AcceptedPath = filepath.Join(dir, "names-selected.txt")
	cfg.Decisions.RefusedPath = filepath.Join(dir, "names-refused.txt")
	cfg.Decisions.DBPath = filepath.Join(dir, "namepick.db")
	return cfg
}

func TestOpenSession(t *testing.T) {
	testCases := []struct {
		name          string
		mutate        func(*config.Config)
		wantRemaining int
	}{
		{name: "text backend, full cross product", mutate: func(*config.Config) {}, wantRemaining: 9},
		{name: "sqlite backend", mutate: func(c *config.Config) { c.Decisions.Backend = "sqlite" }, wantRemaining: 9},
		{name: "spelling pairs", mutate: func(c *config.Config) { c.Vocabulary.SpellingPairs = []string{"an-xin"} }, wantRemaining: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(t)
			tc.mutate(&cfg)

			sess, closeStore, err := OpenSession(context.Background(), cfg)
			if err != nil {
				t.Fatalf("OpenSession() returned an unexpected error: %v", err)
			}
			defer closeStore()

			if got := sess.Remaining(); got != tc.wantRemaining {
				t.Errorf("Expected %d remaining, got %d", tc.wantRemaining, got)
			}
			if _, err := sess.Decide(domain.Accept); err != nil {
				t.Fatalf("Decide() returned an unexpected error: %v", err)
			}
			if err := sess.Save(context.Background()); err != nil {
				t.Fatalf("Save() returned an unexpected error: %v", err)
			}
		})
	}
}

func TestOpenSessionErrors(t *testing.T) {
	t.Run("unknown spelling", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Vocabulary.SpellingPairs = []string{"an-zzz"}
		if _, _, err := OpenSession(context.Background(), cfg); err == nil {
			t.Error("Expected an error for an unknown spelling")
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		if _, _, err := OpenStore(config.Decisions{Backend: "csv"}); err == nil {
			t.Error("Expected an error for an unknown backend")
		}
	})
}
