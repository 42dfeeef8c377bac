package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conorfennell/namepick/internal/domain"
	"github.com/conorfennell/namepick/internal/sync"
	"github.com/conorfennell/namepick/internal/vocabulary"
)

func newVocabCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Maintain the vocabulary file",
	}
	cmd.AddCommand(newVocabGroupCommand(opts), newVocabSpellingsCommand(opts), newVocabSyncCommand(opts))
	return cmd
}

func newVocabGroupCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "group CHARACTERS...",
		Short: "File characters into the vocabulary by their pinyin readings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var chars []domain.Character
			for _, arg := range args {
				for _, r := range strings.TrimSpace(arg) {
					c, err := domain.ParseCharacter(string(r))
					if err != nil {
						return fmt.Errorf("invalid character %q: %w", r, err)
					}
					chars = append(chars, c)
				}
			}

			path := opts.cfg.Vocabulary.Path
			m, err := vocabulary.Load(path)
			if err != nil {
				return err
			}

			grouped, unknown := vocabulary.Group(chars)
			for spelling, sounds := range grouped {
				for sound, cs := range sounds {
					for _, c := range cs {
						m.Add(spelling, sound, c)
					}
				}
			}
			for _, c := range unknown {
				slog.Warn("No pinyin reading, skipped", "character", string(c))
			}

			if err := vocabulary.Save(path, m); err != nil {
				return err
			}
			slog.Info("Vocabulary updated", "path", path, "characters", len(m.Characters()))
			return nil
		},
	}
}

func newVocabSyncCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Clone or pull the vocabulary repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.Vocabulary.GitURL == "" {
				return fmt.Errorf("vocabulary.git_url is not set")
			}
			path, err := sync.Vocabulary(cmd.Context(), opts.cfg.Vocabulary, os.Stderr)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, path)
			return nil
		},
	}
}

func newVocabSpellingsCommand(opts *rootOptions) *cobra.Command {
	var pairs bool

	cmd := &cobra.Command{
		Use:   "spellings",
		Short: "List spellings, or with --pairs the values vocabulary.spelling_pairs accepts",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := sync.Vocabulary(cmd.Context(), opts.cfg.Vocabulary, nil)
			if err != nil {
				return err
			}
			m, err := vocabulary.Load(path)
			if err != nil {
				return err
			}
			if !pairs {
				return vocabulary.WriteSpellings(os.Stdout, m)
			}

			selected, err := vocabulary.ParseSpellingPairs(opts.cfg.Vocabulary.SpellingPairs)
			if err != nil {
				return err
			}
			return vocabulary.WriteSpellingPairs(os.Stdout, m, selected)
		},
	}
	cmd.Flags().BoolVar(&pairs, "pairs", false, "List every spelling combination with its candidate count")
	return cmd
}
