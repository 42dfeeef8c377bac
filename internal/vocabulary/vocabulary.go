// Package vocabulary reads and writes the pool of characters names are built
// from. Characters are grouped by spelling (toneless pinyin) and then by sound
// (tone-marked pinyin):
//
//	an:
//	  ān: [安, 鞍]
//	xin:
//	  xīn: [心, 欣]
package vocabulary

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/conorfennell/namepick/internal/domain"
	"go.yaml.in/yaml/v3"
)

// Mapping is spelling -> sound -> characters.
type Mapping map[string]map[string][]domain.Character

// Load reads a mapping from a YAML file. A missing file is an empty mapping.
func Load(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Mapping{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary %s: %w", path, err)
	}

	var raw map[string]map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary %s: %w", path, err)
	}

	m := make(Mapping, len(raw))
	for spelling, sounds := range raw {
		for sound, words := range sounds {
			for _, w := range words {
				c, err := domain.ParseCharacter(w)
				if err != nil {
					return nil, fmt.Errorf("vocabulary %s: %s/%s: %w", path, spelling, sound, err)
				}
				m.Add(spelling, sound, c)
			}
		}
	}
	return m, nil
}

// Save writes the mapping as YAML, overwriting path.
func Save(path string, m Mapping) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode vocabulary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write vocabulary %s: %w", path, err)
	}
	return nil
}

// Add files c under spelling and sound unless it is already there.
func (m Mapping) Add(spelling, sound string, c domain.Character) {
	sounds, ok := m[spelling]
	if !ok {
		sounds = make(map[string][]domain.Character)
		m[spelling] = sounds
	}
	if !slices.Contains(sounds[sound], c) {
		sounds[sound] = append(sounds[sound], c)
	}
}

// Spellings returns the spelling groups in sorted order.
func (m Mapping) Spellings() []string {
	spellings := make([]string, 0, len(m))
	for s := range m {
		spellings = append(spellings, s)
	}
	slices.Sort(spellings)
	return spellings
}

// CharactersOf returns the characters filed under one spelling, sorted.
func (m Mapping) CharactersOf(spelling string) []domain.Character {
	var chars []domain.Character
	for _, words := range m[spelling] {
		chars = append(chars, words...)
	}
	slices.Sort(chars)
	return slices.Compact(chars)
}

// Characters flattens the mapping into the sorted set of all characters.
func (m Mapping) Characters() []domain.Character {
	var chars []domain.Character
	for spelling := range m {
		chars = append(chars, m.CharactersOf(spelling)...)
	}
	slices.Sort(chars)
	return slices.Compact(chars)
}
