package vocabulary

import (
	"fmt"
	"strings"

	"github.com/conorfennell/namepick/internal/domain"
)

// SpellingPair selects candidates whose first character is spelled First and
// whose second character is spelled Second.
type SpellingPair struct {
	First  string
	Second string
}

// ParseSpellingPair reads "an-xin" style selections.
func ParseSpellingPair(s string) (SpellingPair, error) {
	first, second, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok || first == "" || second == "" {
		return SpellingPair{}, fmt.Errorf("spelling pair %q must look like first-second", s)
	}
	return SpellingPair{First: strings.ToLower(first), Second: strings.ToLower(second)}, nil
}

// ParseSpellingPairs parses every selection in raw.
func ParseSpellingPairs(raw []string) ([]SpellingPair, error) {
	selected := make([]SpellingPair, 0, len(raw))
	for _, r := range raw {
		sp, err := ParseSpellingPair(r)
		if err != nil {
			return nil, err
		}
		selected = append(selected, sp)
	}
	return selected, nil
}

func (sp SpellingPair) String() string {
	return sp.First + "-" + sp.Second
}

// SpellingPairs limits candidates to the selected spelling combinations
// instead of the full cross product.
type SpellingPairs struct {
	mapping  Mapping
	selected []SpellingPair
}

// NewSpellingPairs checks every selection against the mapping.
func NewSpellingPairs(m Mapping, selected []SpellingPair) (*SpellingPairs, error) {
	for _, sp := range selected {
		if _, ok := m[sp.First]; !ok {
			return nil, fmt.Errorf("spelling pair %s: unknown spelling %q", sp, sp.First)
		}
		if _, ok := m[sp.Second]; !ok {
			return nil, fmt.Errorf("spelling pair %s: unknown spelling %q", sp, sp.Second)
		}
	}
	return &SpellingPairs{mapping: m, selected: selected}, nil
}

// Pairs enumerates the candidates of every selected spelling pair.
func (s *SpellingPairs) Pairs() []domain.Pair {
	var pairs []domain.Pair
	for _, sp := range s.selected {
		for _, a := range s.mapping.CharactersOf(sp.First) {
			for _, b := range s.mapping.CharactersOf(sp.Second) {
				pairs = append(pairs, domain.Pair{First: a, Second: b})
			}
		}
	}
	return pairs
}

// Characters returns every character that can appear in a selected pair.
func (s *SpellingPairs) Characters() []domain.Character {
	sub := Mapping{}
	for _, sp := range s.selected {
		sub[sp.First] = s.mapping[sp.First]
		sub[sp.Second] = s.mapping[sp.Second]
	}
	return sub.Characters()
}
