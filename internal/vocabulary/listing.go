package vocabulary

import (
	"fmt"
	"io"
	"strings"
)

// WriteSpellings lists each spelling with its characters, one per line.
func WriteSpellings(w io.Writer, m Mapping) error {
	for _, spelling := range m.Spellings() {
		chars := m.CharactersOf(spelling)
		names := make([]string, len(chars))
		for i, c := range chars {
			names[i] = string(c)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", spelling, strings.Join(names, " ")); err != nil {
			return err
		}
	}
	return nil
}

// WriteSpellingPairs lists every ordered spelling combination with the number
// of candidates it yields. Combinations in selected are marked with "*".
func WriteSpellingPairs(w io.Writer, m Mapping, selected []SpellingPair) error {
	chosen := make(map[SpellingPair]bool, len(selected))
	for _, sp := range selected {
		chosen[sp] = true
	}

	spellings := m.Spellings()
	for _, first := range spellings {
		for _, second := range spellings {
			sp := SpellingPair{First: first, Second: second}
			mark := " "
			if chosen[sp] {
				mark = "*"
			}
			n := len(m.CharactersOf(first)) * len(m.CharactersOf(second))
			if _, err := fmt.Fprintf(w, "%s %s\t%d\n", mark, sp, n); err != nil {
				return err
			}
		}
	}
	return nil
}
