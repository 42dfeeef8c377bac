package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Character is a single character eligible to appear in a name, for example "安".
type Character string

// ParseCharacter trims surrounding whitespace, normalizes to NFC and checks
// that exactly one code point remains.
func ParseCharacter(s string) (Character, error) {
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" {
		return "", errors.New("empty character")
	}
	if n := utf8.RuneCountInString(s); n != 1 {
		return "", fmt.Errorf("%q has %d characters, want 1", s, n)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsControl(r) || unicode.IsSpace(r) {
		return "", fmt.Errorf("%q is not a printable character", s)
	}
	return Character(s), nil
}

// Pair is an ordered two-character name candidate.
type Pair struct {
	First  Character
	Second Character
}

// NewPair builds a pair from two raw strings.
func NewPair(first, second string) (Pair, error) {
	a, err := ParseCharacter(first)
	if err != nil {
		return Pair{}, fmt.Errorf("first character: %w", err)
	}
	b, err := ParseCharacter(second)
	if err != nil {
		return Pair{}, fmt.Errorf("second character: %w", err)
	}
	return Pair{First: a, Second: b}, nil
}

// ParsePair splits a rendered name such as "安心" back into a pair.
func ParsePair(s string) (Pair, error) {
	runes := []rune(norm.NFC.String(strings.TrimSpace(s)))
	if len(runes) != 2 {
		return Pair{}, fmt.Errorf("%q has %d characters, want 2", s, len(runes))
	}
	return NewPair(string(runes[0]), string(runes[1]))
}

// IsSelfPair reports whether both slots hold the same character.
func (p Pair) IsSelfPair() bool {
	return p.First == p.Second
}

// String renders the pair as the name it spells.
func (p Pair) String() string {
	return string(p.First) + string(p.Second)
}

// Compare orders pairs by first character, then second, in code-point order.
func (p Pair) Compare(o Pair) int {
	if c := strings.Compare(string(p.First), string(o.First)); c != 0 {
		return c
	}
	return strings.Compare(string(p.Second), string(o.Second))
}
