package domain

import (
	"fmt"
	"strings"
	"time"
)

// Outcome is the reviewer's verdict on a candidate pair.
type Outcome int

const (
	Accept Outcome = 1
	Refuse Outcome = 2
)

// ParseOutcome accepts "accept"/"refuse" and the short forms used by the
// console: a, y for Accept and r, n for Refuse.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accept", "a", "y", "yes":
		return Accept, nil
	case "refuse", "r", "n", "no":
		return Refuse, nil
	}
	return 0, fmt.Errorf("unknown outcome %q", s)
}

func (o Outcome) String() string {
	switch o {
	case Accept:
		return "accept"
	case Refuse:
		return "refuse"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Valid reports whether o is Accept or Refuse.
func (o Outcome) Valid() bool {
	return o == Accept || o == Refuse
}

// Decision records a single verdict on a pair.
// Decisions are terminal: a decided pair is never offered again.
type Decision struct {
	Pair      Pair
	Outcome   Outcome
	DecidedAt time.Time
}

// History holds every decided pair, split by outcome.
type History struct {
	Accepted []Pair
	Refused  []Pair
}

// Len returns the number of decided pairs.
func (h History) Len() int {
	return len(h.Accepted) + len(h.Refused)
}
