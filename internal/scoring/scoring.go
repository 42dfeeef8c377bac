package scoring

import "github.com/conorfennell/namepick/internal/domain"

// Tally counts how often each character occupied a slot among decided pairs.
type Tally map[domain.Character]int

// Tallies holds the four position tallies and the size of each decision set.
type Tallies struct {
	AcceptedFirst  Tally
	AcceptedSecond Tally
	RefusedFirst   Tally
	RefusedSecond  Tally
	Accepted       int
	Refused        int
}

// NewTallies returns empty tallies ready for Add.
func NewTallies() Tallies {
	return Tallies{
		AcceptedFirst:  Tally{},
		AcceptedSecond: Tally{},
		RefusedFirst:   Tally{},
		RefusedSecond:  Tally{},
	}
}

// Add counts one decision. Callers must not add the same pair twice.
func (t *Tallies) Add(p domain.Pair, o domain.Outcome) {
	switch o {
	case domain.Accept:
		t.AcceptedFirst[p.First]++
		t.AcceptedSecond[p.Second]++
		t.Accepted++
	case domain.Refuse:
		t.RefusedFirst[p.First]++
		t.RefusedSecond[p.Second]++
		t.Refused++
	}
}

// Equal reports whether two tallies hold the same counts.
// Zero entries are treated as absent.
func (t Tallies) Equal(o Tallies) bool {
	return t.Accepted == o.Accepted && t.Refused == o.Refused &&
		equalTally(t.AcceptedFirst, o.AcceptedFirst) &&
		equalTally(t.AcceptedSecond, o.AcceptedSecond) &&
		equalTally(t.RefusedFirst, o.RefusedFirst) &&
		equalTally(t.RefusedSecond, o.RefusedSecond)
}

func equalTally(a, b Tally) bool {
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	for k, v := range b {
		if a[k] != v {
			return false
		}
	}
	return true
}

// Params holds the tunables of the scoring function.
type Params struct {
	// SelfPairSentinel is returned for (a, a) while nothing has been accepted.
	// It must stay below -1, the lowest regular score.
	SelfPairSentinel float64
}

// DefaultParams returns the parameters used when nothing is configured.
func DefaultParams() *Params {
	return &Params{
		SelfPairSentinel: -2.0,
	}
}

// Score rates a pair by how often its characters were accepted or refused in
// the same slots. Higher is better.
func (p *Params) Score(t Tallies, pair domain.Pair) float64 {
	if t.Accepted == 0 && pair.IsSelfPair() {
		return p.SelfPairSentinel
	}

	var score float64
	if t.Accepted > 0 {
		n := float64(t.Accepted)
		score += float64(t.AcceptedFirst[pair.First]) / n
		score += float64(t.AcceptedSecond[pair.Second]) / n
	}
	if t.Refused > 0 {
		n := float64(t.Refused)
		score -= float64(t.RefusedFirst[pair.First]) / n
		score -= float64(t.RefusedSecond[pair.Second]) / n
	}
	return score
}
