package selector

import (
	"errors"
	"fmt"
	"slices"

	"github.com/conorfennell/namepick/internal/domain"
	"github.com/conorfennell/namepick/internal/scoring"
)

var (
	// ErrNoCandidates means every candidate pair has been decided.
	ErrNoCandidates = errors.New("no candidates remain")
	// ErrNothingOffered is returned by Decide when no pair is on offer.
	ErrNothingOffered = errors.New("no candidate is currently offered")
	// ErrConflict means a pair was recorded as both accepted and refused.
	ErrConflict = errors.New("pair already decided with the other outcome")
)

// Source yields the candidate pairs a selector draws from.
type Source interface {
	Pairs() []domain.Pair
}

// CrossProduct is the full vocabulary x vocabulary source, self pairs included.
type CrossProduct []domain.Character

// Pairs enumerates every ordered pair in code-point order.
func (v CrossProduct) Pairs() []domain.Pair {
	chars := slices.Clone([]domain.Character(v))
	slices.Sort(chars)
	chars = slices.Compact(chars)

	pairs := make([]domain.Pair, 0, len(chars)*len(chars))
	for _, a := range chars {
		for _, b := range chars {
			pairs = append(pairs, domain.Pair{First: a, Second: b})
		}
	}
	return pairs
}

// Candidate is a queued pair with the score it was ranked by.
type Candidate struct {
	Pair  domain.Pair
	Score float64
}

// Selector owns the decision sets, the position tallies and the ranked queue
// of undecided pairs. It is not safe for concurrent use.
type Selector struct {
	params   *scoring.Params
	source   Source
	accepted map[domain.Pair]struct{}
	refused  map[domain.Pair]struct{}
	tallies  scoring.Tallies
	queue    []Candidate
	current  *Candidate
}

// Option configures a Selector.
type Option func(*Selector)

// WithParams overrides the scoring parameters.
func WithParams(p *scoring.Params) Option {
	return func(s *Selector) {
		if p != nil {
			s.params = p
		}
	}
}

// New creates a selector over the given source with an empty history.
// Call Record for every prior decision, then Rebuild and Next.
func New(source Source, opts ...Option) *Selector {
	s := &Selector{
		params:   scoring.DefaultParams(),
		source:   source,
		accepted: make(map[domain.Pair]struct{}),
		refused:  make(map[domain.Pair]struct{}),
		tallies:  scoring.NewTallies(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record adds a prior decision without touching the queue.
// Recording the same decision twice is a no-op.
func (s *Selector) Record(p domain.Pair, o domain.Outcome) error {
	if !o.Valid() {
		return fmt.Errorf("failed to record %s: invalid outcome %d", p, int(o))
	}
	same, other := s.sets(o)
	if _, ok := other[p]; ok {
		return fmt.Errorf("failed to record %s as %s: %w", p, o, ErrConflict)
	}
	if _, ok := same[p]; ok {
		return nil
	}
	same[p] = struct{}{}
	s.tallies.Add(p, o)
	return nil
}

func (s *Selector) sets(o domain.Outcome) (same, other map[domain.Pair]struct{}) {
	if o == domain.Accept {
		return s.accepted, s.refused
	}
	return s.refused, s.accepted
}

// Decided reports whether p is in either decision set.
func (s *Selector) Decided(p domain.Pair) bool {
	_, a := s.accepted[p]
	_, r := s.refused[p]
	return a || r
}

// Score rates p against the current tallies.
func (s *Selector) Score(p domain.Pair) float64 {
	return s.params.Score(s.tallies, p)
}

// Rebuild rescores every undecided pair. The best candidate ends up first;
// equal scores keep code-point order.
func (s *Selector) Rebuild() {
	pairs := s.source.Pairs()
	queue := make([]Candidate, 0, len(pairs))
	seen := make(map[domain.Pair]struct{}, len(pairs))
	for _, p := range pairs {
		if _, dup := seen[p]; dup || s.Decided(p) {
			continue
		}
		seen[p] = struct{}{}
		queue = append(queue, Candidate{Pair: p, Score: s.Score(p)})
	}
	slices.SortStableFunc(queue, func(a, b Candidate) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return a.Pair.Compare(b.Pair)
	})
	s.queue = queue
}

// Next pops the best remaining candidate and offers it.
// It returns ErrNoCandidates once the queue is empty.
func (s *Selector) Next() (domain.Pair, error) {
	if len(s.queue) == 0 {
		s.current = nil
		return domain.Pair{}, ErrNoCandidates
	}
	c := s.queue[0]
	s.queue = s.queue[1:]
	s.current = &c
	return c.Pair, nil
}

// Current returns the pair on offer, if any.
func (s *Selector) Current() (Candidate, bool) {
	if s.current == nil {
		return Candidate{}, false
	}
	return *s.current, true
}

// Decide applies o to the offered pair, rescores and offers the next one.
// Running out of candidates afterwards is not an error; check Current.
func (s *Selector) Decide(o domain.Outcome) (domain.Pair, error) {
	if s.current == nil {
		return domain.Pair{}, ErrNothingOffered
	}
	decided := s.current.Pair
	if err := s.Record(decided, o); err != nil {
		return domain.Pair{}, err
	}
	s.Rebuild()
	if _, err := s.Next(); err != nil && !errors.Is(err, ErrNoCandidates) {
		return decided, err
	}
	return decided, nil
}

// Remaining returns the number of undecided candidates, including the one on
// offer.
func (s *Selector) Remaining() int {
	n := len(s.queue)
	if s.current != nil {
		n++
	}
	return n
}

// Queue returns a copy of the ranked candidates still waiting behind the
// current one.
func (s *Selector) Queue() []Candidate {
	return slices.Clone(s.queue)
}

// Accepted returns the accepted pairs in code-point order.
func (s *Selector) Accepted() []domain.Pair {
	return sortedPairs(s.accepted)
}

// Refused returns the refused pairs in code-point order.
func (s *Selector) Refused() []domain.Pair {
	return sortedPairs(s.refused)
}

// History returns both decision sets.
func (s *Selector) History() domain.History {
	return domain.History{Accepted: s.Accepted(), Refused: s.Refused()}
}

// Tallies returns the incrementally maintained tallies.
func (s *Selector) Tallies() scoring.Tallies {
	return s.tallies
}

// Verify recounts the tallies from the decision sets and compares them with
// the incremental ones.
func (s *Selector) Verify() error {
	recount := scoring.NewTallies()
	for p := range s.accepted {
		recount.Add(p, domain.Accept)
	}
	for p := range s.refused {
		recount.Add(p, domain.Refuse)
	}
	if !recount.Equal(s.tallies) {
		return fmt.Errorf("tallies drifted: accepted %d/%d refused %d/%d",
			s.tallies.Accepted, recount.Accepted, s.tallies.Refused, recount.Refused)
	}
	return nil
}

func sortedPairs(set map[domain.Pair]struct{}) []domain.Pair {
	pairs := make([]domain.Pair, 0, len(set))
	for p := range set {
		pairs = append(pairs, p)
	}
	slices.SortFunc(pairs, domain.Pair.Compare)
	return pairs
}
