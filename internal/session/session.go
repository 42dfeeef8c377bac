package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/conorfennell/namepick/internal/domain"
	"github.com/conorfennell/namepick/internal/scoring"
	"github.com/conorfennell/namepick/internal/selector"
)

// Store loads and saves the decision history.
type Store interface {
	LoadHistory(ctx context.Context) (domain.History, error)
	SaveHistory(ctx context.Context, h domain.History) error
}

// Stats summarizes a session for the review surfaces.
type Stats struct {
	Accepted  int            `json:"accepted"`
	Refused   int            `json:"refused"`
	Remaining int            `json:"remaining"`
	Unsaved   int            `json:"unsaved"`
	Current   string         `json:"current,omitempty"`
	Score     float64        `json:"score"`
	TopFirst  map[string]int `json:"top_first,omitempty"`
	TopSecond map[string]int `json:"top_second,omitempty"`
	Upcoming  []string       `json:"upcoming,omitempty"`
}

// upcomingLimit caps how many queued candidates Stats reports.
const upcomingLimit = 5

// Session ties a selector to a store. Decisions stay in memory until Save.
type Session struct {
	mu      sync.Mutex
	sel     *selector.Selector
	store   Store
	unsaved int
}

// Open loads the stored history into a new selector over source and offers
// the first candidate. Pairs recorded with both outcomes keep the first one
// loaded (accepted) and are logged.
func Open(ctx context.Context, source selector.Source, store Store, params *scoring.Params) (*Session, error) {
	h, err := store.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load decisions: %w", err)
	}

	sel := selector.New(source, selector.WithParams(params))
	record := func(pairs []domain.Pair, o domain.Outcome) {
		for _, p := range pairs {
			if err := sel.Record(p, o); err != nil {
				slog.Warn("Skipping conflicting decision", "pair", p.String(), "outcome", o.String(), "error", err)
			}
		}
	}
	record(h.Accepted, domain.Accept)
	record(h.Refused, domain.Refuse)

	if err := sel.Verify(); err != nil {
		return nil, err
	}
	sel.Rebuild()
	if _, err := sel.Next(); err != nil && !errors.Is(err, selector.ErrNoCandidates) {
		return nil, err
	}

	t := sel.Tallies()
	slog.Info("Session opened",
		"accepted", t.Accepted,
		"refused", t.Refused,
		"skipped", h.Len()-t.Accepted-t.Refused,
		"remaining", sel.Remaining(),
	)
	return &Session{sel: sel, store: store}, nil
}

// Current returns the pair on offer. ok is false once nothing is left.
func (s *Session) Current() (domain.Pair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.sel.Current()
	return c.Pair, ok
}

// Decide applies o to the pair on offer and advances to the next one.
func (s *Session) Decide(o domain.Outcome) (domain.Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decide(o)
}

// DecidePair is Decide guarded against stale requests: it fails unless p is
// still the pair on offer.
func (s *Session) DecidePair(p domain.Pair, o domain.Outcome) (domain.Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.sel.Current()
	if !ok {
		return domain.Pair{}, selector.ErrNothingOffered
	}
	if c.Pair != p {
		return domain.Pair{}, fmt.Errorf("%s is no longer on offer (current is %s)", p, c.Pair)
	}
	return s.decide(o)
}

func (s *Session) decide(o domain.Outcome) (domain.Pair, error) {
	decided, err := s.sel.Decide(o)
	if err != nil {
		return domain.Pair{}, err
	}
	s.unsaved++
	slog.Debug("Decided", "pair", decided.String(), "outcome", o.String(), "remaining", s.sel.Remaining())
	return decided, nil
}

// Save writes the full history to the store.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.sel.History()
	if err := s.store.SaveHistory(ctx, h); err != nil {
		return fmt.Errorf("failed to save decisions: %w", err)
	}
	s.unsaved = 0
	slog.Info("Decisions saved", "accepted", len(h.Accepted), "refused", len(h.Refused))
	return nil
}

// Dirty reports whether decisions were made since the last save.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsaved > 0
}

// Remaining returns the number of undecided candidates, including the current one.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Remaining()
}

// Accepted returns the accepted names in order.
func (s *Session) Accepted() []domain.Pair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Accepted()
}

// Refused returns the refused names in order.
func (s *Session) Refused() []domain.Pair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Refused()
}

// Stats reports counts and the per-slot accepted tallies.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.sel.Tallies()
	st := Stats{
		Accepted:  t.Accepted,
		Refused:   t.Refused,
		Remaining: s.sel.Remaining(),
		Unsaved:   s.unsaved,
		TopFirst:  toStrings(t.AcceptedFirst),
		TopSecond: toStrings(t.AcceptedSecond),
	}
	if c, ok := s.sel.Current(); ok {
		st.Current = c.Pair.String()
		st.Score = c.Score
	}
	for _, c := range s.sel.Queue() {
		if len(st.Upcoming) == upcomingLimit {
			break
		}
		st.Upcoming = append(st.Upcoming, c.Pair.String())
	}
	return st
}

func toStrings(t scoring.Tally) map[string]int {
	if len(t) == 0 {
		return nil
	}
	out := make(map[string]int, len(t))
	for c, n := range t {
		if n > 0 {
			out[string(c)] = n
		}
	}
	return out
}
