package scoring

import (
	"math"
	"testing"

	"github.com/conorfennell/namepick/internal/domain"
)

func pair(a, b string) domain.Pair {
	return domain.Pair{First: domain.Character(a), Second: domain.Character(b)}
}

func TestScore(t *testing.T) {
	params := DefaultParams()

	t.Run("Self pair before any accept is the sentinel", func(t *testing.T) {
		tallies := NewTallies()
		if got := params.Score(tallies, pair("安", "安")); got != params.SelfPairSentinel {
			t.Errorf("Expected sentinel %.2f, but got %.2f", params.SelfPairSentinel, got)
		}
	})

	t.Run("Empty history scores zero", func(t *testing.T) {
		tallies := NewTallies()
		if got := params.Score(tallies, pair("安", "心")); got != 0 {
			t.Errorf("Expected 0, but got %.2f", got)
		}
	})

	t.Run("Self pair is scored normally after an accept", func(t *testing.T) {
		tallies := NewTallies()
		tallies.Add(pair("安", "心"), domain.Accept)
		// A1[安]/1 + A2[安]/1 = 1 + 0
		if got := params.Score(tallies, pair("安", "安")); got != 1 {
			t.Errorf("Expected 1, but got %.2f", got)
		}
	})

	t.Run("Refusals subtract per slot", func(t *testing.T) {
		tallies := NewTallies()
		tallies.Add(pair("安", "心"), domain.Accept)
		tallies.Add(pair("心", "心"), domain.Refuse)
		tallies.Add(pair("心", "安"), domain.Refuse)
		// A2[心]/1 - R1[心]/2 - R2[心]/2 = 1 - 1 - 0.5
		got := params.Score(tallies, pair("心", "心"))
		if math.Abs(got-(-0.5)) > 1e-9 {
			t.Errorf("Expected -0.5, but got %.4f", got)
		}
	})

	t.Run("Sentinel is below every regular score", func(t *testing.T) {
		tallies := NewTallies()
		tallies.Add(pair("安", "月"), domain.Refuse)
		tallies.Add(pair("月", "心"), domain.Refuse)
		got := params.Score(tallies, pair("安", "安"))
		if got != params.SelfPairSentinel {
			t.Fatalf("Expected the sentinel for a self pair, got %.2f", got)
		}
		// Worst undecided pair: R1[安] + R2[心] == |R|.
		regular := params.Score(tallies, pair("安", "心"))
		if regular != -1 {
			t.Errorf("Expected -1, but got %.2f", regular)
		}
		if regular <= params.SelfPairSentinel {
			t.Errorf("Expected regular score %.2f to be above the sentinel", regular)
		}
	})
}

func TestTalliesEqual(t *testing.T) {
	a := NewTallies()
	b := NewTallies()
	a.Add(pair("安", "心"), domain.Accept)
	if a.Equal(b) {
		t.Error("Expected tallies with different counts to differ")
	}
	b.Add(pair("安", "心"), domain.Accept)
	b.RefusedFirst["安"] = 0
	if !a.Equal(b) {
		t.Error("Expected zero entries to be ignored when comparing")
	}
}
