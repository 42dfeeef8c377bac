package domain

import "testing"

func TestParseCharacter(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    Character
		wantErr bool
	}{
		{name: "Han character", input: "安", want: "安"},
		{name: "Surrounding spaces", input: "  心 ", want: "心"},
		{name: "Decomposed form is composed", input: "é", want: "é"},
		{name: "Empty", input: "", wantErr: true},
		{name: "Only spaces", input: "   ", wantErr: true},
		{name: "Two characters", input: "安心", wantErr: true},
		{name: "Control character", input: "\t", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCharacter(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected an error for %q, got %q", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCharacter(%q) returned an unexpected error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("Expected %q, but got %q", tc.want, got)
			}
		})
	}
}

func TestParsePair(t *testing.T) {
	p, err := ParsePair("安心")
	if err != nil {
		t.Fatalf("ParsePair returned an unexpected error: %v", err)
	}
	if p.First != "安" || p.Second != "心" {
		t.Errorf("Expected (安,心), got (%s,%s)", p.First, p.Second)
	}
	if p.String() != "安心" {
		t.Errorf("Expected String() to be '安心', got '%s'", p.String())
	}

	for _, bad := range []string{"", "安", "安心安"} {
		if _, err := ParsePair(bad); err == nil {
			t.Errorf("Expected an error for %q", bad)
		}
	}
}

func TestPairCompare(t *testing.T) {
	a := Pair{First: "安", Second: "心"}
	b := Pair{First: "安", Second: "安"}
	c := Pair{First: "心", Second: "安"}

	if a.Compare(a) != 0 {
		t.Error("Expected a pair to compare equal to itself")
	}
	if b.Compare(a) >= 0 {
		t.Error("Expected (安,安) to sort before (安,心)")
	}
	if a.Compare(c) >= 0 {
		t.Error("Expected (安,心) to sort before (心,安)")
	}
	if !b.IsSelfPair() || a.IsSelfPair() {
		t.Error("IsSelfPair reported the wrong result")
	}
}

func TestParseOutcome(t *testing.T) {
	for _, s := range []string{"accept", "A", "y", "yes"} {
		if o, err := ParseOutcome(s); err != nil || o != Accept {
			t.Errorf("ParseOutcome(%q) = %v, %v; want Accept", s, o, err)
		}
	}
	for _, s := range []string{"refuse", "r", "N", "no"} {
		if o, err := ParseOutcome(s); err != nil || o != Refuse {
			t.Errorf("ParseOutcome(%q) = %v, %v; want Refuse", s, o, err)
		}
	}
	if _, err := ParseOutcome("maybe"); err == nil {
		t.Error("Expected an error for an unknown outcome")
	}
}
