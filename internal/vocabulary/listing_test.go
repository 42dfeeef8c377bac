package vocabulary

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteSpellings(t *testing.T) {
	m, err := Load(writeVocabulary(t, sampleVocabulary))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteSpellings(&buf, m); err != nil {
		t.Fatalf("WriteSpellings() returned an unexpected error: %v", err)
	}
	want := "an\t安 鞍\nxin\t信 心 欣\nyi\t怡\n"
	if buf.String() != want {
		t.Errorf("Expected\n%q\ngot\n%q", want, buf.String())
	}
}

func TestWriteSpellingPairs(t *testing.T) {
	m, err := Load(writeVocabulary(t, sampleVocabulary))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	selected, err := ParseSpellingPairs([]string{"an-xin"})
	if err != nil {
		t.Fatalf("ParseSpellingPairs() returned an unexpected error: %v", err)
	}
	if _, err := ParseSpellingPairs([]string{"an-xin", "anxin"}); err == nil {
		t.Error("Expected an error for a selection without a dash")
	}
	if err := WriteSpellingPairs(&buf, m, selected); err != nil {
		t.Fatalf("WriteSpellingPairs() returned an unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("Expected 3x3 combinations, got %d: %q", len(lines), lines)
	}

	testCases := []struct {
		line string
	}{
		{line: "* an-xin\t6"},
		{line: "  xin-an\t6"},
		{line: "  xin-xin\t9"},
		{line: "  yi-yi\t1"},
	}
	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			found := false
			for _, l := range lines {
				if l == tc.line {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected line %q in %q", tc.line, lines)
			}
		})
	}
}
