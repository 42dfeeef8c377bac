package decisionlog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/conorfennell/namepick/internal/domain"
	"golang.org/x/text/unicode/norm"
)

const (
	separator     = "\t"
	commentPrefix = "#"
)

// LineError reports a line that could not be read as a pair.
type LineError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d: %q: %v", e.Path, e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseFile reads a decision log from the given path.
func ParseFile(path string) ([]domain.Pair, []*LineError, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	pairs, warnings, err := Parse(file)
	for _, w := range warnings {
		w.Path = path
	}
	return pairs, warnings, err
}

// Parse reads one pair per line. A line is either two characters separated by
// a tab or, as older logs were written, the two characters run together.
// Lines that are neither are returned as warnings and skipped.
func Parse(r io.Reader) ([]domain.Pair, []*LineError, error) {
	scanner := bufio.NewScanner(r)
	var pairs []domain.Pair
	var warnings []*LineError
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, commentPrefix) {
			continue
		}

		p, err := parseLine(trimmed)
		if err != nil {
			warnings = append(warnings, &LineError{Line: lineNo, Text: line, Err: err})
			continue
		}
		pairs = append(pairs, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return pairs, warnings, nil
}

func parseLine(line string) (domain.Pair, error) {
	if strings.Contains(line, separator) {
		fields := strings.Split(line, separator)
		if len(fields) != 2 {
			return domain.Pair{}, fmt.Errorf("want 2 tab-separated fields, got %d", len(fields))
		}
		return domain.NewPair(fields[0], fields[1])
	}

	line = norm.NFC.String(line)
	if n := utf8.RuneCountInString(line); n != 2 {
		return domain.Pair{}, fmt.Errorf("want 2 characters, got %d", n)
	}
	return domain.ParsePair(line)
}

// Write emits pairs sorted and de-duplicated, one tab-separated pair per line.
func Write(w io.Writer, pairs []domain.Pair) error {
	sorted := slices.Clone(pairs)
	slices.SortFunc(sorted, domain.Pair.Compare)
	sorted = slices.Compact(sorted)

	bw := bufio.NewWriter(w)
	for _, p := range sorted {
		if _, err := fmt.Fprintf(bw, "%s%s%s\n", p.First, separator, p.Second); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile overwrites path with the given pairs.
func WriteFile(path string, pairs []domain.Pair) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Write(file, pairs); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
