package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/conorfennell/namepick/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Execute the schema to create tables if they don't exist.
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// RecordDecision inserts or replaces the outcome of a single pair.
func (db *DB) RecordDecision(ctx context.Context, d domain.Decision) error {
	if !d.Outcome.Valid() {
		return fmt.Errorf("failed to record decision for %s: invalid outcome %d", d.Pair, int(d.Outcome))
	}
	if d.DecidedAt.IsZero() {
		d.DecidedAt = time.Now()
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO decisions (first, second, outcome, decided_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(first, second) DO UPDATE SET outcome = excluded.outcome, decided_at = excluded.decided_at
	`,
		string(d.Pair.First),
		string(d.Pair.Second),
		int(d.Outcome),
		d.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record decision for %s: %w", d.Pair, err)
	}
	return nil
}

// FindDecision retrieves the decision for a pair. It returns nil when the
// pair has not been decided.
func (db *DB) FindDecision(ctx context.Context, p domain.Pair) (*domain.Decision, error) {
	var d domain.Decision
	var first, second string
	var outcome int
	row := db.conn.QueryRowContext(ctx, `
		SELECT first, second, outcome, decided_at
		FROM decisions WHERE first = ? AND second = ?
	`, string(p.First), string(p.Second))

	err := row.Scan(&first, &second, &outcome, &d.DecidedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Pair not decided
		}
		return nil, fmt.Errorf("failed to find decision for %s: %w", p, err)
	}
	d.Pair = domain.Pair{First: domain.Character(first), Second: domain.Character(second)}
	d.Outcome = domain.Outcome(outcome)
	return &d, nil
}

// LoadHistory retrieves every decided pair, split by outcome.
func (db *DB) LoadHistory(ctx context.Context) (domain.History, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT first, second, outcome
		FROM decisions
		ORDER BY first, second
	`)
	if err != nil {
		return domain.History{}, fmt.Errorf("failed to load decisions: %w", err)
	}
	defer rows.Close()

	var h domain.History
	for rows.Next() {
		var first, second string
		var outcome int
		if err := rows.Scan(&first, &second, &outcome); err != nil {
			return domain.History{}, fmt.Errorf("failed to scan decision row: %w", err)
		}
		p := domain.Pair{First: domain.Character(first), Second: domain.Character(second)}
		switch domain.Outcome(outcome) {
		case domain.Accept:
			h.Accepted = append(h.Accepted, p)
		case domain.Refuse:
			h.Refused = append(h.Refused, p)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.History{}, fmt.Errorf("failed to iterate decisions: %w", err)
	}
	return h, nil
}

// SaveHistory replaces the stored decisions with h in one transaction.
// Pairs that keep their outcome keep their original decided_at.
func (db *DB) SaveHistory(ctx context.Context, h domain.History) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `CREATE TEMP TABLE IF NOT EXISTS keep (first TEXT, second TEXT, outcome INTEGER)`); err != nil {
		return fmt.Errorf("failed to prepare save: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM keep`); err != nil {
		return fmt.Errorf("failed to prepare save: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO keep (first, second, outcome) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare save: %w", err)
	}
	defer stmt.Close()

	add := func(pairs []domain.Pair, o domain.Outcome) error {
		for _, p := range pairs {
			if _, err := stmt.ExecContext(ctx, string(p.First), string(p.Second), int(o)); err != nil {
				return fmt.Errorf("failed to stage %s: %w", p, err)
			}
		}
		return nil
	}
	if err := add(h.Accepted, domain.Accept); err != nil {
		return err
	}
	if err := add(h.Refused, domain.Refuse); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM decisions
		WHERE NOT EXISTS (
			SELECT 1 FROM keep
			WHERE keep.first = decisions.first AND keep.second = decisions.second AND keep.outcome = decisions.outcome
		)
	`); err != nil {
		return fmt.Errorf("failed to remove stale decisions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO decisions (first, second, outcome, decided_at)
		SELECT first, second, outcome, ? FROM keep
	`, time.Now()); err != nil {
		return fmt.Errorf("failed to insert decisions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit decisions: %w", err)
	}
	return nil
}

// CountByOutcome returns how many pairs hold each outcome.
func (db *DB) CountByOutcome(ctx context.Context) (map[domain.Outcome]int, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT outcome, COUNT(*)
		FROM decisions
		GROUP BY outcome
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count decisions: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Outcome]int)
	for rows.Next() {
		var outcome, n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts[domain.Outcome(outcome)] = n
	}
	return counts, rows.Err()
}

// ImportResult counts what ImportHistory wrote.
type ImportResult struct {
	Imported int
	Skipped  int
}

// ImportHistory records every pair of h, stamped with at. Pairs already
// stored with the same outcome are skipped so their decided_at survives.
// Refusals are applied first, so a pair listed under both outcomes ends up
// accepted.
func (db *DB) ImportHistory(ctx context.Context, h domain.History, at time.Time) (ImportResult, error) {
	var res ImportResult
	apply := func(pairs []domain.Pair, o domain.Outcome) error {
		for _, p := range pairs {
			existing, err := db.FindDecision(ctx, p)
			if err != nil {
				return err
			}
			if existing != nil && existing.Outcome == o {
				res.Skipped++
				continue
			}
			if err := db.RecordDecision(ctx, domain.Decision{Pair: p, Outcome: o, DecidedAt: at}); err != nil {
				return err
			}
			res.Imported++
		}
		return nil
	}
	if err := apply(h.Refused, domain.Refuse); err != nil {
		return res, err
	}
	if err := apply(h.Accepted, domain.Accept); err != nil {
		return res, err
	}
	return res, nil
}
