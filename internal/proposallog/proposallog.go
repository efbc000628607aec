// Package proposallog persists an append-only record of every SearchStep a
// generator emits, for offline analysis of a search run. It is purely
// observational: it never feeds back into Propose.
package proposallog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/corvid-labs/segforge/internal/searchstep"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS proposal_log (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id          TEXT NOT NULL,
	step_id         TEXT NOT NULL,
	operator_tag    TEXT NOT NULL,
	sentence_index  INTEGER NOT NULL,
	modification_count INTEGER NOT NULL,
	span_start      INTEGER NOT NULL,
	span_end        INTEGER NOT NULL,
	created_at      TEXT NOT NULL
);
`
// #endregion schema

// #region store
// Store is a SQLite-backed sink for emitted SearchSteps.
type Store struct {
	db    *sql.DB
	runID string
}

// Open opens (creating if needed) the SQLite database at dbPath and starts
// a new run identified by a fresh UUID.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("proposallog: open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("proposallog: pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("proposallog: migrate: %w", err)
	}
	return &Store{db: db, runID: uuid.New().String()}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for ad-hoc inspection queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// RunID returns the identifier for this Store's run.
func (s *Store) RunID() string {
	return s.runID
}

// Record appends one row per modification in step.
func (s *Store) Record(step *searchstep.Step) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, m := range step.Modifications {
		_, err := s.db.Exec(
			`INSERT INTO proposal_log
			 (run_id, step_id, operator_tag, sentence_index, modification_count, span_start, span_end, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			s.runID, step.ID, step.OperatorTag, m.SentenceIndex, len(step.Modifications), m.Start, m.End, now,
		)
		if err != nil {
			return fmt.Errorf("proposallog: insert row: %w", err)
		}
	}
	return nil
}

// Row is one logged modification, as returned by Recent.
type Row struct {
	RunID             string
	StepID            string
	OperatorTag       string
	SentenceIndex     int
	ModificationCount int
	SpanStart         int
	SpanEnd           int
	CreatedAt         string
}

// Recent returns the most recently logged rows, newest first.
func (s *Store) Recent(limit int) ([]Row, error) {
	rows, err := s.db.Query(
		`SELECT run_id, step_id, operator_tag, sentence_index, modification_count, span_start, span_end, created_at
		 FROM proposal_log ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("proposallog: query recent: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.RunID, &r.StepID, &r.OperatorTag, &r.SentenceIndex, &r.ModificationCount, &r.SpanStart, &r.SpanEnd, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("proposallog: scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
// #endregion store
