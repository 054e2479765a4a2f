// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the last-known output of each pipeline stage for the
// current interactive session. The store is an in-memory SQLite database:
// state lives exactly as long as the process, which keeps the no-persistence
// session contract while retaining transactional wholesale overwrites. Only
// the pipeline driver writes; the display and export layers read snapshots.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/researcher-agent/pkg/types"
)

// memoryDSN names a private in-memory database.
const memoryDSN = ":memory:"

// Store manages the session database.
type Store struct {
	db *sql.DB
}

// Open creates an in-memory session store.
func Open() (*Store, error) {
	return OpenDSN(memoryDSN)
}

// OpenDSN opens a session store at the given SQLite DSN and creates the
// schema. The pool is limited to one connection: an in-memory database exists
// per connection, so a second connection would see an empty database.
func OpenDSN(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection, discarding all session state.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			started_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS artifacts (
			session_id TEXT NOT NULL REFERENCES sessions(id),
			stage TEXT NOT NULL,
			payload TEXT NOT NULL,
			saved_at TEXT NOT NULL,
			PRIMARY KEY (session_id, stage)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// StartRun records a new run for the session: the session row is upserted
// with the new topic and every prior stage artifact is removed, so each run
// overwrites the session wholesale.
func (s *Store) StartRun(ctx context.Context, sessionID, topic string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM artifacts WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clearing artifacts: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, topic, started_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET topic=excluded.topic, started_at=excluded.started_at`,
		sessionID, topic, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting session: %w", err)
	}

	return tx.Commit()
}

// SaveStage stores one stage's output for the session, replacing any prior
// value for the same stage.
func (s *Store) SaveStage(ctx context.Context, sessionID string, stage types.Stage, artifact any) error {
	payload, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("marshaling %s artifact: %w", stage, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO artifacts (session_id, stage, payload, saved_at) VALUES (?, ?, ?, ?)`,
		sessionID, string(stage), string(payload), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving %s artifact: %w", stage, err)
	}
	return nil
}

// Reset removes the session and all its artifacts.
func (s *Store) Reset(ctx context.Context, sessionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM artifacts WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clearing artifacts: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return tx.Commit()
}

// Snapshot assembles the current SessionState for a session. Stages that have
// not completed are nil. An unknown session returns a zero state with only
// the requested ID set.
func (s *Store) Snapshot(ctx context.Context, sessionID string) (types.SessionState, error) {
	state := types.SessionState{SessionID: sessionID}

	err := s.db.QueryRowContext(ctx,
		`SELECT topic FROM sessions WHERE id = ?`, sessionID,
	).Scan(&state.Topic)
	if errors.Is(err, sql.ErrNoRows) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("reading session: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT stage, payload FROM artifacts WHERE session_id = ?`, sessionID)
	if err != nil {
		return state, fmt.Errorf("reading artifacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var stage, payload string
		if err := rows.Scan(&stage, &payload); err != nil {
			return state, fmt.Errorf("scanning artifact: %w", err)
		}
		if err := unmarshalStage(&state, types.Stage(stage), []byte(payload)); err != nil {
			return state, err
		}
	}
	return state, rows.Err()
}

// unmarshalStage decodes one stored artifact into its SessionState field.
func unmarshalStage(state *types.SessionState, stage types.Stage, payload []byte) error {
	var err error
	switch stage {
	case types.StagePlan:
		state.Plan = &types.ResearchPlan{}
		err = json.Unmarshal(payload, state.Plan)
	case types.StageFindings:
		state.Findings = &types.Findings{}
		err = json.Unmarshal(payload, state.Findings)
	case types.StageReport:
		state.Report = &types.Report{}
		err = json.Unmarshal(payload, state.Report)
	case types.StageCritique:
		state.Critique = &types.Critique{}
		err = json.Unmarshal(payload, state.Critique)
	default:
		return fmt.Errorf("unknown stage %q in store", stage)
	}
	if err != nil {
		return fmt.Errorf("decoding %s artifact: %w", stage, err)
	}
	return nil
}
