package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/teranos/stoich/errors"
)

// Run is one recorded invocation of a table-processing command.
type Run struct {
	ID         string         `json:"id"`
	Command    string         `json:"command"`
	Input      string         `json:"input"`
	Outputs    []string       `json:"outputs"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	RowsIn     int            `json:"rows_in"`
	RowsOut    int            `json:"rows_out"`
	Rejections map[string]int `json:"rejections"` // rejection reason -> row count
}

// Duration is the wall time the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunStore persists runs.
type RunStore struct {
	db *sql.DB
}

// NewRunStore wraps an opened, migrated database.
func NewRunStore(db *sql.DB) *RunStore {
	return &RunStore{db: db}
}

const runColumns = "id, command, input, outputs, started_at, finished_at, rows_in, rows_out, rejections"

// Record inserts run.
func (s *RunStore) Record(ctx context.Context, run Run) error {
	outputs, err := json.Marshal(nonNilStrings(run.Outputs))
	if err != nil {
		return errors.Wrap(err, "encode outputs")
	}
	rejections, err := json.Marshal(nonNilCounts(run.Rejections))
	if err != nil {
		return errors.Wrap(err, "encode rejections")
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO runs ("+runColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.Command, run.Input, string(outputs),
		run.StartedAt.UTC().Format(time.RFC3339Nano), run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.RowsIn, run.RowsOut, string(rejections),
	)
	if err != nil {
		return errors.Wrapf(err, "record run %s", run.ID)
	}
	return nil
}

// List returns up to limit runs, newest first.
func (s *RunStore) List(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs ORDER BY started_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate runs")
	}
	return runs, nil
}

// Get returns the run with id, or an ErrNotFound error.
func (s *RunStore) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, errors.NewNotFoundError("run %s", id)
	}
	return run, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run                 Run
		outputs, rejections string
		started, finished   string
	)
	if err := sc.Scan(&run.ID, &run.Command, &run.Input, &outputs, &started, &finished,
		&run.RowsIn, &run.RowsOut, &rejections); err != nil {
		return Run{}, errors.Wrap(err, "scan run")
	}

	var err error
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, errors.Wrapf(err, "run %s started_at", run.ID)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return Run{}, errors.Wrapf(err, "run %s finished_at", run.ID)
	}
	if err := json.Unmarshal([]byte(outputs), &run.Outputs); err != nil {
		return Run{}, errors.Wrapf(err, "run %s outputs", run.ID)
	}
	if err := json.Unmarshal([]byte(rejections), &run.Rejections); err != nil {
		return Run{}, errors.Wrapf(err, "run %s rejections", run.ID)
	}
	return run, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilCounts(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
