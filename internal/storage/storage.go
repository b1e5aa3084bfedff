// Package storage keeps evaluation runs in SQLite so rows can be looked up
// by position after the run.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/evaluator"
	"github.com/lehigh-university-libraries/entryeval/internal/models"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrNotFound is returned when a run or row does not exist.
var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// one connection serializes every reader and writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun stores a run and all of its rows and returns the new run id.
func (s *Store) SaveRun(ctx context.Context, run *evaluator.Run, meta models.RunMeta) (int64, error) {
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now()
	}
	entered, err := json.Marshal(meta.Entered)
	if err != nil {
		return 0, fmt.Errorf("failed to encode entered paths: %w", err)
	}
	stats, err := json.Marshal(run.Stats)
	if err != nil {
		return 0, fmt.Errorf("failed to encode stats: %w", err)
	}
	unmatched := run.Unmatched
	if unmatched == nil {
		unmatched = []evaluator.Unmatched{}
	}
	unmatchedJSON, err := json.Marshal(unmatched)
	if err != nil {
		return 0, fmt.Errorf("failed to encode unmatched records: %w", err)
	}
	var diagnostic sql.NullString
	if run.Diagnostic != nil {
		b, err := json.Marshal(run.Diagnostic)
		if err != nil {
			return 0, fmt.Errorf("failed to encode diagnostic: %w", err)
		}
		diagnostic = sql.NullString{String: string(b), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (name, entered, ground_truth, created_at, total, matched, unmatched,
			match_rate, stats, diagnostic, unmatched_records)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, meta.Name, string(entered), meta.GroundTruth, meta.CreatedAt.UTC().Format(time.RFC3339),
		run.Stats.Total, run.Stats.Matched, run.Stats.Unmatched, run.Stats.MatchRate,
		string(stats), diagnostic, string(unmatchedJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_rows (run_id, position, image_id, match_method, overall_accuracy, data)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare row insert: %w", err)
	}
	defer stmt.Close()

	for i := range run.Rows {
		row := &run.Rows[i]
		data, err := json.Marshal(row)
		if err != nil {
			return 0, fmt.Errorf("failed to encode row %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, id, i, row.ImageID, string(row.Method), row.Overall.Accuracy, string(data)); err != nil {
			return 0, fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return id, nil
}

const runColumns = `id, name, entered, ground_truth, created_at, stats, diagnostic, unmatched_records`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*models.StoredRun, error) {
	var (
		r          models.StoredRun
		entered    string
		createdAt  string
		stats      string
		diagnostic sql.NullString
		unmatched  string
	)
	if err := sc.Scan(&r.ID, &r.Meta.Name, &entered, &r.Meta.GroundTruth, &createdAt, &stats, &diagnostic, &unmatched); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(entered), &r.Meta.Entered); err != nil {
		return nil, fmt.Errorf("failed to decode entered paths: %w", err)
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	r.Meta.CreatedAt = t
	if err := json.Unmarshal([]byte(stats), &r.Stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}
	if diagnostic.Valid {
		r.Diagnostic = &evaluator.Diagnostic{}
		if err := json.Unmarshal([]byte(diagnostic.String), r.Diagnostic); err != nil {
			return nil, fmt.Errorf("failed to decode diagnostic: %w", err)
		}
	}
	if err := json.Unmarshal([]byte(unmatched), &r.Unmatched); err != nil {
		return nil, fmt.Errorf("failed to decode unmatched records: %w", err)
	}
	return &r, nil
}

// ListRuns returns every stored run, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]models.StoredRun, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []models.StoredRun{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	return runs, nil
}

// Run returns the run with the given id.
func (s *Store) Run(ctx context.Context, id int64) (*models.StoredRun, error) {
	r, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", id, err)
	}
	return r, nil
}

// Row returns the row at the 0-based position of a run.
func (s *Store) Row(ctx context.Context, runID int64, position int) (*evaluator.Row, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM run_rows WHERE run_id = ? AND position = ?
	`, runID, position).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d row %d: %w", runID, position, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load row: %w", err)
	}

	var row evaluator.Row
	if err := json.Unmarshal([]byte(data), &row); err != nil {
		return nil, fmt.Errorf("failed to decode row: %w", err)
	}
	return &row, nil
}

// Rows returns every row of a run in position order.
func (s *Store) Rows(ctx context.Context, runID int64) ([]evaluator.Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT data FROM run_rows WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	out := []evaluator.Row{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var row evaluator.Row
		if err := json.Unmarshal([]byte(data), &row); err != nil {
			return nil, fmt.Errorf("failed to decode row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return out, nil
}
