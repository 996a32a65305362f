/*
Package sqlite provides a SQLite-backed payroll run archive.

PURPOSE:
  Keeps an audit trail of every payroll run: when it ran, for which payday,
  and every paycheck it produced. Implements payroll.Archive.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE or DELETE statements
  - A run id can be written once (primary key), a second save fails with
    generic.ErrDuplicateRun

KEY TABLES:
  payroll_runs:      One row per run, totals as JSON
  payroll_paychecks: One row per paycheck, amounts as decimal TEXT

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, plus WAL mode so readers never block
  behind the single writer.

USAGE:
  archive, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer archive.Close()

  engine := command.NewEngine(payroll.NewSystem(), command.WithArchive(archive))

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - payroll/archive.go: Interface definition
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
)

// Store implements payroll.Archive using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// An in-memory database lives and dies with its connection.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS payroll_runs (
		id TEXT PRIMARY KEY,
		pay_date TEXT NOT NULL,
		created_at TEXT NOT NULL,
		totals_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_payroll_runs_pay_date
		ON payroll_runs(pay_date);
	CREATE INDEX IF NOT EXISTS idx_payroll_runs_created_at
		ON payroll_runs(created_at DESC);

	CREATE TABLE IF NOT EXISTS payroll_paychecks (
		run_id TEXT NOT NULL REFERENCES payroll_runs(id),
		employee_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		payment TEXT NOT NULL,
		period_start TEXT NOT NULL,
		period_end TEXT NOT NULL,
		normal_hours TEXT NOT NULL,
		extra_hours TEXT NOT NULL,
		base TEXT NOT NULL,
		sales TEXT NOT NULL,
		commission TEXT NOT NULL,
		gross TEXT NOT NULL,
		deductions TEXT NOT NULL,
		net TEXT NOT NULL,
		shortfall TEXT NOT NULL,
		PRIMARY KEY (run_id, employee_id)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ARCHIVE (payroll.Archive interface)
// =============================================================================

// SaveRun writes the run and its paychecks in one transaction.
func (s *Store) SaveRun(ctx context.Context, rec payroll.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	totalsJSON, err := json.Marshal(rec.Total)
	if err != nil {
		return fmt.Errorf("failed to encode totals: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payroll_runs (id, pay_date, created_at, totals_json) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.PayDate.String(), rec.CreatedAt.UTC().Format(time.RFC3339Nano), string(totalsJSON))
	if err != nil {
		if isConstraintError(err) {
			return generic.ErrDuplicateRun
		}
		return fmt.Errorf("failed to insert run: %w", err)
	}

	query := `
		INSERT INTO payroll_paychecks
		(run_id, employee_id, name, kind, payment, period_start, period_end,
		 normal_hours, extra_hours, base, sales, commission, gross, deductions, net, shortfall)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, pc := range rec.Paychecks {
		_, err := tx.ExecContext(ctx, query,
			rec.ID, int(pc.EmployeeID), pc.Name, string(pc.Kind), pc.Payment,
			pc.Period.Start.String(), pc.Period.End.String(),
			pc.NormalHours.String(), pc.ExtraHours.String(),
			pc.Base.String(), pc.Sales.String(), pc.Commission.String(),
			pc.Gross.String(), pc.Deductions.String(), pc.Net.String(), pc.Shortfall.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert paycheck: %w", err)
		}
	}

	return tx.Commit()
}

// GetRun loads a run with its paychecks in employee id order.
func (s *Store) GetRun(ctx context.Context, id string) (*payroll.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payDate, createdAt, totalsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT pay_date, created_at, totals_json FROM payroll_runs WHERE id = ?`, id,
	).Scan(&payDate, &createdAt, &totalsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, generic.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	rec, err := decodeRun(id, payDate, createdAt, totalsJSON)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, name, kind, payment, period_start, period_end,
		       normal_hours, extra_hours, base, sales, commission, gross, deductions, net, shortfall
		FROM payroll_paychecks
		WHERE run_id = ?
		ORDER BY employee_id ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query paychecks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			empID                               int
			name, kind, payment, start, end     string
			normal, extra, base, sales, commiss string
			gross, deductions, net, shortfall   string
		)
		if err := rows.Scan(&empID, &name, &kind, &payment, &start, &end,
			&normal, &extra, &base, &sales, &commiss, &gross, &deductions, &net, &shortfall); err != nil {
			return nil, fmt.Errorf("failed to scan paycheck: %w", err)
		}
		pc := payroll.Paycheck{
			EmployeeID:  payroll.EmployeeID(empID),
			Name:        name,
			Kind:        payroll.Kind(kind),
			Payment:     payment,
			Period:      generic.Period{Start: parseDay(start), End: parseDay(end)},
			NormalHours: parseDecimal(normal),
			ExtraHours:  parseDecimal(extra),
			Base:        parseDecimal(base),
			Sales:       parseDecimal(sales),
			Commission:  parseDecimal(commiss),
			Gross:       parseDecimal(gross),
			Deductions:  parseDecimal(deductions),
			Net:         parseDecimal(net),
			Shortfall:   parseDecimal(shortfall),
		}
		rec.Paychecks = append(rec.Paychecks, pc)
	}
	return rec, rows.Err()
}

// ListRuns returns every run newest first, without paychecks.
func (s *Store) ListRuns(ctx context.Context) ([]payroll.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pay_date, created_at, totals_json FROM payroll_runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var result []payroll.RunRecord
	for rows.Next() {
		var id, payDate, createdAt, totalsJSON string
		if err := rows.Scan(&id, &payDate, &createdAt, &totalsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		rec, err := decodeRun(id, payDate, createdAt, totalsJSON)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	return result, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

func decodeRun(id, payDate, createdAt, totalsJSON string) (*payroll.RunRecord, error) {
	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	rec := &payroll.RunRecord{ID: id, PayDate: parseDay(payDate), CreatedAt: created}
	if err := json.Unmarshal([]byte(totalsJSON), &rec.Total); err != nil {
		return nil, fmt.Errorf("failed to decode totals: %w", err)
	}
	return rec, nil
}

func parseDay(s string) generic.TimePoint {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return generic.TimePoint{}
	}
	return generic.TimePoint{Time: t}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func isConstraintError(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.Code == sqlite3.ErrConstraint
}
