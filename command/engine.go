/*
Package command provides transactional execute/undo/redo over a payroll.System.

PURPOSE:
  Every state change goes through Engine.Execute. The engine captures a
  snapshot before and after the command, so undo and redo are a restore of
  an already captured state and never re-run business logic.

HISTORY DISCIPLINE:
  - Execute success: push onto undo, clear redo (linear history)
  - Execute failure: nothing recorded, nothing changed
  - Undo: restore "before", move the record to redo
  - Redo: restore "after", move the record back to undo

CLOSING:
  Close ends the session. Every later call (commands, undo, redo, queries
  through System) fails with generic.ErrSystemClosed.

CONCURRENCY:
  Engine is single-writer and not safe for concurrent use. The HTTP layer
  serializes requests with its own mutex.

SEE ALSO:
  - commands.go: The command surface
  - payroll/snapshot.go: Deep copies restored here
*/
package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/report"
)

// Command is a single state-mutating operation. Apply must validate all of
// its input before changing anything.
type Command interface {
	Op() string
	Apply(s *payroll.System) error
}

type record struct {
	cmd    Command
	before *payroll.Snapshot
	after  *payroll.Snapshot
}

type Engine struct {
	system *payroll.System
	undo   []record
	redo   []record
	closed bool

	archive payroll.Archive
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithArchive stores every payroll run in a.
func WithArchive(a payroll.Archive) Option { return func(e *Engine) { e.archive = a } }

// WithClock overrides the run timestamp source (tests).
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

func NewEngine(s *payroll.System, opts ...Option) *Engine {
	e := &Engine{
		system: s,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// =============================================================================
// EXECUTE / UNDO / REDO
// =============================================================================

// Execute applies cmd and records it for undo.
func (e *Engine) Execute(cmd Command) error {
	if e.closed {
		return generic.ErrSystemClosed
	}
	before := e.system.Save()
	if err := cmd.Apply(e.system); err != nil {
		e.logger.Debug("command rejected", zap.String("command", cmd.Op()), zap.Error(err))
		return err
	}
	e.undo = append(e.undo, record{cmd: cmd, before: before, after: e.system.Save()})
	e.redo = nil
	e.logger.Debug("command executed", zap.String("command", cmd.Op()))
	return nil
}

func (e *Engine) Undo() error {
	if e.closed {
		return generic.ErrSystemClosed
	}
	if len(e.undo) == 0 {
		return generic.ErrNothingToUndo
	}
	r := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.system.Restore(r.before)
	e.redo = append(e.redo, r)
	e.logger.Debug("command undone", zap.String("command", r.cmd.Op()))
	return nil
}

func (e *Engine) Redo() error {
	if e.closed {
		return generic.ErrSystemClosed
	}
	if len(e.redo) == 0 {
		return generic.ErrNothingToRedo
	}
	r := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.system.Restore(r.after)
	e.undo = append(e.undo, r)
	e.logger.Debug("command redone", zap.String("command", r.cmd.Op()))
	return nil
}

// ClearHistory forgets both stacks without touching the System.
func (e *Engine) ClearHistory() {
	e.undo, e.redo = nil, nil
}

// History returns the undo and redo depths.
func (e *Engine) History() (undo, redo int) { return len(e.undo), len(e.redo) }

// Close ends the session.
func (e *Engine) Close() {
	e.closed = true
	e.logger.Info("payroll system closed")
}

// System returns the live System for read-only queries.
func (e *Engine) System() (*payroll.System, error) {
	if e.closed {
		return nil, generic.ErrSystemClosed
	}
	return e.system, nil
}

// =============================================================================
// PAYROLL RUN
// =============================================================================

// Run is the outcome of Engine.RunPayroll.
type Run struct {
	// ID is the archive record id, empty without an archive.
	ID      string
	Output  string
	Payroll *payroll.Payroll
}

// RunPayroll executes a RunPayroll command for date, writes the text report
// to output and archives the run. A failed write or archive does not undo
// the run; the error wraps generic.ErrReportWrite or generic.ErrArchive.
func (e *Engine) RunPayroll(ctx context.Context, date, output string) (*Run, error) {
	if strings.TrimSpace(output) == "" {
		return nil, &generic.FieldError{Field: "saida", Err: generic.ErrInvalidOutput}
	}
	cmd := &RunPayroll{Date: date}
	if err := e.Execute(cmd); err != nil {
		return nil, err
	}
	run := &Run{Output: output, Payroll: cmd.Result}
	p := run.Payroll
	e.logger.Info("payroll run",
		zap.String("date", p.Date.String()),
		zap.Int("paid", len(p.Paychecks())),
		zap.String("net", p.Total.Net.StringFixed(2)),
		zap.Bool("custom_schedules", p.CustomPath))

	if err := report.WriteFile(output, p); err != nil {
		return run, fmt.Errorf("%w: %v", generic.ErrReportWrite, err)
	}
	if e.archive != nil {
		id := e.newID()
		if err := e.archive.SaveRun(ctx, p.Record(id, e.now())); err != nil {
			return run, fmt.Errorf("%w: %v", generic.ErrArchive, err)
		}
		run.ID = id
	}
	return run, nil
}
