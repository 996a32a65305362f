/*
scheduler.go - Automated payroll scheduler

PURPOSE:
  Periodically checks whether today is a payday for anyone and, if so, runs
  payroll for today the same way POST /api/payroll/runs does.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Skips days on which nobody is due
  - Runs each day at most once; a failed run is retried on the next tick
  - Runs go through the command engine, so they are undoable and archived

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (AUTO_RUN / -auto, default: false)

USAGE:
  scheduler := NewPayrollScheduler(handler, time.Hour)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: RunPayroll endpoint (manual run)
  - command/engine.go: Engine.RunPayroll
*/
package api

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/warp/payroll-engine/command"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
)

// PayrollScheduler runs payroll automatically on paydays.
type PayrollScheduler struct {
	Handler       *Handler
	CheckInterval time.Duration
	Enabled       bool

	// Today returns the current date (tests).
	Today func() generic.TimePoint

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex

	// runMu serializes checks and guards lastRun.
	runMu   sync.Mutex
	lastRun generic.TimePoint
}

// NewPayrollScheduler creates an enabled scheduler. A non-positive interval
// falls back to one hour.
func NewPayrollScheduler(handler *Handler, interval time.Duration) *PayrollScheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &PayrollScheduler{
		Handler:       handler,
		CheckInterval: interval,
		Enabled:       true,
		Today:         generic.Today,
		stop:          make(chan struct{}),
	}
}

// Start begins the scheduler.
func (ps *PayrollScheduler) Start() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	logger := ps.Handler.logger
	if !ps.Enabled {
		logger.Info("payroll scheduler disabled, not starting")
		return
	}

	ps.ticker = time.NewTicker(ps.CheckInterval)
	ps.wg.Add(1)

	go ps.run()

	logger.Info("payroll scheduler started", zap.Duration("interval", ps.CheckInterval))
}

// Stop stops the scheduler and waits for a check in progress.
func (ps *PayrollScheduler) Stop() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.ticker != nil {
		ps.ticker.Stop()
		close(ps.stop)
		ps.wg.Wait()
		ps.ticker = nil
		ps.Handler.logger.Info("payroll scheduler stopped")
	}
}

func (ps *PayrollScheduler) run() {
	defer ps.wg.Done()

	// Run immediately on start
	ps.RunNow(context.Background())

	for {
		select {
		case <-ps.ticker.C:
			ps.RunNow(context.Background())
		case <-ps.stop:
			return
		}
	}
}

// RunNow checks today immediately. It returns the run, or nil when today was
// already handled or nobody is due.
func (ps *PayrollScheduler) RunNow(ctx context.Context) (*command.Run, error) {
	ps.runMu.Lock()
	defer ps.runMu.Unlock()

	today := ps.Today()
	logger := ps.Handler.logger.With(zap.String("date", today.String()))

	if !ps.lastRun.IsZero() && !today.After(ps.lastRun) {
		return nil, nil
	}

	var due int
	err := ps.Handler.query(func(s *payroll.System) error {
		due = len(s.Compute(today).Paychecks())
		return nil
	})
	if err != nil {
		logger.Warn("payroll scheduler check failed", zap.Error(err))
		return nil, err
	}
	if due == 0 {
		ps.lastRun = today
		logger.Debug("nobody due, skipping")
		return nil, nil
	}

	run, err := ps.Handler.runPayroll(ctx, today)
	if err != nil {
		logger.Error("scheduled payroll run failed", zap.Error(err))
		if run == nil {
			return nil, err
		}
	}
	ps.lastRun = today
	logger.Info("scheduled payroll run",
		zap.Int("paid", due),
		zap.String("report", run.Output),
		zap.String("archive_id", run.ID))
	return run, err
}
