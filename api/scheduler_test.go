package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/command"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
)

func newScheduler(ts *testServer, today generic.TimePoint) *PayrollScheduler {
	h := NewHandler(ts.engine, nil, ts.reportDir, nil)
	s := NewPayrollScheduler(h, time.Hour)
	s.Today = func() generic.TimePoint { return today }
	return s
}

func TestPayrollScheduler_RunsOncePerPayday(t *testing.T) {
	// GIVEN: An hourly employee with a time card, today is Friday 7/1/2005
	ts := newTestServer(t)
	id := ts.createEmployee(t, ana)
	require.Equal(t, http.StatusCreated,
		ts.do(t, http.MethodPost, fmt.Sprintf("/api/employees/%d/timecards", id), EntryRequest{Date: "3/1/2005", Hours: "8"}).Code)
	s := newScheduler(ts, generic.NewTimePoint(2005, time.January, 7))

	// WHEN
	run, err := s.RunNow(context.Background())

	// THEN: Payroll ran and wrote its report
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "80.00", run.Payroll.Total.Net.StringFixed(2))
	_, err = os.Stat(run.Output)
	assert.NoError(t, err)

	// AND: A second check the same day does nothing
	run, err = s.RunNow(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, run)
	undo, _ := ts.engine.History()
	assert.Equal(t, 3, undo)
}

func TestPayrollScheduler_ConcurrentChecksRunOnce(t *testing.T) {
	// GIVEN: Today is a payday
	ts := newTestServer(t)
	id := ts.createEmployee(t, ana)
	require.Equal(t, http.StatusCreated,
		ts.do(t, http.MethodPost, fmt.Sprintf("/api/employees/%d/timecards", id), EntryRequest{Date: "3/1/2005", Hours: "8"}).Code)
	s := newScheduler(ts, generic.NewTimePoint(2005, time.January, 7))

	// WHEN: Several checks race
	var wg sync.WaitGroup
	runs := make(chan *command.Run, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run, err := s.RunNow(context.Background())
			assert.NoError(t, err)
			if run != nil {
				runs <- run
			}
		}()
	}
	wg.Wait()
	close(runs)

	// THEN: Exactly one payroll run
	assert.Len(t, runs, 1)
	undo, _ := ts.engine.History()
	assert.Equal(t, 3, undo)
}

func TestPayrollScheduler_SkipsWhenNobodyIsDue(t *testing.T) {
	ts := newTestServer(t)
	ts.createEmployee(t, ana)
	s := newScheduler(ts, generic.NewTimePoint(2005, time.January, 8))

	run, err := s.RunNow(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, run)
	undo, _ := ts.engine.History()
	assert.Equal(t, 1, undo)
}

func TestPayrollScheduler_ClosedSystem(t *testing.T) {
	ts := newTestServer(t)
	ts.engine.Close()
	s := newScheduler(ts, generic.NewTimePoint(2005, time.January, 7))

	_, err := s.RunNow(context.Background())

	assert.ErrorIs(t, err, generic.ErrSystemClosed)
}

func TestPayrollScheduler_StartStop(t *testing.T) {
	engine := command.NewEngine(payroll.NewSystem())
	s := NewPayrollScheduler(NewHandler(engine, nil, t.TempDir(), nil), 0)
	assert.Equal(t, time.Hour, s.CheckInterval)

	// Disabled: Start is a no-op and Stop is safe
	s.Enabled = false
	s.Start()
	s.Stop()

	// Enabled: the first check runs in the background until Stop
	s.Enabled = true
	s.Start()
	s.Stop()
	undo, _ := engine.History()
	assert.Equal(t, 0, undo)
}
