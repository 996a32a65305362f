package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func record(id string, created time.Time) payroll.RunRecord {
	payDay := generic.NewTimePoint(2005, time.January, 7)
	d := decimal.RequireFromString
	return payroll.RunRecord{
		ID:        id,
		PayDate:   payDay,
		CreatedAt: created,
		Paychecks: []payroll.Paycheck{
			{
				EmployeeID: 2, Name: "Bruno", Kind: payroll.KindHourly, Payment: "Correios, Rua B",
				Period:      generic.PeriodEnding(payDay, 7),
				NormalHours: d("8"), ExtraHours: d("2"),
				Base: decimal.Zero, Sales: decimal.Zero, Commission: decimal.Zero,
				Gross: d("220"), Deductions: d("35"), Net: d("185"), Shortfall: decimal.Zero,
			},
			{
				EmployeeID: 1, Name: "Ana", Kind: payroll.KindHourly, Payment: "Em maos",
				Period:      generic.PeriodEnding(payDay, 7),
				NormalHours: d("8"), ExtraHours: decimal.Zero,
				Base: decimal.Zero, Sales: decimal.Zero, Commission: decimal.Zero,
				Gross: d("80"), Deductions: decimal.Zero, Net: d("80"), Shortfall: decimal.Zero,
			},
		},
		Total: payroll.Totals{
			NormalHours: d("16"), ExtraHours: d("2"),
			Base: decimal.Zero, Sales: decimal.Zero, Commission: decimal.Zero,
			Gross: d("300"), Deductions: d("35"), Net: d("265"),
		},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	created := time.Date(2005, time.January, 7, 18, 30, 0, 0, time.UTC)

	// WHEN
	require.NoError(t, s.SaveRun(ctx, record("r1", created)))
	rec, err := s.GetRun(ctx, "r1")

	// THEN: Header fields survive
	require.NoError(t, err)
	assert.Equal(t, "r1", rec.ID)
	assert.True(t, rec.PayDate.Equal(generic.NewTimePoint(2005, time.January, 7)))
	assert.True(t, rec.CreatedAt.Equal(created))
	assert.Equal(t, "265.00", rec.Total.Net.StringFixed(2))
	assert.Equal(t, "35.00", rec.Total.Deductions.StringFixed(2))

	// AND: Paychecks come back in employee id order
	require.Len(t, rec.Paychecks, 2)
	assert.Equal(t, "Ana", rec.Paychecks[0].Name)
	bruno := rec.Paychecks[1]
	assert.Equal(t, payroll.EmployeeID(2), bruno.EmployeeID)
	assert.Equal(t, payroll.KindHourly, bruno.Kind)
	assert.Equal(t, "Correios, Rua B", bruno.Payment)
	assert.Equal(t, "2005-01-01", bruno.Period.Start.String())
	assert.Equal(t, "2005-01-07", bruno.Period.End.String())
	assert.True(t, bruno.ExtraHours.Equal(decimal.NewFromInt(2)))
	assert.True(t, bruno.Net.Equal(decimal.NewFromInt(185)))
}

func TestSaveRun_DuplicateID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveRun(ctx, record("r1", time.Now())))

	err := s.SaveRun(ctx, record("r1", time.Now()))

	assert.ErrorIs(t, err, generic.ErrDuplicateRun)
	rec, err := s.GetRun(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, rec.Paychecks, 2)
}

func TestGetRun_Unknown(t *testing.T) {
	s := newStore(t)

	_, err := s.GetRun(context.Background(), "missing")

	assert.ErrorIs(t, err, generic.ErrRunNotFound)
}

func TestListRuns_NewestFirstWithoutPaychecks(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	base := time.Date(2005, time.January, 7, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveRun(ctx, record("old", base)))
	require.NoError(t, s.SaveRun(ctx, record("new", base.Add(time.Hour))))

	runs, err := s.ListRuns(ctx)

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "old", runs[1].ID)
	assert.Empty(t, runs[0].Paychecks)
	assert.Equal(t, "300.00", runs[0].Total.Gross.StringFixed(2))
}

func TestListRuns_Empty(t *testing.T) {
	runs, err := newStore(t).ListRuns(context.Background())

	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestNew_ReopensExistingArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	s, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveRun(context.Background(), record("r1", time.Now())))
	require.NoError(t, s.Close())

	// WHEN: Opened again, migrations are idempotent
	s, err = sqlite.New(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.GetRun(context.Background(), "r1")
	assert.NoError(t, err)
}
