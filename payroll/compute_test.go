package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
)

func paycheckOf(p *payroll.Payroll, id string) (payroll.Paycheck, bool) {
	for _, pc := range p.Paychecks() {
		if pc.EmployeeID.String() == id {
			return pc, true
		}
	}
	return payroll.Paycheck{}, false
}

func mustPaycheck(t *testing.T, p *payroll.Payroll, id string) payroll.Paycheck {
	t.Helper()
	pc, ok := paycheckOf(p, id)
	require.True(t, ok, "employee %s not paid on %s", id, p.Date)
	return pc
}

// =============================================================================
// BUILT-IN CALENDARS
// =============================================================================

func TestCompute_HourlyOvertime(t *testing.T) {
	s := newSystem()
	id := add(t, s, "Ana", "horista", "10", "")

	// GIVEN: Mon 4h, Wed 10h, Fri 8h in the week ending Friday 7/1/2005
	require.NoError(t, s.PostTimeCard(id, "3/1/2005", "4"))
	require.NoError(t, s.PostTimeCard(id, "5/1/2005", "10"))
	require.NoError(t, s.PostTimeCard(id, "7/1/2005", "8"))

	// WHEN
	pc := mustPaycheck(t, s.Compute(date(2005, time.January, 7)), id)

	// THEN: (4+8+8)*10 + 2*15
	assert.Equal(t, "20", pc.NormalHours.String())
	assert.Equal(t, "2", pc.ExtraHours.String())
	assert.Equal(t, "230.00", pc.Gross.StringFixed(2))
	assert.Equal(t, "230.00", pc.Net.StringFixed(2))
	assert.Equal(t, "2005-01-01", pc.Period.Start.String())
}

func TestCompute_HourlyPaidOnlyOnFridays(t *testing.T) {
	s := newSystem()
	id := add(t, s, "Ana", "horista", "10", "")

	_, paid := paycheckOf(s.Compute(date(2005, time.January, 6)), id)
	assert.False(t, paid)

	pc := mustPaycheck(t, s.Compute(date(2005, time.January, 7)), id)
	assert.True(t, pc.Gross.IsZero())
}

func TestCompute_CommissionedBiweekly(t *testing.T) {
	s := newSystem()
	id := add(t, s, "Caio", "comissionado", "3000", "0,10")
	_, err := s.PostSale(id, "10/1/2005", "500")
	require.NoError(t, err)

	// WHEN: Paid on 14/1/2005
	pc := mustPaycheck(t, s.Compute(date(2005, time.January, 14)), id)

	// THEN: floor2(3000*12/26) + floor2(0.10*500)
	assert.Equal(t, "1384.61", pc.Base.StringFixed(2))
	assert.Equal(t, "50.00", pc.Commission.StringFixed(2))
	assert.Equal(t, "1434.61", pc.Gross.StringFixed(2))

	// Off weeks
	for _, d := range []generic.TimePoint{date(2005, time.January, 7), date(2005, time.January, 21)} {
		_, paid := paycheckOf(s.Compute(d), id)
		assert.False(t, paid, d.String())
	}
	_, paid := paycheckOf(s.Compute(date(2005, time.January, 28)), id)
	assert.True(t, paid)
}

func TestCompute_SalariedLastBusinessDay(t *testing.T) {
	s := newSystem()
	id := add(t, s, "Bia", "assalariado", "2000", "")

	_, paid := paycheckOf(s.Compute(date(2005, time.January, 28)), id)
	assert.False(t, paid)

	pc := mustPaycheck(t, s.Compute(date(2005, time.January, 31)), id)
	assert.Equal(t, "2000.00", pc.Gross.StringFixed(2))
	assert.Equal(t, 31, pc.Period.Len())
}

func TestCompute_SalariedUnionDuesAndCharges(t *testing.T) {
	s := newSystem()
	id := add(t, s, "Bia", "assalariado", "2000", "")
	require.NoError(t, s.ChangeAttribute(id, payroll.AttrUnion, "true", "s1", "1"))
	_, err := s.PostServiceCharge("s1", "15/1/2005", "10")
	require.NoError(t, err)
	_, err = s.PostServiceCharge("s1", "1/2/2005", "99")
	require.NoError(t, err)

	pc := mustPaycheck(t, s.Compute(date(2005, time.January, 31)), id)

	// 31 days * 1.00 + the January charge
	assert.Equal(t, "41.00", pc.Deductions.StringFixed(2))
	assert.Equal(t, "1959.00", pc.Net.StringFixed(2))
}

func TestCompute_IsReadOnly(t *testing.T) {
	s := newSystem()
	id := add(t, s, "Ana", "horista", "10", "")
	require.NoError(t, s.ChangeAttribute(id, payroll.AttrUnion, "true", "s1", "5"))
	before := s.Employees()

	s.Compute(date(2005, time.January, 7))

	assert.Equal(t, before, s.Employees())
}

func TestCompute_GroupsSortedByName(t *testing.T) {
	s := newSystem()
	add(t, s, "Zeca", "horista", "10", "")
	add(t, s, "Ana", "horista", "10", "")

	p := s.Compute(date(2005, time.January, 7))

	g := p.Group(payroll.KindHourly)
	require.Len(t, g.Paychecks, 2)
	assert.Equal(t, "Ana", g.Paychecks[0].Name)
	assert.Equal(t, payroll.EmployeeID(1), p.Paychecks()[0].EmployeeID)
	assert.Empty(t, p.Group(payroll.KindSalaried).Paychecks)
}

// =============================================================================
// UNION DEBT AND RE-RUNS
// =============================================================================

func TestRunPayroll_HourlyUnionDebtCarriesForward(t *testing.T) {
	s := newSystem()
	id := add(t, s, "Ana", "horista", "10", "")
	require.NoError(t, s.ChangeAttribute(id, payroll.AttrUnion, "true", "s1", "5"))
	require.NoError(t, s.PostTimeCard(id, "7/1/2005", "2"))
	require.NoError(t, s.PostTimeCard(id, "10/1/2005", "8"))

	// WHEN: First payday, 7 days of dues against 20.00 gross
	first := mustPaycheck(t, s.RunPayroll(date(2005, time.January, 7)), id)

	// THEN: Net floors at zero and 15.00 is carried
	assert.Equal(t, "35.00", first.Deductions.StringFixed(2))
	assert.Equal(t, "0.00", first.Net.StringFixed(2))
	e, err := s.Employee(id)
	require.NoError(t, err)
	assert.Equal(t, "15.00", e.Union.Debt.StringFixed(2))
	assert.Equal(t, date(2005, time.January, 7), e.Union.LastPaid)

	// WHEN: Next payday
	second := mustPaycheck(t, s.RunPayroll(date(2005, time.January, 14)), id)

	// THEN: 7 days since the last payment plus the debt
	assert.Equal(t, "50.00", second.Deductions.StringFixed(2))
	assert.Equal(t, "30.00", second.Net.StringFixed(2))
	e, _ = s.Employee(id)
	assert.True(t, e.Union.Debt.IsZero())
}

func TestRunPayroll_SameDateTwiceIsIdempotent(t *testing.T) {
	s := newSystem()
	id := add(t, s, "Ana", "horista", "10", "")
	require.NoError(t, s.ChangeAttribute(id, payroll.AttrUnion, "true", "s1", "5"))
	require.NoError(t, s.PostTimeCard(id, "7/1/2005", "2"))
	add(t, s, "Bia", "assalariado", "2000", "")

	friday := date(2005, time.January, 7)
	first := s.RunPayroll(friday)
	afterFirst := s.Employees()

	// WHEN: The same date runs again
	second := s.RunPayroll(friday)

	// THEN: Same payroll, no extra dues settled
	assert.Equal(t, first, second)
	assert.Equal(t, afterFirst, s.Employees())
	assert.Equal(t, first.Total.Net, s.Compute(friday).Total.Net)
}

func TestRunPayroll_RerunOfEarlierPaydayAfterLaterOne(t *testing.T) {
	s := newSystem()
	id := add(t, s, "Ana", "horista", "10", "")
	require.NoError(t, s.ChangeAttribute(id, payroll.AttrUnion, "true", "s1", "5"))
	require.NoError(t, s.PostTimeCard(id, "7/1/2005", "2"))

	// GIVEN: 7/1 leaves 15.00 of debt, which 14/1 then charges
	first := mustPaycheck(t, s.RunPayroll(date(2005, time.January, 7)), id)
	require.Equal(t, "35.00", first.Deductions.StringFixed(2))
	later := mustPaycheck(t, s.RunPayroll(date(2005, time.January, 14)), id)
	require.Equal(t, "50.00", later.Deductions.StringFixed(2))
	settled := s.Employees()

	// WHEN: 7/1 runs again
	again := mustPaycheck(t, s.RunPayroll(date(2005, time.January, 7)), id)

	// THEN: Same paycheck as the first time, nothing settled
	assert.Equal(t, first, again)
	assert.Equal(t, settled, s.Employees())
	assert.Equal(t, later, mustPaycheck(t, s.Compute(date(2005, time.January, 14)), id))
}

func TestChangeKind_ClearsHourlyUnionDebt(t *testing.T) {
	s := newSystem()
	id := add(t, s, "Ana", "horista", "10", "")
	require.NoError(t, s.ChangeAttribute(id, payroll.AttrUnion, "true", "s1", "5"))
	require.NoError(t, s.PostTimeCard(id, "7/1/2005", "2"))
	s.RunPayroll(date(2005, time.January, 7))

	// WHEN: Ana leaves hourly pay and later returns to it
	require.NoError(t, s.ChangeAttribute(id, payroll.AttrKind, "assalariado", "2000"))
	e, err := s.Employee(id)
	require.NoError(t, err)

	// THEN: Membership kept, hourly dues state cleared
	assert.Equal(t, "s1", e.Union.MemberID)
	assert.True(t, e.Union.Debt.IsZero())
	assert.True(t, e.Union.LastPaid.IsZero())
	assert.Empty(t, e.Union.Settlements)

	require.NoError(t, s.ChangeAttribute(id, payroll.AttrKind, "horista", "10"))
	pc := mustPaycheck(t, s.Compute(date(2005, time.January, 14)), id)
	assert.Equal(t, "35.00", pc.Deductions.StringFixed(2))
}

func TestTotalPayroll(t *testing.T) {
	s := newSystem()
	id := add(t, s, "Ana", "horista", "10", "")
	require.NoError(t, s.PostTimeCard(id, "5/1/2005", "9"))
	add(t, s, "Zeca", "horista", "20", "")

	total, err := s.TotalPayroll("7/1/2005")
	require.NoError(t, err)
	assert.Equal(t, "95.00", total.StringFixed(2))

	_, err = s.TotalPayroll("7/13/2005")
	assert.ErrorIs(t, err, generic.ErrInvalidDate)
}

// =============================================================================
// CUSTOM SCHEDULES
// =============================================================================

func TestCustomSchedule_BiweeklyWednesdayFromHire(t *testing.T) {
	s := newSystem()
	id := add(t, s, "Ana", "horista", "10", "")
	_, err := s.RegisterSchedule("semanal 2 3")
	require.NoError(t, err)
	require.NoError(t, s.ChangeAttribute(id, payroll.AttrSchedule, "semanal 2 3"))

	// GIVEN: Hired (first time card) on Wednesday 2/3/2005
	hire := date(2005, time.March, 2)
	require.NoError(t, s.PostTimeCard(id, "2/3/2005", "8"))

	// WHEN: Every day of a window around the hire date is computed
	paydays := 0
	for d := date(2005, time.February, 1); !d.After(date(2005, time.June, 30)); d = d.AddDays(1) {
		_, paid := paycheckOf(s.Compute(d), id)

		// THEN: Paid exactly on every other Wednesday from the hire date
		want := d.ISOWeekday() == 3 && !d.Before(hire) && (generic.DaysBetween(hire, d)/7)%2 == 0
		assert.Equal(t, want, paid, d.String())
		if paid {
			paydays++
		}
	}
	assert.Equal(t, 9, paydays)

	pc := mustPaycheck(t, s.Compute(hire), id)
	assert.Equal(t, 14, pc.Period.Len())
	assert.Equal(t, "80.00", pc.Gross.StringFixed(2))
}

func TestCustomSchedule_HourlyWithoutTimeCardsIsNeverPaid(t *testing.T) {
	s := newSystem()
	id := add(t, s, "Ana", "horista", "10", "")
	require.NoError(t, s.ChangeAttribute(id, payroll.AttrUnion, "true", "s1", "5"))
	_, err := s.RegisterSchedule("semanal 2 3")
	require.NoError(t, err)
	require.NoError(t, s.ChangeAttribute(id, payroll.AttrSchedule, "semanal 2 3"))

	// WHEN: Payroll runs every day for two months without a single time card
	for d := date(2005, time.January, 12); d.Before(date(2005, time.March, 13)); d = d.AddDays(1) {
		_, paid := paycheckOf(s.RunPayroll(d), id)

		// THEN: No hire reference, no payday
		assert.False(t, paid, d.String())
	}

	// AND: No dues accumulated
	e, err := s.Employee(id)
	require.NoError(t, err)
	assert.True(t, e.Union.Debt.IsZero())
	assert.True(t, e.Union.LastPaid.IsZero())

	// WHEN: The first time card arrives, paydays start from it
	require.NoError(t, s.PostTimeCard(id, "16/3/2005", "8"))
	pc := mustPaycheck(t, s.Compute(date(2005, time.March, 16)), id)
	assert.Equal(t, "80.00", pc.Gross.StringFixed(2))
}

func TestCustomSchedule_DefaultsUnchangedOnCustomPath(t *testing.T) {
	s := newSystem()
	caio := add(t, s, "Caio", "comissionado", "3000", "0,10")
	bia := add(t, s, "Bia", "assalariado", "2000", "")
	_, err := s.PostSale(caio, "10/1/2005", "500")
	require.NoError(t, err)
	builtin := mustPaycheck(t, s.Compute(date(2005, time.January, 14)), caio)

	// WHEN: Someone else moves to a custom schedule
	other := add(t, s, "Ana", "assalariado", "1000", "")
	_, err = s.RegisterSchedule("mensal 10")
	require.NoError(t, err)
	require.NoError(t, s.ChangeAttribute(other, payroll.AttrSchedule, "mensal 10"))

	// THEN: Default schedules still pay the same amounts on the same days
	p := s.Compute(date(2005, time.January, 14))
	assert.True(t, p.CustomPath)
	assert.Equal(t, builtin, mustPaycheck(t, p, caio))

	_, paid := paycheckOf(s.Compute(date(2005, time.January, 28)), bia)
	assert.False(t, paid)
	pc := mustPaycheck(t, s.Compute(date(2005, time.January, 31)), bia)
	assert.Equal(t, "2000.00", pc.Gross.StringFixed(2))
}

func TestCustomSchedule_MonthlyFixedDay(t *testing.T) {
	s := newSystem()
	id := add(t, s, "Bia", "assalariado", "2000", "")
	_, err := s.RegisterSchedule("mensal 10")
	require.NoError(t, err)
	require.NoError(t, s.ChangeAttribute(id, payroll.AttrSchedule, "mensal 10"))

	_, paid := paycheckOf(s.Compute(date(2005, time.February, 28)), id)
	assert.False(t, paid)

	pc := mustPaycheck(t, s.Compute(date(2005, time.February, 10)), id)
	assert.Equal(t, "2005-01-11", pc.Period.Start.String())
	assert.Equal(t, "2000.00", pc.Gross.StringFixed(2))
}

func TestCustomSchedule_WeeklySalariedIsProrated(t *testing.T) {
	s := newSystem()
	id := add(t, s, "Bia", "assalariado", "2000", "")
	require.NoError(t, s.ChangeAttribute(id, payroll.AttrSchedule, "semanal 5"))

	pc := mustPaycheck(t, s.Compute(date(2005, time.January, 7)), id)

	// floor2(2000*12/52)
	assert.Equal(t, "461.53", pc.Gross.StringFixed(2))
	assert.Equal(t, 7, pc.Period.Len())
}

func TestParseSchedule(t *testing.T) {
	valid := map[string]string{
		"mensal $":     "mensal $",
		"mensal 1":     "mensal 1",
		"mensal 28":    "mensal 28",
		"semanal 5":    "semanal 5",
		"semanal 1 5":  "semanal 5",
		"semanal 52 7": "semanal 52 7",
	}
	for in, want := range valid {
		got, err := payroll.Canonical(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "mensal", "mensal 29", "mensal 0", "semanal 8", "semanal 0 5", "semanal 53 1", "anual 1", "semanal 2 3 4"} {
		_, err := payroll.ParseSchedule(in)
		assert.ErrorIs(t, err, generic.ErrInvalidSchedule, in)
	}

	s := newSystem()
	_, err := s.RegisterSchedule("semanal 1 5")
	assert.ErrorIs(t, err, generic.ErrDuplicateSchedule)
}
