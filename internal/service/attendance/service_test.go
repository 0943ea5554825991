package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/domain/employee"
	"github.com/umairahsan10/crm-backend-go/internal/domain/incident"
	"github.com/umairahsan10/crm-backend-go/internal/domain/policy"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/validator"
)

func strPtr(s string) *string { return &s }

func dayShiftEmployee(id string) employee.Employee {
	return employee.Employee{
		ID:         id,
		Name:       "Day Worker",
		Status:     employee.StatusActive,
		ShiftStart: strPtr("09:00"),
		ShiftEnd:   strPtr("17:00"),
	}
}

func nightShiftEmployee(id string) employee.Employee {
	return employee.Employee{
		ID:         id,
		Name:       "Night Worker",
		Status:     employee.StatusActive,
		ShiftStart: strPtr("22:00"),
		ShiftEnd:   strPtr("06:00"),
	}
}

type serviceFixture struct {
	svc       *attendanceService
	logs      *fakeLogRepo
	counters  *fakeCounterRepo
	incidents *fakeIncidentRepo
	employees *fakeEmployeeRepo
	policies  *fakePolicyProvider
}

func newServiceFixture(now time.Time, emps ...employee.Employee) *serviceFixture {
	f := &serviceFixture{
		logs:      newFakeLogRepo(),
		counters:  newFakeCounterRepo(),
		incidents: &fakeIncidentRepo{},
		employees: newFakeEmployeeRepo(emps...),
		policies:  &fakePolicyProvider{thresholds: policy.Thresholds{}.WithDefaults()},
	}
	f.svc = &attendanceService{
		tx:           fakeTransactor{},
		logRepo:      f.logs,
		counterRepo:  f.counters,
		incidentRepo: f.incidents,
		employeeRepo: f.employees,
		policies:     f.policies,
		now:          func() time.Time { return now },
	}
	return f
}

func TestCheckinOnTime(t *testing.T) {
	// 03:55 UTC is 08:55 at the default offset, five minutes early.
	f := newServiceFixture(time.Date(2025, 3, 10, 3, 55, 0, 0, time.UTC), dayShiftEmployee("emp-1"))

	resp, err := f.svc.Checkin(context.Background(), attendance.CheckinRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, 0, resp.MinutesLate)
	assert.False(t, resp.RequiresReason)
	assert.NotEmpty(t, resp.ID)

	assert.Equal(t, 1, f.counters.lifetime["emp-1"].PresentDays)
	assert.Equal(t, 1, f.counters.monthly["emp-1|2025-03"].PresentDays)
	assert.Empty(t, f.incidents.incidents)
}

func TestCheckinLateCreatesIncident(t *testing.T) {
	// 04:45 UTC is 09:45 local, 45 minutes past the shift start.
	f := newServiceFixture(time.Date(2025, 3, 10, 4, 45, 0, 0, time.UTC), dayShiftEmployee("emp-1"))

	resp, err := f.svc.Checkin(context.Background(), attendance.CheckinRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusLate, resp.Status)
	assert.Equal(t, 45, resp.MinutesLate)
	assert.True(t, resp.RequiresReason)

	require.Len(t, f.incidents.incidents, 1)
	inc := f.incidents.incidents[0]
	assert.Equal(t, incident.KindLate, inc.Kind)
	assert.Equal(t, "09:00", inc.ScheduledTimeIn)
	assert.Equal(t, "09:45", inc.ActualTimeIn)
	assert.Equal(t, 45, inc.MinutesLate)
	assert.Equal(t, incident.ActionCreated, inc.ActionTaken)

	lifetime := f.counters.lifetime["emp-1"]
	assert.Equal(t, 1, lifetime.LateDays)
	assert.Equal(t, 1, lifetime.MonthlyLates)
	monthly := f.counters.monthly["emp-1|2025-03"]
	assert.Equal(t, 1, monthly.LateDays)
	assert.Equal(t, 0, monthly.MonthlyLates)
}

func TestCheckinHalfDayCountsPresentToo(t *testing.T) {
	// 06:00 UTC is 11:00 local, two hours past the shift start.
	f := newServiceFixture(time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC), dayShiftEmployee("emp-1"))

	resp, err := f.svc.Checkin(context.Background(), attendance.CheckinRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusHalfDay, resp.Status)
	assert.True(t, resp.RequiresReason)

	require.Len(t, f.incidents.incidents, 1)
	assert.Equal(t, incident.KindHalfDay, f.incidents.incidents[0].Kind)

	lifetime := f.counters.lifetime["emp-1"]
	assert.Equal(t, 1, lifetime.HalfDays)
	assert.Equal(t, 1, lifetime.PresentDays)
}

func TestCheckinDuplicate(t *testing.T) {
	f := newServiceFixture(time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC), dayShiftEmployee("emp-1"))

	_, err := f.svc.Checkin(context.Background(), attendance.CheckinRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = f.svc.Checkin(context.Background(), attendance.CheckinRequest{EmployeeID: "emp-1"})
	require.ErrorIs(t, err, attendance.ErrDuplicateCheckin)

	// No second transition was applied.
	assert.Len(t, f.counters.transitions, 1)
}

func TestCheckinSupersedesAutoAbsence(t *testing.T) {
	f := newServiceFixture(time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC), dayShiftEmployee("emp-1"))

	// The scheduled job already marked the day absent (no check-in time).
	_, err := f.logs.Upsert(context.Background(), attendance.DailyLog{
		EmployeeID: "emp-1",
		Date:       attendance.NewBusinessDate(2025, time.March, 10),
		Mode:       attendance.ModeOnsite,
		Status:     attendance.StatusAbsent,
	})
	require.NoError(t, err)
	require.NoError(t, f.counters.ApplyTransition(context.Background(), "emp-1",
		attendance.StatusNone, attendance.StatusAbsent, attendance.Month{Year: 2025, Month: time.March}))

	resp, err := f.svc.Checkin(context.Background(), attendance.CheckinRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)

	lifetime := f.counters.lifetime["emp-1"]
	assert.Equal(t, 0, lifetime.AbsentDays)
	assert.Equal(t, 1, lifetime.PresentDays)

	last := f.counters.transitions[len(f.counters.transitions)-1]
	assert.Equal(t, attendance.StatusAbsent, last.from)
	assert.Equal(t, attendance.StatusPresent, last.to)
}

func TestCheckinEmployeeGuards(t *testing.T) {
	inactive := dayShiftEmployee("emp-inactive")
	inactive.Status = employee.StatusInactive
	noShift := employee.Employee{ID: "emp-noshift", Status: employee.StatusActive}

	f := newServiceFixture(time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC), inactive, noShift)

	tests := []struct {
		name       string
		employeeID string
		wantErr    error
	}{
		{"unknown", "emp-missing", employee.ErrEmployeeNotFound},
		{"inactive", "emp-inactive", employee.ErrEmployeeInactive},
		{"no shift", "emp-noshift", employee.ErrNoShiftAssigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Checkin(context.Background(), attendance.CheckinRequest{EmployeeID: tt.employeeID})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckinPolicyErrorPropagates(t *testing.T) {
	f := newServiceFixture(time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC), dayShiftEmployee("emp-1"))
	f.policies.err = policy.ErrPolicyNotFound

	_, err := f.svc.Checkin(context.Background(), attendance.CheckinRequest{EmployeeID: "emp-1"})
	require.ErrorIs(t, err, policy.ErrPolicyNotFound)
	assert.Empty(t, f.counters.transitions)
}

func TestCheckinExplicitOffset(t *testing.T) {
	// 07:45 UTC at offset +120 is 09:45 local, 45 minutes late.
	f := newServiceFixture(time.Date(2025, 3, 10, 7, 45, 0, 0, time.UTC), dayShiftEmployee("emp-1"))

	resp, err := f.svc.Checkin(context.Background(), attendance.CheckinRequest{
		EmployeeID:            "emp-1",
		TimezoneOffsetMinutes: intPtr(120),
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, resp.Status)
	assert.Equal(t, 45, resp.MinutesLate)
}

func TestCheckinExplicitTimestamp(t *testing.T) {
	// The clock says noon, but the client reports the actual tap at
	// 04:45 UTC, which is 09:45 local and 45 minutes late.
	f := newServiceFixture(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), dayShiftEmployee("emp-1"))

	resp, err := f.svc.Checkin(context.Background(), attendance.CheckinRequest{
		EmployeeID: "emp-1",
		Timestamp:  "2025-03-10T04:45:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Equal(t, attendance.StatusLate, resp.Status)
	assert.Equal(t, 45, resp.MinutesLate)
}

func TestCheckinMalformedTimestamp(t *testing.T) {
	f := newServiceFixture(time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC), dayShiftEmployee("emp-1"))

	_, err := f.svc.Checkin(context.Background(), attendance.CheckinRequest{
		EmployeeID: "emp-1",
		Timestamp:  "10-03-2025 09:45",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Empty(t, f.counters.transitions)
}

func TestCheckinConcurrentDuplicate(t *testing.T) {
	f := newServiceFixture(time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC), dayShiftEmployee("emp-1"))
	f.svc.tx = &serialTransactor{}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Checkin(context.Background(), attendance.CheckinRequest{EmployeeID: "emp-1"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, attendance.ErrDuplicateCheckin)
			rejected++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
	assert.Len(t, f.counters.transitions, 1)
}

func TestCheckoutComputesHours(t *testing.T) {
	f := newServiceFixture(time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC), dayShiftEmployee("emp-1"))

	_, err := f.svc.Checkin(context.Background(), attendance.CheckinRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	f.svc.now = func() time.Time { return time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC) }
	resp, err := f.svc.Checkout(context.Background(), attendance.CheckoutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", resp.Date)
	assert.True(t, resp.TotalHours.Equal(decimal.NewFromFloat(8.5)), "got %s", resp.TotalHours)
}

func TestCheckoutExplicitTimestamp(t *testing.T) {
	f := newServiceFixture(time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC), dayShiftEmployee("emp-1"))

	_, err := f.svc.Checkin(context.Background(), attendance.CheckinRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	// The clock moved well past the reported leave time; the reported
	// instant wins.
	f.svc.now = func() time.Time { return time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC) }
	resp, err := f.svc.Checkout(context.Background(), attendance.CheckoutRequest{
		EmployeeID: "emp-1",
		Timestamp:  "2025-03-10T12:30:00Z",
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalHours.Equal(decimal.NewFromFloat(8.5)), "got %s", resp.TotalHours)
}

func TestCheckoutNotCheckedIn(t *testing.T) {
	f := newServiceFixture(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), dayShiftEmployee("emp-1"))

	_, err := f.svc.Checkout(context.Background(), attendance.CheckoutRequest{EmployeeID: "emp-1"})
	require.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckoutAlreadyCheckedOut(t *testing.T) {
	f := newServiceFixture(time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC), dayShiftEmployee("emp-1"))

	_, err := f.svc.Checkin(context.Background(), attendance.CheckinRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	f.svc.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	_, err = f.svc.Checkout(context.Background(), attendance.CheckoutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = f.svc.Checkout(context.Background(), attendance.CheckoutRequest{EmployeeID: "emp-1"})
	require.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckoutNightShiftFindsPriorDay(t *testing.T) {
	// 17:30 UTC is 22:30 local, still March 10 for a 22:00 shift.
	f := newServiceFixture(time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC), nightShiftEmployee("emp-1"))

	_, err := f.svc.Checkin(context.Background(), attendance.CheckinRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	// 01:30 UTC next day is 06:30 local on March 11, past the shift end,
	// so the current business date has moved on; the open log is found on
	// the prior day.
	f.svc.now = func() time.Time { return time.Date(2025, 3, 11, 1, 30, 0, 0, time.UTC) }
	resp, err := f.svc.Checkout(context.Background(), attendance.CheckoutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", resp.Date)
	assert.True(t, resp.TotalHours.Equal(decimal.NewFromInt(8)), "got %s", resp.TotalHours)
}

func TestGetLogsWindowTooLarge(t *testing.T) {
	f := newServiceFixture(time.Date(2025, 6, 10, 4, 0, 0, 0, time.UTC), dayShiftEmployee("emp-1"))

	_, err := f.svc.GetLogs(context.Background(), attendance.LogsFilter{
		EmployeeID: "emp-1",
		From:       attendance.NewBusinessDate(2025, time.January, 1),
		To:         attendance.NewBusinessDate(2025, time.June, 1),
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestGetLogsDefaultWindow(t *testing.T) {
	f := newServiceFixture(time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC), dayShiftEmployee("emp-1"))
	ctx := context.Background()

	// One log inside the default 93-day window, one well before it.
	_, err := f.logs.Upsert(ctx, attendance.DailyLog{
		EmployeeID: "emp-1",
		Date:       attendance.NewBusinessDate(2025, time.March, 1),
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)
	_, err = f.logs.Upsert(ctx, attendance.DailyLog{
		EmployeeID: "emp-1",
		Date:       attendance.NewBusinessDate(2024, time.November, 1),
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)

	logs, err := f.svc.GetLogs(ctx, attendance.LogsFilter{EmployeeID: "emp-1"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "2025-03-01", logs[0].Date)
}

func TestGetLifetimeUnknownEmployee(t *testing.T) {
	f := newServiceFixture(time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC))

	_, err := f.svc.GetLifetime(context.Background(), "emp-missing")
	require.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGetMonthlyDefaultsToCurrentMonth(t *testing.T) {
	f := newServiceFixture(time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC), dayShiftEmployee("emp-1"))
	ctx := context.Background()

	require.NoError(t, f.counters.ApplyTransition(ctx, "emp-1",
		attendance.StatusNone, attendance.StatusPresent, attendance.Month{Year: 2025, Month: time.March}))

	summary, err := f.svc.GetMonthly(ctx, "emp-1", attendance.Month{})
	require.NoError(t, err)
	assert.Equal(t, "2025-03", summary.Month.String())
	assert.Equal(t, 1, summary.PresentDays)
}
