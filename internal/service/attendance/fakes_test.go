package attendance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/domain/audit"
	"github.com/umairahsan10/crm-backend-go/internal/domain/employee"
	"github.com/umairahsan10/crm-backend-go/internal/domain/incident"
	"github.com/umairahsan10/crm-backend-go/internal/domain/leave"
	"github.com/umairahsan10/crm-backend-go/internal/domain/policy"
)

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// serialTransactor mimics row-level serialization: concurrent units of
// work run one at a time, the way competing transactions queue on a
// locked row.
type serialTransactor struct {
	mu sync.Mutex
}

func (t *serialTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

func logKey(employeeID string, date attendance.BusinessDate) string {
	return employeeID + "|" + date.String()
}

type fakeLogRepo struct {
	logs   map[string]attendance.DailyLog
	nextID int
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{logs: make(map[string]attendance.DailyLog)}
}

func (f *fakeLogRepo) newID() string {
	f.nextID++
	return fmt.Sprintf("log-%d", f.nextID)
}

func (f *fakeLogRepo) Create(ctx context.Context, log attendance.DailyLog) (attendance.DailyLog, error) {
	log.ID = f.newID()
	f.logs[logKey(log.EmployeeID, log.Date)] = log
	return log, nil
}

func (f *fakeLogRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date attendance.BusinessDate) (*attendance.DailyLog, error) {
	log, ok := f.logs[logKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	return &log, nil
}

func (f *fakeLogRepo) Upsert(ctx context.Context, log attendance.DailyLog) (attendance.DailyLog, error) {
	key := logKey(log.EmployeeID, log.Date)
	if existing, ok := f.logs[key]; ok {
		log.ID = existing.ID
	} else {
		log.ID = f.newID()
	}
	f.logs[key] = log
	return log, nil
}

func (f *fakeLogRepo) SetCheckout(ctx context.Context, id string, checkout time.Time) error {
	for key, log := range f.logs {
		if log.ID == id {
			log.Checkout = &checkout
			f.logs[key] = log
			return nil
		}
	}
	return attendance.ErrLogNotFound
}

func (f *fakeLogRepo) ExistsForDate(ctx context.Context, employeeID string, date attendance.BusinessDate) (bool, error) {
	_, ok := f.logs[logKey(employeeID, date)]
	return ok, nil
}

func (f *fakeLogRepo) ListUncheckedOut(ctx context.Context, cutoff attendance.BusinessDate) ([]attendance.DailyLog, error) {
	var result []attendance.DailyLog
	for _, log := range f.logs {
		if log.Date.After(cutoff) {
			continue
		}
		if log.Checkin != nil && log.Checkout == nil {
			result = append(result, log)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result, nil
}

func (f *fakeLogRepo) List(ctx context.Context, filter attendance.LogsFilter) ([]attendance.DailyLog, error) {
	var result []attendance.DailyLog
	for _, log := range f.logs {
		if filter.EmployeeID != "" && log.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != attendance.StatusNone && log.Status != filter.Status {
			continue
		}
		if log.Date.Before(filter.From) || log.Date.After(filter.To) {
			continue
		}
		result = append(result, log)
	}
	sort.Slice(result, func(i, j int) bool { return result[j].Date.Before(result[i].Date) })
	return result, nil
}

type transitionCall struct {
	employeeID string
	from, to   attendance.Status
	month      attendance.Month
}

type reversalCall struct {
	employeeID string
	kind       attendance.Status
	month      attendance.Month
}

type quarterlyCall struct {
	employeeID string
	delta      int
}

type fakeCounterRepo struct {
	lifetime    map[string]attendance.Counters
	monthly     map[string]attendance.Counters
	transitions []transitionCall
	reversals   []reversalCall
	quarterly   []quarterlyCall
	latesResets int
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{
		lifetime: make(map[string]attendance.Counters),
		monthly:  make(map[string]attendance.Counters),
	}
}

func clampDelta(c attendance.Counters, d attendance.CounterDelta) attendance.Counters {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		return v
	}
	c.PresentDays = clamp(c.PresentDays + d.PresentDays)
	c.AbsentDays = clamp(c.AbsentDays + d.AbsentDays)
	c.LateDays = clamp(c.LateDays + d.LateDays)
	c.LeaveDays = clamp(c.LeaveDays + d.LeaveDays)
	c.QuarterlyLeaves = clamp(c.QuarterlyLeaves + d.QuarterlyLeaves)
	c.MonthlyLates = clamp(c.MonthlyLates + d.MonthlyLates)
	c.HalfDays = clamp(c.HalfDays + d.HalfDays)
	return c
}

func monthKey(employeeID string, month attendance.Month) string {
	return employeeID + "|" + month.String()
}

func (f *fakeCounterRepo) ApplyTransition(ctx context.Context, employeeID string, from, to attendance.Status, month attendance.Month) error {
	lifetime, monthly := attendance.TransitionDelta(from, to)
	f.lifetime[employeeID] = clampDelta(f.lifetime[employeeID], lifetime)
	k := monthKey(employeeID, month)
	f.monthly[k] = clampDelta(f.monthly[k], monthly)
	f.transitions = append(f.transitions, transitionCall{employeeID, from, to, month})
	return nil
}

func (f *fakeCounterRepo) ReverseIncident(ctx context.Context, employeeID string, kind attendance.Status, month attendance.Month) error {
	lifetime, monthly := attendance.IncidentReversalDelta(kind)
	f.lifetime[employeeID] = clampDelta(f.lifetime[employeeID], lifetime)
	k := monthKey(employeeID, month)
	f.monthly[k] = clampDelta(f.monthly[k], monthly)
	f.reversals = append(f.reversals, reversalCall{employeeID, kind, month})
	return nil
}

func (f *fakeCounterRepo) AdjustQuarterlyLeaves(ctx context.Context, employeeID string, delta int) error {
	f.lifetime[employeeID] = clampDelta(f.lifetime[employeeID], attendance.CounterDelta{QuarterlyLeaves: delta})
	f.quarterly = append(f.quarterly, quarterlyCall{employeeID, delta})
	return nil
}

func (f *fakeCounterRepo) ResetMonthlyLates(ctx context.Context) error {
	for k, c := range f.monthly {
		c.MonthlyLates = 0
		f.monthly[k] = c
	}
	for k, c := range f.lifetime {
		c.MonthlyLates = 0
		f.lifetime[k] = c
	}
	f.latesResets++
	return nil
}

func (f *fakeCounterRepo) GetLifetime(ctx context.Context, employeeID string) (attendance.LifetimeCounters, error) {
	return attendance.LifetimeCounters{EmployeeID: employeeID, Counters: f.lifetime[employeeID]}, nil
}

func (f *fakeCounterRepo) ListLifetime(ctx context.Context) ([]attendance.LifetimeCounters, error) {
	var result []attendance.LifetimeCounters
	for id, c := range f.lifetime {
		result = append(result, attendance.LifetimeCounters{EmployeeID: id, Counters: c})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}

func (f *fakeCounterRepo) GetMonthly(ctx context.Context, employeeID string, month attendance.Month) (attendance.MonthlySummary, error) {
	return attendance.MonthlySummary{
		EmployeeID: employeeID,
		Month:      month,
		Counters:   f.monthly[monthKey(employeeID, month)],
	}, nil
}

func (f *fakeCounterRepo) ListMonthly(ctx context.Context, month attendance.Month) ([]attendance.MonthlySummary, error) {
	var result []attendance.MonthlySummary
	for id := range f.lifetime {
		result = append(result, attendance.MonthlySummary{
			EmployeeID: id,
			Month:      month,
			Counters:   f.monthly[monthKey(id, month)],
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}

type fakeIncidentRepo struct {
	incidents []incident.Incident
	nextID    int
}

func (f *fakeIncidentRepo) Create(ctx context.Context, inc incident.Incident) (incident.Incident, error) {
	f.nextID++
	inc.ID = fmt.Sprintf("inc-%d", f.nextID)
	inc.CreatedAt = time.Now()
	f.incidents = append(f.incidents, inc)
	return inc, nil
}

func (f *fakeIncidentRepo) GetByID(ctx context.Context, id string) (incident.Incident, error) {
	for _, inc := range f.incidents {
		if inc.ID == id {
			return inc, nil
		}
	}
	return incident.Incident{}, incident.ErrIncidentNotFound
}

func (f *fakeIncidentRepo) GetLatestOpen(ctx context.Context, employeeID string, kind incident.Kind, date attendance.BusinessDate) (*incident.Incident, error) {
	for i := len(f.incidents) - 1; i >= 0; i-- {
		inc := f.incidents[i]
		if inc.EmployeeID == employeeID && inc.Kind == kind && inc.Date.Equal(date) && inc.ActionTaken == incident.ActionCreated {
			return &inc, nil
		}
	}
	return nil, nil
}

func (f *fakeIncidentRepo) Update(ctx context.Context, inc incident.Incident) error {
	for i := range f.incidents {
		if f.incidents[i].ID == inc.ID {
			f.incidents[i] = inc
			return nil
		}
	}
	return incident.ErrIncidentNotFound
}

func (f *fakeIncidentRepo) List(ctx context.Context, filter incident.Filter) ([]incident.Incident, error) {
	var result []incident.Incident
	for _, inc := range f.incidents {
		if filter.EmployeeID != "" && inc.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Kind != "" && inc.Kind != filter.Kind {
			continue
		}
		if filter.ActionTaken != "" && inc.ActionTaken != filter.ActionTaken {
			continue
		}
		result = append(result, inc)
	}
	return result, nil
}

func (f *fakeIncidentRepo) Stats(ctx context.Context, filter incident.Filter) (incident.Stats, error) {
	matched, err := f.List(ctx, filter)
	if err != nil {
		return incident.Stats{}, err
	}
	var stats incident.Stats
	for _, inc := range matched {
		stats.Total++
		switch inc.ActionTaken {
		case incident.ActionCreated:
			stats.Created++
		case incident.ActionPending:
			stats.Pending++
		case incident.ActionCompleted:
			stats.Completed++
		}
		if inc.Type != nil {
			switch *inc.Type {
			case incident.DecisionPaid:
				stats.Paid++
			case incident.DecisionUnpaid:
				stats.Unpaid++
			}
		}
	}
	return stats, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range emps {
		f.employees[e.ID] = e
	}
	return f
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, emp := range f.employees {
		if emp.IsActive() {
			result = append(result, emp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type fakePolicyProvider struct {
	thresholds policy.Thresholds
	err        error
}

func (f *fakePolicyProvider) Thresholds(ctx context.Context) (policy.Thresholds, error) {
	if f.err != nil {
		return policy.Thresholds{}, f.err
	}
	return f.thresholds, nil
}

func (f *fakePolicyProvider) Invalidate() {}

type fakeLeaveChecker struct {
	approved map[string]bool
}

func newFakeLeaveChecker() *fakeLeaveChecker {
	return &fakeLeaveChecker{approved: make(map[string]bool)}
}

func (f *fakeLeaveChecker) approve(employeeID string, date attendance.BusinessDate) {
	f.approved[logKey(employeeID, date)] = true
}

func (f *fakeLeaveChecker) HasApprovedLeaveOn(ctx context.Context, employeeID string, date attendance.BusinessDate) (bool, error) {
	return f.approved[logKey(employeeID, date)], nil
}

// The correction service only touches the leave ledger through the
// approved-leave lookup; the rest of the interface is unreachable here.
func (f *fakeLeaveChecker) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	return leave.Request{}, errors.New("not implemented")
}

func (f *fakeLeaveChecker) GetByID(ctx context.Context, id string) (leave.Request, error) {
	return leave.Request{}, errors.New("not implemented")
}

func (f *fakeLeaveChecker) Update(ctx context.Context, req leave.Request) error {
	return errors.New("not implemented")
}

func (f *fakeLeaveChecker) HasOverlap(ctx context.Context, employeeID string, start, end attendance.BusinessDate) (bool, error) {
	return false, errors.New("not implemented")
}

func (f *fakeLeaveChecker) List(ctx context.Context, filter leave.Filter) ([]leave.Request, error) {
	return nil, errors.New("not implemented")
}

type fakeAuditRepo struct {
	entries []audit.Entry
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry audit.Entry) error {
	f.entries = append(f.entries, entry)
	return nil
}
