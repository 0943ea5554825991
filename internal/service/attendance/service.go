package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/domain/employee"
	"github.com/umairahsan10/crm-backend-go/internal/domain/incident"
	"github.com/umairahsan10/crm-backend-go/internal/domain/policy"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/database"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/validator"
)

type attendanceService struct {
	tx           database.Transactor
	logRepo      attendance.DailyLogRepository
	counterRepo  attendance.CounterRepository
	incidentRepo incident.Repository
	employeeRepo employee.Repository
	policies     policy.Provider
	now          func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	logRepo attendance.DailyLogRepository,
	counterRepo attendance.CounterRepository,
	incidentRepo incident.Repository,
	employeeRepo employee.Repository,
	policies policy.Provider,
) attendance.AttendanceService {
	return &attendanceService{
		tx:           tx,
		logRepo:      logRepo,
		counterRepo:  counterRepo,
		incidentRepo: incidentRepo,
		employeeRepo: employeeRepo,
		policies:     policies,
		now:          time.Now,
	}
}

// eventInstant resolves the client-reported instant, falling back to
// the server clock when the request carries none.
func (s *attendanceService) eventInstant(raw string) (time.Time, error) {
	if raw == "" {
		return s.now(), nil
	}
	t, ok := validator.IsValidDateTime(raw)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{
			Field: "timestamp", Message: "timestamp must be RFC3339",
		}}
	}
	return t, nil
}

// activeEmployeeShift loads the employee and parses their shift window.
func (s *attendanceService) activeEmployeeShift(ctx context.Context, employeeID string) (employee.Employee, attendance.ShiftWindow, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, attendance.ShiftWindow{}, err
	}
	if !emp.IsActive() {
		return employee.Employee{}, attendance.ShiftWindow{}, employee.ErrEmployeeInactive
	}

	shift, ok, err := emp.ShiftWindow()
	if err != nil {
		return employee.Employee{}, attendance.ShiftWindow{}, fmt.Errorf("employee %s shift: %w", emp.ID, err)
	}
	if !ok {
		return employee.Employee{}, attendance.ShiftWindow{}, employee.ErrNoShiftAssigned
	}

	return emp, shift, nil
}

// Checkin implements attendance.AttendanceService.
func (s *attendanceService) Checkin(ctx context.Context, req attendance.CheckinRequest) (attendance.CheckinResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckinResponse{}, err
	}

	emp, shift, err := s.activeEmployeeShift(ctx, req.EmployeeID)
	if err != nil {
		return attendance.CheckinResponse{}, err
	}

	instant, err := s.eventInstant(req.Timestamp)
	if err != nil {
		return attendance.CheckinResponse{}, err
	}
	local := Localize(instant, req.TimezoneOffsetMinutes)
	date := BusinessDateFor(local, shift)

	thresholds, err := s.policies.Thresholds(ctx)
	if err != nil {
		return attendance.CheckinResponse{}, err
	}

	minutesLate := MinutesLate(date, shift, local)
	status := Classify(minutesLate, thresholds)

	mode := attendance.ModeOnsite
	if req.Mode != "" {
		mode = attendance.Mode(req.Mode)
	}

	checkin := instant.UTC()
	var saved attendance.DailyLog
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		// The duplicate guard reads inside the unit of work so two
		// concurrent check-ins cannot both see an empty day.
		existing, err := s.logRepo.GetByEmployeeAndDate(txCtx, emp.ID, date)
		if err != nil {
			return err
		}
		if existing != nil && existing.Checkin != nil {
			return attendance.ErrDuplicateCheckin
		}

		prev := attendance.StatusNone
		if existing != nil {
			// A job may already have marked the day; check-in supersedes
			// it and the transition rebalances the counters.
			prev = existing.Status
		}

		saved, err = s.logRepo.Upsert(txCtx, attendance.DailyLog{
			EmployeeID: emp.ID,
			Date:       date,
			Checkin:    &checkin,
			Mode:       mode,
			Status:     status,
		})
		if err != nil {
			return err
		}

		if err := s.counterRepo.ApplyTransition(txCtx, emp.ID, prev, status, date.Month()); err != nil {
			return err
		}

		if status == attendance.StatusLate || status == attendance.StatusHalfDay {
			kind := incident.KindLate
			if status == attendance.StatusHalfDay {
				kind = incident.KindHalfDay
			}
			_, err := s.incidentRepo.Create(txCtx, incident.Incident{
				EmployeeID:      emp.ID,
				Date:            date,
				Kind:            kind,
				ScheduledTimeIn: shift.Start.String(),
				ActualTimeIn:    local.Format("15:04"),
				MinutesLate:     minutesLate,
				ActionTaken:     incident.ActionCreated,
			})
			return err
		}
		return nil
	})
	if err != nil {
		return attendance.CheckinResponse{}, err
	}

	return attendance.CheckinResponse{
		ID:             saved.ID,
		EmployeeID:     emp.ID,
		Date:           date.String(),
		Status:         status,
		CheckinAt:      checkin.Format(time.RFC3339),
		MinutesLate:    minutesLate,
		RequiresReason: status == attendance.StatusLate || status == attendance.StatusHalfDay,
	}, nil
}

// Checkout implements attendance.AttendanceService.
func (s *attendanceService) Checkout(ctx context.Context, req attendance.CheckoutRequest) (attendance.CheckoutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckoutResponse{}, err
	}

	emp, shift, err := s.activeEmployeeShift(ctx, req.EmployeeID)
	if err != nil {
		return attendance.CheckoutResponse{}, err
	}

	instant, err := s.eventInstant(req.Timestamp)
	if err != nil {
		return attendance.CheckoutResponse{}, err
	}
	local := Localize(instant, req.TimezoneOffsetMinutes)

	// Night shifts can check out past the shift end, which flips the
	// business-date attribution; look at the prior day too.
	candidates := []attendance.BusinessDate{BusinessDateFor(local, shift)}
	if shift.CrossesMidnight() {
		candidates = append(candidates, candidates[0].AddDays(-1))
	}

	var open *attendance.DailyLog
	for _, date := range candidates {
		log, err := s.logRepo.GetByEmployeeAndDate(ctx, emp.ID, date)
		if err != nil {
			return attendance.CheckoutResponse{}, err
		}
		if log == nil || log.Checkin == nil {
			continue
		}
		if log.Checkout != nil {
			return attendance.CheckoutResponse{}, attendance.ErrAlreadyCheckedOut
		}
		open = log
		break
	}
	if open == nil {
		return attendance.CheckoutResponse{}, attendance.ErrNotCheckedIn
	}

	checkout := instant.UTC()
	if err := s.logRepo.SetCheckout(ctx, open.ID, checkout); err != nil {
		return attendance.CheckoutResponse{}, err
	}

	totalHours := decimal.NewFromFloat(checkout.Sub(*open.Checkin).Hours()).Round(2)

	return attendance.CheckoutResponse{
		ID:         open.ID,
		EmployeeID: emp.ID,
		Date:       open.Date.String(),
		CheckoutAt: checkout.Format(time.RFC3339),
		TotalHours: totalHours,
	}, nil
}

// maxLogWindowDays caps log listings at roughly three months.
const maxLogWindowDays = 93

// GetLogs implements attendance.AttendanceService.
func (s *attendanceService) GetLogs(ctx context.Context, filter attendance.LogsFilter) ([]attendance.DailyLogResponse, error) {
	today := attendance.BusinessDateOf(Localize(s.now(), nil))
	if filter.To.IsZero() {
		filter.To = today
	}
	if filter.From.IsZero() {
		filter.From = filter.To.AddDays(-(maxLogWindowDays - 1))
	}
	if filter.From.DaysUntil(filter.To) > maxLogWindowDays {
		return nil, validator.ValidationErrors{{
			Field: "start_date", Message: "date window cannot exceed three months",
		}}
	}

	logs, err := s.logRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]attendance.DailyLogResponse, 0, len(logs))
	for _, log := range logs {
		result = append(result, mapLogToResponse(log))
	}
	return result, nil
}

// GetLifetime implements attendance.AttendanceService.
func (s *attendanceService) GetLifetime(ctx context.Context, employeeID string) (attendance.LifetimeCounters, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.LifetimeCounters{}, err
	}
	return s.counterRepo.GetLifetime(ctx, employeeID)
}

// ListLifetime implements attendance.AttendanceService.
func (s *attendanceService) ListLifetime(ctx context.Context) ([]attendance.LifetimeCounters, error) {
	return s.counterRepo.ListLifetime(ctx)
}

// GetMonthly implements attendance.AttendanceService.
func (s *attendanceService) GetMonthly(ctx context.Context, employeeID string, month attendance.Month) (attendance.MonthlySummary, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.MonthlySummary{}, err
	}
	if month.IsZero() {
		month = attendance.MonthOf(Localize(s.now(), nil))
	}
	return s.counterRepo.GetMonthly(ctx, employeeID, month)
}

// ListMonthly implements attendance.AttendanceService.
func (s *attendanceService) ListMonthly(ctx context.Context, month attendance.Month) ([]attendance.MonthlySummary, error) {
	if month.IsZero() {
		month = attendance.MonthOf(Localize(s.now(), nil))
	}
	return s.counterRepo.ListMonthly(ctx, month)
}

func mapLogToResponse(log attendance.DailyLog) attendance.DailyLogResponse {
	return attendance.DailyLogResponse{
		ID:         log.ID,
		EmployeeID: log.EmployeeID,
		Date:       log.Date.String(),
		Checkin:    timePtrToString(log.Checkin),
		Checkout:   timePtrToString(log.Checkout),
		Mode:       log.Mode,
		Status:     log.Status,
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
