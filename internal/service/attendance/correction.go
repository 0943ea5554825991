package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/domain/audit"
	"github.com/umairahsan10/crm-backend-go/internal/domain/employee"
	"github.com/umairahsan10/crm-backend-go/internal/domain/leave"
	"github.com/umairahsan10/crm-backend-go/internal/domain/policy"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/database"
)

const (
	defaultBatchSize = 20
	batchTimeout     = 30 * time.Second
	batchPause       = 100 * time.Millisecond
)

type correctionService struct {
	tx           database.Transactor
	logRepo      attendance.DailyLogRepository
	counterRepo  attendance.CounterRepository
	employeeRepo employee.Repository
	leaveRepo    leave.Repository
	policies     policy.Provider
	auditRepo    audit.Repository
	batchSize    int
	now          func() time.Time
}

func NewCorrectionService(
	tx database.Transactor,
	logRepo attendance.DailyLogRepository,
	counterRepo attendance.CounterRepository,
	employeeRepo employee.Repository,
	leaveRepo leave.Repository,
	policies policy.Provider,
	auditRepo audit.Repository,
	batchSize int,
) attendance.CorrectionService {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &correctionService{
		tx:           tx,
		logRepo:      logRepo,
		counterRepo:  counterRepo,
		employeeRepo: employeeRepo,
		leaveRepo:    leaveRepo,
		policies:     policies,
		auditRepo:    auditRepo,
		batchSize:    batchSize,
		now:          time.Now,
	}
}

// RunAutoAbsence implements attendance.CorrectionService. An employee is
// marked only once their whole grace window has elapsed, and an existing
// log for the day short-circuits the employee entirely, so repeated runs
// never double-mark.
func (s *correctionService) RunAutoAbsence(ctx context.Context) (attendance.AutoAbsenceResult, error) {
	thresholds, err := s.policies.Thresholds(ctx)
	if err != nil {
		return attendance.AutoAbsenceResult{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return attendance.AutoAbsenceResult{}, err
	}

	local := Localize(s.now(), nil)
	minuteOfDay := local.Hour()*60 + local.Minute()

	var result attendance.AutoAbsenceResult
	for _, emp := range employees {
		shift, ok, err := emp.ShiftWindow()
		if err != nil {
			slog.Warn("auto-absence: malformed shift, skipping employee", "employee_id", emp.ID, "error", err)
			continue
		}
		if !ok {
			continue
		}
		result.EmployeesChecked++

		// Minutes since the shift started, wrapping past midnight for
		// night shifts; kept distinct from the same-day subtraction.
		elapsed := minuteOfDay - shift.Start.Minutes()
		if elapsed < 0 {
			elapsed += minutesPerDay
		}
		if elapsed < thresholds.AbsentTimeMinutes {
			continue
		}

		date := BusinessDateFor(local, shift)
		exists, err := s.logRepo.ExistsForDate(ctx, emp.ID, date)
		if err != nil {
			slog.Warn("auto-absence: log lookup failed", "employee_id", emp.ID, "error", err)
			continue
		}
		if exists {
			continue
		}

		onLeave, err := s.leaveRepo.HasApprovedLeaveOn(ctx, emp.ID, date)
		if err != nil {
			slog.Warn("auto-absence: leave lookup failed", "employee_id", emp.ID, "error", err)
			continue
		}

		status := attendance.StatusAbsent
		if onLeave {
			status = attendance.StatusLeave
		}

		err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
			if _, err := s.logRepo.Upsert(txCtx, attendance.DailyLog{
				EmployeeID: emp.ID,
				Date:       date,
				Mode:       attendance.ModeOnsite,
				Status:     status,
			}); err != nil {
				return err
			}
			if err := s.counterRepo.ApplyTransition(txCtx, emp.ID, attendance.StatusNone, status, date.Month()); err != nil {
				return err
			}
			if onLeave {
				return s.counterRepo.AdjustQuarterlyLeaves(txCtx, emp.ID, -1)
			}
			return nil
		})
		if err != nil {
			slog.Warn("auto-absence: marking failed", "employee_id", emp.ID, "error", err)
			continue
		}

		if onLeave {
			result.LeaveApplied++
		} else {
			result.AbsentMarked++
		}
	}

	return result, nil
}

// BulkMarkPresent implements attendance.CorrectionService. Batches are
// independent units of work: a failed batch counts its employees as
// errors and the run moves on.
func (s *correctionService) BulkMarkPresent(ctx context.Context, req attendance.BulkMarkPresentRequest) (attendance.BulkMarkPresentResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.BulkMarkPresentResult{}, err
	}

	date, err := attendance.ParseBusinessDate(req.Date)
	if err != nil {
		return attendance.BulkMarkPresentResult{}, err
	}
	today := attendance.BusinessDateOf(Localize(s.now(), nil))
	if date.After(today) {
		return attendance.BulkMarkPresentResult{}, attendance.ErrDateInFuture
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return attendance.BulkMarkPresentResult{}, err
	}

	result := attendance.BulkMarkPresentResult{
		Date:           date.String(),
		TotalEmployees: len(employees),
	}

	for start := 0; start < len(employees); start += s.batchSize {
		end := start + s.batchSize
		if end > len(employees) {
			end = len(employees)
		}
		batch := employees[start:end]

		var marked, skipped, failed int
		batchCtx, cancel := context.WithTimeout(ctx, batchTimeout)
		err := s.tx.WithinTransaction(batchCtx, func(txCtx context.Context) error {
			for _, emp := range batch {
				ok, skip, err := s.markPresent(txCtx, emp, date)
				if err != nil {
					slog.Warn("bulk-mark-present: employee failed", "employee_id", emp.ID, "error", err)
					failed++
					continue
				}
				if skip {
					skipped++
				} else if ok {
					marked++
				}
			}
			return nil
		})
		cancel()

		if err != nil {
			slog.Error("bulk-mark-present: batch failed", "batch_start", start, "error", err)
			result.Errors += len(batch)
		} else {
			result.MarkedPresent += marked
			result.Skipped += skipped
			result.Errors += failed
		}

		if end < len(employees) {
			time.Sleep(batchPause)
		}
	}

	description := fmt.Sprintf("%d of %d employees marked present for %s", result.MarkedPresent, result.TotalEmployees, date)
	if req.Reason != "" {
		description += " - " + req.Reason
	}
	entry := audit.Entry{
		Action:      "bulk_mark_present",
		Description: description,
	}
	if req.ActorID != "" {
		entry.ActorID = &req.ActorID
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		slog.Warn("bulk-mark-present: audit entry failed", "error", err)
	}

	return result, nil
}

// RunAutoCheckout implements attendance.CorrectionService. Employees
// who forgot to check out get the shift end stamped as their checkout
// once that end has passed; an ongoing shift stays open.
func (s *correctionService) RunAutoCheckout(ctx context.Context) (attendance.AutoCheckoutResult, error) {
	local := Localize(s.now(), nil)
	today := attendance.BusinessDateOf(local)

	open, err := s.logRepo.ListUncheckedOut(ctx, today)
	if err != nil {
		return attendance.AutoCheckoutResult{}, err
	}

	result := attendance.AutoCheckoutResult{OpenLogs: len(open)}
	for _, log := range open {
		emp, err := s.employeeRepo.GetByID(ctx, log.EmployeeID)
		if err != nil {
			slog.Warn("auto-checkout: employee lookup failed", "employee_id", log.EmployeeID, "error", err)
			continue
		}
		shift, ok, err := emp.ShiftWindow()
		if err != nil || !ok {
			continue
		}

		end := shiftEndOn(log.Date, shift)
		if !local.After(end) {
			continue
		}

		if err := s.logRepo.SetCheckout(ctx, log.ID, end); err != nil {
			slog.Warn("auto-checkout: closing log failed", "log_id", log.ID, "error", err)
			continue
		}
		result.CheckedOut++
	}

	return result, nil
}

// RunMonthlyLatesReset implements attendance.CorrectionService. The
// reset is idempotent, so repeated runs on the first of the month are
// harmless.
func (s *correctionService) RunMonthlyLatesReset(ctx context.Context) (bool, error) {
	if Localize(s.now(), nil).Day() != 1 {
		return false, nil
	}
	if err := s.counterRepo.ResetMonthlyLates(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *correctionService) markPresent(ctx context.Context, emp employee.Employee, date attendance.BusinessDate) (marked, skipped bool, err error) {
	existing, err := s.logRepo.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return false, false, err
	}
	if existing != nil && existing.Status == attendance.StatusPresent && existing.Checkin != nil {
		return false, true, nil
	}

	shift, ok, err := emp.ShiftWindow()
	if err != nil {
		return false, false, err
	}
	if !ok {
		// Nothing to synthesize check-in/check-out from.
		return false, true, nil
	}

	prev := attendance.StatusNone
	if existing != nil {
		prev = existing.Status
	}

	checkin := shiftStartOn(date, shift)
	checkout := shiftEndOn(date, shift)
	if _, err := s.logRepo.Upsert(ctx, attendance.DailyLog{
		EmployeeID: emp.ID,
		Date:       date,
		Checkin:    &checkin,
		Checkout:   &checkout,
		Mode:       attendance.ModeOnsite,
		Status:     attendance.StatusPresent,
	}); err != nil {
		return false, false, err
	}

	if err := s.counterRepo.ApplyTransition(ctx, emp.ID, prev, attendance.StatusPresent, date.Month()); err != nil {
		return false, false, err
	}

	return true, false, nil
}
