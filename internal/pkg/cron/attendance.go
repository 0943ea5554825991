package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/database"
)

// AttendanceJobs holds the scheduled correction jobs.
type AttendanceJobs struct {
	correctionSvc attendance.CorrectionService
	db            *database.DB
}

func NewAttendanceJobs(correctionSvc attendance.CorrectionService, db *database.DB) *AttendanceJobs {
	return &AttendanceJobs{
		correctionSvc: correctionSvc,
		db:            db,
	}
}

// RegisterJobs wires every correction job behind a store-health guard.
// A skipped cycle is recovered by the next one, every correction is
// re-derivable from the logs.
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddGuardedJob("auto_mark_absent", interval, j.storeHealthy, j.AutoMarkAbsent)
	scheduler.AddGuardedJob("auto_checkout", interval, j.storeHealthy, j.AutoCheckout)
	scheduler.AddGuardedJob("monthly_lates_reset", 6*time.Hour, j.storeHealthy, j.MonthlyLatesReset)
}

func (j *AttendanceJobs) storeHealthy(ctx context.Context) bool {
	return j.db.Healthy(ctx)
}

// AutoMarkAbsent marks employees absent once their grace window elapsed.
func (j *AttendanceJobs) AutoMarkAbsent(ctx context.Context) error {
	result, err := j.correctionSvc.RunAutoAbsence(ctx)
	if err != nil {
		return err
	}

	if result.AbsentMarked > 0 || result.LeaveApplied > 0 {
		slog.Info("Cron: auto-absence run finished",
			"employees_checked", result.EmployeesChecked,
			"absent_marked", result.AbsentMarked,
			"leave_applied", result.LeaveApplied,
		)
	}
	return nil
}

// AutoCheckout closes logs whose owner never checked out, stamping the
// shift end as the checkout instant.
func (j *AttendanceJobs) AutoCheckout(ctx context.Context) error {
	result, err := j.correctionSvc.RunAutoCheckout(ctx)
	if err != nil {
		return err
	}

	if result.CheckedOut > 0 {
		slog.Info("Cron: auto-checkout run finished",
			"open_logs", result.OpenLogs,
			"checked_out", result.CheckedOut,
		)
	}
	return nil
}

// MonthlyLatesReset zeroes the monthly late counters on the first day
// of each month. The service holds the day gate, so running the job
// more often than daily is harmless.
func (j *AttendanceJobs) MonthlyLatesReset(ctx context.Context) error {
	ran, err := j.correctionSvc.RunMonthlyLatesReset(ctx)
	if err != nil {
		return err
	}

	if ran {
		slog.Info("Cron: monthly late counters reset")
	}
	return nil
}
