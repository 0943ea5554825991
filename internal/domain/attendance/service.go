package attendance

import "context"

// AttendanceService handles check-in/check-out classification and the
// read side of the counter ledger.
type AttendanceService interface {
	Checkin(ctx context.Context, req CheckinRequest) (CheckinResponse, error)
	Checkout(ctx context.Context, req CheckoutRequest) (CheckoutResponse, error)

	GetLogs(ctx context.Context, filter LogsFilter) ([]DailyLogResponse, error)
	GetLifetime(ctx context.Context, employeeID string) (LifetimeCounters, error)
	ListLifetime(ctx context.Context) ([]LifetimeCounters, error)
	GetMonthly(ctx context.Context, employeeID string, month Month) (MonthlySummary, error)
	ListMonthly(ctx context.Context, month Month) ([]MonthlySummary, error)
}

// CorrectionService runs the unattended and operator-triggered
// correction flows.
type CorrectionService interface {
	// RunAutoAbsence marks employees absent (or on leave) once their
	// shift-start grace window has fully elapsed. Idempotent per day.
	RunAutoAbsence(ctx context.Context) (AutoAbsenceResult, error)

	// BulkMarkPresent marks every active employee present for a past
	// date, in batches, each batch its own unit of work.
	BulkMarkPresent(ctx context.Context, req BulkMarkPresentRequest) (BulkMarkPresentResult, error)

	// RunAutoCheckout closes logs whose shift has ended but that never
	// received a check-out, stamping the shift end as the checkout.
	RunAutoCheckout(ctx context.Context) (AutoCheckoutResult, error)

	// RunMonthlyLatesReset zeroes every employee's monthly late credit.
	// It acts only on the first day of the local month and reports
	// whether it ran.
	RunMonthlyLatesReset(ctx context.Context) (bool, error)
}
