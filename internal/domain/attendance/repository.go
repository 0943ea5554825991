package attendance

import (
	"context"
	"time"
)

// DailyLogRepository defines data access for daily attendance logs.
type DailyLogRepository interface {
	// Create inserts a new log for (employee, date)
	Create(ctx context.Context, log DailyLog) (DailyLog, error)

	// GetByEmployeeAndDate returns nil when no log exists for the pair
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date BusinessDate) (*DailyLog, error)

	// Upsert inserts or replaces the log for (employee, date), keeping
	// the row's identity
	Upsert(ctx context.Context, log DailyLog) (DailyLog, error)

	// SetCheckout stamps the checkout instant on an existing log
	SetCheckout(ctx context.Context, id string, checkout time.Time) error

	// ExistsForDate reports whether any log exists for (employee, date)
	ExistsForDate(ctx context.Context, employeeID string, date BusinessDate) (bool, error)

	// ListUncheckedOut returns logs up to the cutoff date that carry a
	// check-in but no check-out yet
	ListUncheckedOut(ctx context.Context, cutoff BusinessDate) ([]DailyLog, error)

	// List retrieves logs for a window, newest first
	List(ctx context.Context, filter LogsFilter) ([]DailyLog, error)
}

// CounterRepository is the aggregate ledger. Rows are created lazily and
// every mutation floors at zero. ApplyTransition is the only write path
// for status-attributable counters; the other two cover the adjustments
// the justification and leave flows define on top of it.
type CounterRepository interface {
	// ApplyTransition applies TransitionDelta(from, to) to the lifetime
	// row and to the summary of the given month
	ApplyTransition(ctx context.Context, employeeID string, from, to Status, month Month) error

	// ReverseIncident applies IncidentReversalDelta for a paid incident
	// against the incident's own month
	ReverseIncident(ctx context.Context, employeeID string, kind Status, month Month) error

	// AdjustQuarterlyLeaves shifts the lifetime quarterly leave balance,
	// floored at zero
	AdjustQuarterlyLeaves(ctx context.Context, employeeID string, delta int) error

	// ResetMonthlyLates zeroes the monthly late credit on every lifetime
	// row at the start of a month
	ResetMonthlyLates(ctx context.Context) error

	// GetLifetime returns a zero-valued row when none exists yet
	GetLifetime(ctx context.Context, employeeID string) (LifetimeCounters, error)

	ListLifetime(ctx context.Context) ([]LifetimeCounters, error)

	// GetMonthly returns a zero-valued row when none exists yet
	GetMonthly(ctx context.Context, employeeID string, month Month) (MonthlySummary, error)

	ListMonthly(ctx context.Context, month Month) ([]MonthlySummary, error)
}
