package attendance

// CounterDelta is a signed adjustment to a Counters row.
type CounterDelta struct {
	PresentDays     int
	AbsentDays      int
	LateDays        int
	LeaveDays       int
	MonthlyLates    int
	HalfDays        int
	QuarterlyLeaves int
}

func (d CounterDelta) IsZero() bool {
	return d == CounterDelta{}
}

func (d CounterDelta) add(o CounterDelta) CounterDelta {
	d.PresentDays += o.PresentDays
	d.AbsentDays += o.AbsentDays
	d.LateDays += o.LateDays
	d.LeaveDays += o.LeaveDays
	d.MonthlyLates += o.MonthlyLates
	d.HalfDays += o.HalfDays
	d.QuarterlyLeaves += o.QuarterlyLeaves
	return d
}

func (d CounterDelta) negate() CounterDelta {
	return CounterDelta{
		PresentDays:     -d.PresentDays,
		AbsentDays:      -d.AbsentDays,
		LateDays:        -d.LateDays,
		LeaveDays:       -d.LeaveDays,
		MonthlyLates:    -d.MonthlyLates,
		HalfDays:        -d.HalfDays,
		QuarterlyLeaves: -d.QuarterlyLeaves,
	}
}

// statusWeight is the counter contribution of one day holding the given
// status. A half day counts toward both halfDays and presentDays; that
// double-count is how attendance rate is defined here, not an accident.
// MonthlyLates accrues with lateDays but only on the lifetime row.
func statusWeight(s Status, lifetime bool) CounterDelta {
	switch s {
	case StatusPresent:
		return CounterDelta{PresentDays: 1}
	case StatusLate:
		d := CounterDelta{LateDays: 1}
		if lifetime {
			d.MonthlyLates = 1
		}
		return d
	case StatusHalfDay:
		return CounterDelta{HalfDays: 1, PresentDays: 1}
	case StatusAbsent:
		return CounterDelta{AbsentDays: 1}
	case StatusLeave:
		return CounterDelta{LeaveDays: 1}
	}
	return CounterDelta{}
}

// TransitionDelta computes the lifetime and monthly counter adjustments
// for moving one employee-day from one status to another. It is the
// single source of truth for how a status maps onto counters: every
// counter write in the system goes through it, so a day can never be
// double-counted or dropped when its status is edited.
func TransitionDelta(from, to Status) (lifetime, monthly CounterDelta) {
	if from == to {
		return CounterDelta{}, CounterDelta{}
	}
	lifetime = statusWeight(from, true).negate().add(statusWeight(to, true))
	monthly = statusWeight(from, false).negate().add(statusWeight(to, false))
	return lifetime, monthly
}

// IncidentReversalDelta is the lifetime adjustment applied when a
// justification incident is decided as paid: the day stops counting
// against the employee. Late reversals also consume one monthly late
// credit. The matching monthly-summary decrement is the lifetime delta
// without the MonthlyLates component.
func IncidentReversalDelta(kind Status) (lifetime, monthly CounterDelta) {
	switch kind {
	case StatusLate:
		return CounterDelta{LateDays: -1, MonthlyLates: 1}, CounterDelta{LateDays: -1}
	case StatusHalfDay:
		return CounterDelta{HalfDays: -1}, CounterDelta{HalfDays: -1}
	}
	return CounterDelta{}, CounterDelta{}
}
