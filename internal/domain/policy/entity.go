package policy

// Default grace thresholds, applied when the stored policy leaves a
// field unset.
const (
	DefaultLateTimeMinutes   = 30
	DefaultHalfTimeMinutes   = 90
	DefaultAbsentTimeMinutes = 180
)

// Thresholds are the company-wide lateness bands, in minutes past the
// scheduled shift start.
type Thresholds struct {
	LateTimeMinutes   int
	HalfTimeMinutes   int
	AbsentTimeMinutes int
}

// WithDefaults fills unset (zero) fields with the default bands.
func (t Thresholds) WithDefaults() Thresholds {
	if t.LateTimeMinutes <= 0 {
		t.LateTimeMinutes = DefaultLateTimeMinutes
	}
	if t.HalfTimeMinutes <= 0 {
		t.HalfTimeMinutes = DefaultHalfTimeMinutes
	}
	if t.AbsentTimeMinutes <= 0 {
		t.AbsentTimeMinutes = DefaultAbsentTimeMinutes
	}
	return t
}
