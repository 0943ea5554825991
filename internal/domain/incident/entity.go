package incident

import (
	"time"

	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
)

// Kind distinguishes the two justifiable check-in outcomes.
type Kind string

const (
	KindLate    Kind = "late"
	KindHalfDay Kind = "half_day"
)

func (k Kind) Valid() bool {
	return k == KindLate || k == KindHalfDay
}

// CounterStatus maps the incident kind onto the attendance status whose
// counters a paid decision reverses.
func (k Kind) CounterStatus() attendance.Status {
	if k == KindHalfDay {
		return attendance.StatusHalfDay
	}
	return attendance.StatusLate
}

// ActionTaken is the workflow state of one incident.
type ActionTaken string

const (
	ActionCreated   ActionTaken = "created"
	ActionPending   ActionTaken = "pending"
	ActionCompleted ActionTaken = "completed"
)

// DecisionType is the reviewer's verdict on a completed incident.
type DecisionType string

const (
	DecisionPaid   DecisionType = "paid"
	DecisionUnpaid DecisionType = "unpaid"
)

func (t DecisionType) Valid() bool {
	return t == DecisionPaid || t == DecisionUnpaid
}

// Incident is one justification record for a late or half-day check-in.
// The history is append-only: repeated incidents for the same employee
// and date coexist, and the workflow always targets the newest one still
// in its created state.
type Incident struct {
	ID              string
	EmployeeID      string
	Date            attendance.BusinessDate
	Kind            Kind
	ScheduledTimeIn string
	ActualTimeIn    string
	MinutesLate     int
	Reason          *string
	ActionTaken     ActionTaken
	Type            *DecisionType
	Justified       *bool
	ReviewedBy      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
