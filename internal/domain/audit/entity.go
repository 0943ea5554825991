package audit

import "time"

// Entry is one HR audit record. Bulk correction runs write a single
// entry summarizing the whole run.
type Entry struct {
	ID          string
	ActorID     *string
	Action      string
	Description string
	CreatedAt   time.Time
}
