package incident

import "context"

// Service runs the justification workflow for late and half-day
// check-ins.
type Service interface {
	SubmitReason(ctx context.Context, req SubmitReasonRequest) (Response, error)
	Decide(ctx context.Context, req DecisionRequest) (Response, error)
	List(ctx context.Context, filter Filter) ([]Response, error)
	GetStats(ctx context.Context, filter Filter) (Stats, error)
}
