package leave

import "context"

// Service handles leave applications and the approval flow, including
// the attendance backfill for leaves approved after the fact.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (Response, error)
	Approve(ctx context.Context, req ReviewRequest) (Response, error)
	Reject(ctx context.Context, req ReviewRequest) (Response, error)
	List(ctx context.Context, filter Filter) ([]Response, error)
}
