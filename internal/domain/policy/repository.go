package policy

import "context"

// Repository reads the stored company policy row.
type Repository interface {
	GetThresholds(ctx context.Context) (Thresholds, error)
}

// Provider is what the engine consumes; implementations may cache.
// A missing policy is fatal for the calling operation, never silently
// defaulted to a whole policy.
type Provider interface {
	Thresholds(ctx context.Context) (Thresholds, error)

	// Invalidate drops any cached policy so the next read hits the store
	Invalidate()
}
