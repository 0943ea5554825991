package policy

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/umairahsan10/crm-backend-go/internal/domain/policy"
)

const thresholdsKey = "thresholds"

type service struct {
	repo  policy.Repository
	cache *gocache.Cache
}

// NewProvider wraps the policy repository with a TTL cache. Check-in and
// the correction jobs read the thresholds on every event; the policy row
// itself changes rarely.
func NewProvider(repo policy.Repository, ttl time.Duration) policy.Provider {
	return &service{
		repo:  repo,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Thresholds implements policy.Provider. A missing policy is returned as
// policy.ErrPolicyNotFound and is never cached.
func (s *service) Thresholds(ctx context.Context) (policy.Thresholds, error) {
	if cached, ok := s.cache.Get(thresholdsKey); ok {
		return cached.(policy.Thresholds), nil
	}

	t, err := s.repo.GetThresholds(ctx)
	if err != nil {
		return policy.Thresholds{}, fmt.Errorf("load attendance thresholds: %w", err)
	}

	s.cache.SetDefault(thresholdsKey, t)
	return t, nil
}

// Invalidate implements policy.Provider. Called after the policy row is
// edited so the new bands take effect before the TTL lapses.
func (s *service) Invalidate() {
	s.cache.Delete(thresholdsKey)
}
