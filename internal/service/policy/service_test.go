package policy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umairahsan10/crm-backend-go/internal/domain/policy"
)

type fakePolicyRepo struct {
	thresholds policy.Thresholds
	err        error
	calls      int
}

func (f *fakePolicyRepo) GetThresholds(ctx context.Context) (policy.Thresholds, error) {
	f.calls++
	if f.err != nil {
		return policy.Thresholds{}, f.err
	}
	return f.thresholds, nil
}

func TestThresholdsCached(t *testing.T) {
	repo := &fakePolicyRepo{thresholds: policy.Thresholds{
		LateTimeMinutes:   15,
		HalfTimeMinutes:   60,
		AbsentTimeMinutes: 120,
	}}
	provider := NewProvider(repo, time.Minute)

	for i := 0; i < 5; i++ {
		got, err := provider.Thresholds(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 15, got.LateTimeMinutes)
	}

	assert.Equal(t, 1, repo.calls)
}

func TestInvalidateForcesReload(t *testing.T) {
	repo := &fakePolicyRepo{thresholds: policy.Thresholds{
		LateTimeMinutes:   15,
		HalfTimeMinutes:   60,
		AbsentTimeMinutes: 120,
	}}
	provider := NewProvider(repo, time.Minute)

	_, err := provider.Thresholds(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.calls)

	// A changed policy stays invisible until invalidation drops the
	// cached copy.
	repo.thresholds.LateTimeMinutes = 20
	got, err := provider.Thresholds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, got.LateTimeMinutes)

	provider.Invalidate()
	got, err = provider.Thresholds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, got.LateTimeMinutes)
	assert.Equal(t, 2, repo.calls)
}

func TestThresholdsErrorNotCached(t *testing.T) {
	repo := &fakePolicyRepo{err: policy.ErrPolicyNotFound}
	provider := NewProvider(repo, time.Minute)

	_, err := provider.Thresholds(context.Background())
	require.ErrorIs(t, err, policy.ErrPolicyNotFound)

	// The next call hits the repository again and succeeds once the
	// policy exists.
	repo.err = nil
	repo.thresholds = policy.Thresholds{}.WithDefaults()
	got, err := provider.Thresholds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, got.LateTimeMinutes)
	assert.Equal(t, 2, repo.calls)
}
