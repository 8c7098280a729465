package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFetch stands in for a store query and counts how often the cache
// actually reaches the source of truth.
type countingFetch struct {
	calls int
	value []string
}

func (f *countingFetch) fetch(ctx context.Context) ([]string, error) {
	f.calls++
	return f.value, nil
}

func newTestService(ttl time.Duration) *Service {
	cfg := DefaultConfig()
	cfg.TTL = ttl
	return New(cfg)
}

func TestGetOrFetchHitsStoreOnceWithinTTL(t *testing.T) {
	svc := newTestService(time.Minute)
	src := &countingFetch{value: []string{"a", "b"}}

	first, err := GetOrFetch(context.Background(), svc, Students, src.fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, first)

	second, err := GetOrFetch(context.Background(), svc, Students, src.fetch)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, 1, src.calls, "second read within TTL must be served from cache")
}

func TestInvalidateForcesRefetch(t *testing.T) {
	svc := newTestService(time.Minute)
	src := &countingFetch{value: []string{"a"}}

	_, err := GetOrFetch(context.Background(), svc, Students, src.fetch)
	require.NoError(t, err)

	svc.Invalidate(Students)

	src.value = []string{"a", "b"}
	refreshed, err := GetOrFetch(context.Background(), svc, Students, src.fetch)
	require.NoError(t, err)

	assert.Equal(t, 2, src.calls, "a write must force the next read to the store")
	assert.Equal(t, []string{"a", "b"}, refreshed)
}

func TestAggregatesAreIndependent(t *testing.T) {
	svc := newTestService(time.Minute)
	studentsSrc := &countingFetch{value: []string{"student"}}
	teachersSrc := &countingFetch{value: []string{"teacher"}}

	_, err := GetOrFetch(context.Background(), svc, Students, studentsSrc.fetch)
	require.NoError(t, err)
	_, err = GetOrFetch(context.Background(), svc, Teachers, teachersSrc.fetch)
	require.NoError(t, err)

	// Invalidating one aggregate leaves the other snapshot alone.
	svc.Invalidate(Students)

	_, err = GetOrFetch(context.Background(), svc, Students, studentsSrc.fetch)
	require.NoError(t, err)
	_, err = GetOrFetch(context.Background(), svc, Teachers, teachersSrc.fetch)
	require.NoError(t, err)

	assert.Equal(t, 2, studentsSrc.calls)
	assert.Equal(t, 1, teachersSrc.calls)
}

func TestSnapshotExpiresAfterTTL(t *testing.T) {
	svc := newTestService(30 * time.Millisecond)
	src := &countingFetch{value: []string{"a"}}

	_, err := GetOrFetch(context.Background(), svc, Payments, src.fetch)
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	_, err = GetOrFetch(context.Background(), svc, Payments, src.fetch)
	require.NoError(t, err)

	assert.Equal(t, 2, src.calls, "expired snapshot must be refetched")
}

func TestInvalidatePaymentsMatchesAggregate(t *testing.T) {
	svc := newTestService(time.Minute)
	src := &countingFetch{value: []string{"rec"}}

	_, err := GetOrFetch(context.Background(), svc, Payments, src.fetch)
	require.NoError(t, err)

	svc.InvalidatePayments()

	_, err = GetOrFetch(context.Background(), svc, Payments, src.fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}
