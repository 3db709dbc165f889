package redisstore

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"mindly-be/pkg/wellness"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unreachable: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestSessionRepository_RoundTrip(t *testing.T) {
	rdb := newTestClient(t)
	repo := NewSessionRepository(rdb, time.Minute, 0)
	ctx := context.Background()
	id := uuid.NewString()

	_, found, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)

	s, err := repo.GetOrCreate(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, s.History)

	metrics := wellness.Metrics{"stress": 7, "anxiety": 6.5, "loneliness": 2, "motivation": 4, "financial_burden": 3, "academic_pressure": 8}
	entry, err := repo.AppendTurn(ctx, id, "exams are close", "that sounds stressful", metrics)
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Index)

	s, found, err = repo.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"exams are close", "that sounds stressful"}, s.History)
	require.Len(t, s.MetricsLog, 1)
	assert.Equal(t, metrics, s.MetricsLog[0].Metrics)
	assert.Equal(t, "exams are close", s.MetricsLog[0].Message)
}

func TestSessionRepository_ConcurrentAppends(t *testing.T) {
	rdb := newTestClient(t)
	repo := NewSessionRepository(rdb, time.Minute, 0)
	ctx := context.Background()
	id := uuid.NewString()
	const n = 20

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.AppendTurn(ctx, id, fmt.Sprintf("u%d", i), fmt.Sprintf("b%d", i), wellness.Neutral())
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	s, found, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, s.History, 2*n)
	assert.Len(t, s.MetricsLog, n)
}

func TestSessionRepository_MaxTurns(t *testing.T) {
	rdb := newTestClient(t)
	repo := NewSessionRepository(rdb, time.Minute, 1)
	ctx := context.Background()
	id := uuid.NewString()

	_, err := repo.AppendTurn(ctx, id, "u0", "b0", wellness.Neutral())
	require.NoError(t, err)
	entry, err := repo.AppendTurn(ctx, id, "u1", "b1", wellness.Neutral())
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Index)

	s, _, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "b1"}, s.History)
	require.Len(t, s.MetricsLog, 1)
	assert.Equal(t, 1, s.MetricsLog[0].Index)
}
