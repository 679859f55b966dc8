package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marketmuse_backend/scheduler"
	"marketmuse_backend/services"
)

type countingSeeder struct {
	calls chan []string
}

func (s *countingSeeder) SeedMissing(_ context.Context, symbols []string) services.SeedResult {
	s.calls <- symbols
	return services.SeedResult{}
}

func TestScheduler_StartAndStop(t *testing.T) {
	t.Parallel()

	// Arrange
	s := openStores(t, t.TempDir())
	seed(t, s, "AAPL")
	fetcher := &recordingFetcher{}
	refresher := newRefresher(s, fetcher, 10)
	seeder := &countingSeeder{calls: make(chan []string, 8)}
	sched := scheduler.NewScheduler(refresher, seeder, []string{"AAPL"}, time.Hour, zap.NewNop())

	// Act
	require.NoError(t, sched.Start(context.Background()))
	require.Eventually(t, func() bool { return len(fetcher.Calls()) == 1 }, 5*time.Second, 10*time.Millisecond)
	sched.Stop()

	// Assert: the seed job waits for its first interval
	assert.False(t, refresher.Status().Running)
	assert.Len(t, seeder.calls, 0)
}

func TestScheduler_SeedJobRuns(t *testing.T) {
	t.Parallel()

	s := openStores(t, t.TempDir())
	refresher := newRefresher(s, &recordingFetcher{}, 10)
	seeder := &countingSeeder{calls: make(chan []string, 64)}
	sched := scheduler.NewScheduler(refresher, seeder, []string{"AAPL", "MSFT"}, time.Second, zap.NewNop())

	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop()

	select {
	case got := <-seeder.calls:
		assert.Equal(t, []string{"AAPL", "MSFT"}, got)
	case <-time.After(5 * time.Second):
		t.Fatal("seed job never ran")
	}
}
