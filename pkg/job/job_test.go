package job_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/magscene/magsav/pkg/job"
)

func TestService_RunsAndStops(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	var (
		runs    atomic.Int32
		mu      sync.Mutex
		results = map[string][]error{}
	)

	s := job.NewService().
		OnDone(func(name string, err error) {
			mu.Lock()
			defer mu.Unlock()

			results[name] = append(results[name], err)
		}).
		RegisterJob("counter", 10*time.Millisecond, func(context.Context) error {
			runs.Add(1)
			return nil
		}).
		RegisterJob("panics", time.Hour, func(context.Context) error {
			panic("boom")
		}).
		TryRegisterJob(false, "disabled", time.Millisecond, func(context.Context) error {
			return errors.New("must not run")
		})

	s.Start(ctx)

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	s.Stop()

	mu.Lock()
	defer mu.Unlock()

	require.NotContains(t, results, "disabled")
	require.Len(t, results["panics"], 1)
	require.ErrorContains(t, results["panics"][0], "boom")

	for _, err := range results["counter"] {
		require.NoError(t, err)
	}
}
