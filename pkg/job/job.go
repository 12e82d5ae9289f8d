package job

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

type job struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error
}

// Service runs registered jobs on their own ticker until the context passed
// to Start is cancelled. Each job runs once immediately.
type Service struct {
	jobs    []job
	wg      sync.WaitGroup
	onDone  func(name string, err error)
	started bool
}

func NewService() *Service {
	return &Service{}
}

// OnDone registers a callback invoked after every run with its result.
func (s *Service) OnDone(fn func(name string, err error)) *Service {
	s.onDone = fn
	return s
}

func (s *Service) RegisterJob(name string, interval time.Duration, fn func(ctx context.Context) error) *Service {
	return s.TryRegisterJob(true, name, interval, fn)
}

func (s *Service) TryRegisterJob(
	isEnabled bool, name string, interval time.Duration, fn func(ctx context.Context) error,
) *Service {
	if !isEnabled || s.started {
		return s
	}

	s.jobs = append(s.jobs, job{
		name:     name,
		interval: interval,
		fn:       fn,
	})

	return s
}

func (s *Service) Start(ctx context.Context) {
	s.started = true

	for _, v := range s.jobs {
		s.wg.Add(1)

		go s.startJob(ctx, v)
	}
}

func (s *Service) startJob(ctx context.Context, j job) {
	defer s.wg.Done()

	l := slog.Default().With("job", j.name)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		l.DebugContext(ctx, "job started")

		err := s.withRecover(ctx, j)
		if err != nil {
			l.ErrorContext(ctx, "job failed", "error", err)
		} else {
			l.DebugContext(ctx, "job done")
		}

		if s.onDone != nil {
			s.onDone(j.name, err)
		}

		select {
		case <-ctx.Done():
			l.DebugContext(ctx, "context done")
			return

		case <-ticker.C:
		}
	}
}

func (s *Service) withRecover(ctx context.Context, j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panic: %v", r)
			slog.ErrorContext(ctx, "job panic", "job", j.name, "error", r, "stack", string(debug.Stack()))
		}
	}()

	return j.fn(ctx)
}

// Stop waits for running jobs to return after their context was cancelled.
func (s *Service) Stop() {
	s.wg.Wait()
}
