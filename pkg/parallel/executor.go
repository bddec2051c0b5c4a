// Package parallel runs independent tasks with bounded concurrency.
package parallel

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	minConcurrency = 2
	maxConcurrency = 8
)

// Task is one unit of work.
type Task func(ctx context.Context) error

// Executor runs tasks concurrently, at most maxConcurrency at a time.
type Executor struct {
	maxConcurrency int64
}

// DefaultMaxConcurrency returns the CPU count clamped to [2, 8].
func DefaultMaxConcurrency() int64 {
	return int64(min(max(runtime.NumCPU(), minConcurrency), maxConcurrency))
}

// NewExecutor creates an executor. Non-positive values select DefaultMaxConcurrency.
func NewExecutor(maxConcurrency int64) *Executor {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency()
	}

	return &Executor{maxConcurrency: maxConcurrency}
}

// Execute runs all tasks and returns the first error. The first failure
// cancels the context passed to the remaining tasks.
func (e *Executor) Execute(ctx context.Context, tasks ...Task) error {
	switch len(tasks) {
	case 0:
		return nil
	case 1:
		return tasks[0](ctx)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(e.maxConcurrency)

	for _, task := range tasks {
		group.Go(func() error {
			err := sem.Acquire(groupCtx, 1)
			if err != nil {
				return fmt.Errorf("acquire worker slot: %w", err)
			}

			defer sem.Release(1)

			return task(groupCtx)
		})
	}

	err := group.Wait()
	if err != nil {
		return fmt.Errorf("parallel execution: %w", err)
	}

	return nil
}
