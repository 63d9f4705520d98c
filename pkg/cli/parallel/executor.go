// Package parallel provides bounded parallel execution for batch raster work.
package parallel

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	// minConcurrency is the minimum number of concurrent tasks.
	minConcurrency = 2
	// maxConcurrencyCap bounds concurrency so parallel raster IO does not
	// thrash the disk.
	maxConcurrencyCap = 8
)

// DefaultMaxConcurrency returns the default maximum concurrency based on
// available CPUs, clamped to [2, 8].
func DefaultMaxConcurrency() int64 {
	numCPU := int64(runtime.NumCPU())

	return min(max(numCPU, minConcurrency), maxConcurrencyCap)
}

// Task is a unit of work that can run in parallel.
type Task func(ctx context.Context) error

// Executor runs tasks concurrently with a fixed concurrency limit.
type Executor struct {
	maxConcurrency int64
}

// NewExecutor creates an Executor with the given concurrency limit. Limits
// of zero or below fall back to DefaultMaxConcurrency.
func NewExecutor(maxConcurrency int64) *Executor {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency()
	}

	return &Executor{maxConcurrency: maxConcurrency}
}

// Execute runs all tasks, at most maxConcurrency at a time. The first error
// cancels the remaining tasks and is returned.
func (executor *Executor) Execute(ctx context.Context, tasks ...Task) error {
	if len(tasks) == 0 {
		return nil
	}

	if len(tasks) == 1 {
		return tasks[0](ctx)
	}

	sem := semaphore.NewWeighted(executor.maxConcurrency)
	group, groupCtx := errgroup.WithContext(ctx)

	for _, task := range tasks {
		group.Go(func() error {
			acquireErr := sem.Acquire(groupCtx, 1)
			if acquireErr != nil {
				return fmt.Errorf("acquire semaphore: %w", acquireErr)
			}

			defer sem.Release(1)

			return task(groupCtx)
		})
	}

	waitErr := group.Wait()
	if waitErr != nil {
		return fmt.Errorf("parallel execution: %w", waitErr)
	}

	return nil
}

// SyncWriter serializes writes from multiple goroutines onto one writer.
type SyncWriter struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewSyncWriter wraps the given writer with write synchronization.
func NewSyncWriter(writer io.Writer) *SyncWriter {
	return &SyncWriter{writer: writer}
}

// Write implements io.Writer.
func (syncWriter *SyncWriter) Write(data []byte) (int, error) {
	syncWriter.mu.Lock()
	defer syncWriter.mu.Unlock()

	written, writeErr := syncWriter.writer.Write(data)
	if writeErr != nil {
		return written, fmt.Errorf("sync write: %w", writeErr)
	}

	return written, nil
}

// Results collects values and errors from parallel tasks with thread-safe
// access. Batch operations use it to keep going past per-item failures.
type Results[T any] struct {
	mu     sync.Mutex
	values []T
	errors []error
}

// NewResults creates an empty Results collector.
func NewResults[T any]() *Results[T] {
	return &Results[T]{}
}

// Add appends a result value.
func (results *Results[T]) Add(value T) {
	results.mu.Lock()
	defer results.mu.Unlock()

	results.values = append(results.values, value)
}

// AddError appends an error.
func (results *Results[T]) AddError(err error) {
	results.mu.Lock()
	defer results.mu.Unlock()

	results.errors = append(results.errors, err)
}

// Values returns all collected values.
func (results *Results[T]) Values() []T {
	results.mu.Lock()
	defer results.mu.Unlock()

	return results.values
}

// Errors returns all collected errors.
func (results *Results[T]) Errors() []error {
	results.mu.Lock()
	defer results.mu.Unlock()

	return results.errors
}

// HasErrors reports whether any errors were collected.
func (results *Results[T]) HasErrors() bool {
	results.mu.Lock()
	defer results.mu.Unlock()

	return len(results.errors) > 0
}
