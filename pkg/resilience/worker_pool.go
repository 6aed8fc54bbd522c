package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrWorkerPoolClosed = errors.New("worker pool is closed")

// WorkerPool runs submitted jobs on a fixed number of goroutines.
type WorkerPool struct {
	jobs    chan func()
	workers int
	closed  bool
	mu      sync.RWMutex
	once    sync.Once
	wg      sync.WaitGroup
}

func NewWorkerPool(workers, queueSize int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}

	p := &WorkerPool{
		jobs:    make(chan func(), queueSize),
		workers: workers,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
			}
		}()
	}

	return p
}

// Size returns the number of worker goroutines.
func (p *WorkerPool) Size() int {
	return p.workers
}

func (p *WorkerPool) Submit(ctx context.Context, job func()) error {
	if job == nil {
		return nil
	}

	// Hold the read lock across the send so Close cannot close the channel underneath us.
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrWorkerPoolClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.jobs <- job:
		return nil
	}
}

func (p *WorkerPool) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.jobs)
		p.mu.Unlock()
	})
}

func (p *WorkerPool) Wait() {
	p.wg.Wait()
}

// TaskPanicError reports a task that panicked inside a worker.
type TaskPanicError struct {
	Index int
	Value any
}

func (e *TaskPanicError) Error() string {
	return fmt.Sprintf("task %d panicked: %v", e.Index, e.Value)
}

// RunBatch executes fn for every task on the pool and blocks until the whole
// batch has finished. Results and errors are returned in submission order:
// results[i] and errs[i] belong to tasks[i].
//
// The returned error is non-nil only when the batch could not be fully
// dispatched (pool closed or ctx done). Tasks that were never submitted carry
// that error in errs; tasks already submitted still run to completion.
func RunBatch[T, R any](ctx context.Context, pool *WorkerPool, tasks []T, fn func(context.Context, T) (R, error)) ([]R, []error, error) {
	results := make([]R, len(tasks))
	errs := make([]error, len(tasks))

	var wg sync.WaitGroup
	var dispatchErr error
	for i := range tasks {
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = &TaskPanicError{Index: i, Value: r}
				}
			}()
			results[i], errs[i] = fn(ctx, tasks[i])
		})
		if err != nil {
			wg.Done()
			dispatchErr = fmt.Errorf("dispatch task %d of %d: %w", i, len(tasks), err)
			for j := i; j < len(tasks); j++ {
				errs[j] = dispatchErr
			}
			break
		}
	}

	wg.Wait()
	return results, errs, dispatchErr
}

// FirstError returns the first non-nil error in submission order.
func FirstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
