// Package shutdown provides a small LIFO queue of cleanup tasks, drained
// once at the end of main. Tasks registered later stop first, so the HTTP
// server goes down before the database pool it depends on.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task is a cleanup function. It should honor ctx and return an error if it
// cannot finish in time.
type Task func(ctx context.Context) error

type Queue struct {
	mu    sync.Mutex
	tasks []Task
	done  bool
}

func NewQueue() *Queue {
	return &Queue{}
}

// Add registers a task. Calls after Drain are ignored.
func (q *Queue) Add(t Task) {
	if t == nil {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.done {
		return
	}
	q.tasks = append(q.tasks, t)
}

// Drain runs all registered tasks in reverse registration order, collecting
// errors with errors.Join. It runs at most once; if ctx expires mid-drain the
// remaining tasks are skipped and the context error is included.
func (q *Queue) Drain(ctx context.Context) error {
	q.mu.Lock()
	if q.done {
		q.mu.Unlock()
		return nil
	}
	q.done = true
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	var errs []error
	for i := len(tasks) - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("shutdown canceled: %w", ctx.Err()))
			return errors.Join(errs...)
		default:
		}

		err := runTask(ctx, tasks[i])
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func runTask(ctx context.Context, t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in shutdown task: %v", r)
		}
	}()

	return t(ctx)
}
