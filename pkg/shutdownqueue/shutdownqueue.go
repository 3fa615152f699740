// Package shutdownqueue is a process-wide LIFO queue of cleanup tasks.
// Register tasks anywhere with Add and drain them once at the end of main:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//	defer shutdownqueue.Shutdown(ctx)
//
// Tasks run once, newest first. Panics are recovered, Shutdown is
// idempotent, and all task errors come back joined.
package shutdownqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task is one cleanup function. It should honor ctx.
type Task func(ctx context.Context) error

var global = &queue{}

type queue struct {
	mu     sync.Mutex
	tasks  []Task
	closed bool
}

// Add registers a task. Nil tasks and tasks added after shutdown started
// are dropped.
func Add(t Task) { global.add(t) }

// Shutdown drains all registered tasks in LIFO order. If ctx expires
// mid-drain it stops early; the context error and any task errors are
// joined. Repeat calls are no-ops.
func Shutdown(ctx context.Context) error { return global.drain(ctx) }

func (q *queue) add(t Task) {
	if t == nil {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.tasks = append(q.tasks, t)
}

func (q *queue) drain(ctx context.Context) error {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.closed = true
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
		r := recover()
		if r != nil {
			err = fmt.Errorf("panic in shutdown task: %v", r)
		}
	}()

	return t(ctx)
}
