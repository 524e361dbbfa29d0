// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package picker

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// loopBacklog bounds queued work before Submit blocks the caller.
const loopBacklog = 64

// Task is a handle to work scheduled on an Executor.
type Task interface {
	// Cancel prevents the task from running if it has not started yet.
	Cancel()
}

// Executor serializes all work for one state owner.
type Executor interface {
	// Submit queues fn to run on the executor. It returns false when the
	// executor has stopped and fn will never run.
	Submit(fn func()) bool

	// Schedule runs fn on the executor once delay has elapsed.
	Schedule(delay time.Duration, fn func()) Task
}

// Loop is an Executor backed by a single goroutine.
type Loop struct {
	work    chan func()
	done    chan struct{}
	exited  chan struct{}
	stopped sync.Once
}

// NewLoop starts a Loop that stops when ctx is cancelled or Close is called.
func NewLoop(ctx context.Context) *Loop {
	loop := &Loop{
		work:   make(chan func(), loopBacklog),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}

	go loop.run(ctx)

	return loop
}

func (l *Loop) run(ctx context.Context) {
	defer close(l.exited)

	for {
		select {
		case <-ctx.Done():
			l.Close()

			return
		case <-l.done:
			return
		case fn := <-l.work:
			fn()
		}
	}
}

// Submit implements Executor.
func (l *Loop) Submit(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.work <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Schedule implements Executor.
func (l *Loop) Schedule(delay time.Duration, fn func()) Task {
	task := &loopTask{}
	task.timer = time.AfterFunc(delay, func() {
		l.Submit(func() {
			if !task.cancelled.Load() {
				fn()
			}
		})
	})

	return task
}

// Close stops the loop. Queued and scheduled work is dropped.
func (l *Loop) Close() {
	l.stopped.Do(func() { close(l.done) })
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.exited
}

type loopTask struct {
	timer     *time.Timer
	cancelled atomic.Bool
}

func (t *loopTask) Cancel() {
	t.cancelled.Store(true)
	t.timer.Stop()
}

// ManualExecutor runs submitted work inline and scheduled work only when
// Advance moves its virtual clock past the due time. It makes debounce
// timing deterministic in tests and tools.
type ManualExecutor struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTask
}

// NewManualExecutor creates a ManualExecutor at virtual time zero.
func NewManualExecutor() *ManualExecutor {
	return &ManualExecutor{}
}

// Submit implements Executor.
func (m *ManualExecutor) Submit(fn func()) bool {
	fn()

	return true
}

// Schedule implements Executor.
func (m *ManualExecutor) Schedule(delay time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	task := &manualTask{owner: m, due: m.now + delay, seq: m.seq, fn: fn}
	m.seq++
	m.pending = append(m.pending, task)

	return task
}

// Advance moves the virtual clock forward by d, running due tasks in order.
func (m *ManualExecutor) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		task := m.popDue(target)
		if task == nil {
			break
		}

		task.fn()
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

// Pending returns the number of scheduled tasks that have not run or been cancelled.
func (m *ManualExecutor) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0

	for _, task := range m.pending {
		if !task.cancelled {
			count++
		}
	}

	return count
}

func (m *ManualExecutor) popDue(target time.Duration) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending = slices.DeleteFunc(m.pending, func(task *manualTask) bool {
		return task.cancelled
	})

	next := -1

	for i, task := range m.pending {
		if task.due > target {
			continue
		}

		if next < 0 || task.due < m.pending[next].due ||
			(task.due == m.pending[next].due && task.seq < m.pending[next].seq) {
			next = i
		}
	}

	if next < 0 {
		return nil
	}

	task := m.pending[next]
	m.pending = slices.Delete(m.pending, next, next+1)
	m.now = task.due

	return task
}

type manualTask struct {
	owner     *ManualExecutor
	due       time.Duration
	seq       int
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel() {
	t.owner.mu.Lock()
	t.cancelled = true
	t.owner.mu.Unlock()
}
