// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package picker

import "sync"

// Observable is the read side of a Value handed to renderers.
type Observable[T any] interface {
	// Get returns the current value. Slices and maps must not be modified.
	Get() T

	// Subscribe registers fn to receive every subsequent value and returns
	// a function that removes the subscription.
	Subscribe(fn func(T)) (unsubscribe func())
}

// Value holds one piece of state and notifies subscribers on change.
// Subscribers run synchronously on the goroutine that calls Set.
type Value[T any] struct {
	mu          sync.RWMutex
	current     T
	subscribers map[int]func(T)
	nextID      int
}

// NewValue creates a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current:     initial,
		subscribers: make(map[int]func(T)),
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.current
}

// Set stores next and notifies every subscriber.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	v.current = next

	subscribers := make([]func(T), 0, len(v.subscribers))
	for _, fn := range v.subscribers {
		subscribers = append(subscribers, fn)
	}
	v.mu.Unlock()

	for _, fn := range subscribers {
		fn(next)
	}
}

// Subscribe implements Observable.
func (v *Value[T]) Subscribe(fn func(T)) func() {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subscribers[id] = fn
	v.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subscribers, id)
			v.mu.Unlock()
		})
	}
}
