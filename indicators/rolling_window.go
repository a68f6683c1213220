// Package indicators provides the rolling-window cache and a few
// talib-backed indicator helpers used by strategies.
package indicators

import (
	"fmt"
	"sync"
)

// RollingWindow keeps the most recent N items, most-recent-first. Index 0
// is the newest item; adding to a full window evicts the oldest. It is the
// only concurrency-aware container in the engine: live feeds may read it
// from another goroutine while the data feed writes.
type RollingWindow[T any] struct {
	mu sync.RWMutex

	size    int
	items   []T
	removed T
	evicted bool
	samples int
}

// NewRollingWindow returns a window holding at most size items. A
// non-positive size is a programmer error.
func NewRollingWindow[T any](size int) *RollingWindow[T] {
	if size <= 0 {
		panic(fmt.Sprintf("indicators: rolling window size must be positive, got %d", size))
	}
	return &RollingWindow[T]{size: size}
}

// Size returns the maximum number of retained items.
func (w *RollingWindow[T]) Size() int { return w.size }

// Add inserts item as the most recent element, evicting the oldest when
// the window is full.
func (w *RollingWindow[T]) Add(item T) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.items) == w.size {
		w.removed = w.items[len(w.items)-1]
		w.evicted = true
		copy(w.items[1:], w.items)
		w.items[0] = item
	} else {
		w.items = append([]T{item}, w.items...)
	}
	w.samples++
}

// Get returns the i-th most recent item; Get(0) is the newest.
func (w *RollingWindow[T]) Get(i int) T {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if i < 0 || i >= len(w.items) {
		panic(fmt.Sprintf("indicators: rolling window index %d out of range [0,%d)", i, len(w.items)))
	}
	return w.items[i]
}

// MostRecent returns the newest item.
func (w *RollingWindow[T]) MostRecent() T { return w.Get(0) }

// MostRecentlyRemoved returns the last item evicted by Add and whether any
// eviction has happened yet.
func (w *RollingWindow[T]) MostRecentlyRemoved() (T, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.removed, w.evicted
}

// Count returns the number of items currently held.
func (w *RollingWindow[T]) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.items)
}

// Samples returns the total number of items ever added.
func (w *RollingWindow[T]) Samples() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.samples
}

// IsReady reports whether the window has been filled once.
func (w *RollingWindow[T]) IsReady() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.items) == w.size
}

// Reset empties the window and forgets the eviction history.
func (w *RollingWindow[T]) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	var zero T
	w.items = nil
	w.removed = zero
	w.evicted = false
	w.samples = 0
}
