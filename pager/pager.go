// Package pager windows a ranked result set into pages revealed
// incrementally. The host decides when to ask for more (scroll
// threshold, explicit page request); the pager only guarantees that a
// single extend is in flight at a time and that the reveal is an
// asynchronous completion rather than a blocking call.
package pager

import (
	"sync"
	"time"
)

// DefaultPageSize is the number of shops revealed per page.
const DefaultPageSize = 10

type Pager[T any] struct {
	mu       sync.Mutex
	items    []T
	visible  int
	pageSize int
	delay    time.Duration
	pending  bool
}

// New builds a pager over items. delay is the interval between an
// Extend call and its completion; pass 0 to resolve on a fresh
// goroutine immediately.
func New[T any](items []T, pageSize int, delay time.Duration) *Pager[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager[T]{items: items, pageSize: pageSize, delay: delay}
}

// Reset replaces the visible prefix with the first page and returns it.
// Any in-flight extend still resolves, but against the new window.
func (p *Pager[T]) Reset(items []T) []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = items
	p.visible = min(p.pageSize, len(p.items))
	return p.items[:p.visible]
}

// Extend schedules the reveal of the next page. It returns nil when
// there is nothing left to reveal or another extend is pending;
// otherwise the channel delivers the new visible slice once the
// completion fires. Completions are never cancelled.
func (p *Pager[T]) Extend() <-chan []T {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending || p.visible >= len(p.items) {
		return nil
	}
	p.pending = true

	done := make(chan []T, 1)
	go func() {
		if p.delay > 0 {
			time.Sleep(p.delay)
		}
		p.mu.Lock()
		p.visible = min(p.visible+p.pageSize, len(p.items))
		out := p.items[:p.visible]
		p.pending = false
		p.mu.Unlock()
		done <- out
	}()
	return done
}

// Visible returns the currently revealed prefix.
func (p *Pager[T]) Visible() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.items[:p.visible]
}

// HasMore reports whether another page exists past the visible prefix.
func (p *Pager[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible < len(p.items)
}

// Page slices one page out of items without pager state. Used by the
// search endpoint, where the client tracks the page number itself.
func Page[T any](items []T, page, size int) (out []T, hasMore bool) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}, false
	}
	end := min(start+size, len(items))
	return items[start:end], end < len(items)
}
