// Package events is the in-process notification channel between the
// import gateway and the trackers.
package events

import (
	"context"
	"crypto/rand"
	"slices"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// DataImported is published after an import writes at least one entry.
type DataImported struct {
	BatchID ulid.ULID
	Keys    []string
	At      time.Time
}

// NewDataImported stamps a batch of written keys with a fresh ULID.
func NewDataImported(keys []string, at time.Time) DataImported {
	return DataImported{
		BatchID: ulid.MustNew(ulid.Timestamp(at), rand.Reader),
		Keys:    append([]string(nil), keys...),
		At:      at,
	}
}

// Touches reports whether key was written by the import.
func (e DataImported) Touches(key string) bool {
	return slices.Contains(e.Keys, key)
}

// Handler receives published events.
type Handler[T any] func(ctx context.Context, event T)

// Bus delivers events of one type to its subscribers, synchronously and
// in subscription order.
type Bus[T any] struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler[T]
	order    []int
}

// NewBus creates an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{handlers: make(map[int]Handler[T])}
}

// Subscribe registers h and returns a function that removes it.
func (b *Bus[T]) Subscribe(h Handler[T]) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
		b.order = slices.DeleteFunc(b.order, func(v int) bool { return v == id })
	}
}

// Publish calls every subscriber with event before returning.
func (b *Bus[T]) Publish(ctx context.Context, event T) {
	b.mu.RLock()
	handlers := make([]Handler[T], 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, event)
	}
}

// Len returns the number of subscribers.
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}
