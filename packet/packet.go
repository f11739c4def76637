// Package packet implements a reference-counted handle to a value drawn
// from a bounded pool (§4.A): Factory.Acquire blocks rather than allocates
// once the pool is exhausted, and a Packet's last-reference callback lets
// the factory reclaim its slot without the caller ever touching the pool
// directly.
//
// Grounded on Libraries/iloj/misc/packet.h's Packet<T> (Context with
// useCount/onUniqueness, removeReference's "count drops to 1 -> fire
// callback" rule) and spec.md §9's explicit guidance to implement this as
// an explicit refcount, not via finalizers. The bounded-bocking acquire
// uses golang.org/x/sync/semaphore in place of the original's hand-rolled
// iloj::misc::Semaphore (thread.h).
package packet

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ErrClosed is returned by Acquire once the owning Factory has been closed.
var ErrClosed = errors.New("packet: factory closed")

type sharedContext[T any] struct {
	mu           sync.Mutex
	data         T
	useCount     int
	onUniqueness func()
}

// Packet is a shared handle to a T value owned by a Factory's bounded pool.
// The zero Packet holds no data (see Valid).
type Packet[T any] struct {
	ctx *sharedContext[T]
}

// Valid reports whether p still holds a live reference.
func (p Packet[T]) Valid() bool { return p.ctx != nil }

// Content returns a pointer to the shared T. Safe to read/write as long as
// the caller holds a valid Packet; concurrent access across clones is the
// caller's responsibility, matching the original's raw Context::m_data
// access pattern.
func (p Packet[T]) Content() *T {
	return &p.ctx.data
}

// Clone increments the reference count and returns a new handle to the
// same underlying value.
func (p Packet[T]) Clone() Packet[T] {
	p.ctx.mu.Lock()
	p.ctx.useCount++
	p.ctx.mu.Unlock()
	return Packet[T]{ctx: p.ctx}
}

// Release decrements the reference count. When the count transitions from
// 2 to 1 (only the factory's implicit pool reference remains) the
// onUniqueness callback fires, reclaiming the factory slot. Calling
// Release on an already-released Packet is a no-op.
func (p *Packet[T]) Release() {
	if p.ctx == nil {
		return
	}
	ctx := p.ctx
	p.ctx = nil

	ctx.mu.Lock()
	ctx.useCount--
	switch {
	case ctx.useCount == 1 && ctx.onUniqueness != nil:
		cb := ctx.onUniqueness
		ctx.mu.Unlock()
		cb()
	default:
		ctx.mu.Unlock()
	}
}

// Factory is a fixed-capacity pool of Packet[T] handles (§4.A). At most N
// packets may be outstanding concurrently; Acquire blocks until a slot
// frees up rather than growing unbounded.
type Factory[T any] struct {
	sem  *semaphore.Weighted
	n    int64
	once sync.Once
	done chan struct{}
}

// NewFactory preallocates n slots worth of acquire capacity.
func NewFactory[T any](n int) *Factory[T] {
	if n <= 0 {
		panic("packet: factory size must be positive")
	}
	return &Factory[T]{
		sem:  semaphore.NewWeighted(int64(n)),
		n:    int64(n),
		done: make(chan struct{}),
	}
}

// Size returns the factory's total slot count.
func (f *Factory[T]) Size() int { return int(f.n) }

// Acquire blocks until a slot is free (or ctx is done) and returns a new
// Packet wrapping a zero-valued T. The returned packet's refcount is 2:
// one held by the caller, one implicitly held by the factory's pool until
// the caller's last clone is released.
func (f *Factory[T]) Acquire(ctx context.Context) (Packet[T], error) {
	select {
	case <-f.done:
		return Packet[T]{}, ErrClosed
	default:
	}
	if err := f.sem.Acquire(ctx, 1); err != nil {
		return Packet[T]{}, err
	}
	sc := &sharedContext[T]{useCount: 2}
	sc.onUniqueness = func() {
		f.sem.Release(1)
	}
	return Packet[T]{ctx: sc}, nil
}

// TryAcquire attempts a non-blocking acquire, returning ok=false if the
// pool is currently full.
func (f *Factory[T]) TryAcquire() (p Packet[T], ok bool) {
	if !f.sem.TryAcquire(1) {
		return Packet[T]{}, false
	}
	sc := &sharedContext[T]{useCount: 2}
	sc.onUniqueness = func() {
		f.sem.Release(1)
	}
	return Packet[T]{ctx: sc}, true
}

// Close marks the factory closed: subsequent Acquire calls fail fast with
// ErrClosed. Outstanding packets remain valid until released.
func (f *Factory[T]) Close() {
	f.once.Do(func() { close(f.done) })
}
