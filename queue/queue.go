// Package queue implements the producer/consumer primitives between the
// decoder and the reconstruction pipeline (§4.B): a single-consumer FIFO
// (Input) with an open/closed lifecycle, and a fan-out broadcaster
// (Output) that pushes to every subscribed Input. An Input itself holds
// any number of pending items; the only bound on items in flight is the
// capacity of the packet.Factory the packets were acquired from.
//
// Grounded on the call-site shape in decoder.cpp
// (m_genericInput.wait()/.front()/.pop(), connect(output, input)). The
// teacher has no direct analogue for this pure-concurrency component (it
// is a GL wrapper, not a media pipeline), so this is built directly on a
// sync.Mutex + sync.Cond guarding a slice and an open flag — the idiomatic
// stdlib choice for exactly this shape (see DESIGN.md's stdlib
// justification).
package queue

import (
	"sync"
	"time"

	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/packet"
)

// Input is a single-consumer FIFO of Packet[T] with an open/closed state
// (§4.B).
type Input[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []packet.Packet[T]
	opened bool
}

// NewInput returns an opened Input.
func NewInput[T any]() *Input[T] {
	in := &Input[T]{opened: true}
	in.cond = sync.NewCond(&in.mu)
	return in
}

// Open (re)opens the queue for pushes.
func (in *Input[T]) Open() {
	in.mu.Lock()
	in.opened = true
	in.mu.Unlock()
}

// Close closes the queue and wakes every blocked waiter.
func (in *Input[T]) Close() {
	in.mu.Lock()
	in.opened = false
	in.mu.Unlock()
	in.cond.Broadcast()
}

// Clear discards all pending items without touching the open/closed state.
func (in *Input[T]) Clear() {
	in.mu.Lock()
	for i := range in.items {
		in.items[i].Release()
	}
	in.items = nil
	in.mu.Unlock()
}

// Push appends p to the queue. A no-op on a closed queue (the packet's
// reference is released so it does not leak).
func (in *Input[T]) Push(p packet.Packet[T]) {
	in.mu.Lock()
	if !in.opened {
		in.mu.Unlock()
		p.Release()
		return
	}
	in.items = append(in.items, p)
	in.mu.Unlock()
	in.cond.Signal()
}

// Pop removes and returns the front item. A no-op (zero Packet, false) when
// empty.
func (in *Input[T]) Pop() (packet.Packet[T], bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if len(in.items) == 0 {
		return packet.Packet[T]{}, false
	}
	p := in.items[0]
	in.items = in.items[1:]
	return p, true
}

// Front returns the front item without removing it.
func (in *Input[T]) Front() (packet.Packet[T], bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if len(in.items) == 0 {
		return packet.Packet[T]{}, false
	}
	return in.items[0], true
}

// Pending returns the number of queued items.
func (in *Input[T]) Pending() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.items)
}

// Wait blocks until an item is available or the queue is closed, returning
// whether the queue is still open (false meaning "closed, stop waiting").
func (in *Input[T]) Wait() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	for len(in.items) == 0 && in.opened {
		in.cond.Wait()
	}
	return in.opened
}

// WaitFor blocks until an item is available, the queue closes, or d
// elapses, returning whether an item is now available.
func (in *Input[T]) WaitFor(d time.Duration) bool {
	done := make(chan struct{})
	var ok bool
	go func() {
		ok = in.Wait()
		close(done)
	}()
	select {
	case <-done:
		return ok && in.Pending() > 0
	case <-time.After(d):
		return in.Pending() > 0
	}
}

// Output fans pushes out to a set of subscribed Inputs (§4.B), guarded by
// a lock so Connect/Disconnect/Push are all safe to call concurrently.
type Output[T any] struct {
	mu   sync.Mutex
	subs []*Input[T]
}

// NewOutput returns an Output with no subscribers.
func NewOutput[T any]() *Output[T] {
	return &Output[T]{}
}

// Connect subscribes in to receive every future Push.
func (out *Output[T]) Connect(in *Input[T]) {
	out.mu.Lock()
	defer out.mu.Unlock()
	for _, s := range out.subs {
		if s == in {
			return
		}
	}
	out.subs = append(out.subs, in)
}

// Disconnect unsubscribes in; a no-op if it was not subscribed.
func (out *Output[T]) Disconnect(in *Input[T]) {
	out.mu.Lock()
	defer out.mu.Unlock()
	for i, s := range out.subs {
		if s == in {
			out.subs = append(out.subs[:i], out.subs[i+1:]...)
			return
		}
	}
}

// Push broadcasts p to every subscribed Input, cloning the reference once
// per subscriber (the last subscriber receives the original handle, no
// extra clone needed).
func (out *Output[T]) Push(p packet.Packet[T]) {
	out.mu.Lock()
	subs := make([]*Input[T], len(out.subs))
	copy(subs, out.subs)
	out.mu.Unlock()

	if len(subs) == 0 {
		p.Release()
		return
	}
	for i, s := range subs {
		if i == len(subs)-1 {
			s.Push(p)
			continue
		}
		s.Push(p.Clone())
	}
}
