// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// msNode is one link of the Michael-Scott queue. next is a plain
// sync/atomic.Pointer: the algorithm needs no hazard pointers, because a
// node becomes unreachable from head the instant its dequeuing CAS
// succeeds, and no other thread retains a reference to it afterwards (the
// Go garbage collector reclaims it like any other unreferenced value).
type msNode[T any] struct {
	value T
	next  atomic.Pointer[msNode[T]]
}

// MS is Michael and Scott's unbounded lock-free linked-list FIFO queue.
// Dequeue reads the value from head's successor, which then becomes the
// new sentinel; that node keeps its value field until it is itself
// unlinked by the next successful Dequeue.
//
// enqueue progress: lock-free. dequeue progress: lock-free.
// Memory reclamation: none needed (see msNode).
type MS[T any] struct {
	_        pad
	head     atomic.Pointer[msNode[T]]
	_        pad
	tail     atomic.Pointer[msNode[T]]
	_        pad
	enqueued atomix.Uint64
	dequeued atomix.Uint64
}

// NewMS creates an empty Michael-Scott queue.
func NewMS[T any]() *MS[T] {
	sentinel := &msNode[T]{}
	q := &MS[T]{}
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	return q
}

// Enqueue adds v to the tail of the queue. tid is accepted to satisfy
// [QueueFamily] but is unused: MS needs no hazard-pointer slot and no
// per-thread PRNG.
func (q *MS[T]) Enqueue(v T, tid int) error {
	node := &msNode[T]{value: v}
	sw := spin.Wait{}
	for {
		ltail := q.tail.Load()
		lnext := ltail.next.Load()
		if ltail != q.tail.Load() {
			continue
		}
		if lnext == nil {
			if ltail.next.CompareAndSwap(nil, node) {
				q.tail.CompareAndSwap(ltail, node)
				q.enqueued.AddAcqRel(1)
				return nil
			}
		} else {
			q.tail.CompareAndSwap(ltail, lnext)
		}
		sw.Once()
	}
}

// Dequeue removes and returns the element at the head of the queue.
// Returns (zero, ErrWouldBlock) if the queue was observably empty.
func (q *MS[T]) Dequeue(tid int) (T, error) {
	sw := spin.Wait{}
	for {
		lhead := q.head.Load()
		ltail := q.tail.Load()
		lnext := lhead.next.Load()
		if lhead != q.head.Load() {
			continue
		}
		if lhead == ltail {
			if lnext == nil {
				var zero T
				return zero, ErrWouldBlock
			}
			q.tail.CompareAndSwap(ltail, lnext)
			sw.Once()
			continue
		}
		value := lnext.value
		if q.head.CompareAndSwap(lhead, lnext) {
			q.dequeued.AddAcqRel(1)
			return value, nil
		}
		sw.Once()
	}
}

// EnqueueCount returns the number of successful enqueues observed so far.
func (q *MS[T]) EnqueueCount(tid int) uint64 { return q.enqueued.LoadAcquire() }

// DequeueCount returns the number of successful dequeues observed so far.
func (q *MS[T]) DequeueCount(tid int) uint64 { return q.dequeued.LoadAcquire() }

// EnqueueVersion is identical to EnqueueCount for MS: both are the same
// monotone counter, incremented once per successful enqueue linearization.
func (q *MS[T]) EnqueueVersion(tid int) uint64 { return q.enqueued.LoadAcquire() }
