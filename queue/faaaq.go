// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// faaBufferSize is the number of slots per segment. Once a segment fills,
// a new one is linked in Michael-Scott style; at most faaBufferSize steps
// separate an enqueue from the dequeue that can observe it, so the queue
// remains lock-free even though each segment is bounded.
const faaBufferSize = 1024

// faaSlotState tracks a slot's lifecycle. The original int32 variant
// overloads the stored value itself (-1 empty, -2 taken) as the state;
// since a Batch element has no spare sentinel value to overload, this
// translation uses an explicit state word instead, guarding a plain
// (non-atomic) value field with CAS-coordinated publication.
//
// enqidx and deqidx are independent counters that both index the same
// items array, so exactly one enqueuer and one dequeuer can converge on
// any given slot concurrently: the enqueuer's CAS(empty,filled) and the
// dequeuer's unconditional exchange-to-taken are what the original's
// CAS(nullptr,v)/swap(TOP) dance resolves that race with, and this
// translation keeps the same two-sided coordination.
type faaSlotState int32

const (
	faaSlotEmpty faaSlotState = iota
	faaSlotFilled
	faaSlotTaken
)

type faaSlot[T any] struct {
	state atomix.Int32
	value T
}

// exchangeTaken unconditionally publishes faaSlotTaken into the slot and
// returns whatever state was there immediately before, synchronizing with
// a racing enqueuer's CompareAndSwapAcqRel(empty,filled): if the returned
// state is faaSlotFilled, value was already published and is safe to
// read; if it is faaSlotEmpty, this dequeuer got here first and the slot
// is now permanently forfeited (the enqueuer's later CAS will fail and it
// will retry on a fresh slot). atomix has no generic exchange primitive,
// so this loops a bounded CAS: at most one other party (the slot's single
// matching enqueuer) can ever contend here.
func (s *faaSlot[T]) exchangeTaken() faaSlotState {
	for {
		old := faaSlotState(s.state.LoadAcquire())
		if old == faaSlotTaken {
			return old
		}
		if s.state.CompareAndSwapAcqRel(int32(old), int32(faaSlotTaken)) {
			return old
		}
	}
}

type faaNode[T any] struct {
	deqidx  atomix.Int64
	enqidx  atomix.Int64
	items   [faaBufferSize]faaSlot[T]
	next    atomic.Pointer[faaNode[T]]
	nodeIdx int64
}

func newFAANode[T any](item T, nodeIdx int64) *faaNode[T] {
	n := &faaNode[T]{nodeIdx: nodeIdx}
	n.items[0].value = item
	n.items[0].state.StoreRelaxed(int32(faaSlotFilled))
	n.enqidx.StoreRelaxed(1)
	return n
}

// FAAAQ is a Fetch-And-Add array queue: producers and consumers claim
// slots inside a segment with FAA instead of CAS, which scales better
// under heavy contention than MS at the cost of segment allocation and
// hazard-pointer-guarded reclamation.
//
// enqueue algorithm: FAA + CAS(empty,filled). dequeue algorithm: FAA +
// unconditional exchange to taken. Consistency: linearizable.
// enqueue()/dequeue() progress: lock-free.
// Memory reclamation: hazard pointers (lock-free).
type FAAAQ[T any] struct {
	_    pad
	head atomic.Pointer[faaNode[T]]
	_    pad
	tail atomic.Pointer[faaNode[T]]
	_    pad
	hp   *hazardPointers[faaNode[T]]
}

const (
	faaHPTail = 0
	faaHPHead = 0
)

// NewFAAAQ creates an empty FAA array queue sized for maxThreads
// concurrent callers. Every Enqueue/Dequeue tid argument must be in
// [0, maxThreads).
func NewFAAAQ[T any](maxThreads int) *FAAAQ[T] {
	var zero T
	sentinel := newFAANode[T](zero, 0)
	sentinel.enqidx.StoreRelaxed(0)
	sentinel.items[0].state.StoreRelaxed(int32(faaSlotEmpty))
	q := &FAAAQ[T]{hp: newHazardPointers[faaNode[T]](hpMaxHPs, maxThreads)}
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	return q
}

// Enqueue adds v to the queue.
func (q *FAAAQ[T]) Enqueue(v T, tid int) error {
	if tid < 0 || tid >= q.hp.maxThreads {
		return ErrThreadRange
	}
	sw := spin.Wait{}
	for {
		ltail := q.hp.protect(faaHPTail, &q.tail, tid)
		idx := ltail.enqidx.AddAcqRel(1) - 1
		if idx > faaBufferSize-1 {
			if ltail != q.tail.Load() {
				continue
			}
			lnext := ltail.next.Load()
			if lnext == nil {
				newNode := newFAANode(v, ltail.nodeIdx+1)
				if ltail.next.CompareAndSwap(nil, newNode) {
					q.tail.CompareAndSwap(ltail, newNode)
					q.hp.clear(tid)
					return nil
				}
			} else {
				q.tail.CompareAndSwap(ltail, lnext)
			}
			sw.Once()
			continue
		}
		// idx was claimed uniquely via FAA on enqidx, but the matching
		// deqidx FAA may have already reserved the same idx on the
		// dequeue side and raced ahead, marking it Taken before this
		// value is published. Publish the value, then CAS empty->filled
		// to claim it; if that CAS loses, the slot is permanently
		// forfeited and this value must be retried on a fresh slot.
		slot := &ltail.items[idx]
		slot.value = v
		if slot.state.CompareAndSwapAcqRel(int32(faaSlotEmpty), int32(faaSlotFilled)) {
			q.hp.clear(tid)
			return nil
		}
		sw.Once()
	}
}

// Dequeue removes and returns the oldest element. Returns
// (zero, ErrWouldBlock) if the queue was observably empty.
func (q *FAAAQ[T]) Dequeue(tid int) (T, error) {
	if tid < 0 || tid >= q.hp.maxThreads {
		var zero T
		return zero, ErrThreadRange
	}
	sw := spin.Wait{}
	for {
		lhead := q.hp.protect(faaHPHead, &q.head, tid)
		if lhead.deqidx.LoadAcquire() >= lhead.enqidx.LoadAcquire() && lhead.next.Load() == nil {
			break
		}
		idx := lhead.deqidx.AddAcqRel(1) - 1
		if idx > faaBufferSize-1 {
			lnext := lhead.next.Load()
			if lnext == nil {
				break
			}
			if q.head.CompareAndSwap(lhead, lnext) {
				q.hp.retire(lhead, tid)
			}
			sw.Once()
			continue
		}
		// Unconditionally claim idx as Taken before deciding whether
		// anything was there: the matching enqueuer may not have
		// published its value yet, and publishing Taken first is what
		// makes that enqueuer's CAS(empty,filled) lose and retry
		// elsewhere, instead of this dequeue silently abandoning idx
		// while the enqueuer still believes it owns it.
		slot := &lhead.items[idx]
		if slot.exchangeTaken() != faaSlotFilled {
			sw.Once()
			continue
		}
		item := slot.value
		q.hp.clear(tid)
		return item, nil
	}
	q.hp.clear(tid)
	var zero T
	return zero, ErrWouldBlock
}

// EnqueueCount returns the monotone count of slots claimed for enqueue
// across every segment so far, used by d-CBO to judge sub-queue load.
func (q *FAAAQ[T]) EnqueueCount(tid int) uint64 {
	ltail := q.hp.protect(faaHPTail, &q.tail, tid)
	idx := ltail.enqidx.LoadAcquire()
	if idx > faaBufferSize-1 {
		idx = faaBufferSize
	}
	res := idx + faaBufferSize*ltail.nodeIdx
	q.hp.clear(tid)
	return uint64(res)
}

// DequeueCount returns the monotone count of slots claimed for dequeue
// across every segment so far.
func (q *FAAAQ[T]) DequeueCount(tid int) uint64 {
	lhead := q.hp.protect(faaHPHead, &q.head, tid)
	idx := lhead.deqidx.LoadAcquire()
	if idx > faaBufferSize-1 {
		idx = faaBufferSize
	}
	res := idx + faaBufferSize*lhead.nodeIdx
	q.hp.clear(tid)
	return uint64(res)
}

// EnqueueVersion mirrors EnqueueCount; see [QueueFamily.EnqueueVersion].
func (q *FAAAQ[T]) EnqueueVersion(tid int) uint64 { return q.EnqueueCount(tid) }
