// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// NodeID identifies a graph vertex. -1 is the sentinel meaning
// "no parent" on a cell, and "empty slot" inside a Batch.
type NodeID int32

// NoParent is the sentinel NodeID. No queue family's Enqueue checks for it
// or rejects it; the bfs worker loop never enqueues it as a single element.
const NoParent NodeID = -1

// BatchSize is the fixed width of a Batch element. A worker configured
// with Config.BatchSize == 1 never constructs a Batch and enqueues plain
// NodeID elements instead.
const BatchSize = 8

// Batch is a fixed-size, NoParent-terminated array of vertex ids. It is
// the "batch" queue element variant described in spec.md §3: elements are
// value-typed, so a Batch is copied into and out of the queue whole, never
// aliased.
type Batch [BatchSize]NodeID

// Producer enqueues elements of type Elem (NodeID or Batch).
type Producer[Elem any] interface {
	// Enqueue adds v to the queue. tid is the caller's dense thread id,
	// required by hazard-pointer-based families. Enqueue never blocks: an
	// unbounded queue family only fails on ErrThreadRange, never on capacity.
	Enqueue(v Elem, tid int) error
}

// Consumer dequeues elements of type Elem.
type Consumer[Elem any] interface {
	// Dequeue removes and returns an element. Returns (zero, ErrWouldBlock)
	// if the queue was observably empty at linearization time.
	Dequeue(tid int) (Elem, error)
}

// QueueFamily is the abstraction the BFS worker loop depends on (spec.md
// §6): a FIFO (MS, FAAAQ, or d-CBO composition of either) exposing the
// monotone operation counters d-CBO needs to pick a minimally loaded
// sub-queue.
//
// All three queue families documented in spec.md §1 implement this
// interface over Elem = NodeID and Elem = Batch.
type QueueFamily[Elem any] interface {
	Producer[Elem]
	Consumer[Elem]

	// EnqueueCount returns a monotone non-decreasing enqueue counter as
	// observed by tid's caller, used to balance d-CBO sampling: successful
	// enqueues for MS, slots claimed for enqueue for FAAAQ.
	EnqueueCount(tid int) uint64
	// DequeueCount returns a monotone non-decreasing dequeue counter
	// (successful dequeues for MS, slots claimed for dequeue for FAAAQ),
	// used to balance d-CBO sampling.
	DequeueCount(tid int) uint64
	// EnqueueVersion is identical to EnqueueCount in this package
	// (monotone, incremented on every successful enqueue linearization);
	// it exists as a separate method because d-CBO's double-collect
	// depends on it semantically, not on its numeric identity with
	// EnqueueCount.
	EnqueueVersion(tid int) uint64
}
