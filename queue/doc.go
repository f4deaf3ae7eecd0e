// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue provides unbounded lock-free FIFO queues for the relaxed
// parallel BFS frontier.
//
// Three interchangeable families are provided, all satisfying
// [QueueFamily]:
//
//   - MS: the Michael-Scott linked-list queue. Lowest per-op cost under
//     light contention, but every enqueue and dequeue contends on the
//     same head/tail pointers.
//   - FAAAQ: a Fetch-And-Add array queue. Producers and consumers claim
//     slots with FAA instead of CAS, which scales better under heavy
//     contention at the cost of segment allocation.
//   - d-CBO: a relaxed multiqueue of N FAAAQ or MS sub-queues. Each
//     operation samples d sub-queues and picks the least loaded, trading
//     strict FIFO order for much lower contention at high thread counts.
//
// # Basic usage
//
//	q := queue.NewMS[queue.NodeID]()
//
//	// Enqueue (never blocks; unbounded)
//	err := q.Enqueue(7, tid)
//
//	// Dequeue (non-blocking)
//	v, err := q.Dequeue(tid)
//	if queue.IsWouldBlock(err) {
//	    // queue observably empty at linearization time
//	}
//
// # Choosing a family
//
//	queue.NewMS[T]()                       // simplest, best at low thread counts
//	queue.NewFAAAQ[T](maxThreads)           // better scaling, needs hazard pointers
//	queue.NewDCBO[T](subQueues, d, maxThreads, newSub) // best scaling, relaxed order
//
// # Thread ids
//
// Every operation takes a dense per-thread id in [0, maxThreads). FAAAQ
// uses it to index its hazard-pointer registry; d-CBO uses it to select its
// per-thread PRNG and passes it on to its sub-queues. MS ignores it (no hazard pointers are needed: a
// dequeued node is unreachable from head the instant the CAS succeeds).
//
// # Error handling
//
// Dequeue returns [ErrWouldBlock] when the queue is observably empty. This
// error is sourced from [code.hybscloud.com/iox] for ecosystem consistency.
//
//	backoff := iox.Backoff{}
//	for {
//	    v, err := q.Dequeue(tid)
//	    if err == nil {
//	        backoff.Reset()
//	        process(v)
//	        continue
//	    }
//	    if !queue.IsWouldBlock(err) {
//	        return err
//	    }
//	    backoff.Wait()
//	}
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering, and [code.hybscloud.com/spin] for CAS-retry backoff.
package queue
