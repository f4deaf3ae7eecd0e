// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// DCBO is a d-Choice-of-Best-Out-Of relaxed multiqueue: N independent
// sub-queues of the same [QueueFamily], with every Enqueue/Dequeue
// sampling d of them at random and acting on whichever sample looks least
// loaded. This trades strict FIFO order for much lower contention than a
// single MS or FAAAQ instance at high thread counts.
//
// DCBO itself never allocates nodes or touches atomics directly; all
// synchronization lives in the sub-queues it wraps.
type DCBO[Elem any] struct {
	sub    []QueueFamily[Elem]
	sample int
	rngs   []*rng
	sticky bool
	streak int
	last   []int
	hits   []int
}

// NewDCBO builds a d-CBO multiqueue over subQueues independent instances
// of kind, sampling sample of them per operation. maxThreads bounds the
// per-thread PRNG and stickiness state, mirroring the sub-queue's own
// thread bound.
func NewDCBO[Elem any](subQueues, sample, maxThreads int, newSub func() QueueFamily[Elem]) *DCBO[Elem] {
	if sample < 1 {
		sample = 1
	}
	if sample > subQueues {
		sample = subQueues
	}
	d := &DCBO[Elem]{
		sub:    make([]QueueFamily[Elem], subQueues),
		sample: sample,
		rngs:   make([]*rng, maxThreads),
	}
	for i := range d.sub {
		d.sub[i] = newSub()
	}
	for i := range d.rngs {
		d.rngs[i] = newRNG()
	}
	return d
}

// WithSticky enables the sticky dequeue variant (DCBO_FAA_STICKY in the
// original): a thread keeps dequeuing from the same winning sub-queue for
// up to streak consecutive successes before resampling, instead of
// resampling on every call. This amortizes the sampling cost when a
// sub-queue is reliably non-empty.
func (d *DCBO[Elem]) WithSticky(streak int) *DCBO[Elem] {
	d.sticky = true
	d.streak = streak
	d.last = make([]int, len(d.rngs))
	d.hits = make([]int, len(d.rngs))
	for i := range d.last {
		d.last[i] = -1
	}
	return d
}

// Enqueue samples d sub-queues for the lowest enqueue count and pushes v
// onto the winner.
func (d *DCBO[Elem]) Enqueue(v Elem, tid int) error {
	idx := d.optimalEnqueueIndex(tid)
	return d.sub[idx].Enqueue(v, tid)
}

// Dequeue samples d sub-queues for the lowest dequeue count and pops from
// the winner; on a miss it falls back to [DCBO.doubleCollect] to
// distinguish "transiently empty" from "queue drained".
func (d *DCBO[Elem]) Dequeue(tid int) (Elem, error) {
	idx := d.optimalDequeueIndex(tid)
	if v, err := d.sub[idx].Dequeue(tid); err == nil {
		if d.sticky {
			d.hits[tid]++
		}
		return v, nil
	} else if !IsWouldBlock(err) {
		var zero Elem
		return zero, err
	}
	if d.sticky {
		d.last[tid] = -1
		d.hits[tid] = 0
	}
	return d.doubleCollect(tid)
}

// doubleCollect scans every sub-queue once, and only reports the
// multiqueue empty if a second scan observes the same enqueue versions
// as the first — otherwise an enqueue raced with the scan and the queue
// must be tried again. This is the standard linearizable emptiness check
// for relaxed multiqueues.
func (d *DCBO[Elem]) doubleCollect(tid int) (Elem, error) {
	versions := make([]uint64, len(d.sub))
	for {
		for i, sq := range d.sub {
			versions[i] = sq.EnqueueVersion(tid)
			if v, err := sq.Dequeue(tid); err == nil {
				return v, nil
			}
		}
		allEqual := true
		for i, sq := range d.sub {
			if sq.EnqueueVersion(tid) != versions[i] {
				allEqual = false
				break
			}
		}
		if allEqual {
			var zero Elem
			return zero, ErrWouldBlock
		}
	}
}

func (d *DCBO[Elem]) optimalEnqueueIndex(tid int) int {
	r := d.rngs[tid]
	minIndex := r.intn(len(d.sub))
	minCount := d.sub[minIndex].EnqueueCount(tid)
	for i := 1; i < d.sample; i++ {
		j := r.intn(len(d.sub))
		if c := d.sub[j].EnqueueCount(tid); c < minCount {
			minCount = c
			minIndex = j
		}
	}
	return minIndex
}

func (d *DCBO[Elem]) optimalDequeueIndex(tid int) int {
	if d.sticky && d.last[tid] >= 0 && d.hits[tid] < d.streak {
		return d.last[tid]
	}
	r := d.rngs[tid]
	minIndex := r.intn(len(d.sub))
	minCount := d.sub[minIndex].DequeueCount(tid)
	for i := 1; i < d.sample; i++ {
		j := r.intn(len(d.sub))
		if c := d.sub[j].DequeueCount(tid); c < minCount {
			minCount = c
			minIndex = j
		}
	}
	if d.sticky {
		d.last[tid] = minIndex
		d.hits[tid] = 0
	}
	return minIndex
}

// EnqueueCount sums the per-sub-queue counts; d-CBO instances nested
// inside another d-CBO (not used by this package, but legal since DCBO
// itself implements [QueueFamily]) sample on this aggregate.
func (d *DCBO[Elem]) EnqueueCount(tid int) uint64 {
	var total uint64
	for _, sq := range d.sub {
		total += sq.EnqueueCount(tid)
	}
	return total
}

// DequeueCount sums the per-sub-queue counts.
func (d *DCBO[Elem]) DequeueCount(tid int) uint64 {
	var total uint64
	for _, sq := range d.sub {
		total += sq.DequeueCount(tid)
	}
	return total
}

// EnqueueVersion sums the per-sub-queue versions.
func (d *DCBO[Elem]) EnqueueVersion(tid int) uint64 {
	var total uint64
	for _, sq := range d.sub {
		total += sq.EnqueueVersion(tid)
	}
	return total
}
