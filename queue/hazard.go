// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"sync/atomic"
)

// hpMaxHPs is the number of hazard-pointer slots per thread ("K" in the
// Hazard Pointers paper). FAAAQ only ever protects one segment at a time
// per call (the tail being appended to, or the head being drained), and
// a single goroutine's Enqueue/Dequeue calls never run concurrently with
// themselves, so one live slot per thread is enough; the registry is
// still sized generously to leave room for a future queue family that
// needs to hold more than one segment reference at once.
const hpMaxHPs = 4

// hpThresholdR is the retired-list length at which a thread attempts to
// reclaim. A threshold of 0 reclaims eagerly on every retire call, trading
// a bit of scanning cost for a bounded retired-list size.
const hpThresholdR = 0

// hazardPointers is a per-thread hazard-pointer registry guarding
// reclamation of FAAAQ segment nodes. A node retired while another thread
// still holds a hazard pointer to it is kept on that thread's retired list
// until no thread protects it.
//
// hazardPointers is sized at construction for a fixed maxThreads and
// maxHPs; indices outside that range are a programming error, not a
// runtime condition, so methods take a plain tid and trust the caller.
type hazardPointers[T any] struct {
	maxHPs     int
	maxThreads int
	hp         [][]atomic.Pointer[T]
	retired    [][]*T
	_          pad
}

func newHazardPointers[T any](maxHPs, maxThreads int) *hazardPointers[T] {
	hp := make([][]atomic.Pointer[T], maxThreads)
	retired := make([][]*T, maxThreads)
	for t := 0; t < maxThreads; t++ {
		hp[t] = make([]atomic.Pointer[T], maxHPs)
		retired[t] = make([]*T, 0, maxHPs)
	}
	return &hazardPointers[T]{
		maxHPs:     maxHPs,
		maxThreads: maxThreads,
		hp:         hp,
		retired:    retired,
	}
}

// clear releases every hazard pointer tid holds.
//
// Progress: wait-free bounded by maxHPs.
func (h *hazardPointers[T]) clear(tid int) {
	for i := 0; i < h.maxHPs; i++ {
		h.hp[tid][i].Store(nil)
	}
}

// protect repeatedly loads atom into hazard-pointer slot ihp until the
// published pointer and the loaded pointer agree, guaranteeing the node
// returned cannot be reclaimed by another thread's retire while tid holds
// it. This is the standard protect-then-reload hazard pointer idiom.
//
// Progress: lock-free.
func (h *hazardPointers[T]) protect(ihp int, atom *atomic.Pointer[T], tid int) *T {
	var n *T
	for {
		ret := atom.Load()
		if ret == n {
			return ret
		}
		h.hp[tid][ihp].Store(ret)
		n = ret
	}
}

// retire adds ptr to tid's retired list and, once the list grows past
// hpThresholdR, scans every thread's hazard-pointer slots and frees any
// retired node no thread currently protects.
//
// Progress: wait-free bounded by maxThreads*maxHPs.
func (h *hazardPointers[T]) retire(ptr *T, tid int) {
	h.retired[tid] = append(h.retired[tid], ptr)
	if len(h.retired[tid]) < hpThresholdR+1 {
		return
	}
	remaining := h.retired[tid][:0]
	for _, obj := range h.retired[tid] {
		if h.isProtected(obj) {
			remaining = append(remaining, obj)
			continue
		}
		// obj is unreachable via any thread's hazard pointer; the Go
		// garbage collector reclaims it once this slice drops the last
		// reference, so no explicit free is needed here.
	}
	h.retired[tid] = remaining
}

func (h *hazardPointers[T]) isProtected(obj *T) bool {
	for t := 0; t < h.maxThreads; t++ {
		for i := h.maxHPs - 1; i >= 0; i-- {
			if h.hp[t][i].Load() == obj {
				return true
			}
		}
	}
	return false
}
