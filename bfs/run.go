// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bfs

import (
	"sync"

	"go.relaxbfs.dev/rbfs/queue"
)

// Run executes a relaxed parallel BFS from source over g with cfg's
// tunables, returning the discovered parent vector and run statistics.
func Run(g Graph, source queue.NodeID, cfg Config) ([]queue.NodeID, Stats) {
	cells := NewCells(int(g.NumNodes()))
	cells.InitSource(source)

	stats := Stats{
		Source:   source,
		Queue:    cfg.QueueKind.String(),
		SeqStart: cfg.SeqStart,
	}

	td := newTermination(cfg.Threads)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wg.Add(cfg.Threads)

	if cfg.BatchSize <= 1 {
		q := newSingleQueue(cfg)
		seedSingle(g, cells, source, cfg, q)
		for tid := 0; tid < cfg.Threads; tid++ {
			go func(tid int) {
				defer wg.Done()
				ws := workerLoopSingle(g, cells, q, td, tid)
				mu.Lock()
				stats.mergeWorkerStats(ws)
				mu.Unlock()
			}(tid)
		}
	} else {
		q := newBatchQueue(cfg)
		seedBatched(g, cells, source, cfg, q)
		for tid := 0; tid < cfg.Threads; tid++ {
			go func(tid int) {
				defer wg.Done()
				ws := workerLoopBatched(g, cells, q, cfg, td, tid)
				mu.Lock()
				stats.mergeWorkerStats(ws)
				mu.Unlock()
			}(tid)
		}
	}
	wg.Wait()

	return cells.ParentVector(), stats
}

// newSingleQueue builds the QueueFamily[NodeID] named by cfg.QueueKind.
func newSingleQueue(cfg Config) queue.QueueFamily[queue.NodeID] {
	switch cfg.QueueKind {
	case FAA:
		return queue.NewFAAAQ[queue.NodeID](cfg.Threads)
	case DCBOMS:
		d := queue.NewDCBO[queue.NodeID](cfg.NumSubqueues, cfg.NSamples, cfg.Threads, func() queue.QueueFamily[queue.NodeID] {
			return queue.NewMS[queue.NodeID]()
		})
		if cfg.Sticky {
			return d.WithSticky(cfg.StickyStreak)
		}
		return d
	case DCBOFAA:
		d := queue.NewDCBO[queue.NodeID](cfg.NumSubqueues, cfg.NSamples, cfg.Threads, func() queue.QueueFamily[queue.NodeID] {
			return queue.NewFAAAQ[queue.NodeID](cfg.Threads)
		})
		if cfg.Sticky {
			return d.WithSticky(cfg.StickyStreak)
		}
		return d
	default:
		return queue.NewMS[queue.NodeID]()
	}
}

// newBatchQueue builds the QueueFamily[Batch] named by cfg.QueueKind.
func newBatchQueue(cfg Config) queue.QueueFamily[queue.Batch] {
	switch cfg.QueueKind {
	case FAA:
		return queue.NewFAAAQ[queue.Batch](cfg.Threads)
	case DCBOMS:
		d := queue.NewDCBO[queue.Batch](cfg.NumSubqueues, cfg.NSamples, cfg.Threads, func() queue.QueueFamily[queue.Batch] {
			return queue.NewMS[queue.Batch]()
		})
		if cfg.Sticky {
			return d.WithSticky(cfg.StickyStreak)
		}
		return d
	case DCBOFAA:
		d := queue.NewDCBO[queue.Batch](cfg.NumSubqueues, cfg.NSamples, cfg.Threads, func() queue.QueueFamily[queue.Batch] {
			return queue.NewFAAAQ[queue.Batch](cfg.Threads)
		})
		if cfg.Sticky {
			return d.WithSticky(cfg.StickyStreak)
		}
		return d
	default:
		return queue.NewMS[queue.Batch]()
	}
}

// seedSingle runs the optional sequential warm-up and transfers its
// remaining frontier into q as plain NodeID elements.
func seedSingle(g Graph, cells *Cells, source queue.NodeID, cfg Config, q queue.QueueFamily[queue.NodeID]) {
	frontier := []queue.NodeID{source}
	if cfg.SeqStart > 0 {
		frontier = sequentialWarmup(g, cells, source, cfg.SeqStart)
	}
	for _, v := range frontier {
		_ = q.Enqueue(v, 0)
	}
}

// seedBatched runs the optional sequential warm-up and transfers its
// remaining frontier into q as NoParent-terminated Batch elements.
func seedBatched(g Graph, cells *Cells, source queue.NodeID, cfg Config, q queue.QueueFamily[queue.Batch]) {
	frontier := []queue.NodeID{source}
	if cfg.SeqStart > 0 {
		frontier = sequentialWarmup(g, cells, source, cfg.SeqStart)
	}
	out := newOutputBatch(cfg.BatchSize)
	for _, v := range frontier {
		out.push(v, q, 0)
	}
	out.flush(q, 0)
}
