// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bfs

import "go.relaxbfs.dev/rbfs/queue"

// workerStats accumulates the per-thread counters the original
// benchmark's #ifdef DEBUG blocks kept: how many vertices a worker
// actually processed, and how many of its successful relaxations hit a
// cell that had already been visited before (a revisit: the cell's depth
// was not MaxDepth when Relax first read it).
type workerStats struct {
	visited   uint64
	revisited uint64
}

// relaxNeighbors is the inner step shared by both the unbatched and
// batched worker loops: for every out-neighbor of u, try to shorten its
// depth via u, and report each vertex whose cell was actually updated.
func relaxNeighbors(g Graph, cells *Cells, u queue.NodeID, stats *workerStats, emit func(v queue.NodeID)) {
	newDepth := cells.Depth(u) + 1
	for _, v := range g.OutNeighbors(u) {
		relaxed, hadPriorVisit := cells.Relax(v, u, newDepth)
		if !relaxed {
			continue
		}
		if hadPriorVisit {
			stats.revisited++
		}
		emit(v)
	}
}

// workerLoopSingle runs the per-element (BatchSize == 1) relaxed BFS
// worker protocol: dequeue one vertex, relax its neighbors, enqueue each
// vertex whose depth was shortened, until termination detection declares
// quiescence.
func workerLoopSingle(g Graph, cells *Cells, q queue.QueueFamily[queue.NodeID], td *termination, tid int) workerStats {
	var stats workerStats
	var u queue.NodeID
	for td.repeat(func() bool {
		v, err := q.Dequeue(tid)
		if err != nil {
			return false
		}
		u = v
		return true
	}) {
		stats.visited++
		relaxNeighbors(g, cells, u, &stats, func(v queue.NodeID) {
			_ = q.Enqueue(v, tid)
		})
	}
	return stats
}

// outputBatch accumulates relaxed vertices into a NoParent-terminated
// queue.Batch, flushing (enqueueing) it once it reaches width elements.
// width is Config.BatchSize, which may be smaller than queue.Batch's fixed
// array capacity (queue.BatchSize); the unused tail stays NoParent.
type outputBatch struct {
	batch queue.Batch
	n     int
	width int
}

// newOutputBatch builds an outputBatch that flushes every width elements.
// width is clamped to queue.BatchSize, the array's fixed capacity.
func newOutputBatch(width int) outputBatch {
	if width > queue.BatchSize {
		width = queue.BatchSize
	}
	return outputBatch{width: width}
}

func (b *outputBatch) reset() { b.n = 0 }

// push appends v, flushing and enqueueing the batch first if it has
// already reached its configured width. Returns true if a flush occurred.
func (b *outputBatch) push(v queue.NodeID, q queue.QueueFamily[queue.Batch], tid int) (flushed bool) {
	if b.n >= b.width {
		b.flush(q, tid)
		flushed = true
	}
	b.batch[b.n] = v
	b.n++
	return flushed
}

func (b *outputBatch) flush(q queue.QueueFamily[queue.Batch], tid int) {
	if b.n == 0 {
		return
	}
	if b.n < queue.BatchSize {
		b.batch[b.n] = queue.NoParent
	}
	_ = q.Enqueue(b.batch, tid)
	b.reset()
}

// workerLoopBatched runs the batched relaxed BFS worker protocol
// (BatchSize > 1): each dequeue returns a NoParent-terminated array of up
// to BatchSize vertices, processed in order; shortened neighbors
// accumulate into a local output batch flushed when full or when the
// input batch is exhausted. When cfg.BackupDequeue is set and the output
// batch is non-empty, a worker tries one extra dequeue after draining its
// input batch. If the depth of the backup batch's first vertex is within
// BackupDepthThreshold of the output batch's first vertex, the backup is
// processed next into the same output batch; otherwise the backup is
// requeued and the output batch flushed. Only the absolute depth gap is
// compared: which of the two is shallower does not affect the choice
// (rbfs_bod.cc's "search_neighbors" state machine, expressed as an
// explicit loop instead of a goto).
func workerLoopBatched(g Graph, cells *Cells, q queue.QueueFamily[queue.Batch], cfg Config, td *termination, tid int) workerStats {
	var stats workerStats
	out := newOutputBatch(cfg.BatchSize)
	var consumer queue.Batch

	for td.repeat(func() bool {
		b, err := q.Dequeue(tid)
		if err != nil {
			return false
		}
		consumer = b
		return true
	}) {
		for {
			processBatch(g, cells, consumer, &stats, &out, q, tid)

			// Backup-dequeue: rather than flush the just-accumulated
			// output batch immediately, try one more dequeue. If the two
			// batches are within BackupDepthThreshold of each other,
			// keep accumulating into the same output batch (they belong
			// to roughly the same BFS layer); otherwise requeue the
			// backup untouched and flush, preserving layer locality.
			if !cfg.BackupDequeue || out.n == 0 {
				out.flush(q, tid)
				break
			}
			// This backup dequeue bypasses td.repeat deliberately, matching
			// rbfs_bod.cc's bare SINGLE_DEQUEUE rather than the spec's
			// literal wording ("reported through the same td.repeat
			// wrapper"): a worker attempting a backup dequeue already has
			// live, unflushed output, so it is not idle and cannot
			// corrupt the quiescence counters by skipping repeat here.
			backup, err := q.Dequeue(tid)
			if err != nil {
				out.flush(q, tid)
				break
			}
			diff := int32(cells.Depth(backup[0])) - int32(cells.Depth(out.batch[0]))
			if abs32(diff) >= int32(cfg.BackupDepthThreshold) {
				_ = q.Enqueue(backup, tid)
				out.flush(q, tid)
				break
			}
			consumer = backup
		}
	}
	return stats
}

// processBatch runs the inner step over one dequeued batch, stopping at
// the first NoParent terminator, accumulating relaxed vertices into out.
// The caller is responsible for flushing out once it is done feeding it
// (processBatch only flushes when out fills up mid-scan).
func processBatch(g Graph, cells *Cells, in queue.Batch, stats *workerStats, out *outputBatch, q queue.QueueFamily[queue.Batch], tid int) {
	for _, u := range in {
		if u == queue.NoParent {
			break
		}
		stats.visited++
		relaxNeighbors(g, cells, u, stats, func(v queue.NodeID) {
			out.push(v, q, tid)
		})
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
