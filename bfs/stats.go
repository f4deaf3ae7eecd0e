// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bfs

import "go.relaxbfs.dev/rbfs/queue"

// Stats is the run-level result summary described in spec.md §6, suitable
// for direct JSON encoding.
type Stats struct {
	Source         queue.NodeID `json:"source"`
	NodesVisited   uint64       `json:"nodes_visited"`
	NodesRevisited uint64       `json:"nodes_revisited"`
	Queue          string       `json:"queue"`
	SeqStart       int          `json:"seq_start"`
}

// mergeWorkerStats folds a worker's counters into an accumulator.
func (s *Stats) mergeWorkerStats(ws workerStats) {
	s.NodesVisited += ws.visited
	s.NodesRevisited += ws.revisited
}
