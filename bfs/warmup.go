// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bfs

import "go.relaxbfs.dev/rbfs/queue"

// sequentialWarmup runs a bounded serial BFS from s, writing (parent,depth)
// directly into cells for up to maxPops vertex expansions, then returns
// the remaining frontier for the caller to transfer into the concurrent
// queue. The first layers of a BFS have very small frontiers and lose to
// queue contention; warming up serially yields a frontier large enough to
// amortize concurrent overhead once workers start.
func sequentialWarmup(g Graph, cells *Cells, s queue.NodeID, maxPops int) []queue.NodeID {
	frontier := []queue.NodeID{s}
	pops := 0
	for len(frontier) > 0 && pops < maxPops {
		u := frontier[0]
		frontier = frontier[1:]
		depth := cells.Depth(u)
		newDepth := depth + 1
		for _, v := range g.OutNeighbors(u) {
			if cells.Parent(v) != queue.NoParent {
				continue
			}
			relaxed, _ := cells.Relax(v, u, newDepth)
			if relaxed {
				frontier = append(frontier, v)
			}
		}
		pops++
	}
	return frontier
}
