// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bfs

import "go.relaxbfs.dev/rbfs/queue"

// Graph is the external collaborator the worker loop consumes. Graph
// construction (R-MAT/Kronecker, uniform random, grid, binary-tree,
// par-chains, file loading, CSR building) and the independent top-down
// baseline are out of scope; this package only specifies the read
// surface it needs.
type Graph interface {
	// NumNodes returns the number of vertices N; valid ids are [0, N).
	NumNodes() uint32
	// OutNeighbors returns u's out-neighbors. The slice may be reused by
	// the Graph implementation across calls for different u, but never
	// mutated by the caller.
	OutNeighbors(u queue.NodeID) []queue.NodeID
	// InNeighbors returns u's in-neighbors. Nothing in this package calls
	// it; it is part of the read surface for external BFS verification.
	InNeighbors(u queue.NodeID) []queue.NodeID
}
