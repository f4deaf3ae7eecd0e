// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bfs

import (
	"code.hybscloud.com/atomix"

	"go.relaxbfs.dev/rbfs/queue"
)

// MaxDepth is the sentinel depth meaning "unvisited".
const MaxDepth uint32 = 0xFFFFFFFF

// cellValue is the unpacked view of one vertex's atomic state.
type cellValue struct {
	parent queue.NodeID
	depth  uint32
}

// pack combines parent and depth into the single 64-bit word a cell
// stores: parent in the low 32 bits, depth in the high 32 bits, matching
// node.h's Node{parent, depth} struct reinterpreted as one uint64 for its
// compare_and_swap helper.
func pack(v cellValue) uint64 {
	return uint64(uint32(v.parent)) | uint64(v.depth)<<32
}

func unpack(w uint64) cellValue {
	return cellValue{
		parent: queue.NodeID(int32(uint32(w))),
		depth:  uint32(w >> 32),
	}
}

// cell is one vertex's packed (parent,depth) word. The layout guarantees a
// single 64-bit CAS updates both fields atomically: no torn read ever
// observes a depth that doesn't belong to the parent alongside it.
type cell struct {
	word atomix.Uint64
}

func (c *cell) init() {
	c.word.StoreRelaxed(pack(cellValue{parent: queue.NoParent, depth: MaxDepth}))
}

// initSource sets this cell to {parent: s, depth: 0}, the required state
// of the source vertex before any worker starts.
func (c *cell) initSource(s queue.NodeID) {
	c.word.StoreRelaxed(pack(cellValue{parent: s, depth: 0}))
}

func (c *cell) load() cellValue {
	return unpack(c.word.LoadAcquire())
}

// tryRelax attempts to shorten v's depth to newDepth via u. It loops
// re-reading the cell until either the CAS succeeds or another thread has
// already brought the depth to newDepth or below, per spec: "on failure:
// re-read cell_v and loop again... if its new depth is already <=
// new_depth, the while-guard exits".
//
// Returns (didRelax, hadPriorVisit): hadPriorVisit is true when the cell's
// depth was not MaxDepth before this call, used by the caller to maintain
// the nodes_revisited counter.
func (c *cell) tryRelax(u queue.NodeID, newDepth uint32) (relaxed bool, hadPriorVisit bool) {
	old := c.load()
	hadPriorVisit = old.depth != MaxDepth
	for newDepth < old.depth {
		oldWord := pack(old)
		newWord := pack(cellValue{parent: u, depth: newDepth})
		if c.word.CompareAndSwapAcqRel(oldWord, newWord) {
			return true, hadPriorVisit
		}
		old = c.load()
	}
	return false, hadPriorVisit
}

// Cells is the packed (parent,depth) state for every vertex in the graph,
// the shared structure every worker CASes into.
type Cells struct {
	cells []cell
}

// NewCells allocates n cells, all initialized to {parent: -1, depth: MaxDepth}.
func NewCells(n int) *Cells {
	c := &Cells{cells: make([]cell, n)}
	for i := range c.cells {
		c.cells[i].init()
	}
	return c
}

// Len returns the number of vertices this cell array covers.
func (c *Cells) Len() int { return len(c.cells) }

// InitSource marks s as the BFS root: {parent: s, depth: 0}.
func (c *Cells) InitSource(s queue.NodeID) {
	c.cells[s].initSource(s)
}

// Depth returns v's current depth (MaxDepth if unvisited).
func (c *Cells) Depth(v queue.NodeID) uint32 {
	return c.cells[v].load().depth
}

// Parent returns v's current parent (queue.NoParent if unvisited).
func (c *Cells) Parent(v queue.NodeID) queue.NodeID {
	return c.cells[v].load().parent
}

// Relax attempts to set v's parent to u and depth to newDepth, succeeding
// only if this strictly shortens v's known depth. It reports whether the
// relaxation took effect and whether v had already been visited before
// this call (for the nodes_revisited counter).
func (c *Cells) Relax(v queue.NodeID, u queue.NodeID, newDepth uint32) (relaxed bool, hadPriorVisit bool) {
	return c.cells[v].tryRelax(u, newDepth)
}

// ParentVector returns the final parent[] result: queue.NoParent for every
// unreached vertex, the discovered parent otherwise.
func (c *Cells) ParentVector() []queue.NodeID {
	out := make([]queue.NodeID, len(c.cells))
	for i := range c.cells {
		out[i] = c.cells[i].load().parent
	}
	return out
}

// DepthVector returns the final depth[] result, MaxDepth for unreached
// vertices.
func (c *Cells) DepthVector() []uint32 {
	out := make([]uint32, len(c.cells))
	for i := range c.cells {
		out[i] = c.cells[i].load().depth
	}
	return out
}
