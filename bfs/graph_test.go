// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bfs_test

import "go.relaxbfs.dev/rbfs/queue"

// adjGraph is a minimal adjacency-list Graph for tests.
type adjGraph struct {
	out [][]queue.NodeID
	in  [][]queue.NodeID
}

func newAdjGraph(n int) *adjGraph {
	return &adjGraph{out: make([][]queue.NodeID, n), in: make([][]queue.NodeID, n)}
}

func (g *adjGraph) addEdge(u, v queue.NodeID) {
	g.out[u] = append(g.out[u], v)
	g.in[v] = append(g.in[v], u)
}

func (g *adjGraph) NumNodes() uint32 { return uint32(len(g.out)) }

func (g *adjGraph) OutNeighbors(u queue.NodeID) []queue.NodeID { return g.out[u] }

func (g *adjGraph) InNeighbors(u queue.NodeID) []queue.NodeID { return g.in[u] }

// pathGraph builds the 4-node path 0->1->2->3.
func pathGraph() *adjGraph {
	g := newAdjGraph(4)
	g.addEdge(0, 1)
	g.addEdge(1, 2)
	g.addEdge(2, 3)
	return g
}

// binaryTreeGraph builds a complete directed binary tree of the given
// depth (root at 0, depth edges root-to-leaf), every edge pointing from
// parent to child.
func binaryTreeGraph(depth int) *adjGraph {
	n := 1 << (depth + 1) - 1
	g := newAdjGraph(n)
	for i := 0; i < n; i++ {
		left := 2*i + 1
		right := 2*i + 2
		if left < n {
			g.addEdge(queue.NodeID(i), queue.NodeID(left))
		}
		if right < n {
			g.addEdge(queue.NodeID(i), queue.NodeID(right))
		}
	}
	return g
}

// parChainsGraph builds k disjoint chains of length L, all starting at
// shared source vertex 0.
func parChainsGraph(k, length int) *adjGraph {
	n := 1 + k*length
	g := newAdjGraph(n)
	next := 1
	for c := 0; c < k; c++ {
		prev := queue.NodeID(0)
		for i := 0; i < length; i++ {
			cur := queue.NodeID(next)
			next++
			g.addEdge(prev, cur)
			prev = cur
		}
	}
	return g
}
