// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bfs_test

import (
	"testing"

	"go.relaxbfs.dev/rbfs/bfs"
	"go.relaxbfs.dev/rbfs/queue"
)

func checkParentDepth(t *testing.T, g *adjGraph, parent []queue.NodeID, source queue.NodeID) {
	t.Helper()
	depth := make([]int, len(parent))
	for v := range depth {
		depth[v] = -1
	}
	depth[source] = 0
	for v, p := range parent {
		if queue.NodeID(v) == source || p == queue.NoParent {
			continue
		}
		d := 0
		cur := queue.NodeID(v)
		seen := map[queue.NodeID]bool{}
		for cur != source {
			if seen[cur] {
				t.Fatalf("parent cycle detected at vertex %d", cur)
			}
			seen[cur] = true
			cur = parent[cur]
			d++
			if cur == queue.NoParent {
				t.Fatalf("vertex %d's parent chain does not reach source", v)
			}
		}
		depth[v] = d
	}
}

// TestRunPathGraph covers spec scenario #4: a 4-node path 0->1->2->3 with
// source 0, T=8, BatchSize=4; expects nodes_revisited == 0.
func TestRunPathGraph(t *testing.T) {
	g := pathGraph()
	cfg := bfs.NewConfig().Threads(8).BatchSize(4).Build()

	parent, stats := bfs.Run(g, 0, cfg)

	want := []queue.NodeID{0, 0, 1, 2}
	for v, p := range parent {
		if p != want[v] {
			t.Fatalf("parent[%d] = %d, want %d", v, p, want[v])
		}
	}
	if stats.NodesRevisited != 0 {
		t.Fatalf("NodesRevisited = %d, want 0", stats.NodesRevisited)
	}
}

// TestRunBinaryTree covers spec scenario #5: every vertex of a depth-10
// binary tree is reached with the unique tree parent.
func TestRunBinaryTree(t *testing.T) {
	const depth = 10
	g := binaryTreeGraph(depth)
	cfg := bfs.NewConfig().Threads(4).Build()

	parent, _ := bfs.Run(g, 0, cfg)

	n := len(parent)
	if want := 1<<(depth+1) - 1; n != want {
		t.Fatalf("graph size = %d, want %d", n, want)
	}
	for i := 0; i < n; i++ {
		var want queue.NodeID
		if i == 0 {
			want = 0 // source is its own parent, per spec scenario #4
		} else {
			want = queue.NodeID((i - 1) / 2)
		}
		if parent[i] != want {
			t.Fatalf("parent[%d] = %d, want %d", i, parent[i], want)
		}
	}
}

// TestRunParChains covers spec scenario #6: k disjoint chains of length L
// sharing source 0; every chain vertex is reached with its chain
// predecessor as parent.
func TestRunParChains(t *testing.T) {
	const k, length = 16, 1000
	g := parChainsGraph(k, length)
	cfg := bfs.NewConfig().Threads(8).Queue(bfs.FAA).Build()

	parent, stats := bfs.Run(g, 0, cfg)

	if int(stats.NodesVisited) < k*length {
		t.Fatalf("NodesVisited = %d, want >= %d", stats.NodesVisited, k*length)
	}
	next := 1
	for c := 0; c < k; c++ {
		prev := queue.NodeID(0)
		for i := 0; i < length; i++ {
			cur := queue.NodeID(next)
			next++
			if parent[cur] != prev {
				t.Fatalf("parent[%d] = %d, want %d", cur, parent[cur], prev)
			}
			prev = cur
		}
	}
}

// TestRunQueueKinds exercises every queue kind and both batching modes
// against the same graph, checking only the invariant that every reached
// vertex's parent chain leads back to the source without cycles.
func TestRunQueueKinds(t *testing.T) {
	kinds := []bfs.QueueKind{bfs.MS, bfs.FAA, bfs.DCBOMS, bfs.DCBOFAA}
	for _, kind := range kinds {
		for _, batch := range []int{1, 8} {
			cfg := bfs.NewConfig().Queue(kind).Threads(4).BatchSize(batch).Build()
			g := binaryTreeGraph(6)
			parent, _ := bfs.Run(g, 0, cfg)
			checkParentDepth(t, g, parent, 0)
		}
	}
}

// TestRunSeqStart exercises the sequential warm-up path.
func TestRunSeqStart(t *testing.T) {
	g := binaryTreeGraph(8)
	cfg := bfs.NewConfig().Threads(4).SeqStart(10).Build()
	parent, _ := bfs.Run(g, 0, cfg)
	checkParentDepth(t, g, parent, 0)
}

// TestRunBackupDequeue exercises the batched backup-dequeue heuristic.
func TestRunBackupDequeue(t *testing.T) {
	g := parChainsGraph(8, 200)
	cfg := bfs.NewConfig().Threads(8).BatchSize(8).BackupDequeueWithThreshold(5).Build()
	parent, _ := bfs.Run(g, 0, cfg)
	checkParentDepth(t, g, parent, 0)
}
