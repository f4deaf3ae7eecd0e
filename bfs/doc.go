// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bfs implements the relaxed parallel breadth-first search
// algorithm: T worker goroutines race to relax graph edges through a
// shared [queue.QueueFamily] frontier, with no global barrier between BFS
// layers. Order of discovery is relaxed; correctness (every reachable
// vertex gets its true shortest-hop parent and depth) is preserved by a
// single packed-word CAS per vertex.
//
// # Basic usage
//
//	cfg := bfs.NewConfig().Queue(bfs.FAA).Threads(8).Build()
//	parent, stats := bfs.Run(g, source, cfg)
//
// g implements [Graph]; parent[v] is the discovered parent of v, or
// [queue.NoParent] if v was never reached.
//
// # Queue families and batching
//
// cfg.QueueKind selects among MS, FAA, DCBOMS, and DCBOFAA. cfg.BatchSize
// controls whether workers exchange single [queue.NodeID] elements
// (BatchSize == 1) or fixed-size [queue.Batch] arrays (BatchSize > 1):
// batching amortizes queue contention across several vertices per
// dequeue/enqueue at the cost of some extra local bookkeeping.
//
// # Warm-up and termination
//
// cfg.SeqStart bounds an optional sequential warm-up phase run before any
// worker starts, growing the frontier past the tiny first few BFS layers
// that otherwise thrash on queue contention. Workers themselves exit via
// termination detection (no barrier): see the unexported termination type.
package bfs
