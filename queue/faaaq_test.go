// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"sync"
	"testing"

	"go.relaxbfs.dev/rbfs/queue"
)

func TestFAAAQBasic(t *testing.T) {
	q := queue.NewFAAAQ[int](4)

	if _, err := q.Dequeue(0); !queue.IsWouldBlock(err) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		if err := q.Enqueue(i+100, 0); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	for i := range 4 {
		v, err := q.Dequeue(0)
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if v != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, v, i+100)
		}
	}
	if _, err := q.Dequeue(0); !queue.IsWouldBlock(err) {
		t.Fatalf("Dequeue after drain: got %v, want ErrWouldBlock", err)
	}
}

func TestFAAAQThreadRange(t *testing.T) {
	q := queue.NewFAAAQ[int](2)
	if err := q.Enqueue(1, 2); err != queue.ErrThreadRange {
		t.Fatalf("Enqueue with tid out of range: got %v, want ErrThreadRange", err)
	}
	if _, err := q.Dequeue(-1); err != queue.ErrThreadRange {
		t.Fatalf("Dequeue with tid out of range: got %v, want ErrThreadRange", err)
	}
}

// TestFAAAQSegmentRollover forces an enqueue/dequeue run well past one
// segment's BUFFER_SIZE (1024), exercising the CAS-linked new-segment path
// on both the producer and consumer sides.
func TestFAAAQSegmentRollover(t *testing.T) {
	const n = 1024*3 + 17
	q := queue.NewFAAAQ[int](1)

	for i := range n {
		if err := q.Enqueue(i, 0); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	for i := range n {
		v, err := q.Dequeue(0)
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if v != i {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, v, i)
		}
	}
	if _, err := q.Dequeue(0); !queue.IsWouldBlock(err) {
		t.Fatalf("Dequeue after drain: got %v, want ErrWouldBlock", err)
	}
}

func TestFAAAQConcurrent(t *testing.T) {
	if queue.RaceEnabled {
		t.Skip("skip: hazard-pointer reclamation uses cross-variable memory ordering")
	}

	const producers = 8
	const perProducer = 3000
	const total = producers * perProducer

	q := queue.NewFAAAQ[int](2 * producers)
	var produced sync.WaitGroup
	produced.Add(producers)
	for p := range producers {
		go func(p int) {
			defer produced.Done()
			for i := range perProducer {
				_ = q.Enqueue(p*perProducer+i, p)
			}
		}(p)
	}

	seen := make([]bool, total)
	var mu sync.Mutex
	count := 0
	var consumed sync.WaitGroup
	consumed.Add(producers)
	for c := 0; c < producers; c++ {
		go func(tid int) {
			defer consumed.Done()
			for {
				v, err := q.Dequeue(tid + producers)
				if err == nil {
					mu.Lock()
					if seen[v] {
						t.Errorf("value %d dequeued twice", v)
					}
					seen[v] = true
					count++
					done := count == total
					mu.Unlock()
					if done {
						return
					}
					continue
				}
				mu.Lock()
				done := count == total
				mu.Unlock()
				if done {
					return
				}
			}
		}(c)
	}

	produced.Wait()
	consumed.Wait()

	for i, ok := range seen {
		if !ok {
			t.Fatalf("value %d never dequeued", i)
		}
	}
}
