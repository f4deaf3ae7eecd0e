// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"sync"
	"testing"

	"go.relaxbfs.dev/rbfs/queue"
)

func TestMSBasic(t *testing.T) {
	q := queue.NewMS[int]()

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

func TestMSCounters(t *testing.T) {
	q := queue.NewMS[int]()
	for i := range 3 {
		_ = q.Enqueue(i, 0)
	}
	if got := q.EnqueueCount(0); got != 3 {
		t.Fatalf("EnqueueCount: got %d, want 3", got)
	}
	_, _ = q.Dequeue(0)
	if got := q.DequeueCount(0); got != 1 {
		t.Fatalf("DequeueCount: got %d, want 1", got)
	}
	if got := q.EnqueueVersion(0); got != q.EnqueueCount(0) {
		t.Fatalf("EnqueueVersion: got %d, want %d", got, q.EnqueueCount(0))
	}
}

// TestMSConcurrent exercises the MS queue under concurrent producers and
// consumers: every enqueued value must be dequeued exactly once.
func TestMSConcurrent(t *testing.T) {
	if queue.RaceEnabled {
		t.Skip("skip: CAS-retry algorithm uses cross-variable memory ordering")
	}

	const producers = 8
	const perProducer = 2000

	q := queue.NewMS[int]()
	var produced, consumed sync.WaitGroup
	produced.Add(producers)

	for p := range producers {
		go func(p int) {
			defer produced.Done()
			for i := range perProducer {
				_ = q.Enqueue(p*perProducer+i, 0)
			}
		}(p)
	}

	seen := make([]bool, producers*perProducer)
	var mu sync.Mutex
	var count int
	consumed.Add(producers)
	for c := 0; c < producers; c++ {
		go func() {
			defer consumed.Done()
			for {
				v, err := q.Dequeue(0)
				if err == nil {
					mu.Lock()
					if seen[v] {
						t.Errorf("value %d dequeued twice", v)
					}
					seen[v] = true
					count++
					done := count == producers*perProducer
					mu.Unlock()
					if done {
						return
					}
					continue
				}
				mu.Lock()
				done := count == producers*perProducer
				mu.Unlock()
				if done {
					return
				}
			}
		}()
	}

	produced.Wait()
	consumed.Wait()

	for i, ok := range seen {
		if !ok {
			t.Fatalf("value %d never dequeued", i)
		}
	}
}
