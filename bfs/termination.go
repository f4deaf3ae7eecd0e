// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bfs

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// termination detects global quiescence across T worker threads without a
// barrier, using two bounded counters: idle_count and no_work_count, both
// in [0, T]. Termination is declared only once every thread has
// simultaneously observed the queue empty.
type termination struct {
	threads     int
	idleCount   atomix.Int32
	noWorkCount atomix.Int32
}

func newTermination(threads int) *termination {
	return &termination{threads: threads}
}

// repeat calls f (one dequeue+processing attempt) until it succeeds or the
// pool has globally quiesced. Returns true if f eventually succeeded,
// false iff termination was declared.
func (t *termination) repeat(f func() bool) bool {
	if f() {
		return true
	}
	sw := spin.Wait{}
	t.noWorkCount.AddAcqRel(1)
	for {
		if f() {
			t.noWorkCount.AddAcqRel(-1)
			return true
		}
		if t.noWorkCount.LoadAcquire() >= int32(t.threads) {
			if t.shouldTerminate() {
				return false
			}
			// another thread found work and pulled no_work_count back
			// down; fall through and keep retrying f.
		}
		sw.Once()
	}
}

// shouldTerminate implements the second stage: once no_work_count reaches
// T, a thread raises idle_count and spins. If no_work_count ever drops
// back below T (some thread found work), it backs off idle_count and
// reports "not terminated" without itself touching the queue, leaving
// repeat's own loop to call f() again. Only when idle_count also reaches T
// does the thread declare global termination.
func (t *termination) shouldTerminate() bool {
	t.idleCount.AddAcqRel(1)
	sw := spin.Wait{}
	for {
		if t.idleCount.LoadAcquire() >= int32(t.threads) {
			return true
		}
		if t.noWorkCount.LoadAcquire() < int32(t.threads) {
			// Some other thread found work and pulled no_work_count back
			// down. Just back off idleCount and report "not yet
			// terminated": repeat's own loop will call f() again on its
			// next iteration and return true from there. Calling f() here
			// would dequeue an item and discard it, since this return
			// value only ever reaches repeat's "false" path.
			t.idleCount.AddAcqRel(-1)
			return false
		}
		sw.Once()
	}
}
