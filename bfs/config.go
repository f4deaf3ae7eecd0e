// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bfs

import (
	"runtime"

	"go.relaxbfs.dev/rbfs/queue"
)

// QueueKind selects the concrete queue family backing a Run.
type QueueKind int

const (
	MS QueueKind = iota
	FAA
	DCBOMS
	DCBOFAA
)

// String returns the queue label used in Stats.Queue, matching the
// original benchmark's QUEUE_TYPE strings.
func (k QueueKind) String() string {
	switch k {
	case MS:
		return "MS"
	case FAA:
		return "FAA"
	case DCBOMS:
		return "d-CBO MS"
	case DCBOFAA:
		return "d-CBO FAA"
	default:
		return "unknown"
	}
}

// Config holds every run-time tunable of a BFS run. Flag parsing and
// config-file loading are the harness's job and stay out of scope; Config
// itself is always built programmatically, by default with
// NewConfig().Build() or through the fluent ConfigBuilder below.
type Config struct {
	QueueKind            QueueKind
	BatchSize            int
	NumSubqueues         int
	NSamples             int
	SeqStart             int
	Threads              int
	Sticky               bool
	StickyStreak         int
	BackupDequeue        bool
	BackupDepthThreshold int
}

// defaultConfig mirrors §6's defaults.
func defaultConfig() Config {
	return Config{
		QueueKind:            MS,
		BatchSize:            8,
		NumSubqueues:         64,
		NSamples:             2,
		SeqStart:             0,
		Threads:              runtime.GOMAXPROCS(0),
		Sticky:               false,
		StickyStreak:         8,
		BackupDequeue:        false,
		BackupDepthThreshold: 5,
	}
}

// ConfigBuilder is a fluent configuration builder for BFS run-time
// options: each setter returns the builder, and Build returns the Config.
type ConfigBuilder struct {
	cfg Config
}

// NewConfig starts a builder pre-populated with the spec's defaults.
func NewConfig() *ConfigBuilder {
	return &ConfigBuilder{cfg: defaultConfig()}
}

func (b *ConfigBuilder) Queue(kind QueueKind) *ConfigBuilder {
	b.cfg.QueueKind = kind
	return b
}

// BatchSize sets the worker's output batch width. 1 disables batching.
// n must fit within queue.Batch's fixed array capacity.
func (b *ConfigBuilder) BatchSize(n int) *ConfigBuilder {
	if n < 1 || n > queue.BatchSize {
		panic("bfs: BatchSize must be in [1, queue.BatchSize]")
	}
	b.cfg.BatchSize = n
	return b
}

// NumSubqueues sets S for a DCBOMS/DCBOFAA queue kind.
func (b *ConfigBuilder) NumSubqueues(n int) *ConfigBuilder {
	if n < 1 {
		panic("bfs: NumSubqueues must be >= 1")
	}
	b.cfg.NumSubqueues = n
	return b
}

// NSamples sets d, the number of sub-queues d-CBO samples per operation.
func (b *ConfigBuilder) NSamples(n int) *ConfigBuilder {
	if n < 1 {
		panic("bfs: NSamples must be >= 1")
	}
	b.cfg.NSamples = n
	return b
}

// SeqStart sets the number of sequential BFS pops performed before
// spawning worker threads. 0 disables the warm-up phase.
func (b *ConfigBuilder) SeqStart(n int) *ConfigBuilder {
	if n < 0 {
		panic("bfs: SeqStart must be >= 0")
	}
	b.cfg.SeqStart = n
	return b
}

// Threads sets T, the worker thread count.
func (b *ConfigBuilder) Threads(n int) *ConfigBuilder {
	if n < 1 {
		panic("bfs: Threads must be >= 1")
	}
	b.cfg.Threads = n
	return b
}

// StickySampling enables the d-CBO sticky dequeue variant with the given
// streak length (consecutive dequeues from the same sub-queue before
// resampling).
func (b *ConfigBuilder) StickySampling(streak int) *ConfigBuilder {
	b.cfg.Sticky = true
	b.cfg.StickyStreak = streak
	return b
}

// BackupDequeueWithThreshold enables the backup-dequeue batching
// optimization with the given depth-difference threshold.
func (b *ConfigBuilder) BackupDequeueWithThreshold(threshold int) *ConfigBuilder {
	b.cfg.BackupDequeue = true
	b.cfg.BackupDepthThreshold = threshold
	return b
}

// Build returns the configured Config.
func (b *ConfigBuilder) Build() Config {
	return b.cfg
}
