// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates a dequeue observed the queue empty at
// linearization time.
//
// ErrWouldBlock is a control flow signal, not a failure: every queue
// family in this package is unbounded, so it is only ever returned by
// Dequeue. The caller should retry (with backoff) rather than propagate it.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrThreadRange is returned when a caller-supplied tid falls outside
// [0, maxThreads) for a queue family whose hazard-pointer registry is
// sized at construction (maxThreads is the constructor argument).
var ErrThreadRange = errors.New("queue: tid out of range")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
