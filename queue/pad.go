// Copyright (c) 2026 The rbfs Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// pad is cache line padding to prevent false sharing between adjacent
// atomic fields (head/tail/counter-style fields that different threads
// hammer independently).
type pad [64]byte
