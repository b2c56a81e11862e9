// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"sync/atomic"
)

// Counter - concurrent use counter, e.g. open connections
type Counter struct {
	n atomic.Int64
}

// Increment - add 1, returns new value
func (c *Counter) Increment() int64 {
	return c.n.Add(1)
}

// Decrement - subtract 1, returns new value
func (c *Counter) Decrement() int64 {
	return c.n.Add(-1)
}

// Value - current value
func (c *Counter) Value() int64 {
	return c.n.Load()
}

// IsZero - check if zero
func (c *Counter) IsZero() bool {
	return 0 == c.n.Load()
}

// Acquire - increment only while below limit
func (c *Counter) Acquire(limit int64) bool {
	for {
		n := c.n.Load()
		if n >= limit {
			return false
		}
		if c.n.CompareAndSwap(n, n+1) {
			return true
		}
	}
}
