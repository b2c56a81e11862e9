// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package clock

import (
	"sync"
	"time"
)

// Clock - source of the current time
type Clock interface {
	Now() time.Time
}

// System - wall clock
type System struct{}

// Now - current wall clock time
func (System) Now() time.Time {
	return time.Now()
}

// Manual - a clock that only moves when told to
type Manual struct {
	sync.Mutex
	now time.Time
}

// NewManual - create a manual clock starting at t
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

// Now - the clock's current time
func (m *Manual) Now() time.Time {
	m.Lock()
	defer m.Unlock()
	return m.now
}

// Set - move the clock to t
func (m *Manual) Set(t time.Time) {
	m.Lock()
	m.now = t
	m.Unlock()
}

// Advance - move the clock forward by d
func (m *Manual) Advance(d time.Duration) {
	m.Lock()
	m.now = m.now.Add(d)
	m.Unlock()
}
