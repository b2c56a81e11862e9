// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/libercoinproject/libercoin-old/fault"
)

// MaximumWait - longest an RPC client is held before being refused
const MaximumWait = 2 * time.Second

// Request - admit one RPC request
func Request(limiter *rate.Limiter) error {
	return take(limiter, 1)
}

// Entries - admit a request answering count entries, such as the
// heights of a winners list
//
// a count outside 1..maximum is charged as one request and refused
func Entries(limiter *rate.Limiter, count int, maximum int) error {
	if count <= 0 || count > maximum {
		if err := take(limiter, 1); nil != err {
			return err
		}
		return fault.ErrInvalidCount
	}
	return take(limiter, count)
}

// tokens that would arrive too late are handed back
func take(limiter *rate.Limiter, n int) error {
	now := time.Now()
	r := limiter.ReserveN(now, n)
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	delay := r.DelayFrom(now)
	if delay > MaximumWait {
		r.CancelAt(now)
		return fault.ErrRateLimiting
	}
	time.Sleep(delay)
	return nil
}
