// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/rpc/ratelimit"
)

func TestRequest(t *testing.T) {
	limiter := rate.NewLimiter(100, 10)
	assert.Nil(t, ratelimit.Request(limiter), "request refused")

	// zero burst can never be reserved
	blocked := rate.NewLimiter(1, 0)
	assert.Equal(t, fault.ErrRateLimiting, ratelimit.Request(blocked), "zero burst allowed")
}

func TestRequestTooLongWait(t *testing.T) {
	limiter := rate.NewLimiter(0.1, 1)
	assert.Nil(t, ratelimit.Request(limiter), "first request refused")

	start := time.Now()
	assert.Equal(t, fault.ErrRateLimiting, ratelimit.Request(limiter), "ten second wait allowed")
	assert.Equal(t, fault.ErrRateLimiting, ratelimit.Request(limiter), "refused request kept its token")
	assert.True(t, time.Since(start) < ratelimit.MaximumWait, "refused request was held")
}

func TestEntries(t *testing.T) {
	limiter := rate.NewLimiter(100, 10)

	assert.Nil(t, ratelimit.Entries(limiter, 5, 10), "entries refused")
	assert.Equal(t, fault.ErrInvalidCount, ratelimit.Entries(limiter, 0, 10), "zero count allowed")
	assert.Equal(t, fault.ErrInvalidCount, ratelimit.Entries(limiter, 11, 10), "count above maximum allowed")
	assert.Equal(t, fault.ErrRateLimiting, ratelimit.Entries(limiter, 20, 50), "count above burst allowed")
}
