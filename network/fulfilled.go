// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"net/netip"
	"time"

	"github.com/patrickmn/go-cache"
)

// FulfilledExpiry - how long a request stays fulfilled
const FulfilledExpiry = time.Hour

// request names
const (
	RequestSpork        = "spork-sync"
	RequestList         = "libernode-list-sync"
	RequestPaymentVotes = "libernode-payment-sync"
	RequestFullSync     = "full-sync"
)

// Fulfilled - per peer record of requests already made or served
type Fulfilled struct {
	c *cache.Cache
}

// NewFulfilled - create an empty cache
func NewFulfilled(expiry time.Duration) *Fulfilled {
	return &Fulfilled{
		c: cache.New(expiry, 2*expiry),
	}
}

func fulfilledKey(address netip.AddrPort, request string) string {
	return address.Addr().String() + "/" + request
}

// Add - mark a request fulfilled for a peer
func (f *Fulfilled) Add(address netip.AddrPort, request string) {
	f.c.SetDefault(fulfilledKey(address, request), struct{}{})
}

// Has - check if a live entry exists
func (f *Fulfilled) Has(address netip.AddrPort, request string) bool {
	_, found := f.c.Get(fulfilledKey(address, request))
	return found
}

// Remove - forget a request
func (f *Fulfilled) Remove(address netip.AddrPort, request string) {
	f.c.Delete(fulfilledKey(address, request))
}

// Clear - forget every request
func (f *Fulfilled) Clear() {
	f.c.Flush()
}
