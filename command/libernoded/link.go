// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"net/netip"

	"github.com/bitmark-inc/logger"

	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/network"
)

// standalone - the link used when no host transport is attached
//
// the daemon then only serves RPC over the restored state, relays
// are logged and dropped
type standalone struct {
	log      *logger.L
	external netip.AddrPort
}

func newStandalone(external netip.AddrPort) *standalone {
	return &standalone{
		log:      logger.New("link"),
		external: external,
	}
}

func (s *standalone) Peers() []network.Peer {
	return nil
}

func (s *standalone) Connect(address netip.AddrPort) (network.Peer, error) {
	s.log.Debugf("connect: %s  no transport", address)
	return nil, fault.ErrCannotConnect
}

func (s *standalone) Relay(inventory network.Inventory) {
	s.log.Debugf("relay: %v  no peers", inventory)
}

func (s *standalone) IsListening() bool {
	return s.external.IsValid()
}

func (s *standalone) LocalAddress() (netip.AddrPort, bool) {
	return s.external, s.external.IsValid()
}
