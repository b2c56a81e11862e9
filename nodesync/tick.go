// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nodesync

import (
	"time"

	"github.com/libercoinproject/libercoin-old/mode"
	"github.com/libercoinproject/libercoin-old/network"
)

// Run - background process calling ProcessTick every TickInterval
func (s *Sync) Run(args interface{}, shutdown <-chan struct{}) {
	log := s.log
	log.Info("starting…")
	timer := time.After(TickInterval)
loop:
	for {
		log.Debug("waiting…")
		select {
		case <-shutdown:
			break loop
		case <-timer:
			timer = time.After(TickInterval)
			s.ProcessTick()
		}
	}
	log.Info("shutting down…")
	log.Info("stopped")
}

// ProcessTick - ask one peer for the data of the current stage
//
// each peer is asked once per stage, one request per tick
func (s *Sync) ProcessTick() {
	nodes, ledger := s.sources()
	if nil == nodes || nil == ledger || s.env.Chain.Height() < 0 {
		return
	}

	count := nodes.CountNodes(-1)
	now := s.env.Clock.Now()

	s.Lock()
	s.log.Debugf("stage: %s  attempt: %d  nodes: %d", s.stage, s.attempt, count)
	if network.StageFinished == s.stage {
		if 0 != count {
			s.Unlock()
			return
		}
		// lost every record, from sleep or a failed first sync
		s.log.Warn("not enough data, restarting sync")
		s.reset()
		mode.Set(mode.Resynchronise)
	}
	if network.StageFailed == s.stage {
		if now.Sub(s.lastFailure) > failureCooldown {
			s.reset()
			mode.Set(mode.Resynchronise)
		}
		s.Unlock()
		return
	}
	s.Unlock()

	regtest := s.env.Params.Regtest
	blockchainSynced := s.IsBlockchainSynced()

	s.Lock()
	if !regtest && !blockchainSynced && s.stage > network.StageSporks {
		s.lastList = now
		s.lastPaymentVote = now
		s.Unlock()
		return
	}
	if network.StageInitial == s.stage || (network.StageSporks == s.stage && blockchainSynced) {
		_ = s.switchToNextAsset()
	}
	s.Unlock()

	enough := ledger.IsEnoughData()
	limit := ledger.StorageLimit()
	minProtocol := ledger.MinProtocol()
	isNode := nil != s.env.Self && nil != s.env.Self.OperationalKey()

	for _, peer := range s.link.Peers() {
		// libernode connections are temporary, early inbound ones most likely too
		if peer.IsMasternodeConnection() || (isNode && peer.IsInbound()) {
			continue
		}

		if regtest {
			s.quickStep(peer, nodes, count)
			return
		}

		address := peer.Address()
		if s.fulfilled.Has(address, network.RequestFullSync) {
			s.log.Infof("disconnecting from recently synced peer: %d", peer.ID())
			peer.Disconnect()
			continue
		}

		// sporks first from every peer, then go on to the next peer
		if !s.fulfilled.Has(address, network.RequestSpork) {
			s.fulfilled.Add(address, network.RequestSpork)
			peer.Push(network.CmdGetSporks, nil)
			s.log.Infof("requesting sporks from peer: %d", peer.ID())
			continue
		}

		switch s.Stage() {
		case network.StageList:
			if s.expired(now) {
				return
			}
			if !s.request(peer, network.RequestList, minProtocol) {
				continue
			}
			if err := nodes.RequestList(peer); nil != err {
				s.log.Debugf("list request to peer: %d  error: %s", peer.ID(), err)
			}
			return

		case network.StagePaymentVotes:
			if s.expired(now) {
				return
			}
			// try to fetch from at least two peers
			if enough && s.Attempt() > 1 {
				s.log.Info("found enough payment data")
				_ = s.SwitchToNextAsset()
				return
			}
			if !s.request(peer, network.RequestPaymentVotes, minProtocol) {
				continue
			}
			peer.Push(network.CmdVoteRequest, network.PackVoteRequest(limit))
			ledger.RequestLowDataPaymentBlocks(peer)
			return
		}
	}
}

// expired - handle a stage timeout, true when the stage ended
//
// no progress at all fails the sync
func (s *Sync) expired(now time.Time) bool {
	s.Lock()
	last := s.lastPaymentVote
	if network.StageList == s.stage {
		last = s.lastList
	}
	if !last.Before(now.Add(-Timeout)) {
		s.Unlock()
		return false
	}
	s.log.Infof("timeout: %s", s.stage)
	if 0 == s.attempt {
		s.log.Errorf("failed to sync: %s", s.stage)
		s.fail()
		s.Unlock()
		return true
	}
	_ = s.switchToNextAsset()
	finished := network.StageFinished == s.stage
	s.Unlock()
	if finished {
		mode.Set(mode.Normal)
	}
	return true
}

// request - mark a stage request to a peer, false if it must be skipped
func (s *Sync) request(peer network.Peer, request string, minProtocol int32) bool {
	address := peer.Address()
	if s.fulfilled.Has(address, request) {
		return false
	}
	s.fulfilled.Add(address, request)
	if peer.Version() < minProtocol {
		return false
	}
	s.Lock()
	s.attempt += 1
	s.Unlock()
	return true
}

// quickStep - regtest runs every stage off the first usable peer
func (s *Sync) quickStep(peer network.Peer, nodes Nodes, count int) {
	s.Lock()
	attempt := s.attempt
	s.attempt += 1
	if attempt >= 6 {
		s.stage = network.StageFinished
	}
	s.Unlock()

	switch {
	case attempt <= 2:
		peer.Push(network.CmdGetSporks, nil)
	case attempt < 4:
		_ = nodes.RequestList(peer)
	case attempt < 6:
		peer.Push(network.CmdVoteRequest, network.PackVoteRequest(count))
	default:
		s.log.Info("sync has finished")
		mode.Set(mode.Normal)
	}
}
