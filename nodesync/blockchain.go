// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nodesync

import (
	"github.com/libercoinproject/libercoin-old/mode"
	"github.com/libercoinproject/libercoin-old/network"
)

// IsBlockchainSynced - heuristic that the host chain caught up
//
// checked at most once per tick, the result is sticky until a reset
func (s *Sync) IsBlockchainSynced() bool {
	return s.isBlockchainSynced(false)
}

// UpdatedBlockTip - a block was accepted by the host node
func (s *Sync) UpdatedBlockTip(height int32) {
	s.log.Debugf("updated block tip: %d", height)
	s.isBlockchainSynced(true)
}

func (s *Sync) isBlockchainSynced(blockAccepted bool) bool {
	now := s.env.Clock.Now()
	view := s.env.Chain

	s.Lock()
	defer s.Unlock()

	// probably woke from sleep
	if now.Sub(s.lastProcess) > idleReset {
		s.log.Infof("idle reset, blockchain synced: %t", s.blockchainSynced)
		s.reset()
		s.blockchainSynced = false
		mode.Set(mode.Resynchronise)
	}

	tip := view.Height()
	header := view.HeaderHeight()
	if tip < 0 || header < 0 {
		return false
	}

	if blockAccepted {
		// still downloading
		if network.StageFinished != s.stage {
			s.firstBlock = true
			s.blockchainSynced = false
			s.lastProcess = now
			return false
		}
	} else if now.Sub(s.lastProcess) < TickInterval {
		s.skipped += 1
		return s.blockchainSynced
	}

	s.log.Debugf("before check: synced: %t  skipped: %d", s.blockchainSynced, s.skipped)
	s.lastProcess = now
	s.skipped = 0

	if s.blockchainSynced {
		return true
	}

	peers := s.link.Peers()
	if len(peers) >= EnoughPeers {
		same := 0
		for _, peer := range peers {
			if !s.isPeerAtHeight(peer, tip) {
				continue
			}
			same += 1
			if same >= EnoughPeers {
				s.log.Info("found enough peers on the same height")
				s.blockchainSynced = true
				return true
			}
		}
	}

	if !s.firstBlock {
		return false
	}

	latest, err := view.BlockTime(tip)
	if nil != err {
		return false
	}
	if t, err := view.BlockTime(header); nil == err && t.After(latest) {
		latest = t
	}
	s.blockchainSynced = header-tip < headerGap && now.Sub(latest) < s.env.Params.MaxTipAge
	return s.blockchainSynced
}

// the peer reported a height within one block of ours
func (s *Sync) isPeerAtHeight(peer network.Peer, tip int32) bool {
	height := peer.StartingHeight()
	if height <= 0 {
		return false
	}
	if tip-1 > height {
		s.log.Debugf("skipping stuck peer: %d  height: %d  peer height: %d", peer.ID(), tip, height)
		return false
	}
	if tip < height-1 {
		s.log.Debugf("skipping peer ahead of us: %d  height: %d  peer height: %d", peer.ID(), tip, height)
		return false
	}
	return true
}
