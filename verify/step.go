// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verify

import (
	"net/netip"
	"sort"

	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
)

// DoFullVerificationStep - challenge a spread of other ranked nodes
//
// only a node in the top group sends requests, to ranks starting
// MaxRank below its own and stepping by MaxConnections
func (v *Verifier) DoFullVerificationStep() int {
	self, ok := v.selfOutpoint()
	if !ok || !v.sync.IsSynced() {
		return 0
	}

	ranks := v.elector.Ranks(v.env.Chain.Height()-1, chain.MinPoSeProtoVersion)

	myRank := -1
	for _, r := range ranks {
		if r.Rank > MaxRank {
			v.log.Debugf("must be in top %d to send verify request", MaxRank)
			return 0
		}
		if r.Info.Outpoint == self {
			myRank = r.Rank
			v.log.Debugf("found self at rank %d/%d, verifying up to %d libernodes", myRank, len(ranks), MaxConnections)
			break
		}
	}

	// list is too short and this node is not enabled
	if -1 == myRank {
		return 0
	}

	count := 0
	for offset := MaxRank + myRank - 1; offset < len(ranks); offset += MaxConnections {
		info := ranks[offset].Info
		banned := masternode.PoSeBan == info.State
		if info.IsPoSeVerified() || banned {
			v.log.Debugf("already verified: %t  banned: %t  libernode: %s  address: %s, skipping",
				info.IsPoSeVerified(), banned, masternode.ShortString(info.Outpoint), info.Address)
			continue
		}
		v.log.Debugf("verifying libernode: %s  rank: %d/%d  address: %s",
			masternode.ShortString(info.Outpoint), ranks[offset].Rank, len(ranks), info.Address)
		if v.SendVerifyRequest(info.Address) {
			count += 1
			if count >= MaxConnections {
				break
			}
		}
	}

	v.log.Debugf("sent verification requests to %d libernodes", count)
	return count
}

// SendVerifyRequest - dial an address and challenge it with a nonce
func (v *Verifier) SendVerifyRequest(address netip.AddrPort) bool {
	if v.fulfilled.Has(address, requestTag) {
		v.log.Debugf("too many requests, skipping: %s", address)
		return false
	}

	peer, err := v.link.Connect(address)
	if nil != err {
		v.log.Warnf("cannot connect to node to verify it: %s  error: %s", address, err)
		return false
	}

	v.fulfilled.Add(address, requestTag)

	v.Lock()
	mnv := &masternode.Verification{
		Address: address,
		Nonce:   v.random.Int31n(maxNonce),
		Height:  v.env.Chain.Height() - 1,
	}
	v.weAsked[address] = mnv
	v.Unlock()

	v.log.Infof("verifying node using nonce: %d  address: %s", mnv.Nonce, address)
	peer.Push(network.CmdVerify, mnv.Pack())
	return true
}

// CheckSameAddr - ban unverified records sharing an address with a
// verified one
//
// nothing is banned while no record at an address is verified
func (v *Verifier) CheckSameAddr() int {
	if !v.sync.IsSynced() {
		return 0
	}

	infos := v.nodes.Infos()
	sort.Slice(infos, func(i, j int) bool {
		if c := infos[i].Address.Compare(infos[j].Address); 0 != c {
			return c < 0
		}
		return masternode.CompareOutpoints(infos[i].Outpoint, infos[j].Outpoint) < 0
	})

	ban := []masternode.Info{}
	var previous, verified *masternode.Info
	for i := range infos {
		info := &infos[i]
		if masternode.Enabled != info.State && masternode.PreEnabled != info.State {
			continue
		}
		if nil == previous {
			previous = info
			verified = nil
			if info.IsPoSeVerified() {
				verified = info
			}
			continue
		}
		if info.Address == previous.Address {
			if nil != verified {
				ban = append(ban, *info)
			} else if info.IsPoSeVerified() {
				ban = append(ban, *previous)
				verified = info
			}
		} else {
			verified = nil
			if info.IsPoSeVerified() {
				verified = info
			}
		}
		previous = info
	}

	for _, info := range ban {
		v.log.Infof("increasing PoSe ban score for libernode: %s", masternode.ShortString(info.Outpoint))
		v.nodes.IncreasePoSeBanScore(info.Outpoint)
	}
	return len(ban)
}
