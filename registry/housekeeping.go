// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"bytes"
	"math/rand"
	"net/netip"
	"sort"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/libercoinproject/libercoin-old/election"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
)

// CheckAndRemove - periodic sweep over the registry
//
// removes records with spent collateral, starts recovery of records
// needing a new start, reprocesses recoveries that reached quorum and
// expires request bookkeeping
func (r *Registry) CheckAndRemove() {
	if !r.env.Sync.IsListSynced() {
		return
	}

	r.log.Info("check and remove")

	now := r.env.Now()
	synced := r.env.Sync.IsSynced()
	reprocess := []*masternode.Broadcast{}

	r.Lock()
	r.checkAll()

	askBudget := RecoveryMaxAskEntries
	var ranks []election.Ranked
	r.nodes.each(func(rec *masternode.Record) {
		hash := rec.ToBroadcast().Hash()

		if rec.IsOutpointSpent() {
			r.log.Debugf("removing libernode: %s  addr: %s  %d now", rec.State, rec.Address, r.nodes.len()-1)
			delete(r.seenBroadcasts, hash)
			delete(r.weAskedEntry, rec.Outpoint)
			r.nodes.remove(rec.Outpoint)
			r.removed = true
			return
		}

		if askBudget <= 0 || !synced || !rec.IsNewStartRequired() {
			return
		}
		if _, requested := r.recoveryRequests[hash]; requested {
			return
		}

		// only computed when needed
		if nil == ranks {
			ranks = r.randomRanks()
		}
		asked := make(map[netip.Addr]struct{})
		for i := 0; len(asked) < RecoveryQuorumTotal && i < len(ranks); i += 1 {
			address := ranks[i].Info.Address
			// avoid being banned for asking too often
			if _, ok := r.weAskedEntry[rec.Outpoint][address.Addr()]; ok {
				continue
			}
			asked[address.Addr()] = struct{}{}
			r.scheduled = append(r.scheduled, scheduledRequest{address: address, hash: hash})
		}
		if len(asked) > 0 {
			r.log.Debugf("recovery initiated: libernode: %s", masternode.ShortString(rec.Outpoint))
			askBudget -= 1
		}
		r.recoveryRequests[hash] = &recoveryRequest{
			deadline: now + int64(RecoveryWait/time.Second),
			asked:    asked,
		}
	})

	r.log.Debugf("recovery good replies: %d", len(r.goodReplies))
	for hash, replies := range r.goodReplies {
		if request, ok := r.recoveryRequests[hash]; ok && request.deadline >= now {
			continue
		}
		// every peer asked should have replied by now
		if len(replies) >= RecoveryQuorumRequired {
			r.log.Debugf("reprocessing broadcast: libernode: %s", masternode.ShortString(replies[0].Outpoint))
			b := replies[0].Copy()
			b.Recovery = true
			reprocess = append(reprocess, b)
		}
		delete(r.goodReplies, hash)
	}

	// allow a broadcast to be recovered again later
	retry := int64(RecoveryRetry / time.Second)
	for hash, request := range r.recoveryRequests {
		if now-request.deadline > retry {
			delete(r.recoveryRequests, hash)
		}
	}

	for address, until := range r.askedUs {
		if until < now {
			delete(r.askedUs, address)
		}
	}
	for address, until := range r.weAsked {
		if until < now {
			delete(r.weAsked, address)
		}
	}
	for outpoint, asked := range r.weAskedEntry {
		for address, until := range asked {
			if until < now {
				delete(asked, address)
			}
		}
		if 0 == len(asked) {
			delete(r.weAskedEntry, outpoint)
		}
	}

	// seen broadcasts are only cleaned on updates
	for hash, p := range r.seenPings {
		if p.IsExpired(now) {
			r.log.Debugf("removing expired libernode ping: hash: %s", hash)
			delete(r.seenPings, hash)
		}
	}

	if r.removed {
		r.checkAndRebuildIndex()
	}
	r.Unlock()

	r.log.Info(r.Summary())

	for _, b := range reprocess {
		if _, err := r.CheckAndAdmit(nil, b); nil != err {
			r.log.Infof("recovery of libernode: %s  failed: %s", masternode.ShortString(b.Outpoint), err)
		}
	}

	r.NotifyUpdates()
}

// ranking at a random earlier block, must hold the lock
func (r *Registry) randomRanks() []election.Ranked {
	height := r.env.Chain.Height()
	if height <= 0 {
		return []election.Ranked{}
	}
	blockHash, err := r.env.Chain.BlockHash(rand.Int31n(height))
	if nil != err {
		return []election.Ranked{}
	}
	infos := make([]masternode.Info, 0, r.nodes.len())
	r.nodes.each(func(rec *masternode.Record) {
		infos = append(infos, rec.Info())
	})
	return election.Rank(infos, blockHash, 0, election.Enabled)
}

// PopScheduledConnection - every pending recovery hash for the lowest address
func (r *Registry) PopScheduledConnection() (netip.AddrPort, []chainhash.Hash) {
	r.Lock()
	defer r.Unlock()

	if 0 == len(r.scheduled) {
		return netip.AddrPort{}, nil
	}

	sort.Slice(r.scheduled, func(i, j int) bool {
		if c := r.scheduled[i].address.Compare(r.scheduled[j].address); 0 != c {
			return c < 0
		}
		return bytes.Compare(r.scheduled[i].hash[:], r.scheduled[j].hash[:]) < 0
	})

	address := r.scheduled[0].address
	hashes := []chainhash.Hash{}
	n := 0
	for n < len(r.scheduled) && address == r.scheduled[n].address {
		hashes = append(hashes, r.scheduled[n].hash)
		n += 1
	}
	r.scheduled = r.scheduled[n:]
	return address, hashes
}

// ProcessScheduledConnections - dial one recovery peer and fetch the broadcasts
func (r *Registry) ProcessScheduledConnections() {
	address, hashes := r.PopScheduledConnection()
	if !address.IsValid() || 0 == len(hashes) {
		return
	}

	peer, err := r.link.Connect(address)
	if nil != err {
		r.log.Debugf("recovery connect to: %s  error: %s", address, err)
		return
	}

	now := r.env.Now()
	inventory := make([]network.Inventory, 0, len(hashes))

	r.Lock()
	for _, hash := range hashes {
		if seen, ok := r.seenBroadcasts[hash]; ok {
			outpoint := seen.broadcast.Outpoint
			asked, ok := r.weAskedEntry[outpoint]
			if !ok {
				asked = make(map[netip.Addr]int64)
				r.weAskedEntry[outpoint] = asked
			}
			asked[address.Addr()] = now + listUpdateSeconds
		}
		inventory = append(inventory, network.Inventory{Type: network.InvAnnounce, Hash: hash})
	}
	r.Unlock()

	r.log.Debugf("recovery: asking: %s for %d broadcasts", address, len(inventory))
	peer.Push(network.CmdGetData, network.PackInventory(inventory))
}
