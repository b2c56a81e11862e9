// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"bytes"
	"math"
	"net/netip"
	"time"

	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
)

var listUpdateSeconds = int64(ListUpdateInterval / time.Second)

// the empty request selects the whole list
var allOutpoints = wire.OutPoint{Index: math.MaxUint32}

// PackListRequest - LIST_REQUEST payload, nil asks for every record
func PackListRequest(outpoint *wire.OutPoint) []byte {
	op := allOutpoints
	if nil != outpoint {
		op = *outpoint
	}
	buffer := bytes.Buffer{}
	_ = masternode.WriteOutpoint(&buffer, op)
	return buffer.Bytes()
}

// UnpackListRequest - decode LIST_REQUEST, nil for the whole list
func UnpackListRequest(payload []byte) (*wire.OutPoint, error) {
	op, err := masternode.ReadOutpoint(bytes.NewReader(payload))
	if nil != err {
		return nil, err
	}
	if allOutpoints == op {
		return nil, nil
	}
	return &op, nil
}

// AskForNode - request a single record, at most once per interval from each peer
func (r *Registry) AskForNode(peer network.Peer, outpoint wire.OutPoint) {
	if nil == peer {
		return
	}
	address := peer.Address().Addr()
	now := r.env.Now()

	r.Lock()
	asked, ok := r.weAskedEntry[outpoint]
	if ok {
		if until, ok := asked[address]; ok {
			if now < until {
				r.Unlock()
				return
			}
			r.log.Infof("asking same peer: %s for missing libernode entry again: %s", peer.Address(), masternode.ShortString(outpoint))
		} else {
			r.log.Infof("asking new peer: %s for missing libernode entry: %s", peer.Address(), masternode.ShortString(outpoint))
		}
	} else {
		r.log.Infof("asking peer: %s for missing libernode entry for the first time: %s", peer.Address(), masternode.ShortString(outpoint))
		asked = make(map[netip.Addr]int64)
		r.weAskedEntry[outpoint] = asked
	}
	asked[address] = now + listUpdateSeconds
	r.Unlock()

	peer.Push(network.CmdListRequest, PackListRequest(&outpoint))
}

// RequestList - ask a peer for its whole list
//
// on mainnet a public peer is asked at most once per interval
func (r *Registry) RequestList(peer network.Peer) error {
	address := peer.Address().Addr()
	now := r.env.Now()

	r.Lock()
	if r.env.Params.IsMainnet() && !network.IsLocal(peer.Address()) {
		if until, ok := r.weAsked[address]; ok && now < until {
			r.Unlock()
			r.log.Infof("we already asked: %s for the list; skipping...", peer.Address())
			return fault.ErrListRequestedTooRecently
		}
	}
	r.weAsked[address] = now + listUpdateSeconds
	r.Unlock()

	peer.Push(network.CmdListRequest, PackListRequest(nil))
	r.log.Debugf("asked: %s for the list", peer.Address())
	return nil
}

// ServeListRequest - answer LIST_REQUEST with inventory
//
// outpoint nil asks for the whole list which a public mainnet peer may
// only do once per interval
func (r *Registry) ServeListRequest(peer network.Peer, outpoint *wire.OutPoint) {
	// heavy, wait until fully synced
	if !r.env.Sync.IsSynced() {
		return
	}

	now := r.env.Now()

	r.Lock()
	if nil == outpoint && !network.IsLocal(peer.Address()) && r.env.Params.IsMainnet() {
		address := peer.Address().Addr()
		if until, ok := r.askedUs[address]; ok && now < until {
			r.Unlock()
			peer.Misbehaving(dosListTooOften, "peer already asked for the list")
			r.log.Warnf("peer: %d already asked for the list", peer.ID())
			return
		}
		r.askedUs[address] = now + listUpdateSeconds
	}

	inventory := make([]network.Inventory, 0, 2*r.nodes.len())
	count := 0
	r.nodes.each(func(rec *masternode.Record) {
		if nil != outpoint && *outpoint != rec.Outpoint {
			return
		}
		if network.IsLocal(rec.Address) || rec.IsUpdateRequired() {
			return
		}
		b := rec.ToBroadcast()
		hash := b.Hash()
		inventory = append(inventory, network.Inventory{Type: network.InvAnnounce, Hash: hash})
		if !rec.LastPing.IsEmpty() {
			inventory = append(inventory, network.Inventory{Type: network.InvPing, Hash: rec.LastPing.Hash()})
		}
		count += 1
		if _, ok := r.seenBroadcasts[hash]; !ok {
			r.seenBroadcasts[hash] = &seenBroadcast{time: now, broadcast: b}
		}
	})
	r.Unlock()

	for _, inv := range inventory {
		peer.PushInventory(inv)
	}

	if nil == outpoint {
		peer.Push(network.CmdSyncStatus, network.PackSyncStatus(network.StageList, count))
		r.log.Infof("sent: %d libernode invs to peer: %d", count, peer.ID())
		return
	}
	if 0 == count {
		r.log.Debugf("no invs sent to peer: %d", peer.ID())
	}
}
