// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
)

// refresh a seen broadcast when fewer than two pings remain before a new start
const seenRefreshAge = int64((masternode.NewStartRequiredTime - 2*masternode.MinPingInterval) / time.Second)

// misbehaviour scores
const (
	dosKeyMismatch  = 33
	dosListTooOften = 34
)

// ProcessAnnounce - handle a broadcast received from a peer
func (r *Registry) ProcessAnnounce(peer network.Peer, b *masternode.Broadcast) {
	dos, err := r.CheckAndAdmit(peer, b)
	if nil != err {
		if dos > 0 {
			peer.Misbehaving(dos, err.Error())
		}
		r.log.Debugf("announce: libernode: %s  error: %s", masternode.ShortString(b.Outpoint), err)
	}
	r.NotifyUpdates()
}

// CheckAndAdmit - validate a broadcast, then add or update its record
//
// peer is nil for broadcasts produced or recovered locally; when an
// error is returned dos is the misbehaviour score for the peer
func (r *Registry) CheckAndAdmit(peer network.Peer, b *masternode.Broadcast) (int, error) {
	hash := b.Hash()
	now := r.env.Now()

	r.Lock()
	if seen, ok := r.seenBroadcasts[hash]; ok && !b.Recovery {
		r.seenAgain(peer, hash, seen, b, now)
		r.Unlock()
		return 0, fault.ErrAlreadySeen
	}
	r.seenBroadcasts[hash] = &seenBroadcast{time: now, broadcast: b}

	if dos, err := b.SimpleCheck(r.env); nil != err {
		r.Unlock()
		r.log.Debugf("simple check failed: libernode: %s  error: %s", masternode.ShortString(b.Outpoint), err)
		return dos, err
	}

	if rec := r.nodes.lookup(b.Outpoint); nil != rec {
		oldHash := rec.ToBroadcast().Hash()
		if dos, err := r.update(rec, b); nil != err {
			r.Unlock()
			r.log.Debugf("update failed: libernode: %s  error: %s", masternode.ShortString(b.Outpoint), err)
			return dos, err
		}
		if hash != oldHash {
			delete(r.seenBroadcasts, oldHash)
		}
	}
	r.Unlock()

	if dos, err := b.CheckOutpoint(r.env); nil != err {
		if fault.IsTransient(err) {
			// not disproved, allow it to be checked again later
			r.Lock()
			delete(r.seenBroadcasts, hash)
			r.Unlock()
		}
		r.log.Infof("rejected libernode entry: %s  addr: %s  error: %s", masternode.ShortString(b.Outpoint), b.Address, err)
		return dos, err
	}

	r.Lock()
	rec := r.nodes.lookup(b.Outpoint)
	if nil == rec {
		rec = masternode.NewRecord(b)
		r.add(rec)
	}
	if !rec.LastPing.IsEmpty() {
		r.seenPings[rec.LastPing.Hash()] = rec.LastPing
	}
	r.env.Sync.AddedList()

	selfAnnounced := false
	if r.env.IsSelfKey(b.OperationalKey) {
		rec.PoSeBanScore = -masternode.PoSeBanMaxScore
		if chain.ProtocolVersion != b.Protocol {
			r.Unlock()
			// reactivation needed, neither relay nor ban the sender
			r.log.Warnf("wrong protocol version, re-activate the libernode: message: %d  current: %d", b.Protocol, chain.ProtocolVersion)
			return 0, fault.ErrWrongProtocolForSelfNode
		}
		r.log.Infof("got new libernode entry: %s  sigTime: %d  addr: %s", masternode.ShortString(b.Outpoint), b.SigTime, b.Address)
		selfAnnounced = true
	}
	hook := r.onSelfAnnounced
	r.Unlock()

	if selfAnnounced && nil != hook {
		hook()
	}
	r.relay(b)
	return 0, nil
}

func (r *Registry) relay(b *masternode.Broadcast) {
	if nil == r.link {
		return
	}
	r.link.Relay(network.Inventory{
		Type: network.InvAnnounce,
		Hash: b.Hash(),
	})
}

// a broadcast already seen still shows the node is alive, it may
// also be a reply to a recovery request
//
// must hold the lock
func (r *Registry) seenAgain(peer network.Peer, hash chainhash.Hash, seen *seenBroadcast, b *masternode.Broadcast, now int64) {
	if now-seen.time > seenRefreshAge {
		seen.time = now
		r.env.Sync.AddedList()
	}

	if nil == peer {
		return
	}
	request, ok := r.recoveryRequests[hash]
	if !ok || now >= request.deadline {
		return
	}
	address := peer.Address().Addr()
	if _, asked := request.asked[address]; !asked {
		return
	}
	// one reply per peer
	delete(request.asked, address)

	if b.LastPing.IsEmpty() {
		return
	}
	if !seen.broadcast.LastPing.IsEmpty() && b.LastPing.SigTime <= seen.broadcast.LastPing.SigTime {
		return
	}

	temp := masternode.NewRecord(b)
	temp.Check(r.env, r.census(), true)
	r.log.Debugf("recovery reply: %s  addr: %s  last ping: %d min ago  projected state: %s",
		hash, peer.Address(), (now-b.LastPing.SigTime)/60, temp.State)
	if temp.State.IsValidForAutoStart() {
		r.goodReplies[hash] = append(r.goodReplies[hash], b)
	}
}

// apply a broadcast to its existing record
//
// must hold the lock
func (r *Registry) update(rec *masternode.Record, b *masternode.Broadcast) (int, error) {
	if rec.SigTime == b.SigTime && !b.Recovery {
		return 0, fault.ErrDuplicateBroadcast
	}
	if rec.SigTime > b.SigTime {
		r.log.Warnf("bad sigTime: %d  existing: %d  libernode: %s  addr: %s", b.SigTime, rec.SigTime, masternode.ShortString(b.Outpoint), b.Address)
		return 0, fault.ErrOlderBroadcast
	}

	census := r.census()
	rec.Check(r.env, census, false)
	if rec.IsPoSeBanned() {
		return 0, fault.ErrBanned
	}

	// key to outpoint association was proven when the record was added
	if !rec.CollateralKey.IsEqual(b.CollateralKey) {
		return dosKeyMismatch, fault.ErrCollateralKeyMismatch
	}
	if dos, err := b.CheckSignature(r.env.Signer); nil != err {
		return dos, err
	}

	// limit the rate of rebroadcasts except for our own node
	if !rec.IsBroadcastWithin(masternode.MinBroadcastInterval, r.env.Now()) || r.env.IsSelfKey(b.OperationalKey) {
		r.log.Infof("got updated libernode entry: addr: %s", b.Address)
		if updated, _ := rec.UpdateFromBroadcast(b, r.env, census); updated {
			rec.Check(r.env, census, false)
		}
		r.env.Sync.AddedList()
	}
	return 0, nil
}
