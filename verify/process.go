// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verify

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
)

// ProcessVerify - handle a verification message from a peer
//
// the populated signatures tell a request from a reply and a broadcast
func (v *Verifier) ProcessVerify(peer network.Peer, mnv *masternode.Verification) error {
	switch {
	case nil == mnv.Signature1:
		return v.SendVerifyReply(peer, mnv)
	case nil == mnv.Signature2:
		return v.ProcessVerifyReply(peer, mnv)
	default:
		return v.ProcessVerifyBroadcast(peer, mnv)
	}
}

// SendVerifyReply - prove this node holds its address
func (v *Verifier) SendVerifyReply(peer network.Peer, mnv *masternode.Verification) error {
	// a malicious node might use this address, so no penalty
	key := v.self.OperationalPrivateKey()
	if nil == key {
		return fault.ErrNotAMasternode
	}

	address := peer.Address()
	if v.fulfilled.Has(address, replyTag) {
		v.log.Warnf("peer already asked me recently: %d", peer.ID())
		peer.Misbehaving(dosVerify, "verification requested too often")
		return fault.ErrRequestFulfilled
	}

	blockHash, err := v.env.Chain.BlockHash(mnv.Height)
	if nil != err {
		v.log.Warnf("cannot get block hash for height: %d  peer: %d", mnv.Height, peer.ID())
		return fault.ErrUnknownBlockHash
	}

	signed := *mnv
	signed.Address = v.self.Service()
	message := signed.ReplyMessage(blockHash)
	signature, err := v.env.Signer.Sign(key, message)
	if nil != err {
		v.log.Errorf("sign error: %s", err)
		return fault.ErrSignatureFailed
	}
	if err := v.env.Signer.Verify(key.PubKey(), signature, message); nil != err {
		v.log.Errorf("verify error: %s", err)
		return fault.ErrSignatureFailed
	}

	reply := *mnv
	reply.Signature1 = signature
	peer.Push(network.CmdVerify, reply.Pack())
	v.fulfilled.Add(address, replyTag)
	return nil
}

// ProcessVerifyReply - check the answer to one of our requests
//
// the record at the address whose key signed it is verified, every
// other record claiming the address gets a higher ban score
func (v *Verifier) ProcessVerifyReply(peer network.Peer, mnv *masternode.Verification) error {
	address := peer.Address()

	if !v.fulfilled.Has(address, requestTag) {
		v.log.Warnf("we did not ask for verification of: %s  peer: %d", address, peer.ID())
		peer.Misbehaving(dosVerify, "unrequested verification reply")
		return fault.ErrNotRequested
	}

	v.Lock()
	asked, ok := v.weAsked[address]
	v.Unlock()
	if !ok || asked.Nonce != mnv.Nonce {
		v.log.Warnf("wrong nonce: received: %d  peer: %d", mnv.Nonce, peer.ID())
		peer.Misbehaving(dosVerify, "wrong verification nonce")
		return fault.ErrInvalidNonce
	}
	if asked.Height != mnv.Height {
		v.log.Warnf("wrong height: requested: %d  received: %d  peer: %d", asked.Height, mnv.Height, peer.ID())
		peer.Misbehaving(dosVerify, "wrong verification height")
		return fault.ErrWrongVerificationHeight
	}

	blockHash, err := v.env.Chain.BlockHash(mnv.Height)
	if nil != err {
		v.log.Errorf("cannot get block hash for height: %d  peer: %d", mnv.Height, peer.ID())
		return fault.ErrUnknownBlockHash
	}

	if v.fulfilled.Has(address, doneTag) {
		v.log.Warnf("already verified recently: %s", address)
		peer.Misbehaving(dosVerify, "verification repeated")
		return fault.ErrRequestFulfilled
	}

	proof := *mnv
	proof.Address = address
	message := proof.ReplyMessage(blockHash)

	var real *masternode.Info
	ban := []masternode.Info{}
	for _, info := range v.nodes.Infos() {
		if info.Address != address {
			continue
		}
		if err := v.env.Signer.Verify(info.OperationalKey, mnv.Signature1, message); nil != err {
			ban = append(ban, info)
			continue
		}
		found := info
		real = &found
	}

	if nil == real {
		v.log.Errorf("no real libernode found for address: %s", address)
		peer.Misbehaving(dosVerify, "no real libernode for verification")
		return fault.ErrNoRealNode
	}

	if !real.IsPoSeVerified() {
		v.nodes.DecreasePoSeBanScore(real.Outpoint)
	}
	v.fulfilled.Add(address, doneTag)
	v.log.Infof("verified real libernode: %s  address: %s", masternode.ShortString(real.Outpoint), address)

	// only an active libernode can vouch for it
	if self, ok := v.selfOutpoint(); ok {
		if err := v.countersign(&proof, real, self, blockHash); nil != err {
			return err
		}
	}

	for _, info := range ban {
		v.nodes.IncreasePoSeBanScore(info.Outpoint)
		v.log.Debugf("increased PoSe ban score for: %s  address: %s", masternode.ShortString(info.Outpoint), address)
	}
	v.log.Infof("PoSe score increased for %d fake libernodes, address: %s", len(ban), address)
	return nil
}

// countersign the proof and announce it to the network
func (v *Verifier) countersign(proof *masternode.Verification, real *masternode.Info, self wire.OutPoint, blockHash chainhash.Hash) error {
	key := v.self.OperationalPrivateKey()

	broadcast := *proof
	broadcast.Address = real.Address
	broadcast.Outpoint1 = real.Outpoint
	broadcast.Outpoint2 = self
	message := broadcast.BroadcastMessage(blockHash)
	signature, err := v.env.Signer.Sign(key, message)
	if nil != err {
		v.log.Errorf("sign error: %s", err)
		return fault.ErrSignatureFailed
	}
	if err := v.env.Signer.Verify(key.PubKey(), signature, message); nil != err {
		v.log.Errorf("verify error: %s", err)
		return fault.ErrSignatureFailed
	}
	broadcast.Signature2 = signature

	hash := broadcast.Hash()
	v.Lock()
	v.weAsked[real.Address] = &broadcast
	v.seen[hash] = &broadcast
	v.Unlock()

	v.link.Relay(network.Inventory{Type: network.InvVerify, Hash: hash})
	return nil
}

// ProcessVerifyBroadcast - accept another verifier's proof
//
// both signatures must check before any score changes
func (v *Verifier) ProcessVerifyBroadcast(peer network.Peer, mnv *masternode.Verification) error {
	hash := mnv.Hash()

	v.Lock()
	_, seen := v.seen[hash]
	v.Unlock()
	if seen {
		return fault.ErrAlreadySeen
	}

	tip := v.env.Chain.Height()
	if mnv.Height < tip-MaxBlocks {
		v.log.Debugf("outdated: current block: %d  verification block: %d  peer: %d", tip, mnv.Height, peer.ID())
		return fault.ErrOutOfRange
	}

	if mnv.Outpoint1 == mnv.Outpoint2 {
		v.log.Warnf("same outpoints: %s  peer: %d", masternode.ShortString(mnv.Outpoint1), peer.ID())
		peer.Misbehaving(dosSelfVerify, "verification of self")
		return fault.ErrSameOutpoints
	}

	blockHash, err := v.env.Chain.BlockHash(mnv.Height)
	if nil != err {
		v.log.Errorf("cannot get block hash for height: %d  peer: %d", mnv.Height, peer.ID())
		return fault.ErrUnknownBlockHash
	}

	rank := v.elector.GetRank(mnv.Outpoint2, mnv.Height, chain.MinPoSeProtoVersion, true)
	if -1 == rank {
		v.log.Debugf("cannot calculate rank for libernode: %s", masternode.ShortString(mnv.Outpoint2))
		return fault.ErrUnknownBlockHash
	}
	if rank > MaxRank {
		v.log.Debugf("libernode: %s is not in top %d, current rank: %d  peer: %d",
			masternode.ShortString(mnv.Outpoint2), MaxRank, rank, peer.ID())
		return fault.ErrRankTooLow
	}

	node1, ok := v.nodes.Get(mnv.Outpoint1)
	if !ok {
		v.log.Debugf("cannot find libernode1: %s", masternode.ShortString(mnv.Outpoint1))
		return fault.ErrNodeNotFound
	}
	node2, ok := v.nodes.Get(mnv.Outpoint2)
	if !ok {
		v.log.Debugf("cannot find libernode2: %s", masternode.ShortString(mnv.Outpoint2))
		return fault.ErrNodeNotFound
	}
	if node1.Address != mnv.Address {
		v.log.Warnf("address does not match: %s  expected: %s", mnv.Address, node1.Address)
		return fault.ErrWrongVerificationAddress
	}

	if err := v.env.Signer.Verify(node1.OperationalKey, mnv.Signature1, mnv.ReplyMessage(blockHash)); nil != err {
		v.log.Warnf("invalid signature from libernode1: %s  error: %s", masternode.ShortString(mnv.Outpoint1), err)
		return fault.ErrInvalidSignature
	}
	if err := v.env.Signer.Verify(node2.OperationalKey, mnv.Signature2, mnv.BroadcastMessage(blockHash)); nil != err {
		v.log.Warnf("invalid signature from libernode2: %s  error: %s", masternode.ShortString(mnv.Outpoint2), err)
		return fault.ErrInvalidSignature
	}

	v.Lock()
	v.seen[hash] = mnv
	v.Unlock()

	if !node1.IsPoSeVerified() {
		v.nodes.DecreasePoSeBanScore(mnv.Outpoint1)
	}
	v.link.Relay(network.Inventory{Type: network.InvVerify, Hash: hash})
	v.log.Infof("verified libernode: %s  address: %s", masternode.ShortString(mnv.Outpoint1), mnv.Address)

	count := 0
	for _, info := range v.nodes.Infos() {
		if info.Address != mnv.Address || info.Outpoint == mnv.Outpoint1 {
			continue
		}
		v.nodes.IncreasePoSeBanScore(info.Outpoint)
		count += 1
		v.log.Debugf("increased PoSe ban score for: %s  address: %s", masternode.ShortString(info.Outpoint), info.Address)
	}
	v.log.Infof("PoSe score increased for %d fake libernodes, address: %s", count, mnv.Address)
	return nil
}
