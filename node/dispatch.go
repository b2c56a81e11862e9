// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
	"github.com/libercoinproject/libercoin-old/payment"
	"github.com/libercoinproject/libercoin-old/registry"
)

// score for a payload that cannot be decoded
const dosMalformed = 100

// ProcessMessage - handle one libernode message from a peer
//
// errors are informational, any penalty has already been applied
func (rt *Runtime) ProcessMessage(peer network.Peer, command network.Command, payload []byte) error {
	switch command {

	case network.CmdAnnounce:
		if !rt.Sync.IsBlockchainSynced() {
			return fault.ErrNotSynchronised
		}
		b, err := masternode.UnpackBroadcast(payload)
		if nil != err {
			return rt.malformed(peer, command, err)
		}
		rt.Registry.ProcessAnnounce(peer, b)

	case network.CmdPing:
		if !rt.Sync.IsBlockchainSynced() {
			return fault.ErrNotSynchronised
		}
		p, err := masternode.UnpackPing(payload)
		if nil != err {
			return rt.malformed(peer, command, err)
		}
		rt.Registry.ProcessPing(peer, p)

	case network.CmdListRequest:
		outpoint, err := registry.UnpackListRequest(payload)
		if nil != err {
			return rt.malformed(peer, command, err)
		}
		rt.Registry.ServeListRequest(peer, outpoint)

	case network.CmdSyncStatus:
		stage, count, err := network.UnpackSyncStatus(payload)
		if nil != err {
			return rt.malformed(peer, command, err)
		}
		rt.Sync.ProcessSyncStatus(peer, stage, count)

	case network.CmdVoteRequest:
		if _, err := network.UnpackVoteRequest(payload); nil != err {
			return rt.malformed(peer, command, err)
		}
		rt.Ledger.ServeVoteSync(peer)

	case network.CmdPaymentVote:
		v, err := payment.UnpackVote(payload)
		if nil != err {
			return rt.malformed(peer, command, err)
		}
		return rt.Ledger.ProcessVote(peer, v)

	case network.CmdVerify:
		mnv, err := masternode.UnpackVerification(payload)
		if nil != err {
			return rt.malformed(peer, command, err)
		}
		return rt.Verifier.ProcessVerify(peer, mnv)

	case network.CmdGetData:
		list, err := network.UnpackInventory(payload)
		if nil != err {
			return rt.malformed(peer, command, err)
		}
		rt.ProcessGetData(peer, list)

	case network.CmdGetSporks:
		// sporks are served by the host node

	default:
		return fault.ErrUnknownMessage
	}
	return nil
}

func (rt *Runtime) malformed(peer network.Peer, command network.Command, err error) error {
	rt.log.Warnf("peer: %d  command: %s  error: %s", peer.ID(), command, err)
	peer.Misbehaving(dosMalformed, "malformed "+string(command))
	return err
}

// ProcessGetData - push every requested object that is still known
func (rt *Runtime) ProcessGetData(peer network.Peer, list []network.Inventory) {
	for _, inv := range list {
		switch inv.Type {

		case network.InvAnnounce:
			if b, ok := rt.Registry.SeenBroadcast(inv.Hash); ok {
				peer.Push(network.CmdAnnounce, b.Pack())
			}

		case network.InvPing:
			if p, ok := rt.Registry.SeenPing(inv.Hash); ok {
				peer.Push(network.CmdPing, p.Pack())
			}

		case network.InvPaymentVote:
			if rt.Ledger.HasVerifiedPaymentVote(inv.Hash) {
				if v, ok := rt.Ledger.Vote(inv.Hash); ok {
					peer.Push(network.CmdPaymentVote, v.Pack())
				}
			}

		case network.InvPaymentBlock:
			height, err := rt.Env.Chain.BlockHeight(inv.Hash)
			if nil != err {
				continue
			}
			for _, v := range rt.Ledger.BlockVotes(height) {
				peer.Push(network.CmdPaymentVote, v.Pack())
			}

		case network.InvVerify:
			if mnv, ok := rt.Verifier.Seen(inv.Hash); ok {
				peer.Push(network.CmdVerify, mnv.Pack())
			}

		default:
			rt.log.Debugf("peer: %d  unhandled inventory: %s", peer.ID(), inv)
		}
	}
}
