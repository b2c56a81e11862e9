// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verify

import (
	"math/rand"
	"net/netip"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/election"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
)

// proof of service limits
const (
	MaxConnections = 10
	MaxRank        = 10
	MaxBlocks      = 10
)

const (
	dosVerify     = 20
	dosSelfVerify = 100

	fulfilledExpiry = time.Hour
	maxNonce        = 999999

	requestTag = string(network.CmdVerify) + "-request"
	replyTag   = string(network.CmdVerify) + "-reply"
	doneTag    = string(network.CmdVerify) + "-done"
)

// Nodes - registry access
type Nodes interface {
	Infos() []masternode.Info
	Get(outpoint wire.OutPoint) (masternode.Info, bool)
	IncreasePoSeBanScore(outpoint wire.OutPoint)
	DecreasePoSeBanScore(outpoint wire.OutPoint)
}

// Elector - ranking of enabled records
type Elector interface {
	Ranks(height int32, minProtocol int32) []election.Ranked
	GetRank(outpoint wire.OutPoint, height int32, minProtocol int32, onlyActive bool) int
}

// Self - the local libernode
type Self interface {
	Outpoint() (wire.OutPoint, bool)
	OperationalPrivateKey() *btcec.PrivateKey
	Service() netip.AddrPort
}

// SyncStatus - only a synced node verifies others
type SyncStatus interface {
	IsSynced() bool
}

// Verifier - challenger and responder of address proofs
type Verifier struct {
	sync.Mutex

	log       *logger.L
	env       *masternode.Env
	link      network.Link
	nodes     Nodes
	elector   Elector
	self      Self
	sync      SyncStatus
	fulfilled *network.Fulfilled
	random    *rand.Rand

	// requests we sent, by dialled address
	weAsked map[netip.AddrPort]*masternode.Verification

	// broadcasts already processed
	seen map[chainhash.Hash]*masternode.Verification
}

// New - create a verifier
func New(env *masternode.Env, link network.Link, nodes Nodes, elector Elector, self Self, status SyncStatus) *Verifier {
	return &Verifier{
		log:       logger.New("verify"),
		env:       env,
		link:      link,
		nodes:     nodes,
		elector:   elector,
		self:      self,
		sync:      status,
		fulfilled: network.NewFulfilled(fulfilledExpiry),
		random:    rand.New(rand.NewSource(env.Clock.Now().UnixNano())),
		weAsked:   make(map[netip.AddrPort]*masternode.Verification),
		seen:      make(map[chainhash.Hash]*masternode.Verification),
	}
}

func (v *Verifier) selfOutpoint() (wire.OutPoint, bool) {
	if nil == v.self || nil == v.self.OperationalPrivateKey() {
		return wire.OutPoint{}, false
	}
	return v.self.Outpoint()
}

// Seen - a processed broadcast, for answering GETDATA
func (v *Verifier) Seen(hash chainhash.Hash) (*masternode.Verification, bool) {
	v.Lock()
	defer v.Unlock()
	mnv, ok := v.seen[hash]
	return mnv, ok
}

// Requested - the request outstanding for an address
func (v *Verifier) Requested(address netip.AddrPort) (*masternode.Verification, bool) {
	v.Lock()
	defer v.Unlock()
	mnv, ok := v.weAsked[address]
	return mnv, ok
}

// CheckAndRemove - forget requests and broadcasts for old blocks
func (v *Verifier) CheckAndRemove() {
	oldest := v.env.Chain.Height() - MaxBlocks

	v.Lock()
	defer v.Unlock()
	for address, mnv := range v.weAsked {
		if mnv.Height < oldest {
			delete(v.weAsked, address)
		}
	}
	for hash, mnv := range v.seen {
		if mnv.Height < oldest {
			v.log.Debugf("removing expired verification: %s", hash)
			delete(v.seen, hash)
		}
	}
}
