// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package libernode

import (
	"net/netip"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/wire"
	"golang.org/x/time/rate"

	"github.com/libercoinproject/libercoin-old/activation"
	"github.com/libercoinproject/libercoin-old/blockchain"
	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/election"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
	"github.com/libercoinproject/libercoin-old/nodeconf"
	"github.com/libercoinproject/libercoin-old/signer"
)

const (
	rateLimitLibernode = 200
	rateBurstLibernode = 100
)

// Nodes - registry access
type Nodes interface {
	Infos() []masternode.Info
	Get(outpoint wire.OutPoint) (masternode.Info, bool)
	CountNodes(protocol int32) int
	CountEnabled(protocol int32) int
	CheckAndAdmit(peer network.Peer, b *masternode.Broadcast) (int, error)
	NotifyUpdates()
}

// Elector - rankings and the payment queue
type Elector interface {
	Ranks(height int32, minProtocol int32) []election.Ranked
	NextInQueueForPayment(height int32, filterSigTime bool) (masternode.Info, int, bool)
}

// Ledger - payment votes
type Ledger interface {
	MinProtocol() int32
	RequiredPaymentsString(height int32) string
}

// Self - local activation
type Self interface {
	IsLibernode() bool
	Describe() activation.Summary
	ManageState()
	CreateBroadcast(address netip.AddrPort, operational *btcec.PrivateKey, outpoint wire.OutPoint) (*masternode.Broadcast, error)
}

// Status - sync progress
type Status interface {
	Stage() network.SyncStage
	StageString() string
	Attempt() int
	Progress() float64
	IsBlockchainSynced() bool
	IsListSynced() bool
	IsWinnersListSynced() bool
	IsSynced() bool
	IsFailed() bool
	Reset()
}

// Identities - configured remote libernodes
type Identities interface {
	Entries() []nodeconf.Entry
	Get(alias string) (nodeconf.Entry, bool)
}

// Services - everything the handlers read or drive
//
// Identities may be nil when no identities file is configured
type Services struct {
	Chain      blockchain.View
	Params     *chain.Params
	Signer     signer.MessageSigner
	Nodes      Nodes
	Elector    Elector
	Ledger     Ledger
	Self       Self
	Sync       Status
	Identities Identities
}

// Libernode - type for RPC calls
type Libernode struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	services Services
}

// New - create the RPC handler
func New(log *logger.L, services Services) *Libernode {
	return &Libernode{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitLibernode, rateBurstLibernode),
		services: services,
	}
}
