// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/blockchain"
	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/clock"
	"github.com/libercoinproject/libercoin-old/signer"
)

// SyncStatus - progress of the staged synchronisation
type SyncStatus interface {
	IsBlockchainSynced() bool
	IsListSynced() bool
	IsSynced() bool

	// extend the list stage, something new was learned
	AddedList()
}

// Self - identity of the local libernode
//
// implementations must not call back into the registry
type Self interface {
	// nil when this process is not configured as a libernode
	OperationalKey() *btcec.PublicKey

	// collateral of the active local node, false until started
	Outpoint() (wire.OutPoint, bool)
}

// Env - collaborators shared by all validation code
type Env struct {
	Log    *logger.L
	Chain  blockchain.View
	Params *chain.Params
	Signer signer.MessageSigner
	Clock  clock.Clock
	Sync   SyncStatus
	Self   Self
}

// Census - registry wide facts gathered by the caller before a check
type Census struct {
	Size           int
	WatchdogActive bool
}

// Now - unix seconds from the injected clock
func (e *Env) Now() int64 {
	return e.Clock.Now().Unix()
}

// IsSelfKey - true when running as a libernode whose operational key is pub
func (e *Env) IsSelfKey(pub *btcec.PublicKey) bool {
	if nil == e.Self || nil == pub {
		return false
	}
	own := e.Self.OperationalKey()
	return nil != own && own.IsEqual(pub)
}

// IsSelfActive - true when outpoint and key belong to the started local node
func (e *Env) IsSelfActive(outpoint wire.OutPoint, pub *btcec.PublicKey) bool {
	if !e.IsSelfKey(pub) {
		return false
	}
	own, ok := e.Self.Outpoint()
	return ok && own == outpoint
}

// MinPaymentsProtocol - oldest protocol version eligible for payment
func (e *Env) MinPaymentsProtocol() int32 {
	return chain.MinPaymentsProtoVersion2
}
