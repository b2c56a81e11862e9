// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package libernode

import (
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/rpc/ratelimit"
	"github.com/libercoinproject/libercoin-old/signer"
)

// SyncArguments - optional reset
type SyncArguments struct {
	Reset bool `json:"reset"`
}

// SyncReply - sync progress
type SyncReply struct {
	Stage             string  `json:"stage"`
	Attempt           int     `json:"attempt"`
	Progress          float64 `json:"progress"`
	BlockchainSynced  bool    `json:"isBlockchainSynced"`
	ListSynced        bool    `json:"isListSynced"`
	WinnersListSynced bool    `json:"isWinnersListSynced"`
	Synced            bool    `json:"isSynced"`
	Failed            bool    `json:"isFailed"`
}

// Sync - report the sync stage, restarting it when asked
func (l *Libernode) Sync(arguments *SyncArguments, reply *SyncReply) error {
	if err := ratelimit.Request(l.Limiter); nil != err {
		return err
	}

	s := l.services.Sync
	if arguments.Reset {
		l.Log.Info("sync reset requested")
		s.Reset()
	}

	reply.Stage = s.StageString()
	reply.Attempt = s.Attempt()
	reply.Progress = s.Progress()
	reply.BlockchainSynced = s.IsBlockchainSynced()
	reply.ListSynced = s.IsListSynced()
	reply.WinnersListSynced = s.IsWinnersListSynced()
	reply.Synced = s.IsSynced()
	reply.Failed = s.IsFailed()
	return nil
}

// GenkeyArguments - empty arguments for key generation
type GenkeyArguments struct{}

// GenkeyReply - new operational key
type GenkeyReply struct {
	PrivateKey string `json:"privateKey"`
}

// Genkey - fresh operational key in WIF for an identities file
func (l *Libernode) Genkey(_ *GenkeyArguments, reply *GenkeyReply) error {
	if err := ratelimit.Request(l.Limiter); nil != err {
		return err
	}

	wif, err := signer.NewKey(l.services.Params.Net)
	if nil != err {
		l.Log.Errorf("genkey error: %s", err)
		return fault.ErrSignatureFailed
	}
	reply.PrivateKey = wif
	return nil
}
