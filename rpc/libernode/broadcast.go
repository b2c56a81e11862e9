// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package libernode

import (
	"encoding/hex"

	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/rpc/ratelimit"
	"github.com/libercoinproject/libercoin-old/signer"
)

// BroadcastArguments - hex of a serialised broadcast
type BroadcastArguments struct {
	Hex string `json:"hex"`
}

// DecodedBroadcast - readable broadcast fields
type DecodedBroadcast struct {
	Hash           string `json:"hash"`
	Outpoint       string `json:"outpoint"`
	Address        string `json:"addr"`
	Payee          string `json:"payee"`
	CollateralKey  string `json:"collateralKey"`
	OperationalKey string `json:"operationalKey"`
	Protocol       int32  `json:"protocol"`
	SigTime        int64  `json:"sigTime"`
	PingBlockHash  string `json:"pingBlockHash,omitempty"`
	PingSigTime    int64  `json:"pingSigTime,omitempty"`
	SignatureValid bool   `json:"signatureValid"`
	Error          string `json:"error,omitempty"`
}

// Decode - parse a broadcast and check its signature only
func (l *Libernode) Decode(arguments *BroadcastArguments, reply *DecodedBroadcast) error {
	if err := ratelimit.Request(l.Limiter); nil != err {
		return err
	}

	b, err := decodeHex(arguments.Hex)
	if nil != err {
		return err
	}
	l.decoded(b, reply)
	return nil
}

// RelayReply - decoded broadcast and the admission result
type RelayReply struct {
	Broadcast DecodedBroadcast `json:"broadcast"`
	Relayed   bool             `json:"relayed"`
}

// Relay - admit a broadcast as if received, relaying it when accepted
func (l *Libernode) Relay(arguments *BroadcastArguments, reply *RelayReply) error {
	if err := ratelimit.Request(l.Limiter); nil != err {
		return err
	}

	b, err := decodeHex(arguments.Hex)
	if nil != err {
		return err
	}
	l.decoded(b, &reply.Broadcast)

	_, err = l.services.Nodes.CheckAndAdmit(nil, b)
	l.services.Nodes.NotifyUpdates()
	if nil != err {
		l.Log.Warnf("relay: %s  error: %s", masternode.ShortString(b.Outpoint), err)
		reply.Broadcast.Error = err.Error()
		return nil
	}
	reply.Relayed = true
	return nil
}

func decodeHex(s string) (*masternode.Broadcast, error) {
	payload, err := hex.DecodeString(s)
	if nil != err {
		return nil, err
	}
	return masternode.UnpackBroadcast(payload)
}

func (l *Libernode) decoded(b *masternode.Broadcast, reply *DecodedBroadcast) {
	s := l.services
	reply.Hash = b.Hash().String()
	reply.Outpoint = masternode.ShortString(b.Outpoint)
	reply.Address = b.Address.String()
	reply.Payee = signer.PayeeAddress(signer.PayToKey(b.CollateralKey), s.Params.Net)
	reply.CollateralKey = signer.KeyIDOf(b.CollateralKey).String()
	reply.OperationalKey = signer.KeyIDOf(b.OperationalKey).String()
	reply.Protocol = b.Protocol
	reply.SigTime = b.SigTime
	if !b.LastPing.IsEmpty() {
		reply.PingBlockHash = b.LastPing.BlockHash.String()
		reply.PingSigTime = b.LastPing.SigTime
	}

	if _, err := b.CheckSignature(s.Signer); nil != err {
		reply.Error = err.Error()
		return
	}
	reply.SignatureValid = true
}
