// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/blockchain"
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/signer"
)

// Ping - signed liveness assertion for a collateral outpoint
type Ping struct {
	Outpoint  wire.OutPoint
	BlockHash chainhash.Hash
	SigTime   int64
	Signature []byte
}

// NewPing - unsigned ping referencing the block twelve below the tip
func NewPing(outpoint wire.OutPoint, view blockchain.View) (*Ping, error) {
	height := view.Height()
	if height < PingBlockOffset {
		return nil, fault.ErrInvalidBlockHeight
	}
	hash, err := view.BlockHash(height - PingBlockOffset)
	if nil != err {
		return nil, err
	}
	return &Ping{
		Outpoint:  outpoint,
		BlockHash: hash,
	}, nil
}

// IsEmpty - true for a missing ping
func (p *Ping) IsEmpty() bool {
	return nil == p || (0 == p.SigTime && 0 == len(p.Signature))
}

// Hash - identity for deduplication, independent of the block and signature
func (p *Ping) Hash() chainhash.Hash {
	buffer := bytes.Buffer{}
	_ = WriteOutpoint(&buffer, p.Outpoint)
	_ = writeInts(&buffer, p.SigTime)
	return chainhash.DoubleHashH(buffer.Bytes())
}

func (p *Ping) message() string {
	return p.Outpoint.String() + p.BlockHash.String() + strconv.FormatInt(p.SigTime, 10)
}

// Sign - stamp with the current time and sign with the operational key
func (p *Ping) Sign(s signer.MessageSigner, key *btcec.PrivateKey, now int64) error {
	p.SigTime = now
	sig, err := s.Sign(key, p.message())
	if nil != err {
		return fault.ErrSignatureFailed
	}
	if err := s.Verify(key.PubKey(), sig, p.message()); nil != err {
		return fault.ErrSignatureFailed
	}
	p.Signature = sig
	return nil
}

// CheckSignature - verify against the owning record's operational key
func (p *Ping) CheckSignature(s signer.MessageSigner, pub *btcec.PublicKey) (int, error) {
	if err := s.Verify(pub, p.Signature, p.message()); nil != err {
		return dosBadPing, fault.ErrInvalidSignature
	}
	return 0, nil
}

// IsExpired - too old to keep in the seen cache
func (p *Ping) IsExpired(now int64) bool {
	return now-p.SigTime > seconds(NewStartRequiredTime)
}

// SimpleCheck - time window and known block
func (p *Ping) SimpleCheck(env *Env) (int, error) {
	if p.SigTime > env.Now()+seconds(FutureSignatureWindow) {
		return dosFutureSignature, fault.ErrSignatureInFuture
	}
	if _, err := env.Chain.BlockHeight(p.BlockHash); nil != err {
		// maybe forked or stuck, do not ban
		return 0, fault.ErrUnknownBlockHash
	}
	return 0, nil
}

// CheckAndUpdate - accept a ping for a record
//
// on success the record's last ping is replaced and its state forced
// to be recomputed, an error is also returned if the record did not
// end up enabled
func (p *Ping) CheckAndUpdate(r *Record, fromNewBroadcast bool, env *Env, census Census) (int, error) {
	if dos, err := p.SimpleCheck(env); nil != err {
		return dos, err
	}
	if nil == r {
		return 0, fault.ErrNodeNotFound
	}

	if !fromNewBroadcast {
		if r.IsUpdateRequired() {
			return 0, fault.ErrStateUpdateRequired
		}
		if r.IsNewStartRequired() {
			return 0, fault.ErrStateNewStartRequired
		}
	}

	height, err := env.Chain.BlockHeight(p.BlockHash)
	if nil != err {
		return 0, fault.ErrUnknownBlockHash
	}
	if height < env.Chain.Height()-PingBlockDepth {
		return 0, fault.ErrBlockHashTooOld
	}

	if r.IsPingedWithin(MinPingInterval-time.Minute, p.SigTime) {
		return 0, fault.ErrPingTooEarly
	}

	if dos, err := p.CheckSignature(env.Signer, r.OperationalKey); nil != err {
		return dos, err
	}

	// still syncing and nothing heard for a while, extend the sync
	if nil != env.Sync && !env.Sync.IsListSynced() && !r.IsPingedWithin(ExpirationTime/2, env.Now()) {
		env.Sync.AddedList()
	}

	r.LastPing = p
	r.Check(env, census, true)
	if !r.IsEnabled() {
		return 0, fault.ErrNodeNotEnabled
	}
	return 0, nil
}

// Pack - binary form
func (p *Ping) Pack() []byte {
	buffer := bytes.Buffer{}
	_ = p.write(&buffer)
	return buffer.Bytes()
}

// UnpackPing - decode a ping
func UnpackPing(payload []byte) (*Ping, error) {
	return readPing(bytes.NewReader(payload))
}

func (p *Ping) write(w io.Writer) error {
	if err := WriteOutpoint(w, p.Outpoint); nil != err {
		return err
	}
	if _, err := w.Write(p.BlockHash[:]); nil != err {
		return err
	}
	if err := writeInts(w, p.SigTime); nil != err {
		return err
	}
	return wire.WriteVarBytes(w, 0, p.Signature)
}

func readPing(r io.Reader) (*Ping, error) {
	p := &Ping{}
	var err error
	if p.Outpoint, err = ReadOutpoint(r); nil != err {
		return nil, err
	}
	if _, err := io.ReadFull(r, p.BlockHash[:]); nil != err {
		return nil, err
	}
	if err := readInts(r, &p.SigTime); nil != err {
		return nil, err
	}
	if p.Signature, err = wire.ReadVarBytes(r, 0, maxFieldSize, "ping signature"); nil != err {
		return nil, err
	}
	if 0 == len(p.Signature) {
		p.Signature = nil
	}
	return p, nil
}
