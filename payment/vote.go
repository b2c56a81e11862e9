// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payment

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/signer"
)

const maxScriptSize = 10000

// Vote - a libernode's choice of payee for one block height
type Vote struct {
	Voter     wire.OutPoint
	Height    int32
	Payee     []byte
	Signature []byte
}

// Hash - identity of the vote, the signature is not included
func (v *Vote) Hash() chainhash.Hash {
	buffer := bytes.Buffer{}
	_ = wire.WriteVarBytes(&buffer, 0, v.Payee)
	_ = binary.Write(&buffer, binary.LittleEndian, v.Height)
	_ = masternode.WriteOutpoint(&buffer, v.Voter)
	return chainhash.DoubleHashH(buffer.Bytes())
}

func (v *Vote) message() string {
	return masternode.ShortString(v.Voter) + strconv.FormatInt(int64(v.Height), 10) + signer.ScriptString(v.Payee)
}

// Sign - sign with the voter's operational key
func (v *Vote) Sign(s signer.MessageSigner, key *btcec.PrivateKey) error {
	message := v.message()
	signature, err := s.Sign(key, message)
	if nil != err {
		return err
	}
	if err := s.Verify(key.PubKey(), signature, message); nil != err {
		return err
	}
	v.Signature = signature
	return nil
}

// CheckSignature - verify against the voter's operational key
func (v *Vote) CheckSignature(s signer.MessageSigner, pub *btcec.PublicKey) error {
	return s.Verify(pub, v.Signature, v.message())
}

// Pack - binary form
func (v *Vote) Pack() []byte {
	buffer := bytes.Buffer{}
	_ = masternode.WriteOutpoint(&buffer, v.Voter)
	_ = binary.Write(&buffer, binary.LittleEndian, v.Height)
	_ = wire.WriteVarBytes(&buffer, 0, v.Payee)
	_ = wire.WriteVarBytes(&buffer, 0, v.Signature)
	return buffer.Bytes()
}

// UnpackVote - decode a vote message
func UnpackVote(payload []byte) (*Vote, error) {
	r := bytes.NewReader(payload)
	v := &Vote{}
	var err error
	if v.Voter, err = masternode.ReadOutpoint(r); nil != err {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &v.Height); nil != err {
		return nil, err
	}
	if v.Payee, err = wire.ReadVarBytes(r, 0, maxScriptSize, "payee"); nil != err {
		return nil, err
	}
	if v.Signature, err = wire.ReadVarBytes(r, 0, 128, "signature"); nil != err {
		return nil, err
	}
	return v, nil
}

func (v *Vote) String() string {
	return fmt.Sprintf("%s, %d, %s, %d", masternode.ShortString(v.Voter), v.Height, signer.ScriptString(v.Payee), len(v.Signature))
}
