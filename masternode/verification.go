// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"bytes"
	"net/netip"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/network"
)

// Verification - one message of the three way address proof
//
// a request carries no signatures, a reply only the first signature
// and a broadcast both signatures and both outpoints
type Verification struct {
	Outpoint1  wire.OutPoint
	Outpoint2  wire.OutPoint
	Address    netip.AddrPort
	Nonce      int32
	Height     int32
	Signature1 []byte
	Signature2 []byte
}

// Hash - identity excluding signatures
func (v *Verification) Hash() chainhash.Hash {
	buffer := bytes.Buffer{}
	_ = WriteOutpoint(&buffer, v.Outpoint1)
	_ = WriteOutpoint(&buffer, v.Outpoint2)
	_ = network.WriteAddress(&buffer, v.Address)
	_ = writeInts(&buffer, v.Nonce, v.Height)
	return chainhash.DoubleHashH(buffer.Bytes())
}

// ReplyMessage - signed by the node being verified
func (v *Verification) ReplyMessage(blockHash chainhash.Hash) string {
	return v.Address.String() + strconv.FormatInt(int64(v.Nonce), 10) + blockHash.String()
}

// BroadcastMessage - signed by the verifier over the proven reply
func (v *Verification) BroadcastMessage(blockHash chainhash.Hash) string {
	return v.ReplyMessage(blockHash) + ShortString(v.Outpoint1) + ShortString(v.Outpoint2)
}

// Pack - binary form
func (v *Verification) Pack() []byte {
	buffer := bytes.Buffer{}
	_ = WriteOutpoint(&buffer, v.Outpoint1)
	_ = WriteOutpoint(&buffer, v.Outpoint2)
	_ = network.WriteAddress(&buffer, v.Address)
	_ = writeInts(&buffer, v.Nonce, v.Height)
	_ = wire.WriteVarBytes(&buffer, 0, v.Signature1)
	_ = wire.WriteVarBytes(&buffer, 0, v.Signature2)
	return buffer.Bytes()
}

// UnpackVerification - decode a verification message
func UnpackVerification(payload []byte) (*Verification, error) {
	r := bytes.NewReader(payload)
	v := &Verification{}
	var err error
	if v.Outpoint1, err = ReadOutpoint(r); nil != err {
		return nil, err
	}
	if v.Outpoint2, err = ReadOutpoint(r); nil != err {
		return nil, err
	}
	if v.Address, err = network.ReadAddress(r); nil != err {
		return nil, err
	}
	if err := readInts(r, &v.Nonce, &v.Height); nil != err {
		return nil, err
	}
	if v.Signature1, err = wire.ReadVarBytes(r, 0, maxFieldSize, "signature 1"); nil != err {
		return nil, err
	}
	if v.Signature2, err = wire.ReadVarBytes(r, 0, maxFieldSize, "signature 2"); nil != err {
		return nil, err
	}
	if 0 == len(v.Signature1) {
		v.Signature1 = nil
	}
	if 0 == len(v.Signature2) {
		v.Signature2 = nil
	}
	return v, nil
}
