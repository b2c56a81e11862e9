// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"bytes"

	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/network"
)

// Pack - storage form of a record
func (r *Record) Pack() []byte {
	buffer := bytes.Buffer{}
	_ = WriteOutpoint(&buffer, r.Outpoint)
	_ = network.WriteAddress(&buffer, r.Address)
	_ = writeKey(&buffer, r.CollateralKey)
	_ = writeKey(&buffer, r.OperationalKey)
	ping := r.LastPing
	if nil == ping {
		ping = &Ping{}
	}
	_ = ping.write(&buffer)
	_ = wire.WriteVarBytes(&buffer, 0, r.Signature)
	_ = writeInts(&buffer,
		r.SigTime, r.Protocol,
		r.LastChecked, r.LastPaidTime, r.LastPaidBlock, r.LastWatchdogVote, r.CollateralHeight,
		int32(r.State), r.PoSeBanScore, r.PoSeBanHeight,
	)
	return buffer.Bytes()
}

// UnpackRecord - decode a stored record
func UnpackRecord(data []byte) (*Record, error) {
	rd := bytes.NewReader(data)
	r := &Record{}
	var err error

	if r.Outpoint, err = ReadOutpoint(rd); nil != err {
		return nil, err
	}
	if r.Address, err = network.ReadAddress(rd); nil != err {
		return nil, err
	}
	if r.CollateralKey, err = readKey(rd); nil != err {
		return nil, err
	}
	if r.OperationalKey, err = readKey(rd); nil != err {
		return nil, err
	}
	ping, err := readPing(rd)
	if nil != err {
		return nil, err
	}
	if !ping.IsEmpty() {
		r.LastPing = ping
	}
	if r.Signature, err = wire.ReadVarBytes(rd, 0, maxFieldSize, "record signature"); nil != err {
		return nil, err
	}

	state := int32(0)
	err = readInts(rd,
		&r.SigTime, &r.Protocol,
		&r.LastChecked, &r.LastPaidTime, &r.LastPaidBlock, &r.LastWatchdogVote, &r.CollateralHeight,
		&state, &r.PoSeBanScore, &r.PoSeBanHeight,
	)
	if nil != err {
		return nil, err
	}
	r.State = State(state)
	return r, nil
}
