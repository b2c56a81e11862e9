// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"bytes"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/fault"
)

// InvType - kind of object referenced by an inventory entry
type InvType uint32

// inventory types
const (
	InvPaymentVote  InvType = 7
	InvPaymentBlock InvType = 8
	InvAnnounce     InvType = 14
	InvPing         InvType = 15
	InvVerify       InvType = 19
)

// MaxInventory - most entries in one GETDATA message
const MaxInventory = 50000

// Inventory - typed hash reference
type Inventory struct {
	Type InvType
	Hash chainhash.Hash
}

func (t InvType) String() string {
	switch t {
	case InvPaymentVote:
		return "payment vote"
	case InvPaymentBlock:
		return "payment block"
	case InvAnnounce:
		return "announce"
	case InvPing:
		return "ping"
	case InvVerify:
		return "verify"
	default:
		return "*unknown*"
	}
}

func (inv Inventory) String() string {
	return fmt.Sprintf("%s %s", inv.Type, inv.Hash)
}

// PackInventory - serialise a GETDATA payload
func PackInventory(list []Inventory) []byte {
	buffer := bytes.Buffer{}
	_ = wire.WriteVarInt(&buffer, 0, uint64(len(list)))
	for _, inv := range list {
		_ = wire.WriteVarInt(&buffer, 0, uint64(inv.Type))
		buffer.Write(inv.Hash[:])
	}
	return buffer.Bytes()
}

// UnpackInventory - deserialise a GETDATA payload
func UnpackInventory(payload []byte) ([]Inventory, error) {
	r := bytes.NewReader(payload)
	n, err := wire.ReadVarInt(r, 0)
	if nil != err {
		return nil, err
	}
	if n > MaxInventory {
		return nil, fault.ErrOutOfRange
	}
	list := make([]Inventory, 0, n)
	for i := uint64(0); i < n; i += 1 {
		t, err := wire.ReadVarInt(r, 0)
		if nil != err {
			return nil, err
		}
		inv := Inventory{Type: InvType(t)}
		if _, err := io.ReadFull(r, inv.Hash[:]); nil != err {
			return nil, err
		}
		list = append(list, inv)
	}
	return list, nil
}
