// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"bytes"
	"encoding/binary"
	"io"
	"strconv"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/fault"
)

// bound on any variable length field
const maxFieldSize = 1024

// ShortString - "hash-index" form of an outpoint
func ShortString(outpoint wire.OutPoint) string {
	return outpoint.Hash.String() + "-" + strconv.FormatUint(uint64(outpoint.Index), 10)
}

// WriteOutpoint - 32 byte hash then little endian index
func WriteOutpoint(w io.Writer, outpoint wire.OutPoint) error {
	if _, err := w.Write(outpoint.Hash[:]); nil != err {
		return err
	}
	return binary.Write(w, binary.LittleEndian, outpoint.Index)
}

// ReadOutpoint - inverse of WriteOutpoint
func ReadOutpoint(r io.Reader) (wire.OutPoint, error) {
	var outpoint wire.OutPoint
	if _, err := io.ReadFull(r, outpoint.Hash[:]); nil != err {
		return outpoint, err
	}
	err := binary.Read(r, binary.LittleEndian, &outpoint.Index)
	return outpoint, err
}

// CompareOutpoints - total order used to break ties
func CompareOutpoints(a wire.OutPoint, b wire.OutPoint) int {
	if c := bytes.Compare(a.Hash[:], b.Hash[:]); 0 != c {
		return c
	}
	switch {
	case a.Index < b.Index:
		return -1
	case a.Index > b.Index:
		return 1
	}
	return 0
}

func writeKey(w io.Writer, pub *btcec.PublicKey) error {
	if nil == pub {
		return wire.WriteVarBytes(w, 0, nil)
	}
	return wire.WriteVarBytes(w, 0, pub.SerializeCompressed())
}

func readKey(r io.Reader) (*btcec.PublicKey, error) {
	b, err := wire.ReadVarBytes(r, 0, maxFieldSize, "public key")
	if nil != err {
		return nil, err
	}
	if 0 == len(b) {
		return nil, nil
	}
	pub, err := btcec.ParsePubKey(b)
	if nil != err {
		return nil, fault.ErrInvalidKey
	}
	return pub, nil
}

func writeInts(w io.Writer, values ...interface{}) error {
	for _, v := range values {
		if err := binary.Write(w, binary.LittleEndian, v); nil != err {
			return err
		}
	}
	return nil
}

func readInts(r io.Reader, values ...interface{}) error {
	for _, v := range values {
		if err := binary.Read(r, binary.LittleEndian, v); nil != err {
			return err
		}
	}
	return nil
}
