// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signer

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/libercoinproject/libercoin-old/fault"
)

// P2PKHScriptSize - the only accepted payee script size
const P2PKHScriptSize = 25

// KeyID - hash160 of a compressed public key
type KeyID [20]byte

// KeyIDOf - key id of a public key
func KeyIDOf(pub *btcec.PublicKey) KeyID {
	var id KeyID
	copy(id[:], btcutil.Hash160(pub.SerializeCompressed()))
	return id
}

// String - hex form used inside signed messages
func (id KeyID) String() string {
	return hex.EncodeToString(id[:])
}

// PayToKey - standard pay to public key hash script
func PayToKey(pub *btcec.PublicKey) []byte {
	id := KeyIDOf(pub)
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(id[:]).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	if nil != err {
		return nil
	}
	return script
}

// ScriptString - disassembled script, as included in vote messages
func ScriptString(script []byte) string {
	s, err := txscript.DisasmString(script)
	if nil != err {
		return hex.EncodeToString(script)
	}
	return s
}

// PayeeAddress - encoded address of a payee script
func PayeeAddress(script []byte, net *chaincfg.Params) string {
	_, addresses, _, err := txscript.ExtractPkScriptAddrs(script, net)
	if nil != err || 0 == len(addresses) {
		return "Unknown"
	}
	return addresses[0].EncodeAddress()
}

// ParsePublicKey - decode a serialised public key
func ParsePublicKey(b []byte) (*btcec.PublicKey, error) {
	pub, err := btcec.ParsePubKey(b)
	if nil != err {
		return nil, fault.ErrInvalidKey
	}
	return pub, nil
}

// ParseWIF - decode a wallet import format private key
func ParseWIF(s string, net *chaincfg.Params) (*btcec.PrivateKey, *btcec.PublicKey, error) {
	wif, err := btcutil.DecodeWIF(s)
	if nil != err {
		return nil, nil, fault.ErrInvalidKey
	}
	if nil != net && !wif.IsForNet(net) {
		return nil, nil, fault.ErrInvalidChain
	}
	return wif.PrivKey, wif.PrivKey.PubKey(), nil
}

// NewKey - generate a fresh key in wallet import format
func NewKey(net *chaincfg.Params) (string, error) {
	key, err := btcec.NewPrivateKey()
	if nil != err {
		return "", err
	}
	wif, err := btcutil.NewWIF(key, net, true)
	if nil != err {
		return "", err
	}
	return wif.String(), nil
}
