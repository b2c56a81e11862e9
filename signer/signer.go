// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signer

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/fault"
)

// DefaultMagic - prefix mixed into every signed message hash
const DefaultMagic = "Libercoin Signed Message:\n"

// MessageSigner - sign and verify text messages
type MessageSigner interface {
	Sign(key *btcec.PrivateKey, message string) ([]byte, error)
	Verify(pub *btcec.PublicKey, signature []byte, message string) error
}

// Compact - recoverable compact signatures over a magic prefixed message
type Compact struct {
	magic string
}

// New - create a signer with a message magic
func New(magic string) *Compact {
	return &Compact{
		magic: magic,
	}
}

// Sign - produce a 65 byte recoverable signature
func (c *Compact) Sign(key *btcec.PrivateKey, message string) ([]byte, error) {
	if nil == key {
		return nil, fault.ErrInvalidKey
	}
	hash, err := c.hash(message)
	if nil != err {
		return nil, err
	}
	return ecdsa.SignCompact(key, hash[:], true)
}

// Verify - recover the public key from the signature and compare key ids
func (c *Compact) Verify(pub *btcec.PublicKey, signature []byte, message string) error {
	if nil == pub {
		return fault.ErrInvalidKey
	}
	hash, err := c.hash(message)
	if nil != err {
		return err
	}
	recovered, _, err := ecdsa.RecoverCompact(signature, hash[:])
	if nil != err {
		return fault.ErrInvalidSignature
	}
	if KeyIDOf(recovered) != KeyIDOf(pub) {
		return fault.ErrInvalidSignature
	}
	return nil
}

func (c *Compact) hash(message string) (chainhash.Hash, error) {
	buffer := bytes.Buffer{}
	if err := wire.WriteVarString(&buffer, 0, c.magic); nil != err {
		return chainhash.Hash{}, err
	}
	if err := wire.WriteVarString(&buffer, 0, message); nil != err {
		return chainhash.Hash{}, err
	}
	return chainhash.DoubleHashH(buffer.Bytes()), nil
}
