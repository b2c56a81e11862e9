// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"bytes"
	"fmt"
	"io"
	"net/netip"
	"strconv"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/network"
	"github.com/libercoinproject/libercoin-old/signer"
)

// Broadcast - signed announcement of a node identity
type Broadcast struct {
	Outpoint       wire.OutPoint
	Address        netip.AddrPort
	CollateralKey  *btcec.PublicKey
	OperationalKey *btcec.PublicKey
	Protocol       int32
	SigTime        int64
	Signature      []byte
	LastPing       *Ping

	// input script of the claimed collateral, must be empty
	ScriptSig []byte

	// set locally to force reprocessing of an already seen broadcast
	Recovery bool

	// initial state for a record created from this broadcast
	state State
}

// Keys - secrets needed to create a broadcast
type Keys struct {
	Collateral  *btcec.PrivateKey
	Operational *btcec.PrivateKey
}

// CreateBroadcast - build and sign a broadcast with a fresh ping
func CreateBroadcast(env *Env, outpoint wire.OutPoint, address netip.AddrPort, keys Keys) (*Broadcast, error) {
	if err := env.Params.CheckPort(address.Port()); nil != err {
		if env.Params.IsMainnet() {
			return nil, fmt.Errorf("Invalid port %d for libernode %s, only %d is supported on mainnet.", address.Port(), address, env.Params.MainnetPort)
		}
		return nil, fmt.Errorf("Invalid port %d for libernode %s, %d is the only supported on mainnet.", address.Port(), address, env.Params.MainnetPort)
	}

	ping, err := NewPing(outpoint, env.Chain)
	if nil != err {
		return nil, fmt.Errorf("Failed to create ping, libernode=%s: %s", ShortString(outpoint), err)
	}
	if err := ping.Sign(env.Signer, keys.Operational, env.Now()); nil != err {
		return nil, fmt.Errorf("Failed to sign ping, libernode=%s", ShortString(outpoint))
	}

	b := &Broadcast{
		Outpoint:       outpoint,
		Address:        address,
		CollateralKey:  keys.Collateral.PubKey(),
		OperationalKey: keys.Operational.PubKey(),
		Protocol:       chain.ProtocolVersion,
		state:          Enabled,
	}
	if !IsValidAddress(address, env.Params) {
		return nil, fmt.Errorf("Invalid IP address, libernode=%s", ShortString(outpoint))
	}

	b.LastPing = ping
	if err := b.Sign(env.Signer, keys.Collateral, env.Now()); nil != err {
		return nil, fmt.Errorf("Failed to sign broadcast, libernode=%s", ShortString(outpoint))
	}
	return b, nil
}

// IsValidAddress - any address on regtest, otherwise a routable IPv4 address
func IsValidAddress(address netip.AddrPort, params *chain.Params) bool {
	return params.Regtest || network.IsRoutable(address)
}

// Hash - identity, a re-signed broadcast is a different message
func (b *Broadcast) Hash() chainhash.Hash {
	buffer := bytes.Buffer{}
	_ = WriteOutpoint(&buffer, b.Outpoint)
	_ = writeKey(&buffer, b.CollateralKey)
	_ = writeInts(&buffer, b.SigTime)
	return chainhash.DoubleHashH(buffer.Bytes())
}

func (b *Broadcast) message() string {
	return b.Address.String() +
		strconv.FormatInt(b.SigTime, 10) +
		signer.KeyIDOf(b.CollateralKey).String() +
		signer.KeyIDOf(b.OperationalKey).String() +
		strconv.FormatInt(int64(b.Protocol), 10)
}

// Sign - stamp with the current time and sign with the collateral key
func (b *Broadcast) Sign(s signer.MessageSigner, key *btcec.PrivateKey, now int64) error {
	b.SigTime = now
	sig, err := s.Sign(key, b.message())
	if nil != err {
		return fault.ErrSignatureFailed
	}
	if err := s.Verify(b.CollateralKey, sig, b.message()); nil != err {
		return fault.ErrSignatureFailed
	}
	b.Signature = sig
	return nil
}

// CheckSignature - signed by the collateral key
func (b *Broadcast) CheckSignature(s signer.MessageSigner) (int, error) {
	if nil == b.CollateralKey || nil == b.OperationalKey {
		return dosBadSignature, fault.ErrInvalidKey
	}
	if err := s.Verify(b.CollateralKey, b.Signature, b.message()); nil != err {
		return dosBadSignature, fault.ErrInvalidSignature
	}
	return 0, nil
}

// State - state a new record takes, valid after SimpleCheck
func (b *Broadcast) State() State {
	return b.state
}

// SimpleCheck - structural validation, no chain access apart from the ping block
func (b *Broadcast) SimpleCheck(env *Env) (int, error) {
	b.state = Enabled

	if !IsValidAddress(b.Address, env.Params) {
		return 0, fault.ErrInvalidAddress
	}

	if b.SigTime > env.Now()+seconds(FutureSignatureWindow) {
		return dosFutureSignature, fault.ErrSignatureInFuture
	}

	// one of us is probably forked, mark expired and check the rest
	if b.LastPing.IsEmpty() {
		b.state = Expired
	} else if _, err := b.LastPing.SimpleCheck(env); nil != err {
		b.state = Expired
	}

	if b.Protocol < env.MinPaymentsProtocol() {
		return 0, fault.ErrInvalidProtocolVersion
	}

	if nil == b.CollateralKey || signer.P2PKHScriptSize != len(signer.PayToKey(b.CollateralKey)) {
		return dosWrongKeySize, fault.ErrInvalidKeySize
	}
	if nil == b.OperationalKey || signer.P2PKHScriptSize != len(signer.PayToKey(b.OperationalKey)) {
		return dosWrongKeySize, fault.ErrInvalidKeySize
	}

	if 0 != len(b.ScriptSig) {
		return dosScriptSig, fault.ErrInvalidScriptSig
	}

	if err := env.Params.CheckPort(b.Address.Port()); nil != err {
		return 0, err
	}

	return 0, nil
}

// CheckOutpoint - chain backed validation of the collateral
//
// transient failures are reported with errors for which
// fault.IsTransient is true, the caller must then forget the
// broadcast so that it can be checked again later
func (b *Broadcast) CheckOutpoint(env *Env) (int, error) {

	// already activated with this outpoint and key, nothing to do
	if env.IsSelfActive(b.Outpoint, b.OperationalKey) {
		return 0, fault.ErrSelfBroadcast
	}

	if dos, err := b.CheckSignature(env.Signer); nil != err {
		return dos, err
	}

	coin, err := env.Chain.Coin(b.Outpoint)
	if nil != err {
		return 0, err
	}
	if coin.Value != env.Params.Collateral {
		return 0, fault.ErrInvalidCollateralAmount
	}

	height := env.Chain.Height()
	if height-coin.Height+1 < env.Params.MinimumConfirmations {
		return 0, fault.ErrCollateralTooNew
	}

	if !bytes.Equal(coin.PkScript, signer.PayToKey(b.CollateralKey)) {
		return dosKeyMismatch, fault.ErrCollateralKeyMismatch
	}

	// signature must not predate the block giving the minimum confirmations
	confirmed, err := env.Chain.BlockTime(coin.Height + env.Params.MinimumConfirmations - 1)
	if nil == err && confirmed.Unix() > b.SigTime {
		return 0, fault.ErrOlderBroadcast
	}

	return 0, nil
}

// Pack - binary form as relayed between peers
func (b *Broadcast) Pack() []byte {
	buffer := bytes.Buffer{}
	_ = b.write(&buffer)
	return buffer.Bytes()
}

// UnpackBroadcast - decode a relayed broadcast
func UnpackBroadcast(payload []byte) (*Broadcast, error) {
	return readBroadcast(bytes.NewReader(payload))
}

func (b *Broadcast) write(w io.Writer) error {
	if err := WriteOutpoint(w, b.Outpoint); nil != err {
		return err
	}
	if err := wire.WriteVarBytes(w, 0, b.ScriptSig); nil != err {
		return err
	}
	if err := network.WriteAddress(w, b.Address); nil != err {
		return err
	}
	if err := writeKey(w, b.CollateralKey); nil != err {
		return err
	}
	if err := writeKey(w, b.OperationalKey); nil != err {
		return err
	}
	if err := wire.WriteVarBytes(w, 0, b.Signature); nil != err {
		return err
	}
	if err := writeInts(w, b.SigTime, b.Protocol); nil != err {
		return err
	}
	ping := b.LastPing
	if nil == ping {
		ping = &Ping{}
	}
	return ping.write(w)
}

func readBroadcast(r io.Reader) (*Broadcast, error) {
	b := &Broadcast{
		state: Enabled,
	}
	var err error
	if b.Outpoint, err = ReadOutpoint(r); nil != err {
		return nil, err
	}
	if b.ScriptSig, err = wire.ReadVarBytes(r, 0, maxFieldSize, "script sig"); nil != err {
		return nil, err
	}
	if 0 == len(b.ScriptSig) {
		b.ScriptSig = nil
	}
	if b.Address, err = network.ReadAddress(r); nil != err {
		return nil, err
	}
	if b.CollateralKey, err = readKey(r); nil != err {
		return nil, err
	}
	if b.OperationalKey, err = readKey(r); nil != err {
		return nil, err
	}
	if b.Signature, err = wire.ReadVarBytes(r, 0, maxFieldSize, "broadcast signature"); nil != err {
		return nil, err
	}
	if err := readInts(r, &b.SigTime, &b.Protocol); nil != err {
		return nil, err
	}
	ping, err := readPing(r)
	if nil != err {
		return nil, err
	}
	if !ping.IsEmpty() {
		b.LastPing = ping
	}
	return b, nil
}

// Copy - shallow copy, pings and keys are immutable once created
func (b *Broadcast) Copy() *Broadcast {
	c := *b
	return &c
}
