// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"encoding/binary"
	"fmt"
	"net/netip"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/clock"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/signer"
)

// Now - fixed time used as the chain tip time
var Now = time.Unix(1600000000, 0)

// Params - the testing network, ordinary address rules apply
func Params() *chain.Params {
	p, _ := chain.Get(chain.Testing)
	return p
}

// Key - deterministic private key
func Key(n int) *btcec.PrivateKey {
	seed := make([]byte, 32)
	binary.BigEndian.PutUint64(seed[24:], uint64(n)+1)
	k, _ := btcec.PrivKeyFromBytes(seed)
	return k
}

// Outpoint - deterministic collateral outpoint
func Outpoint(n int) wire.OutPoint {
	return wire.OutPoint{
		Hash:  chainhash.DoubleHashH([]byte(fmt.Sprintf("collateral-%d", n))),
		Index: uint32(n % 3),
	}
}

// Address - distinct routable address
func Address(n int, port uint16) netip.AddrPort {
	a := netip.AddrFrom4([4]byte{93, 184, byte(n / 250), byte(n%250 + 1)})
	return netip.AddrPortFrom(a, port)
}

// Sync - settable masternode.SyncStatus
type Sync struct {
	sync.Mutex
	BlockchainSynced bool
	ListSynced       bool
	WinnersSynced    bool
	Synced           bool
	Added            int
	Votes            int
}

// FullySynced - every stage complete
func FullySynced() *Sync {
	return &Sync{
		BlockchainSynced: true,
		ListSynced:       true,
		WinnersSynced:    true,
		Synced:           true,
	}
}

func (s *Sync) IsBlockchainSynced() bool  { s.Lock(); defer s.Unlock(); return s.BlockchainSynced }
func (s *Sync) IsListSynced() bool        { s.Lock(); defer s.Unlock(); return s.ListSynced }
func (s *Sync) IsSynced() bool            { s.Lock(); defer s.Unlock(); return s.Synced }
func (s *Sync) IsWinnersListSynced() bool { s.Lock(); defer s.Unlock(); return s.WinnersSynced }
func (s *Sync) AddedList()                { s.Lock(); s.Added += 1; s.Unlock() }
func (s *Sync) AddedPaymentVote()         { s.Lock(); s.Votes += 1; s.Unlock() }

// Self - settable masternode.Self
type Self struct {
	Key     *btcec.PublicKey
	Private *btcec.PrivateKey
	Active  *wire.OutPoint
	Addr    netip.AddrPort
}

// SetNode - run as an active node
func (s *Self) SetNode(n *Node) {
	s.Private = n.Keys.Operational
	s.Key = n.Keys.Operational.PubKey()
	op := n.Outpoint
	s.Active = &op
	s.Addr = n.Address
}

func (s *Self) Service() netip.AddrPort {
	return s.Addr
}

func (s *Self) OperationalPrivateKey() *btcec.PrivateKey {
	return s.Private
}

func (s *Self) OperationalKey() *btcec.PublicKey {
	return s.Key
}

func (s *Self) Outpoint() (wire.OutPoint, bool) {
	if nil == s.Active {
		return wire.OutPoint{}, false
	}
	return *s.Active, true
}

// NewEnv - validation environment over an in memory chain
//
// the test logger must already be set up
func NewEnv(c *Chain, clk clock.Clock) *masternode.Env {
	return &masternode.Env{
		Log:    logger.New(LogCategory),
		Chain:  c,
		Params: Params(),
		Signer: signer.New(signer.DefaultMagic),
		Clock:  clk,
		Sync:   FullySynced(),
		Self:   &Self{},
	}
}

// Node - keys and collateral of one test libernode
type Node struct {
	N        int
	Outpoint wire.OutPoint
	Address  netip.AddrPort
	Keys     masternode.Keys
}

// NewNode - deterministic node n on the testing network port
func NewNode(n int) *Node {
	return &Node{
		N:        n,
		Outpoint: Outpoint(n),
		Address:  Address(n, Params().DefaultPort),
		Keys: masternode.Keys{
			Collateral:  Key(2 * n),
			Operational: Key(2*n + 1),
		},
	}
}

// Fund - create the collateral coin at a height
func (n *Node) Fund(c *Chain, height int32) *Node {
	c.AddCoin(n.Outpoint, Params().Collateral, height, signer.PayToKey(n.Keys.Collateral.PubKey()))
	return n
}

// Broadcast - signed broadcast at the environment's current time
func (n *Node) Broadcast(env *masternode.Env) *masternode.Broadcast {
	b, err := masternode.CreateBroadcast(env, n.Outpoint, n.Address, n.Keys)
	if nil != err {
		panic(err)
	}
	return b
}

// Ping - signed ping at the environment's current time
func (n *Node) Ping(env *masternode.Env) *masternode.Ping {
	p, err := masternode.NewPing(n.Outpoint, env.Chain)
	if nil != err {
		panic(err)
	}
	if err := p.Sign(env.Signer, n.Keys.Operational, env.Now()); nil != err {
		panic(err)
	}
	return p
}
