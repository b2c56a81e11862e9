// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode_test

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/fixtures"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/signer"
)

func TestCreateBroadcast(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node := fixtures.NewNode(1)

	b, err := masternode.CreateBroadcast(s.env, node.Outpoint, node.Address, node.Keys)
	assert.Nil(t, err, "wrong create error")
	assert.Equal(t, s.env.Now(), b.SigTime, "wrong signature time")
	assert.Equal(t, int32(chain.ProtocolVersion), b.Protocol, "wrong protocol")
	assert.Equal(t, fixtures.BlockHashAt(tipHeight-masternode.PingBlockOffset), b.LastPing.BlockHash, "wrong ping block")

	dos, err := b.CheckSignature(s.env.Signer)
	assert.Nil(t, err, "wrong signature error")
	assert.Equal(t, 0, dos, "wrong dos")
}

func TestCreateBroadcastErrors(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node := fixtures.NewNode(1)

	_, err := masternode.CreateBroadcast(s.env, node.Outpoint, fixtures.Address(1, s.env.Params.MainnetPort), node.Keys)
	assert.NotNil(t, err, "mainnet port accepted on testing network")
	assert.Contains(t, err.Error(), "Invalid port", "wrong error")

	private := netip.MustParseAddrPort("192.168.1.2:18255")
	_, err = masternode.CreateBroadcast(s.env, node.Outpoint, private, node.Keys)
	assert.NotNil(t, err, "private address accepted")
	assert.Contains(t, err.Error(), "Invalid IP address", "wrong error")

	short := fixtures.NewChain(5, fixtures.Now)
	_, err = masternode.CreateBroadcast(fixtures.NewEnv(short, s.clock), node.Outpoint, node.Address, node.Keys)
	assert.NotNil(t, err, "ping created on a short chain")
	assert.Contains(t, err.Error(), "Failed to create ping", "wrong error")

	main, err := chain.Get(chain.Libercoin)
	assert.Nil(t, err, "wrong chain error")
	s.env.Params = main
	_, err = masternode.CreateBroadcast(s.env, node.Outpoint, fixtures.Address(1, 18255), node.Keys)
	assert.NotNil(t, err, "testing port accepted on mainnet")
	assert.Contains(t, err.Error(), "only 8255 is supported", "wrong error")
}

func TestBroadcastSimpleCheck(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node := fixtures.NewNode(1)

	b := node.Broadcast(s.env)
	dos, err := b.SimpleCheck(s.env)
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, 0, dos, "wrong dos")
	assert.Equal(t, masternode.Enabled, b.State(), "wrong state")

	b.LastPing = nil
	dos, err = b.SimpleCheck(s.env)
	assert.Nil(t, err, "missing ping should not fail")
	assert.Equal(t, 0, dos, "wrong dos")
	assert.Equal(t, masternode.Expired, b.State(), "missing ping should mark expired")
}

func TestBroadcastSimpleCheckFailures(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node := fixtures.NewNode(1)

	type testItem struct {
		name   string
		modify func(*masternode.Broadcast)
		dos    int
		err    error
	}
	items := []testItem{
		{
			name:   "private address",
			modify: func(b *masternode.Broadcast) { b.Address = netip.MustParseAddrPort("10.0.0.1:18255") },
			err:    fault.ErrInvalidAddress,
		},
		{
			name:   "future",
			modify: func(b *masternode.Broadcast) { b.SigTime = s.env.Now() + 7200 },
			dos:    1,
			err:    fault.ErrSignatureInFuture,
		},
		{
			name:   "old protocol",
			modify: func(b *masternode.Broadcast) { b.Protocol = 70000 },
			err:    fault.ErrInvalidProtocolVersion,
		},
		{
			name:   "missing key",
			modify: func(b *masternode.Broadcast) { b.OperationalKey = nil },
			dos:    100,
			err:    fault.ErrInvalidKeySize,
		},
		{
			name:   "script sig",
			modify: func(b *masternode.Broadcast) { b.ScriptSig = []byte{0x01} },
			dos:    100,
			err:    fault.ErrInvalidScriptSig,
		},
	}

	for _, item := range items {
		b := node.Broadcast(s.env)
		item.modify(b)
		dos, err := b.SimpleCheck(s.env)
		assert.Equal(t, item.err, err, "%s: wrong error", item.name)
		assert.Equal(t, item.dos, dos, "%s: wrong dos", item.name)
	}

	b := node.Broadcast(s.env)
	b.Address = fixtures.Address(1, s.env.Params.MainnetPort)
	_, err := b.SimpleCheck(s.env)
	assert.ErrorIs(t, err, fault.ErrInvalidPort, "mainnet port accepted")
}

func TestBroadcastCheckOutpoint(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node := fixtures.NewNode(1).Fund(s.chain, 100)

	b := node.Broadcast(s.env)
	dos, err := b.CheckOutpoint(s.env)
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, 0, dos, "wrong dos")
}

func TestBroadcastCheckOutpointFailures(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node := fixtures.NewNode(1)
	other := fixtures.NewNode(2)
	script := signer.PayToKey(node.Keys.Collateral.PubKey())

	// missing
	b := node.Broadcast(s.env)
	dos, err := b.CheckOutpoint(s.env)
	assert.Equal(t, fault.ErrCoinNotFound, err, "missing coin accepted")
	assert.Equal(t, 0, dos, "wrong dos")
	assert.True(t, fault.IsTransient(err), "missing coin should be transient")

	// busy
	node.Fund(s.chain, 100)
	s.chain.SetBusy(true)
	_, err = b.CheckOutpoint(s.env)
	assert.Equal(t, fault.ErrChainBusy, err, "busy chain accepted")
	assert.True(t, fault.IsTransient(err), "busy chain should be transient")
	s.chain.SetBusy(false)

	// amount
	s.chain.AddCoin(node.Outpoint, s.env.Params.Collateral-1, 100, script)
	_, err = b.CheckOutpoint(s.env)
	assert.Equal(t, fault.ErrInvalidCollateralAmount, err, "wrong amount accepted")

	// key
	s.chain.AddCoin(node.Outpoint, s.env.Params.Collateral, 100, signer.PayToKey(other.Keys.Collateral.PubKey()))
	dos, err = b.CheckOutpoint(s.env)
	assert.Equal(t, fault.ErrCollateralKeyMismatch, err, "foreign collateral accepted")
	assert.Equal(t, 33, dos, "wrong dos")

	// signature
	s.chain.AddCoin(node.Outpoint, s.env.Params.Collateral, 100, script)
	b.Protocol += 1
	dos, err = b.CheckOutpoint(s.env)
	assert.Equal(t, fault.ErrInvalidSignature, err, "bad signature accepted")
	assert.Equal(t, 100, dos, "wrong dos")
}

func TestBroadcastCheckOutpointConfirmations(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	params := *s.env.Params
	params.MinimumConfirmations = 15
	s.env.Params = &params

	node := fixtures.NewNode(1).Fund(s.chain, tipHeight-5)
	b := node.Broadcast(s.env)
	dos, err := b.CheckOutpoint(s.env)
	assert.Equal(t, fault.ErrCollateralTooNew, err, "young collateral accepted")
	assert.Equal(t, 0, dos, "wrong dos")
	assert.True(t, fault.IsTransient(err), "young collateral should be transient")

	// confirmed at the tip, which is timed now, but signed an hour earlier
	node.Fund(s.chain, tipHeight-14)
	assert.Nil(t, b.Sign(s.env.Signer, node.Keys.Collateral, s.env.Now()-3600), "wrong sign error")
	_, err = b.CheckOutpoint(s.env)
	assert.Equal(t, fault.ErrOlderBroadcast, err, "backdated broadcast accepted")
}

func TestBroadcastCheckOutpointSelf(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node := fixtures.NewNode(1).Fund(s.chain, 100)
	s.env.Self = &fixtures.Self{
		Key:    node.Keys.Operational.PubKey(),
		Active: &node.Outpoint,
	}

	_, err := node.Broadcast(s.env).CheckOutpoint(s.env)
	assert.Equal(t, fault.ErrSelfBroadcast, err, "own active broadcast processed")
}

func TestBroadcastPacking(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	b := fixtures.NewNode(4).Broadcast(s.env)

	actual, err := masternode.UnpackBroadcast(b.Pack())
	assert.Nil(t, err, "wrong unpack error")
	assert.Equal(t, b.Hash(), actual.Hash(), "wrong hash")
	assert.Equal(t, b.Address, actual.Address, "wrong address")
	assert.Equal(t, b.LastPing.Hash(), actual.LastPing.Hash(), "wrong ping")

	_, err = actual.CheckSignature(s.env.Signer)
	assert.Nil(t, err, "signature lost in transit")

	_, err = masternode.UnpackBroadcast(b.Pack()[:40])
	assert.NotNil(t, err, "truncated broadcast accepted")
}

func TestBroadcastHashIgnoresPing(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node := fixtures.NewNode(1)
	b := node.Broadcast(s.env)
	h := b.Hash()

	s.clock.Advance(time.Minute)
	b.LastPing = node.Ping(s.env)
	assert.Equal(t, h, b.Hash(), "hash depends on the ping")
}
