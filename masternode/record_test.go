// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"

	"github.com/libercoinproject/libercoin-old/fixtures"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/signer"
)

var census = masternode.Census{Size: 10}

func TestCheckNewRecordIsPreEnabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	_, r := s.record(1)

	r.Check(s.env, census, true)
	assert.Equal(t, masternode.PreEnabled, r.State, "wrong state for a fresh broadcast")
}

func TestCheckEnabledAfterSecondPing(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)

	s.clock.Advance(11 * time.Minute)
	r.LastPing = node.Ping(s.env)
	r.Check(s.env, census, true)
	assert.Equal(t, masternode.Enabled, r.State, "wrong state")
	assert.True(t, r.IsValidForPayment(), "enabled record not valid for payment")
}

func TestCheckExpired(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	_, r := s.record(1)

	s.clock.Advance(70 * time.Minute)
	r.Check(s.env, census, true)
	assert.Equal(t, masternode.Expired, r.State, "70 minute old ping should expire")
	assert.True(t, r.State.IsValidForAutoStart(), "expired should allow auto start")
	assert.False(t, r.IsValidForPayment(), "expired record valid for payment")
}

func TestCheckNewStartRequired(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	_, r := s.record(1)

	s.clock.Advance(181 * time.Minute)
	r.Check(s.env, census, true)
	assert.Equal(t, masternode.NewStartRequired, r.State, "wrong state")
	assert.False(t, r.State.IsValidForAutoStart(), "new start required allows auto start")
}

func TestCheckWatchdogExpired(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)

	s.clock.Advance(121 * time.Minute)
	r.LastPing = node.Ping(s.env)

	r.Check(s.env, masternode.Census{Size: 10, WatchdogActive: true}, true)
	assert.Equal(t, masternode.WatchdogExpired, r.State, "stale watchdog vote not detected")

	r.Check(s.env, census, true)
	assert.Equal(t, masternode.Enabled, r.State, "watchdog inactive should not expire")

	r.UpdateWatchdogVoteTime(s.env.Now())
	r.Check(s.env, masternode.Census{Size: 10, WatchdogActive: true}, true)
	assert.Equal(t, masternode.Enabled, r.State, "fresh watchdog vote should not expire")
}

func TestCheckUpdateRequired(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	_, r := s.record(1)
	r.Protocol = 70000

	r.Check(s.env, census, true)
	assert.Equal(t, masternode.UpdateRequired, r.State, "old protocol accepted")
}

func TestCheckOutpointSpentIsTerminal(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)

	s.chain.Spend(node.Outpoint)
	r.Check(s.env, census, true)
	assert.Equal(t, masternode.OutpointSpent, r.State, "spent collateral not detected")

	node.Fund(s.chain, 100)
	r.Check(s.env, census, true)
	assert.Equal(t, masternode.OutpointSpent, r.State, "spent state is not terminal")
}

func TestCheckBusyChainKeepsState(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)
	r.State = masternode.Enabled

	s.chain.SetBusy(true)
	s.chain.Spend(node.Outpoint)
	r.Check(s.env, census, true)
	assert.Equal(t, masternode.Enabled, r.State, "state changed while chain busy")
}

func TestCheckRateLimited(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)

	r.Check(s.env, census, false)
	assert.Equal(t, masternode.PreEnabled, r.State, "wrong initial state")

	s.chain.Spend(node.Outpoint)
	s.clock.Advance(2 * time.Second)
	r.Check(s.env, census, false)
	assert.Equal(t, masternode.PreEnabled, r.State, "check ran inside the interval")

	s.clock.Advance(4 * time.Second)
	r.Check(s.env, census, false)
	assert.Equal(t, masternode.OutpointSpent, r.State, "check did not run after the interval")
}

func TestCheckPoSeBan(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	_, r := s.record(1)

	r.PoSeBan()
	r.Check(s.env, census, true)
	assert.Equal(t, masternode.PoSeBan, r.State, "not banned")
	assert.Equal(t, int32(tipHeight+10), r.PoSeBanHeight, "wrong ban height")

	s.chain.Extend(5)
	r.Check(s.env, census, true)
	assert.Equal(t, masternode.PoSeBan, r.State, "unbanned too early")
	assert.Equal(t, int32(masternode.PoSeBanMaxScore), r.PoSeBanScore, "score changed while banned")

	s.chain.Extend(5)
	r.Check(s.env, census, true)
	assert.Equal(t, int32(masternode.PoSeBanMaxScore-1), r.PoSeBanScore, "score not decreased on unban")
	assert.Equal(t, masternode.PreEnabled, r.State, "wrong state after unban")
}

func TestCheckWaitsForPingWhileListSyncing(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	_, r := s.record(1)

	s.sync.ListSynced = false
	s.clock.Advance(200 * time.Minute)
	r.State = masternode.Enabled

	r.Check(s.env, census, true)
	assert.Equal(t, masternode.PreEnabled, r.State, "demoted while waiting for a ping")

	r.State = masternode.Expired
	r.Check(s.env, census, true)
	assert.Equal(t, masternode.Expired, r.State, "expired record changed while waiting for a ping")
}

func TestCheckOwnNodeIsNotHeld(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)
	s.env.Self = &fixtures.Self{Key: node.Keys.Operational.PubKey()}

	s.sync.ListSynced = false
	s.clock.Advance(200 * time.Minute)
	r.Check(s.env, census, true)
	assert.Equal(t, masternode.NewStartRequired, r.State, "own node held while waiting for ping")
}

func TestCheckAlwaysDecides(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i += 1 {
		r.State = masternode.State(rnd.Intn(8))
		r.PoSeBanScore = int32(rnd.Intn(11) - 5)
		r.PoSeBanHeight = int32(tipHeight - 5 + rnd.Intn(10))
		r.Protocol = []int32{70000, 90046}[rnd.Intn(2)]
		r.LastWatchdogVote = s.env.Now() - int64(rnd.Intn(10000))
		s.sync.ListSynced = 0 == rnd.Intn(2)
		s.sync.Synced = s.sync.ListSynced
		if 0 == rnd.Intn(5) {
			s.chain.Spend(node.Outpoint)
		} else {
			node.Fund(s.chain, 100)
		}
		s.clock.Advance(time.Duration(rnd.Intn(3600)) * time.Second)

		r.Check(s.env, masternode.Census{Size: rnd.Intn(20), WatchdogActive: 0 == rnd.Intn(2)}, true)
		assert.True(t, r.State >= masternode.PreEnabled && r.State <= masternode.PoSeBan, "undefined state: %d", r.State)
		assert.NotEqual(t, "UNKNOWN", r.State.String(), "state without a name")
	}
}

func TestPoSeBanScoreBounds(t *testing.T) {
	r := &masternode.Record{}

	for i := 0; i < 20; i += 1 {
		r.IncreasePoSeBanScore()
	}
	assert.Equal(t, int32(masternode.PoSeBanMaxScore), r.PoSeBanScore, "score above maximum")

	for i := 0; i < 20; i += 1 {
		r.DecreasePoSeBanScore()
	}
	assert.Equal(t, int32(-masternode.PoSeBanMaxScore), r.PoSeBanScore, "score below minimum")
	assert.True(t, r.IsPoSeVerified(), "minimum score is not verified")
}

func TestUpdateFromBroadcast(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)
	r.PoSeBanScore = 3

	older := node.Broadcast(s.env)
	updated, _ := r.UpdateFromBroadcast(older, s.env, census)
	assert.False(t, updated, "same time broadcast accepted")

	s.clock.Advance(20 * time.Minute)
	newer := node.Broadcast(s.env)
	newer.Address = fixtures.Address(77, fixtures.Params().DefaultPort)
	assert.Nil(t, newer.Sign(s.env.Signer, node.Keys.Collateral, s.env.Now()), "wrong sign error")

	updated, self := r.UpdateFromBroadcast(newer, s.env, census)
	assert.True(t, updated, "newer broadcast rejected")
	assert.Equal(t, masternode.NotSelf, self, "wrong self result")
	assert.Equal(t, newer.Address, r.Address, "address not updated")
	assert.Equal(t, newer.SigTime, r.SigTime, "time not updated")
	assert.Equal(t, int32(0), r.PoSeBanScore, "ban score not reset")
}

func TestUpdateFromOwnBroadcast(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)
	s.env.Self = &fixtures.Self{Key: node.Keys.Operational.PubKey()}

	s.clock.Advance(20 * time.Minute)
	updated, self := r.UpdateFromBroadcast(node.Broadcast(s.env), s.env, census)
	assert.True(t, updated, "own broadcast rejected")
	assert.Equal(t, masternode.SelfCurrent, self, "wrong self result")
	assert.Equal(t, int32(-masternode.PoSeBanMaxScore), r.PoSeBanScore, "own node not trusted")

	s.clock.Advance(20 * time.Minute)
	b := node.Broadcast(s.env)
	b.Protocol = 90000
	assert.Nil(t, b.Sign(s.env.Signer, node.Keys.Collateral, s.env.Now()), "wrong sign error")
	updated, self = r.UpdateFromBroadcast(b, s.env, census)
	assert.False(t, updated, "outdated own broadcast should not relay")
	assert.Equal(t, masternode.SelfOutdated, self, "wrong self result")
}

func TestCollateralAge(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)

	assert.Equal(t, int32(tipHeight-100), r.CollateralAge(s.chain), "wrong age")

	// cached after the first lookup
	s.chain.Spend(node.Outpoint)
	s.chain.Extend(3)
	assert.Equal(t, int32(tipHeight-97), r.CollateralAge(s.chain), "wrong cached age")
}

type votes map[int32][]byte

func (v votes) HasPayeeWithVotes(height int32, payee []byte, n int) bool {
	p, ok := v[height]
	return ok && string(p) == string(payee)
}

func TestUpdateLastPaid(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)
	payee := signer.PayToKey(node.Keys.Collateral.PubKey())

	reward := btcutil.Amount(50 * btcutil.SatoshiPerBitcoin)
	payment := s.env.Params.NodePayment(190, reward)
	s.chain.SetCoinbase(190, []*wire.TxOut{
		wire.NewTxOut(int64(reward-payment), []byte{0x51}),
		wire.NewTxOut(int64(payment), payee),
	})
	s.chain.SetCoinbase(195, []*wire.TxOut{
		wire.NewTxOut(int64(reward), []byte{0x51}),
	})

	r.UpdateLastPaid(s.chain, s.env.Params, votes{190: payee, 195: payee}, 100)
	assert.Equal(t, int32(190), r.LastPaidBlock, "wrong last paid block")
	assert.NotEqual(t, int64(0), r.LastPaidTime, "last paid time not set")

	r.LastPaidBlock = 0
	r.UpdateLastPaid(s.chain, s.env.Params, votes{190: payee}, 5)
	assert.Equal(t, int32(0), r.LastPaidBlock, "scanned beyond the limit")
}

func TestRecordPacking(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	_, r := s.record(3)
	r.LastPaidBlock = 150
	r.PoSeBanScore = -2
	r.State = masternode.Enabled

	actual, err := masternode.UnpackRecord(r.Pack())
	assert.Nil(t, err, "wrong unpack error")
	assert.Equal(t, r.Pack(), actual.Pack(), "wrong record")
	assert.Equal(t, r.Address, actual.Address, "wrong address")
	assert.True(t, r.CollateralKey.IsEqual(actual.CollateralKey), "wrong collateral key")
	assert.Equal(t, r.LastPing.Hash(), actual.LastPing.Hash(), "wrong ping")
}
