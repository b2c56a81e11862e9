// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode_test

import (
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"

	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/fixtures"
	"github.com/libercoinproject/libercoin-old/masternode"
)

func TestPingAccepted(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)

	s.clock.Advance(11 * time.Minute)
	p := node.Ping(s.env)
	dos, err := p.CheckAndUpdate(r, false, s.env, census)
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, 0, dos, "wrong dos")
	assert.Equal(t, p, r.LastPing, "last ping not replaced")
	assert.Equal(t, masternode.Enabled, r.State, "wrong state")
}

func TestPingNotEnabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)

	s.clock.Advance(9*time.Minute + 30*time.Second)
	p := node.Ping(s.env)
	_, err := p.CheckAndUpdate(r, false, s.env, census)
	assert.Equal(t, fault.ErrNodeNotEnabled, err, "wrong error")
	assert.Equal(t, p, r.LastPing, "ping not stored")
	assert.Equal(t, masternode.PreEnabled, r.State, "wrong state")
}

func TestPingTooEarly(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)
	first := r.LastPing

	s.clock.Advance(5 * time.Minute)
	_, err := node.Ping(s.env).CheckAndUpdate(r, false, s.env, census)
	assert.Equal(t, fault.ErrPingTooEarly, err, "early ping accepted")
	assert.Equal(t, first, r.LastPing, "early ping stored")
}

func TestPingFailures(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)
	s.clock.Advance(11 * time.Minute)

	// unknown block
	p := node.Ping(s.env)
	p.BlockHash = chainhash.DoubleHashH([]byte("fork"))
	dos, err := p.CheckAndUpdate(r, false, s.env, census)
	assert.Equal(t, fault.ErrUnknownBlockHash, err, "unknown block accepted")
	assert.Equal(t, 0, dos, "unknown block must not be penalised")

	// old block
	p = node.Ping(s.env)
	p.BlockHash = fixtures.BlockHashAt(tipHeight - masternode.PingBlockDepth - 1)
	assert.Nil(t, p.Sign(s.env.Signer, node.Keys.Operational, s.env.Now()), "wrong sign error")
	_, err = p.CheckAndUpdate(r, false, s.env, census)
	assert.Equal(t, fault.ErrBlockHashTooOld, err, "old block accepted")

	// future
	p = node.Ping(s.env)
	assert.Nil(t, p.Sign(s.env.Signer, node.Keys.Operational, s.env.Now()+7200), "wrong sign error")
	dos, err = p.CheckAndUpdate(r, false, s.env, census)
	assert.Equal(t, fault.ErrSignatureInFuture, err, "future ping accepted")
	assert.Equal(t, 1, dos, "wrong dos")

	// wrong key
	p = node.Ping(s.env)
	assert.Nil(t, p.Sign(s.env.Signer, node.Keys.Collateral, s.env.Now()), "wrong sign error")
	dos, err = p.CheckAndUpdate(r, false, s.env, census)
	assert.Equal(t, fault.ErrInvalidSignature, err, "bad signature accepted")
	assert.Equal(t, 33, dos, "wrong dos")

	// no record
	_, err = node.Ping(s.env).CheckAndUpdate(nil, false, s.env, census)
	assert.Equal(t, fault.ErrNodeNotFound, err, "ping without record accepted")
}

func TestPingRejectedByState(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)
	s.clock.Advance(11 * time.Minute)

	r.State = masternode.UpdateRequired
	_, err := node.Ping(s.env).CheckAndUpdate(r, false, s.env, census)
	assert.Equal(t, fault.ErrStateUpdateRequired, err, "wrong error")

	r.State = masternode.NewStartRequired
	_, err = node.Ping(s.env).CheckAndUpdate(r, false, s.env, census)
	assert.Equal(t, fault.ErrStateNewStartRequired, err, "wrong error")

	_, err = node.Ping(s.env).CheckAndUpdate(r, true, s.env, census)
	assert.Nil(t, err, "ping from a new broadcast should be accepted")
}

func TestPingExtendsListSync(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := newSetup()
	node, r := s.record(1)
	s.sync.ListSynced = false

	s.clock.Advance(40 * time.Minute)
	_, _ = node.Ping(s.env).CheckAndUpdate(r, false, s.env, census)
	assert.Equal(t, 1, s.sync.Added, "list sync not extended")
}

func TestPingExpiry(t *testing.T) {
	p := &masternode.Ping{SigTime: 1000}
	assert.False(t, p.IsExpired(1000+3*3600), "expired too early")
	assert.True(t, p.IsExpired(1001+3*3600), "not expired")
	assert.True(t, (*masternode.Ping)(nil).IsEmpty(), "nil ping is not empty")
}
