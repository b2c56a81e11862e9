// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/libercoinproject/libercoin-old/fixtures"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
	"github.com/libercoinproject/libercoin-old/registry"
)

func TestPingEnablesNode(t *testing.T) {
	s := newSetup()
	node, b := s.admit(t, 1)

	s.clock.Advance(11 * time.Minute)
	p := node.Ping(s.env)
	s.registry.ProcessPing(s.peer, p)

	assert.Equal(t, masternode.Enabled, s.registry.State(node.Outpoint), "not enabled")
	assert.Equal(t, 1, s.relayed(int(network.InvPing)), "ping not relayed")
	assert.True(t, s.registry.HasSeenPing(p.Hash()), "ping not cached")
	assert.True(t, s.registry.IsPingedWithin(node.Outpoint, time.Minute, s.env.Now()), "ping not applied")

	seen, ok := s.registry.SeenBroadcast(b.Hash())
	assert.True(t, ok, "broadcast missing")
	assert.Equal(t, p.SigTime, seen.LastPing.SigTime, "cached broadcast not given the new ping")
	assert.NotEqual(t, p.SigTime, b.LastPing.SigTime, "original broadcast modified")

	// same ping again
	s.registry.ProcessPing(s.peer, p)
	assert.Equal(t, 1, s.relayed(int(network.InvPing)), "duplicate relayed")
	assert.Equal(t, 0, s.peer.Score, "peer penalised")
}

func TestPingTooEarlyIsIgnored(t *testing.T) {
	s := newSetup()
	node, _ := s.admit(t, 1)

	s.clock.Advance(2 * time.Minute)
	s.registry.ProcessPing(s.peer, node.Ping(s.env))

	assert.Equal(t, 0, s.relayed(int(network.InvPing)), "early ping relayed")
	assert.Equal(t, 0, s.peer.Score, "early ping penalised")
	assert.Equal(t, 0, len(s.peer.Sent(network.CmdListRequest)), "known node requested")
}

func TestPingUnknownNodeAsksOnce(t *testing.T) {
	s := newSetup()
	node := fixtures.NewNode(1)

	s.registry.ProcessPing(s.peer, node.Ping(s.env))
	sent := s.peer.Sent(network.CmdListRequest)
	assert.Equal(t, 1, len(sent), "node not requested")

	outpoint, err := registry.UnpackListRequest(sent[0].Payload)
	assert.NoError(t, err, "bad request")
	assert.Equal(t, node.Outpoint, *outpoint, "wrong node requested")

	s.clock.Advance(time.Minute)
	s.registry.ProcessPing(s.peer, node.Ping(s.env))
	assert.Equal(t, 1, len(s.peer.Sent(network.CmdListRequest)), "asked again inside cooldown")

	s.clock.Advance(registry.ListUpdateInterval)
	s.registry.ProcessPing(s.peer, node.Ping(s.env))
	assert.Equal(t, 2, len(s.peer.Sent(network.CmdListRequest)), "not asked after cooldown")
}

func TestPingBadSignature(t *testing.T) {
	s := newSetup()
	node, _ := s.admit(t, 1)

	s.clock.Advance(11 * time.Minute)
	forged := *node
	forged.Keys.Operational = fixtures.Key(901)
	s.registry.ProcessPing(s.peer, forged.Ping(s.env))

	assert.Equal(t, 33, s.peer.Score, "forged ping not penalised")
	assert.Equal(t, 1, len(s.peer.Sent(network.CmdListRequest)), "node not requested after forged ping")
	assert.NotEqual(t, masternode.Enabled, s.registry.State(node.Outpoint), "forged ping enabled node")
}

func TestSetLastPing(t *testing.T) {
	s := newSetup()
	node, b := s.admit(t, 1)

	s.clock.Advance(11 * time.Minute)
	p := node.Ping(s.env)
	s.registry.SetLastPing(node.Outpoint, p)

	assert.True(t, s.registry.HasSeenPing(p.Hash()), "ping not cached")
	seen, _ := s.registry.SeenBroadcast(b.Hash())
	assert.Equal(t, p.SigTime, seen.LastPing.SigTime, "cached broadcast not updated")
	assert.True(t, s.registry.IsPingedWithin(node.Outpoint, time.Second, s.env.Now()), "ping not set")
}
