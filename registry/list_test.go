// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/fixtures"
	"github.com/libercoinproject/libercoin-old/network"
	"github.com/libercoinproject/libercoin-old/registry"
)

func TestListRequestPacking(t *testing.T) {
	all, err := registry.UnpackListRequest(registry.PackListRequest(nil))
	assert.NoError(t, err, "unpack error")
	assert.Nil(t, all, "whole list decoded as one node")

	op := fixtures.Outpoint(4)
	one, err := registry.UnpackListRequest(registry.PackListRequest(&op))
	assert.NoError(t, err, "unpack error")
	assert.Equal(t, op, *one, "wrong outpoint")

	_, err = registry.UnpackListRequest([]byte{1, 2, 3})
	assert.Error(t, err, "short payload accepted")
}

func TestServeWholeList(t *testing.T) {
	s := newSetup()
	for i := 0; i < 3; i += 1 {
		s.admit(t, i)
	}

	s.registry.ServeListRequest(s.peer, nil)
	assert.Equal(t, 6, len(s.peer.Inventory), "wrong inventory count")

	status := s.peer.Sent(network.CmdSyncStatus)
	assert.Equal(t, 1, len(status), "no sync status")
	stage, count, err := network.UnpackSyncStatus(status[0].Payload)
	assert.NoError(t, err, "bad sync status")
	assert.Equal(t, network.StageList, stage, "wrong stage")
	assert.Equal(t, 3, count, "wrong count")
}

func TestServeOneNode(t *testing.T) {
	s := newSetup()
	s.admit(t, 0)
	node, b := s.admit(t, 1)

	s.registry.ServeListRequest(s.peer, &node.Outpoint)
	assert.Equal(t, 2, len(s.peer.Inventory), "wrong inventory count")
	assert.Equal(t, network.Inventory{Type: network.InvAnnounce, Hash: b.Hash()}, s.peer.Inventory[0], "wrong announce")
	assert.Equal(t, 0, len(s.peer.Sent(network.CmdSyncStatus)), "sync status for one node")
}

func TestServeListNotSynced(t *testing.T) {
	s := newSetup()
	s.admit(t, 0)
	s.sync.Synced = false

	s.registry.ServeListRequest(s.peer, nil)
	assert.Equal(t, 0, len(s.peer.Inventory), "served while syncing")
}

func TestServeListTooOftenOnMainnet(t *testing.T) {
	s := newSetup()
	s.admit(t, 0)
	s.env.Params, _ = chain.Get(chain.Libercoin)

	s.registry.ServeListRequest(s.peer, nil)
	assert.Equal(t, 0, s.peer.Score, "first request penalised")

	s.registry.ServeListRequest(s.peer, nil)
	assert.Equal(t, 34, s.peer.Score, "repeated request not penalised")
	assert.Equal(t, 1, len(s.peer.Sent(network.CmdSyncStatus)), "repeated request served")

	local := fixtures.NewPeer(2, "192.168.1.20:8255")
	s.registry.ServeListRequest(local, nil)
	s.registry.ServeListRequest(local, nil)
	assert.Equal(t, 0, local.Score, "local peer penalised")
}

func TestRequestList(t *testing.T) {
	s := newSetup()

	assert.NoError(t, s.registry.RequestList(s.peer), "request error")
	assert.NoError(t, s.registry.RequestList(s.peer), "testing network limited")
	assert.Equal(t, 2, len(s.peer.Sent(network.CmdListRequest)), "wrong request count")

	s.env.Params, _ = chain.Get(chain.Libercoin)
	other := fixtures.NewPeer(3, "93.184.216.35:8255")
	assert.NoError(t, s.registry.RequestList(other), "first mainnet request error")
	assert.Equal(t, fault.ErrListRequestedTooRecently, s.registry.RequestList(other), "second mainnet request sent")
	assert.Equal(t, 1, len(other.Sent(network.CmdListRequest)), "wrong mainnet request count")
}
