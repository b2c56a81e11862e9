// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verify_test

import (
	"os"
	"sync"
	"testing"

	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/clock"
	"github.com/libercoinproject/libercoin-old/election"
	"github.com/libercoinproject/libercoin-old/fixtures"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/verify"
)

const tipHeight = 200

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

// nodes - registry stand in recording score changes
type nodes struct {
	sync.Mutex
	infos     []masternode.Info
	increased map[wire.OutPoint]int
	decreased map[wire.OutPoint]int
}

func newNodes(infos ...masternode.Info) *nodes {
	return &nodes{
		infos:     infos,
		increased: make(map[wire.OutPoint]int),
		decreased: make(map[wire.OutPoint]int),
	}
}

func (n *nodes) Infos() []masternode.Info {
	n.Lock()
	defer n.Unlock()
	return append([]masternode.Info{}, n.infos...)
}

func (n *nodes) Get(outpoint wire.OutPoint) (masternode.Info, bool) {
	n.Lock()
	defer n.Unlock()
	for _, info := range n.infos {
		if info.Outpoint == outpoint {
			return info, true
		}
	}
	return masternode.Info{}, false
}

func (n *nodes) CountEnabled(protocol int32) int {
	count := 0
	for _, info := range n.Infos() {
		if info.IsEnabled() && info.Protocol >= protocol {
			count += 1
		}
	}
	return count
}

func (n *nodes) IncreasePoSeBanScore(outpoint wire.OutPoint) {
	n.Lock()
	n.increased[outpoint] += 1
	n.Unlock()
}

func (n *nodes) DecreasePoSeBanScore(outpoint wire.OutPoint) {
	n.Lock()
	n.decreased[outpoint] += 1
	n.Unlock()
}

func (n *nodes) scores(outpoint wire.OutPoint) (int, int) {
	n.Lock()
	defer n.Unlock()
	return n.increased[outpoint], n.decreased[outpoint]
}

func info(n *fixtures.Node) masternode.Info {
	return masternode.Info{
		Outpoint:       n.Outpoint,
		Address:        n.Address,
		CollateralKey:  n.Keys.Collateral.PubKey(),
		OperationalKey: n.Keys.Operational.PubKey(),
		Protocol:       chain.ProtocolVersion,
		State:          masternode.Enabled,
	}
}

// one process in the network
type member struct {
	env      *masternode.Env
	self     *fixtures.Self
	link     *fixtures.Link
	nodes    *nodes
	elector  *election.Elector
	verifier *verify.Verifier
}

func newMember(c *fixtures.Chain, node *fixtures.Node, infos ...masternode.Info) *member {
	env := fixtures.NewEnv(c, clock.NewManual(fixtures.Now))
	self := env.Self.(*fixtures.Self)
	if nil != node {
		self.SetNode(node)
	}
	m := &member{
		env:   env,
		self:  self,
		link:  fixtures.NewLink(),
		nodes: newNodes(infos...),
	}
	m.elector = election.New(env, m.nodes, nil)
	m.verifier = verify.New(env, m.link, m.nodes, m.elector, self, env.Sync.(*fixtures.Sync))
	return m
}
