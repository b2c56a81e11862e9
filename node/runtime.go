// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/libercoinproject/libercoin-old/activation"
	"github.com/libercoinproject/libercoin-old/background"
	"github.com/libercoinproject/libercoin-old/blockchain"
	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/clock"
	"github.com/libercoinproject/libercoin-old/election"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
	"github.com/libercoinproject/libercoin-old/nodesync"
	"github.com/libercoinproject/libercoin-old/payment"
	"github.com/libercoinproject/libercoin-old/registry"
	"github.com/libercoinproject/libercoin-old/signer"
	"github.com/libercoinproject/libercoin-old/verify"
	"github.com/libercoinproject/libercoin-old/wallet"
)

// intervals of the periodic processes
const (
	MaintenanceInterval  = time.Minute
	ConnectionInterval   = time.Second
	VerificationInterval = time.Minute
	PersistInterval      = 5 * time.Minute
	TipInterval          = 5 * time.Second
)

// Config - runtime settings
type Config struct {
	Libernode activation.Config
	Payments  payment.Config
}

// Runtime - every libernode service wired together
type Runtime struct {
	log *logger.L

	Env      *masternode.Env
	Link     network.Link
	Registry *registry.Registry
	Elector  *election.Elector
	Ledger   *payment.Ledger
	Verifier *verify.Verifier
	Sync     *nodesync.Sync
	Self     *activation.Activation

	tip int32
}

// New - build the services
//
// source may be nil when no wallet is available
func New(view blockchain.View, params *chain.Params, clk clock.Clock, link network.Link, source wallet.CollateralSource, config Config) *Runtime {
	env := &masternode.Env{
		Log:    logger.New("libernode"),
		Chain:  view,
		Params: params,
		Signer: signer.New(signer.DefaultMagic),
		Clock:  clk,
	}

	syncer := nodesync.New(env, link)
	self := activation.New(env, config.Libernode, link, source)
	env.Sync = syncer
	env.Self = self

	nodes := registry.New(env, link)
	elector := election.New(env, nodes, nil)
	ledger := payment.New(env, config.Payments, link, nodes, elector, syncer, self)
	elector.SetSchedule(ledger)
	verifier := verify.New(env, link, nodes, elector, self, syncer)

	syncer.Attach(nodes, ledger)
	self.Attach(nodes)

	rt := &Runtime{
		log:      logger.New("node"),
		Env:      env,
		Link:     link,
		Registry: nodes,
		Elector:  elector,
		Ledger:   ledger,
		Verifier: verifier,
		Sync:     syncer,
		Self:     self,
		tip:      -1,
	}

	// our own broadcast came back from the network
	nodes.OnSelfAnnounced(self.ManageState)
	nodes.OnUpdates(func(added bool, removed bool) {
		rt.log.Infof("registry updated: added: %t  removed: %t  %s", added, removed, nodes.Summary())
	})

	return rt
}

// UpdatedBlockTip - a new block was connected by the host
func (rt *Runtime) UpdatedBlockTip(height int32) {
	rt.log.Debugf("updated block tip: %d", height)

	rt.Sync.UpdatedBlockTip(height)
	rt.Verifier.CheckSameAddr()

	// only a libernode tracks payments every block
	if rt.Self.IsLibernode() {
		rt.Registry.UpdateLastPaid(rt.Ledger, rt.Ledger.StorageLimit(), rt.Sync.IsWinnersListSynced())
	}

	rt.Ledger.UpdatedBlockTip(height)
}

// FollowTip - poll the chain for a new tip
//
// used when the host does not call UpdatedBlockTip itself, true if
// a new tip was processed
func (rt *Runtime) FollowTip() bool {
	height := rt.Env.Chain.Height()
	if height < 0 || height == rt.tip {
		return false
	}
	rt.tip = height
	rt.UpdatedBlockTip(height)
	return true
}

// Maintenance - the once a minute sweep
func (rt *Runtime) Maintenance() {
	if rt.Sync.IsFailed() {
		return
	}
	rt.Registry.CheckAndRemove()
	rt.Registry.CheckAndRebuildIndex()
	rt.Ledger.CheckAndRemove()
	rt.Verifier.CheckAndRemove()
}

// Processes - every periodic process of the subsystem
//
// persist is called on its own interval when not nil
func (rt *Runtime) Processes(persist func()) background.Processes {
	processes := background.Processes{
		rt.Sync,
		background.Every(MaintenanceInterval, rt.Maintenance),
		background.Every(ConnectionInterval, rt.Registry.ProcessScheduledConnections),
		background.Every(activation.Interval, rt.Self.ManageState),
		background.Every(VerificationInterval, func() {
			rt.Verifier.DoFullVerificationStep()
		}),
	}
	if nil != persist {
		processes = append(processes, background.Every(PersistInterval, persist))
	}
	return processes
}
