// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nodesync

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/mode"
	"github.com/libercoinproject/libercoin-old/network"
)

// timing
const (
	TickInterval = 6 * time.Second
	Timeout      = 30 * time.Second

	// enough synced peers to trust the local chain
	EnoughPeers = 6

	failureCooldown = time.Minute
	idleReset       = time.Hour

	// blocks between best header and tip still counted as synced
	headerGap = 24 * 6

	// attempts per stage in the progress estimate
	attemptsPerStage = 8
)

// Nodes - registry access
type Nodes interface {
	CountNodes(protocol int32) int
	RequestList(peer network.Peer) error
}

// Ledger - payment vote access
type Ledger interface {
	IsEnoughData() bool
	StorageLimit() int
	MinProtocol() int32
	RequestLowDataPaymentBlocks(peer network.Peer)
}

// Sync - staged synchronisation state
//
// it never calls the registry or ledger while holding its own lock
type Sync struct {
	sync.Mutex

	log       *logger.L
	env       *masternode.Env
	link      network.Link
	nodes     Nodes
	ledger    Ledger
	fulfilled *network.Fulfilled

	stage            network.SyncStage
	attempt          int
	stageStarted     time.Time
	lastList         time.Time
	lastPaymentVote  time.Time
	lastFailure      time.Time
	failures         int
	blockchainSynced bool
	lastProcess      time.Time
	skipped          int
	firstBlock       bool
}

// New - create the orchestrator in the initial stage
//
// the registry and ledger are attached later as both depend on it
func New(env *masternode.Env, link network.Link) *Sync {
	s := &Sync{
		log:         logger.New("nodesync"),
		env:         env,
		link:        link,
		fulfilled:   network.NewFulfilled(network.FulfilledExpiry),
		lastProcess: env.Clock.Now(),
	}
	s.reset()
	return s
}

// Attach - set the data sources
func (s *Sync) Attach(nodes Nodes, ledger Ledger) {
	s.Lock()
	s.nodes = nodes
	s.ledger = ledger
	s.Unlock()
}

func (s *Sync) sources() (Nodes, Ledger) {
	s.Lock()
	defer s.Unlock()
	return s.nodes, s.ledger
}

// Reset - start again from the initial stage
func (s *Sync) Reset() {
	s.Lock()
	s.reset()
	s.Unlock()
	mode.Set(mode.Resynchronise)
}

func (s *Sync) reset() {
	now := s.env.Clock.Now()
	s.stage = network.StageInitial
	s.attempt = 0
	s.stageStarted = now
	s.lastList = now
	s.lastPaymentVote = now
	s.lastFailure = time.Time{}
	s.failures = 0
}

func (s *Sync) fail() {
	s.lastFailure = s.env.Clock.Now()
	s.failures += 1
	s.stage = network.StageFailed
	s.log.Errorf("failed to sync, failures: %d", s.failures)
}

// SwitchToNextAsset - move to the following stage
func (s *Sync) SwitchToNextAsset() error {
	s.Lock()
	err := s.switchToNextAsset()
	finished := network.StageFinished == s.stage
	s.Unlock()
	if finished {
		mode.Set(mode.Normal)
	}
	return err
}

func (s *Sync) switchToNextAsset() error {
	now := s.env.Clock.Now()
	switch s.stage {
	case network.StageFailed:
		return fault.ErrInvalidStage
	case network.StageInitial:
		s.clearFulfilledRequests()
		s.stage = network.StageSporks
	case network.StageSporks:
		s.lastList = now
		s.stage = network.StageList
	case network.StageList:
		s.lastPaymentVote = now
		s.stage = network.StagePaymentVotes
	case network.StagePaymentVotes:
		s.stage = network.StageFinished
		for _, peer := range s.link.Peers() {
			s.fulfilled.Add(peer.Address(), network.RequestFullSync)
		}
		s.log.Info("sync has finished")
	}
	s.log.Infof("starting: %s", s.stage)
	s.attempt = 0
	s.stageStarted = now
	return nil
}

func (s *Sync) clearFulfilledRequests() {
	for _, peer := range s.link.Peers() {
		address := peer.Address()
		s.fulfilled.Remove(address, network.RequestSpork)
		s.fulfilled.Remove(address, network.RequestList)
		s.fulfilled.Remove(address, network.RequestPaymentVotes)
		s.fulfilled.Remove(address, network.RequestFullSync)
	}
}

// Stage - the current stage
func (s *Sync) Stage() network.SyncStage {
	s.Lock()
	defer s.Unlock()
	return s.stage
}

// Attempt - requests made in the current stage
func (s *Sync) Attempt() int {
	s.Lock()
	defer s.Unlock()
	return s.attempt
}

func (s *Sync) IsFailed() bool {
	return network.StageFailed == s.Stage()
}

// IsListSynced - the list stage is over
func (s *Sync) IsListSynced() bool {
	return s.Stage() > network.StageList
}

// IsWinnersListSynced - the payment vote stage is over
func (s *Sync) IsWinnersListSynced() bool {
	return s.Stage() > network.StagePaymentVotes
}

// IsSynced - every stage complete
func (s *Sync) IsSynced() bool {
	return network.StageFinished == s.Stage()
}

// AddedList - the registry learned something, extend the list stage
func (s *Sync) AddedList() {
	s.Lock()
	s.lastList = s.env.Clock.Now()
	s.Unlock()
}

// AddedPaymentVote - the ledger learned something, extend the vote stage
func (s *Sync) AddedPaymentVote() {
	s.Lock()
	s.lastPaymentVote = s.env.Clock.Now()
	s.Unlock()
}

// Progress - rough fraction of the whole sync
func (s *Sync) Progress() float64 {
	s.Lock()
	defer s.Unlock()
	return float64(s.attempt+(int(s.stage)-1)*attemptsPerStage) / (attemptsPerStage * 4)
}

// StageString - name of the current stage
func (s *Sync) StageString() string {
	return s.Stage().String()
}

// StatusString - human readable progress
func (s *Sync) StatusString() string {
	switch s.Stage() {
	case network.StageInitial:
		return "Synchronization pending..."
	case network.StageSporks:
		return "Synchronizing sporks..."
	case network.StageList:
		return "Synchronizing libernodes..."
	case network.StagePaymentVotes:
		return "Synchronizing libernode payments..."
	case network.StageFailed:
		return "Synchronization failed"
	case network.StageFinished:
		return "Synchronization finished"
	default:
		return ""
	}
}

// ProcessSyncStatus - a peer reported how much it sent
func (s *Sync) ProcessSyncStatus(peer network.Peer, stage network.SyncStage, count int) {
	if s.IsSynced() || s.IsFailed() {
		return
	}
	s.log.Infof("got inventory count: stage: %s  count: %d  peer: %d", stage, count, peer.ID())
}
