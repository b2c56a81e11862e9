// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payment

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
)

// vote counting
const (
	SignaturesRequired = 6
	SignaturesTotal    = 10

	// a tally with this many votes is not re-requested
	averageVotes = (SignaturesTotal + SignaturesRequired) / 2
)

// heights relative to the tip
const (
	VoteLookahead      = 5
	ScheduledLookahead = 8
	VoteFutureLimit    = 20
)

// storage limit is the larger of these
const (
	MinBlocksToStore = 5000
	storageCoeff     = 1.25
)

const (
	dosVoteRank         = 20
	dosVoteSignature    = 20
	dosVoteSyncTooOften = 20

	fulfilledExpiry = time.Hour
)

// Nodes - registry access needed to validate votes
type Nodes interface {
	Size() int
	Get(outpoint wire.OutPoint) (masternode.Info, bool)
	AskForNode(peer network.Peer, outpoint wire.OutPoint)
}

// Elector - rank and queue queries
type Elector interface {
	GetRank(outpoint wire.OutPoint, height int32, minProtocol int32, onlyActive bool) int
	NextInQueueForPayment(height int32, filterSigTime bool) (masternode.Info, int, bool)
}

// SyncStatus - the subset of synchronisation state the ledger reads
type SyncStatus interface {
	IsListSynced() bool
	IsWinnersListSynced() bool
	IsSynced() bool
	AddedPaymentVote()
}

// Voter - the local libernode, if any
type Voter interface {
	Outpoint() (wire.OutPoint, bool)
	OperationalPrivateKey() *btcec.PrivateKey
}

// Config - payment policy switches
type Config struct {
	// reject blocks that do not pay the voted payee
	Enforce bool `gluamapper:"enforce" json:"enforce"`

	// only nodes on the latest payment protocol are paid
	PayUpdatedNodes bool `gluamapper:"pay_updated_nodes" json:"pay_updated_nodes"`
}

type storedVote struct {
	vote     *Vote
	verified bool
}

// Ledger - payment votes and their tallies
type Ledger struct {
	sync.RWMutex

	log       *logger.L
	env       *masternode.Env
	config    Config
	link      network.Link
	nodes     Nodes
	elector   Elector
	sync      SyncStatus
	voter     Voter
	fulfilled *network.Fulfilled

	votes  map[chainhash.Hash]*storedVote
	blocks map[int32]*tally
	voted  map[int32]map[wire.OutPoint]struct{}
}

// New - create an empty ledger
func New(env *masternode.Env, config Config, link network.Link, nodes Nodes, elector Elector, status SyncStatus, voter Voter) *Ledger {
	return &Ledger{
		log:       logger.New("payment"),
		env:       env,
		config:    config,
		link:      link,
		nodes:     nodes,
		elector:   elector,
		sync:      status,
		voter:     voter,
		fulfilled: network.NewFulfilled(fulfilledExpiry),
		votes:     make(map[chainhash.Hash]*storedVote),
		blocks:    make(map[int32]*tally),
		voted:     make(map[int32]map[wire.OutPoint]struct{}),
	}
}

// Clear - forget all votes and tallies
func (l *Ledger) Clear() {
	l.Lock()
	defer l.Unlock()
	l.reset()
}

// must hold the lock
func (l *Ledger) reset() {
	l.votes = make(map[chainhash.Hash]*storedVote)
	l.blocks = make(map[int32]*tally)
	l.voted = make(map[int32]map[wire.OutPoint]struct{})
}

// MinProtocol - lowest protocol eligible for payment
func (l *Ledger) MinProtocol() int32 {
	if l.config.PayUpdatedNodes {
		return chain.MinPaymentsProtoVersion2
	}
	return chain.MinPaymentsProtoVersion1
}

// StorageLimit - number of blocks of votes kept
func (l *Ledger) StorageLimit() int {
	limit := int(float64(l.nodes.Size()) * storageCoeff)
	if limit < MinBlocksToStore {
		return MinBlocksToStore
	}
	return limit
}

// CanVote - record the voter at a height, false if it already voted there
func (l *Ledger) CanVote(outpoint wire.OutPoint, height int32) bool {
	l.Lock()
	defer l.Unlock()
	return l.markVoted(outpoint, height)
}

// must hold the lock
func (l *Ledger) markVoted(outpoint wire.OutPoint, height int32) bool {
	voters, ok := l.voted[height]
	if !ok {
		voters = make(map[wire.OutPoint]struct{})
		l.voted[height] = voters
	}
	if _, ok := voters[outpoint]; ok {
		return false
	}
	voters[outpoint] = struct{}{}
	return true
}

// AddPaymentVote - store a verified vote and tally it
//
// false if the rank block is unknown or the vote is already counted
func (l *Ledger) AddPaymentVote(v *Vote) bool {
	if _, err := l.env.Chain.BlockHash(v.Height - l.env.Params.VoteRankLag); nil != err {
		return false
	}

	hash := v.Hash()

	l.Lock()
	defer l.Unlock()

	if stored, ok := l.votes[hash]; ok && stored.verified {
		return false
	}
	l.votes[hash] = &storedVote{vote: v, verified: true}

	t, ok := l.blocks[v.Height]
	if !ok {
		t = &tally{height: v.Height}
		l.blocks[v.Height] = t
	}
	t.add(v)
	l.markVoted(v.Voter, v.Height)
	return true
}

// HasVerifiedPaymentVote - vote is counted in some tally
func (l *Ledger) HasVerifiedPaymentVote(hash chainhash.Hash) bool {
	l.RLock()
	defer l.RUnlock()
	stored, ok := l.votes[hash]
	return ok && stored.verified
}

// Vote - a verified vote, for answering GETDATA
func (l *Ledger) Vote(hash chainhash.Hash) (*Vote, bool) {
	l.RLock()
	defer l.RUnlock()
	stored, ok := l.votes[hash]
	if !ok || !stored.verified {
		return nil, false
	}
	return stored.vote, true
}

// BlockVotes - every verified vote for a height
func (l *Ledger) BlockVotes(height int32) []*Vote {
	l.RLock()
	defer l.RUnlock()
	t, ok := l.blocks[height]
	if !ok {
		return nil
	}
	result := []*Vote{}
	for _, p := range t.payees {
		for _, hash := range p.votes {
			if stored, ok := l.votes[hash]; ok && stored.verified {
				result = append(result, stored.vote)
			}
		}
	}
	return result
}

// BlockPayee - most voted payee for a height
func (l *Ledger) BlockPayee(height int32) ([]byte, bool) {
	l.RLock()
	defer l.RUnlock()
	t, ok := l.blocks[height]
	if !ok {
		return nil, false
	}
	return t.best()
}

// IsScheduled - the record is the best payee of a coming block
// other than the one being decided
func (l *Ledger) IsScheduled(info masternode.Info, notHeight int32) bool {
	tip := l.env.Chain.Height()
	script := info.Payee()

	l.RLock()
	defer l.RUnlock()

	for h := tip; h <= tip+ScheduledLookahead; h += 1 {
		if h == notHeight {
			continue
		}
		t, ok := l.blocks[h]
		if !ok {
			continue
		}
		if best, ok := t.best(); ok && string(best) == string(script) {
			return true
		}
	}
	return false
}

// HasPayeeWithVotes - a payee at a height has at least some votes
func (l *Ledger) HasPayeeWithVotes(height int32, script []byte, votes int) bool {
	l.RLock()
	defer l.RUnlock()
	t, ok := l.blocks[height]
	return ok && t.hasPayeeWithVotes(script, votes)
}

// CheckAndRemove - drop votes and tallies beyond the storage limit
func (l *Ledger) CheckAndRemove() {
	tip := l.env.Chain.Height()
	limit := int32(l.StorageLimit())

	l.Lock()
	for hash, stored := range l.votes {
		if tip-stored.vote.Height > limit {
			l.log.Debugf("removing old vote: height: %d", stored.vote.Height)
			delete(l.votes, hash)
			delete(l.blocks, stored.vote.Height)
		}
	}
	for height := range l.voted {
		if tip-height > limit {
			delete(l.voted, height)
		}
	}
	summary := l.summary()
	l.Unlock()

	l.log.Infof("check and remove: %s", summary)
}

// IsEnoughData - stored history looks complete
func (l *Ledger) IsEnoughData() bool {
	limit := l.StorageLimit()
	l.RLock()
	defer l.RUnlock()
	return len(l.blocks) > limit && len(l.votes) > limit*averageVotes
}

// BlockCount - number of heights with a tally
func (l *Ledger) BlockCount() int {
	l.RLock()
	defer l.RUnlock()
	return len(l.blocks)
}

// VoteCount - number of stored votes
func (l *Ledger) VoteCount() int {
	l.RLock()
	defer l.RUnlock()
	return len(l.votes)
}

// Summary - one line description
func (l *Ledger) Summary() string {
	l.RLock()
	defer l.RUnlock()
	return l.summary()
}

// Heights - every height with a tally, ascending
func (l *Ledger) Heights() []int32 {
	l.RLock()
	defer l.RUnlock()
	return l.heights()
}

func (l *Ledger) summary() string {
	return fmt.Sprintf("Votes: %d, Blocks: %d", len(l.votes), len(l.blocks))
}

// heights with a tally in ascending order
func (l *Ledger) heights() []int32 {
	heights := make([]int32, 0, len(l.blocks))
	for h := range l.blocks {
		heights = append(heights, h)
	}
	sort.Slice(heights, func(i, j int) bool { return heights[i] < heights[j] })
	return heights
}
