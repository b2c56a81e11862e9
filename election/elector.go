// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package election

import (
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/masternode"
)

const timeFormat = "2006-01-02 15:04 UTC"

// Nodes - snapshot source, implemented by the registry
type Nodes interface {
	Infos() []masternode.Info
	CountEnabled(protocol int32) int
}

// Schedule - payments already decided for the coming blocks
//
// implementations must not call the elector while holding their own locks
type Schedule interface {
	IsScheduled(info masternode.Info, height int32) bool
}

// Elector - ranking and payment queue over the registry
type Elector struct {
	sync.RWMutex
	log      *logger.L
	env      *masternode.Env
	nodes    Nodes
	schedule Schedule
}

// New - create an elector, the schedule may be set later
func New(env *masternode.Env, nodes Nodes, schedule Schedule) *Elector {
	return &Elector{
		log:      logger.New("election"),
		env:      env,
		nodes:    nodes,
		schedule: schedule,
	}
}

// SetSchedule - attach the payment schedule once the ledger exists
func (e *Elector) SetSchedule(schedule Schedule) {
	e.Lock()
	e.schedule = schedule
	e.Unlock()
}

func (e *Elector) isScheduled(info masternode.Info, height int32) bool {
	e.RLock()
	schedule := e.schedule
	e.RUnlock()
	return nil != schedule && schedule.IsScheduled(info, height)
}

// ranking at a height, nil if the block is unknown
func (e *Elector) rank(height int32, minProtocol int32, filter Filter) []Ranked {
	blockHash, err := e.env.Chain.BlockHash(height)
	if nil != err {
		return nil
	}
	return Rank(e.nodes.Infos(), blockHash, minProtocol, filter)
}

// Ranks - enabled records in rank order, empty if the block is unknown
func (e *Elector) Ranks(height int32, minProtocol int32) []Ranked {
	return e.rank(height, minProtocol, Enabled)
}

// GetRank - 1 based rank of an outpoint, -1 when not ranked
//
// onlyActive restricts to enabled records, otherwise to records valid
// for payment
func (e *Elector) GetRank(outpoint wire.OutPoint, height int32, minProtocol int32, onlyActive bool) int {
	filter := ValidForPayment
	if onlyActive {
		filter = Enabled
	}
	for _, r := range e.rank(height, minProtocol, filter) {
		if r.Info.Outpoint == outpoint {
			return r.Rank
		}
	}
	return -1
}

// ByRank - record at a rank, onlyActive false ranks records in every state
func (e *Elector) ByRank(rank int, height int32, minProtocol int32, onlyActive bool) (masternode.Info, bool) {
	filter := Any
	if onlyActive {
		filter = Enabled
	}
	ranks := e.rank(height, minProtocol, filter)
	if rank < 1 || rank > len(ranks) {
		return masternode.Info{}, false
	}
	return ranks[rank-1].Info, true
}

// NotQualifyReason - check one record against the payment queue rules
//
// count is the number of enabled records
func (e *Elector) NotQualifyReason(info masternode.Info, height int32, filterSigTime bool, count int) Reason {
	if !info.IsValidForPayment() {
		return Reason{
			Code:    NotValidForPayment,
			Message: "false: 'not valid for payment'",
		}
	}
	if info.Protocol < e.env.MinPaymentsProtocol() {
		return Reason{
			Code:    InvalidProtocol,
			Message: fmt.Sprintf("false: 'Invalid nProtocolVersion', nProtocolVersion=%d", info.Protocol),
		}
	}
	// up to eight blocks ahead to allow propagation
	if e.isScheduled(info, height) {
		return Reason{
			Code:    IsScheduled,
			Message: "false: 'is scheduled'",
		}
	}
	wait := int64(float64(count) * e.env.Params.MinutesPerNode * 60)
	if filterSigTime && info.SigTime+wait > e.env.Now() {
		return Reason{
			Code: TooNew,
			Message: fmt.Sprintf("false: 'too new', sigTime=%s, will be qualifed after=%s",
				time.Unix(info.SigTime, 0).UTC().Format(timeFormat),
				time.Unix(info.SigTime+wait, 0).UTC().Format(timeFormat)),
		}
	}
	if info.CollateralAge < int32(count) {
		return Reason{
			Code:    CollateralTooYoung,
			Message: fmt.Sprintf("false: 'collateralAge < znCount', collateralAge=%d, znCount=%d", info.CollateralAge, count),
		}
	}
	return Reason{Code: Qualified}
}

// NextInQueueForPayment - longest unpaid record with the best score
//
// returns the number of qualifying records as well, false when there
// is no candidate or the lagged block is unknown
func (e *Elector) NextInQueueForPayment(height int32, filterSigTime bool) (masternode.Info, int, bool) {
	count := e.nodes.CountEnabled(-1)
	infos := e.nodes.Infos()

	candidates := make([]masternode.Info, 0, len(infos))
	for _, info := range infos {
		reason := e.NotQualifyReason(info, height, filterSigTime, count)
		if !reason.IsQualified() {
			e.log.Debugf("libernode: %s qualify %s", masternode.ShortString(info.Outpoint), reason)
			continue
		}
		candidates = append(candidates, info)
	}

	// network is upgrading, do not penalise nodes that recently restarted
	if filterSigTime && len(candidates) < count/3 {
		return e.NextInQueueForPayment(height, false)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].LastPaidBlock != candidates[j].LastPaidBlock {
			return candidates[i].LastPaidBlock < candidates[j].LastPaidBlock
		}
		return masternode.CompareOutpoints(candidates[i].Outpoint, candidates[j].Outpoint) < 0
	})

	lagged := height - e.env.Params.QueueScoreLag
	blockHash, err := e.env.Chain.BlockHash(lagged)
	if nil != err {
		e.log.Errorf("block hash at height: %d  error: %s", lagged, err)
		return masternode.Info{}, len(candidates), false
	}

	// score the oldest tenth only
	sample := count / e.env.Params.QueueSampleDivisor
	found := false
	best := masternode.Info{}
	bestScore := big.NewInt(0)
	for i, candidate := range candidates {
		score := masternode.Score(candidate.Outpoint, blockHash)
		if score.Cmp(bestScore) > 0 {
			bestScore = score
			best = candidate
			found = true
		}
		if i+1 >= sample {
			break
		}
	}
	return best, len(candidates), found
}
