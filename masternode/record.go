// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"bytes"
	"fmt"
	"net/netip"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/blockchain"
	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/signer"
)

// Record - the registry's view of one libernode
//
// a record is only mutated while its owner holds the registry lock
type Record struct {
	Outpoint       wire.OutPoint
	Address        netip.AddrPort
	CollateralKey  *btcec.PublicKey
	OperationalKey *btcec.PublicKey
	LastPing       *Ping
	Signature      []byte
	SigTime        int64
	Protocol       int32

	LastChecked      int64
	LastPaidTime     int64
	LastPaidBlock    int32
	LastWatchdogVote int64
	CollateralHeight int32

	State         State
	PoSeBanScore  int32
	PoSeBanHeight int32
}

// SelfAnnounce - effect of a broadcast carrying the local operational key
type SelfAnnounce int

// results of UpdateFromBroadcast for the local node
const (
	NotSelf SelfAnnounce = iota
	SelfCurrent
	SelfOutdated
)

// NewRecord - create a record from an accepted broadcast
func NewRecord(b *Broadcast) *Record {
	return &Record{
		Outpoint:         b.Outpoint,
		Address:          b.Address,
		CollateralKey:    b.CollateralKey,
		OperationalKey:   b.OperationalKey,
		LastPing:         b.LastPing,
		Signature:        b.Signature,
		SigTime:          b.SigTime,
		Protocol:         b.Protocol,
		LastWatchdogVote: b.SigTime,
		State:            b.state,
	}
}

// ToBroadcast - rebuild the announcement that produced the current fields
func (r *Record) ToBroadcast() *Broadcast {
	return &Broadcast{
		Outpoint:       r.Outpoint,
		Address:        r.Address,
		CollateralKey:  r.CollateralKey,
		OperationalKey: r.OperationalKey,
		Protocol:       r.Protocol,
		SigTime:        r.SigTime,
		Signature:      r.Signature,
		LastPing:       r.LastPing,
		state:          r.State,
	}
}

// Payee - script paying the collateral key
func (r *Record) Payee() []byte {
	return signer.PayToKey(r.CollateralKey)
}

// UpdateFromBroadcast - take the fields of a newer broadcast
//
// returns false when nothing changed or when the broadcast belongs to
// the local node but carries an outdated protocol
func (r *Record) UpdateFromBroadcast(b *Broadcast, env *Env, census Census) (bool, SelfAnnounce) {
	if b.SigTime <= r.SigTime && !b.Recovery {
		return false, NotSelf
	}

	r.OperationalKey = b.OperationalKey
	r.SigTime = b.SigTime
	r.Signature = b.Signature
	r.Protocol = b.Protocol
	r.Address = b.Address
	r.PoSeBanScore = 0
	r.PoSeBanHeight = 0
	r.LastChecked = 0

	if b.LastPing.IsEmpty() {
		r.LastPing = nil
	} else if _, err := b.LastPing.CheckAndUpdate(r, true, env, census); nil == err {
		r.LastPing = b.LastPing
	}

	if env.IsSelfKey(r.OperationalKey) {
		r.PoSeBanScore = -PoSeBanMaxScore
		if chain.ProtocolVersion == r.Protocol {
			return true, SelfCurrent
		}
		// needs reactivation, do not relay and do not ban the sender
		return false, SelfOutdated
	}
	return true, NotSelf
}

// Check - recompute the state, at most once per check interval unless forced
func (r *Record) Check(env *Env, census Census, force bool) {
	now := env.Now()
	if !force && now-r.LastChecked < seconds(CheckInterval) {
		return
	}
	r.LastChecked = now

	// terminal
	if r.IsOutpointSpent() {
		return
	}

	if _, err := env.Chain.Coin(r.Outpoint); nil != err {
		if fault.ErrCoinNotFound == err {
			r.setState(env, OutpointSpent)
		}
		return
	}
	height := env.Chain.Height()

	if r.IsPoSeBanned() {
		if height < r.PoSeBanHeight {
			return
		}
		// unbanned but on the edge, a few more failures ban it again
		env.Log.Infof("libernode: %s is unbanned and back in list now", ShortString(r.Outpoint))
		r.DecreasePoSeBanScore()
	} else if r.PoSeBanScore >= PoSeBanMaxScore {
		r.setState(env, PoSeBan)
		// whole payment cycle
		r.PoSeBanHeight = height + int32(census.Size)
		env.Log.Infof("libernode: %s is banned till block %d now", ShortString(r.Outpoint), r.PoSeBanHeight)
		return
	}

	ours := env.IsSelfKey(r.OperationalKey)

	if r.Protocol < env.MinPaymentsProtocol() || (ours && r.Protocol < chain.ProtocolVersion) {
		r.setState(env, UpdateRequired)
		return
	}

	listSynced := nil != env.Sync && env.Sync.IsListSynced()
	synced := nil != env.Sync && env.Sync.IsSynced()

	// keep old nodes on start, give them a chance to receive updates
	waitForPing := !listSynced && !r.IsPingedWithin(MinPingInterval, now)

	if waitForPing && !ours {
		if r.IsExpired() || r.IsWatchdogExpired() || r.IsNewStartRequired() {
			return
		}
	}

	if !waitForPing || ours {
		if !r.IsPingedWithin(NewStartRequiredTime, now) {
			r.setState(env, NewStartRequired)
			return
		}

		watchdogActive := synced && census.WatchdogActive
		if watchdogActive && now-r.LastWatchdogVote > seconds(WatchdogMaxTime) {
			r.setState(env, WatchdogExpired)
			return
		}

		if !r.IsPingedWithin(ExpirationTime, now) {
			r.setState(env, Expired)
			return
		}
	}

	if r.lastPingTime()-r.SigTime < seconds(MinPingInterval) {
		r.setState(env, PreEnabled)
		return
	}

	r.setState(env, Enabled)
}

func (r *Record) setState(env *Env, state State) {
	if state != r.State {
		env.Log.Debugf("libernode: %s is in %s state now", ShortString(r.Outpoint), state)
	}
	r.State = state
}

func (r *Record) lastPingTime() int64 {
	if r.LastPing.IsEmpty() {
		return 0
	}
	return r.LastPing.SigTime
}

// IsPingedWithin - a ping signed less than d before at
func (r *Record) IsPingedWithin(d time.Duration, at int64) bool {
	if r.LastPing.IsEmpty() {
		return false
	}
	return at-r.LastPing.SigTime < seconds(d)
}

// IsBroadcastWithin - the current broadcast was signed less than d before now
func (r *Record) IsBroadcastWithin(d time.Duration, now int64) bool {
	return now-r.SigTime < seconds(d)
}

// state predicates
func (r *Record) IsEnabled() bool          { return Enabled == r.State }
func (r *Record) IsPreEnabled() bool       { return PreEnabled == r.State }
func (r *Record) IsPoSeBanned() bool       { return PoSeBan == r.State }
func (r *Record) IsExpired() bool          { return Expired == r.State }
func (r *Record) IsOutpointSpent() bool    { return OutpointSpent == r.State }
func (r *Record) IsUpdateRequired() bool   { return UpdateRequired == r.State }
func (r *Record) IsWatchdogExpired() bool  { return WatchdogExpired == r.State }
func (r *Record) IsNewStartRequired() bool { return NewStartRequired == r.State }

// IsValidForPayment - strictly enabled
func (r *Record) IsValidForPayment() bool {
	return Enabled == r.State
}

// IsPoSeVerified - proven by enough verifications
func (r *Record) IsPoSeVerified() bool {
	return r.PoSeBanScore <= -PoSeBanMaxScore
}

// IncreasePoSeBanScore - bounded by PoSeBanMaxScore
func (r *Record) IncreasePoSeBanScore() {
	if r.PoSeBanScore < PoSeBanMaxScore {
		r.PoSeBanScore += 1
	}
}

// DecreasePoSeBanScore - bounded by -PoSeBanMaxScore
func (r *Record) DecreasePoSeBanScore() {
	if r.PoSeBanScore > -PoSeBanMaxScore {
		r.PoSeBanScore -= 1
	}
}

// PoSeBan - ban at the next check
func (r *Record) PoSeBan() {
	r.PoSeBanScore = PoSeBanMaxScore
}

// UpdateWatchdogVoteTime - record an external liveness attestation
func (r *Record) UpdateWatchdogVoteTime(now int64) {
	r.LastWatchdogVote = now
}

// CollateralAge - confirmations of the collateral, -1 if unknown
//
// the collateral height is cached on the first successful lookup
func (r *Record) CollateralAge(view blockchain.View) int32 {
	height := view.Height()
	if height < 0 {
		return -1
	}
	if 0 == r.CollateralHeight {
		coin, err := view.Coin(r.Outpoint)
		if nil != err {
			return -1
		}
		r.CollateralHeight = coin.Height
	}
	return height - r.CollateralHeight
}

// PayeeVotes - vote tallies consulted when scanning for payments
type PayeeVotes interface {
	HasPayeeWithVotes(height int32, payee []byte, votes int) bool
}

// UpdateLastPaid - scan back from the tip for a block paying this node
func (r *Record) UpdateLastPaid(view blockchain.View, params *chain.Params, votes PayeeVotes, maxBlocks int) {
	payee := r.Payee()
	height := view.Height()

	for i := 0; height >= 0 && height > r.LastPaidBlock && i < maxBlocks; i += 1 {
		if votes.HasPayeeWithVotes(height, payee, 2) {
			outputs, err := view.CoinbaseOutputs(height)
			if nil == err {
				total := int64(0)
				for _, out := range outputs {
					total += out.Value
				}
				payment := int64(params.NodePayment(height, btcutil.Amount(total)))
				for _, out := range outputs {
					if bytes.Equal(payee, out.PkScript) && payment == out.Value {
						r.LastPaidBlock = height
						if t, err := view.BlockTime(height); nil == err {
							r.LastPaidTime = t.Unix()
						}
						return
					}
				}
			}
		}
		height -= 1
	}
}

// Info - immutable snapshot
type Info struct {
	Outpoint         wire.OutPoint
	Address          netip.AddrPort
	CollateralKey    *btcec.PublicKey
	OperationalKey   *btcec.PublicKey
	SigTime          int64
	LastChecked      int64
	LastPaidTime     int64
	LastPaidBlock    int32
	LastWatchdogVote int64
	LastPing         int64
	State            State
	Protocol         int32
	PoSeBanScore     int32

	// filled in by the registry from the chain view, -1 when unknown
	CollateralAge int32
}

// Info - snapshot of the current fields
func (r *Record) Info() Info {
	return Info{
		Outpoint:         r.Outpoint,
		Address:          r.Address,
		CollateralKey:    r.CollateralKey,
		OperationalKey:   r.OperationalKey,
		SigTime:          r.SigTime,
		LastChecked:      r.LastChecked,
		LastPaidTime:     r.LastPaidTime,
		LastPaidBlock:    r.LastPaidBlock,
		LastWatchdogVote: r.LastWatchdogVote,
		LastPing:         r.lastPingTime(),
		State:            r.State,
		Protocol:         r.Protocol,
		PoSeBanScore:     r.PoSeBanScore,
		CollateralAge:    -1,
	}
}

// IsEnabled - snapshot taken in the enabled state
func (i Info) IsEnabled() bool {
	return Enabled == i.State
}

// IsValidForPayment - snapshot of a record that may be paid
func (i Info) IsValidForPayment() bool {
	return Enabled == i.State
}

// IsPoSeVerified - snapshot of a proven record
func (i Info) IsPoSeVerified() bool {
	return i.PoSeBanScore <= -PoSeBanMaxScore
}

// Payee - script paying the collateral key
func (i Info) Payee() []byte {
	return signer.PayToKey(i.CollateralKey)
}

func (r *Record) String() string {
	last := r.SigTime
	delta := int64(0)
	if !r.LastPing.IsEmpty() {
		last = r.LastPing.SigTime
		delta = r.LastPing.SigTime - r.SigTime
	}
	return fmt.Sprintf("libernode{%s %d %s %s %d %d %d}",
		r.Address, r.Protocol, ShortString(r.Outpoint),
		signer.KeyIDOf(r.CollateralKey), last, delta, r.LastPaidBlock)
}
