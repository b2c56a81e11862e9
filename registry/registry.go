// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"bytes"
	"fmt"
	"net/netip"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
)

// list request and recovery timing
const (
	ListUpdateInterval = 3 * time.Hour

	RecoveryQuorumTotal    = 10
	RecoveryQuorumRequired = 6
	RecoveryMaxAskEntries  = 10
	RecoveryWait           = 60 * time.Second
	RecoveryRetry          = 3 * time.Hour

	MaxExpectedIndexSize = 30000
	MinIndexRebuildTime  = time.Hour

	LastPaidScanBlocks = 100
)

type seenBroadcast struct {
	time      int64
	broadcast *masternode.Broadcast
}

type recoveryRequest struct {
	deadline int64
	asked    map[netip.Addr]struct{}
}

type scheduledRequest struct {
	address netip.AddrPort
	hash    chainhash.Hash
}

// Registry - all known libernodes
type Registry struct {
	sync.RWMutex

	log  *logger.L
	env  *masternode.Env
	link network.Link

	nodes    *arena
	index    *index
	indexOld *index

	seenBroadcasts map[chainhash.Hash]*seenBroadcast
	seenPings      map[chainhash.Hash]*masternode.Ping

	// per address expiry times of list requests
	askedUs      map[netip.Addr]int64
	weAsked      map[netip.Addr]int64
	weAskedEntry map[wire.OutPoint]map[netip.Addr]int64

	recoveryRequests map[chainhash.Hash]*recoveryRequest
	goodReplies      map[chainhash.Hash][]*masternode.Broadcast
	scheduled        []scheduledRequest

	lastWatchdogVote int64
	lastIndexRebuild int64
	indexRebuilt     bool
	added            bool
	removed          bool
	firstPaidScan    bool

	onUpdates       func(added bool, removed bool)
	onSelfAnnounced func()
}

// New - create an empty registry
func New(env *masternode.Env, link network.Link) *Registry {
	r := &Registry{
		log:  logger.New("registry"),
		env:  env,
		link: link,
	}
	r.reset()
	return r
}

// must hold the write lock or be constructing
func (r *Registry) reset() {
	r.nodes = newArena()
	r.index = newIndex()
	r.indexOld = newIndex()
	r.seenBroadcasts = make(map[chainhash.Hash]*seenBroadcast)
	r.seenPings = make(map[chainhash.Hash]*masternode.Ping)
	r.askedUs = make(map[netip.Addr]int64)
	r.weAsked = make(map[netip.Addr]int64)
	r.weAskedEntry = make(map[wire.OutPoint]map[netip.Addr]int64)
	r.recoveryRequests = make(map[chainhash.Hash]*recoveryRequest)
	r.goodReplies = make(map[chainhash.Hash][]*masternode.Broadcast)
	r.scheduled = nil
	r.lastWatchdogVote = 0
	r.indexRebuilt = false
	r.firstPaidScan = true
}

// Clear - forget everything
func (r *Registry) Clear() {
	r.Lock()
	r.reset()
	r.Unlock()
}

// OnUpdates - listener for NotifyUpdates, called without the lock held
func (r *Registry) OnUpdates(f func(added bool, removed bool)) {
	r.Lock()
	r.onUpdates = f
	r.Unlock()
}

// OnSelfAnnounced - called without the lock held when a broadcast for
// the local node arrives with the current protocol
func (r *Registry) OnSelfAnnounced(f func()) {
	r.Lock()
	r.onSelfAnnounced = f
	r.Unlock()
}

// must hold the lock
func (r *Registry) census() masternode.Census {
	return masternode.Census{
		Size:           r.nodes.len(),
		WatchdogActive: r.isWatchdogActive(),
	}
}

// must hold the lock
func (r *Registry) add(rec *masternode.Record) bool {
	if nil != r.nodes.lookup(rec.Outpoint) {
		return false
	}
	r.log.Debugf("adding new libernode: addr=%s, %d now", rec.Address, r.nodes.len()+1)
	r.nodes.insert(rec)
	r.index.add(rec.Outpoint)
	r.added = true
	return true
}

// Has - outpoint is known
func (r *Registry) Has(outpoint wire.OutPoint) bool {
	r.RLock()
	defer r.RUnlock()
	return nil != r.nodes.lookup(outpoint)
}

// Size - number of records
func (r *Registry) Size() int {
	r.RLock()
	defer r.RUnlock()
	return r.nodes.len()
}

// Get - snapshot of one record
func (r *Registry) Get(outpoint wire.OutPoint) (masternode.Info, bool) {
	r.Lock()
	defer r.Unlock()
	rec := r.nodes.lookup(outpoint)
	if nil == rec {
		return masternode.Info{}, false
	}
	return r.info(rec), true
}

// Lookup - handle of a record
func (r *Registry) Lookup(outpoint wire.OutPoint) (Handle, bool) {
	r.RLock()
	defer r.RUnlock()
	h, ok := r.nodes.byOutpoint[outpoint]
	return h, ok
}

// InfoByHandle - snapshot through a handle, false once the record is removed
func (r *Registry) InfoByHandle(h Handle) (masternode.Info, bool) {
	r.Lock()
	defer r.Unlock()
	rec := r.nodes.get(h)
	if nil == rec {
		return masternode.Info{}, false
	}
	return r.info(rec), true
}

// GetByKey - snapshot of the record with an operational key
func (r *Registry) GetByKey(pub *btcec.PublicKey) (masternode.Info, bool) {
	r.Lock()
	defer r.Unlock()
	rec := r.findByKey(pub)
	if nil == rec {
		return masternode.Info{}, false
	}
	return r.info(rec), true
}

// must hold the lock
func (r *Registry) findByKey(pub *btcec.PublicKey) *masternode.Record {
	var found *masternode.Record
	r.nodes.each(func(rec *masternode.Record) {
		if nil == found && nil != pub && rec.OperationalKey.IsEqual(pub) {
			found = rec
		}
	})
	return found
}

// FindByPayee - snapshot of the record paid by a script
func (r *Registry) FindByPayee(script []byte) (masternode.Info, bool) {
	r.Lock()
	defer r.Unlock()
	var found *masternode.Record
	r.nodes.each(func(rec *masternode.Record) {
		if nil == found && bytes.Equal(script, rec.Payee()) {
			found = rec
		}
	})
	if nil == found {
		return masternode.Info{}, false
	}
	return r.info(found), true
}

// must hold the write lock, the collateral height is cached
func (r *Registry) info(rec *masternode.Record) masternode.Info {
	info := rec.Info()
	info.CollateralAge = rec.CollateralAge(r.env.Chain)
	return info
}

// Infos - snapshots of every record in slot order
func (r *Registry) Infos() []masternode.Info {
	r.Lock()
	defer r.Unlock()
	result := make([]masternode.Info, 0, r.nodes.len())
	r.nodes.each(func(rec *masternode.Record) {
		result = append(result, r.info(rec))
	})
	return result
}

func (r *Registry) protocolOrMinimum(protocol int32) int32 {
	if -1 == protocol {
		return r.env.MinPaymentsProtocol()
	}
	return protocol
}

// CountNodes - records at or above a protocol, -1 for the payment minimum
func (r *Registry) CountNodes(protocol int32) int {
	protocol = r.protocolOrMinimum(protocol)
	r.RLock()
	defer r.RUnlock()
	n := 0
	r.nodes.each(func(rec *masternode.Record) {
		if rec.Protocol >= protocol {
			n += 1
		}
	})
	return n
}

// CountEnabled - enabled records at or above a protocol, -1 for the payment minimum
func (r *Registry) CountEnabled(protocol int32) int {
	protocol = r.protocolOrMinimum(protocol)
	r.RLock()
	defer r.RUnlock()
	n := 0
	r.nodes.each(func(rec *masternode.Record) {
		if rec.Protocol >= protocol && rec.IsEnabled() {
			n += 1
		}
	})
	return n
}

// Check - recompute the state of one record
func (r *Registry) Check(outpoint wire.OutPoint, force bool) {
	r.Lock()
	defer r.Unlock()
	if rec := r.nodes.lookup(outpoint); nil != rec {
		rec.Check(r.env, r.census(), force)
	}
}

// CheckAll - recompute the state of every record
func (r *Registry) CheckAll() {
	r.Lock()
	defer r.Unlock()
	r.checkAll()
}

// must hold the lock
func (r *Registry) checkAll() {
	census := r.census()
	r.nodes.each(func(rec *masternode.Record) {
		rec.Check(r.env, census, false)
	})
}

// State - state of a record, unknown records need a new start
func (r *Registry) State(outpoint wire.OutPoint) masternode.State {
	r.RLock()
	defer r.RUnlock()
	rec := r.nodes.lookup(outpoint)
	if nil == rec {
		return masternode.NewStartRequired
	}
	return rec.State
}

// IsPingedWithin - the record has a ping signed less than d before at
func (r *Registry) IsPingedWithin(outpoint wire.OutPoint, d time.Duration, at int64) bool {
	r.RLock()
	defer r.RUnlock()
	rec := r.nodes.lookup(outpoint)
	return nil != rec && rec.IsPingedWithin(d, at)
}

// SetLastPing - install a locally created ping
func (r *Registry) SetLastPing(outpoint wire.OutPoint, p *masternode.Ping) {
	r.Lock()
	defer r.Unlock()
	rec := r.nodes.lookup(outpoint)
	if nil == rec {
		return
	}
	rec.LastPing = p
	r.seenPings[p.Hash()] = p
	r.setSeenPing(rec, p)
}

// must hold the lock
func (r *Registry) setSeenPing(rec *masternode.Record, p *masternode.Ping) {
	seen, ok := r.seenBroadcasts[rec.ToBroadcast().Hash()]
	if !ok {
		return
	}
	b := seen.broadcast.Copy()
	b.LastPing = p
	seen.broadcast = b
}

// IncreasePoSeBanScore - one more failed proof of service
func (r *Registry) IncreasePoSeBanScore(outpoint wire.OutPoint) {
	r.Lock()
	defer r.Unlock()
	if rec := r.nodes.lookup(outpoint); nil != rec {
		rec.IncreasePoSeBanScore()
	}
}

// DecreasePoSeBanScore - one more successful proof of service
func (r *Registry) DecreasePoSeBanScore(outpoint wire.OutPoint) {
	r.Lock()
	defer r.Unlock()
	if rec := r.nodes.lookup(outpoint); nil != rec {
		rec.DecreasePoSeBanScore()
	}
}

// PoSeBan - ban a record at its next check
func (r *Registry) PoSeBan(outpoint wire.OutPoint) {
	r.Lock()
	defer r.Unlock()
	if rec := r.nodes.lookup(outpoint); nil != rec {
		rec.PoSeBan()
	}
}

// UpdateWatchdogVoteTime - record an external liveness vote
func (r *Registry) UpdateWatchdogVoteTime(outpoint wire.OutPoint) {
	r.Lock()
	defer r.Unlock()
	rec := r.nodes.lookup(outpoint)
	if nil == rec {
		return
	}
	now := r.env.Now()
	rec.UpdateWatchdogVoteTime(now)
	r.lastWatchdogVote = now
}

// IsWatchdogActive - some record received a watchdog vote recently
func (r *Registry) IsWatchdogActive() bool {
	r.RLock()
	defer r.RUnlock()
	return r.isWatchdogActive()
}

func (r *Registry) isWatchdogActive() bool {
	return r.env.Now()-r.lastWatchdogVote <= int64(masternode.WatchdogMaxTime/time.Second)
}

// UpdateLastPaid - rescan recent blocks for payments to every record
//
// a full storage limit scan happens on the first run and whenever the
// local process is not a libernode, every later scan covers the last
// hundred blocks; it stays a first run until the votes are synced
func (r *Registry) UpdateLastPaid(votes masternode.PayeeVotes, storageLimit int, votesSynced bool) {
	r.Lock()
	defer r.Unlock()

	maxBlocks := LastPaidScanBlocks
	if r.firstPaidScan || nil == r.env.Self || nil == r.env.Self.OperationalKey() {
		maxBlocks = storageLimit
	}
	r.log.Debugf("update last paid: height: %d  scan: %d  first: %t", r.env.Chain.Height(), maxBlocks, r.firstPaidScan)

	r.nodes.each(func(rec *masternode.Record) {
		rec.UpdateLastPaid(r.env.Chain, r.env.Params, votes, maxBlocks)
	})

	r.firstPaidScan = !votesSynced
}

// UpdateList - insert or refresh from a locally produced broadcast
func (r *Registry) UpdateList(b *masternode.Broadcast) {
	r.Lock()
	defer r.Unlock()

	if !b.LastPing.IsEmpty() {
		r.seenPings[b.LastPing.Hash()] = b.LastPing
	}
	hash := b.Hash()
	r.seenBroadcasts[hash] = &seenBroadcast{time: r.env.Now(), broadcast: b}

	r.log.Infof("update list: libernode: %s  addr: %s", masternode.ShortString(b.Outpoint), b.Address)

	rec := r.nodes.lookup(b.Outpoint)
	if nil == rec {
		if r.add(masternode.NewRecord(b)) {
			r.env.Sync.AddedList()
		}
		return
	}
	oldHash := rec.ToBroadcast().Hash()
	if updated, _ := rec.UpdateFromBroadcast(b, r.env, r.census()); updated {
		r.env.Sync.AddedList()
		if oldHash != hash {
			delete(r.seenBroadcasts, oldHash)
		}
	}
}

// SeenBroadcast - cached broadcast for a GETDATA request
func (r *Registry) SeenBroadcast(hash chainhash.Hash) (*masternode.Broadcast, bool) {
	r.RLock()
	defer r.RUnlock()
	seen, ok := r.seenBroadcasts[hash]
	if !ok {
		return nil, false
	}
	return seen.broadcast, true
}

// SeenPing - cached ping for a GETDATA request
func (r *Registry) SeenPing(hash chainhash.Hash) (*masternode.Ping, bool) {
	r.RLock()
	defer r.RUnlock()
	p, ok := r.seenPings[hash]
	return p, ok
}

// HasSeenBroadcast - for inventory filtering
func (r *Registry) HasSeenBroadcast(hash chainhash.Hash) bool {
	r.RLock()
	defer r.RUnlock()
	_, ok := r.seenBroadcasts[hash]
	return ok
}

// HasSeenPing - for inventory filtering
func (r *Registry) HasSeenPing(hash chainhash.Hash) bool {
	r.RLock()
	defer r.RUnlock()
	_, ok := r.seenPings[hash]
	return ok
}

// NotifyUpdates - report and clear the added and removed flags
func (r *Registry) NotifyUpdates() {
	r.Lock()
	added := r.added
	removed := r.removed
	f := r.onUpdates
	r.added = false
	r.removed = false
	r.Unlock()

	if nil != f && (added || removed) {
		f(added, removed)
	}
}

// Summary - one line description
func (r *Registry) Summary() string {
	r.RLock()
	defer r.RUnlock()
	return r.summary()
}

func (r *Registry) summary() string {
	return fmt.Sprintf("Libernodes: %d, peers who asked us for Libernode list: %d, peers we asked for Libernode list: %d, entries in Libernode list we asked for: %d, libernode index size: %d",
		r.nodes.len(), len(r.askedUs), len(r.weAsked), len(r.weAskedEntry), r.index.size())
}
