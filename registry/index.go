// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"time"

	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/masternode"
)

// outpoint <-> small integer, positions never move until a rebuild
type index struct {
	forward map[int]wire.OutPoint
	reverse map[wire.OutPoint]int
}

func newIndex() *index {
	return &index{
		forward: make(map[int]wire.OutPoint),
		reverse: make(map[wire.OutPoint]int),
	}
}

func (x *index) size() int {
	return len(x.forward)
}

func (x *index) get(i int) (wire.OutPoint, bool) {
	op, ok := x.forward[i]
	return op, ok
}

// -1 when absent
func (x *index) indexOf(outpoint wire.OutPoint) int {
	i, ok := x.reverse[outpoint]
	if !ok {
		return -1
	}
	return i
}

func (x *index) add(outpoint wire.OutPoint) {
	if _, ok := x.reverse[outpoint]; ok {
		return
	}
	i := len(x.forward)
	x.forward[i] = outpoint
	x.reverse[outpoint] = i
}

func (x *index) clear() {
	x.forward = make(map[int]wire.OutPoint)
	x.reverse = make(map[wire.OutPoint]int)
}

func (x *index) outpoints() []wire.OutPoint {
	result := make([]wire.OutPoint, x.size())
	for i, op := range x.forward {
		result[i] = op
	}
	return result
}

// Index - position of an outpoint, -1 when not indexed
func (r *Registry) Index(outpoint wire.OutPoint) int {
	r.RLock()
	defer r.RUnlock()
	return r.index.indexOf(outpoint)
}

// IndexOld - position in the index before the last rebuild
func (r *Registry) IndexOld(outpoint wire.OutPoint) int {
	r.RLock()
	defer r.RUnlock()
	return r.indexOld.indexOf(outpoint)
}

// OutpointAt - outpoint at a position, also reports whether the index was rebuilt
func (r *Registry) OutpointAt(i int) (wire.OutPoint, bool, bool) {
	r.RLock()
	defer r.RUnlock()
	op, ok := r.index.get(i)
	return op, ok, r.indexRebuilt
}

// OutpointAtOld - outpoint at a position in the previous index
func (r *Registry) OutpointAtOld(i int) (wire.OutPoint, bool) {
	r.RLock()
	defer r.RUnlock()
	return r.indexOld.get(i)
}

// IndexSize - positions allocated, removed records keep theirs
func (r *Registry) IndexSize() int {
	r.RLock()
	defer r.RUnlock()
	return r.index.size()
}

// IsIndexRebuilt - true after a rebuild until ClearOldIndex
func (r *Registry) IsIndexRebuilt() bool {
	r.RLock()
	defer r.RUnlock()
	return r.indexRebuilt
}

// ClearOldIndex - consumers have switched to the new positions
func (r *Registry) ClearOldIndex() {
	r.Lock()
	defer r.Unlock()
	r.indexOld.clear()
	r.indexRebuilt = false
}

// CheckAndRebuildIndex - compact the index when it has grown too sparse
func (r *Registry) CheckAndRebuildIndex() {
	r.Lock()
	defer r.Unlock()
	r.checkAndRebuildIndex()
}

// must hold the lock
func (r *Registry) checkAndRebuildIndex() {
	now := r.env.Now()
	if now-r.lastIndexRebuild < int64(MinIndexRebuildTime/time.Second) {
		return
	}
	if r.index.size() <= MaxExpectedIndexSize {
		return
	}
	if r.index.size() <= r.nodes.len() {
		return
	}

	r.indexOld = r.index
	r.index = newIndex()
	r.nodes.each(func(rec *masternode.Record) {
		r.index.add(rec.Outpoint)
	})
	r.indexRebuilt = true
	r.lastIndexRebuild = now
	r.log.Infof("index rebuilt: size: %d", r.index.size())
}
