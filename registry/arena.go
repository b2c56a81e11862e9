// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/masternode"
)

// Handle - stable reference to a record
type Handle struct {
	slot       int
	generation uint32
}

type slot struct {
	generation uint32
	record     *masternode.Record
}

// slot storage, slots are reused through a free list
type arena struct {
	slots      []slot
	free       []int
	byOutpoint map[wire.OutPoint]Handle
}

func newArena() *arena {
	return &arena{
		byOutpoint: make(map[wire.OutPoint]Handle),
	}
}

func (a *arena) insert(r *masternode.Record) Handle {
	if h, ok := a.byOutpoint[r.Outpoint]; ok {
		a.slots[h.slot].record = r
		return h
	}

	var n int
	if l := len(a.free); l > 0 {
		n = a.free[l-1]
		a.free = a.free[:l-1]
	} else {
		n = len(a.slots)
		a.slots = append(a.slots, slot{})
	}
	a.slots[n].generation += 1
	a.slots[n].record = r

	h := Handle{slot: n, generation: a.slots[n].generation}
	a.byOutpoint[r.Outpoint] = h
	return h
}

func (a *arena) get(h Handle) *masternode.Record {
	if h.slot < 0 || h.slot >= len(a.slots) {
		return nil
	}
	s := a.slots[h.slot]
	if s.generation != h.generation {
		return nil
	}
	return s.record
}

func (a *arena) lookup(outpoint wire.OutPoint) *masternode.Record {
	h, ok := a.byOutpoint[outpoint]
	if !ok {
		return nil
	}
	return a.slots[h.slot].record
}

func (a *arena) remove(outpoint wire.OutPoint) {
	h, ok := a.byOutpoint[outpoint]
	if !ok {
		return
	}
	delete(a.byOutpoint, outpoint)
	a.slots[h.slot].record = nil
	a.free = append(a.free, h.slot)
}

// visit live records in slot order, f may remove the visited record
func (a *arena) each(f func(r *masternode.Record)) {
	for i := range a.slots {
		if r := a.slots[i].record; nil != r {
			f(r)
		}
	}
}

func (a *arena) len() int {
	return len(a.byOutpoint)
}

func (a *arena) clear() {
	a.slots = nil
	a.free = nil
	a.byOutpoint = make(map[wire.OutPoint]Handle)
}
