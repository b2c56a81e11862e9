// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/binary"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"

	"github.com/libercoinproject/libercoin-old/clock"
	"github.com/libercoinproject/libercoin-old/fixtures"
	"github.com/libercoinproject/libercoin-old/masternode"
)

func newTestEnv() *masternode.Env {
	return fixtures.NewEnv(fixtures.NewChain(200, fixtures.Now), clock.NewManual(fixtures.Now))
}

func outpoint(n int) wire.OutPoint {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(n))
	return wire.OutPoint{Hash: chainhash.DoubleHashH(b)}
}

func TestArenaHandles(t *testing.T) {
	a := newArena()
	first := a.insert(&masternode.Record{Outpoint: outpoint(1)})
	second := a.insert(&masternode.Record{Outpoint: outpoint(2)})

	assert.Equal(t, 2, a.len(), "wrong size")
	assert.Equal(t, outpoint(1), a.get(first).Outpoint, "wrong record")

	a.remove(outpoint(1))
	assert.Nil(t, a.get(first), "removed record resolved")
	assert.Nil(t, a.lookup(outpoint(1)), "removed record found")

	// slot reused with a new generation
	third := a.insert(&masternode.Record{Outpoint: outpoint(3)})
	assert.Equal(t, first.slot, third.slot, "slot not reused")
	assert.Nil(t, a.get(first), "stale handle resolved to new record")
	assert.Equal(t, outpoint(3), a.get(third).Outpoint, "new handle wrong")
	assert.Equal(t, outpoint(2), a.get(second).Outpoint, "other handle disturbed")

	// replacing keeps the handle
	again := a.insert(&masternode.Record{Outpoint: outpoint(2), Protocol: 7})
	assert.Equal(t, second, again, "handle changed on replace")
	assert.Equal(t, int32(7), a.get(second).Protocol, "not replaced")
}

func TestArenaRemoveWhileVisiting(t *testing.T) {
	a := newArena()
	for i := 0; i < 10; i += 1 {
		a.insert(&masternode.Record{Outpoint: outpoint(i)})
	}
	visited := 0
	a.each(func(r *masternode.Record) {
		visited += 1
		a.remove(r.Outpoint)
	})
	assert.Equal(t, 10, visited, "records skipped")
	assert.Equal(t, 0, a.len(), "records left")
}

func TestIndexRebuild(t *testing.T) {
	env := newTestEnv()
	r := New(env, nil)

	kept := outpoint(MaxExpectedIndexSize + 5)
	for i := 0; i <= MaxExpectedIndexSize+10; i += 1 {
		r.index.add(outpoint(i))
	}
	r.nodes.insert(&masternode.Record{Outpoint: kept})
	oldPosition := r.Index(kept)

	r.CheckAndRebuildIndex()
	assert.True(t, r.IsIndexRebuilt(), "not rebuilt")
	assert.Equal(t, 1, r.IndexSize(), "wrong new size")
	assert.Equal(t, 0, r.Index(kept), "wrong new position")
	assert.Equal(t, oldPosition, r.IndexOld(kept), "old position lost")

	op, ok, rebuilt := r.OutpointAt(0)
	assert.True(t, ok, "position missing")
	assert.True(t, rebuilt, "rebuild not reported")
	assert.Equal(t, kept, op, "wrong outpoint")

	// too soon for another rebuild
	for i := 0; i <= MaxExpectedIndexSize+10; i += 1 {
		r.index.add(outpoint(i))
	}
	r.CheckAndRebuildIndex()
	assert.True(t, r.IndexSize() > MaxExpectedIndexSize, "rebuilt twice within the interval")

	r.ClearOldIndex()
	assert.Equal(t, -1, r.IndexOld(kept), "old index kept")
	assert.False(t, r.IsIndexRebuilt(), "rebuilt flag kept")
}

func TestIndexSmallNotRebuilt(t *testing.T) {
	r := New(newTestEnv(), nil)
	for i := 0; i < 100; i += 1 {
		r.index.add(outpoint(i))
	}
	r.CheckAndRebuildIndex()
	assert.False(t, r.IsIndexRebuilt(), "small index rebuilt")
	assert.Equal(t, 100, r.IndexSize(), "small index changed")
}
