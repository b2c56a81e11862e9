// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/blockchain"
	"github.com/libercoinproject/libercoin-old/fault"
)

// BlockSpacing - time between generated blocks
const BlockSpacing = 150 * time.Second

// Chain - in memory blockchain.View
type Chain struct {
	sync.Mutex
	start    time.Time
	hashes   []chainhash.Hash
	heights  map[chainhash.Hash]int32
	coins    map[wire.OutPoint]*blockchain.Coin
	coinbase map[int32][]*wire.TxOut
	header   int32
	busy     bool
}

// NewChain - a chain of height blocks, the tip timed at tip
func NewChain(height int32, tip time.Time) *Chain {
	c := &Chain{
		start:    tip.Add(-time.Duration(height) * BlockSpacing),
		heights:  make(map[chainhash.Hash]int32),
		coins:    make(map[wire.OutPoint]*blockchain.Coin),
		coinbase: make(map[int32][]*wire.TxOut),
	}
	c.Extend(height + 1)
	return c
}

func blockHash(height int32) chainhash.Hash {
	b := make([]byte, 9)
	b[0] = 'B'
	binary.LittleEndian.PutUint64(b[1:], uint64(height))
	return chainhash.DoubleHashH(b)
}

// Extend - append n blocks
func (c *Chain) Extend(n int32) {
	c.Lock()
	defer c.Unlock()
	for i := int32(0); i < n; i += 1 {
		h := int32(len(c.hashes))
		hash := blockHash(h)
		c.hashes = append(c.hashes, hash)
		c.heights[hash] = h
	}
	c.header = int32(len(c.hashes)) - 1
}

// SetBusy - make every lookup fail with fault.ErrChainBusy
func (c *Chain) SetBusy(busy bool) {
	c.Lock()
	c.busy = busy
	c.Unlock()
}

// SetHeaderHeight - override the best header height
func (c *Chain) SetHeaderHeight(height int32) {
	c.Lock()
	c.header = height
	c.Unlock()
}

// AddCoin - add an unspent output
func (c *Chain) AddCoin(outpoint wire.OutPoint, value btcutil.Amount, height int32, script []byte) {
	c.Lock()
	c.coins[outpoint] = &blockchain.Coin{
		Value:    value,
		Height:   height,
		PkScript: script,
	}
	c.Unlock()
}

// Spend - remove an output
func (c *Chain) Spend(outpoint wire.OutPoint) {
	c.Lock()
	delete(c.coins, outpoint)
	c.Unlock()
}

// SetCoinbase - outputs of a block's first transaction
func (c *Chain) SetCoinbase(height int32, outputs []*wire.TxOut) {
	c.Lock()
	c.coinbase[height] = outputs
	c.Unlock()
}

// Height - tip height
func (c *Chain) Height() int32 {
	c.Lock()
	defer c.Unlock()
	return int32(len(c.hashes)) - 1
}

// HeaderHeight - best header
func (c *Chain) HeaderHeight() int32 {
	c.Lock()
	defer c.Unlock()
	return c.header
}

// BlockHash - hash at a height
func (c *Chain) BlockHash(height int32) (chainhash.Hash, error) {
	c.Lock()
	defer c.Unlock()
	if c.busy {
		return chainhash.Hash{}, fault.ErrChainBusy
	}
	if height < 0 || int(height) >= len(c.hashes) {
		return chainhash.Hash{}, fault.ErrBlockNotFound
	}
	return c.hashes[height], nil
}

// BlockHeight - height of a known hash
func (c *Chain) BlockHeight(hash chainhash.Hash) (int32, error) {
	c.Lock()
	defer c.Unlock()
	h, ok := c.heights[hash]
	if !ok {
		return 0, fault.ErrUnknownBlockHash
	}
	return h, nil
}

// BlockTime - evenly spaced block times
func (c *Chain) BlockTime(height int32) (time.Time, error) {
	c.Lock()
	defer c.Unlock()
	if height < 0 || int(height) >= len(c.hashes) {
		return time.Time{}, fault.ErrBlockNotFound
	}
	return c.start.Add(time.Duration(height) * BlockSpacing), nil
}

// Coin - unspent output lookup
func (c *Chain) Coin(outpoint wire.OutPoint) (*blockchain.Coin, error) {
	c.Lock()
	defer c.Unlock()
	if c.busy {
		return nil, fault.ErrChainBusy
	}
	coin, ok := c.coins[outpoint]
	if !ok {
		return nil, fault.ErrCoinNotFound
	}
	return coin, nil
}

// CoinbaseOutputs - outputs set with SetCoinbase
func (c *Chain) CoinbaseOutputs(height int32) ([]*wire.TxOut, error) {
	c.Lock()
	defer c.Unlock()
	outputs, ok := c.coinbase[height]
	if !ok {
		return nil, fault.ErrBlockNotFound
	}
	return outputs, nil
}

// BlockHashAt - hash at a height without error handling
func BlockHashAt(height int32) chainhash.Hash {
	return blockHash(height)
}
