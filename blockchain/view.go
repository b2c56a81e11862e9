// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Coin - an unspent transaction output
type Coin struct {
	Value    btcutil.Amount
	Height   int32
	PkScript []byte
}

// View - read access to the host node's chain state
//
// every method may return fault.ErrChainBusy when the chain lock is
// held elsewhere, callers treat that as "try again later"
type View interface {
	// height of the active tip, -1 before genesis
	Height() int32
	// height of the best known header
	HeaderHeight() int32

	BlockHash(height int32) (chainhash.Hash, error)
	BlockHeight(hash chainhash.Hash) (int32, error)
	BlockTime(height int32) (time.Time, error)

	// fault.ErrCoinNotFound when spent or unknown
	Coin(outpoint wire.OutPoint) (*Coin, error)

	CoinbaseOutputs(height int32) ([]*wire.TxOut, error)
}
