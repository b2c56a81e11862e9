// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package election

import (
	"math/big"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/libercoinproject/libercoin-old/masternode"
)

// Ranked - one entry of a ranking, ranks start at 1
type Ranked struct {
	Rank  int
	Score *big.Int
	Info  masternode.Info
}

// Filter - records taking part in a ranking
type Filter func(masternode.Info) bool

// Enabled - only enabled records
func Enabled(i masternode.Info) bool {
	return i.IsEnabled()
}

// ValidForPayment - records that may be paid
func ValidForPayment(i masternode.Info) bool {
	return i.IsValidForPayment()
}

// Any - records in every state
func Any(masternode.Info) bool {
	return true
}

// Rank - order by descending score at the block, ties broken on outpoint
func Rank(infos []masternode.Info, blockHash chainhash.Hash, minProtocol int32, filter Filter) []Ranked {
	ranks := make([]Ranked, 0, len(infos))
	for _, info := range infos {
		if info.Protocol < minProtocol || !filter(info) {
			continue
		}
		ranks = append(ranks, Ranked{
			Score: masternode.Score(info.Outpoint, blockHash),
			Info:  info,
		})
	}

	sort.Slice(ranks, func(i, j int) bool {
		if c := ranks[i].Score.Cmp(ranks[j].Score); 0 != c {
			return c > 0
		}
		return masternode.CompareOutpoints(ranks[i].Info.Outpoint, ranks[j].Info.Outpoint) > 0
	})

	for i := range ranks {
		ranks[i].Rank = i + 1
	}
	return ranks
}
