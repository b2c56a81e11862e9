// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"math/big"

	btcchain "github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

var twoTo256 = new(big.Int).Lsh(big.NewInt(1), 256)

// Score - distance between two hashes seeded by a block hash
//
// one hash covers the block hash alone, the other the block hash
// followed by the outpoint hash plus its index as a 256 bit integer;
// the result is reproducible by anyone holding both inputs
func Score(outpoint wire.OutPoint, blockHash chainhash.Hash) *big.Int {
	aux := btcchain.HashToBig(&outpoint.Hash)
	aux.Add(aux, big.NewInt(int64(outpoint.Index)))
	aux.Mod(aux, twoTo256)

	h2 := chainhash.DoubleHashH(blockHash[:])
	h3 := chainhash.DoubleHashH(append(blockHash[:], bigToHashBytes(aux)...))

	a := btcchain.HashToBig(&h2)
	b := btcchain.HashToBig(&h3)
	return a.Sub(b, a).Abs(a)
}

// little endian 32 byte form of a non-negative integer below 2^256
func bigToHashBytes(n *big.Int) []byte {
	var h chainhash.Hash
	b := n.Bytes()
	for i := 0; i < len(b) && i < chainhash.HashSize; i += 1 {
		h[i] = b[len(b)-1-i]
	}
	return h[:]
}
