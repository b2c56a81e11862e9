// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/btcsuite/btcd/wire"
)

// Confirmations - depth of a coin, the block containing it counts as one
func Confirmations(view View, outpoint wire.OutPoint) (int32, error) {
	coin, err := view.Coin(outpoint)
	if nil != err {
		return 0, err
	}
	return view.Height() - coin.Height + 1, nil
}
