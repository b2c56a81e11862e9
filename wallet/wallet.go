// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
)

// Collateral - an output suitable for backing a libernode and its keys
type Collateral struct {
	Outpoint wire.OutPoint
	Private  *btcec.PrivateKey
	Public   *btcec.PublicKey
}

// CollateralSource - the host wallet
type CollateralSource interface {
	IsAvailable() bool
	IsLocked() bool
	Balance() btcutil.Amount

	// find a collateral output, any suitable one when outpoint is nil
	Collateral(outpoint *wire.OutPoint) (*Collateral, error)

	// prevent the output being spent by ordinary payments
	LockCoin(outpoint wire.OutPoint)
}
