// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payment

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/signer"
)

func valueOut(outputs []*wire.TxOut) btcutil.Amount {
	total := btcutil.Amount(0)
	for _, out := range outputs {
		total += btcutil.Amount(out.Value)
	}
	return total
}

// IsTransactionValid - coinbase outputs satisfy the height's tally
//
// heights without a tally accept anything
func (l *Ledger) IsTransactionValid(height int32, outputs []*wire.TxOut) bool {
	amount := l.env.Params.NodePayment(height, valueOut(outputs))

	l.RLock()
	t, ok := l.blocks[height]
	if !ok {
		l.RUnlock()
		return true
	}
	valid, possible := t.isTransactionValid(outputs, amount, l.env.Params.Net)
	l.RUnlock()

	if !valid {
		l.log.Warnf("missing required payment, possible payees: %q  amount: %s", possible, amount)
	}
	return valid
}

// IsBlockPayeeValid - a new block pays the elected node
//
// before payments start or while not synced the longest chain is
// accepted, without enforcement a bad payee is only logged
func (l *Ledger) IsBlockPayeeValid(height int32, outputs []*wire.TxOut) bool {
	if height < l.env.Params.PaymentsStartBlock {
		l.log.Debug("libernode payments not started")
		return true
	}
	if !l.sync.IsSynced() {
		l.log.Debug("not synced, skipping block payee checks")
		return true
	}
	if l.IsTransactionValid(height, outputs) {
		l.log.Debugf("valid libernode payment at height: %d", height)
		return true
	}
	if l.config.Enforce {
		return false
	}
	l.log.Info("libernode payment enforcement is disabled, accepting block")
	return true
}

// IsBlockValueValid - the coinbase does not create more than the reward
func (l *Ledger) IsBlockValueValid(height int32, outputs []*wire.TxOut, reward btcutil.Amount) error {
	value := valueOut(outputs)
	l.log.Debugf("coinbase value: %d <= reward: %d", value, reward)
	if value <= reward {
		return nil
	}
	if !l.sync.IsSynced() {
		return fmt.Errorf("%w at height %d (actual=%d vs limit=%d), exceeded block reward, only regular blocks are allowed at this height",
			fault.ErrCoinbaseExceedsReward, height, value, reward)
	}
	return fmt.Errorf("%w at height %d (actual=%d vs limit=%d), exceeded block reward, superblocks are disabled",
		fault.ErrCoinbaseExceedsReward, height, value, reward)
}

// FillBlockPayee - output paying the node for a block being built
//
// the most voted payee is used, otherwise the locally elected one
func (l *Ledger) FillBlockPayee(height int32, payment btcutil.Amount) (*wire.TxOut, error) {
	script, voted := l.BlockPayee(height)
	if !voted {
		info, _, ok := l.elector.NextInQueueForPayment(height, true)
		if !ok {
			l.log.Error("failed to detect libernode to pay")
			return nil, fault.ErrNodeNotFound
		}
		script = info.Payee()
	}

	address := signer.PayeeAddress(script, l.env.Params.Net)
	if voted {
		l.log.Infof("voted libernode payment: %d to: %s", payment, address)
	} else {
		l.log.Infof("libernode payment: %d to: %s", payment, address)
	}
	return wire.NewTxOut(int64(payment), script), nil
}

// RequiredPaymentsString - payees and vote counts for a height
func (l *Ledger) RequiredPaymentsString(height int32) string {
	l.RLock()
	defer l.RUnlock()
	t, ok := l.blocks[height]
	if !ok {
		return "Unknown"
	}
	return t.requiredPayments(l.env.Params.Net)
}
