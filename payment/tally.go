// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payment

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/signer"
)

type payee struct {
	script []byte
	votes  []chainhash.Hash
}

// votes for one block height, payees in order of first vote
type tally struct {
	height int32
	payees []*payee
}

func (t *tally) add(v *Vote) {
	hash := v.Hash()
	for _, p := range t.payees {
		if bytes.Equal(p.script, v.Payee) {
			p.votes = append(p.votes, hash)
			return
		}
	}
	t.payees = append(t.payees, &payee{
		script: v.Payee,
		votes:  []chainhash.Hash{hash},
	})
}

// most voted payee, the earliest one wins a tie
func (t *tally) best() ([]byte, bool) {
	var script []byte
	votes := -1
	for _, p := range t.payees {
		if len(p.votes) > votes {
			script = p.script
			votes = len(p.votes)
		}
	}
	return script, votes > -1
}

func (t *tally) hasPayeeWithVotes(script []byte, required int) bool {
	for _, p := range t.payees {
		if len(p.votes) >= required && bytes.Equal(p.script, script) {
			return true
		}
	}
	return false
}

func (t *tally) totalVotes() int {
	n := 0
	for _, p := range t.payees {
		n += len(p.votes)
	}
	return n
}

// below the threshold any payee is accepted, otherwise some payee
// with enough votes must be paid exactly the amount
func (t *tally) isTransactionValid(outputs []*wire.TxOut, amount btcutil.Amount, net *chaincfg.Params) (bool, string) {
	maxVotes := 0
	for _, p := range t.payees {
		if len(p.votes) >= maxVotes {
			maxVotes = len(p.votes)
		}
	}
	if maxVotes < SignaturesRequired {
		return true, ""
	}

	possible := []string{}
	for _, p := range t.payees {
		if len(p.votes) < SignaturesRequired {
			continue
		}
		for _, out := range outputs {
			if bytes.Equal(p.script, out.PkScript) && int64(amount) == out.Value {
				return true, ""
			}
		}
		possible = append(possible, signer.PayeeAddress(p.script, net))
	}
	return false, strings.Join(possible, ",")
}

func (t *tally) requiredPayments(net *chaincfg.Params) string {
	if 0 == len(t.payees) {
		return "Unknown"
	}
	s := make([]string, 0, len(t.payees))
	for _, p := range t.payees {
		s = append(s, signer.PayeeAddress(p.script, net)+":"+strconv.Itoa(len(p.votes)))
	}
	return strings.Join(s, ", ")
}
