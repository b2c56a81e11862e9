// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package payment - the payment vote ledger
//
// the top ranked libernodes each vote for the node to be paid a few
// blocks ahead, votes are tallied per height and a payee with enough
// votes becomes mandatory in that block's coinbase
//
// the ledger lock is never held while calling the registry or the
// elector
package payment
