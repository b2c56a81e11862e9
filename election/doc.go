// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package election ranks libernodes for a block and selects the next
// one to be paid
//
// all functions work on snapshots taken from the registry so no
// registry lock is held while scores are computed
package election
