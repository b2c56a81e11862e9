// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package verify - proof that a libernode controls its address
//
// a top ranked node dials another node directly with a nonce, the
// dialled node signs the nonce with its operational key, and the
// challenger countersigns and relays the pair so every peer can raise
// the ban score of other records claiming the same address
package verify
