// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package nodeconf - the identities of remotely operated libernodes
//
// One identity per line, fields separated by white space:
//
//   alias  address:port  operational-key-WIF  collateral-txid  collateral-index
//
// Blank lines and lines starting with '#' are ignored.
package nodeconf
