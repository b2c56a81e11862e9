// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry holds the authoritative set of known libernodes
//
// records live in an arena and are referred to from outside by
// outpoint or by Handle, a slot number with a generation so that a
// handle to a removed record never resolves to its replacement
//
// lock order: chain view, then registry, then ledger, then sync
// state; hooks and relays run after the registry lock is released
package registry
