// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk state of the libernode subsystem
//
// A single LevelDB database is split into pools, each defined by a
// prefix byte taken from the prefix tag of the pools structure.
//
// Notes:
// 1. each pool has a single byte prefix
// 2. ++ = concatenation of byte data
// 3. a snapshot is the packed form of a whole component, it carries
//    its own version string and is discarded by the component when
//    that does not match
//
// Pools:
//
//   R ++ "state"      - packed registry snapshot
//   P ++ "state"      - packed payment ledger snapshot
//   M ++ "chain"      - chain name the database belongs to
//   M ++ "saved"      - unix time of the last snapshot, big endian uint64
//
// The key 0x00 ++ "VERSION" holds the database layout version.
package storage
