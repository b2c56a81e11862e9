// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package masternode - the libernode entity model
//
// A Record is the registry's view of one collateral backed node.
// A Broadcast is the signed announcement that creates or refreshes a
// Record and a Ping is the signed periodic proof of liveness.
//
// Validation functions return a misbehaviour score alongside the
// error, the caller applies a positive score to the peer that sent
// the message.  A nil error means the message was accepted.
package masternode
