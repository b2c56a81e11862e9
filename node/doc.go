// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - the libernode subsystem as one runtime
//
// The host node supplies the chain view, the peer link and
// optionally a wallet; the runtime builds every service, feeds it
// peer messages and block tips, and runs the periodic processes.
//
// Lock order between the services is
//
//   registry -> ledger -> sync
//
// the chain view and the link are leaves and never call back.
package node
