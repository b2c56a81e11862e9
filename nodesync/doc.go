// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package nodesync drives the staged download of libernode data
//
// the stages run in order: initial, sporks, list, payment votes and
// finished; a stage that makes no progress before its timeout fails
// the whole sync, which restarts after a cooldown
package nodesync
