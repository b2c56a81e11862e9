// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package activation runs the local libernode
//
// it finds the external address, adopts an identity already announced
// for the operational key or announces one from local collateral, and
// then keeps the identity alive with pings
package activation
