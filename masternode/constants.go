// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"time"
)

// timing of the record state machine
const (
	CheckInterval         = 5 * time.Second
	MinBroadcastInterval  = 5 * time.Minute
	MinPingInterval       = 10 * time.Minute
	ExpirationTime        = 65 * time.Minute
	WatchdogMaxTime       = 120 * time.Minute
	NewStartRequiredTime  = 180 * time.Minute
	FutureSignatureWindow = time.Hour
)

// PoSeBanMaxScore - proof of service ban threshold, scores are bounded to ±this
const PoSeBanMaxScore = 5

// ping block references
const (
	PingBlockOffset = 12
	PingBlockDepth  = 24
)

// misbehaviour scores
const (
	dosFutureSignature = 1
	dosKeyMismatch     = 33
	dosBadPing         = 33
	dosBadSignature    = 100
	dosWrongKeySize    = 100
	dosScriptSig       = 100
)

// State - lifecycle state of a record
type State int

// all record states
const (
	PreEnabled State = iota
	Enabled
	Expired
	OutpointSpent
	UpdateRequired
	WatchdogExpired
	NewStartRequired
	PoSeBan
)

func (s State) String() string {
	switch s {
	case PreEnabled:
		return "PRE_ENABLED"
	case Enabled:
		return "ENABLED"
	case Expired:
		return "EXPIRED"
	case OutpointSpent:
		return "OUTPOINT_SPENT"
	case UpdateRequired:
		return "UPDATE_REQUIRED"
	case WatchdogExpired:
		return "WATCHDOG_EXPIRED"
	case NewStartRequired:
		return "NEW_START_REQUIRED"
	case PoSeBan:
		return "POSE_BAN"
	default:
		return "UNKNOWN"
	}
}

// IsValidForAutoStart - states from which a configured node may be restarted remotely
func (s State) IsValidForAutoStart() bool {
	switch s {
	case Enabled, PreEnabled, Expired, WatchdogExpired:
		return true
	default:
		return false
	}
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
