// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"bytes"
	"encoding/binary"
)

// SyncStage - stage of the staged synchronisation
type SyncStage int32

// stages in the order they are run, failed and finished are absorbing
const (
	StageFailed       SyncStage = -1
	StageInitial      SyncStage = 0
	StageSporks       SyncStage = 1
	StageList         SyncStage = 2
	StagePaymentVotes SyncStage = 3
	StageFinished     SyncStage = 999
)

func (s SyncStage) String() string {
	switch s {
	case StageFailed:
		return "LIBERNODE_SYNC_FAILED"
	case StageInitial:
		return "LIBERNODE_SYNC_INITIAL"
	case StageSporks:
		return "LIBERNODE_SYNC_SPORKS"
	case StageList:
		return "LIBERNODE_SYNC_LIST"
	case StagePaymentVotes:
		return "LIBERNODE_SYNC_MNW"
	case StageFinished:
		return "LIBERNODE_SYNC_FINISHED"
	default:
		return "UNKNOWN"
	}
}

// PackSyncStatus - payload of a sync status message
func PackSyncStatus(stage SyncStage, count int) []byte {
	buffer := bytes.Buffer{}
	_ = binary.Write(&buffer, binary.LittleEndian, int32(stage))
	_ = binary.Write(&buffer, binary.LittleEndian, int32(count))
	return buffer.Bytes()
}

// UnpackSyncStatus - decode a sync status message
func UnpackSyncStatus(payload []byte) (SyncStage, int, error) {
	r := bytes.NewReader(payload)
	stage := int32(0)
	count := int32(0)
	if err := binary.Read(r, binary.LittleEndian, &stage); nil != err {
		return StageInitial, 0, err
	}
	if err := binary.Read(r, binary.LittleEndian, &count); nil != err {
		return StageInitial, 0, err
	}
	return SyncStage(stage), int(count), nil
}

// PackVoteRequest - payload of a payment vote request, the count is a hint
func PackVoteRequest(count int) []byte {
	buffer := bytes.Buffer{}
	_ = binary.Write(&buffer, binary.LittleEndian, int32(count))
	return buffer.Bytes()
}

// UnpackVoteRequest - decode a payment vote request
func UnpackVoteRequest(payload []byte) (int, error) {
	count := int32(0)
	if err := binary.Read(bytes.NewReader(payload), binary.LittleEndian, &count); nil != err {
		return 0, err
	}
	return int(count), nil
}
