// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package election

// ReasonCode - why a record is not in the payment queue
type ReasonCode int

// qualification results
const (
	Qualified ReasonCode = iota
	NotValidForPayment
	InvalidProtocol
	IsScheduled
	TooNew
	CollateralTooYoung
)

// Reason - qualification result with a description for operators
type Reason struct {
	Code    ReasonCode
	Message string
}

// IsQualified - true when the record may enter the queue
func (r Reason) IsQualified() bool {
	return Qualified == r.Code
}

func (r Reason) String() string {
	if Qualified == r.Code {
		return "true"
	}
	return r.Message
}

func (c ReasonCode) String() string {
	switch c {
	case Qualified:
		return "qualified"
	case NotValidForPayment:
		return "not valid for payment"
	case InvalidProtocol:
		return "invalid protocol"
	case IsScheduled:
		return "is scheduled"
	case TooNew:
		return "too new"
	case CollateralTooYoung:
		return "collateral too young"
	default:
		return "*unknown*"
	}
}
