// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/libercoinproject/libercoin-old/fault"
)

var (
	ErrExistsOne   = fault.ExistsError("exists one ")
	ErrExistsTwo   = fault.ExistsError("exists two")
	ErrInvalidOne  = fault.InvalidError("invalid one")
	ErrInvalidTwo  = fault.InvalidError("invalid two")
	ErrNotFoundOne = fault.NotFoundError("not found one")
	ErrNotFoundTwo = fault.NotFoundError("not found two")
	ErrProcessOne  = fault.ProcessError("process one")
	ErrProcessTwo  = fault.ProcessError("process two")
)

// test that various errors can be subclassed
func TestClasses(t *testing.T) {
	errorList := []struct {
		err      error
		exists   bool
		invalid  bool
		notFound bool
		process  bool
	}{
		{ErrExistsOne, true, false, false, false},
		{ErrExistsTwo, true, false, false, false},
		{ErrInvalidOne, false, true, false, false},
		{ErrInvalidTwo, false, true, false, false},
		{ErrNotFoundOne, false, false, true, false},
		{ErrNotFoundTwo, false, false, true, false},
		{ErrProcessOne, false, false, false, true},
		{ErrProcessTwo, false, false, false, true},
		{fault.ErrChainBusy, false, false, false, true},
		{fault.ErrCoinNotFound, false, false, true, false},
	}

	for i, e := range errorList {

		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: exists mismatch on: %v", i, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: invalid mismatch on: %v", i, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: not found mismatch on: %v", i, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: process mismatch on: %v", i, err)
		}
	}
}

func TestTransient(t *testing.T) {
	if !fault.IsTransient(fault.ErrChainBusy) {
		t.Error("chain busy should be transient")
	}
	if !fault.IsTransient(fault.ErrCoinNotFound) {
		t.Error("coin not found should be transient")
	}
	if fault.IsTransient(fault.ErrInvalidSignature) {
		t.Error("invalid signature should not be transient")
	}
}
