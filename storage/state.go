// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	"github.com/libercoinproject/libercoin-old/fault"
)

// Snapshot - a component saved as one packed value
type Snapshot interface {
	Pack() []byte
	Unpack(data []byte) error
}

var (
	stateKey = []byte("state")
	chainKey = []byte("chain")
	savedKey = []byte("saved")
)

// Save - store the packed form of a component with the save time
func Save(p *PoolHandle, s Snapshot, now time.Time) error {
	trx := NewTransaction()
	trx.Put(p, stateKey, s.Pack())
	trx.PutN(Pool.Meta, savedKey, uint64(now.Unix()))
	return trx.Commit()
}

// Restore - load a component from its packed form
//
// false if nothing was stored, a component that rejects the stored
// data has already reset itself when the error is returned
func Restore(p *PoolHandle, s Snapshot) (bool, error) {
	data := p.Get(stateKey)
	if nil == data {
		return false, nil
	}
	if err := s.Unpack(data); nil != err {
		return true, err
	}
	return true, nil
}

// Raw - the stored packed form, nil if absent
func Raw(p *PoolHandle) []byte {
	return p.Get(stateKey)
}

// LastSaved - time of the most recent Save
func LastSaved() (time.Time, bool) {
	n, ok := Pool.Meta.GetN(savedKey)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(n), 0), true
}

// CheckChain - bind the database to a chain
//
// an empty database takes the name, any other name is an error
func CheckChain(name string) error {
	stored := Pool.Meta.Get(chainKey)
	if nil == stored {
		poolData.RLock()
		readOnly := poolData.readOnly
		poolData.RUnlock()
		if !readOnly {
			Pool.Meta.Put(chainKey, []byte(name))
		}
		return nil
	}
	if string(stored) != name {
		poolData.log.Errorf("database chain: %q  configured chain: %q", stored, name)
		return fault.ErrInvalidChain
	}
	return nil
}
