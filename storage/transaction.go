// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/libercoinproject/libercoin-old/fault"
)

// Transaction - a set of writes applied atomically on Commit
type Transaction struct {
	batch *leveldb.Batch
}

// NewTransaction - start an empty batch
func NewTransaction() *Transaction {
	return &Transaction{
		batch: new(leveldb.Batch),
	}
}

// Put - queue a store
func (t *Transaction) Put(p *PoolHandle, key []byte, value []byte) {
	t.batch.Put(p.prefixKey(key), value)
}

// PutN - queue a store of a big endian uint64
func (t *Transaction) PutN(p *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.Put(p, key, buffer)
}

// Delete - queue a removal
func (t *Transaction) Delete(p *PoolHandle, key []byte) {
	t.batch.Delete(p.prefixKey(key))
}

// Len - number of queued writes
func (t *Transaction) Len() int {
	return t.batch.Len()
}

// Commit - write the batch
func (t *Transaction) Commit() error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return fault.ErrDatabaseIsNotSet
	}
	err := poolData.database.Write(t.batch, nil)
	t.batch.Reset()
	return err
}

// Abort - drop the queued writes
func (t *Transaction) Abort() {
	t.batch.Reset()
}
