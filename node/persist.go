// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/storage"
)

// Restore - load the registry and ledger saved by an earlier run
//
// the storage must be initialised; a snapshot of another version is
// discarded and the component starts empty
func (rt *Runtime) Restore() error {
	for _, item := range rt.snapshots() {
		found, err := storage.Restore(item.pool, item.snapshot)
		if fault.ErrVersionMismatch == err {
			rt.log.Warnf("%s: discarded saved state of another version", item.name)
			continue
		}
		if nil != err {
			rt.log.Errorf("%s: restore error: %s", item.name, err)
			return err
		}
		if found {
			rt.log.Infof("%s: restored", item.name)
		}
	}

	// drop anything that expired while stopped
	rt.Registry.CheckAndRemove()
	rt.Ledger.CheckAndRemove()
	rt.log.Infof("%s", rt.Registry.Summary())
	rt.log.Infof("%s", rt.Ledger.Summary())
	return nil
}

// Save - write the registry and ledger
func (rt *Runtime) Save() error {
	now := rt.Env.Clock.Now()
	for _, item := range rt.snapshots() {
		if err := storage.Save(item.pool, item.snapshot, now); nil != err {
			rt.log.Errorf("%s: save error: %s", item.name, err)
			return err
		}
	}
	rt.log.Debug("saved")
	return nil
}

// Persist - periodic save, errors are only logged
func (rt *Runtime) Persist() {
	_ = rt.Save()
}

type snapshot struct {
	name     string
	pool     *storage.PoolHandle
	snapshot storage.Snapshot
}

func (rt *Runtime) snapshots() []snapshot {
	return []snapshot{
		{name: "registry", pool: storage.Pool.Registry, snapshot: rt.Registry},
		{name: "payments", pool: storage.Pool.Payments, snapshot: rt.Ledger},
	}
}
