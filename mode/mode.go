// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mode

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/fault"
)

// Mode - overall daemon state
type Mode int

// all possible modes
const (
	Stopped Mode = iota
	Resynchronise
	Normal
	maximum
)

var globalData struct {
	sync.RWMutex
	log    *logger.L
	mode   Mode
	params *chain.Params

	initialised bool
}

// Initialise - set up the mode system, always starts resynchronising
func Initialise(chainName string) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("mode")
	globalData.log.Info("starting…")

	params, err := chain.Get(chainName)
	if nil != err {
		globalData.log.Criticalf("mode cannot handle chain: '%s'", chainName)
		return err
	}

	globalData.params = params
	globalData.mode = Resynchronise
	globalData.initialised = true

	return nil
}

// Finalise - shutdown mode handling
func Finalise() error {
	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")

	Set(Stopped)

	globalData.Lock()
	globalData.initialised = false
	globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Set - change mode
func Set(mode Mode) {
	globalData.Lock()
	log := globalData.log
	if mode < Stopped || mode >= maximum {
		globalData.Unlock()
		if nil != log {
			log.Errorf("ignore invalid set: %d", mode)
		}
		return
	}
	changed := mode != globalData.mode
	globalData.mode = mode
	globalData.Unlock()

	if changed && nil != log {
		log.Infof("set: %s", mode)
	}
}

// Is - detect mode
func Is(mode Mode) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return mode == globalData.mode
}

// IsTesting - any chain other than the production one
func IsTesting() bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return nil != globalData.params && !globalData.params.IsMainnet()
}

// ChainName - name of the current chain
func ChainName() string {
	globalData.RLock()
	defer globalData.RUnlock()
	if nil == globalData.params {
		return ""
	}
	return globalData.params.Name
}

// Params - constants of the current chain
func Params() *chain.Params {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.params
}

// String - current mode represented as a string
func String() string {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.mode.String()
}

func (m Mode) String() string {
	switch m {
	case Stopped:
		return "Stopped"
	case Resynchronise:
		return "Resynchronise"
	case Normal:
		return "Normal"
	default:
		return "*Unknown*"
	}
}
