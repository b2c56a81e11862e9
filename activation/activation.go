// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package activation

import (
	"fmt"
	"net/netip"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
	"github.com/libercoinproject/libercoin-old/wallet"
)

// Interval - how often the state is managed
const Interval = time.Minute

// Type - how the local node was started
type Type int

// node types
const (
	Unknown Type = iota
	Remote
	Local
)

func (t Type) String() string {
	switch t {
	case Remote:
		return "REMOTE"
	case Local:
		return "LOCAL"
	default:
		return "UNKNOWN"
	}
}

// State - progress of the local node
type State int

// local node states
const (
	Initial State = iota
	SyncInProcess
	InputTooNew
	NotCapable
	Started
)

func (s State) String() string {
	switch s {
	case Initial:
		return "INITIAL"
	case SyncInProcess:
		return "SYNC_IN_PROCESS"
	case InputTooNew:
		return "INPUT_TOO_NEW"
	case NotCapable:
		return "NOT_CAPABLE"
	case Started:
		return "STARTED"
	default:
		return "UNKNOWN"
	}
}

// Nodes - registry access
//
// never called while the activation lock is held
type Nodes interface {
	Has(outpoint wire.OutPoint) bool
	GetByKey(pub *btcec.PublicKey) (masternode.Info, bool)
	Check(outpoint wire.OutPoint, force bool)
	IsPingedWithin(outpoint wire.OutPoint, d time.Duration, at int64) bool
	SetLastPing(outpoint wire.OutPoint, p *masternode.Ping)
	UpdateList(b *masternode.Broadcast)
	NotifyUpdates()
}

// Config - local libernode settings
type Config struct {
	// nil when not running as a libernode
	OperationalKey *btcec.PrivateKey

	// externally reachable address, zero to detect
	External netip.AddrPort
}

// Activation - the local libernode
//
// it is also the environment's Self, so the registry calls into it
// while holding the registry lock
type Activation struct {
	sync.RWMutex

	log    *logger.L
	env    *masternode.Env
	link   network.Link
	nodes  Nodes
	wallet wallet.CollateralSource

	key      *btcec.PrivateKey
	external netip.AddrPort

	nodeType   Type
	state      State
	reason     string
	pinger     bool
	outpoint   wire.OutPoint
	service    netip.AddrPort
	collateral *wallet.Collateral
}

// New - create the local node, the registry is attached later
func New(env *masternode.Env, config Config, link network.Link, source wallet.CollateralSource) *Activation {
	return &Activation{
		log:      logger.New("activation"),
		env:      env,
		link:     link,
		wallet:   source,
		key:      config.OperationalKey,
		external: config.External,
	}
}

// Attach - set the registry
func (a *Activation) Attach(nodes Nodes) {
	a.Lock()
	a.nodes = nodes
	a.Unlock()
}

func (a *Activation) registry() Nodes {
	a.RLock()
	defer a.RUnlock()
	return a.nodes
}

// IsLibernode - configured with an operational key
func (a *Activation) IsLibernode() bool {
	return nil != a.key
}

// OperationalKey - public part of the operational key
func (a *Activation) OperationalKey() *btcec.PublicKey {
	if nil == a.key {
		return nil
	}
	return a.key.PubKey()
}

// OperationalPrivateKey - signing key for pings, votes and proofs
func (a *Activation) OperationalPrivateKey() *btcec.PrivateKey {
	return a.key
}

// Outpoint - collateral of the started node
func (a *Activation) Outpoint() (wire.OutPoint, bool) {
	a.RLock()
	defer a.RUnlock()
	if Started != a.state {
		return wire.OutPoint{}, false
	}
	return a.outpoint, true
}

// Service - external address in use
func (a *Activation) Service() netip.AddrPort {
	a.RLock()
	defer a.RUnlock()
	return a.service
}

// State - current state
func (a *Activation) State() State {
	a.RLock()
	defer a.RUnlock()
	return a.state
}

// Type - how the node was started
func (a *Activation) Type() Type {
	a.RLock()
	defer a.RUnlock()
	return a.nodeType
}

// Status - human readable state
func (a *Activation) Status() string {
	a.RLock()
	defer a.RUnlock()
	return a.status()
}

func (a *Activation) status() string {
	switch a.state {
	case Initial:
		return "Node just started, not yet activated"
	case SyncInProcess:
		return "Sync in progress. Must wait until sync is complete to start Libernode"
	case InputTooNew:
		return fmt.Sprintf("Libernode input must have at least %d confirmations", a.env.Params.MinimumConfirmations)
	case NotCapable:
		return "Not capable libernode: " + a.reason
	case Started:
		return "Libernode successfully started"
	default:
		return "Unknown"
	}
}

// Summary - the fields reported by the status command
type Summary struct {
	Outpoint wire.OutPoint
	Service  netip.AddrPort
	Type     Type
	State    State
	Status   string
}

// Describe - snapshot for the status command
func (a *Activation) Describe() Summary {
	a.RLock()
	defer a.RUnlock()
	return Summary{
		Outpoint: a.outpoint,
		Service:  a.service,
		Type:     a.nodeType,
		State:    a.state,
		Status:   a.status(),
	}
}

// must hold the lock
func (a *Activation) notCapable(format string, arguments ...interface{}) {
	a.state = NotCapable
	a.reason = fmt.Sprintf(format, arguments...)
	a.log.Warnf("%s: %s", a.state, a.reason)
}
