// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package activation

import (
	"net/netip"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/blockchain"
	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
)

// ManageState - one step of the local node state machine
func (a *Activation) ManageState() {
	if !a.IsLibernode() {
		a.log.Debug("not a libernode")
		return
	}

	if !a.env.Params.Regtest && !a.env.Sync.IsBlockchainSynced() {
		a.Lock()
		a.state = SyncInProcess
		a.log.Infof("%s: %s", a.state, a.status())
		a.Unlock()
		return
	}

	a.Lock()
	if SyncInProcess == a.state {
		a.state = Initial
	}
	nodeType := a.nodeType
	a.log.Debugf("status: %s  type: %s  pinger: %t", a.status(), a.nodeType, a.pinger)
	a.Unlock()

	if Unknown == nodeType {
		a.ManageStateInitial()
	}

	switch a.Type() {
	case Remote:
		a.ManageStateRemote()
	case Local:
		// remote start first so a started node restarts without a new broadcast
		a.ManageStateRemote()
		if Started != a.State() {
			a.ManageStateLocal()
		}
	}

	a.SendPing()
}

// ManageStateInitial - check the network set up and look for collateral
func (a *Activation) ManageStateInitial() {
	if !a.link.IsListening() {
		a.Lock()
		a.notCapable("Libernode must accept connections from outside. Make sure listen configuration option is not overwritten by some another parameter.")
		a.Unlock()
		return
	}

	service, found := a.external, a.external.IsValid() && masternode.IsValidAddress(a.external, a.env.Params)
	if !found {
		if 0 == len(a.link.Peers()) {
			a.Lock()
			a.notCapable("Can't detect valid external address. Will retry when there are some connections available.")
			a.Unlock()
			return
		}
		local, ok := a.link.LocalAddress()
		service, found = local, ok && local.Addr().Is4() && masternode.IsValidAddress(local, a.env.Params)
	}
	if !found {
		a.Lock()
		a.notCapable("Can't detect valid external address. Please consider using the externalip configuration option if problem persists. Make sure to use IPv4 address only.")
		a.Unlock()
		return
	}

	if a.env.Params.IsMainnet() {
		if service.Port() != a.env.Params.MainnetPort {
			a.Lock()
			a.notCapable("Invalid port: %d - only %d is supported on mainnet.", service.Port(), a.env.Params.MainnetPort)
			a.Unlock()
			return
		}
	} else if service.Port() == a.env.Params.MainnetPort {
		a.Lock()
		a.notCapable("Invalid port: %d - %d is only supported on mainnet.", service.Port(), a.env.Params.MainnetPort)
		a.Unlock()
		return
	}

	a.log.Infof("checking inbound connection to: %s", service)
	if _, err := a.link.Connect(service); nil != err {
		a.Lock()
		a.notCapable("Could not connect to %s", service)
		a.Unlock()
		return
	}

	a.Lock()
	a.service = service
	a.nodeType = Remote
	a.Unlock()

	if nil == a.wallet || !a.wallet.IsAvailable() {
		a.log.Infof("%s: wallet not available", a.State())
		return
	}
	if a.wallet.IsLocked() {
		a.log.Infof("%s: wallet is locked", a.State())
		return
	}
	if a.wallet.Balance() < a.env.Params.Collateral {
		a.log.Infof("%s: wallet balance is below %s", a.State(), a.env.Params.Collateral)
		return
	}

	collateral, err := a.wallet.Collateral(nil)
	if nil != err {
		a.log.Debugf("no collateral in wallet: %s", err)
		return
	}

	a.Lock()
	a.collateral = collateral
	a.nodeType = Local
	a.log.Debugf("status: %s  type: %s  pinger: %t", a.status(), a.nodeType, a.pinger)
	a.Unlock()
}

// ManageStateRemote - adopt the identity announced for the operational key
func (a *Activation) ManageStateRemote() {
	nodes := a.registry()
	pub := a.OperationalKey()

	info, ok := nodes.GetByKey(pub)
	if ok {
		nodes.Check(info.Outpoint, false)
		info, ok = nodes.GetByKey(pub)
	}

	a.Lock()
	defer a.Unlock()

	if !ok {
		a.notCapable("Libernode not in libernode list")
		return
	}
	if chain.ProtocolVersion != info.Protocol {
		a.notCapable("Invalid protocol version")
		return
	}
	if a.service != info.Address {
		a.notCapable("Broadcasted IP doesn't match our external address. Make sure you issued a new broadcast if IP of this libernode changed recently.")
		return
	}
	if !info.State.IsValidForAutoStart() {
		a.notCapable("Libernode in %s state", info.State)
		return
	}
	if Started != a.state {
		a.log.Info("started")
		a.outpoint = info.Outpoint
		a.service = info.Address
		a.pinger = true
		a.state = Started
	}
}

// ManageStateLocal - announce a new identity from local collateral
func (a *Activation) ManageStateLocal() {
	a.RLock()
	started := Started == a.state
	collateral := a.collateral
	service := a.service
	a.RUnlock()

	if started || nil == collateral {
		return
	}

	age, err := blockchain.Confirmations(a.env.Chain, collateral.Outpoint)
	if nil != err {
		age = 0
	}
	if age < a.env.Params.MinimumConfirmations {
		a.Lock()
		a.state = InputTooNew
		a.reason = a.status()
		a.log.Warnf("%s: %s - %d confirmations", a.state, a.reason, age)
		a.Unlock()
		return
	}

	a.wallet.LockCoin(collateral.Outpoint)

	keys := masternode.Keys{
		Collateral:  collateral.Private,
		Operational: a.key,
	}
	b, err := masternode.CreateBroadcast(a.env, collateral.Outpoint, service, keys)
	if nil != err {
		a.Lock()
		a.notCapable("Error creating libernode broadcast: %s", err)
		a.Unlock()
		return
	}

	a.Lock()
	a.outpoint = collateral.Outpoint
	a.pinger = true
	a.state = Started
	a.Unlock()

	nodes := a.registry()
	a.log.Info("update libernode list")
	nodes.UpdateList(b)
	nodes.NotifyUpdates()

	a.log.Infof("relay broadcast: %s", masternode.ShortString(b.Outpoint))
	a.link.Relay(network.Inventory{Type: network.InvAnnounce, Hash: b.Hash()})
}

// SendPing - sign and relay a ping for the started node
func (a *Activation) SendPing() bool {
	a.RLock()
	pinger := a.pinger
	outpoint := a.outpoint
	a.RUnlock()

	if !pinger {
		a.log.Debugf("%s: ping service is disabled, skipping", a.State())
		return false
	}

	nodes := a.registry()
	if !nodes.Has(outpoint) {
		a.Lock()
		a.notCapable("Libernode not in libernode list")
		a.Unlock()
		return false
	}

	p, err := masternode.NewPing(outpoint, a.env.Chain)
	if nil != err {
		a.log.Errorf("cannot create ping: %s", err)
		return false
	}
	if err := p.Sign(a.env.Signer, a.key, a.env.Now()); nil != err {
		a.log.Errorf("cannot sign ping: %s", err)
		return false
	}

	if nodes.IsPingedWithin(outpoint, masternode.MinPingInterval, p.SigTime) {
		a.log.Debug("too early to send ping")
		return false
	}

	nodes.SetLastPing(outpoint, p)

	a.log.Infof("relaying ping: %s", masternode.ShortString(outpoint))
	a.link.Relay(network.Inventory{Type: network.InvPing, Hash: p.Hash()})
	return true
}

// CreateBroadcast - announcement for a configured remote identity
//
// the collateral key comes from the local wallet
func (a *Activation) CreateBroadcast(address netip.AddrPort, operational *btcec.PrivateKey, outpoint wire.OutPoint) (*masternode.Broadcast, error) {
	if nil == a.wallet || !a.wallet.IsAvailable() {
		return nil, fault.ErrWalletNotAvailable
	}
	if a.wallet.IsLocked() {
		return nil, fault.ErrWalletLocked
	}
	collateral, err := a.wallet.Collateral(&outpoint)
	if nil != err {
		return nil, err
	}
	keys := masternode.Keys{
		Collateral:  collateral.Private,
		Operational: operational,
	}
	return masternode.CreateBroadcast(a.env, outpoint, address, keys)
}
