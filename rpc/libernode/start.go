// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package libernode

import (
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/nodeconf"
	"github.com/libercoinproject/libercoin-old/rpc/ratelimit"
	"github.com/libercoinproject/libercoin-old/signer"
)

// StatusArguments - empty arguments for status request
type StatusArguments struct{}

// StatusReply - local activation
type StatusReply struct {
	Outpoint string `json:"outpoint"`
	Service  string `json:"service"`
	Payee    string `json:"payee,omitempty"`
	Type     string `json:"type"`
	State    string `json:"state"`
	Status   string `json:"status"`
}

// Status - describe the local libernode
func (l *Libernode) Status(_ *StatusArguments, reply *StatusReply) error {
	if err := ratelimit.Request(l.Limiter); nil != err {
		return err
	}

	s := l.services
	if !s.Self.IsLibernode() {
		return fault.ErrNotAMasternode
	}
	l.describe(reply)
	return nil
}

func (l *Libernode) describe(reply *StatusReply) {
	s := l.services
	summary := s.Self.Describe()
	reply.Outpoint = masternode.ShortString(summary.Outpoint)
	reply.Service = summary.Service.String()
	reply.Type = summary.Type.String()
	reply.State = summary.State.String()
	reply.Status = summary.Status

	if info, ok := s.Nodes.Get(summary.Outpoint); ok {
		reply.Payee = signer.PayeeAddress(info.Payee(), s.Params.Net)
	}
}

// StartArguments - empty arguments for local start
type StartArguments struct{}

// Start - run local activation now
func (l *Libernode) Start(_ *StartArguments, reply *StatusReply) error {
	if err := ratelimit.Request(l.Limiter); nil != err {
		return err
	}

	s := l.services
	if !s.Self.IsLibernode() {
		return fault.ErrNotAMasternode
	}
	s.Self.ManageState()
	l.describe(reply)
	return nil
}

// ---

// ListConfArguments - empty arguments for identities listing
type ListConfArguments struct{}

// ConfEntry - one configured identity, the key is never returned
type ConfEntry struct {
	Alias    string `json:"alias"`
	Address  string `json:"address"`
	Outpoint string `json:"outpoint"`
	Status   string `json:"status"`
}

// ListConfReply - identities in file order
type ListConfReply struct {
	Entries []ConfEntry `json:"entries"`
}

// ListConf - configured remote libernodes and their registry state
func (l *Libernode) ListConf(_ *ListConfArguments, reply *ListConfReply) error {
	if err := ratelimit.Request(l.Limiter); nil != err {
		return err
	}

	entries, err := l.identities()
	if nil != err {
		return err
	}

	reply.Entries = make([]ConfEntry, 0, len(entries))
	for _, e := range entries {
		status := "MISSING"
		if info, ok := l.services.Nodes.Get(e.Outpoint); ok {
			status = info.State.String()
		}
		reply.Entries = append(reply.Entries, ConfEntry{
			Alias:    e.Alias,
			Address:  e.Address.String(),
			Outpoint: masternode.ShortString(e.Outpoint),
			Status:   status,
		})
	}
	return nil
}

func (l *Libernode) identities() ([]nodeconf.Entry, error) {
	if nil == l.services.Identities {
		return nil, fault.ErrIdentityNotFound
	}
	return l.services.Identities.Entries(), nil
}

// ---

// StartResult - outcome for one identity
type StartResult struct {
	Alias  string `json:"alias"`
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

// StartReply - outcome of a bulk start
type StartReply struct {
	Successful int           `json:"successful"`
	Failed     int           `json:"failed"`
	Detail     []StartResult `json:"detail"`
}

// StartAllArguments - empty arguments for bulk start
type StartAllArguments struct{}

// StartAll - announce every configured identity
func (l *Libernode) StartAll(_ *StartAllArguments, reply *StartReply) error {
	return l.startMany(reply, func(nodeconf.Entry, masternode.Info, bool) bool {
		return true
	})
}

// StartMissing - announce identities not in the registry
func (l *Libernode) StartMissing(_ *StartAllArguments, reply *StartReply) error {
	return l.startMany(reply, func(_ nodeconf.Entry, _ masternode.Info, found bool) bool {
		return !found
	})
}

// StartDisabled - announce identities not enabled
func (l *Libernode) StartDisabled(_ *StartAllArguments, reply *StartReply) error {
	return l.startMany(reply, func(_ nodeconf.Entry, info masternode.Info, found bool) bool {
		return !found || !info.IsEnabled()
	})
}

// StartAliasArguments - one identity
type StartAliasArguments struct {
	Alias string `json:"alias"`
}

// StartAlias - announce one configured identity
func (l *Libernode) StartAlias(arguments *StartAliasArguments, reply *StartResult) error {
	if err := ratelimit.Request(l.Limiter); nil != err {
		return err
	}
	if err := l.canStart(); nil != err {
		return err
	}
	if nil == l.services.Identities {
		return fault.ErrIdentityNotFound
	}
	e, ok := l.services.Identities.Get(arguments.Alias)
	if !ok {
		return fault.ErrIdentityNotFound
	}
	*reply = l.start(e)
	l.services.Nodes.NotifyUpdates()
	return nil
}

type selector func(e nodeconf.Entry, info masternode.Info, found bool) bool

func (l *Libernode) startMany(reply *StartReply, selected selector) error {
	if err := ratelimit.Request(l.Limiter); nil != err {
		return err
	}
	if err := l.canStart(); nil != err {
		return err
	}
	entries, err := l.identities()
	if nil != err {
		return err
	}

	reply.Detail = []StartResult{}
	for _, e := range entries {
		info, found := l.services.Nodes.Get(e.Outpoint)
		if !selected(e, info, found) {
			continue
		}
		result := l.start(e)
		if "" == result.Error {
			reply.Successful += 1
		} else {
			reply.Failed += 1
		}
		reply.Detail = append(reply.Detail, result)
	}
	l.services.Nodes.NotifyUpdates()
	return nil
}

// remote identities need a complete list to avoid racing an older broadcast
func (l *Libernode) canStart() error {
	if !l.services.Sync.IsListSynced() {
		return fault.ErrNotSynchronised
	}
	return nil
}

func (l *Libernode) start(e nodeconf.Entry) StartResult {
	result := StartResult{
		Alias:  e.Alias,
		Result: "successful",
	}

	b, err := l.services.Self.CreateBroadcast(e.Address, e.OperationalKey, e.Outpoint)
	if nil == err {
		_, err = l.services.Nodes.CheckAndAdmit(nil, b)
	}
	if nil != err {
		l.Log.Warnf("start alias: %s  error: %s", e.Alias, err)
		result.Result = "failed"
		result.Error = err.Error()
		return result
	}

	l.Log.Infof("started alias: %s  outpoint: %s", e.Alias, masternode.ShortString(e.Outpoint))
	return result
}
