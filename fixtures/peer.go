// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"net/netip"
	"sync"

	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/network"
)

// Message - one pushed message
type Message struct {
	Command network.Command
	Payload []byte
}

// Peer - network.Peer that records everything sent to it
type Peer struct {
	sync.Mutex
	id       int64
	address  netip.AddrPort
	version  int32
	inbound  bool
	mn       bool
	starting int32

	Messages     []Message
	Inventory    []network.Inventory
	Score        int
	Reasons      []string
	Disconnected bool
}

// NewPeer - outbound peer on the current protocol
func NewPeer(id int64, address string) *Peer {
	return &Peer{
		id:      id,
		address: netip.MustParseAddrPort(address),
		version: chain.ProtocolVersion,
	}
}

// SetInbound - mark as an inbound connection
func (p *Peer) SetInbound(inbound bool) *Peer {
	p.inbound = inbound
	return p
}

// SetVersion - protocol reported by the peer
func (p *Peer) SetVersion(version int32) *Peer {
	p.version = version
	return p
}

// SetStartingHeight - height reported by the peer on connect
func (p *Peer) SetStartingHeight(height int32) *Peer {
	p.starting = height
	return p
}

func (p *Peer) ID() int64                    { return p.id }
func (p *Peer) Address() netip.AddrPort      { return p.address }
func (p *Peer) Version() int32               { return p.version }
func (p *Peer) IsInbound() bool              { return p.inbound }
func (p *Peer) IsMasternodeConnection() bool { return p.mn }
func (p *Peer) StartingHeight() int32        { return p.starting }

func (p *Peer) Push(command network.Command, payload []byte) {
	p.Lock()
	p.Messages = append(p.Messages, Message{Command: command, Payload: payload})
	p.Unlock()
}

func (p *Peer) PushInventory(inventory network.Inventory) {
	p.Lock()
	p.Inventory = append(p.Inventory, inventory)
	p.Unlock()
}

func (p *Peer) Misbehaving(score int, reason string) {
	p.Lock()
	p.Score += score
	p.Reasons = append(p.Reasons, reason)
	p.Unlock()
}

func (p *Peer) Disconnect() {
	p.Lock()
	p.Disconnected = true
	p.Unlock()
}

// Sent - messages pushed with a command
func (p *Peer) Sent(command network.Command) []Message {
	p.Lock()
	defer p.Unlock()
	result := []Message{}
	for _, m := range p.Messages {
		if command == m.Command {
			result = append(result, m)
		}
	}
	return result
}

// Link - network.Link over a fixed set of recording peers
type Link struct {
	sync.Mutex
	peers     []*Peer
	Relayed   []network.Inventory
	Dialled   []netip.AddrPort
	Listening bool
	Local     netip.AddrPort
	FailDial  bool
}

// NewLink - link with some connected peers
func NewLink(peers ...*Peer) *Link {
	return &Link{
		peers:     peers,
		Listening: true,
	}
}

// Add - connect another peer
func (l *Link) Add(p *Peer) {
	l.Lock()
	l.peers = append(l.peers, p)
	l.Unlock()
}

func (l *Link) Peers() []network.Peer {
	l.Lock()
	defer l.Unlock()
	result := make([]network.Peer, 0, len(l.peers))
	for _, p := range l.peers {
		result = append(result, p)
	}
	return result
}

func (l *Link) Connect(address netip.AddrPort) (network.Peer, error) {
	l.Lock()
	defer l.Unlock()
	l.Dialled = append(l.Dialled, address)
	if l.FailDial {
		return nil, fault.ErrCannotConnect
	}
	for _, p := range l.peers {
		if p.address == address {
			return p, nil
		}
	}
	p := &Peer{
		id:      int64(1000 + len(l.peers)),
		address: address,
		version: chain.ProtocolVersion,
		mn:      true,
	}
	l.peers = append(l.peers, p)
	return p, nil
}

func (l *Link) Relay(inventory network.Inventory) {
	l.Lock()
	l.Relayed = append(l.Relayed, inventory)
	l.Unlock()
}

func (l *Link) IsListening() bool {
	return l.Listening
}

func (l *Link) LocalAddress() (netip.AddrPort, bool) {
	return l.Local, l.Local.IsValid()
}

// Peer - the connected peer with an address
func (l *Link) Peer(address netip.AddrPort) *Peer {
	l.Lock()
	defer l.Unlock()
	for _, p := range l.peers {
		if p.address == address {
			return p
		}
	}
	return nil
}
