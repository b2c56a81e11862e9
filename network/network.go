// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"net/netip"
)

// Command - logical peer message name
type Command string

// all messages exchanged by the libernode subsystem
const (
	CmdAnnounce    Command = "mnb"
	CmdPing        Command = "mnp"
	CmdListRequest Command = "dseg"
	CmdSyncStatus  Command = "ssc"
	CmdVoteRequest Command = "mnget"
	CmdPaymentVote Command = "mnw"
	CmdVerify      Command = "mnv"
	CmdGetData     Command = "getdata"
	CmdGetSporks   Command = "getsporks"
)

// Peer - one connected remote node, provided by the host transport
type Peer interface {
	ID() int64
	Address() netip.AddrPort
	Version() int32
	IsInbound() bool

	// connection opened only to exchange libernode messages
	IsMasternodeConnection() bool

	// height the peer reported when it connected
	StartingHeight() int32

	Push(command Command, payload []byte)
	PushInventory(inventory Inventory)
	Misbehaving(score int, reason string)
	Disconnect()
}

// Link - the host node's view of its connections
type Link interface {
	Peers() []Peer

	// dial a libernode connection, returning an existing one if present
	Connect(address netip.AddrPort) (Peer, error)

	// announce inventory to every peer
	Relay(inventory Inventory)

	IsListening() bool
	LocalAddress() (netip.AddrPort, bool)
}
