// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
)

// ProcessPing - handle a ping received from a peer
func (r *Registry) ProcessPing(peer network.Peer, p *masternode.Ping) {
	hash := p.Hash()

	r.Lock()
	if _, ok := r.seenPings[hash]; ok {
		r.Unlock()
		return
	}
	r.seenPings[hash] = p

	rec := r.nodes.lookup(p.Outpoint)

	// too late, a new broadcast is required
	if nil != rec && rec.IsNewStartRequired() {
		r.Unlock()
		return
	}

	dos, err := p.CheckAndUpdate(rec, false, r.env, r.census())
	if nil == err || fault.ErrNodeNotEnabled == err {
		r.setSeenPing(rec, p)
	}
	known := nil != rec
	r.Unlock()

	if nil == err {
		if nil != r.link {
			r.link.Relay(network.Inventory{
				Type: network.InvPing,
				Hash: hash,
			})
		}
		return
	}

	r.log.Debugf("ping: libernode: %s  error: %s", masternode.ShortString(p.Outpoint), err)

	if dos > 0 {
		peer.Misbehaving(dos, err.Error())
	} else if known {
		// nothing significant failed and the node is known
		return
	}

	// something significant is broken or the node is unknown
	r.AskForNode(peer, p.Outpoint)
}
