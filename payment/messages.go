// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payment

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
)

// ProcessVote - handle a payment vote received from a peer
//
// a vote that is counted is relayed, otherwise the error says why
func (l *Ledger) ProcessVote(peer network.Peer, v *Vote) error {
	if !l.sync.IsListSynced() {
		return fault.ErrNotSynchronised
	}
	if peer.Version() < l.MinProtocol() {
		return fault.ErrPeerProtocolTooOld
	}

	tip := l.env.Chain.Height()
	hash := v.Hash()

	first := tip - int32(l.StorageLimit())
	if v.Height < first || v.Height > tip+VoteFutureLimit {
		l.log.Debugf("vote out of range: first: %d  height: %d  tip: %d", first, v.Height, tip)
		return fault.ErrOutOfRange
	}

	l.Lock()
	if _, ok := l.votes[hash]; ok {
		l.Unlock()
		l.log.Debugf("vote: %s  height: %d seen", hash, tip)
		return fault.ErrAlreadySeen
	}
	// marked unverified until it is counted
	l.votes[hash] = &storedVote{vote: v}
	l.Unlock()

	dos, err := l.validate(peer, v, tip)
	if nil != err {
		if dos > 0 {
			peer.Misbehaving(dos, err.Error())
		}
		l.log.Debugf("invalid vote: %s  error: %s", v, err)
		return err
	}

	info, ok := l.nodes.Get(v.Voter)
	if !ok {
		l.log.Infof("libernode is missing: %s", masternode.ShortString(v.Voter))
		l.nodes.AskForNode(peer, v.Voter)
		return fault.ErrNodeNotFound
	}

	if err := v.CheckSignature(l.env.Signer, info.OperationalKey); nil != err {
		// the voter may have changed its key since an old vote
		if l.sync.IsListSynced() && v.Height > tip {
			l.log.Errorf("invalid vote signature: %s", masternode.ShortString(v.Voter))
			peer.Misbehaving(dosVoteSignature, "bad payment vote signature")
		} else {
			l.log.Debugf("invalid vote signature: %s", masternode.ShortString(v.Voter))
		}
		l.nodes.AskForNode(peer, v.Voter)
		l.forget(hash)
		return fault.ErrInvalidSignature
	}

	// only a signed vote takes the voter's place at its height
	if !l.CanVote(v.Voter, v.Height) {
		l.log.Infof("libernode already voted: %s", masternode.ShortString(v.Voter))
		return fault.ErrAlreadyVoted
	}

	l.log.Debugf("vote: %s  tip: %d", v, tip)

	if !l.AddPaymentVote(v) {
		return fault.ErrAlreadySeen
	}
	l.relay(v)
	l.sync.AddedPaymentVote()
	return nil
}

// drop the seen marker of a vote that was never counted
func (l *Ledger) forget(hash chainhash.Hash) {
	l.Lock()
	defer l.Unlock()
	if stored, ok := l.votes[hash]; ok && !stored.verified {
		delete(l.votes, hash)
	}
}

// voter must be known, on a payment protocol and ranked in the top group
func (l *Ledger) validate(peer network.Peer, v *Vote, validationHeight int32) (int, error) {
	info, ok := l.nodes.Get(v.Voter)
	if !ok {
		if l.sync.IsListSynced() {
			l.nodes.AskForNode(peer, v.Voter)
		}
		return 0, fault.ErrNodeNotFound
	}

	// old heights accept nodes that have not updated
	minProtocol := int32(chain.MinPaymentsProtoVersion1)
	if v.Height >= validationHeight {
		minProtocol = l.MinProtocol()
	}
	if info.Protocol < minProtocol {
		return 0, fault.ErrInvalidProtocolVersion
	}

	// only libernodes check the rank of votes for past blocks
	if !l.isLibernode() && v.Height < validationHeight {
		return 0, nil
	}

	rank := l.elector.GetRank(v.Voter, v.Height-l.env.Params.VoteRankLag, minProtocol, false)
	if -1 == rank {
		return 0, fault.ErrUnknownBlockHash
	}
	if rank > SignaturesTotal {
		// the registry may be far off for old votes
		if rank > 2*SignaturesTotal && v.Height > validationHeight {
			return dosVoteRank, fault.ErrRankTooLow
		}
		return 0, fault.ErrRankTooLow
	}
	return 0, nil
}

func (l *Ledger) isLibernode() bool {
	return nil != l.voter && nil != l.voter.OperationalPrivateKey()
}

func (l *Ledger) relay(v *Vote) {
	if !l.sync.IsWinnersListSynced() {
		l.log.Debug("not relaying vote, winners list not synced")
		return
	}
	l.link.Relay(network.Inventory{Type: network.InvPaymentVote, Hash: v.Hash()})
}

// ProcessBlock - vote for the payee of a height when ranked high enough
func (l *Ledger) ProcessBlock(height int32) bool {
	if !l.isLibernode() {
		return false
	}
	outpoint, active := l.voter.Outpoint()
	if !active {
		return false
	}

	// no chance of picking the right winner without the list
	if !l.sync.IsListSynced() {
		return false
	}

	rank := l.elector.GetRank(outpoint, height-l.env.Params.VoteRankLag, l.MinProtocol(), false)
	if -1 == rank {
		l.log.Debug("process block: unknown libernode")
		return false
	}
	if rank > SignaturesTotal {
		l.log.Debugf("process block: libernode not in the top %d (%d)", SignaturesTotal, rank)
		return false
	}

	l.log.Infof("process block: height: %d  libernode: %s", height, masternode.ShortString(outpoint))

	info, _, ok := l.elector.NextInQueueForPayment(height, true)
	if !ok {
		l.log.Error("process block: failed to find libernode to pay")
		return false
	}
	l.log.Infof("process block: next in queue: %s", masternode.ShortString(info.Outpoint))

	v := &Vote{
		Voter:  outpoint,
		Height: height,
		Payee:  info.Payee(),
	}
	if err := v.Sign(l.env.Signer, l.voter.OperationalPrivateKey()); nil != err {
		l.log.Errorf("process block: sign error: %s", err)
		return false
	}
	if !l.AddPaymentVote(v) {
		return false
	}
	l.relay(v)
	return true
}

// UpdatedBlockTip - vote a few blocks ahead of a new tip
func (l *Ledger) UpdatedBlockTip(height int32) {
	l.log.Debugf("updated block tip: %d", height)
	l.ProcessBlock(height + VoteLookahead)
}

// ServeVoteSync - answer a peer's payment vote request
//
// requests are only served once per peer per hour
func (l *Ledger) ServeVoteSync(peer network.Peer) {
	if !l.sync.IsSynced() {
		return
	}
	address := peer.Address()
	if l.fulfilled.Has(address, string(network.CmdVoteRequest)) {
		l.log.Warnf("peer already asked for the vote list: %d", peer.ID())
		peer.Misbehaving(dosVoteSyncTooOften, "payment votes requested too often")
		return
	}
	l.fulfilled.Add(address, string(network.CmdVoteRequest))

	// only future blocks, older tallies are fetched one block at a time
	tip := l.env.Chain.Height()
	hashes := []network.Inventory{}
	l.RLock()
	for h := tip; h < tip+VoteFutureLimit; h += 1 {
		t, ok := l.blocks[h]
		if !ok {
			continue
		}
		for _, p := range t.payees {
			for _, hash := range p.votes {
				if stored, ok := l.votes[hash]; ok && stored.verified {
					hashes = append(hashes, network.Inventory{Type: network.InvPaymentVote, Hash: hash})
				}
			}
		}
	}
	l.RUnlock()

	for _, inv := range hashes {
		peer.PushInventory(inv)
	}
	l.log.Infof("sent: %d votes to peer: %d", len(hashes), peer.ID())
	peer.Push(network.CmdSyncStatus, network.PackSyncStatus(network.StagePaymentVotes, len(hashes)))
}

// RequestLowDataPaymentBlocks - fetch tallies that are missing or
// have too few votes, in GETDATA sized batches
func (l *Ledger) RequestLowDataPaymentBlocks(peer network.Peer) {
	tip := l.env.Chain.Height()
	if tip < 0 {
		return
	}
	limit := int32(l.StorageLimit())

	fetch := make([]network.Inventory, 0, 64)
	flush := func(full bool) {
		if 0 == len(fetch) || (full && len(fetch) < network.MaxInventory) {
			return
		}
		l.log.Infof("asking peer: %d for: %d payment blocks", peer.ID(), len(fetch))
		peer.Push(network.CmdGetData, network.PackInventory(fetch))
		fetch = fetch[:0]
	}
	add := func(height int32) {
		hash, err := l.env.Chain.BlockHash(height)
		if nil != err {
			return
		}
		fetch = append(fetch, network.Inventory{Type: network.InvPaymentBlock, Hash: hash})
		flush(true)
	}

	l.RLock()
	missing := []int32{}
	for h := tip; h >= 0 && tip-h < limit; h -= 1 {
		if _, ok := l.blocks[h]; !ok {
			missing = append(missing, h)
		}
	}
	low := []int32{}
	for _, h := range l.heights() {
		t := l.blocks[h]
		if t.totalVotes() >= averageVotes {
			continue
		}
		found := false
		for _, p := range t.payees {
			if len(p.votes) >= SignaturesRequired {
				found = true
				break
			}
		}
		if !found {
			low = append(low, h)
		}
	}
	l.RUnlock()

	for _, h := range missing {
		add(h)
	}
	for _, h := range low {
		add(h)
	}
	flush(false)
}
