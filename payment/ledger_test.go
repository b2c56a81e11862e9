// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payment_test

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/fixtures"
	"github.com/libercoinproject/libercoin-old/network"
	"github.com/libercoinproject/libercoin-old/payment"
	"github.com/libercoinproject/libercoin-old/signer"
)

func TestVoteSignature(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	voter := fixtures.NewNode(1)
	v := s.vote(voter, tipHeight, payee(fixtures.NewNode(2)))
	assert.NoError(t, v.CheckSignature(s.env.Signer, voter.Keys.Operational.PubKey()), "own signature rejected")
	assert.Error(t, v.CheckSignature(s.env.Signer, fixtures.NewNode(3).Keys.Operational.PubKey()), "wrong key accepted")

	decoded, err := payment.UnpackVote(v.Pack())
	assert.NoError(t, err, "unpack error")
	assert.Equal(t, v.Hash(), decoded.Hash(), "hash changed")
	assert.Equal(t, v.Signature, decoded.Signature, "signature changed")

	changed := *v
	changed.Height += 1
	assert.NotEqual(t, v.Hash(), changed.Hash(), "height not in hash")
	assert.Error(t, changed.CheckSignature(s.env.Signer, voter.Keys.Operational.PubKey()), "altered vote accepted")
}

func TestCanVote(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	voter := fixtures.Outpoint(1)
	assert.True(t, s.ledger.CanVote(voter, 1000), "first vote refused")
	assert.False(t, s.ledger.CanVote(voter, 1000), "second vote allowed")
	assert.True(t, s.ledger.CanVote(voter, 1001), "next height refused")
	assert.True(t, s.ledger.CanVote(fixtures.Outpoint(2), 1001), "other voter refused")
}

func TestProcessVote(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	voter := fixtures.NewNode(1)
	s.known(voter, tipHeight+2, 3)

	v := s.vote(voter, tipHeight+2, payee(fixtures.NewNode(2)))
	err := s.ledger.ProcessVote(s.peer, v)
	assert.NoError(t, err, "vote rejected")
	assert.True(t, s.ledger.HasVerifiedPaymentVote(v.Hash()), "vote not counted")
	assert.Equal(t, 1, s.relayed(), "vote not relayed")
	assert.Equal(t, 1, s.sync.Votes, "sync not told")

	got, ok := s.ledger.Vote(v.Hash())
	assert.True(t, ok, "vote not served")
	assert.Equal(t, v, got, "wrong vote served")
	assert.Equal(t, 1, len(s.ledger.BlockVotes(tipHeight+2)), "wrong block votes")

	err = s.ledger.ProcessVote(s.peer, v)
	assert.Equal(t, fault.ErrAlreadySeen, err, "repeated vote accepted")
	assert.Equal(t, 1, s.relayed(), "repeated vote relayed")
}

func TestSecondVoteForHeightRejected(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	voter := fixtures.NewNode(1)
	s.known(voter, tipHeight, 1)

	first := s.vote(voter, tipHeight, payee(fixtures.NewNode(2)))
	second := s.vote(voter, tipHeight, payee(fixtures.NewNode(3)))

	assert.NoError(t, s.ledger.ProcessVote(s.peer, first), "first vote rejected")
	err := s.ledger.ProcessVote(s.peer, second)
	assert.Equal(t, fault.ErrAlreadyVoted, err, "second vote accepted")
	assert.False(t, s.ledger.HasVerifiedPaymentVote(second.Hash()), "second vote counted")

	best, ok := s.ledger.BlockPayee(tipHeight)
	assert.True(t, ok, "no payee")
	assert.Equal(t, payee(fixtures.NewNode(2)), best, "payee changed")
}

func TestVoteAfterEarlierHeightRejected(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	voter := fixtures.NewNode(1)
	s.known(voter, tipHeight, 1)
	s.known(voter, tipHeight-1, 1)

	a := payee(fixtures.NewNode(2))
	b := payee(fixtures.NewNode(3))
	assert.NoError(t, s.ledger.ProcessVote(s.peer, s.vote(voter, tipHeight, a)), "first vote rejected")
	assert.NoError(t, s.ledger.ProcessVote(s.peer, s.vote(voter, tipHeight-1, a)), "earlier height rejected")

	again := s.vote(voter, tipHeight, b)
	err := s.ledger.ProcessVote(s.peer, again)
	assert.Equal(t, fault.ErrAlreadyVoted, err, "second vote for a height accepted")
	assert.False(t, s.ledger.HasVerifiedPaymentVote(again.Hash()), "second vote counted")
	assert.Equal(t, 1, len(s.ledger.BlockVotes(tipHeight)), "voter counted twice")
	assert.False(t, s.ledger.HasPayeeWithVotes(tipHeight, b, 1), "second payee tallied")
}

func TestForgedVoteKeepsVoterPlace(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	voter := fixtures.NewNode(1)
	s.known(voter, tipHeight+1, 2)
	s.nodes.EXPECT().AskForNode(s.peer, voter.Outpoint).Times(2)

	target := payee(fixtures.NewNode(2))

	// signed by a different key in the voter's name
	forged := s.vote(fixtures.NewNode(6), tipHeight+1, payee(fixtures.NewNode(3)))
	forged.Voter = voter.Outpoint
	err := s.ledger.ProcessVote(s.peer, forged)
	assert.Equal(t, fault.ErrInvalidSignature, err, "forged vote accepted")

	// same content as the genuine vote
	copied := s.vote(fixtures.NewNode(6), tipHeight+1, target)
	copied.Voter = voter.Outpoint
	err = s.ledger.ProcessVote(s.peer, copied)
	assert.Equal(t, fault.ErrInvalidSignature, err, "copied vote accepted")

	genuine := s.vote(voter, tipHeight+1, target)
	err = s.ledger.ProcessVote(s.peer, genuine)
	assert.NoError(t, err, "genuine vote rejected")
	assert.True(t, s.ledger.HasVerifiedPaymentVote(genuine.Hash()), "genuine vote not counted")
	assert.True(t, s.ledger.HasPayeeWithVotes(tipHeight+1, target, 1), "genuine payee not tallied")
}

func TestOutOfRangeVoteNotStored(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	far := s.vote(fixtures.NewNode(1), tipHeight+payment.VoteFutureLimit+1, payee(fixtures.NewNode(2)))
	for i := 0; i < 2; i += 1 {
		err := s.ledger.ProcessVote(s.peer, far)
		assert.Equal(t, fault.ErrOutOfRange, err, "future vote not out of range")
	}
	assert.Equal(t, 0, s.ledger.VoteCount(), "future vote stored")
}

func TestClearForgetsVoters(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	voter := fixtures.Outpoint(1)
	assert.True(t, s.ledger.CanVote(voter, tipHeight), "first vote refused")
	s.ledger.Clear()
	assert.True(t, s.ledger.CanVote(voter, tipHeight), "voter kept after clear")
}

func TestProcessVoteRejections(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	target := payee(fixtures.NewNode(9))

	// outside the accepted window
	far := fixtures.NewNode(1)
	err := s.ledger.ProcessVote(s.peer, s.vote(far, tipHeight+21, target))
	assert.Equal(t, fault.ErrOutOfRange, err, "future vote accepted")
	err = s.ledger.ProcessVote(s.peer, s.vote(far, tipHeight-5001, target))
	assert.Equal(t, fault.ErrOutOfRange, err, "ancient vote accepted")

	// unknown voter is asked for
	unknown := fixtures.NewNode(2)
	s.nodes.EXPECT().Get(unknown.Outpoint).Return(info(unknown), false).AnyTimes()
	s.nodes.EXPECT().AskForNode(s.peer, unknown.Outpoint).Times(1)
	err = s.ledger.ProcessVote(s.peer, s.vote(unknown, tipHeight+1, target))
	assert.Equal(t, fault.ErrNodeNotFound, err, "unknown voter accepted")

	// slightly out of the top group, no penalty
	low := fixtures.NewNode(3)
	s.known(low, tipHeight+1, 15)
	err = s.ledger.ProcessVote(s.peer, s.vote(low, tipHeight+1, target))
	assert.Equal(t, fault.ErrRankTooLow, err, "low rank accepted")
	assert.Equal(t, 0, s.peer.Score, "low rank penalised")

	// far out of the top group for a future block
	lower := fixtures.NewNode(4)
	s.known(lower, tipHeight+1, 25)
	err = s.ledger.ProcessVote(s.peer, s.vote(lower, tipHeight+1, target))
	assert.Equal(t, fault.ErrRankTooLow, err, "very low rank accepted")
	assert.Equal(t, 20, s.peer.Score, "very low rank not penalised")

	// signed by some other key
	forger := fixtures.NewNode(5)
	s.known(forger, tipHeight+1, 2)
	s.nodes.EXPECT().AskForNode(s.peer, forger.Outpoint).Times(1)
	forged := s.vote(fixtures.NewNode(6), tipHeight+1, target)
	forged.Voter = forger.Outpoint
	err = s.ledger.ProcessVote(s.peer, forged)
	assert.Equal(t, fault.ErrInvalidSignature, err, "forged vote accepted")
	assert.Equal(t, 40, s.peer.Score, "forged vote not penalised")

	// peer too old to send votes
	old := fixtures.NewPeer(2, "93.184.216.35:18255").SetVersion(70000)
	err = s.ledger.ProcessVote(old, s.vote(far, tipHeight+1, target))
	assert.Equal(t, fault.ErrPeerProtocolTooOld, err, "old peer accepted")

	assert.Equal(t, 0, s.relayed(), "rejected vote relayed")
	assert.Equal(t, 0, s.ledger.BlockCount(), "rejected vote tallied")
}

func TestProcessVoteBeforeListSync(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})
	s.sync.ListSynced = false

	err := s.ledger.ProcessVote(s.peer, s.vote(fixtures.NewNode(1), tipHeight, payee(fixtures.NewNode(2))))
	assert.Equal(t, fault.ErrNotSynchronised, err, "vote processed before list sync")
}

func TestTallyConvergence(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	height := int32(tipHeight + 1)
	a := payee(fixtures.NewNode(100))
	b := payee(fixtures.NewNode(101))
	for i := 0; i < 9; i += 1 {
		assert.True(t, s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(i), height, a)), "vote not added")
	}
	assert.True(t, s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(9), height, b)), "vote not added")

	best, ok := s.ledger.BlockPayee(height)
	assert.True(t, ok, "no payee")
	assert.Equal(t, a, best, "wrong payee")

	share := s.env.Params.NodePayment(height, 100*btcutil.SatoshiPerBitcoin)
	assert.True(t, s.ledger.IsTransactionValid(height, coinbase(a, share)), "voted payee rejected")
	assert.False(t, s.ledger.IsTransactionValid(height, coinbase(b, share)), "minority payee accepted")
	assert.False(t, s.ledger.IsTransactionValid(height, coinbase(a, share-1)), "wrong amount accepted")

	assert.True(t, s.ledger.HasPayeeWithVotes(height, a, 9), "nine votes not found")
	assert.False(t, s.ledger.HasPayeeWithVotes(height, b, 2), "one vote counted twice")

	// heights without a tally accept anything
	assert.True(t, s.ledger.IsTransactionValid(height+1, coinbase(b, 1)), "untallied height rejected")
}

func TestBelowThresholdAcceptsAnyPayee(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	height := int32(tipHeight + 1)
	a := payee(fixtures.NewNode(100))
	for i := 0; i < payment.SignaturesRequired-1; i += 1 {
		s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(i), height, a))
	}
	other := payee(fixtures.NewNode(101))
	assert.True(t, s.ledger.IsTransactionValid(height, coinbase(other, 5)), "payee enforced below threshold")
}

func TestAddPaymentVoteUnknownRankBlock(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	// rank block would be beyond the tip
	v := s.vote(fixtures.NewNode(1), tipHeight+200, payee(fixtures.NewNode(2)))
	assert.False(t, s.ledger.AddPaymentVote(v), "vote added without rank block")

	v = s.vote(fixtures.NewNode(1), tipHeight+1, payee(fixtures.NewNode(2)))
	assert.True(t, s.ledger.AddPaymentVote(v), "vote not added")
	assert.False(t, s.ledger.AddPaymentVote(v), "vote added twice")
	assert.Equal(t, 1, s.ledger.VoteCount(), "wrong vote count")
}

func TestIsBlockPayeeValid(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	height := int32(tipHeight + 1)
	a := payee(fixtures.NewNode(100))
	b := payee(fixtures.NewNode(101))

	for _, enforce := range []bool{false, true} {
		s := newSetup(ctl, payment.Config{Enforce: enforce})
		for i := 0; i < payment.SignaturesRequired; i += 1 {
			s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(i), height, a))
		}
		share := s.env.Params.NodePayment(height, 100*btcutil.SatoshiPerBitcoin)

		assert.True(t, s.ledger.IsBlockPayeeValid(height, coinbase(a, share)), "voted payee rejected")
		assert.Equal(t, !enforce, s.ledger.IsBlockPayeeValid(height, coinbase(b, share)), "enforcement ignored")

		s.sync.Synced = false
		assert.True(t, s.ledger.IsBlockPayeeValid(height, coinbase(b, share)), "checked while not synced")
	}

	s := newSetup(ctl, payment.Config{Enforce: true})
	assert.True(t, s.ledger.IsBlockPayeeValid(s.env.Params.PaymentsStartBlock-1, coinbase(b, 0)), "checked before payments start")
}

func TestIsBlockValueValid(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	outputs := coinbase(payee(fixtures.NewNode(1)), 30)
	total := btcutil.Amount(100 * btcutil.SatoshiPerBitcoin)
	assert.NoError(t, s.ledger.IsBlockValueValid(tipHeight, outputs, total), "exact reward rejected")

	err := s.ledger.IsBlockValueValid(tipHeight, outputs, total-1)
	assert.ErrorIs(t, err, fault.ErrCoinbaseExceedsReward, "excess reward accepted")
}

func TestFillBlockPayee(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	height := int32(tipHeight + 1)
	elected := fixtures.NewNode(50)
	s.elector.EXPECT().NextInQueueForPayment(height, true).Return(info(elected), 10, true).Times(1)

	out, err := s.ledger.FillBlockPayee(height, 30)
	assert.NoError(t, err, "fill error")
	assert.Equal(t, payee(elected), out.PkScript, "not the elected payee")
	assert.Equal(t, int64(30), out.Value, "wrong amount")

	voted := payee(fixtures.NewNode(51))
	s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(1), height, voted))
	out, err = s.ledger.FillBlockPayee(height, 30)
	assert.NoError(t, err, "fill error")
	assert.Equal(t, voted, out.PkScript, "not the voted payee")

	s.elector.EXPECT().NextInQueueForPayment(height+1, true).Return(info(elected), 0, false).Times(1)
	_, err = s.ledger.FillBlockPayee(height+1, 30)
	assert.Equal(t, fault.ErrNodeNotFound, err, "filled without a payee")
}

func TestRequiredPaymentsString(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	height := int32(tipHeight + 1)
	assert.Equal(t, "Unknown", s.ledger.RequiredPaymentsString(height), "empty tally described")

	a := payee(fixtures.NewNode(100))
	b := payee(fixtures.NewNode(101))
	s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(1), height, a))
	s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(2), height, a))
	s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(3), height, b))

	expected := signer.PayeeAddress(a, s.env.Params.Net) + ":2, " + signer.PayeeAddress(b, s.env.Params.Net) + ":1"
	assert.Equal(t, expected, s.ledger.RequiredPaymentsString(height), "wrong description")
}

func TestIsScheduled(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	node := fixtures.NewNode(100)
	s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(1), tipHeight+3, payee(node)))

	assert.True(t, s.ledger.IsScheduled(info(node), tipHeight+1), "scheduled payee missed")
	assert.False(t, s.ledger.IsScheduled(info(node), tipHeight+3), "excluded height used")
	assert.False(t, s.ledger.IsScheduled(info(fixtures.NewNode(101)), tipHeight+1), "other node scheduled")
}

func TestProcessBlock(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	height := int32(tipHeight + payment.VoteLookahead)
	assert.False(t, s.ledger.ProcessBlock(height), "voted without being a libernode")

	self := fixtures.NewNode(1)
	s.self.SetNode(self)
	elected := fixtures.NewNode(50)
	s.elector.EXPECT().GetRank(self.Outpoint, height-119, gomock.Any(), false).Return(4).Times(1)
	s.elector.EXPECT().NextInQueueForPayment(height, true).Return(info(elected), 10, true).Times(1)

	s.ledger.UpdatedBlockTip(tipHeight)

	best, ok := s.ledger.BlockPayee(height)
	assert.True(t, ok, "no vote cast")
	assert.Equal(t, payee(elected), best, "voted for the wrong node")
	assert.Equal(t, 1, s.relayed(), "vote not relayed")

	votes := s.ledger.BlockVotes(height)
	assert.Equal(t, 1, len(votes), "wrong vote count")
	assert.NoError(t, votes[0].CheckSignature(s.env.Signer, self.Keys.Operational.PubKey()), "vote not signed by self")
}

func TestProcessBlockRankTooLow(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	self := fixtures.NewNode(1)
	s.self.SetNode(self)
	height := int32(tipHeight + payment.VoteLookahead)
	s.elector.EXPECT().GetRank(self.Outpoint, height-119, gomock.Any(), false).Return(11).Times(1)

	assert.False(t, s.ledger.ProcessBlock(height), "voted outside the top group")
	assert.Equal(t, 0, s.ledger.VoteCount(), "vote stored")
}

func TestServeVoteSync(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	a := payee(fixtures.NewNode(100))
	future := s.vote(fixtures.NewNode(1), tipHeight+1, a)
	s.ledger.AddPaymentVote(future)
	s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(2), tipHeight-1, a))

	s.ledger.ServeVoteSync(s.peer)
	assert.Equal(t, []network.Inventory{{Type: network.InvPaymentVote, Hash: future.Hash()}}, s.peer.Inventory, "wrong inventory")

	status := s.peer.Sent(network.CmdSyncStatus)
	assert.Equal(t, 1, len(status), "no sync status")
	stage, count, err := network.UnpackSyncStatus(status[0].Payload)
	assert.NoError(t, err, "sync status error")
	assert.Equal(t, network.StagePaymentVotes, stage, "wrong stage")
	assert.Equal(t, 1, count, "wrong count")

	s.ledger.ServeVoteSync(s.peer)
	assert.Equal(t, 20, s.peer.Score, "repeated request not penalised")
	assert.Equal(t, 1, len(s.peer.Inventory), "repeated request served")
}

func TestRequestLowDataPaymentBlocks(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	a := payee(fixtures.NewNode(100))

	// clear winner
	for i := 0; i < payment.SignaturesRequired; i += 1 {
		s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(i), tipHeight, a))
	}
	// one vote only
	s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(1), tipHeight-1, a))

	s.ledger.RequestLowDataPaymentBlocks(s.peer)

	messages := s.peer.Sent(network.CmdGetData)
	assert.Equal(t, 1, len(messages), "wrong number of requests")
	inventory, err := network.UnpackInventory(messages[0].Payload)
	assert.NoError(t, err, "inventory error")

	// heights 0 to tip-2 unknown plus the under-voted tip-1
	assert.Equal(t, tipHeight, len(inventory), "wrong number of blocks")
	hashes := map[string]bool{}
	for _, inv := range inventory {
		assert.Equal(t, network.InvPaymentBlock, inv.Type, "wrong type")
		hashes[inv.Hash.String()] = true
	}
	assert.True(t, hashes[fixtures.BlockHashAt(tipHeight-1).String()], "under-voted block not requested")
	assert.False(t, hashes[fixtures.BlockHashAt(tipHeight).String()], "decided block requested")
}

func TestCheckAndRemove(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	a := payee(fixtures.NewNode(100))
	s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(1), 500, a))
	s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(2), 500, a))
	s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(1), 900, a))

	s.chain.Extend(payment.MinBlocksToStore - 400)
	s.ledger.CheckAndRemove()

	assert.Equal(t, 1, s.ledger.BlockCount(), "old tally kept")
	assert.Equal(t, 1, s.ledger.VoteCount(), "old votes kept")
	_, ok := s.ledger.BlockPayee(500)
	assert.False(t, ok, "old payee kept")
	_, ok = s.ledger.BlockPayee(900)
	assert.True(t, ok, "recent payee removed")

	assert.True(t, s.ledger.CanVote(fixtures.NewNode(1).Outpoint, 500), "old voter kept")
	assert.False(t, s.ledger.CanVote(fixtures.NewNode(1).Outpoint, 900), "recent voter removed")
}

func TestIsEnoughData(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	assert.Equal(t, payment.MinBlocksToStore, s.ledger.StorageLimit(), "wrong storage limit")
	assert.False(t, s.ledger.IsEnoughData(), "empty ledger has enough data")
}

func TestPersistence(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newSetup(ctl, payment.Config{})

	a := payee(fixtures.NewNode(100))
	b := payee(fixtures.NewNode(101))
	s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(1), tipHeight+1, b))
	s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(2), tipHeight+1, a))
	s.ledger.AddPaymentVote(s.vote(fixtures.NewNode(3), tipHeight+2, a))

	data := s.ledger.Pack()

	restored := payment.New(s.env, payment.Config{}, s.link, s.nodes, s.elector, s.sync, s.self)
	assert.NoError(t, restored.Unpack(data), "unpack error")
	assert.Equal(t, 3, restored.VoteCount(), "votes lost")
	assert.Equal(t, 2, restored.BlockCount(), "tallies lost")
	assert.Equal(t, []int32{tipHeight + 1, tipHeight + 2}, restored.Heights(), "wrong heights")
	assert.False(t, restored.CanVote(fixtures.NewNode(3).Outpoint, tipHeight+2), "restored voter can vote again")

	dumped, err := payment.Dump(data)
	assert.NoError(t, err, "dump error")
	assert.Equal(t, 3, len(dumped), "wrong dumped count")
	assert.Equal(t, int32(tipHeight+1), dumped[0].Vote.Height, "not in tally order")

	// tie keeps the first voted payee
	best, _ := restored.BlockPayee(tipHeight + 1)
	assert.Equal(t, b, best, "tie resolved differently")
	assert.Equal(t, s.ledger.RequiredPaymentsString(tipHeight+1), restored.RequiredPaymentsString(tipHeight+1), "tally changed")

	buffer := bytes.Buffer{}
	_ = wire.WriteVarString(&buffer, 0, "CLibernodePayments-Version-0")
	_ = wire.WriteVarInt(&buffer, 0, 0)
	err = restored.Unpack(buffer.Bytes())
	assert.Equal(t, fault.ErrVersionMismatch, err, "old version accepted")
	assert.Equal(t, 0, restored.VoteCount(), "not reset")
}
