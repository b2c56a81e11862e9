// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payment

import (
	"bytes"
	"io"

	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/fault"
)

// Version - tag of the persisted form, any other tag resets the ledger
const Version = "CLibernodePayments-Version-1"

const maxVoteSize = 4096

// Pack - persisted form of every vote, tallies are rebuilt on load
func (l *Ledger) Pack() []byte {
	l.RLock()
	defer l.RUnlock()

	// counted votes in tally order so ties resolve the same after a load
	ordered := make([]*storedVote, 0, len(l.votes))
	for _, h := range l.heights() {
		for _, p := range l.blocks[h].payees {
			for _, hash := range p.votes {
				if stored, ok := l.votes[hash]; ok {
					ordered = append(ordered, stored)
				}
			}
		}
	}
	for _, stored := range l.votes {
		if !stored.verified {
			ordered = append(ordered, stored)
		}
	}

	buffer := bytes.Buffer{}
	_ = wire.WriteVarString(&buffer, 0, Version)
	_ = wire.WriteVarInt(&buffer, 0, uint64(len(ordered)))
	for _, stored := range ordered {
		writeVote(&buffer, stored)
	}
	return buffer.Bytes()
}

func writeVote(w io.Writer, stored *storedVote) {
	_ = wire.WriteVarBytes(w, 0, stored.vote.Pack())
	verified := uint8(0)
	if stored.verified {
		verified = 1
	}
	_ = wire.WriteVarInt(w, 0, uint64(verified))
}

// Unpack - replace the ledger with a persisted form
//
// on any failure the ledger is left empty and the error returned
func (l *Ledger) Unpack(data []byte) error {
	l.Lock()
	defer l.Unlock()

	l.reset()

	err := l.unpack(bytes.NewReader(data))
	if nil != err {
		l.reset()
		l.log.Warnf("ledger reset: %s", err)
		return err
	}
	l.log.Infof("loaded: %s", l.summary())
	return nil
}

// DumpedVote - one vote of a persisted ledger
type DumpedVote struct {
	Vote     *Vote
	Verified bool
}

// Dump - votes of a persisted ledger in stored order
func Dump(data []byte) ([]DumpedVote, error) {
	result := []DumpedVote{}
	err := readVotes(bytes.NewReader(data), func(v *Vote, verified bool) error {
		result = append(result, DumpedVote{Vote: v, Verified: verified})
		return nil
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}

func readVotes(r io.Reader, f func(v *Vote, verified bool) error) error {
	version, err := wire.ReadVarString(r, 0)
	if nil != err {
		return err
	}
	if Version != version {
		return fault.ErrVersionMismatch
	}

	n, err := wire.ReadVarInt(r, 0)
	if nil != err {
		return err
	}
	for i := uint64(0); i < n; i += 1 {
		data, err := wire.ReadVarBytes(r, 0, maxVoteSize, "vote")
		if nil != err {
			return err
		}
		v, err := UnpackVote(data)
		if nil != err {
			return err
		}
		verified, err := wire.ReadVarInt(r, 0)
		if nil != err {
			return err
		}
		if err := f(v, 0 != verified); nil != err {
			return err
		}
	}
	return nil
}

func (l *Ledger) unpack(r io.Reader) error {
	return readVotes(r, func(v *Vote, verified bool) error {
		hash := v.Hash()
		if _, ok := l.votes[hash]; ok {
			return fault.ErrInvalidCount
		}
		l.votes[hash] = &storedVote{vote: v, verified: verified}
		if !verified {
			return nil
		}
		t, ok := l.blocks[v.Height]
		if !ok {
			t = &tally{height: v.Height}
			l.blocks[v.Height] = t
		}
		t.add(v)
		l.markVoted(v.Voter, v.Height)
		return nil
	})
}
