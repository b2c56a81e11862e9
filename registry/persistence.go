// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"bytes"
	"encoding/binary"
	"io"
	"net/netip"

	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
)

// Version - tag of the persisted form, any other tag resets the registry
const Version = "CLibernodeMan-Version-4"

// largest record or broadcast accepted from storage
const maxItemSize = 4096

// Pack - persisted form of the whole registry
func (r *Registry) Pack() []byte {
	r.RLock()
	defer r.RUnlock()

	buffer := bytes.Buffer{}
	_ = wire.WriteVarString(&buffer, 0, Version)

	_ = wire.WriteVarInt(&buffer, 0, uint64(r.nodes.len()))
	r.nodes.each(func(rec *masternode.Record) {
		_ = wire.WriteVarBytes(&buffer, 0, rec.Pack())
	})

	writeOutpoints(&buffer, r.index.outpoints())
	writeOutpoints(&buffer, r.indexOld.outpoints())

	_ = wire.WriteVarInt(&buffer, 0, uint64(len(r.seenBroadcasts)))
	for _, seen := range r.seenBroadcasts {
		_ = binary.Write(&buffer, binary.LittleEndian, seen.time)
		_ = wire.WriteVarBytes(&buffer, 0, seen.broadcast.Pack())
	}

	_ = wire.WriteVarInt(&buffer, 0, uint64(len(r.seenPings)))
	for _, p := range r.seenPings {
		_ = wire.WriteVarBytes(&buffer, 0, p.Pack())
	}

	writeExpiries(&buffer, r.askedUs)
	writeExpiries(&buffer, r.weAsked)
	_ = wire.WriteVarInt(&buffer, 0, uint64(len(r.weAskedEntry)))
	for outpoint, asked := range r.weAskedEntry {
		_ = masternode.WriteOutpoint(&buffer, outpoint)
		writeExpiries(&buffer, asked)
	}

	_ = binary.Write(&buffer, binary.LittleEndian, r.lastWatchdogVote)
	return buffer.Bytes()
}

// Unpack - replace the registry with a persisted form
//
// on a version mismatch or a decoding failure the registry is left
// empty and the error returned
func (r *Registry) Unpack(data []byte) error {
	r.Lock()
	defer r.Unlock()

	r.reset()
	err := r.unpack(bytes.NewReader(data))
	if nil != err {
		r.reset()
		r.log.Warnf("registry reset: %s", err)
		return err
	}
	r.log.Infof("loaded: %s", r.summary())
	return nil
}

// Dump - records of a persisted registry, read without a chain view
//
// the collateral age is not known so is -1
func Dump(data []byte) ([]masternode.Info, error) {
	result := []masternode.Info{}
	err := readRecords(bytes.NewReader(data), func(rec *masternode.Record) {
		info := rec.Info()
		info.CollateralAge = -1
		result = append(result, info)
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}

// version tag followed by the records
func readRecords(rd io.Reader, f func(rec *masternode.Record)) error {
	version, err := wire.ReadVarString(rd, 0)
	if nil != err {
		return err
	}
	if Version != version {
		return fault.ErrVersionMismatch
	}

	n, err := wire.ReadVarInt(rd, 0)
	if nil != err {
		return err
	}
	for i := uint64(0); i < n; i += 1 {
		data, err := wire.ReadVarBytes(rd, 0, maxItemSize, "record")
		if nil != err {
			return err
		}
		rec, err := masternode.UnpackRecord(data)
		if nil != err {
			return err
		}
		f(rec)
	}
	return nil
}

func (r *Registry) unpack(rd io.Reader) error {
	err := readRecords(rd, func(rec *masternode.Record) {
		r.nodes.insert(rec)
	})
	if nil != err {
		return err
	}

	outpoints, err := readOutpoints(rd)
	if nil != err {
		return err
	}
	for _, op := range outpoints {
		r.index.add(op)
	}
	outpoints, err = readOutpoints(rd)
	if nil != err {
		return err
	}
	for _, op := range outpoints {
		r.indexOld.add(op)
	}
	r.indexRebuilt = r.indexOld.size() > 0

	// a live record missing from the index would never be found by position
	for op := range r.nodes.byOutpoint {
		if -1 == r.index.indexOf(op) {
			return fault.ErrInvalidCount
		}
	}

	n, err := wire.ReadVarInt(rd, 0)
	if nil != err {
		return err
	}
	for i := uint64(0); i < n; i += 1 {
		var t int64
		if err := binary.Read(rd, binary.LittleEndian, &t); nil != err {
			return err
		}
		data, err := wire.ReadVarBytes(rd, 0, maxItemSize, "broadcast")
		if nil != err {
			return err
		}
		b, err := masternode.UnpackBroadcast(data)
		if nil != err {
			return err
		}
		r.seenBroadcasts[b.Hash()] = &seenBroadcast{time: t, broadcast: b}
	}

	n, err = wire.ReadVarInt(rd, 0)
	if nil != err {
		return err
	}
	for i := uint64(0); i < n; i += 1 {
		data, err := wire.ReadVarBytes(rd, 0, maxItemSize, "ping")
		if nil != err {
			return err
		}
		p, err := masternode.UnpackPing(data)
		if nil != err {
			return err
		}
		r.seenPings[p.Hash()] = p
	}

	if r.askedUs, err = readExpiries(rd); nil != err {
		return err
	}
	if r.weAsked, err = readExpiries(rd); nil != err {
		return err
	}
	n, err = wire.ReadVarInt(rd, 0)
	if nil != err {
		return err
	}
	for i := uint64(0); i < n; i += 1 {
		op, err := masternode.ReadOutpoint(rd)
		if nil != err {
			return err
		}
		asked, err := readExpiries(rd)
		if nil != err {
			return err
		}
		r.weAskedEntry[op] = asked
	}

	return binary.Read(rd, binary.LittleEndian, &r.lastWatchdogVote)
}

func writeOutpoints(w io.Writer, outpoints []wire.OutPoint) {
	_ = wire.WriteVarInt(w, 0, uint64(len(outpoints)))
	for _, op := range outpoints {
		_ = masternode.WriteOutpoint(w, op)
	}
}

func readOutpoints(rd io.Reader) ([]wire.OutPoint, error) {
	n, err := wire.ReadVarInt(rd, 0)
	if nil != err {
		return nil, err
	}
	if n > MaxExpectedIndexSize*4 {
		return nil, fault.ErrOutOfRange
	}
	result := make([]wire.OutPoint, 0, n)
	for i := uint64(0); i < n; i += 1 {
		op, err := masternode.ReadOutpoint(rd)
		if nil != err {
			return nil, err
		}
		result = append(result, op)
	}
	return result, nil
}

func writeExpiries(w io.Writer, m map[netip.Addr]int64) {
	_ = wire.WriteVarInt(w, 0, uint64(len(m)))
	for address, until := range m {
		_ = network.WriteAddress(w, netip.AddrPortFrom(address, 0))
		_ = binary.Write(w, binary.LittleEndian, until)
	}
}

func readExpiries(rd io.Reader) (map[netip.Addr]int64, error) {
	n, err := wire.ReadVarInt(rd, 0)
	if nil != err {
		return nil, err
	}
	m := make(map[netip.Addr]int64, n)
	for i := uint64(0); i < n; i += 1 {
		address, err := network.ReadAddress(rd)
		if nil != err {
			return nil, err
		}
		var until int64
		if err := binary.Read(rd, binary.LittleEndian, &until); nil != err {
			return nil, err
		}
		m[address.Addr()] = until
	}
	return m, nil
}
