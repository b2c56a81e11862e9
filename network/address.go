// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"encoding/binary"
	"io"
	"net/netip"
)

// IsRoutable - a public IPv4 address that other nodes can dial
func IsRoutable(address netip.AddrPort) bool {
	a := address.Addr().Unmap()
	if !a.IsValid() || !a.Is4() {
		return false
	}
	if a.IsLoopback() || a.IsPrivate() || a.IsUnspecified() ||
		a.IsLinkLocalUnicast() || a.IsMulticast() {
		return false
	}
	b := a.As4()
	// 100.64.0.0/10 carrier grade NAT, 198.18.0.0/15 benchmarking, 0/8 and 240/4
	switch {
	case 0 == b[0], b[0] >= 240:
		return false
	case 100 == b[0] && 64 == b[1]&0xc0:
		return false
	case 198 == b[0] && 18 == b[1]&0xfe:
		return false
	}
	return true
}

// IsLocal - loopback, unspecified or a private network address
func IsLocal(address netip.AddrPort) bool {
	a := address.Addr().Unmap()
	return a.IsLoopback() || a.IsUnspecified() || (a.Is4() && a.IsPrivate())
}

// WriteAddress - 16 byte IPv6 form followed by a big endian port
func WriteAddress(w io.Writer, address netip.AddrPort) error {
	ip := address.Addr().As16()
	if _, err := w.Write(ip[:]); nil != err {
		return err
	}
	return binary.Write(w, binary.BigEndian, address.Port())
}

// ReadAddress - inverse of WriteAddress
func ReadAddress(r io.Reader) (netip.AddrPort, error) {
	var ip [16]byte
	if _, err := io.ReadFull(r, ip[:]); nil != err {
		return netip.AddrPort{}, err
	}
	var port uint16
	if err := binary.Read(r, binary.BigEndian, &port); nil != err {
		return netip.AddrPort{}, err
	}
	return netip.AddrPortFrom(netip.AddrFrom16(ip).Unmap(), port), nil
}
