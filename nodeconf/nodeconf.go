// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nodeconf

import (
	"bufio"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/signer"
)

// Entry - one configured identity
type Entry struct {
	Alias          string
	Address        netip.AddrPort
	OperationalKey *btcec.PrivateKey
	Outpoint       wire.OutPoint
}

// Identities - the identities file, reloaded on change
type Identities struct {
	sync.RWMutex

	log      *logger.L
	fileName string
	net      *chaincfg.Params
	entries  []Entry
}

// New - read the identities file
//
// a missing file is an empty set of identities
func New(fileName string, net *chaincfg.Params) (*Identities, error) {
	i := &Identities{
		log:      logger.New("nodeconf"),
		fileName: fileName,
		net:      net,
	}
	if err := i.Reload(); nil != err {
		return nil, err
	}
	return i, nil
}

// FileName - the identities file
func (i *Identities) FileName() string {
	return i.fileName
}

// Reload - replace the identities from the file
//
// on error the previous identities are kept
func (i *Identities) Reload() error {
	f, err := os.Open(i.fileName)
	if os.IsNotExist(err) {
		i.log.Infof("no identities file: %s", i.fileName)
		i.Lock()
		i.entries = nil
		i.Unlock()
		return nil
	}
	if nil != err {
		return err
	}
	defer f.Close()

	entries, err := Parse(f, i.net)
	if nil != err {
		i.log.Errorf("identities file: %s  error: %s", i.fileName, err)
		return err
	}

	i.Lock()
	i.entries = entries
	i.Unlock()

	i.log.Infof("loaded %d identities from: %s", len(entries), i.fileName)
	return nil
}

// Entries - copy of all identities in file order
func (i *Identities) Entries() []Entry {
	i.RLock()
	defer i.RUnlock()
	return append([]Entry{}, i.entries...)
}

// Get - identity by alias
func (i *Identities) Get(alias string) (Entry, bool) {
	i.RLock()
	defer i.RUnlock()
	for _, e := range i.entries {
		if alias == e.Alias {
			return e, true
		}
	}
	return Entry{}, false
}

// Parse - decode identities, net may be nil to accept any network
func Parse(r io.Reader, net *chaincfg.Params) ([]Entry, error) {
	entries := []Entry{}
	aliases := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line += 1
		text := strings.TrimSpace(scanner.Text())
		if "" == text || '#' == text[0] {
			continue
		}

		e, err := parseLine(text, net)
		if nil != err {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if _, ok := aliases[e.Alias]; ok {
			return nil, fmt.Errorf("line %d: duplicate alias: %q", line, e.Alias)
		}
		aliases[e.Alias] = struct{}{}
		entries = append(entries, e)
	}
	if err := scanner.Err(); nil != err {
		return nil, err
	}
	return entries, nil
}

func parseLine(text string, net *chaincfg.Params) (Entry, error) {
	fields := strings.Fields(text)
	if 5 != len(fields) {
		return Entry{}, fault.ErrMissingParameters
	}

	address, err := netip.ParseAddrPort(fields[1])
	if nil != err {
		return Entry{}, fault.ErrInvalidAddress
	}

	key, _, err := signer.ParseWIF(fields[2], net)
	if nil != err {
		return Entry{}, err
	}

	hash, err := chainhash.NewHashFromStr(fields[3])
	if nil != err {
		return Entry{}, fault.ErrInvalidOutpoint
	}
	index, err := strconv.ParseUint(fields[4], 10, 32)
	if nil != err {
		return Entry{}, fault.ErrInvalidOutpoint
	}

	return Entry{
		Alias:          fields[0],
		Address:        address,
		OperationalKey: key,
		Outpoint:       wire.OutPoint{Hash: *hash, Index: uint32(index)},
	}, nil
}
