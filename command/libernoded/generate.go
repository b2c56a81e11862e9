// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"text/template"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/signer"
	"github.com/libercoinproject/libercoin-old/templates"
)

const configurationFilename = "libernoded.conf"

// write a new configuration file with a fresh operational key
//
// an existing file is never overwritten
func generateConfiguration(fileName string, chainName string) error {
	params, err := chain.Get(chainName)
	if nil != err {
		return err
	}
	key, err := signer.NewKey(params.Net)
	if nil != err {
		return err
	}

	data := templates.Configuration{
		Chain:      params.Name,
		Enable:     false,
		PrivateKey: key,
		Host:       fmt.Sprintf("127.0.0.1:%d", params.DefaultPort+1),
		Listen:     []string{"127.0.0.1:2130"},
	}

	fd, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if nil != err {
		return err
	}
	defer fd.Close()

	t := template.Must(template.New("config").Parse(templates.ConfigurationTemplate))
	if err := t.Execute(fd, data); nil != err {
		os.Remove(fileName)
		return err
	}
	return nil
}

// append one identity with a fresh operational key
//
// arguments: alias address hash index
func appendIdentity(fileName string, params *chain.Params, arguments []string) (templates.Identity, error) {
	if 4 != len(arguments) {
		return templates.Identity{}, fault.ErrMissingParameters
	}
	if _, err := netip.ParseAddrPort(arguments[1]); nil != err {
		return templates.Identity{}, fault.ErrInvalidAddress
	}
	if _, err := chainhash.NewHashFromStr(arguments[2]); nil != err {
		return templates.Identity{}, fault.ErrInvalidOutpoint
	}
	index, err := strconv.ParseUint(arguments[3], 10, 32)
	if nil != err {
		return templates.Identity{}, fault.ErrInvalidOutpoint
	}

	key, err := signer.NewKey(params.Net)
	if nil != err {
		return templates.Identity{}, err
	}
	identity := templates.Identity{
		Alias:      arguments[0],
		Address:    arguments[1],
		PrivateKey: key,
		Hash:       arguments[2],
		Index:      uint32(index),
	}

	fd, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if nil != err {
		return templates.Identity{}, err
	}
	defer fd.Close()

	t := template.Must(template.New("identity").Parse(templates.IdentityTemplate))
	if err := t.Execute(fd, identity); nil != err {
		return templates.Identity{}, err
	}
	return identity, nil
}
