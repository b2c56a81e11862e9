// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpcview reads chain state from a full node over its JSON-RPC interface
package rpcview

import (
	"encoding/hex"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btcd/wire"

	"github.com/libercoinproject/libercoin-old/blockchain"
	"github.com/libercoinproject/libercoin-old/fault"
)

// Configuration - full node connection
type Configuration struct {
	Host        string `gluamapper:"host" json:"host"`
	User        string `gluamapper:"user" json:"user"`
	Password    string `gluamapper:"password" json:"password"`
	Certificate string `gluamapper:"certificate" json:"certificate"`
}

// View - blockchain.View over rpcclient
type View struct {
	log    *logger.L
	client *rpcclient.Client
}

// New - connect using HTTP POST mode, no websocket notifications
func New(configuration *Configuration) (*View, error) {
	connection := &rpcclient.ConnConfig{
		Host:         configuration.Host,
		User:         configuration.User,
		Pass:         configuration.Password,
		HTTPPostMode: true,
		DisableTLS:   "" == configuration.Certificate,
	}
	if "" != configuration.Certificate {
		connection.Certificates = []byte(configuration.Certificate)
	}

	client, err := rpcclient.New(connection, nil)
	if nil != err {
		return nil, err
	}
	return &View{
		log:    logger.New("rpcview"),
		client: client,
	}, nil
}

// Shutdown - close the client
func (v *View) Shutdown() {
	v.client.Shutdown()
}

// any transport failure is reported as a busy chain
func (v *View) busy(call string, err error) error {
	v.log.Warnf("%s: error: %s", call, err)
	return fault.ErrChainBusy
}

// Height - tip height
func (v *View) Height() int32 {
	n, err := v.client.GetBlockCount()
	if nil != err {
		v.log.Warnf("GetBlockCount: error: %s", err)
		return -1
	}
	return int32(n)
}

// HeaderHeight - best header height
func (v *View) HeaderHeight() int32 {
	info, err := v.client.GetBlockChainInfo()
	if nil != err {
		v.log.Warnf("GetBlockChainInfo: error: %s", err)
		return -1
	}
	return info.Headers
}

// BlockHash - hash at a height of the active chain
func (v *View) BlockHash(height int32) (chainhash.Hash, error) {
	if height < 0 {
		return chainhash.Hash{}, fault.ErrBlockNotFound
	}
	hash, err := v.client.GetBlockHash(int64(height))
	if nil != err {
		return chainhash.Hash{}, v.busy("GetBlockHash", err)
	}
	return *hash, nil
}

// BlockHeight - height of a known block
func (v *View) BlockHeight(hash chainhash.Hash) (int32, error) {
	header, err := v.client.GetBlockHeaderVerbose(&hash)
	if nil != err {
		return 0, fault.ErrUnknownBlockHash
	}
	return header.Height, nil
}

// BlockTime - header time of a block
func (v *View) BlockTime(height int32) (time.Time, error) {
	hash, err := v.BlockHash(height)
	if nil != err {
		return time.Time{}, err
	}
	header, err := v.client.GetBlockHeaderVerbose(&hash)
	if nil != err {
		return time.Time{}, v.busy("GetBlockHeaderVerbose", err)
	}
	return time.Unix(header.Time, 0), nil
}

// Coin - unspent output lookup, mempool excluded
func (v *View) Coin(outpoint wire.OutPoint) (*blockchain.Coin, error) {
	out, err := v.client.GetTxOut(&outpoint.Hash, outpoint.Index, false)
	if nil != err {
		return nil, v.busy("GetTxOut", err)
	}
	if nil == out {
		return nil, fault.ErrCoinNotFound
	}

	tip, err := v.client.GetBlockHeaderVerbose(mustHash(out.BestBlock))
	if nil != err {
		return nil, v.busy("GetBlockHeaderVerbose", err)
	}

	value, err := btcutil.NewAmount(out.Value)
	if nil != err {
		return nil, err
	}
	script, err := hex.DecodeString(out.ScriptPubKey.Hex)
	if nil != err {
		return nil, err
	}

	return &blockchain.Coin{
		Value:    value,
		Height:   tip.Height - int32(out.Confirmations) + 1,
		PkScript: script,
	}, nil
}

// CoinbaseOutputs - outputs of the first transaction in a block
func (v *View) CoinbaseOutputs(height int32) ([]*wire.TxOut, error) {
	hash, err := v.BlockHash(height)
	if nil != err {
		return nil, err
	}
	block, err := v.client.GetBlock(&hash)
	if nil != err {
		return nil, v.busy("GetBlock", err)
	}
	if 0 == len(block.Transactions) {
		return nil, fault.ErrBlockNotFound
	}
	return block.Transactions[0].TxOut, nil
}

func mustHash(s string) *chainhash.Hash {
	h, err := chainhash.NewHashFromStr(s)
	if nil != err {
		return &chainhash.Hash{}
	}
	return h
}
var _ blockchain.View = &View{}
