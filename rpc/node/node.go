// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/libercoinproject/libercoin-old/blockchain"
	"github.com/libercoinproject/libercoin-old/counter"
	"github.com/libercoinproject/libercoin-old/mode"
	"github.com/libercoinproject/libercoin-old/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Registry - record totals
type Registry interface {
	Size() int
	CountEnabled(protocol int32) int
}

// Node - type for RPC calls
type Node struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Start    time.Time
	Version  string
	chain    blockchain.View
	registry Registry
	counter  *counter.Counter
}

// New - create the RPC handler
func New(log *logger.L, start time.Time, version string, counter *counter.Counter, chain blockchain.View, registry Registry) *Node {
	return &Node{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:    start,
		Version:  version,
		chain:    chain,
		registry: registry,
		counter:  counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain      string    `json:"chain"`
	Mode       string    `json:"mode"`
	Block      BlockInfo `json:"block"`
	Libernodes Counts    `json:"libernodes"`
	RPCs       int64     `json:"rpcs"`
	Version    string    `json:"version"`
	Uptime     string    `json:"uptime"`
}

// BlockInfo - the tip of the host chain
type BlockInfo struct {
	Height int32  `json:"height"`
	Hash   string `json:"hash"`
}

// Counts - registry totals
type Counts struct {
	Total   int `json:"total"`
	Enabled int `json:"enabled"`
}

// Info - return some information about this node
// only enough for clients to determine node state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Request(node.Limiter); nil != err {
		return err
	}

	reply.Chain = mode.ChainName()
	reply.Mode = mode.String()

	height := node.chain.Height()
	reply.Block.Height = height
	if hash, err := node.chain.BlockHash(height); nil == err {
		reply.Block.Hash = hash.String()
	}

	reply.Libernodes = Counts{
		Total:   node.registry.Size(),
		Enabled: node.registry.CountEnabled(-1),
	}
	reply.RPCs = node.counter.Value()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}
