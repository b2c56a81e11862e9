// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/libercoinproject/libercoin-old/counter"
	"github.com/libercoinproject/libercoin-old/node"
	"github.com/libercoinproject/libercoin-old/nodeconf"
	"github.com/libercoinproject/libercoin-old/rpc/libernode"
	rpcnode "github.com/libercoinproject/libercoin-old/rpc/node"
)

// Create - register every handler over the runtime
//
// identities may be nil
func Create(log *logger.L, version string, rpcCount *counter.Counter, rt *node.Runtime, identities *nodeconf.Identities) *rpc.Server {

	start := time.Now().UTC()

	services := libernode.Services{
		Chain:   rt.Env.Chain,
		Params:  rt.Env.Params,
		Signer:  rt.Env.Signer,
		Nodes:   rt.Registry,
		Elector: rt.Elector,
		Ledger:  rt.Ledger,
		Self:    rt.Self,
		Sync:    rt.Sync,
	}
	if nil != identities {
		services.Identities = identities
	}

	server := rpc.NewServer()

	_ = server.Register(libernode.New(log, services))
	_ = server.Register(rpcnode.New(log, start, version, rpcCount, rt.Env.Chain, rt.Registry))

	return server
}
