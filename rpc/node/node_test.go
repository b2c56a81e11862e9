// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/libercoinproject/libercoin-old/blockchain/mocks"
	"github.com/libercoinproject/libercoin-old/chain"
	"github.com/libercoinproject/libercoin-old/counter"
	"github.com/libercoinproject/libercoin-old/fault"
	"github.com/libercoinproject/libercoin-old/fixtures"
	"github.com/libercoinproject/libercoin-old/mode"
	"github.com/libercoinproject/libercoin-old/rpc/node"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

type registry struct {
	size    int
	enabled int
}

func (r registry) Size() int                { return r.size }
func (r registry) CountEnabled(_ int32) int { return r.enabled }

func TestNodeInfo(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	err := mode.Initialise(chain.Testing)
	assert.Nil(t, err, "mode initialise")
	defer mode.Finalise()

	view := mocks.NewMockView(ctl)
	view.EXPECT().Height().Return(int32(300)).Times(1)
	view.EXPECT().BlockHash(int32(300)).Return(fixtures.BlockHashAt(300), nil).Times(1)

	var c counter.Counter
	c.Increment()
	c.Increment()

	n := node.New(
		logger.New(fixtures.LogCategory),
		time.Now(),
		"100",
		&c,
		view,
		registry{size: 7, enabled: 4},
	)

	var reply node.InfoReply
	err = n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, chain.Testing, reply.Chain, "wrong chain")
	assert.Equal(t, mode.Resynchronise.String(), reply.Mode, "wrong mode")
	assert.Equal(t, int32(300), reply.Block.Height, "wrong block height")
	assert.Equal(t, fixtures.BlockHashAt(300).String(), reply.Block.Hash, "wrong block hash")
	assert.Equal(t, 7, reply.Libernodes.Total, "wrong total")
	assert.Equal(t, 4, reply.Libernodes.Enabled, "wrong enabled")
	assert.Equal(t, int64(2), reply.RPCs, "wrong connection count")
	assert.Equal(t, n.Version, reply.Version, "wrong version")
}

func TestNodeInfoChainBusy(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	err := mode.Initialise(chain.Testing)
	assert.Nil(t, err, "mode initialise")
	defer mode.Finalise()

	view := mocks.NewMockView(ctl)
	view.EXPECT().Height().Return(int32(10)).Times(1)
	view.EXPECT().BlockHash(int32(10)).Return(fixtures.BlockHashAt(0), fault.ErrChainBusy).Times(1)

	var c counter.Counter
	n := node.New(logger.New(fixtures.LogCategory), time.Now(), "1", &c, view, registry{})

	var reply node.InfoReply
	err = n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, "", reply.Block.Hash, "hash while busy")
}
