// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/libercoinproject/libercoin-old/fault"
)

// protocol versions shared by all networks
const (
	ProtocolVersion          = 90046
	MinPaymentsProtoVersion1 = 90046
	MinPaymentsProtoVersion2 = 90046
	MinPoSeProtoVersion      = 70203
)

// CollateralCoins - whole coins locked by a node's collateral output
const CollateralCoins = 512

// Params - per network constants
type Params struct {
	Name string

	// address encoding
	Net *chaincfg.Params

	// the only port allowed for nodes on the main network,
	// and forbidden on every other network
	MainnetPort uint16
	DefaultPort uint16

	MinimumConfirmations int32
	PaymentsStartBlock   int32
	MaxTipAge            time.Duration
	Collateral           btcutil.Amount

	// share of the coinbase paid to the elected node
	NodePaymentPercent int64

	// election policy, the ratios between these matter
	VoteRankLag        int32
	QueueScoreLag      int32
	QueueSampleDivisor int
	MinutesPerNode     float64

	Regtest bool
}

const mainnetPort = 8255

var all = map[string]*Params{
	Libercoin: {
		Name:                 Libercoin,
		Net:                  &chaincfg.MainNetParams,
		MainnetPort:          mainnetPort,
		DefaultPort:          mainnetPort,
		MinimumConfirmations: 15,
		PaymentsStartBlock:   1000,
		MaxTipAge:            24 * time.Hour,
		Collateral:           CollateralCoins * btcutil.SatoshiPerBitcoin,
		NodePaymentPercent:   30,
		VoteRankLag:          119,
		QueueScoreLag:        101,
		QueueSampleDivisor:   10,
		MinutesPerNode:       2.6,
	},
	Testing: {
		Name:                 Testing,
		Net:                  &chaincfg.TestNet3Params,
		MainnetPort:          mainnetPort,
		DefaultPort:          18255,
		MinimumConfirmations: 1,
		PaymentsStartBlock:   100,
		MaxTipAge:            0x7fffffff * time.Second,
		Collateral:           CollateralCoins * btcutil.SatoshiPerBitcoin,
		NodePaymentPercent:   30,
		VoteRankLag:          119,
		QueueScoreLag:        101,
		QueueSampleDivisor:   10,
		MinutesPerNode:       2.6,
	},
	Local: {
		Name:                 Local,
		Net:                  &chaincfg.RegressionNetParams,
		MainnetPort:          mainnetPort,
		DefaultPort:          18455,
		MinimumConfirmations: 1,
		PaymentsStartBlock:   1,
		MaxTipAge:            24 * time.Hour,
		Collateral:           CollateralCoins * btcutil.SatoshiPerBitcoin,
		NodePaymentPercent:   30,
		VoteRankLag:          119,
		QueueScoreLag:        101,
		QueueSampleDivisor:   10,
		MinutesPerNode:       2.6,
		Regtest:              true,
	},
}

// Get - parameters for a named chain
func Get(name string) (*Params, error) {
	p, ok := all[name]
	if !ok {
		return nil, fault.ErrInvalidChain
	}
	return p, nil
}

// IsMainnet - true only for the production network
func (p *Params) IsMainnet() bool {
	return Libercoin == p.Name
}

// NodePayment - amount of a coinbase value owed to the elected node
func (p *Params) NodePayment(height int32, blockValue btcutil.Amount) btcutil.Amount {
	if height < p.PaymentsStartBlock {
		return 0
	}
	return blockValue * btcutil.Amount(p.NodePaymentPercent) / 100
}

// CheckPort - mainnet nodes must use the mainnet port, other networks must not
func (p *Params) CheckPort(port uint16) error {
	if p.IsMainnet() {
		if port != p.MainnetPort {
			return fmt.Errorf("%w: %d - only %d is supported on mainnet", fault.ErrInvalidPort, port, p.MainnetPort)
		}
	} else if port == p.MainnetPort {
		return fmt.Errorf("%w: %d - %d is only supported on mainnet", fault.ErrInvalidPort, port, p.MainnetPort)
	}
	return nil
}
