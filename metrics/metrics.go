// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics - prometheus gauges for the libernode subsystem
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/libercoinproject/libercoin-old/masternode"
	"github.com/libercoinproject/libercoin-old/network"
)

const (
	metricsNamespace = "libercoin"
	subsystem        = "libernode"
)

// Nodes - registry values
type Nodes interface {
	Infos() []masternode.Info
	IndexSize() int
}

// Ledger - payment ledger values
type Ledger interface {
	BlockCount() int
	VoteCount() int
}

// Sync - synchronisation values
type Sync interface {
	Stage() network.SyncStage
	Progress() float64
}

// Sources - where the values are read, any may be nil
type Sources struct {
	Nodes  Nodes
	Ledger Ledger
	Sync   Sync

	// numeric local state, -1 when not a libernode
	SelfState func() int
}

// Metrics - gauges registered in their own registry
type Metrics struct {
	sources  Sources
	registry *prometheus.Registry

	nodes        *prometheus.GaugeVec
	indexSize    prometheus.Gauge
	paymentBlock prometheus.Gauge
	paymentVotes prometheus.Gauge
	syncStage    prometheus.Gauge
	syncProgress prometheus.Gauge
	selfState    prometheus.Gauge
	refreshes    prometheus.Counter
}

// New - create and register all gauges
func New(sources Sources) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		sources:  sources,
		registry: registry,

		nodes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: subsystem,
				Name:      "nodes",
				Help:      "Number of registry records in each state",
			},
			[]string{"state"},
		),
		indexSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: subsystem,
				Name:      "index_size",
				Help:      "Size of the stable node index",
			},
		),
		paymentBlock: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: subsystem,
				Name:      "payment_blocks",
				Help:      "Heights with a payee tally",
			},
		),
		paymentVotes: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: subsystem,
				Name:      "payment_votes",
				Help:      "Stored payment votes",
			},
		),
		syncStage: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: subsystem,
				Name:      "sync_stage",
				Help:      "Synchronisation stage, -1 failed and 999 finished",
			},
		),
		syncProgress: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: subsystem,
				Name:      "sync_progress",
				Help:      "Synchronisation progress between 0 and 1",
			},
		),
		selfState: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: subsystem,
				Name:      "self_state",
				Help:      "State of the local libernode, -1 when not configured",
			},
		),
		refreshes: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: subsystem,
				Name:      "refresh_total",
				Help:      "Number of times the gauges were refreshed",
			},
		),
	}
}

// Registry - the gauges for a handler or a test gatherer
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Refresh - read every source once
func (m *Metrics) Refresh() {
	if nil != m.sources.Nodes {
		counts := make(map[masternode.State]int)
		for _, info := range m.sources.Nodes.Infos() {
			counts[info.State] += 1
		}
		// every state is reported so a vanished state drops to zero
		for s := masternode.PreEnabled; s <= masternode.PoSeBan; s += 1 {
			m.nodes.WithLabelValues(s.String()).Set(float64(counts[s]))
		}
		m.indexSize.Set(float64(m.sources.Nodes.IndexSize()))
	}

	if nil != m.sources.Ledger {
		m.paymentBlock.Set(float64(m.sources.Ledger.BlockCount()))
		m.paymentVotes.Set(float64(m.sources.Ledger.VoteCount()))
	}

	if nil != m.sources.Sync {
		m.syncStage.Set(float64(m.sources.Sync.Stage()))
		m.syncProgress.Set(m.sources.Sync.Progress())
	}

	state := -1
	if nil != m.sources.SelfState {
		state = m.sources.SelfState()
	}
	m.selfState.Set(float64(state))

	m.refreshes.Inc()
}
