// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics exposes node-internal counters and gauges via
// Prometheus, for operators running a node to observe chain progress,
// mempool pressure, and mining activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChainHeight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "equiforge",
		Name:      "chain_height",
		Help:      "Height of the active chain tip.",
	})

	DifficultyBits = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "equiforge",
		Name:      "difficulty_bits",
		Help:      "Required leading zero bits for the next block.",
	})

	MempoolSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "equiforge",
		Name:      "mempool_size",
		Help:      "Number of transactions currently held in the mempool.",
	})

	SideChainCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "equiforge",
		Name:      "side_chain_count",
		Help:      "Number of competing side-chain blocks currently tracked.",
	})

	LocalHashrate = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "equiforge",
		Name:      "local_hashrate",
		Help:      "Estimated local miner hashrate in H/s.",
	})

	BlocksMined = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "equiforge",
		Name:      "blocks_mined_total",
		Help:      "Total blocks found by the local miner.",
	})

	BlocksConnected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "equiforge",
		Name:      "blocks_connected_total",
		Help:      "Total blocks connected to the active chain, including reorgs.",
	})

	Reorgs = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "equiforge",
		Name:      "reorgs_total",
		Help:      "Total times the active chain switched to a higher-work branch.",
	})

	BlockSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "equiforge",
		Name:      "block_submissions_total",
		Help:      "Block submission attempts by result.",
	}, []string{"result"})

	TransactionSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "equiforge",
		Name:      "transaction_submissions_total",
		Help:      "Transaction submission attempts by result.",
	}, []string{"result"})

	UptimeSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "equiforge",
		Name:      "uptime_seconds",
		Help:      "Node uptime in seconds.",
	})
)

func init() {
	prometheus.MustRegister(
		ChainHeight,
		DifficultyBits,
		MempoolSize,
		SideChainCount,
		LocalHashrate,
		BlocksMined,
		BlocksConnected,
		Reorgs,
		BlockSubmissions,
		TransactionSubmissions,
		UptimeSeconds,
	)
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
