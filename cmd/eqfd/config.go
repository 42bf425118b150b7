// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jessevdk/go-flags"

	"github.com/arnoac/equiforge/chaincfg"
)

const (
	defaultDataDir    = "eqfd_data"
	defaultMetricAddr = "127.0.0.1:9191"
)

type config struct {
	DataDir     string `long:"datadir" description:"Directory to store the block database" default:"eqfd_data"`
	Network     string `long:"network" description:"Network to run on {mainnet, testnet, simnet, regnet}" default:"mainnet"`
	MetricsAddr string `long:"metricsaddr" description:"Address to serve /metrics on" default:"127.0.0.1:9191"`
	Mine        bool   `long:"mine" description:"Mine blocks with the local CPU miner"`
	MineThreads int    `long:"minethreads" description:"Number of CPU mining threads" default:"1"`
	MineAddr    string `long:"mineaddr" description:"Base58Check payout address for mined blocks, required with --mine"`
	MinerTag    string `long:"minertag" description:"Arbitrary tag embedded in mined coinbase inputs"`
}

func loadConfig() (*config, *chaincfg.Params, error) {
	cfg := &config{
		DataDir:     defaultDataDir,
		Network:     "mainnet",
		MetricsAddr: defaultMetricAddr,
		MineThreads: 1,
	}

	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	if _, err := parser.Parse(); err != nil {
		return nil, nil, err
	}

	var params *chaincfg.Params
	switch cfg.Network {
	case "mainnet":
		params = chaincfg.MainNetParams()
	case "testnet":
		params = chaincfg.TestNetParams()
	case "simnet":
		params = chaincfg.SimNetParams()
	case "regnet":
		params = chaincfg.RegNetParams()
	default:
		return nil, nil, fmt.Errorf("eqfd: unknown network %q", cfg.Network)
	}

	if cfg.Mine && cfg.MineAddr == "" {
		return nil, nil, errors.New("eqfd: --mineaddr is required with --mine")
	}

	cfg.DataDir = filepath.Clean(cfg.DataDir)

	return cfg, params, nil
}
