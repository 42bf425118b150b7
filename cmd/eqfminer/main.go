// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command eqfminer runs a standalone multithreaded CPU miner against its
// own local chain state, per spec §4.6. It is a solo-mining demonstration
// driver, not a pool client: stratum/pool protocols are out of scope.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/arnoac/equiforge/address"
	"github.com/arnoac/equiforge/api"
	"github.com/arnoac/equiforge/chaincfg"
	"github.com/arnoac/equiforge/mining"
	"github.com/arnoac/equiforge/storage/leveldbstore"
)

type options struct {
	DataDir  string `long:"datadir" description:"Directory to store the block database" default:"eqfminer_data"`
	Network  string `long:"network" description:"Network to run on {mainnet, testnet, simnet, regnet}" default:"regnet"`
	Threads  int    `long:"threads" description:"Number of CPU mining threads" default:"1"`
	PayAddr  string `long:"payaddr" description:"Base58Check address to receive mined subsidy" required:"true"`
	MinerTag string `long:"minertag" description:"Arbitrary tag embedded in mined coinbase inputs"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "eqfminer:", err)
		os.Exit(1)
	}
}

func run() error {
	opts := &options{DataDir: "eqfminer_data", Network: "regnet", Threads: 1}
	parser := flags.NewParser(opts, flags.PrintErrors|flags.HelpFlag)
	if _, err := parser.Parse(); err != nil {
		return err
	}

	var params *chaincfg.Params
	switch opts.Network {
	case "mainnet":
		params = chaincfg.MainNetParams()
	case "testnet":
		params = chaincfg.TestNetParams()
	case "simnet":
		params = chaincfg.SimNetParams()
	case "regnet":
		params = chaincfg.RegNetParams()
	default:
		return fmt.Errorf("eqfminer: unknown network %q", opts.Network)
	}

	payTo, err := address.Decode(opts.PayAddr, params.AddressPrefix)
	if err != nil {
		return fmt.Errorf("parsing --payaddr: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := leveldbstore.Open(opts.DataDir)
	if err != nil {
		return fmt.Errorf("opening block store: %w", err)
	}
	defer store.Close()

	node, err := api.New(params, store)
	if err != nil {
		return fmt.Errorf("initializing node: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	miner := mining.New(opts.Threads)
	logger.Info("eqfminer started", zap.String("network", opts.Network), zap.Int("threads", opts.Threads))

	for ctx.Err() == nil {
		height, tip, _, _ := node.GetTip()
		tmpl, err := node.GetBlockTemplate(payTo, []byte(opts.MinerTag), uint32(time.Now().Unix()))
		if err != nil {
			logger.Error("building template", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		watchCtx, watchCancel := mining.WatchTip(ctx, node, tip, 500*time.Millisecond)
		result, err := miner.Mine(watchCtx, tmpl, tmpl.Block.Header.DifficultyBits)
		watchCancel()
		if err != nil {
			continue
		}

		tmpl.Block.Header = result.Header
		submitResult := node.SubmitBlock(encodeBlock(tmpl))
		if submitResult.Status == api.BlockRejected {
			logger.Warn("mined block rejected", zap.String("reason", submitResult.Reason))
			continue
		}
		logger.Info("mined block", zap.Uint32("height", height+1))
	}

	return nil
}

func encodeBlock(tmpl *mining.Template) []byte {
	var buf bytes.Buffer
	if err := tmpl.Block.Encode(&buf); err != nil {
		panic(fmt.Sprintf("eqfminer: encoding a freshly mined block: %v", err))
	}
	return buf.Bytes()
}
