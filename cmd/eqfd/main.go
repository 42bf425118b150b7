// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command eqfd runs an EquiForge full node: chain state, mempool, a
// block/transaction submission API, a Prometheus metrics endpoint, and
// an optional built-in CPU miner. P2P delivery and JSON-RPC are external
// collaborators (spec §6) this binary does not implement; run it behind
// whatever gossip and RPC layer a deployment supplies.
package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/arnoac/equiforge/address"
	"github.com/arnoac/equiforge/api"
	"github.com/arnoac/equiforge/metrics"
	"github.com/arnoac/equiforge/mining"
	"github.com/arnoac/equiforge/storage/leveldbstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "eqfd:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, params, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := leveldbstore.Open(cfg.DataDir)
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

	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: metrics.Handler()}
	go func() {
		logger.Info("serving metrics", zap.String("addr", cfg.MetricsAddr))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	if cfg.Mine {
		payTo, err := address.Decode(cfg.MineAddr, params.AddressPrefix)
		if err != nil {
			return fmt.Errorf("parsing --mineaddr: %w", err)
		}
		go runMiner(ctx, logger, node, cfg.MineThreads, payTo, []byte(cfg.MinerTag))
	}

	logger.Info("eqfd started", zap.String("network", cfg.Network), zap.String("datadir", cfg.DataDir))

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return metricsServer.Shutdown(shutdownCtx)
}

// runMiner loops building a fresh template against the current tip and
// mining it until ctx is cancelled or the active tip moves, per spec
// §4.6's periodic tip watcher.
func runMiner(ctx context.Context, logger *zap.Logger, node *api.Node, numThreads int, payTo [20]byte, minerTag []byte) {
	miner := mining.New(numThreads)

	for ctx.Err() == nil {
		height, tip, _, _ := node.GetTip()
		tmpl, err := node.GetBlockTemplate(payTo, minerTag, uint32(time.Now().Unix()))
		if err != nil {
			logger.Error("building template", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		watchCtx, watchCancel := mining.WatchTip(ctx, node, tip, 500*time.Millisecond)
		result, err := miner.Mine(watchCtx, tmpl, tmpl.Block.Header.DifficultyBits)
		watchCancel()
		if err != nil {
			continue // tip moved or ctx cancelled; rebuild against the new tip
		}

		tmpl.Block.Header = result.Header
		submitResult := node.SubmitBlock(encodeTemplate(tmpl))
		if submitResult.Status == api.BlockRejected {
			logger.Warn("mined block rejected", zap.String("reason", submitResult.Reason))
			continue
		}
		metrics.BlocksMined.Inc()
		logger.Info("mined block", zap.Uint32("height", height+1))
	}
}

func encodeTemplate(tmpl *mining.Template) []byte {
	var buf bytes.Buffer
	if err := tmpl.Block.Encode(&buf); err != nil {
		panic(fmt.Sprintf("eqfd: encoding a freshly mined block: %v", err))
	}
	return buf.Bytes()
}
