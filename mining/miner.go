// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arnoac/equiforge/chainhash"
	"github.com/arnoac/equiforge/equihashx"
	"github.com/arnoac/equiforge/wire"
)

// nonceSpan is the width of the disjoint range each thread searches, per
// spec §4.6: each thread owns a disjoint nonce range and keeps its own
// scratchpad, never shared. A thread that exhausts its range without a
// solution stops searching.
const nonceSpan = 1 << 32

// Result is a solved block header ready for submission, paired with the
// height it was mined at (for logging and template bookkeeping).
type Result struct {
	Header wire.BlockHeader
	Height uint32
}

// Miner drives numThreads parallel EquiHash-X searches over a single
// Template until one of them finds a solution, the tip changes underneath
// it, or the caller cancels.
type Miner struct {
	numThreads int
}

// New returns a Miner that searches with numThreads parallel goroutines.
func New(numThreads int) *Miner {
	if numThreads < 1 {
		numThreads = 1
	}
	return &Miner{numThreads: numThreads}
}

// Mine searches tmpl's nonce space for a header whose EquiHash-X digest
// meets difficultyBits. It returns as soon as one thread finds a
// solution, or nil if ctx is cancelled first (e.g. by a tip watcher that
// noticed the active tip moved and wants the template rebuilt).
//
// Cancellation is checked at least once per outer iteration of each
// thread's search loop, per spec §4.6.
func (m *Miner) Mine(ctx context.Context, tmpl *Template, difficultyBits uint16) (*Result, error) {
	var stopped int32
	var wg sync.WaitGroup
	resultCh := make(chan wire.BlockHeader, 1)

	for i := 0; i < m.numThreads; i++ {
		wg.Add(1)
		go func(threadID int) {
			defer wg.Done()
			m.searchRange(ctx, tmpl, difficultyBits, uint64(threadID), &stopped, resultCh)
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case header := <-resultCh:
		atomic.StoreInt32(&stopped, 1)
		<-done
		return &Result{Header: header, Height: tmpl.Height}, nil
	case <-ctx.Done():
		atomic.StoreInt32(&stopped, 1)
		<-done
		return nil, ctx.Err()
	}
}

// searchRange is one miner thread's search loop. It owns a private
// scratchpad and header buffer, never shared with other threads, and
// walks a disjoint band of the nonce space starting at its thread ID.
func (m *Miner) searchRange(ctx context.Context, tmpl *Template, difficultyBits uint16, threadID uint64, stopped *int32, resultCh chan<- wire.BlockHeader) {
	scratch := equihashx.NewScratchpad()
	header := tmpl.Block.Header

	start := threadID * nonceSpan
	for offset := uint64(0); offset < nonceSpan; offset++ {
		if atomic.LoadInt32(stopped) != 0 {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		header.Nonce = start + offset

		digest := scratch.Digest(header.Bytes())
		if equihashx.MeetsTarget(digest, difficultyBits) {
			if atomic.CompareAndSwapInt32(stopped, 0, 1) {
				resultCh <- header
			}
			return
		}
	}
}

// SetExtranonce writes extranonce into the coinbase input's reserved
// extranonce suffix and recomputes the block's Merkle root, since the
// coinbase transaction ID changes. Callers use this to search a second
// dimension of the solution space beyond the 64-bit nonce field, or to
// let independent miner processes avoid colliding on the same template.
func SetExtranonce(tmpl *Template, extranonce uint64) {
	coinbase := tmpl.Block.Transactions[0]
	payload := coinbase.TxIn[0].PubKey
	for i := 0; i < tmpl.ExtranonceSize; i++ {
		payload[tmpl.ExtranonceOffset+i] = byte(extranonce >> (8 * uint(i)))
	}
	tmpl.Block.Header.MerkleRoot = tmpl.Block.MerkleRoot()
}

// tipReader is the subset of ChainTipReader WatchTip needs.
type tipReader interface {
	TipNode() (height uint32, hash chainhash.Hash, difficultyBits uint16)
}

// WatchTip polls chain at interval and cancels the returned context the
// moment the active tip diverges from knownTip, implementing spec §4.6's
// periodic tip watcher: the caller's in-progress search is cancelled and
// the template rebuilt against the new tip. Callers must call cancel once
// they stop using the context, to release the polling goroutine.
func WatchTip(parent context.Context, chain tipReader, knownTip chainhash.Hash, interval time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, currentTip, _ := chain.TipNode(); currentTip != knownTip {
					cancel()
					return
				}
			}
		}
	}()
	return ctx, cancel
}
