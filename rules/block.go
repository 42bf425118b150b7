// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rules

import (
	"fmt"
	"sort"
	"time"

	"github.com/arnoac/equiforge/chaincfg"
	"github.com/arnoac/equiforge/difficulty"
	"github.com/arnoac/equiforge/equihashx"
	"github.com/arnoac/equiforge/sigcache"
	"github.com/arnoac/equiforge/utxo"
	"github.com/arnoac/equiforge/wire"
)

// CheckBlockSanity performs the stateless block checks that require no
// chain context: Merkle root, size, and coinbase placement (exactly the
// first transaction is a coinbase). The header timestamp bounds need the
// ancestor headers used for median time and are covered by
// CheckBlockTimestamp; proof of work is checked by CheckProofOfWork.
func CheckBlockSanity(block *wire.Block) error {
	if len(block.Transactions) == 0 {
		return ruleErr(ErrFirstTxNotCoinbase, "block has no transactions")
	}

	if got, want := block.MerkleRoot(), block.Header.MerkleRoot; got != want {
		return ruleErr(ErrBadMerkleRoot,
			fmt.Sprintf("computed merkle root %s does not match header %s", got, want))
	}

	if size := block.SerializeSize(); size > chaincfg.MaxBlockSize {
		return ruleErr(ErrBlockTooBig,
			fmt.Sprintf("serialized block size %d exceeds MaxBlockSize %d", size, chaincfg.MaxBlockSize))
	}

	if !block.Transactions[0].IsCoinbase() {
		return ruleErr(ErrFirstTxNotCoinbase, "first transaction is not a coinbase")
	}
	for _, tx := range block.Transactions[1:] {
		if tx.IsCoinbase() {
			return ruleErr(ErrMultipleCoinbases, "only the first transaction may be a coinbase")
		}
	}

	return nil
}

// CheckBlockTimestamp enforces spec §4.2 check 3: the header's timestamp
// must exceed the median of the last MedianTimeBlocks on-branch ancestor
// headers and must not be further than MaxFutureDrift beyond now.
//
// ancestorTimestamps need not be sorted; when more than MedianTimeBlocks
// entries are given, only the last MedianTimeBlocks entries of the slice
// are used.
func CheckBlockTimestamp(header *wire.BlockHeader, ancestorTimestamps []uint32, now time.Time) error {
	window := ancestorTimestamps
	if len(window) > chaincfg.MedianTimeBlocks {
		window = window[len(window)-chaincfg.MedianTimeBlocks:]
	}
	sorted := append([]uint32(nil), window...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if len(sorted) > 0 {
		median := sorted[len(sorted)/2]
		if header.Timestamp <= median {
			return ruleErr(ErrTimeTooOld,
				fmt.Sprintf("header timestamp %d is not after median time %d", header.Timestamp, median))
		}
	}

	maxFuture := uint32(now.Add(chaincfg.MaxFutureDrift).Unix())
	if header.Timestamp > maxFuture {
		return ruleErr(ErrTimeTooNew,
			fmt.Sprintf("header timestamp %d exceeds max future drift %d", header.Timestamp, maxFuture))
	}

	return nil
}

// CheckProofOfWork enforces spec §4.2 check 4: the EquiHash-X digest of
// the canonical header encoding must meet header.DifficultyBits.
func CheckProofOfWork(header *wire.BlockHeader) error {
	if !equihashx.Verify(header.Bytes(), header.DifficultyBits) {
		return ruleErr(ErrHighHash, "EquiHash-X digest does not meet the header's difficulty_bits")
	}
	return nil
}

// CheckDifficulty enforces spec §4.2 check 5: header.DifficultyBits must
// equal the value the LWMA controller prescribes from the ancestor window
// ending at this block's parent; the block's own timestamp does not enter
// the computation.
func CheckDifficulty(header *wire.BlockHeader, ancestors []wire.BlockHeader) error {
	want := difficulty.NextBits(ancestors)
	if header.DifficultyBits != want {
		return ruleErr(ErrUnexpectedDifficulty,
			fmt.Sprintf("header difficulty_bits %d does not match LWMA-prescribed %d", header.DifficultyBits, want))
	}
	return nil
}

// CheckBlockTransactions enforces spec §4.2 checks 8-10: every
// non-coinbase transaction passes standalone and contextual validation
// against a snapshot that layers in the block's own earlier transactions,
// and the coinbase's output sum is bounded by subsidy plus collected
// fees. view is mutated in place by recording each transaction's spends
// and creations, so callers can Commit its accumulated Delta on success.
func CheckBlockTransactions(block *wire.Block, params *chaincfg.Params, height uint32, view *utxo.Overlay, cache *sigcache.SigCache) error {
	var totalFees uint64

	for i, tx := range block.Transactions {
		txID := tx.TxHash()

		if i == 0 {
			for idx, out := range tx.TxOut {
				view.Create(wire.OutPoint{Hash: txID, Index: uint32(idx)}, utxo.NewEntry(out, height, true))
			}
			continue
		}

		if err := CheckTransactionSanity(tx); err != nil {
			return err
		}

		for _, in := range tx.TxIn {
			if view.Spent(in.PreviousOutPoint) {
				return ruleErr(ErrDoubleSpend,
					fmt.Sprintf("outpoint %s already spent earlier in this block", in.PreviousOutPoint))
			}
		}

		inputSum, err := CheckTransactionContext(tx, view, height, cache)
		if err != nil {
			return err
		}

		for _, in := range tx.TxIn {
			entry, _ := view.Get(in.PreviousOutPoint)
			view.Spend(in.PreviousOutPoint, entry)
		}
		for idx, out := range tx.TxOut {
			view.Create(wire.OutPoint{Hash: txID, Index: uint32(idx)}, utxo.NewEntry(out, height, false))
		}

		totalFees += inputSum - tx.OutputValueSum()
	}

	return CheckCoinbaseOutputs(block.Transactions[0], params, height, totalFees)
}
