// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rules

import (
	"fmt"

	"github.com/arnoac/equiforge/address"
	"github.com/arnoac/equiforge/chaincfg"
	"github.com/arnoac/equiforge/sigcache"
	"github.com/arnoac/equiforge/utxo"
	"github.com/arnoac/equiforge/wire"
)

// CheckTransactionSanity performs standalone checks that require no UTXO
// context: at least one input, at least one output, no output value
// exceeds MaxMoney, and no outpoint spent twice within the transaction.
//
// tx must not be the coinbase; callers check coinbase shape separately via
// CheckCoinbaseOutputs.
func CheckTransactionSanity(tx *wire.Transaction) error {
	if len(tx.TxIn) == 0 {
		return ruleErr(ErrNoTxInputs, "transaction has no inputs")
	}
	if len(tx.TxOut) == 0 {
		return ruleErr(ErrNoTxOutputs, "transaction has no outputs")
	}

	const maxTxSize = chaincfg.MaxBlockSize - wire.HeaderSize
	if size := tx.SerializeSize(); size > maxTxSize {
		return ruleErr(ErrOversizeTx,
			fmt.Sprintf("transaction size %d exceeds the %d bytes a block could ever accommodate", size, maxTxSize))
	}

	seen := make(map[wire.OutPoint]struct{}, len(tx.TxIn))
	for _, in := range tx.TxIn {
		if _, dup := seen[in.PreviousOutPoint]; dup {
			return ruleErr(ErrDuplicateTxInputs,
				fmt.Sprintf("outpoint %s spent twice in one transaction", in.PreviousOutPoint))
		}
		seen[in.PreviousOutPoint] = struct{}{}
	}

	var total uint64
	for _, out := range tx.TxOut {
		if out.Value > chaincfg.MaxMoney {
			return ruleErr(ErrBadTxOutValue,
				fmt.Sprintf("output value %d exceeds MaxMoney %d", out.Value, chaincfg.MaxMoney))
		}
		next := total + out.Value
		if next < total || next > chaincfg.MaxMoney {
			return ruleErr(ErrBadTxOutValue, "sum of output values overflows or exceeds MaxMoney")
		}
		total = next
	}

	return nil
}

// CheckTransactionContext performs the checks that require a UTXO snapshot
// and the current validation height: every input resolves, coinbase
// maturity, pubkey_hash match, Ed25519 signature validity, and a fee at or
// above MinFee. It returns the resolved input value sum so callers can
// accumulate per-block fee totals without a second UTXO pass.
func CheckTransactionContext(tx *wire.Transaction, view utxo.Viewer, height uint32, cache *sigcache.SigCache) (inputSum uint64, err error) {
	digest := tx.SigningDigest()
	txID := tx.TxHash()

	for _, in := range tx.TxIn {
		entry, ok := view.Get(in.PreviousOutPoint)
		if !ok {
			return 0, ruleErr(ErrMissingTxOut,
				fmt.Sprintf("output %s not found in UTXO set", in.PreviousOutPoint))
		}

		if entry.IsCoinbase && height-entry.HeightCreated < chaincfg.CoinbaseMaturity {
			return 0, ruleErr(ErrImmatureSpend,
				fmt.Sprintf("tried to spend coinbase output %s created at height %d with %d confirmations",
					in.PreviousOutPoint, entry.HeightCreated, height-entry.HeightCreated))
		}

		gotHash := address.Hash160(in.PubKey)
		if gotHash != entry.PubKeyHash {
			return 0, ruleErr(ErrBadPubKeyHash,
				fmt.Sprintf("input pubkey for %s does not hash to the referenced output's pubkey_hash", in.PreviousOutPoint))
		}

		if !sigcache.VerifySignature(cache, digest, in.Signature[:], in.PubKey, txID) {
			return 0, ruleErr(ErrBadSignature,
				fmt.Sprintf("invalid signature for input %s", in.PreviousOutPoint))
		}

		next := inputSum + entry.Value
		if next < inputSum {
			return 0, ruleErr(ErrBadTxOutValue, "sum of input values overflows")
		}
		inputSum = next
	}

	outputSum := tx.OutputValueSum()
	if outputSum > inputSum {
		return 0, ruleErr(ErrSpendTooHigh,
			fmt.Sprintf("outputs %d exceed inputs %d", outputSum, inputSum))
	}

	fee := inputSum - outputSum
	if fee < chaincfg.MinFee {
		return 0, ruleErr(ErrBadFees, fmt.Sprintf("fee %d below MinFee %d", fee, chaincfg.MinFee))
	}

	return inputSum, nil
}

// CheckCoinbaseOutputs validates a coinbase transaction's output shape
// against the subsidy and collected fees for its block, per spec §4.2
// check 9-10: the outputs, however many, sum to at most subsidy+fees, and
// when the network's community fund split is active there are exactly two
// outputs in canonical {miner, community} order.
func CheckCoinbaseOutputs(tx *wire.Transaction, params *chaincfg.Params, height uint32, fees uint64) error {
	if !tx.IsCoinbase() {
		return ruleErr(ErrFirstTxNotCoinbase, "expected a coinbase transaction")
	}
	if len(tx.TxIn[0].PubKey) > chaincfg.MaxMinerTagBytes {
		return ruleErr(ErrBadMinerTag,
			fmt.Sprintf("miner tag is %d bytes, exceeds MaxMinerTagBytes %d", len(tx.TxIn[0].PubKey), chaincfg.MaxMinerTagBytes))
	}

	subsidy := chaincfg.Subsidy(height)
	budget := subsidy + fees

	splitActive := params.CommunityFundActive && height >= params.CommunityFundHeight
	if splitActive {
		if len(tx.TxOut) != 2 {
			return ruleErr(ErrBadCoinbaseOutputs,
				fmt.Sprintf("community-fund split requires exactly 2 coinbase outputs, got %d", len(tx.TxOut)))
		}
		communityShare := subsidy * chaincfg.CommunityFundShareNum / chaincfg.CommunityFundShareDen
		if tx.TxOut[1].PubKeyHash != params.CommunityFundPubKeyHash {
			return ruleErr(ErrBadCoinbaseOutputs, "second coinbase output does not pay the community fund pubkey_hash")
		}
		if tx.TxOut[1].Value > communityShare+fees {
			return ruleErr(ErrBadCoinbaseOutputs,
				fmt.Sprintf("community output %d exceeds its share %d", tx.TxOut[1].Value, communityShare))
		}
	}

	sum := tx.OutputValueSum()
	if sum > budget {
		return ruleErr(ErrBadCoinbaseOutputs,
			fmt.Sprintf("coinbase outputs %d exceed subsidy+fees %d", sum, budget))
	}

	return nil
}
