// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rules implements the standalone and contextual transaction and
// block validation checks named in spec §4.2, surfacing failures as typed
// RuleErrors so callers can distinguish a validation rejection from an I/O
// or programming error.
package rules

import "fmt"

// ErrorCode identifies a kind of error returned by the validation
// functions in this package.
type ErrorCode int

const (
	// ErrNoTxInputs indicates a transaction has no inputs.
	ErrNoTxInputs ErrorCode = iota

	// ErrNoTxOutputs indicates a transaction has no outputs.
	ErrNoTxOutputs

	// ErrDuplicateTxInputs indicates a transaction spends the same
	// outpoint more than once.
	ErrDuplicateTxInputs

	// ErrBadTxOutValue indicates a transaction output value is negative,
	// exceeds MaxMoney, or an output value sum overflows.
	ErrBadTxOutValue

	// ErrMissingTxOut indicates a transaction input references an
	// outpoint that is not in the UTXO set.
	ErrMissingTxOut

	// ErrDoubleSpend indicates a transaction input references an outpoint
	// an earlier transaction in the same block already spent.
	ErrDoubleSpend

	// ErrImmatureSpend indicates a transaction spends a coinbase output
	// before it has reached CoinbaseMaturity confirmations.
	ErrImmatureSpend

	// ErrSpendTooHigh indicates a transaction's output value sum exceeds
	// its input value sum.
	ErrSpendTooHigh

	// ErrBadFees indicates a transaction's implied fee is below the
	// network minimum fee.
	ErrBadFees

	// ErrBadSignature indicates an input's Ed25519 signature does not
	// verify against its claimed public key and the transaction's
	// signing digest.
	ErrBadSignature

	// ErrBadPubKeyHash indicates an input's public key does not hash to
	// the pubkey_hash recorded in the output it claims to spend.
	ErrBadPubKeyHash

	// ErrFirstTxNotCoinbase indicates a block's first transaction is not
	// a coinbase.
	ErrFirstTxNotCoinbase

	// ErrMultipleCoinbases indicates a block contains more than one
	// coinbase transaction.
	ErrMultipleCoinbases

	// ErrBadCoinbaseOutputs indicates a coinbase transaction's outputs
	// exceed subsidy plus fees, or, while the community-fund split is
	// active, are not the {miner, community} pair.
	ErrBadCoinbaseOutputs

	// ErrBadMinerTag indicates a coinbase input's miner tag payload
	// exceeds MaxMinerTagBytes.
	ErrBadMinerTag

	// ErrBlockTooBig indicates a block's canonical encoding exceeds
	// MaxBlockSize.
	ErrBlockTooBig

	// ErrDuplicateBlock indicates a block with this hash is already
	// known to the chain state.
	ErrDuplicateBlock

	// ErrBadMerkleRoot indicates a block header's merkle_root does not
	// match the Merkle root of its transactions.
	ErrBadMerkleRoot

	// ErrUnknownParent indicates a block's prev_hash is not the hash of
	// any known header.
	ErrUnknownParent

	// ErrTimeTooOld indicates a block header's timestamp is not greater
	// than the past median time of its ancestors.
	ErrTimeTooOld

	// ErrTimeTooNew indicates a block header's timestamp is further in
	// the future than MaxFutureDrift.
	ErrTimeTooNew

	// ErrUnexpectedDifficulty indicates a block header's difficulty_bits
	// does not match the value the LWMA controller computes for this
	// position in the chain.
	ErrUnexpectedDifficulty

	// ErrHighHash indicates a block's EquiHash-X digest does not meet the
	// header's claimed difficulty_bits.
	ErrHighHash

	// ErrOversizeTx indicates a standalone transaction exceeds the
	// per-transaction size a block can ever accommodate.
	ErrOversizeTx

	// ErrAlreadyInPool indicates a transaction with this txid is already
	// held by the mempool.
	ErrAlreadyInPool
)

var errorCodeStrings = map[ErrorCode]string{
	ErrNoTxInputs:           "ErrNoTxInputs",
	ErrNoTxOutputs:          "ErrNoTxOutputs",
	ErrDuplicateTxInputs:    "ErrDuplicateTxInputs",
	ErrBadTxOutValue:        "ErrBadTxOutValue",
	ErrMissingTxOut:         "ErrMissingTxOut",
	ErrDoubleSpend:          "ErrDoubleSpend",
	ErrImmatureSpend:        "ErrImmatureSpend",
	ErrSpendTooHigh:         "ErrSpendTooHigh",
	ErrBadFees:              "ErrBadFees",
	ErrBadSignature:         "ErrBadSignature",
	ErrBadPubKeyHash:        "ErrBadPubKeyHash",
	ErrFirstTxNotCoinbase:   "ErrFirstTxNotCoinbase",
	ErrMultipleCoinbases:    "ErrMultipleCoinbases",
	ErrBadCoinbaseOutputs:   "ErrBadCoinbaseOutputs",
	ErrBadMinerTag:          "ErrBadMinerTag",
	ErrBlockTooBig:          "ErrBlockTooBig",
	ErrDuplicateBlock:       "ErrDuplicateBlock",
	ErrBadMerkleRoot:        "ErrBadMerkleRoot",
	ErrUnknownParent:        "ErrUnknownParent",
	ErrTimeTooOld:           "ErrTimeTooOld",
	ErrTimeTooNew:           "ErrTimeTooNew",
	ErrUnexpectedDifficulty: "ErrUnexpectedDifficulty",
	ErrHighHash:             "ErrHighHash",
	ErrOversizeTx:           "ErrOversizeTx",
	ErrAlreadyInPool:        "ErrAlreadyInPool",
}

// String returns the ErrorCode as a human-readable name for use in
// messages and tests.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// RuleError identifies a rule violation raised by a standalone or
// contextual validation check, carrying an ErrorCode a caller can switch
// on alongside a human-readable Description.
type RuleError struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface.
func (e RuleError) Error() string {
	return e.Description
}

// ruleErr creates a RuleError given a set of arguments.
func ruleErr(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}

// IsErrorCode reports whether err is a RuleError carrying the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	ruleErr, ok := err.(RuleError)
	return ok && ruleErr.ErrorCode == code
}
