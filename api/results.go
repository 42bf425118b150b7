// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package api exposes the node's external interfaces (spec §6): submitting
// blocks and transactions, reading the tip, fetching blocks and UTXO
// entries, and building a mining template. It wires together
// blockchain.ChainState, mempool.Pool, and mining.BuildTemplate behind a
// single Node façade, and owns the block-body persistence ChainState
// itself does not keep for already-connected blocks.
package api

// SubmitBlockStatus is the outcome of Node.SubmitBlock.
type SubmitBlockStatus int

const (
	// BlockAccepted means the block extended or became the active tip.
	BlockAccepted SubmitBlockStatus = iota
	// BlockAcceptedAsSideChain means the block was stored as a
	// non-active side-chain candidate.
	BlockAcceptedAsSideChain
	// BlockRejected means the block failed validation; Reason explains
	// why.
	BlockRejected
)

// SubmitBlockResult is the tagged result of Node.SubmitBlock, per spec
// §6's submit_block interface.
type SubmitBlockResult struct {
	Status SubmitBlockStatus `json:"status"`
	Reason string            `json:"reason,omitempty"`
}

// SubmitTxStatus is the outcome of Node.SubmitTransaction.
type SubmitTxStatus int

const (
	// TxAccepted means the transaction was admitted to the mempool.
	TxAccepted SubmitTxStatus = iota
	// TxRejectedDuplicate means the transaction is already in the pool.
	TxRejectedDuplicate
	// TxRejected means the transaction failed validation; Reason
	// explains why.
	TxRejected
)

// SubmitTxResult is the tagged result of Node.SubmitTransaction, per spec
// §6's submit_transaction interface.
type SubmitTxResult struct {
	Status SubmitTxStatus `json:"status"`
	Reason string         `json:"reason,omitempty"`
}
