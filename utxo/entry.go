// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2018 The kaspanet developers
// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package utxo implements the content-addressed UTXO set named in spec
// §4.3: a mapping from outpoint to output detail, plus the delta-based
// atomic commit/rollback machinery the chain state uses to apply and
// reverse blocks during validation and reorganization.
package utxo

import "github.com/arnoac/equiforge/wire"

// Entry describes one unspent output: its value, destination pubkey_hash,
// the height of the block that created it, and whether that block's
// coinbase produced it (which gates spendability via CoinbaseMaturity).
type Entry struct {
	Value         uint64
	PubKeyHash    [wire.PubKeyHashSize]byte
	HeightCreated uint32
	IsCoinbase    bool
}

// NewEntry builds an Entry from a transaction output produced at height by
// a transaction that is or is not a coinbase.
func NewEntry(out *wire.TxOut, height uint32, isCoinbase bool) Entry {
	return Entry{
		Value:         out.Value,
		PubKeyHash:    out.PubKeyHash,
		HeightCreated: height,
		IsCoinbase:    isCoinbase,
	}
}

// Viewer is the read-only subset of a UTXO set's interface that
// validation needs: look up an entry by the outpoint it lives at.
type Viewer interface {
	Get(outpoint wire.OutPoint) (Entry, bool)
}
