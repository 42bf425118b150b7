// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mempool holds standalone-valid transactions not yet in a block,
// under its own lock independent of the chain state's, per spec §5.
package mempool

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/arnoac/equiforge/chainhash"
	"github.com/arnoac/equiforge/rules"
	"github.com/arnoac/equiforge/sigcache"
	"github.com/arnoac/equiforge/utxo"
	"github.com/arnoac/equiforge/wire"
)

// TxDesc describes a transaction held in the pool alongside the fee
// information the template builder selects on.
type TxDesc struct {
	Tx       *wire.Transaction
	TxID     chainhash.Hash
	Fee      uint64
	FeeRate  float64 // fee per serialized byte, descending selection order
	Size     int
}

// Pool is an in-memory mempool keyed by transaction ID. Add admits a
// transaction only after running rules.CheckTransactionSanity and
// rules.CheckTransactionContext against a snapshot of the active UTXO set.
type Pool struct {
	mu   sync.RWMutex
	txs  map[chainhash.Hash]*TxDesc
	spends map[wire.OutPoint]chainhash.Hash // outpoint -> spending tx, for double-spend detection within the pool
}

// New returns an empty pool.
func New() *Pool {
	return &Pool{
		txs:    make(map[chainhash.Hash]*TxDesc),
		spends: make(map[wire.OutPoint]chainhash.Hash),
	}
}

// Add validates tx against view (a snapshot of the active UTXO set) and,
// on success, inserts it into the pool. Returns the computed TxDesc.
func (p *Pool) Add(tx *wire.Transaction, height uint32, view utxo.Viewer, cache *sigcache.SigCache) (*TxDesc, error) {
	txID := tx.TxHash()

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.txs[txID]; exists {
		return nil, rules.RuleError{ErrorCode: rules.ErrAlreadyInPool, Description: "transaction already in the pool"}
	}

	if err := rules.CheckTransactionSanity(tx); err != nil {
		return nil, err
	}

	for _, in := range tx.TxIn {
		if spender, spent := p.spends[in.PreviousOutPoint]; spent {
			return nil, errors.Errorf("mempool: outpoint %s already spent by pool transaction %s", in.PreviousOutPoint, spender)
		}
	}

	inputSum, err := rules.CheckTransactionContext(tx, &poolOverlay{pool: p, base: view}, height, cache)
	if err != nil {
		return nil, err
	}

	size := tx.SerializeSize()
	fee := inputSum - tx.OutputValueSum()
	desc := &TxDesc{
		Tx:      tx,
		TxID:    txID,
		Fee:     fee,
		FeeRate: float64(fee) / float64(size),
		Size:    size,
	}

	p.txs[txID] = desc
	for _, in := range tx.TxIn {
		p.spends[in.PreviousOutPoint] = txID
	}
	return desc, nil
}

// Remove evicts a transaction from the pool, e.g. because it was mined
// into a block or a conflicting spend was confirmed.
func (p *Pool) Remove(txID chainhash.Hash) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeLocked(txID)
}

func (p *Pool) removeLocked(txID chainhash.Hash) {
	desc, ok := p.txs[txID]
	if !ok {
		return
	}
	delete(p.txs, txID)
	for _, in := range desc.Tx.TxIn {
		if p.spends[in.PreviousOutPoint] == txID {
			delete(p.spends, in.PreviousOutPoint)
		}
	}
}

// RemoveConflicts evicts every pool transaction that spends any outpoint
// spent by tx, used after tx is mined into a block.
func (p *Pool) RemoveConflicts(tx *wire.Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, in := range tx.TxIn {
		if txID, spent := p.spends[in.PreviousOutPoint]; spent {
			p.removeLocked(txID)
		}
	}
}

// Snapshot returns every pool transaction ordered by descending fee rate,
// the order the template builder selects from, per spec §4.6.
func (p *Pool) Snapshot() []*TxDesc {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]*TxDesc, 0, len(p.txs))
	for _, desc := range p.txs {
		out = append(out, desc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FeeRate > out[j].FeeRate })
	return out
}

// Len reports how many transactions are currently pooled.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.txs)
}

// Has reports whether txID is already pooled.
func (p *Pool) Has(txID chainhash.Hash) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.txs[txID]
	return ok
}

// poolOverlay layers the pool's own not-yet-mined outputs over a base UTXO
// view, so a transaction that spends another pool transaction's output can
// still validate (spending unconfirmed outputs is permitted; spending the
// same outpoint twice across pool transactions is rejected separately in
// Add via the spends index).
type poolOverlay struct {
	pool *Pool
	base utxo.Viewer
}

func (o *poolOverlay) Get(outpoint wire.OutPoint) (utxo.Entry, bool) {
	for _, desc := range o.pool.txs {
		if desc.TxID == outpoint.Hash && int(outpoint.Index) < len(desc.Tx.TxOut) {
			out := desc.Tx.TxOut[outpoint.Index]
			return utxo.NewEntry(out, 0, false), true
		}
	}
	return o.base.Get(outpoint)
}
