// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mining implements the block template builder and the
// multithreaded miner driver of spec §4.6.
package mining

import (
	"fmt"

	"github.com/arnoac/equiforge/chaincfg"
	"github.com/arnoac/equiforge/chainhash"
	"github.com/arnoac/equiforge/mempool"
	"github.com/arnoac/equiforge/utxo"
	"github.com/arnoac/equiforge/wire"
)

// Template is a candidate block ready for a miner to search nonces over.
// Nonce and the coinbase input's extranonce suffix are the only fields a
// miner thread mutates; everything else is fixed once built.
type Template struct {
	Block  *wire.Block
	Height uint32

	// ExtranonceOffset is the byte offset within the coinbase input's
	// PubKey payload reserved for the miner's assignable extranonce, per
	// spec §4.6. A miner thread may freely vary these bytes (and must
	// recompute the Merkle root after doing so, since the coinbase's
	// transaction ID changes).
	ExtranonceOffset int
	ExtranonceSize   int
}

const extranonceSize = 8

// ChainTipReader is the subset of blockchain.ChainState the template
// builder needs: the active tip, the difficulty the next block must
// carry, and a read-only UTXO snapshot for selecting mempool transactions.
type ChainTipReader interface {
	TipNode() (height uint32, hash chainhash.Hash, difficultyBits uint16)
	NextDifficultyBits() uint16
	UTXOSnapshot() *utxo.Overlay
}

// BuildTemplate implements spec §4.6's five-step template algorithm: read
// the tip, compute the next difficulty, greedily select mempool
// transactions by descending fee rate under MaxBlockSize, build the
// coinbase, and compute the Merkle root.
func BuildTemplate(chain ChainTipReader, pool *mempool.Pool, params *chaincfg.Params, payoutHash [wire.PubKeyHashSize]byte, minerTag []byte, timestamp uint32) (*Template, error) {
	if len(minerTag) > chaincfg.MaxMinerTagBytes-extranonceSize {
		return nil, fmt.Errorf("mining: miner tag of %d bytes leaves no room for the %d-byte extranonce", len(minerTag), extranonceSize)
	}

	tipHeight, tipHash, _ := chain.TipNode()
	height := tipHeight + 1
	nextBits := chain.NextDifficultyBits()

	view := chain.UTXOSnapshot()

	selected, fees := selectTransactions(pool, view, height)

	coinbase := buildCoinbase(params, height, fees, payoutHash, minerTag)

	txs := make([]*wire.Transaction, 0, len(selected)+1)
	txs = append(txs, coinbase)
	for _, desc := range selected {
		txs = append(txs, desc.Tx)
	}

	block := &wire.Block{
		Header: wire.BlockHeader{
			Version:        1,
			PrevHash:       tipHash,
			Timestamp:      timestamp,
			DifficultyBits: nextBits,
			Nonce:          0,
		},
		Transactions: txs,
	}
	block.Header.MerkleRoot = block.MerkleRoot()

	return &Template{
		Block:            block,
		Height:           height,
		ExtranonceOffset: len(minerTag),
		ExtranonceSize:   extranonceSize,
	}, nil
}

// selectTransactions greedily picks mempool transactions by descending fee
// rate, skipping any whose inputs conflict with an already-selected
// transaction or are missing from view, until MaxBlockSize is approached.
func selectTransactions(pool *mempool.Pool, view *utxo.Overlay, height uint32) ([]*mempool.TxDesc, uint64) {
	const headerAndCountOverhead = wire.HeaderSize + 9 // varint tx count worst case
	size := headerAndCountOverhead

	spent := make(map[wire.OutPoint]struct{})
	var selected []*mempool.TxDesc
	var fees uint64

	for _, desc := range pool.Snapshot() {
		if size+desc.Size > chaincfg.MaxBlockSize {
			continue
		}

		conflict := false
		for _, in := range desc.Tx.TxIn {
			if _, ok := spent[in.PreviousOutPoint]; ok {
				conflict = true
				break
			}
			if _, ok := view.Get(in.PreviousOutPoint); !ok {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}

		for _, in := range desc.Tx.TxIn {
			spent[in.PreviousOutPoint] = struct{}{}
		}
		selected = append(selected, desc)
		size += desc.Size
		fees += desc.Fee
	}

	return selected, fees
}

// buildCoinbase constructs the coinbase transaction paying subsidy+fees to
// payoutHash, optionally splitting the community-fund share, with the
// miner tag and a zeroed extranonce placeholder in the input payload, per
// spec §4.6.
func buildCoinbase(params *chaincfg.Params, height uint32, fees uint64, payoutHash [wire.PubKeyHashSize]byte, minerTag []byte) *wire.Transaction {
	subsidy := chaincfg.Subsidy(height)
	budget := subsidy + fees

	payload := make([]byte, len(minerTag)+extranonceSize)
	copy(payload, minerTag)

	tx := &wire.Transaction{
		Version: 1,
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: wire.SentinelOutPoint(),
			PubKey:           payload,
		}},
	}

	if params.CommunityFundActive && height >= params.CommunityFundHeight {
		communityShare := subsidy * chaincfg.CommunityFundShareNum / chaincfg.CommunityFundShareDen
		minerShare := budget - communityShare
		tx.TxOut = []*wire.TxOut{
			{Value: minerShare, PubKeyHash: payoutHash},
			{Value: communityShare, PubKeyHash: params.CommunityFundPubKeyHash},
		}
	} else {
		tx.TxOut = []*wire.TxOut{{Value: budget, PubKeyHash: payoutHash}}
	}

	return tx
}
