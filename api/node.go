// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/arnoac/equiforge/blockchain"
	"github.com/arnoac/equiforge/chaincfg"
	"github.com/arnoac/equiforge/chainhash"
	"github.com/arnoac/equiforge/mempool"
	"github.com/arnoac/equiforge/metrics"
	"github.com/arnoac/equiforge/mining"
	"github.com/arnoac/equiforge/sigcache"
	"github.com/arnoac/equiforge/storage"
	"github.com/arnoac/equiforge/utxo"
	"github.com/arnoac/equiforge/wire"
)

// blockKeyPrefix and heightKeyPrefix namespace the two kinds of keys Node
// writes into the wired storage.Store: block bodies by hash, and the
// active chain's height-to-hash index.
const (
	blockKeyPrefix  = "block:"
	heightKeyPrefix = "height:"
)

// defaultSigCacheSize bounds the Ed25519 signature cache a Node's chain
// state and mempool share.
const defaultSigCacheSize = 100000

// Node wires a blockchain.ChainState, a mempool.Pool, and the mining
// template builder behind the exposed interfaces of spec §6. It also owns
// block-body persistence: ChainState itself only retains UTXO deltas for
// already-connected blocks, so Node writes every accepted block's body to
// store, keyed by hash, and maintains a height index for the active chain.
type Node struct {
	params *chaincfg.Params
	cache  *sigcache.SigCache
	chain  *blockchain.ChainState
	pool   *mempool.Pool
	store  storage.Store
}

// New returns a Node backed by a fresh ChainState and an empty mempool,
// persisting accepted block bodies to store.
func New(params *chaincfg.Params, store storage.Store) (*Node, error) {
	cache, err := sigcache.New(defaultSigCacheSize)
	if err != nil {
		return nil, err
	}
	return &Node{
		params: params,
		cache:  cache,
		chain:  blockchain.New(params, cache),
		pool:   mempool.New(),
		store:  store,
	}, nil
}

func blockKey(hash chainhash.Hash) []byte {
	return append([]byte(blockKeyPrefix), hash[:]...)
}

func heightKey(height uint32) []byte {
	key := make([]byte, len(heightKeyPrefix)+4)
	copy(key, heightKeyPrefix)
	binary.BigEndian.PutUint32(key[len(heightKeyPrefix):], height)
	return key
}

// SubmitBlock decodes raw, validates it through the chain state, and on
// acceptance persists its body and (for an extended or reorganized active
// chain) updates the height index, per spec §6's submit_block interface.
func (n *Node) SubmitBlock(raw []byte) SubmitBlockResult {
	block := &wire.Block{}
	if err := block.Decode(bytes.NewReader(raw)); err != nil {
		metrics.BlockSubmissions.WithLabelValues("rejected").Inc()
		return SubmitBlockResult{Status: BlockRejected, Reason: err.Error()}
	}

	oldTipHeight, oldTipHash, _, _ := n.chain.Tip()

	result, err := n.chain.AddBlock(block)
	if err != nil {
		metrics.BlockSubmissions.WithLabelValues("rejected").Inc()
		return SubmitBlockResult{Status: BlockRejected, Reason: err.Error()}
	}

	hash := block.Header.BlockHash()
	if err := n.store.BatchWrite([]storage.KVPair{{Key: blockKey(hash), Value: raw}}, nil); err != nil {
		return SubmitBlockResult{Status: BlockRejected, Reason: fmt.Sprintf("accepted but failed to persist: %v", err)}
	}

	switch result {
	case blockchain.AcceptedExtendedTip, blockchain.AcceptedReorg:
		if err := n.reindexHeights(); err != nil {
			return SubmitBlockResult{Status: BlockRejected, Reason: fmt.Sprintf("accepted but failed to reindex: %v", err)}
		}
		for _, tx := range block.Transactions {
			if tx.IsCoinbase() {
				continue
			}
			n.pool.Remove(tx.TxHash())
		}

		metrics.BlocksConnected.Inc()
		if result == blockchain.AcceptedReorg {
			metrics.Reorgs.Inc()
			n.reofferDisconnected(oldTipHeight, oldTipHash)
		}
		metrics.BlockSubmissions.WithLabelValues("accepted").Inc()
		tipHeight, _, _, difficultyBits := n.chain.Tip()
		metrics.ChainHeight.Set(float64(tipHeight))
		metrics.DifficultyBits.Set(float64(difficultyBits))
		metrics.MempoolSize.Set(float64(n.pool.Len()))
		return SubmitBlockResult{Status: BlockAccepted}
	default:
		metrics.BlockSubmissions.WithLabelValues("side_chain").Inc()
		return SubmitBlockResult{Status: BlockAcceptedAsSideChain}
	}
}

// reindexHeights rewrites the height-to-hash index to match the current
// active chain. It is called after every tip change (extend or reorg);
// walking the whole chain on each call is simple and correct, trading
// reorg-time cost for not needing ChainState to expose branch-point
// bookkeeping across the api boundary.
func (n *Node) reindexHeights() error {
	tipHeight, _, _, _ := n.chain.Tip()
	pairs := make([]storage.KVPair, 0, tipHeight+1)
	for h := uint32(0); h <= tipHeight; h++ {
		hash, ok := n.chain.AncestorHash(h)
		if !ok {
			return fmt.Errorf("api: active chain missing height %d", h)
		}
		pairs = append(pairs, storage.KVPair{Key: heightKey(h), Value: hash[:]})
	}
	return n.store.BatchWrite(pairs, nil)
}

// reofferDisconnected walks the previously active branch from oldHeight/
// oldHash back to its fork point with the now-active chain and re-offers
// each disconnected block's non-coinbase transactions to the mempool, per
// spec §8 scenario 3: transactions unique to a disconnected branch return
// to the mempool if still valid. A transaction that no longer validates
// against the new active chain (e.g. one of its inputs was already spent
// by the winning branch) is silently dropped; this is best-effort
// recovery, not a correctness requirement of the reorg itself.
func (n *Node) reofferDisconnected(oldHeight uint32, oldHash chainhash.Hash) {
	height, hash := oldHeight, oldHash
	for {
		if newHash, ok := n.chain.AncestorHash(height); ok && newHash == hash {
			return
		}

		raw, err := n.store.Get(blockKey(hash))
		if err != nil {
			return
		}
		block := &wire.Block{}
		if err := block.Decode(bytes.NewReader(raw)); err != nil {
			return
		}

		tipHeight, _, _, _ := n.chain.Tip()
		view := n.chain.UTXOSnapshot()
		for _, tx := range block.Transactions {
			if tx.IsCoinbase() {
				continue
			}
			n.pool.Add(tx, tipHeight+1, view, n.cache)
		}

		if height == 0 {
			return
		}
		hash = block.Header.PrevHash
		height--
	}
}

// SubmitTransaction decodes raw and offers it to the mempool against a
// snapshot of the active UTXO set, per spec §6's submit_transaction
// interface.
func (n *Node) SubmitTransaction(raw []byte) SubmitTxResult {
	tx := &wire.Transaction{}
	if err := tx.Decode(bytes.NewReader(raw)); err != nil {
		metrics.TransactionSubmissions.WithLabelValues("rejected").Inc()
		return SubmitTxResult{Status: TxRejected, Reason: err.Error()}
	}

	txID := tx.TxHash()
	if n.pool.Has(txID) {
		metrics.TransactionSubmissions.WithLabelValues("duplicate").Inc()
		return SubmitTxResult{Status: TxRejectedDuplicate}
	}

	tipHeight, _, _, _ := n.chain.Tip()
	view := n.chain.UTXOSnapshot()

	if _, err := n.pool.Add(tx, tipHeight+1, view, n.cache); err != nil {
		metrics.TransactionSubmissions.WithLabelValues("rejected").Inc()
		return SubmitTxResult{Status: TxRejected, Reason: err.Error()}
	}
	metrics.TransactionSubmissions.WithLabelValues("accepted").Inc()
	metrics.MempoolSize.Set(float64(n.pool.Len()))
	return SubmitTxResult{Status: TxAccepted}
}

// GetTip returns the active tip's height, hash, cumulative work, and
// difficulty_bits, per spec §6's get_tip interface.
func (n *Node) GetTip() (height uint32, hash chainhash.Hash, cumulativeWork string, difficultyBits uint16) {
	h, hsh, work, bits := n.chain.Tip()
	return h, hsh, work.String(), bits
}

// TipNode satisfies mining.ChainTipReader, letting a caller (e.g. a miner
// driver's tip watcher) read the active tip without the cumulative-work
// string formatting GetTip does for display purposes.
func (n *Node) TipNode() (height uint32, hash chainhash.Hash, difficultyBits uint16) {
	return n.chain.TipNode()
}

// GetBlockByHash returns the raw bytes of the block with the given hash,
// per spec §6's get_block(hash) interface. The block need not be on the
// active chain: side-chain bodies are persisted too.
func (n *Node) GetBlockByHash(hash chainhash.Hash) ([]byte, bool) {
	raw, err := n.store.Get(blockKey(hash))
	if err != nil {
		return nil, false
	}
	return raw, true
}

// GetBlockByHeight returns the raw bytes of the active chain's block at
// height, per spec §6's get_block(height) interface.
func (n *Node) GetBlockByHeight(height uint32) ([]byte, bool) {
	raw, err := n.store.Get(heightKey(height))
	if err != nil {
		return nil, false
	}
	var hash chainhash.Hash
	copy(hash[:], raw)
	return n.GetBlockByHash(hash)
}

// GetUTXO looks up a single outpoint in the active UTXO set, per spec
// §6's get_utxo interface.
func (n *Node) GetUTXO(outpoint wire.OutPoint) (utxo.Entry, bool) {
	return n.chain.UTXOEntry(outpoint)
}

// GetBlockTemplate builds a new mining template paying payoutHash, per
// spec §6's get_block_template interface.
func (n *Node) GetBlockTemplate(payoutHash [wire.PubKeyHashSize]byte, minerTag []byte, timestamp uint32) (*mining.Template, error) {
	return mining.BuildTemplate(n.chain, n.pool, n.params, payoutHash, minerTag, timestamp)
}
