// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockchain owns the block index, the active tip, the UTXO set,
// and the side-chain store of blocks not yet on the main chain, per spec
// §4.5. It implements the add-block pipeline and the reorg procedure that
// keeps the active tip pinned to the highest cumulative-work branch.
package blockchain

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/arnoac/equiforge/chaincfg"
	"github.com/arnoac/equiforge/chainhash"
	"github.com/arnoac/equiforge/difficulty"
	"github.com/arnoac/equiforge/rules"
	"github.com/arnoac/equiforge/sigcache"
	"github.com/arnoac/equiforge/utxo"
	"github.com/arnoac/equiforge/wire"
)

// AcceptResult describes what happened to a block offered to ChainState.
type AcceptResult int

const (
	// AcceptedExtendedTip means the block extended the active tip.
	AcceptedExtendedTip AcceptResult = iota
	// AcceptedSideChain means the block was stored as a side-chain
	// candidate without becoming the active tip.
	AcceptedSideChain
	// AcceptedReorg means the block triggered a reorg and became (or
	// joined a branch that became) the new active tip.
	AcceptedReorg
)

// ChainState is the single authority over which branch is active. All
// mutating operations take chainMu, matching spec §5's single
// exclusive-lock concurrency model for block-add/reorg; readers needing a
// consistent snapshot of the UTXO set use Tip/UTXOSnapshot under the same
// lock's read side.
type ChainState struct {
	params *chaincfg.Params
	cache  *sigcache.SigCache

	index      *blockIndex
	sideChains *sideChainStore

	chainMu sync.RWMutex
	tip     *blockNode
	utxoSet *utxo.Set

	// deltas records, per active-chain block hash, the UTXO delta that
	// connecting it produced, so a reorg can disconnect blocks by
	// reversing this delta instead of recomputing it. Full block bodies
	// for already-connected blocks are not retained here; a node wires a
	// persistent block store (spec §6's KVStore collaborator) behind
	// ChainState for that.
	deltas map[chainhash.Hash]*utxo.Delta
}

// New builds a ChainState seeded with params' genesis block as the active
// tip. The genesis block's own transactions (if any) are committed
// directly without running contextual validation, matching the
// genesis-is-valid-by-definition convention spec §4.2 establishes for
// proof of work.
func New(params *chaincfg.Params, cache *sigcache.SigCache) *ChainState {
	genesisNode := newBlockNode(params.GenesisBlock.Header, nil)

	cs := &ChainState{
		params:     params,
		cache:      cache,
		index:      newBlockIndex(),
		sideChains: newSideChainStore(),
		tip:        genesisNode,
		utxoSet:    utxo.NewSet(),
		deltas:     make(map[chainhash.Hash]*utxo.Delta),
	}
	cs.index.AddNode(genesisNode)

	genesisDelta := utxo.NewDelta()
	coinbase := params.GenesisBlock.Transactions[0]
	coinbaseID := coinbase.TxHash()
	for idx, out := range coinbase.TxOut {
		genesisDelta.Create(wire.OutPoint{Hash: coinbaseID, Index: uint32(idx)}, utxo.NewEntry(out, 0, true))
	}
	cs.utxoSet.Commit(genesisDelta)
	cs.deltas[genesisNode.hash] = genesisDelta

	return cs
}

// Tip returns the current active-tip height, hash, cumulative work, and
// difficulty_bits, per spec §6's get_tip interface.
func (cs *ChainState) Tip() (height uint32, hash chainhash.Hash, cumulativeWork *big.Int, difficultyBits uint16) {
	cs.chainMu.RLock()
	defer cs.chainMu.RUnlock()
	return cs.tip.height, cs.tip.hash, new(big.Int).Set(cs.tip.cumulativeWork), cs.tip.header.DifficultyBits
}

// TipNode returns the active tip's height, hash, and difficulty_bits,
// for the mining template builder and tip watcher.
func (cs *ChainState) TipNode() (height uint32, hash chainhash.Hash, difficultyBits uint16) {
	cs.chainMu.RLock()
	defer cs.chainMu.RUnlock()
	return cs.tip.height, cs.tip.hash, cs.tip.header.DifficultyBits
}

// NextDifficultyBits returns the difficulty_bits a block extending the
// current active tip must carry, per the LWMA controller.
func (cs *ChainState) NextDifficultyBits() uint16 {
	cs.chainMu.RLock()
	defer cs.chainMu.RUnlock()
	return nextBitsForNode(cs.tip)
}

// UTXOSnapshot returns a read-only overlay over the current active UTXO
// set, suitable for validating a candidate transaction against the live
// chain state (e.g. in a mempool).
func (cs *ChainState) UTXOSnapshot() *utxo.Overlay {
	cs.chainMu.RLock()
	defer cs.chainMu.RUnlock()
	return cs.utxoSet.Snapshot()
}

// AncestorHash returns the hash of the active chain's block at height, or
// false if height exceeds the current tip, per spec §6's get_block(height)
// interface.
func (cs *ChainState) AncestorHash(height uint32) (chainhash.Hash, bool) {
	cs.chainMu.RLock()
	defer cs.chainMu.RUnlock()
	if height > cs.tip.height {
		return chainhash.Hash{}, false
	}
	node := cs.tip
	for node != nil && node.height > height {
		node = node.parent
	}
	if node == nil {
		return chainhash.Hash{}, false
	}
	return node.hash, true
}

// HaveBlock reports whether hash is known to the block index, whether on
// the active chain or a side chain.
func (cs *ChainState) HaveBlock(hash chainhash.Hash) bool {
	cs.chainMu.RLock()
	defer cs.chainMu.RUnlock()
	return cs.index.HaveBlock(hash)
}

// UTXOEntry looks up a single outpoint in the active UTXO set, per spec
// §6's get_utxo interface.
func (cs *ChainState) UTXOEntry(outpoint wire.OutPoint) (utxo.Entry, bool) {
	cs.chainMu.RLock()
	defer cs.chainMu.RUnlock()
	return cs.utxoSet.Get(outpoint)
}

// AddBlock runs the add-block pipeline of spec §4.5 against block.
func (cs *ChainState) AddBlock(block *wire.Block) (AcceptResult, error) {
	hash := block.Header.BlockHash()

	cs.chainMu.Lock()
	defer cs.chainMu.Unlock()

	// 1. Reject if already indexed.
	if cs.index.HaveBlock(hash) {
		return 0, rules.RuleError{ErrorCode: rules.ErrDuplicateBlock, Description: "block already indexed"}
	}

	// 2. Reject if the parent is unknown.
	parent, ok := cs.index.LookupNode(block.Header.PrevHash)
	if !ok {
		return 0, rules.RuleError{ErrorCode: rules.ErrUnknownParent, Description: "parent header not indexed"}
	}

	// 3. Stateless checks.
	if err := rules.CheckBlockSanity(block); err != nil {
		return 0, err
	}
	if err := rules.CheckBlockTimestamp(&block.Header, parent.ancestorTimestamps(chaincfg.MedianTimeBlocks), time.Now()); err != nil {
		return 0, err
	}
	if err := rules.CheckProofOfWork(&block.Header); err != nil {
		return 0, err
	}
	if err := rules.CheckDifficulty(&block.Header, parent.ancestorHeaders(chaincfg.LwmaWindowSize)); err != nil {
		return 0, err
	}

	// 4. cumulative_work is tracked on the node itself once built.
	node := newBlockNode(block.Header, parent)

	if parent.hash == cs.tip.hash {
		// 5. Extends the active tip: full contextual validation against
		// the live UTXO set.
		overlay := cs.utxoSet.Snapshot()
		if err := rules.CheckBlockTransactions(block, cs.params, node.height, overlay, cs.cache); err != nil {
			return 0, err
		}

		cs.index.AddNode(node)
		cs.utxoSet.Commit(overlay.Delta())
		cs.deltas[node.hash] = overlay.Delta()
		cs.tip = node
		return AcceptedExtendedTip, nil
	}

	// 6. Fork: stash in the side-chain store and consider a reorg.
	cs.index.AddNode(node)
	cs.sideChains.Put(hash, block)

	if node.cumulativeWork.Cmp(cs.tip.cumulativeWork) > 0 {
		if err := cs.reorg(node); err != nil {
			return 0, err
		}
		return AcceptedReorg, nil
	}

	return AcceptedSideChain, nil
}

// reorg implements spec §4.5's reorg procedure: walk back to the lowest
// common ancestor, disconnect the active branch down to it, then connect
// the candidate branch up to newTip. On any failure connecting the
// candidate branch it replays the original branch's already-known deltas
// to restore state and leaves the active tip unchanged.
func (cs *ChainState) reorg(newTip *blockNode) error {
	oldTip := cs.tip
	lca := lowestCommonAncestor(oldTip, newTip)

	disconnected := branchTo(oldTip, lca) // tip-first
	candidate := branchTo(newTip, lca)    // tip-first

	// Disconnect the active branch in reverse (tip-first) order, keeping
	// each delta so abort can restore them without revalidating.
	disconnectedDeltas := make([]*utxo.Delta, len(disconnected))
	for i, n := range disconnected {
		d, ok := cs.deltas[n.hash]
		if !ok {
			return fmt.Errorf("blockchain: missing recorded delta for %s during disconnect", n.hash)
		}
		cs.utxoSet.Reverse(d)
		delete(cs.deltas, n.hash)
		disconnectedDeltas[i] = d
	}

	// Connect the candidate branch oldest-first, validating each block
	// against the UTXO set as reconstructed so far.
	var connected []*blockNode
	for i := len(candidate) - 1; i >= 0; i-- {
		n := candidate[i]
		block, ok := cs.sideChains.Get(n.hash)
		if !ok {
			cs.abortReorg(connected, disconnected, disconnectedDeltas)
			return fmt.Errorf("blockchain: missing side-chain block for candidate %s", n.hash)
		}

		overlay := cs.utxoSet.Snapshot()
		if err := rules.CheckBlockTransactions(block, cs.params, n.height, overlay, cs.cache); err != nil {
			cs.abortReorg(connected, disconnected, disconnectedDeltas)
			return err
		}

		cs.utxoSet.Commit(overlay.Delta())
		cs.deltas[n.hash] = overlay.Delta()
		connected = append(connected, n)
	}

	// Only now that the whole candidate branch connected cleanly do its
	// blocks stop being side-chain candidates.
	for _, n := range connected {
		cs.sideChains.Delete(n.hash)
	}

	cs.tip = newTip
	return nil
}

// abortReorg undoes any candidate blocks connected so far and restores the
// disconnected branch by recommitting its already-known deltas, oldest
// first. disconnected and disconnectedDeltas are both tip-first and
// index-aligned.
func (cs *ChainState) abortReorg(connected, disconnected []*blockNode, disconnectedDeltas []*utxo.Delta) {
	for i := len(connected) - 1; i >= 0; i-- {
		n := connected[i]
		d := cs.deltas[n.hash]
		cs.utxoSet.Reverse(d)
		delete(cs.deltas, n.hash)
	}

	for i := len(disconnected) - 1; i >= 0; i-- {
		n := disconnected[i]
		d := disconnectedDeltas[i]
		cs.utxoSet.Commit(d)
		cs.deltas[n.hash] = d
	}
}

// branchTo returns the nodes strictly above lca on the branch ending at
// tip, ordered tip-first.
func branchTo(tip, lca *blockNode) []*blockNode {
	var nodes []*blockNode
	for n := tip; n != lca; n = n.parent {
		nodes = append(nodes, n)
	}
	return nodes
}

func nextBitsForNode(tip *blockNode) uint16 {
	return difficulty.NextBits(tip.ancestorHeaders(chaincfg.LwmaWindowSize))
}
