// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"sync"

	"github.com/arnoac/equiforge/chainhash"
	"github.com/arnoac/equiforge/wire"
)

// blockIndex is the set of all known headers keyed by hash, per spec
// §4.5. It tracks every node reachable from genesis, whether or not it is
// on the active branch.
type blockIndex struct {
	mu    sync.RWMutex
	nodes map[chainhash.Hash]*blockNode
}

func newBlockIndex() *blockIndex {
	return &blockIndex{nodes: make(map[chainhash.Hash]*blockNode)}
}

func (bi *blockIndex) HaveBlock(hash chainhash.Hash) bool {
	bi.mu.RLock()
	defer bi.mu.RUnlock()
	_, ok := bi.nodes[hash]
	return ok
}

func (bi *blockIndex) LookupNode(hash chainhash.Hash) (*blockNode, bool) {
	bi.mu.RLock()
	defer bi.mu.RUnlock()
	n, ok := bi.nodes[hash]
	return n, ok
}

func (bi *blockIndex) AddNode(node *blockNode) {
	bi.mu.Lock()
	defer bi.mu.Unlock()
	bi.nodes[node.hash] = node
}

// sideChainStore holds full blocks that extend a branch other than the
// active tip, keyed by header hash. It has no size bound and evicts
// nothing (chaincfg.Params.MaxSideChains is not consulted); a block
// leaves it only when a reorg connects it to the active chain.
type sideChainStore struct {
	mu     sync.RWMutex
	blocks map[chainhash.Hash]*wire.Block
}

func newSideChainStore() *sideChainStore {
	return &sideChainStore{blocks: make(map[chainhash.Hash]*wire.Block)}
}

func (s *sideChainStore) Put(hash chainhash.Hash, block *wire.Block) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[hash] = block
}

func (s *sideChainStore) Get(hash chainhash.Hash) (*wire.Block, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blocks[hash]
	return b, ok
}

func (s *sideChainStore) Delete(hash chainhash.Hash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blocks, hash)
}

// Len reports how many blocks the side-chain store currently holds.
func (s *sideChainStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blocks)
}
