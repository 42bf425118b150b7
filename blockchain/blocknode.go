// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"

	"github.com/arnoac/equiforge/chainhash"
	"github.com/arnoac/equiforge/wire"
)

// blockNode represents a block within the in-memory block index, per spec
// §4.3's BlockIndexEntry. It holds only the header and the bookkeeping
// needed for chain selection and ancestor walks; transactions for
// side-chain blocks live in the side-chain store (sideChainStore) instead
// of on the node itself, since most indexed blocks are never materialized
// as full blocks in memory at once.
type blockNode struct {
	parent *blockNode

	hash   chainhash.Hash
	header wire.BlockHeader
	height uint32

	// cumulativeWork is the sum of 2^difficulty_bits over every block on
	// this branch from genesis inclusive, per spec §4.3.
	cumulativeWork *big.Int
}

// newBlockNode builds a node for header whose parent is already indexed as
// parent. parent is nil only for the genesis block.
func newBlockNode(header wire.BlockHeader, parent *blockNode) *blockNode {
	node := &blockNode{
		parent: parent,
		hash:   header.BlockHash(),
		header: header,
		height: 0,
	}

	work := blockWork(header.DifficultyBits)
	if parent != nil {
		node.height = parent.height + 1
		node.cumulativeWork = new(big.Int).Add(parent.cumulativeWork, work)
	} else {
		node.cumulativeWork = work
	}

	return node
}

// blockWork returns the amount of work a block with the given
// difficulty_bits contributes to its branch's cumulative work: 2^bits.
func blockWork(difficultyBits uint16) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(difficultyBits))
}

// ancestorTimestamps returns up to count of this node's own and its
// ancestors' timestamps, most-recent-first, oldest truncated if the chain
// is shorter than count.
func (n *blockNode) ancestorTimestamps(count int) []uint32 {
	out := make([]uint32, 0, count)
	for node := n; node != nil && len(out) < count; node = node.parent {
		out = append(out, node.header.Timestamp)
	}
	return out
}

// ancestorHeaders returns up to count+1 headers ending at this node,
// ordered oldest-first, suitable for difficulty.NextBits.
func (n *blockNode) ancestorHeaders(count int) []wire.BlockHeader {
	headers := make([]wire.BlockHeader, 0, count+1)
	for node := n; node != nil && len(headers) < count+1; node = node.parent {
		headers = append(headers, node.header)
	}
	for i, j := 0, len(headers)-1; i < j; i, j = i+1, j-1 {
		headers[i], headers[j] = headers[j], headers[i]
	}
	return headers
}

// lowestCommonAncestor returns the highest node that is an ancestor of both
// n and other.
func lowestCommonAncestor(n, other *blockNode) *blockNode {
	for n.height > other.height {
		n = n.parent
	}
	for other.height > n.height {
		other = other.parent
	}
	for n != other {
		n = n.parent
		other = other.parent
	}
	return n
}
