// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/arnoac/equiforge/address"
	"github.com/arnoac/equiforge/chaincfg"
	"github.com/arnoac/equiforge/chainhash"
	"github.com/arnoac/equiforge/equihashx"
	"github.com/arnoac/equiforge/sigcache"
	"github.com/arnoac/equiforge/wire"
)

// mineChild builds and solves a valid block extending parentHash at
// parentHeight, spending neither any mempool transactions nor its own
// coinbase (coinbase-only blocks), solved at exactly the LWMA target solve
// time so difficulty_bits stays at chaincfg.MinDifficultyBits throughout
// the test chain. minerTag is embedded in the coinbase input so that
// otherwise-identical sibling blocks (same parent, height, and timestamp,
// as happens when two branches fork from the same point) still hash
// differently.
func mineChild(t *testing.T, parentHash chainhash.Hash, parentHeight uint32, parentTimestamp uint32, payTo [wire.PubKeyHashSize]byte, minerTag []byte) *wire.Block {
	t.Helper()

	height := parentHeight + 1
	coinbase := &wire.Transaction{
		Version: 1,
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: wire.SentinelOutPoint(),
			PubKey:           minerTag,
		}},
		TxOut: []*wire.TxOut{{Value: chaincfg.Subsidy(height), PubKeyHash: payTo}},
	}

	block := &wire.Block{
		Header: wire.BlockHeader{
			Version:        1,
			PrevHash:       parentHash,
			Timestamp:      parentTimestamp + chaincfg.TargetBlockTimeSeconds,
			DifficultyBits: chaincfg.MinDifficultyBits,
		},
		Transactions: []*wire.Transaction{coinbase},
	}
	block.Header.MerkleRoot = block.MerkleRoot()

	for nonce := uint64(0); ; nonce++ {
		block.Header.Nonce = nonce
		if equihashx.Verify(block.Header.Bytes(), block.Header.DifficultyBits) {
			break
		}
		if nonce > 1<<16 {
			t.Fatalf("failed to find a nonce meeting MinDifficultyBits within a reasonable search")
		}
	}

	return block
}

func newTestChainState(t *testing.T) (*ChainState, *chaincfg.Params) {
	t.Helper()
	params := chaincfg.RegNetParams()
	cache, err := sigcache.New(8)
	if err != nil {
		t.Fatal(err)
	}
	return New(params, cache), params
}

func TestAddBlockExtendsTip(t *testing.T) {
	cs, params := newTestChainState(t)
	pub, _, _ := ed25519.GenerateKey(nil)
	payTo := address.Hash160(pub)

	genesisHash := params.GenesisHash()
	block1 := mineChild(t, genesisHash, 0, params.GenesisBlock.Header.Timestamp, payTo, []byte("test miner"))

	result, err := cs.AddBlock(block1)
	if err != nil {
		t.Fatalf("expected block 1 to extend the tip, got %v", err)
	}
	if result != AcceptedExtendedTip {
		t.Fatalf("expected AcceptedExtendedTip, got %v", result)
	}

	height, hash, _, _ := cs.Tip()
	if height != 1 || hash != block1.Header.BlockHash() {
		t.Fatalf("tip did not advance to block 1: height=%d hash=%s", height, hash)
	}
}

func TestAddBlockRejectsUnknownParent(t *testing.T) {
	cs, _ := newTestChainState(t)
	pub, _, _ := ed25519.GenerateKey(nil)
	payTo := address.Hash160(pub)

	orphan := mineChild(t, chainhash.Hash{0x01}, 5, 1_700_000_000, payTo, []byte("test miner"))
	if _, err := cs.AddBlock(orphan); err == nil {
		t.Fatal("expected an orphan block to be rejected")
	}
}

func TestAddBlockRejectsDuplicateBlock(t *testing.T) {
	cs, params := newTestChainState(t)
	pub, _, _ := ed25519.GenerateKey(nil)
	payTo := address.Hash160(pub)

	block1 := mineChild(t, params.GenesisHash(), 0, params.GenesisBlock.Header.Timestamp, payTo, []byte("test miner"))
	if _, err := cs.AddBlock(block1); err != nil {
		t.Fatal(err)
	}
	if _, err := cs.AddBlock(block1); err == nil {
		t.Fatal("expected the second submission of the same block to be rejected")
	}
}

func TestReorgSwitchesToHigherWorkBranch(t *testing.T) {
	cs, params := newTestChainState(t)
	pub, _, _ := ed25519.GenerateKey(nil)
	payTo := address.Hash160(pub)

	genesisHash := params.GenesisHash()
	genesisTS := params.GenesisBlock.Header.Timestamp

	// Branch A: two blocks, becomes the active tip first.
	a1 := mineChild(t, genesisHash, 0, genesisTS, payTo, []byte("branch a miner"))
	if _, err := cs.AddBlock(a1); err != nil {
		t.Fatalf("a1: %v", err)
	}
	a2 := mineChild(t, a1.Header.BlockHash(), 1, a1.Header.Timestamp, payTo, []byte("branch a miner"))
	if _, err := cs.AddBlock(a2); err != nil {
		t.Fatalf("a2: %v", err)
	}

	height, hash, _, _ := cs.Tip()
	if height != 2 || hash != a2.Header.BlockHash() {
		t.Fatalf("expected branch A tip at height 2, got height=%d hash=%s", height, hash)
	}

	// Branch B forks from genesis and only reaches height 1 at first: it
	// must be stored as a side chain, not become the tip (equal height,
	// lower cumulative work than the 2-block branch A is impossible to
	// test directly here since both branches share identical
	// per-block work at MinDifficultyBits; instead drive branch B to
	// height 3 so its cumulative work strictly exceeds branch A's).
	b1 := mineChild(t, genesisHash, 0, genesisTS, payTo, []byte("branch b miner"))
	result, err := cs.AddBlock(b1)
	if err != nil {
		t.Fatalf("b1: %v", err)
	}
	if result != AcceptedSideChain {
		t.Fatalf("expected b1 to be stored as a side chain, got %v", result)
	}

	b2 := mineChild(t, b1.Header.BlockHash(), 1, b1.Header.Timestamp, payTo, []byte("branch b miner"))
	if _, err := cs.AddBlock(b2); err != nil {
		t.Fatalf("b2: %v", err)
	}

	b3 := mineChild(t, b2.Header.BlockHash(), 2, b2.Header.Timestamp, payTo, []byte("branch b miner"))
	result, err = cs.AddBlock(b3)
	if err != nil {
		t.Fatalf("b3: %v", err)
	}
	if result != AcceptedReorg {
		t.Fatalf("expected b3 to trigger a reorg, got %v", result)
	}

	height, hash, _, _ = cs.Tip()
	if height != 3 || hash != b3.Header.BlockHash() {
		t.Fatalf("expected branch B tip at height 3 after reorg, got height=%d hash=%s", height, hash)
	}
}
