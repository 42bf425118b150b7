// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"bytes"
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/arnoac/equiforge/address"
	"github.com/arnoac/equiforge/chaincfg"
	"github.com/arnoac/equiforge/chainhash"
	"github.com/arnoac/equiforge/equihashx"
	"github.com/arnoac/equiforge/storage/memstore"
	"github.com/arnoac/equiforge/wire"
)

func newTestNode(t *testing.T) (*Node, *chaincfg.Params) {
	t.Helper()
	params := chaincfg.RegNetParams()
	n, err := New(params, memstore.New())
	if err != nil {
		t.Fatal(err)
	}
	return n, params
}

// mineBlock mirrors blockchain's own test helper: a coinbase-only block
// solved at MinDifficultyBits, timestamped one target-interval after its
// parent so the LWMA controller holds difficulty steady across the test
// chain.
func mineBlock(t *testing.T, parentHash chainhash.Hash, parentHeight uint32, parentTimestamp uint32, payTo [wire.PubKeyHashSize]byte) *wire.Block {
	t.Helper()

	height := parentHeight + 1
	coinbase := &wire.Transaction{
		Version: 1,
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: wire.SentinelOutPoint(),
			PubKey:           []byte("test miner"),
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

func encodeBlock(t *testing.T, block *wire.Block) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := block.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestSubmitBlockAcceptsAndPersistsBody(t *testing.T) {
	n, params := newTestNode(t)
	pub, _, _ := ed25519.GenerateKey(nil)
	payTo := address.Hash160(pub)

	genesisHash := params.GenesisBlock.Header.BlockHash()
	block1 := mineBlock(t, genesisHash, 0, params.GenesisBlock.Header.Timestamp, payTo)
	raw := encodeBlock(t, block1)

	result := n.SubmitBlock(raw)
	if result.Status != BlockAccepted {
		t.Fatalf("expected BlockAccepted, got %v (%s)", result.Status, result.Reason)
	}

	height, hash, _, _ := n.GetTip()
	if height != 1 {
		t.Fatalf("expected tip height 1, got %d", height)
	}

	got, ok := n.GetBlockByHash(hash)
	if !ok {
		t.Fatal("expected persisted body for the new tip")
	}
	if !bytes.Equal(got, raw) {
		t.Fatal("persisted body does not match the submitted block")
	}

	byHeight, ok := n.GetBlockByHeight(1)
	if !ok || !bytes.Equal(byHeight, raw) {
		t.Fatal("height index did not resolve to the submitted block")
	}
}

func TestSubmitBlockRejectsGarbage(t *testing.T) {
	n, _ := newTestNode(t)
	result := n.SubmitBlock([]byte{0x01, 0x02})
	if result.Status != BlockRejected {
		t.Fatalf("expected BlockRejected for garbage input, got %v", result.Status)
	}
}

func TestSubmitTransactionRejectsInvalidStandaloneTx(t *testing.T) {
	n, params := newTestNode(t)
	pub, _, _ := ed25519.GenerateKey(nil)
	payTo := address.Hash160(pub)

	genesisHash := params.GenesisBlock.Header.BlockHash()
	block1 := mineBlock(t, genesisHash, 0, params.GenesisBlock.Header.Timestamp, payTo)
	if result := n.SubmitBlock(encodeBlock(t, block1)); result.Status != BlockAccepted {
		t.Fatalf("setup block rejected: %s", result.Reason)
	}

	// A coinbase transaction spends the sentinel outpoint, which is
	// never present in the UTXO set, so submitting one standalone always
	// fails contextual validation; enough to exercise the decode and
	// rejection path without needing a spendable input.
	raw := func() []byte {
		var buf bytes.Buffer
		if err := block1.Transactions[0].Encode(&buf); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}()

	first := n.SubmitTransaction(raw)
	if first.Status == TxAccepted {
		t.Fatal("expected the coinbase to be rejected as a standalone transaction")
	}
}

func TestGetBlockTemplateBuildsOverEmptyPool(t *testing.T) {
	n, _ := newTestNode(t)
	pub, _, _ := ed25519.GenerateKey(nil)
	payTo := address.Hash160(pub)

	tmpl, err := n.GetBlockTemplate(payTo, nil, n.params.GenesisBlock.Header.Timestamp+chaincfg.TargetBlockTimeSeconds)
	if err != nil {
		t.Fatal(err)
	}
	if tmpl.Height != 1 {
		t.Fatalf("expected template height 1, got %d", tmpl.Height)
	}
}
