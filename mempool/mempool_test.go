// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/arnoac/equiforge/address"
	"github.com/arnoac/equiforge/sigcache"
	"github.com/arnoac/equiforge/utxo"
	"github.com/arnoac/equiforge/wire"
)

func signedTx(t *testing.T, pub ed25519.PublicKey, priv ed25519.PrivateKey, spend wire.OutPoint, outValue uint64) *wire.Transaction {
	t.Helper()
	tx := &wire.Transaction{
		TxIn:  []*wire.TxIn{{PreviousOutPoint: spend, PubKey: pub}},
		TxOut: []*wire.TxOut{{Value: outValue, PubKeyHash: address.Hash160(pub)}},
	}
	digest := tx.SigningDigest()
	sig := ed25519.Sign(priv, digest[:])
	copy(tx.TxIn[0].Signature[:], sig)
	return tx
}

func TestAddRejectsDoubleSpendWithinPool(t *testing.T) {
	pub, priv, _ := ed25519.GenerateKey(nil)
	spend := wire.OutPoint{Index: 0}

	set := utxo.NewSet()
	d := utxo.NewDelta()
	d.Create(spend, utxo.Entry{Value: 10000, PubKeyHash: address.Hash160(pub)})
	set.Commit(d)

	cache, _ := sigcache.New(8)
	pool := New()

	tx1 := signedTx(t, pub, priv, spend, 8000)
	if _, err := pool.Add(tx1, 1, set, cache); err != nil {
		t.Fatalf("expected the first spend to be accepted, got %v", err)
	}

	tx2 := signedTx(t, pub, priv, spend, 7000)
	if _, err := pool.Add(tx2, 1, set, cache); err == nil {
		t.Fatal("expected a conflicting spend of the same outpoint to be rejected")
	}
}

func TestSnapshotOrdersByDescendingFeeRate(t *testing.T) {
	pub, priv, _ := ed25519.GenerateKey(nil)

	set := utxo.NewSet()
	var outpoints []wire.OutPoint
	for i := uint32(0); i < 2; i++ {
		op := wire.OutPoint{Index: i}
		d := utxo.NewDelta()
		d.Create(op, utxo.Entry{Value: 10000, PubKeyHash: address.Hash160(pub)})
		set.Commit(d)
		outpoints = append(outpoints, op)
	}

	cache, _ := sigcache.New(8)
	pool := New()

	lowFee := signedTx(t, pub, priv, outpoints[0], 10000-1000)
	highFee := signedTx(t, pub, priv, outpoints[1], 10000-5000)

	if _, err := pool.Add(lowFee, 1, set, cache); err != nil {
		t.Fatal(err)
	}
	if _, err := pool.Add(highFee, 1, set, cache); err != nil {
		t.Fatal(err)
	}

	snap := pool.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 pooled transactions, got %d", len(snap))
	}
	if snap[0].TxID != highFee.TxHash() {
		t.Fatalf("expected the higher fee-rate transaction first")
	}
}

func TestRemoveConflictsEvictsSpenders(t *testing.T) {
	pub, priv, _ := ed25519.GenerateKey(nil)
	spend := wire.OutPoint{Index: 0}

	set := utxo.NewSet()
	d := utxo.NewDelta()
	d.Create(spend, utxo.Entry{Value: 10000, PubKeyHash: address.Hash160(pub)})
	set.Commit(d)

	cache, _ := sigcache.New(8)
	pool := New()

	tx := signedTx(t, pub, priv, spend, 8000)
	if _, err := pool.Add(tx, 1, set, cache); err != nil {
		t.Fatal(err)
	}

	minedTx := signedTx(t, pub, priv, spend, 9000) // different tx, same spent outpoint
	pool.RemoveConflicts(minedTx)

	if pool.Has(tx.TxHash()) {
		t.Fatal("expected the conflicting pooled transaction to be evicted")
	}
}
