// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rules

import (
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/arnoac/equiforge/address"
	"github.com/arnoac/equiforge/chaincfg"
	"github.com/arnoac/equiforge/sigcache"
	"github.com/arnoac/equiforge/utxo"
	"github.com/arnoac/equiforge/wire"
)

func TestCheckTransactionSanityRejectsNoInputs(t *testing.T) {
	tx := &wire.Transaction{TxOut: []*wire.TxOut{{Value: 1}}}
	err := CheckTransactionSanity(tx)
	if !IsErrorCode(err, ErrNoTxInputs) {
		t.Fatalf("expected ErrNoTxInputs, got %v", err)
	}
}

func TestCheckTransactionSanityRejectsDuplicateInputs(t *testing.T) {
	out := wire.OutPoint{Index: 1}
	tx := &wire.Transaction{
		TxIn:  []*wire.TxIn{{PreviousOutPoint: out}, {PreviousOutPoint: out}},
		TxOut: []*wire.TxOut{{Value: 1}},
	}
	err := CheckTransactionSanity(tx)
	if !IsErrorCode(err, ErrDuplicateTxInputs) {
		t.Fatalf("expected ErrDuplicateTxInputs, got %v", err)
	}
}

func TestCheckTransactionSanityRejectsOverMaxMoney(t *testing.T) {
	tx := &wire.Transaction{
		TxIn:  []*wire.TxIn{{}},
		TxOut: []*wire.TxOut{{Value: chaincfg.MaxMoney + 1}},
	}
	err := CheckTransactionSanity(tx)
	if !IsErrorCode(err, ErrBadTxOutValue) {
		t.Fatalf("expected ErrBadTxOutValue, got %v", err)
	}
}

func signedSpendingTx(t *testing.T, pub ed25519.PublicKey, priv ed25519.PrivateKey, spend wire.OutPoint, outValue uint64) *wire.Transaction {
	t.Helper()
	tx := &wire.Transaction{
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: spend,
			PubKey:           pub,
		}},
		TxOut: []*wire.TxOut{{Value: outValue, PubKeyHash: address.Hash160(pub)}},
	}
	digest := tx.SigningDigest()
	sig := ed25519.Sign(priv, digest[:])
	copy(tx.TxIn[0].Signature[:], sig)
	return tx
}

func TestCheckTransactionContextAcceptsValidSpend(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}

	spend := wire.OutPoint{Index: 0}
	set := utxo.NewSet()
	set.Commit(func() *utxo.Delta {
		d := utxo.NewDelta()
		d.Create(spend, utxo.Entry{Value: 10000, PubKeyHash: address.Hash160(pub), HeightCreated: 0})
		return d
	}())

	tx := signedSpendingTx(t, pub, priv, spend, 8000)

	cache, err := sigcache.New(8)
	if err != nil {
		t.Fatal(err)
	}

	inputSum, err := CheckTransactionContext(tx, set, 200, cache)
	if err != nil {
		t.Fatalf("expected a valid spend to pass, got %v", err)
	}
	if inputSum != 10000 {
		t.Fatalf("expected input sum 10000, got %d", inputSum)
	}
}

func TestCheckTransactionContextRejectsImmatureCoinbaseSpend(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}

	spend := wire.OutPoint{Index: 0}
	set := utxo.NewSet()
	d := utxo.NewDelta()
	d.Create(spend, utxo.Entry{Value: 10000, PubKeyHash: address.Hash160(pub), HeightCreated: 100, IsCoinbase: true})
	set.Commit(d)

	tx := signedSpendingTx(t, pub, priv, spend, 8000)
	cache, _ := sigcache.New(8)

	_, err = CheckTransactionContext(tx, set, 150, cache) // only 50 confirmations
	if !IsErrorCode(err, ErrImmatureSpend) {
		t.Fatalf("expected ErrImmatureSpend, got %v", err)
	}
}

func TestCheckTransactionContextRejectsBadSignature(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}

	spend := wire.OutPoint{Index: 0}
	set := utxo.NewSet()
	d := utxo.NewDelta()
	d.Create(spend, utxo.Entry{Value: 10000, PubKeyHash: address.Hash160(pub), HeightCreated: 0})
	set.Commit(d)

	tx := signedSpendingTx(t, pub, priv, spend, 8000)
	tx.TxIn[0].Signature[0] ^= 0xFF // corrupt

	cache, _ := sigcache.New(8)
	_, err = CheckTransactionContext(tx, set, 200, cache)
	if !IsErrorCode(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestCheckTransactionContextRejectsFeeBelowMinimum(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}

	spend := wire.OutPoint{Index: 0}
	set := utxo.NewSet()
	d := utxo.NewDelta()
	d.Create(spend, utxo.Entry{Value: 10000, PubKeyHash: address.Hash160(pub), HeightCreated: 0})
	set.Commit(d)

	// Fee would be less than MinFee.
	tx := signedSpendingTx(t, pub, priv, spend, 10000-chaincfg.MinFee+1)
	cache, _ := sigcache.New(8)

	_, err = CheckTransactionContext(tx, set, 200, cache)
	if !IsErrorCode(err, ErrBadFees) {
		t.Fatalf("expected ErrBadFees, got %v", err)
	}
}

func TestCheckCoinbaseOutputsRejectsOverBudget(t *testing.T) {
	params := chaincfg.MainNetParams()
	tx := &wire.Transaction{
		TxIn:  []*wire.TxIn{{PreviousOutPoint: wire.SentinelOutPoint()}},
		TxOut: []*wire.TxOut{{Value: chaincfg.InitialSubsidy + 1}},
	}
	err := CheckCoinbaseOutputs(tx, params, 1, 0)
	if !IsErrorCode(err, ErrBadCoinbaseOutputs) {
		t.Fatalf("expected ErrBadCoinbaseOutputs, got %v", err)
	}
}

func TestCheckCoinbaseOutputsAcceptsSubsidyPlusFees(t *testing.T) {
	params := chaincfg.MainNetParams()
	tx := &wire.Transaction{
		TxIn:  []*wire.TxIn{{PreviousOutPoint: wire.SentinelOutPoint()}},
		TxOut: []*wire.TxOut{{Value: chaincfg.InitialSubsidy + 500}},
	}
	if err := CheckCoinbaseOutputs(tx, params, 1, 500); err != nil {
		t.Fatalf("expected subsidy+fees coinbase to pass, got %v", err)
	}
}
