// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigcache

import (
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/arnoac/equiforge/chainhash"
)

func TestVerifySignatureCachesValidSigs(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}

	digest := chainhash.HashH([]byte("signing digest"))
	sig := ed25519.Sign(priv, digest[:])
	txID := chainhash.HashH([]byte("txid"))

	cache, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	if !VerifySignature(cache, digest, sig, pub, txID) {
		t.Fatal("expected valid signature to verify")
	}
	if !cache.Exists(digest, sig, pub) {
		t.Fatal("expected signature to be cached after verification")
	}

	// Corrupting the signature after it's cached must not make a
	// different signature appear valid.
	badSig := make([]byte, len(sig))
	copy(badSig, sig)
	badSig[0] ^= 0xFF
	if cache.Exists(digest, badSig, pub) {
		t.Fatal("corrupted signature should not match cached entry")
	}
}

func TestVerifySignatureRejectsInvalid(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	digest := chainhash.HashH([]byte("signing digest"))
	badSig := make([]byte, ed25519.SignatureSize)
	txID := chainhash.HashH([]byte("txid"))

	cache, err := New(16)
	if err != nil {
		t.Fatal(err)
	}
	if VerifySignature(cache, digest, badSig, pub, txID) {
		t.Fatal("expected all-zero signature to be rejected")
	}
}

func TestEvictTx(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	digest := chainhash.HashH([]byte("signing digest"))
	sig := ed25519.Sign(priv, digest[:])
	txID := chainhash.HashH([]byte("txid"))

	cache, err := New(16)
	if err != nil {
		t.Fatal(err)
	}
	cache.Add(digest, sig, pub, txID)
	if !cache.Exists(digest, sig, pub) {
		t.Fatal("expected entry to exist before eviction")
	}

	cache.EvictTx(txID)
	if cache.Exists(digest, sig, pub) {
		t.Fatal("expected entry to be evicted")
	}
}
