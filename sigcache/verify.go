// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigcache

import (
	"golang.org/x/crypto/ed25519"

	"github.com/arnoac/equiforge/chainhash"
)

// VerifySignature reports whether sig is a valid Ed25519 signature over
// digest by pubKey, consulting cache first and recording newly verified
// signatures into it. cache may be nil, in which case every call falls
// through to a full Ed25519 verification.
func VerifySignature(cache *SigCache, digest chainhash.Hash, sig, pubKey []byte, txID chainhash.Hash) bool {
	if cache != nil && cache.Exists(digest, sig, pubKey) {
		return true
	}

	if !ed25519.Verify(pubKey, digest[:], sig) {
		return false
	}

	if cache != nil {
		cache.Add(digest, sig, pubKey, txID)
	}
	return true
}
