// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2016-2020 The Decred developers
// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sigcache implements an Ed25519 signature verification cache with
// a randomized entry eviction policy, per spec §4.2's standalone check 9
// (signature verification may be the most expensive per-input check).
//
// Only valid signatures are added to the cache. Its benefit is twofold:
// usage of SigCache mitigates a DoS attack wherein an attacker causes a
// victim's node to hang re-verifying already-verified signatures, and it
// speeds up block validation for transactions already seen and verified
// in the mempool.
package sigcache

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"github.com/dchest/siphash"
	"golang.org/x/crypto/ed25519"

	"github.com/arnoac/equiforge/chainhash"
)

// shortTxHashKeySize is the size of the byte array required for key
// material for the SipHash keyed shortTxHash function.
const shortTxHashKeySize = 16

// sigCacheEntry represents an entry in the SigCache. Entries are keyed by
// the signing digest of the signature. On a cache hit (by digest), an
// additional comparison of the signature and public key is performed to
// guard against digest collisions.
type sigCacheEntry struct {
	sig         [ed25519.SignatureSize]byte
	pubKey      [ed25519.PublicKeySize]byte
	shortTxHash uint64
}

// SigCache is a concurrency-safe cache of valid Ed25519 signatures.
type SigCache struct {
	sync.RWMutex
	validSigs      map[chainhash.Hash]sigCacheEntry
	maxEntries     uint
	shortTxHashKey [shortTxHashKeySize]byte
}

// New creates and initializes a new SigCache. maxEntries is the maximum
// number of entries allowed to exist in the cache at any one moment;
// random entries are evicted to make room for new ones once the cache is
// full.
func New(maxEntries uint) (*SigCache, error) {
	var key [shortTxHashKeySize]byte
	if _, err := rand.Read(key[:]); err != nil {
		return nil, err
	}

	return &SigCache{
		validSigs:      make(map[chainhash.Hash]sigCacheEntry, maxEntries),
		maxEntries:     maxEntries,
		shortTxHashKey: key,
	}, nil
}

// Exists reports whether an entry for a signature over digest by pubKey is
// already known to be valid.
//
// Safe for concurrent access; readers are not blocked unless a writer is
// currently adding an entry.
func (s *SigCache) Exists(digest chainhash.Hash, sig, pubKey []byte) bool {
	s.RLock()
	entry, ok := s.validSigs[digest]
	s.RUnlock()

	if !ok {
		return false
	}
	return ct32Equal(entry.sig[:], sig) && ct32Equal(entry.pubKey[:], pubKey)
}

func ct32Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := range a {
		v |= a[i] ^ b[i]
	}
	return v == 0
}

// Add records that sig over digest by pubKey is a verified-valid Ed25519
// signature of txID. In the event the cache is full, a random entry is
// evicted to make room.
//
// Safe for concurrent access; writers block concurrent readers until the
// entry has been added.
func (s *SigCache) Add(digest chainhash.Hash, sig, pubKey []byte, txID chainhash.Hash) {
	s.Lock()
	defer s.Unlock()

	if s.maxEntries == 0 {
		return
	}

	if uint(len(s.validSigs)+1) > s.maxEntries {
		// Relies on Go's randomized map iteration order. Manipulating
		// which entry is evicted would require a preimage attack on
		// the signing digest.
		for k := range s.validSigs {
			delete(s.validSigs, k)
			break
		}
	}

	var entry sigCacheEntry
	copy(entry.sig[:], sig)
	copy(entry.pubKey[:], pubKey)
	entry.shortTxHash = shortTxHash(txID, s.shortTxHashKey)

	s.validSigs[digest] = entry
}

// EvictTx removes any cache entry recorded against txID. No code in the
// node calls it; entries otherwise leave only through Add's random
// eviction when the cache is full.
func (s *SigCache) EvictTx(txID chainhash.Hash) {
	target := shortTxHash(txID, s.shortTxHashKey)

	s.Lock()
	defer s.Unlock()
	for digest, entry := range s.validSigs {
		if entry.shortTxHash == target {
			delete(s.validSigs, digest)
		}
	}
}

// shortTxHash generates a short, keyed hash of a transaction ID using
// SipHash-2-4, so that eviction doesn't require comparing full 32-byte
// transaction hashes against every cache entry.
func shortTxHash(txID chainhash.Hash, key [shortTxHashKeySize]byte) uint64 {
	k0 := binary.LittleEndian.Uint64(key[0:8])
	k1 := binary.LittleEndian.Uint64(key[8:16])
	return siphash.Hash(k0, k1, txID[:])
}
