// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides the 32-byte hash type used throughout
// EquiForge for transaction IDs, header hashes, and Merkle roots, each of
// which is an untagged double SHA-256 (HashDFunc).
package chainhash

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
)

// HashSize is the size, in bytes, of a hash used by EquiForge.
const HashSize = 32

// MaxHashStringSize is the maximum length of a Hash hash string.
const MaxHashStringSize = HashSize * 2

// ErrHashStrSize describes an error that indicates the caller specified a
// hash string that has too many characters.
var ErrHashStrSize = errors.New("max hash string length is " + strconv.Itoa(MaxHashStringSize) + " bytes")

// Hash is used in several of the EquiForge messages and data structures to
// identify data with a given hash. Hash is typically used to contain the
// double sha256 of data, but is not always.
type Hash [HashSize]byte

// String returns the Hash as the hexadecimal string of the byte-reversed
// hash, matching the big-endian display convention used across the
// Bitcoin/Decred family of node implementations this codebase descends from.
func (h Hash) String() string {
	for i := 0; i < HashSize/2; i++ {
		h[i], h[HashSize-1-i] = h[HashSize-1-i], h[i]
	}
	return hex.EncodeToString(h[:])
}

// Bytes returns the bytes which represent the hash as a byte slice.
func (h *Hash) Bytes() []byte {
	newHash := make([]byte, HashSize)
	copy(newHash, h[:])
	return newHash
}

// SetBytes sets the bytes which represent the hash. An error is returned if
// the number of bytes passed in is not HashSize.
func (h *Hash) SetBytes(newHash []byte) error {
	if len(newHash) != HashSize {
		return errors.New("invalid hash length")
	}
	copy(h[:], newHash)
	return nil
}

// IsEqual returns true if target is the same as the hash.
func (h *Hash) IsEqual(target *Hash) bool {
	if h == nil && target == nil {
		return true
	}
	if h == nil || target == nil {
		return false
	}
	return *h == *target
}

// Less reports whether h sorts before other under big-endian, MSB-first
// comparison — the ordering §3 requires for hash comparisons.
func (h Hash) Less(other Hash) bool {
	for i := 0; i < HashSize; i++ {
		if h[i] != other[i] {
			return h[i] < other[i]
		}
	}
	return false
}

// NewHash returns a new Hash from a byte slice. An error is returned if the
// number of bytes passed in is not HashSize.
func NewHash(newHash []byte) (*Hash, error) {
	var sh Hash
	err := sh.SetBytes(newHash)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// NewHashFromStr creates a Hash from a big-endian hash string.
func NewHashFromStr(hash string) (*Hash, error) {
	ret := new(Hash)
	err := Decode(ret, hash)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Decode decodes the big-endian hex string encoding of a Hash into dst.
func Decode(dst *Hash, src string) error {
	if len(src) > MaxHashStringSize {
		return ErrHashStrSize
	}
	var srcBytes []byte
	if len(src)%2 == 0 {
		srcBytes = []byte(src)
	} else {
		srcBytes = make([]byte, 1, len(src)+1)
		srcBytes[0] = '0'
		srcBytes = append(srcBytes, src...)
	}

	var reversedHash Hash
	_, err := hex.Decode(reversedHash[:hex.DecodedLen(len(srcBytes))], srcBytes)
	if err != nil {
		return err
	}

	for i, b := range reversedHash[:HashSize/2] {
		reversedHash[i], reversedHash[HashSize-1-i] = reversedHash[HashSize-1-i], b
	}
	*dst = reversedHash
	return nil
}

// HashB calculates the hash of the given data and returns it as a byte
// slice.
func HashB(b []byte) []byte {
	hash := sha256.Sum256(b)
	return hash[:]
}

// HashH calculates the hash of the given data and returns it as a Hash.
func HashH(b []byte) Hash {
	return Hash(sha256.Sum256(b))
}

// HashFunc calculates the standard EquiForge hash function, which is double
// SHA-256, for the given data and returns it as a byte slice.
func HashFunc(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// HashDFunc calculates the standard EquiForge hash function, which is double
// SHA-256, for the given data and returns it as a Hash.
func HashDFunc(b []byte) Hash {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

// TaggedHash computes double SHA-256 over a domain tag concatenated with the
// message. The identity hashes (txid, header hash, Merkle nodes) do not use
// it; they are computed with HashDFunc, without a domain tag.
func TaggedHash(tag string, data ...[]byte) Hash {
	h := sha256.New()
	h.Write([]byte(tag))
	for _, d := range data {
		h.Write(d)
	}
	tagged := h.Sum(nil)

	second := sha256.Sum256(tagged)
	return second
}
