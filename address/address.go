// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address implements the pubkey_hash digest and the Base58Check
// address encoding named in spec §6: Base58Check of (1-byte network prefix
// ∥ 20-byte pubkey_hash ∥ 4-byte SHA-256d checksum).
package address

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/EXCCoin/base58"
	"golang.org/x/crypto/ripemd160"

	"github.com/arnoac/equiforge/chainhash"
	"github.com/arnoac/equiforge/wire"
)

// checksumLen is the number of checksum bytes appended before Base58
// encoding.
const checksumLen = 4

// ErrChecksumMismatch is returned by Decode when the trailing checksum
// bytes don't match the double SHA-256 of the payload.
var ErrChecksumMismatch = errors.New("address: checksum mismatch")

// ErrWrongNetwork is returned by Decode when the decoded network prefix
// byte doesn't match the expected one.
var ErrWrongNetwork = errors.New("address: network prefix mismatch")

// ErrMalformed is returned by Decode when the decoded payload is not
// exactly 1 + 20 + 4 bytes.
var ErrMalformed = errors.New("address: malformed encoding")

// Hash160 computes ripemd160(sha256(pubkey)), the pubkey_hash digest named
// in spec §3/§6. The spec resolves its own open question on address hash
// width by fixing it at 20 bytes (see chaincfg.Params.AddressPrefix and
// SPEC_FULL.md's Open Question resolution).
func Hash160(pubKey []byte) [wire.PubKeyHashSize]byte {
	sha := chainhash.HashB(pubKey)

	r := ripemd160.New()
	r.Write(sha)
	sum := r.Sum(nil)

	var out [wire.PubKeyHashSize]byte
	copy(out[:], sum)
	return out
}

// Encode returns the Base58Check string encoding of pubKeyHash for the
// network identified by netPrefix.
func Encode(netPrefix byte, pubKeyHash [wire.PubKeyHashSize]byte) string {
	payload := make([]byte, 0, 1+wire.PubKeyHashSize+checksumLen)
	payload = append(payload, netPrefix)
	payload = append(payload, pubKeyHash[:]...)

	cksum := chainhash.HashFunc(payload)
	payload = append(payload, cksum[:checksumLen]...)

	return base58.Encode(payload)
}

// Decode parses a Base58Check-encoded address string, verifying its
// checksum and network prefix against netPrefix.
func Decode(s string, netPrefix byte) ([wire.PubKeyHashSize]byte, error) {
	var out [wire.PubKeyHashSize]byte

	decoded := base58.Decode(s)
	if len(decoded) != 1+wire.PubKeyHashSize+checksumLen {
		return out, ErrMalformed
	}

	payload := decoded[:1+wire.PubKeyHashSize]
	wantCksum := decoded[1+wire.PubKeyHashSize:]

	gotCksum := chainhash.HashFunc(payload)
	if !bytes.Equal(gotCksum[:checksumLen], wantCksum) {
		return out, ErrChecksumMismatch
	}

	if payload[0] != netPrefix {
		return out, fmt.Errorf("%w: got 0x%02x, want 0x%02x", ErrWrongNetwork, payload[0], netPrefix)
	}

	copy(out[:], payload[1:])
	return out, nil
}
