// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"errors"
	"testing"

	"github.com/arnoac/equiforge/wire"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	pubKey := make([]byte, wire.PubKeySize)
	for i := range pubKey {
		pubKey[i] = byte(i)
	}
	hash := Hash160(pubKey)

	const netPrefix = 0x21
	encoded := Encode(netPrefix, hash)

	decoded, err := Decode(encoded, netPrefix)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded != hash {
		t.Fatalf("decoded hash %x != original %x", decoded, hash)
	}
}

func TestDecodeWrongNetwork(t *testing.T) {
	var hash [wire.PubKeyHashSize]byte
	encoded := Encode(0x21, hash)

	if _, err := Decode(encoded, 0x4a); !errors.Is(err, ErrWrongNetwork) {
		t.Fatalf("expected ErrWrongNetwork, got %v", err)
	}
}

func TestDecodeBadChecksum(t *testing.T) {
	var hash [wire.PubKeyHashSize]byte
	encoded := Encode(0x21, hash)
	corrupted := encoded[:len(encoded)-1] + "9"

	if _, err := Decode(corrupted, 0x21); err == nil {
		t.Fatal("expected an error decoding a corrupted address")
	}
}
