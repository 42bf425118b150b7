// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "github.com/arnoac/equiforge/wire"

// mainNetGenesisDifficultyBits is the proof-of-work difficulty the mainnet
// genesis header carries. The genesis block is valid by definition and is
// not itself evaluated for proof of work (its only role is supplying
// PrevHash and the initial difficulty_bits for height 1's LWMA window).
const mainNetGenesisDifficultyBits = 24

// MainNetParams returns the network parameters for the main EquiForge
// network.
func MainNetParams() *Params {
	genesisCoinbase := &wire.Transaction{
		Version: 1,
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: wire.SentinelOutPoint(),
			PubKey:           []byte("EquiForge genesis block"),
		}},
		TxOut: []*wire.TxOut{{
			Value:      0,
			PubKeyHash: [wire.PubKeyHashSize]byte{},
		}},
		LockTime: 0,
	}

	genesisBlock := wire.Block{
		Header: wire.BlockHeader{
			Version:        1,
			PrevHash:       [32]byte{},
			Timestamp:      1735689600, // 2025-01-01T00:00:00Z
			DifficultyBits: mainNetGenesisDifficultyBits,
			Nonce:          0,
		},
		Transactions: []*wire.Transaction{genesisCoinbase},
	}
	genesisBlock.Header.MerkleRoot = genesisBlock.MerkleRoot()

	return &Params{
		Name:                  "mainnet",
		NetworkMagic:          0xe9f1c0de,
		AddressPrefix:         0x21,
		GenesisBlock:          genesisBlock,
		GenesisDifficultyBits: mainNetGenesisDifficultyBits,
		CommunityFundActive:   false,
		MaxSideChains:         DefaultMaxSideChains,
	}
}
