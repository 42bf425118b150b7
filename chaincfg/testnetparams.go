// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "github.com/arnoac/equiforge/wire"

// testNetGenesisDifficultyBits is the proof-of-work difficulty the testnet
// genesis header carries. Testnet starts much easier than mainnet so a
// single CPU miner can produce blocks during development.
const testNetGenesisDifficultyBits = 8

// TestNetParams returns the network parameters for the public test network.
func TestNetParams() *Params {
	genesisCoinbase := &wire.Transaction{
		Version: 1,
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: wire.SentinelOutPoint(),
			PubKey:           []byte("EquiForge testnet genesis block"),
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
			Timestamp:      1735689600,
			DifficultyBits: testNetGenesisDifficultyBits,
			Nonce:          0,
		},
		Transactions: []*wire.Transaction{genesisCoinbase},
	}
	genesisBlock.Header.MerkleRoot = genesisBlock.MerkleRoot()

	return &Params{
		Name:                  "testnet",
		NetworkMagic:          0x0b11090a,
		AddressPrefix:         0x4a,
		GenesisBlock:          genesisBlock,
		GenesisDifficultyBits: testNetGenesisDifficultyBits,
		CommunityFundActive:   false,
		MaxSideChains:         DefaultMaxSideChains,
	}
}
