// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2019 The Decred developers
// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "github.com/arnoac/equiforge/wire"

// simNetGenesisDifficultyBits is the proof-of-work difficulty the
// simulation network's genesis header carries.
const simNetGenesisDifficultyBits = 1

// SimNetParams returns the network parameters for the simulation test
// network. This network is intended for private use within a group of
// individuals doing full integration testing between independently
// developed EquiForge components (miners, explorers, wallets).
func SimNetParams() *Params {
	genesisCoinbase := &wire.Transaction{
		Version: 1,
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: wire.SentinelOutPoint(),
			PubKey:           []byte("EquiForge simnet genesis block"),
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
			DifficultyBits: simNetGenesisDifficultyBits,
			Nonce:          0,
		},
		Transactions: []*wire.Transaction{genesisCoinbase},
	}
	genesisBlock.Header.MerkleRoot = genesisBlock.MerkleRoot()

	return &Params{
		Name:                  "simnet",
		NetworkMagic:          0x12141c16,
		AddressPrefix:         0x3f,
		GenesisBlock:          genesisBlock,
		GenesisDifficultyBits: simNetGenesisDifficultyBits,
		CommunityFundActive:   false,
		MaxSideChains:         DefaultMaxSideChains,
	}
}
