// Copyright (c) 2018-2021 The Decred developers
// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "github.com/arnoac/equiforge/wire"

// regNetGenesisDifficultyBits is the proof-of-work difficulty the regression
// test network's genesis header carries. This network exists for unit and
// integration tests, not for public use, so it starts trivially easy.
const regNetGenesisDifficultyBits = 1

// RegNetParams returns the network parameters for the regression test
// network. This is distinct from the public test network and the
// simulation network: it exists purely to back repeatable, fast unit and
// integration tests.
func RegNetParams() *Params {
	genesisCoinbase := &wire.Transaction{
		Version: 1,
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: wire.SentinelOutPoint(),
			PubKey:           []byte("EquiForge regtest genesis block"),
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
			DifficultyBits: regNetGenesisDifficultyBits,
			Nonce:          0,
		},
		Transactions: []*wire.Transaction{genesisCoinbase},
	}
	genesisBlock.Header.MerkleRoot = genesisBlock.MerkleRoot()

	return &Params{
		Name:                  "regnet",
		NetworkMagic:          0xdab5bffa,
		AddressPrefix:         0x5c,
		GenesisBlock:          genesisBlock,
		GenesisDifficultyBits: regNetGenesisDifficultyBits,
		CommunityFundActive:   false,
		MaxSideChains:         DefaultMaxSideChains,
	}
}
