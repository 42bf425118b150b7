// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "testing"

func TestGenesisBlocksAreDistinct(t *testing.T) {
	nets := []*Params{MainNetParams(), TestNetParams(), RegNetParams(), SimNetParams()}

	seen := make(map[[32]byte]string)
	for _, p := range nets {
		hash := p.GenesisHash()
		if other, ok := seen[hash]; ok {
			t.Fatalf("%s and %s share a genesis hash", p.Name, other)
		}
		seen[hash] = p.Name

		if p.GenesisBlock.Header.MerkleRoot != p.GenesisBlock.MerkleRoot() {
			t.Errorf("%s: genesis header merkle root does not match its coinbase", p.Name)
		}
		if p.GenesisBlock.Header.DifficultyBits != p.GenesisDifficultyBits {
			t.Errorf("%s: genesis header difficulty_bits does not match Params.GenesisDifficultyBits", p.Name)
		}
	}
}

func TestSubsidyHalving(t *testing.T) {
	cases := []struct {
		height uint32
		want   uint64
	}{
		{0, InitialSubsidy},
		{SubsidyHalvingInterval - 1, InitialSubsidy},
		{SubsidyHalvingInterval, InitialSubsidy / 2},
		{SubsidyHalvingInterval * 2, InitialSubsidy / 4},
		{SubsidyHalvingInterval * 64, 0},
	}
	for _, c := range cases {
		if got := Subsidy(c.height); got != c.want {
			t.Errorf("Subsidy(%d) = %d, want %d", c.height, got, c.want)
		}
	}
}
