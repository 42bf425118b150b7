// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the immutable, once-constructed network
// parameter values consumed by every other EquiForge component. Per spec
// §9's design note on global state, there are no process-wide mutables:
// a *Params value is built once at startup and passed by reference.
package chaincfg

import (
	"time"

	"github.com/arnoac/equiforge/chainhash"
	"github.com/arnoac/equiforge/wire"
)

// Base units. 1 EQF = 10^8 base units, per spec §3.
const BaseUnit = 100000000

const (
	// MaxMoney is the maximum number of base units that can ever exist,
	// per spec §6.
	MaxMoney = 42000000 * BaseUnit

	// MinFee is the minimum non-coinbase transaction fee, in base units,
	// per spec §6.
	MinFee = 1000

	// MaxBlockSize is the maximum canonical encoded block size, in bytes,
	// per spec §6.
	MaxBlockSize = 4 * 1024 * 1024

	// CoinbaseMaturity is the minimum depth before a coinbase output is
	// spendable, per spec §6.
	CoinbaseMaturity = 100

	// MaxMinerTagBytes bounds the coinbase input's miner tag payload, per
	// spec §6.
	MaxMinerTagBytes = wire.MaxMinerTagBytes

	// SubsidyHalvingInterval is the number of blocks between subsidy
	// halvings, per spec §6.
	SubsidyHalvingInterval = 2103840

	// InitialSubsidy is the block reward at height 0, in base units
	// (50 EQF), per spec §4.2.
	InitialSubsidy = 50 * BaseUnit

	// TargetBlockTimeSeconds is the LWMA target solve time T, per spec
	// §4.4.
	TargetBlockTimeSeconds = 90

	// LwmaWindowSize is the number of headers the LWMA controller
	// considers, per spec §4.4.
	LwmaWindowSize = 60

	// MaxFutureDrift is how far into the future a header timestamp may
	// be, per spec §4.2.
	MaxFutureDrift = 2 * time.Hour

	// MedianTimeBlocks is the number of preceding on-branch headers used
	// to compute the past median time, per spec §4.2.
	MedianTimeBlocks = 11

	// MinDifficultyBits and MaxDifficultyBits bound the LWMA controller's
	// output, per spec §4.4.
	MinDifficultyBits = 1
	MaxDifficultyBits = 240

	// CommunityFundShareNum/Den express the 5% community-fund split
	// fraction named in spec §4.2/§9, applied to the subsidy only.
	CommunityFundShareNum = 5
	CommunityFundShareDen = 100

	// DefaultMaxSideChains is the MaxSideChains value every shipped
	// network carries.
	DefaultMaxSideChains = 16
)

// Params holds every network-specific consensus constant and the genesis
// block. It is constructed once at process startup (mainnet, testnet,
// regtest, or simnet) and threaded by reference through every component;
// no component mutates it and no component holds a package-global copy.
type Params struct {
	// Name is the human readable identifier of the network (e.g. "mainnet").
	Name string

	// NetworkMagic is a per-network identifier distinct on every shipped
	// network. Addresses are distinguished by AddressPrefix instead.
	NetworkMagic uint32

	// AddressPrefix is the single version byte prepended before Base58Check
	// encoding a pubkey_hash into an address, per spec §6.
	AddressPrefix byte

	// GenesisBlock is the network's genesis block.
	GenesisBlock wire.Block

	// GenesisDifficultyBits is the difficulty_bits the genesis header
	// carries and the value used before any LWMA window exists.
	GenesisDifficultyBits uint16

	// CommunityFundPubKeyHash is the reserved pubkey_hash that receives
	// the optional 5% community-fund coinbase split, per spec §4.2/§9.
	CommunityFundPubKeyHash [wire.PubKeyHashSize]byte

	// CommunityFundActive enables the optional community-fund coinbase
	// split. Disabled by default, resolving the §9 open question: an
	// implementer SHOULD make the split an opt-in consensus rule.
	CommunityFundActive bool

	// CommunityFundHeight is the height at which the split activates,
	// when CommunityFundActive is true.
	CommunityFundHeight uint32

	// MaxSideChains is the network's configured cap on competing
	// low-work branches. The side-chain store does not read it: side-chain
	// blocks are never evicted.
	MaxSideChains int
}

// Subsidy computes subsidy(h) = 50 EQF >> (h / SubsidyHalvingInterval),
// floored to zero once the shift consumes all bits, per spec §4.2.
func Subsidy(height uint32) uint64 {
	halvings := height / SubsidyHalvingInterval
	if halvings >= 64 {
		return 0
	}
	return InitialSubsidy >> halvings
}

// GenesisHash returns the block hash of the network's genesis block.
func (p *Params) GenesisHash() chainhash.Hash {
	return p.GenesisBlock.Header.BlockHash()
}
