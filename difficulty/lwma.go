// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package difficulty implements the LWMA (linear weighted moving average)
// difficulty controller of spec §4.4: given the parent block and the last
// up-to-60 headers, it returns the difficulty_bits the child header must
// carry.
//
// All arithmetic is fixed-point over math/big.Rat, never float64 — per
// spec §9's design note, floating point is a portability hazard here:
// every implementation must agree on the new bits value bit-for-bit.
package difficulty

import (
	"math/big"

	"github.com/arnoac/equiforge/chaincfg"
	"github.com/arnoac/equiforge/wire"
)

// fracBits is the number of fractional bits used by the internal
// fixed-point representation of a bit adjustment (Q16.16, per spec §9's
// suggestion).
const fracBits = 16

// oneBitFixed is 1.0 in the Q16.16 fixed-point representation.
const oneBitFixed = int64(1) << fracBits

// halfBitFixed is 0.5 in the Q16.16 fixed-point representation: the clamp
// LWMA applies to Δ every block.
const halfBitFixed = oneBitFixed / 2

// NextBits computes the difficulty_bits a child of ancestors' last header
// must carry. ancestors must be ordered oldest-first and end at the
// parent block; it should contain up to LwmaWindowSize+1 headers (fewer
// only during the first LwmaWindowSize blocks of the chain, the warmup
// period).
func NextBits(ancestors []wire.BlockHeader) uint16 {
	parent := ancestors[len(ancestors)-1]
	n := len(ancestors) - 1
	if n <= 0 {
		return parent.DifficultyBits
	}
	if n > chaincfg.LwmaWindowSize {
		n = chaincfg.LwmaWindowSize
		ancestors = ancestors[len(ancestors)-n-1:]
	}

	sumWT := new(big.Int)
	sumW := new(big.Int)
	maxSolveTime := big.NewInt(6 * chaincfg.TargetBlockTimeSeconds)
	one := big.NewInt(1)

	for i := 1; i <= n; i++ {
		dt := int64(ancestors[i].Timestamp) - int64(ancestors[i-1].Timestamp)
		t := big.NewInt(dt)
		if t.Cmp(one) < 0 {
			t = one
		}
		if t.Cmp(maxSolveTime) > 0 {
			t = maxSolveTime
		}

		w := big.NewInt(int64(i))
		wt := new(big.Int).Mul(w, t)

		sumWT.Add(sumWT, wt)
		sumW.Add(sumW, w)
	}

	// Δ = log2(T / avg_weighted_time) = log2(T·sumW / sumWT).
	target := new(big.Rat).SetFrac(
		new(big.Int).Mul(big.NewInt(chaincfg.TargetBlockTimeSeconds), sumW),
		sumWT,
	)
	delta := log2FixedQ(target, fracBits)

	if delta > halfBitFixed {
		delta = halfBitFixed
	}
	if delta < -halfBitFixed {
		delta = -halfBitFixed
	}

	// Warmup: scale Δ by N/60 while the chain is younger than one full
	// window, per spec §4.4. N counts the headers given (n intervals plus
	// the parent), i.e. the parent's height + 1 when they reach genesis.
	if n < chaincfg.LwmaWindowSize {
		delta = delta * int64(n+1) / int64(chaincfg.LwmaWindowSize)
	}

	// Round the adjustment itself, not the combined parent+Δ value: the
	// parent's bits are already an integer, so rounding the sum would let
	// an exact ±0.5 Δ cancel out against round-half-up's tie-break
	// instead of moving the header value, defeating the clamp.
	newBits := int64(parent.DifficultyBits) + roundFixedQ(delta, fracBits)
	if newBits < chaincfg.MinDifficultyBits {
		newBits = chaincfg.MinDifficultyBits
	}
	if newBits > chaincfg.MaxDifficultyBits {
		newBits = chaincfg.MaxDifficultyBits
	}

	return uint16(newBits)
}

// roundFixedQ rounds a Q(fracBits) fixed-point value to the nearest
// integer, rounding halves away from zero.
func roundFixedQ(x int64, fracBits int) int64 {
	half := int64(1) << uint(fracBits-1)
	if x >= 0 {
		return (x + half) >> uint(fracBits)
	}
	return -((-x + half) >> uint(fracBits))
}

// log2FixedQ computes log2(r) as a signed Q(fracBits) fixed-point value
// using only big.Rat comparisons, multiplications, and divisions by two —
// the classic shift-and-add binary logarithm algorithm, reproduced here
// over rationals instead of floats so every implementation agrees
// bit-for-bit.
func log2FixedQ(r *big.Rat, fracBits int) int64 {
	if r.Sign() <= 0 {
		return -halfBitFixed * 4 // arbitrarily large negative; callers clamp
	}

	one := big.NewRat(1, 1)
	two := big.NewRat(2, 1)
	x := new(big.Rat).Set(r)

	intPart := int64(0)
	for x.Cmp(two) >= 0 {
		x.Quo(x, two)
		intPart++
	}
	for x.Cmp(one) < 0 {
		x.Mul(x, two)
		intPart--
	}

	result := intPart << uint(fracBits)
	for i := 0; i < fracBits; i++ {
		x.Mul(x, x)
		if x.Cmp(two) >= 0 {
			x.Quo(x, two)
			result |= int64(1) << uint(fracBits-1-i)
		}
	}
	return result
}
