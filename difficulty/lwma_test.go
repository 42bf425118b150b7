// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package difficulty

import (
	"testing"

	"github.com/arnoac/equiforge/chaincfg"
	"github.com/arnoac/equiforge/wire"
)

func headersAtTarget(count int, startBits uint16) []wire.BlockHeader {
	headers := make([]wire.BlockHeader, count)
	ts := uint32(1_700_000_000)
	for i := range headers {
		headers[i] = wire.BlockHeader{
			Timestamp:      ts,
			DifficultyBits: startBits,
		}
		ts += chaincfg.TargetBlockTimeSeconds
	}
	return headers
}

func TestNextBitsStableAtTargetSolveTime(t *testing.T) {
	headers := headersAtTarget(chaincfg.LwmaWindowSize+1, 20)
	got := NextBits(headers)
	if got < 19 || got > 21 {
		t.Fatalf("expected bits to stay near 20 when solving exactly at target, got %d", got)
	}
}

func TestNextBitsDecreasesWhenSolvingSlowly(t *testing.T) {
	// Per spec §8's difficulty bomb resistance scenario: feeding
	// consecutive blocks solved at 10x the target time must decrease
	// bits, bounded by the ±0.5-bit-per-block clamp (so the
	// total drop over a window can never exceed one bit per block).
	const startBits = 40
	ancestors := []wire.BlockHeader{{Timestamp: 1_700_000_000, DifficultyBits: startBits}}

	for i := 0; i < chaincfg.LwmaWindowSize; i++ {
		next := NextBits(ancestors)
		ancestors = append(ancestors, wire.BlockHeader{
			Timestamp:      ancestors[len(ancestors)-1].Timestamp + chaincfg.TargetBlockTimeSeconds*10,
			DifficultyBits: next,
		})
	}

	finalBits := ancestors[len(ancestors)-1].DifficultyBits
	if finalBits >= startBits {
		t.Fatalf("expected bits to decrease over %d slow blocks, started at %d ended at %d", chaincfg.LwmaWindowSize, startBits, finalBits)
	}

	drop := int(startBits) - int(finalBits)
	if drop > chaincfg.LwmaWindowSize {
		t.Fatalf("clamp bounds the per-block move to 1 bit, so a %d-block window can drop at most %d bits; got %d", chaincfg.LwmaWindowSize, chaincfg.LwmaWindowSize, drop)
	}
}

func TestNextBitsClampBoundsSingleBlockMove(t *testing.T) {
	// Once the window is full (no warmup damping), an extreme solve time
	// must move bits by at most 1 in either direction.
	ancestors := headersAtTarget(chaincfg.LwmaWindowSize+1, 40)
	ancestors[len(ancestors)-1].Timestamp = ancestors[len(ancestors)-2].Timestamp + chaincfg.TargetBlockTimeSeconds*1000

	got := NextBits(ancestors)
	if diff := int(40) - int(got); diff < 0 || diff > 1 {
		t.Fatalf("expected at most a 1-bit move, got bits %d (diff %d)", got, diff)
	}
}

func TestNextBitsClampsToHalfBitPerBlock(t *testing.T) {
	headers := headersAtTarget(2, 20)
	headers[1].Timestamp = headers[0].Timestamp + chaincfg.TargetBlockTimeSeconds*1000

	got := NextBits(headers)
	// With only one interval in the window (warmup), the clamp plus the
	// N/60 scaling down to 2/60 must keep the single-block move tiny.
	if got > 20 {
		t.Fatalf("single-block adjustment should not increase bits, got %d", got)
	}
}

func TestNextBitsSingleAncestorReturnsItsOwnBits(t *testing.T) {
	headers := headersAtTarget(1, 24)
	if got := NextBits(headers); got != 24 {
		t.Fatalf("with only the parent known, expected its own bits 24, got %d", got)
	}
}

func TestNextBitsRespectsBounds(t *testing.T) {
	headers := headersAtTarget(chaincfg.LwmaWindowSize+1, chaincfg.MinDifficultyBits)
	ts := headers[0].Timestamp
	for i := range headers {
		headers[i].Timestamp = ts
		ts += chaincfg.TargetBlockTimeSeconds * 100
	}
	if got := NextBits(headers); got < chaincfg.MinDifficultyBits {
		t.Fatalf("bits must never fall below MinDifficultyBits, got %d", got)
	}

	headers = headersAtTarget(chaincfg.LwmaWindowSize+1, chaincfg.MaxDifficultyBits)
	for i := range headers {
		headers[i].Timestamp = uint32(i) // solved nearly instantly
	}
	if got := NextBits(headers); got > chaincfg.MaxDifficultyBits {
		t.Fatalf("bits must never exceed MaxDifficultyBits, got %d", got)
	}
}
