// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package equihashx implements EquiHash-X, EquiForge's memory-hard
// proof-of-work function, per spec §4.1.
//
// The function runs three phases over a 4 MiB scratchpad: FILL seeds the
// scratchpad from a Blake3 hash of the header; MIX performs 64 rounds of
// data-dependent read/write against the scratchpad, folding in SHA-256 and
// Blake3 periodically to deny any single-pipeline ASIC a win; SQUEEZE
// compresses the final state with double SHA-256. The data-dependent
// read and write indices are what make the function memory-hard: every
// round stalls on a pseudo-random scratchpad access instead of a
// sequential, prefetchable one.
package equihashx

import (
	"crypto/sha256"
	"encoding/binary"

	"lukechampine.com/blake3"
)

const (
	// ScratchpadSize is the size, in bytes, of the EquiHash-X working
	// memory region: 4 MiB, per spec §4.1.
	ScratchpadSize = 4 * 1024 * 1024

	// ChunkSize is the size, in bytes, of one FILL chunk.
	ChunkSize = 64

	// NumChunks is the number of ChunkSize chunks in the scratchpad.
	NumChunks = ScratchpadSize / ChunkSize

	// MixRounds is the number of MIX rounds run per solve/verify attempt.
	MixRounds = 64

	// stateLimbs is the number of 64-bit limbs in the mixing state σ.
	stateLimbs = 8

	// stateSize is the size in bytes of the mixing state σ (8 × u64).
	stateSize = stateLimbs * 8

	// DigestSize is the size, in bytes, of the final EquiHash-X digest.
	DigestSize = 32
)

// Scratchpad is the 4 MiB working memory region used by one FILL+MIX+SQUEEZE
// attempt. Per spec §4.6/§5, each mining thread owns its own Scratchpad
// exclusively and scratchpads are never shared between threads.
type Scratchpad struct {
	mem [ScratchpadSize]byte
}

// NewScratchpad allocates a new, zeroed scratchpad. Callers that mine
// across many nonces should allocate one Scratchpad per thread and reuse it
// across attempts via Digest rather than allocating per-attempt.
func NewScratchpad() *Scratchpad {
	return new(Scratchpad)
}

// chunk returns the i'th 64-byte chunk of the scratchpad as a slice backed
// by the scratchpad's own memory.
func (s *Scratchpad) chunk(i int) []byte {
	return s.mem[i*ChunkSize : (i+1)*ChunkSize]
}

// fill performs the FILL phase: seeds the scratchpad from Blake3(header).
//
//	a = Blake3(seed ∥ LE32(i))
//	b = Blake3(a ∥ LE32(i))
//	S[i] = a ∥ b
func (s *Scratchpad) fill(header []byte) {
	seedArr := blake3.Sum256(header)
	seed := seedArr[:]

	var idxBuf [4]byte
	abuf := make([]byte, 0, len(seed)+4)
	for i := 0; i < NumChunks; i++ {
		binary.LittleEndian.PutUint32(idxBuf[:], uint32(i))

		abuf = abuf[:0]
		abuf = append(abuf, seed...)
		abuf = append(abuf, idxBuf[:]...)
		a := blake3.Sum256(abuf)

		bbuf := make([]byte, 0, len(a)+4)
		bbuf = append(bbuf, a[:]...)
		bbuf = append(bbuf, idxBuf[:]...)
		b := blake3.Sum256(bbuf)

		dst := s.chunk(i)
		copy(dst[:32], a[:])
		copy(dst[32:], b[:])
	}
}

// loadState reads 8 little-endian u64 limbs from the scratchpad at the
// given chunk index.
func (s *Scratchpad) loadState(idx int) [stateLimbs]uint64 {
	var out [stateLimbs]uint64
	chunk := s.chunk(idx)
	for j := 0; j < stateLimbs; j++ {
		out[j] = binary.LittleEndian.Uint64(chunk[j*8 : j*8+8])
	}
	return out
}

// storeState writes 8 little-endian u64 limbs into the scratchpad at the
// given chunk index.
func (s *Scratchpad) storeState(idx int, state [stateLimbs]uint64) {
	chunk := s.chunk(idx)
	for j := 0; j < stateLimbs; j++ {
		binary.LittleEndian.PutUint64(chunk[j*8:j*8+8], state[j])
	}
}

func rotl64(x uint64, k uint) uint64 {
	k &= 63
	return (x << k) | (x >> (64 - k))
}

// sigmaToBytes serializes σ to a 64-byte little-endian buffer.
func sigmaToBytes(sigma [stateLimbs]uint64) [stateSize]byte {
	var buf [stateSize]byte
	for j := 0; j < stateLimbs; j++ {
		binary.LittleEndian.PutUint64(buf[j*8:j*8+8], sigma[j])
	}
	return buf
}

// sha256Expand64 expands σ into a fresh 64-byte state via two domain-
// separated SHA-256 invocations, per spec §4.1 step MIX.3.
func sha256Expand64(sigma [stateLimbs]uint64) [stateLimbs]uint64 {
	buf := sigmaToBytes(sigma)

	var out [stateSize]byte
	h0 := sha256.New()
	h0.Write([]byte{0x00})
	h0.Write(buf[:])
	copy(out[:32], h0.Sum(nil))

	h1 := sha256.New()
	h1.Write([]byte{0x01})
	h1.Write(buf[:])
	copy(out[32:], h1.Sum(nil))

	var next [stateLimbs]uint64
	for j := 0; j < stateLimbs; j++ {
		next[j] = binary.LittleEndian.Uint64(out[j*8 : j*8+8])
	}
	return next
}

// blake3Expand64 replaces σ with a 64-byte Blake3 output, per spec §4.1
// step MIX.4.
func blake3Expand64(sigma [stateLimbs]uint64) [stateLimbs]uint64 {
	buf := sigmaToBytes(sigma)

	h := blake3.New(stateSize, nil)
	h.Write(buf[:])
	out := h.Sum(nil)

	var next [stateLimbs]uint64
	for j := 0; j < stateLimbs; j++ {
		next[j] = binary.LittleEndian.Uint64(out[j*8 : j*8+8])
	}
	return next
}

// mix performs the MIX phase: 64 rounds of data-dependent scratchpad
// read/mutate/write, per spec §4.1.
func (s *Scratchpad) mix() [stateLimbs]uint64 {
	sigma := s.loadState(0)

	for r := 0; r < MixRounds; r++ {
		readIdx := int((sigma[0] + sigma[r%stateLimbs]) % uint64(NumChunks))

		load := s.loadState(readIdx)
		for j := 0; j < stateLimbs; j++ {
			sigma[j] ^= load[j]
			sigma[j] = rotl64(sigma[j], uint((r+j)%64)) + sigma[(j+1)%stateLimbs]
		}

		if r%8 == 0 {
			sigma = sha256Expand64(sigma)
		}
		if r%16 == 0 {
			sigma = blake3Expand64(sigma)
		}

		writeIdx := int((sigma[1] * sigma[3]) % uint64(NumChunks))
		s.storeState(writeIdx, sigma)
	}

	return sigma
}

// squeeze performs the SQUEEZE phase: digest = SHA-256(SHA-256(σ)).
func squeeze(sigma [stateLimbs]uint64) [DigestSize]byte {
	buf := sigmaToBytes(sigma)
	first := sha256.Sum256(buf[:])
	return sha256.Sum256(first[:])
}

// Digest runs FILL, MIX, and SQUEEZE against the given canonical 82-byte
// header encoding (with the candidate nonce already written into it) and
// returns the 32-byte EquiHash-X digest. s is reused in place; callers
// solving across many nonces should call Digest repeatedly on the same
// Scratchpad.
func (s *Scratchpad) Digest(header []byte) [DigestSize]byte {
	s.fill(header)
	sigma := s.mix()
	return squeeze(sigma)
}

// LeadingZeroBits counts the number of leading zero bits in digest,
// MSB-first, per spec §4.1's acceptance rule.
func LeadingZeroBits(digest [DigestSize]byte) int {
	for i, b := range digest {
		if b == 0 {
			continue
		}
		for j := 0; j < 8; j++ {
			if b&(0x80>>uint(j)) != 0 {
				return i*8 + j
			}
		}
	}
	return DigestSize * 8
}

// MeetsTarget reports whether digest's leading zero bit count meets or
// exceeds the required difficulty_bits, per spec §4.1.
func MeetsTarget(digest [DigestSize]byte, difficultyBits uint16) bool {
	return LeadingZeroBits(digest) >= int(difficultyBits)
}

// Verify runs EquiHash-X against header (which must already have its
// candidate nonce encoded) using a scratch scratchpad, and reports whether
// the resulting digest meets difficultyBits. Verifiers allocate their own
// Scratchpad per call; this is the same cost as a single solve attempt,
// per spec §4.1's verification-cost note.
func Verify(header []byte, difficultyBits uint16) bool {
	s := NewScratchpad()
	digest := s.Digest(header)
	return MeetsTarget(digest, difficultyBits)
}
