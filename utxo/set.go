// Copyright (c) 2018 The kaspanet developers
// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package utxo

import (
	"sync"

	"github.com/arnoac/equiforge/wire"
)

// Set is the content-addressed outpoint -> Entry mapping required by spec
// §4.3. It is the single writer of record for the active chain's unspent
// outputs; all mutation flows through Commit, which applies a Delta
// atomically under the Set's own lock.
type Set struct {
	mu      sync.RWMutex
	entries map[wire.OutPoint]Entry
}

// NewSet returns an empty UTXO set.
func NewSet() *Set {
	return &Set{entries: make(map[wire.OutPoint]Entry)}
}

// Get satisfies the Viewer interface, looking up the entry for outpoint.
func (s *Set) Get(outpoint wire.OutPoint) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[outpoint]
	return e, ok
}

// Len returns the number of unspent outputs currently tracked.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Snapshot returns a read-only overlay view of the set suitable for
// layering in-block spends during validation without mutating the base
// set, per spec §4.3's snapshot operation.
func (s *Set) Snapshot() *Overlay {
	return NewOverlay(s)
}

// Commit applies delta to the set atomically: every removal first, then
// every addition, matching the order an inverse Delta must undo. Callers
// hold the chain state's single exclusive lock around block acceptance,
// so Commit itself only needs to protect concurrent readers (RPC,
// template building) taking a Get or Snapshot mid-mutation.
func (s *Set) Commit(d *Delta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range d.toRemove {
		delete(s.entries, r.outpoint)
	}
	for _, a := range d.toAdd {
		s.entries[a.outpoint] = a.entry
	}
}

// Reverse applies delta's inverse to the set: every addition it made is
// removed, and every entry it removed is restored. Used when disconnecting
// a block during reorg.
func (s *Set) Reverse(d *Delta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range d.toAdd {
		delete(s.entries, a.outpoint)
	}
	for _, r := range d.toRemove {
		s.entries[r.outpoint] = r.entry
	}
}
