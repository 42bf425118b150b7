// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage defines the persistent-store interface EquiForge
// consumes from an external collaborator, per spec §6, plus two concrete
// implementations: memstore (in-memory, for tests) and leveldbstore
// (github.com/syndtr/goleveldb-backed, for a running node).
package storage

import "errors"

// ErrNotFound is returned by Get when key is not present.
var ErrNotFound = errors.New("storage: key not found")

// KVPair is a single key/value pair, used by batch writes.
type KVPair struct {
	Key   []byte
	Value []byte
}

// Store is the persistent key/value store EquiForge requires from an
// external collaborator, per spec §6: atomic batched writes, point reads,
// and prefix iteration.
type Store interface {
	// Get returns the value for key, or ErrNotFound if it is absent.
	Get(key []byte) ([]byte, error)

	// BatchWrite atomically applies pairs (upserts) and deletes in a
	// single batch.
	BatchWrite(pairs []KVPair, deletes [][]byte) error

	// Iter calls fn for every key with the given prefix, in key order,
	// until fn returns false or every matching key has been visited.
	Iter(prefix []byte, fn func(key, value []byte) bool) error

	// Close releases any underlying resources.
	Close() error
}
