// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package memstore is an in-memory storage.Store with no durability, used
// in tests.
package memstore

import (
	"bytes"
	"sort"
	"sync"

	"github.com/arnoac/equiforge/storage"
)

// Store is a sorted in-memory key/value store guarded by a single mutex;
// BatchWrite is atomic because the whole operation runs under that lock.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[string(key)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *Store) BatchWrite(pairs []storage.KVPair, deletes [][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, del := range deletes {
		delete(s.data, string(del))
	}
	for _, p := range pairs {
		v := make([]byte, len(p.Value))
		copy(v, p.Value)
		s.data[string(p.Key)] = v
	}
	return nil
}

func (s *Store) Iter(prefix []byte, fn func(key, value []byte) bool) error {
	s.mu.RLock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if bytes.HasPrefix([]byte(k), prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	snapshot := make(map[string][]byte, len(keys))
	for _, k := range keys {
		snapshot[k] = s.data[k]
	}
	s.mu.RUnlock()

	for _, k := range keys {
		if !fn([]byte(k), snapshot[k]) {
			break
		}
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}
