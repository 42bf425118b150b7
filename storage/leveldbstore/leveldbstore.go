// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package leveldbstore is a storage.Store backed by
// github.com/syndtr/goleveldb, the durable store a running node wires
// behind the chain state's persistence boundary (spec §6's consumed
// Persistent store interface).
package leveldbstore

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/arnoac/equiforge/storage"
)

// Store wraps a single *leveldb.DB.
type Store struct {
	db *leveldb.DB
}

// Open opens (creating if necessary) a LevelDB database at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(key []byte) ([]byte, error) {
	v, err := s.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, storage.ErrNotFound
	}
	return v, err
}

func (s *Store) BatchWrite(pairs []storage.KVPair, deletes [][]byte) error {
	batch := new(leveldb.Batch)
	for _, del := range deletes {
		batch.Delete(del)
	}
	for _, p := range pairs {
		batch.Put(p.Key, p.Value)
	}
	return s.db.Write(batch, nil)
}

func (s *Store) Iter(prefix []byte, fn func(key, value []byte) bool) error {
	it := s.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer it.Release()
	for it.Next() {
		if !fn(it.Key(), it.Value()) {
			break
		}
	}
	return it.Error()
}

func (s *Store) Close() error {
	return s.db.Close()
}
