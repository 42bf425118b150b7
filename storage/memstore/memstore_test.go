// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package memstore

import (
	"testing"

	"github.com/arnoac/equiforge/storage"
)

func TestBatchWriteThenGet(t *testing.T) {
	s := New()
	err := s.BatchWrite([]storage.KVPair{{Key: []byte("a"), Value: []byte("1")}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	v, err := s.Get([]byte("a"))
	if err != nil || string(v) != "1" {
		t.Fatalf("expected value 1, got %q err=%v", v, err)
	}
}

func TestGetMissingKeyReturnsErrNotFound(t *testing.T) {
	s := New()
	if _, err := s.Get([]byte("missing")); err != storage.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBatchWriteDeletesThenPuts(t *testing.T) {
	s := New()
	_ = s.BatchWrite([]storage.KVPair{{Key: []byte("a"), Value: []byte("1")}}, nil)
	_ = s.BatchWrite(nil, [][]byte{[]byte("a")})
	if _, err := s.Get([]byte("a")); err != storage.ErrNotFound {
		t.Fatal("expected key to be deleted")
	}
}

func TestIterVisitsKeysWithPrefixInOrder(t *testing.T) {
	s := New()
	_ = s.BatchWrite([]storage.KVPair{
		{Key: []byte("tx:b"), Value: []byte("2")},
		{Key: []byte("tx:a"), Value: []byte("1")},
		{Key: []byte("block:a"), Value: []byte("x")},
	}, nil)

	var keys []string
	_ = s.Iter([]byte("tx:"), func(key, value []byte) bool {
		keys = append(keys, string(key))
		return true
	})

	if len(keys) != 2 || keys[0] != "tx:a" || keys[1] != "tx:b" {
		t.Fatalf("expected [tx:a tx:b] in order, got %v", keys)
	}
}
