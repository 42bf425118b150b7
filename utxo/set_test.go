// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package utxo

import (
	"testing"

	"github.com/arnoac/equiforge/wire"
)

func op(i uint32) wire.OutPoint {
	return wire.OutPoint{Index: i}
}

func TestCommitThenReverseRestoresSet(t *testing.T) {
	s := NewSet()
	existing := op(1)
	s.Commit(deltaWithCreate(existing, Entry{Value: 5}))

	d := NewDelta()
	d.Spend(existing, Entry{Value: 5})
	created := op(2)
	d.Create(created, Entry{Value: 3})
	s.Commit(d)

	if _, ok := s.Get(existing); ok {
		t.Fatal("spent outpoint should no longer be in the set")
	}
	if e, ok := s.Get(created); !ok || e.Value != 3 {
		t.Fatal("created outpoint should be in the set with the committed value")
	}

	s.Reverse(d)

	if _, ok := s.Get(created); ok {
		t.Fatal("reversing should remove the created outpoint")
	}
	if e, ok := s.Get(existing); !ok || e.Value != 5 {
		t.Fatal("reversing should restore the spent outpoint")
	}
}

func TestOverlayLayersDeltaOverBase(t *testing.T) {
	s := NewSet()
	base := op(1)
	s.Commit(deltaWithCreate(base, Entry{Value: 10}))

	ov := s.Snapshot()
	if _, ok := ov.Get(base); !ok {
		t.Fatal("overlay should see base set entries")
	}

	ov.Spend(base, Entry{Value: 10})
	if _, ok := ov.Get(base); ok {
		t.Fatal("overlay should hide outpoints spent within its own delta")
	}

	newOut := op(2)
	ov.Create(newOut, Entry{Value: 4})
	if e, ok := ov.Get(newOut); !ok || e.Value != 4 {
		t.Fatal("overlay should see outpoints created within its own delta")
	}

	// The base set itself must be untouched until Commit.
	if _, ok := s.Get(base); !ok {
		t.Fatal("base set should be untouched by an uncommitted overlay")
	}
}

func deltaWithCreate(o wire.OutPoint, e Entry) *Delta {
	d := NewDelta()
	d.Create(o, e)
	return d
}
