// Copyright (c) 2018 The kaspanet developers
// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package utxo

import "github.com/arnoac/equiforge/wire"

type outpointEntry struct {
	outpoint wire.OutPoint
	entry    Entry
}

// Delta is the ordered list of additions and removals captured while
// validating one block, per spec §4.3. It is applied atomically to a Set
// on block acceptance (Set.Commit) and its inverse is applied on
// disconnection during reorg (Set.Reverse).
type Delta struct {
	toAdd    []outpointEntry
	toRemove []outpointEntry
}

// NewDelta returns an empty Delta ready to accumulate the spends and
// creations of one block.
func NewDelta() *Delta {
	return &Delta{}
}

// Spend records that outpoint (with the given prior entry) is consumed by
// this block, per the reverse order required to restore it.
func (d *Delta) Spend(outpoint wire.OutPoint, entry Entry) {
	d.toRemove = append(d.toRemove, outpointEntry{outpoint, entry})
}

// Create records that outpoint now holds entry as a freshly produced
// output of this block.
func (d *Delta) Create(outpoint wire.OutPoint, entry Entry) {
	d.toAdd = append(d.toAdd, outpointEntry{outpoint, entry})
}

// Added returns the outpoints this delta creates, for callers (e.g.
// Overlay.Get) that need to check freshly created outputs without a full
// Set lookup.
func (d *Delta) Added() map[wire.OutPoint]Entry {
	out := make(map[wire.OutPoint]Entry, len(d.toAdd))
	for _, a := range d.toAdd {
		out[a.outpoint] = a.entry
	}
	return out
}

// Removed reports whether outpoint was spent by this delta.
func (d *Delta) Removed(outpoint wire.OutPoint) bool {
	for _, r := range d.toRemove {
		if r.outpoint == outpoint {
			return true
		}
	}
	return false
}
