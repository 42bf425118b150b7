// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package utxo

import "github.com/arnoac/equiforge/wire"

// Overlay is a read-only view of a base Set with an in-progress Delta
// layered on top, letting block validation check each transaction against
// "the earlier transactions of this block" (spec §4.2 check 8) without
// mutating the committed set until the whole block passes.
type Overlay struct {
	base  *Set
	delta *Delta
}

// NewOverlay returns an Overlay over base with an empty delta.
func NewOverlay(base *Set) *Overlay {
	return &Overlay{base: base, delta: NewDelta()}
}

// Get resolves outpoint, preferring entries the overlay's delta created,
// then falling back to the base set, and reporting absent if the delta
// has spent it.
func (o *Overlay) Get(outpoint wire.OutPoint) (Entry, bool) {
	if o.delta.Removed(outpoint) {
		return Entry{}, false
	}
	added := o.delta.Added()
	if e, ok := added[outpoint]; ok {
		return e, true
	}
	return o.base.Get(outpoint)
}

// Spend records outpoint as consumed within this overlay's delta, so
// later transactions in the same block see it as gone.
func (o *Overlay) Spend(outpoint wire.OutPoint, entry Entry) {
	o.delta.Spend(outpoint, entry)
}

// Spent reports whether outpoint has already been consumed by this
// overlay's own delta, distinct from Get's false meaning "absent from the
// base set or the delta" — callers that need to tell a double-spend
// within the same block apart from a genuinely unknown outpoint use this.
func (o *Overlay) Spent(outpoint wire.OutPoint) bool {
	return o.delta.Removed(outpoint)
}

// Create records outpoint as produced within this overlay's delta, so
// later transactions in the same block can spend it.
func (o *Overlay) Create(outpoint wire.OutPoint, entry Entry) {
	o.delta.Create(outpoint, entry)
}

// Delta returns the accumulated delta, ready for Set.Commit once the
// whole block has passed validation.
func (o *Overlay) Delta() *Delta {
	return o.delta
}
