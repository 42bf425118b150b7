package wire

import (
	"io"

	"github.com/arnoac/equiforge/chainhash"
)

// OutPoint defines an EquiForge data type that is used to track previous
// transaction outputs, per spec §3.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPoint returns a new EquiForge transaction outpoint point with the
// provided hash and index.
func NewOutPoint(hash *chainhash.Hash, index uint32) *OutPoint {
	return &OutPoint{
		Hash:  *hash,
		Index: index,
	}
}

// IsSentinel reports whether the outpoint is the coinbase sentinel
// (zero-hash, 0xFFFFFFFF) named in spec §3.
func (o OutPoint) IsSentinel() bool {
	return o.Index == sentinelIndex && o.Hash == (chainhash.Hash{})
}

// sentinelIndex is the coinbase's sentinel vout value.
const sentinelIndex = 0xFFFFFFFF

// SentinelOutPoint returns the coinbase sentinel outpoint.
func SentinelOutPoint() OutPoint {
	return OutPoint{Hash: chainhash.Hash{}, Index: sentinelIndex}
}

func (o *OutPoint) encode(w io.Writer) error {
	if _, err := w.Write(o.Hash[:]); err != nil {
		return err
	}
	return writeUint32(w, o.Index)
}

func (o *OutPoint) decode(r io.Reader) error {
	if _, err := io.ReadFull(r, o.Hash[:]); err != nil {
		return err
	}
	idx, err := readUint32(r)
	if err != nil {
		return err
	}
	o.Index = idx
	return nil
}
