package wire

import (
	"bytes"
	"io"

	"github.com/arnoac/equiforge/chainhash"
)

// HeaderSize is the exact size in bytes of the canonical header encoding,
// per spec §3: 4 + 32 + 32 + 4 + 2 + 8 = 82 bytes.
const HeaderSize = 4 + chainhash.HashSize + chainhash.HashSize + 4 + 2 + 8

// BlockHeader defines an EquiForge block header, per spec §3.
type BlockHeader struct {
	Version        uint32
	PrevHash       chainhash.Hash
	MerkleRoot     chainhash.Hash
	Timestamp      uint32
	DifficultyBits uint16
	Nonce          uint64
}

// Encode writes the canonical fixed 82-byte header encoding to w. The
// nonce is part of this encoding, matching the EquiHash-X input named in
// spec §4.1.
func (h *BlockHeader) Encode(w io.Writer) error {
	if err := writeUint32(w, h.Version); err != nil {
		return err
	}
	if _, err := w.Write(h.PrevHash[:]); err != nil {
		return err
	}
	if _, err := w.Write(h.MerkleRoot[:]); err != nil {
		return err
	}
	if err := writeUint32(w, h.Timestamp); err != nil {
		return err
	}
	if err := writeUint16(w, h.DifficultyBits); err != nil {
		return err
	}
	return writeUint64(w, h.Nonce)
}

// Decode reads the canonical fixed 82-byte header encoding from r.
func (h *BlockHeader) Decode(r io.Reader) error {
	var err error
	if h.Version, err = readUint32(r); err != nil {
		return err
	}
	if _, err = io.ReadFull(r, h.PrevHash[:]); err != nil {
		return err
	}
	if _, err = io.ReadFull(r, h.MerkleRoot[:]); err != nil {
		return err
	}
	if h.Timestamp, err = readUint32(r); err != nil {
		return err
	}
	if h.DifficultyBits, err = readUint16(r); err != nil {
		return err
	}
	if h.Nonce, err = readUint64(r); err != nil {
		return err
	}
	return nil
}

// Bytes returns the canonical 82-byte encoding of the header.
func (h *BlockHeader) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(HeaderSize)
	_ = h.Encode(&buf)
	return buf.Bytes()
}

// BlockHash computes the header hash: double SHA-256 of the canonical
// 82-byte encoding. Per spec §3, this is NOT the PoW result — it is the
// index/identity hash used to reference the block as a parent.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	return chainhash.HashDFunc(h.Bytes())
}
