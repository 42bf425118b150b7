package wire

import (
	"bytes"
	"io"

	"github.com/arnoac/equiforge/chainhash"
)

// Block is header + ordered transactions, per spec §3. The first
// transaction must be the coinbase.
type Block struct {
	Header       BlockHeader
	Transactions []*Transaction
}

// Encode writes the canonical block serialization: fixed 82-byte header,
// varint transaction count, concatenated transactions, per spec §6.
func (b *Block) Encode(w io.Writer) error {
	if err := b.Header.Encode(w); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(b.Transactions))); err != nil {
		return err
	}
	for _, tx := range b.Transactions {
		if err := tx.Encode(w); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads a block as written by Encode.
func (b *Block) Decode(r io.Reader) error {
	if err := b.Header.Decode(r); err != nil {
		return err
	}
	txCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	b.Transactions = make([]*Transaction, txCount)
	for i := range b.Transactions {
		tx := new(Transaction)
		if err := tx.Decode(r); err != nil {
			return err
		}
		b.Transactions[i] = tx
	}
	return nil
}

// SerializeSize returns the canonical encoded size in bytes, used for the
// MAX_BLOCK_SIZE check in spec §4.2.
func (b *Block) SerializeSize() int {
	var buf bytes.Buffer
	_ = b.Encode(&buf)
	return buf.Len()
}

// Bytes returns the canonical encoding of the block.
func (b *Block) Bytes() []byte {
	var buf bytes.Buffer
	_ = b.Encode(&buf)
	return buf.Bytes()
}

// Coinbase returns the block's first transaction, or nil if the block has
// no transactions.
func (b *Block) Coinbase() *Transaction {
	if len(b.Transactions) == 0 {
		return nil
	}
	return b.Transactions[0]
}

// MerkleRoot recomputes the Merkle root over the block's transactions.
func (b *Block) MerkleRoot() chainhash.Hash {
	return TxMerkleRoot(b.Transactions)
}
