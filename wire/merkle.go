package wire

import "github.com/arnoac/equiforge/chainhash"

// BuildMerkleRoot computes the standard pairwise double-SHA256 Merkle root
// reduction over the given leaf hashes, duplicating the odd last element at
// each level, per spec §3.
func BuildMerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	if len(leaves) == 0 {
		return chainhash.Hash{}
	}
	level := make([]chainhash.Hash, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]chainhash.Hash, len(level)/2)
		for i := range next {
			var buf [2 * chainhash.HashSize]byte
			copy(buf[:chainhash.HashSize], level[2*i][:])
			copy(buf[chainhash.HashSize:], level[2*i+1][:])
			next[i] = chainhash.HashDFunc(buf[:])
		}
		level = next
	}
	return level[0]
}

// TxMerkleRoot computes the Merkle root over a transaction list's txids.
func TxMerkleRoot(txs []*Transaction) chainhash.Hash {
	leaves := make([]chainhash.Hash, len(txs))
	for i, tx := range txs {
		leaves[i] = tx.TxHash()
	}
	return BuildMerkleRoot(leaves)
}
