package wire

import (
	"bytes"
	"errors"
	"io"

	"github.com/arnoac/equiforge/chainhash"
)

// ErrNoTxInputs and friends are the standalone decode-time structural
// errors raised while parsing a transaction from the wire.
var (
	ErrNoTxInputs  = errors.New("wire: transaction has no inputs")
	ErrNoTxOutputs = errors.New("wire: transaction has no outputs")
)

// Transaction is an EquiForge transaction as defined in spec §3.
type Transaction struct {
	Version  uint32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// IsCoinbase reports whether tx has the single-input coinbase shape. Being
// the first transaction of a block is a block-level property, checked
// separately in the validation pipeline (spec §3).
func (tx *Transaction) IsCoinbase() bool {
	return len(tx.TxIn) == 1 && tx.TxIn[0].IsCoinbaseInput()
}

// Encode writes the canonical serialization of the transaction to w.
func (tx *Transaction) Encode(w io.Writer) error {
	return tx.encode(w, false)
}

// EncodeForSigning writes the canonical encoding used as the Ed25519
// signing digest input: identical to Encode except every input's signature
// field is zeroed, per spec §4.2.
func (tx *Transaction) EncodeForSigning(w io.Writer) error {
	return tx.encode(w, true)
}

func (tx *Transaction) encode(w io.Writer, forSigning bool) error {
	if err := writeUint32(w, tx.Version); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(tx.TxIn))); err != nil {
		return err
	}
	for _, in := range tx.TxIn {
		var err error
		if forSigning {
			err = in.encodeForSigning(w)
		} else {
			err = in.encode(w)
		}
		if err != nil {
			return err
		}
	}
	if err := WriteVarInt(w, uint64(len(tx.TxOut))); err != nil {
		return err
	}
	for _, out := range tx.TxOut {
		if err := out.encode(w); err != nil {
			return err
		}
	}
	return writeUint32(w, tx.LockTime)
}

// Decode reads the canonical serialization of a transaction from r.
func (tx *Transaction) Decode(r io.Reader) error {
	version, err := readUint32(r)
	if err != nil {
		return err
	}
	tx.Version = version

	inCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	tx.TxIn = make([]*TxIn, inCount)
	for i := range tx.TxIn {
		in := new(TxIn)
		if err := in.decode(r); err != nil {
			return err
		}
		tx.TxIn[i] = in
	}

	outCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	tx.TxOut = make([]*TxOut, outCount)
	for i := range tx.TxOut {
		out := new(TxOut)
		if err := out.decode(r); err != nil {
			return err
		}
		tx.TxOut[i] = out
	}

	lockTime, err := readUint32(r)
	if err != nil {
		return err
	}
	tx.LockTime = lockTime

	if len(tx.TxIn) == 0 {
		return ErrNoTxInputs
	}
	if len(tx.TxOut) == 0 {
		return ErrNoTxOutputs
	}
	return nil
}

// SerializeSize returns the number of bytes the canonical encoding of tx
// occupies, used for the MAX_BLOCK_SIZE check in spec §4.2.
func (tx *Transaction) SerializeSize() int {
	var buf bytes.Buffer
	// Encode errors are impossible against a bytes.Buffer.
	_ = tx.Encode(&buf)
	return buf.Len()
}

// TxHash computes the txid: double SHA-256 of the canonical encoding, per
// spec §3.
func (tx *Transaction) TxHash() chainhash.Hash {
	var buf bytes.Buffer
	_ = tx.Encode(&buf)
	return chainhash.HashDFunc(buf.Bytes())
}

// SigningDigest computes the digest that each input's Ed25519 signature is
// produced over: the double SHA-256 of the canonical encoding with every
// input's signature zeroed, per spec §4.2.
func (tx *Transaction) SigningDigest() chainhash.Hash {
	var buf bytes.Buffer
	_ = tx.EncodeForSigning(&buf)
	return chainhash.HashDFunc(buf.Bytes())
}

// OutputValueSum returns the sum of all output values.
func (tx *Transaction) OutputValueSum() uint64 {
	var sum uint64
	for _, out := range tx.TxOut {
		sum += out.Value
	}
	return sum
}
