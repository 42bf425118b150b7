package wire

import "io"

// PubKeyHashSize is the size, in bytes, of the address digest referenced by
// an output, per spec §9's resolved open question.
const PubKeyHashSize = 20

// TxOut defines an EquiForge transaction output, per spec §3.
type TxOut struct {
	Value      uint64
	PubKeyHash [PubKeyHashSize]byte
}

func (t *TxOut) encode(w io.Writer) error {
	if err := writeUint64(w, t.Value); err != nil {
		return err
	}
	_, err := w.Write(t.PubKeyHash[:])
	return err
}

func (t *TxOut) decode(r io.Reader) error {
	val, err := readUint64(r)
	if err != nil {
		return err
	}
	t.Value = val
	_, err = io.ReadFull(r, t.PubKeyHash[:])
	return err
}
