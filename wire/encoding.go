// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the canonical on-disk and wire serialization for
// EquiForge transactions, block headers, and blocks, per spec §6.
package wire

import (
	"encoding/binary"
	"errors"
	"io"
)

// ErrOversizeByteString is returned when a length-prefixed byte string
// exceeds the sanity bound enforced during decoding.
var ErrOversizeByteString = errors.New("wire: oversize byte string")

// maxByteStringSize bounds length-prefixed reads so a corrupt or malicious
// length field cannot force an enormous allocation.
const maxByteStringSize = 32 * 1024 * 1024

// writeUint32 writes a little-endian uint32.
func writeUint32(w io.Writer, val uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], val)
	_, err := w.Write(buf[:])
	return err
}

// readUint32 reads a little-endian uint32.
func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// writeUint64 writes a little-endian uint64.
func writeUint64(w io.Writer, val uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], val)
	_, err := w.Write(buf[:])
	return err
}

// readUint64 reads a little-endian uint64.
func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// writeUint16 writes a little-endian uint16.
func writeUint16(w io.Writer, val uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], val)
	_, err := w.Write(buf[:])
	return err
}

// readUint16 reads a little-endian uint16.
func readUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// WriteVarInt writes a variable length integer using bitcoin-style varint
// compact encoding, used for the transaction count prefixing a block's
// transaction list.
func WriteVarInt(w io.Writer, val uint64) error {
	switch {
	case val < 0xfd:
		_, err := w.Write([]byte{byte(val)})
		return err
	case val <= 0xffff:
		if _, err := w.Write([]byte{0xfd}); err != nil {
			return err
		}
		return writeUint16(w, uint16(val))
	case val <= 0xffffffff:
		if _, err := w.Write([]byte{0xfe}); err != nil {
			return err
		}
		return writeUint32(w, uint32(val))
	default:
		if _, err := w.Write([]byte{0xff}); err != nil {
			return err
		}
		return writeUint64(w, val)
	}
}

// ReadVarInt reads a variable length integer as written by WriteVarInt.
func ReadVarInt(r io.Reader) (uint64, error) {
	var prefix [1]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return 0, err
	}
	switch prefix[0] {
	case 0xfd:
		v, err := readUint16(r)
		return uint64(v), err
	case 0xfe:
		v, err := readUint32(r)
		return uint64(v), err
	case 0xff:
		return readUint64(r)
	default:
		return uint64(prefix[0]), nil
	}
}

// WriteVarBytes writes a u32 length-prefixed byte string, the canonical
// variable-length encoding named in spec §6.
func WriteVarBytes(w io.Writer, b []byte) error {
	if err := writeUint32(w, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// ReadVarBytes reads a u32 length-prefixed byte string as written by
// WriteVarBytes.
func ReadVarBytes(r io.Reader) ([]byte, error) {
	length, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if length > maxByteStringSize {
		return nil, ErrOversizeByteString
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
