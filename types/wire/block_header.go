// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire defines the wire-format block header, the minimal
// transaction contract consumed by the validator and Merkle engine, and
// the AuxPoW substructure (see auxpow.go).
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"gitlab.com/auxchain/auxchaind/types/chainhash"
)

// MaxBlockHeaderPayload is the number of bytes a block header occupies on
// the wire: four 32-bit fields plus two 32-byte hashes.
const MaxBlockHeaderPayload = 16 + (chainhash.HashSize * 2)

// BlockHeader defines information about a block and is used in both the
// primary chain's blocks and, recursively one level deep, as the parent
// header embedded in an AuxPow.
type BlockHeader struct {
	// Version is the block version; on AuxPoW-eligible alt chains, the
	// high 16 bits carry the registered chain id and AuxPowFlag marks
	// whether an AuxPow substructure accompanies this header.
	Version uint32

	// PrevBlock is the hash of the previous block header in the chain, in
	// internal (little-endian-rendered) byte order.
	PrevBlock chainhash.Hash

	// MerkleRoot is the Merkle tree reference to the hash of all
	// transactions for this block.
	MerkleRoot chainhash.Hash

	// Timestamp is the time the block was created, encoded on the wire as
	// a uint32 (seconds since the Unix epoch).
	Timestamp time.Time

	// Bits is the compact-encoded difficulty target for this block.
	Bits uint32

	// Nonce is the value miners vary to find a header hash that satisfies
	// the target.
	Nonce uint32
}

// NewBlockHeader returns a new BlockHeader using the provided version,
// previous block hash, Merkle root hash, difficulty bits, and nonce, with
// the timestamp defaulted to now.
func NewBlockHeader(version uint32, prevHash, merkleRootHash chainhash.Hash, bits, nonce uint32) *BlockHeader {
	return &BlockHeader{
		Version:    version,
		PrevBlock:  prevHash,
		MerkleRoot: merkleRootHash,
		Timestamp:  time.Unix(time.Now().Unix(), 0),
		Bits:       bits,
		Nonce:      nonce,
	}
}

// Serialize encodes the header to w as the exact 80-byte concatenation
// LE32(version) || prev_hash || merkle_root || LE32(timestamp) ||
// LE32(bits) || LE32(nonce).
func (h *BlockHeader) Serialize(w io.Writer) error {
	sec := uint32(h.Timestamp.Unix())
	return writeElements(w, h.Version, &h.PrevBlock, &h.MerkleRoot, sec, h.Bits, h.Nonce)
}

// Deserialize decodes a block header from r into the receiver.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	var sec uint32
	err := readElements(r, &h.Version, &h.PrevBlock, &h.MerkleRoot, &sec, &h.Bits, &h.Nonce)
	if err != nil {
		return err
	}
	h.Timestamp = time.Unix(int64(sec), 0)
	return nil
}

// Bytes returns the fixed 80-byte wire encoding of the header.
func (h *BlockHeader) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, MaxBlockHeaderPayload))
	// Serialize cannot fail writing into a bytes.Buffer.
	_ = h.Serialize(buf)
	return buf.Bytes()
}

// CalcHash computes the double SHA-256 of the 80-byte header, the block's
// identity hash.
func (h *BlockHeader) CalcHash() chainhash.Hash {
	return chainhash.DoubleHashH(h.Bytes())
}

// Copy creates a deep copy of a BlockHeader so that the original is not
// modified when the copy is manipulated.
func (h *BlockHeader) Copy() *BlockHeader {
	clone := *h
	return &clone
}

// writeElements writes each element using little-endian byte order for
// integers and raw bytes for hashes.
func writeElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		if err := writeElement(w, element); err != nil {
			return err
		}
	}
	return nil
}

func writeElement(w io.Writer, element interface{}) error {
	switch e := element.(type) {
	case uint32:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], e)
		_, err := w.Write(buf[:])
		return err
	case *chainhash.Hash:
		_, err := w.Write(e[:])
		return err
	default:
		return binary.Write(w, binary.LittleEndian, element)
	}
}

func readElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		if err := readElement(r, element); err != nil {
			return err
		}
	}
	return nil
}

func readElement(r io.Reader, element interface{}) error {
	switch e := element.(type) {
	case *uint32:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return err
		}
		*e = binary.LittleEndian.Uint32(buf[:])
		return nil
	case *chainhash.Hash:
		_, err := io.ReadFull(r, e[:])
		return err
	default:
		return binary.Read(r, binary.LittleEndian, element)
	}
}

// LE32 encodes v as 4 little-endian bytes, exposed for callers that embed
// raw header integers outside of Serialize (e.g. AuxPoW script scanning).
func LE32(v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return buf[:]
}

// ReadLE32 decodes 4 little-endian bytes from buf starting at offset.
func ReadLE32(buf []byte, offset int) (uint32, error) {
	if offset < 0 || offset+4 > len(buf) {
		return 0, fmt.Errorf("wire: LE32 read out of range at offset %d (len %d)", offset, len(buf))
	}
	return binary.LittleEndian.Uint32(buf[offset : offset+4]), nil
}
