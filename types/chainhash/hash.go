// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides abstracted hash functionality used throughout
// the consensus core: header identity, Merkle tree construction, and
// AuxPoW branch verification all operate on the Hash type defined here.
package chainhash

import (
	"encoding/hex"
	"fmt"

	sha256simd "github.com/minio/sha256-simd"
)

// HashSize is the number of bytes in a hash.
const HashSize = 32

// MaxHashStringSize is the maximum length of a Hash hash string.
const MaxHashStringSize = HashSize * 2

// ErrHashStrSize describes an error that indicates the caller specified a
// hash string that has too many characters.
var ErrHashStrSize = fmt.Errorf("max hash string length is %v bytes", MaxHashStringSize)

// Hash is used in several of the bitcoin messages and common structures. It
// typically represents the double sha256 of data.
//
// Hash fields are kept in the internal byte order they are produced by the
// hashing function: reversing them is required to get the big-endian,
// numeric-comparison order used for proof-of-work checks and for display.
type Hash [HashSize]byte

// ZeroHash is the zero value for a Hash and is defined as a package level
// variable to avoid needing to create a new instance every time a check is
// needed.
var ZeroHash = Hash{}

// String returns the Hash as the hexadecimal string of the byte-reversed
// hash, matching the convention used by bitcoin block and transaction
// hashes in RPC/JSON display contexts.
func (hash Hash) String() string {
	for i := 0; i < HashSize/2; i++ {
		hash[i], hash[HashSize-1-i] = hash[HashSize-1-i], hash[i]
	}
	return hex.EncodeToString(hash[:])
}

// CloneBytes returns a copy of the bytes which represent the hash as a byte
// slice.
func (hash *Hash) CloneBytes() []byte {
	newHash := make([]byte, HashSize)
	copy(newHash, hash[:])
	return newHash
}

// SetBytes sets the bytes which represent the hash. An error is returned if
// the number of bytes passed in is not HashSize.
func (hash *Hash) SetBytes(newHash []byte) error {
	nhlen := len(newHash)
	if nhlen != HashSize {
		return fmt.Errorf("invalid hash length of %v, want %v", nhlen, HashSize)
	}
	copy(hash[:], newHash)
	return nil
}

// IsEqual returns true if target is the same as hash.
func (hash *Hash) IsEqual(target *Hash) bool {
	if hash == nil && target == nil {
		return true
	}
	if hash == nil || target == nil {
		return false
	}
	return *hash == *target
}

// NewHash returns a new Hash from a byte slice. An error is returned if the
// number of bytes passed in is not HashSize.
func NewHash(newHash []byte) (*Hash, error) {
	var sh Hash
	err := sh.SetBytes(newHash)
	if err != nil {
		return nil, err
	}
	return &sh, err
}

// NewHashFromStr creates a Hash from a hash string. The string should be the
// hexadecimal string of a byte-reversed hash, but any missing characters
// result in zero padding at the end of the Hash.
func NewHashFromStr(hash string) (*Hash, error) {
	ret := new(Hash)
	err := Decode(ret, hash)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Decode decodes the byte-reversed hexadecimal string encoding of a Hash to
// a destination.
func Decode(dst *Hash, src string) error {
	if len(src) > MaxHashStringSize {
		return ErrHashStrSize
	}

	var srcBytes []byte
	if len(src)%2 == 0 {
		srcBytes = []byte(src)
	} else {
		srcBytes = make([]byte, 1+len(src))
		srcBytes[0] = '0'
		copy(srcBytes[1:], src)
	}

	var reversedHash Hash
	_, err := hex.Decode(reversedHash[HashSize-hex.DecodedLen(len(srcBytes)):], srcBytes)
	if err != nil {
		return err
	}

	for i, b := range reversedHash[:HashSize/2] {
		reversedHash[i], reversedHash[HashSize-1-i] = reversedHash[HashSize-1-i], b
	}
	*dst = reversedHash
	return nil
}

// HashB calculates the hash of the given data using the accelerated SHA-256
// implementation and returns it as a byte slice.
func HashB(b []byte) []byte {
	hash := sha256simd.Sum256(b)
	return hash[:]
}

// HashH calculates the hash of the given data using the accelerated SHA-256
// implementation and returns it as a Hash.
func HashH(b []byte) Hash {
	return sha256simd.Sum256(b)
}

// DoubleHashB calculates the double SHA-256 hash of the given data and
// returns it as a byte slice.
func DoubleHashB(b []byte) []byte {
	first := sha256simd.Sum256(b)
	second := sha256simd.Sum256(first[:])
	return second[:]
}

// DoubleHashH calculates the double SHA-256 hash of the given data and
// returns it as a Hash.
func DoubleHashH(b []byte) Hash {
	first := sha256simd.Sum256(b)
	return sha256simd.Sum256(first[:])
}
