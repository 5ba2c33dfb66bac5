// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pow implements the compact-difficulty ("bits") codec, the 256-bit
// work metric, and the big-endian hash comparison used to check
// proof-of-work against a target.
package pow

import "math/big"

var (
	bigOne = big.NewInt(1)

	// oneLsh256 is 1 shifted left 256 bits, i.e. 2^256. It is used when
	// computing the work metric of a given target.
	oneLsh256 = new(big.Int).Lsh(bigOne, 256)
)

// CompactToBig converts a compact representation of a whole number N to a
// big.Int, negative when the sign bit is set. The representation is similar to IEEE754
// floating point numbers.
//
// Like IEEE754 floating point, there are three basic components: the sign,
// the exponent, and the mantissa. They are broken out as follows:
//
//   - the most significant 8 bits represent the unsigned base 256 exponent
//   - bit 23 (the 24th bit) represents the sign bit
//   - the least significant 23 bits represent the mantissa
//
//	-------------------------------------------------
//	|   Exponent     |    Sign    |    Mantissa     |
//	-------------------------------------------------
//	| 8 bits [31-24] | 1 bit [23] | 23 bits [22-00] |
//	-------------------------------------------------
//
// The formula to calculate N is:
//
//	N = (-1^sign) * mantissa * 256^(exponent-3)
//
// This compact form is only used in bitcoin to encode unsigned 256-bit
// numbers which represent difficulty targets, thus there really is not a
// need for a sign bit, but it is implemented here to avoid potential
// confusion for those reading the code, as well as to stay consistent with
// the reference implementation.
func CompactToBig(compact uint32) *big.Int {
	// Extract the mantissa, sign bit, and exponent.
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := uint(compact >> 24)

	// Since the base for the exponent is 256, the exponent can be treated
	// as the number of bytes to represent the full 256-bit number. So,
	// treat the exponent as the number of bytes and shift the mantissa
	// right or left accordingly. This is equivalent to:
	// N = mantissa * 256^(exponent-3)
	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(exponent-3))
	}

	// Make it negative if the sign bit is set.
	if isNegative {
		bn = bn.Neg(bn)
	}

	return bn
}

// CompactToBigSigned is the signed-aware counterpart to CompactToBig: it
// decodes the sign bit the way CompactToBig already does, but is named
// separately so that retarget arithmetic, which may transiently produce a
// negative intermediate, uses this entry point explicitly rather than
// relying on an implicit sign convention shared with the unsigned-context
// decoder below.
func CompactToBigSigned(compact uint32) *big.Int {
	return CompactToBig(compact)
}

// CompactToBigUnsigned decodes compact the same way CompactToBig does but
// is used in contexts (PoW target comparison) where a negative result
// would indicate a malformed "bits" value. Callers that need to detect that
// case can check big.Int.Sign() on the result.
func CompactToBigUnsigned(compact uint32) *big.Int {
	return CompactToBig(compact)
}

// BigToCompact converts a whole number N to a compact representation using
// an unsigned 32-bit number. The compact representation only provides 23
// bits of precision, so values larger than (2^23 - 1) only encode the
// most significant digits of the number. See CompactToBig for details.
func BigToCompact(n *big.Int) uint32 {
	// No need to do any work if it's zero.
	if n.Sign() == 0 {
		return 0
	}

	// Since the base for the exponent is 256, the exponent can be treated
	// as the number of bytes. So, shift the number right or left
	// accordingly. This is equivalent to:
	// mantissa = mantissa / 256^(exponent-3)
	var mantissa uint32
	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		// Use a copy to avoid modifying the caller's original number.
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	// When the mantissa already has the sign bit set, the number is too
	// large to fit into the available 23-bits, so divide the number by 256
	// and increment the exponent accordingly.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	// Pack the exponent, sign bit, and mantissa into an unsigned 32-bit
	// int and return it.
	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}
	return compact
}

// HashToBig converts an internal-byte-order 32-byte hash into a big.Int
// suitable for performing PoW comparisons. The byte order is reversed
// during conversion so the result's numeric ordering matches the value's
// big-endian interpretation.
func HashToBig(buf [32]byte) *big.Int {
	// A Hash is in little endian, but the big package wants the bytes in
	// big endian, so reverse them.
	blen := len(buf)
	for i := 0; i < blen/2; i++ {
		buf[i], buf[blen-1-i] = buf[blen-1-i], buf[i]
	}

	return new(big.Int).SetBytes(buf[:])
}

// CalcWork calculates a work value from difficulty bits. Bitcoin increases
// the difficulty for generating a block by decreasing the value which the
// generated hash must be less than. This difficulty target is stored in
// each block header using a compact representation as described in the
// documentation for CompactToBig. The main chain is selected by choosing
// the chain that has the most proof of work (highest difficulty).
//
// Since a lower target difficulty value equates to higher actual
// difficulty, the work value which will be accumulated must be the inverse
// of the difficulty. Also, in order to avoid potential division by zero and
// really small floating point numbers, the result adds 1 to the denominator
// and multiplies the numerator by 2^256.
func CalcWork(bits uint32) *big.Int {
	// Return a work value of zero if the passed difficulty bits represent a
	// negative number. Note this should not happen in practice with valid
	// blocks, but an invalid block could trigger it.
	difficultyNum := CompactToBig(bits)
	if difficultyNum.Sign() <= 0 {
		return big.NewInt(0)
	}

	// (1 << 256) / (difficultyNum + 1)
	denominator := new(big.Int).Add(difficultyNum, bigOne)
	return new(big.Int).Div(oneLsh256, denominator)
}
