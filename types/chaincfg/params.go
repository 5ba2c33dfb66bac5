// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the network parameters the validator, retarget,
// and builder components read: proof-of-work limits, retarget timing, the
// testnet minimum-difficulty exception, and the AuxPoW alt-chain
// identification fields.
package chaincfg

import (
	"math/big"
	"time"
)

var bigOne = big.NewInt(1)

// Params defines a network by its consensus-relevant parameters. Anything
// that is not binding on validation (peer ports, DNS seeds, address
// version bytes) is intentionally left out: those belong to the networking
// and wallet layers.
type Params struct {
	// Name is the human-readable network identifier, used only in log
	// lines and error messages.
	Name string

	// PowLimit is the highest proof of work value a block can have for
	// this network expressed as a uint256 (it is the inverse of the
	// lowest possible difficulty).
	PowLimit *big.Int

	// PowLimitBits is the highest proof of work value a block can have for
	// this network expressed in compact form.
	PowLimitBits uint32

	// TargetTimespan is the desired amount of time that should elapse
	// before the proof-of-work difficulty is retargeted.
	TargetTimespan time.Duration

	// TargetTimePerBlock is the desired amount of time to generate each
	// block.
	TargetTimePerBlock time.Duration

	// RetargetAdjustmentFactor is the adjustment factor used to limit the
	// minimum and maximum amount of adjustment that can occur between
	// difficulty retargets.
	RetargetAdjustmentFactor int64

	// ReduceMinDifficulty enables the testnet minimum-difficulty rule in
	// which the difficulty can be reset to the minimum for a single block
	// after no block has been mined for a time.
	ReduceMinDifficulty bool

	// MinDiffReductionTime is the amount of time after which the minimum
	// difficulty rule can be applied when ReduceMinDifficulty is true. It
	// is ignored in all other cases.
	MinDiffReductionTime time.Duration

	// FullRetargetStart is the height at which the off-by-one correction
	// in the retarget anchor lookup begins to apply. Below this height,
	// the anchor block is `height - interval + 1`; at or above it, one
	// additional block of look-back is subtracted.
	FullRetargetStart int32

	// AltChain marks this network as running AuxPoW-eligible alt-chain
	// rules: the AuxPoW flag bit in a header's version field only has
	// meaning when this is set.
	AltChain bool

	// AuxPowFlag is the bit mask within a block's version field that
	// signals the presence of an AuxPoW substructure.
	AuxPowFlag uint32

	// AuxPowChainID is this chain's registered identifier, expected in the
	// high 16 bits of an AuxPoW block's version field.
	AuxPowChainID uint32

	// StrictAuxPow, when true, treats a mismatch between an AuxPoW block's
	// claimed parent hash and the parent header's own computed hash as
	// fatal instead of merely logged. See DESIGN.md for the rationale:
	// the reference implementation treats this as non-fatal, and this
	// module preserves that leniency by default.
	StrictAuxPow bool
}

// BlocksPerRetarget returns the number of blocks between difficulty
// retargets, i.e. TargetTimespan / TargetTimePerBlock.
func (p *Params) BlocksPerRetarget() int32 {
	return int32(p.TargetTimespan / p.TargetTimePerBlock)
}

// MinRetargetTimespan is the minimum amount of time the actual timespan for
// a given retarget interval can be in order to prevent overly violent
// difficulty swings.
func (p *Params) MinRetargetTimespan() int64 {
	return int64(p.TargetTimespan/time.Second) / p.RetargetAdjustmentFactor
}

// MaxRetargetTimespan is the maximum amount of time the actual timespan for
// a given retarget interval can be in order to prevent overly violent
// difficulty swings.
func (p *Params) MaxRetargetTimespan() int64 {
	return int64(p.TargetTimespan/time.Second) * p.RetargetAdjustmentFactor
}

// MainNetParams defines the network parameters for the main network, using
// the canonical Bitcoin mainnet retarget constants.
var MainNetParams = Params{
	Name: "mainnet",

	PowLimit:     new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne),
	PowLimitBits: 0x1d00ffff,

	TargetTimespan:           time.Hour * 24 * 14, // 14 days
	TargetTimePerBlock:       time.Minute * 10,
	RetargetAdjustmentFactor: 4, // 25% less, 400% more

	ReduceMinDifficulty:  false,
	MinDiffReductionTime: 0,

	FullRetargetStart: 19200,

	AltChain:      true,
	AuxPowFlag:    1 << 8,
	AuxPowChainID: 1,
	StrictAuxPow:  false,
}

// TestNetParams defines the network parameters for the test network, which
// additionally enables the minimum-difficulty exception.
var TestNetParams = Params{
	Name: "testnet",

	PowLimit:     new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne),
	PowLimitBits: 0x1d00ffff,

	TargetTimespan:           time.Hour * 24 * 14,
	TargetTimePerBlock:       time.Minute * 10,
	RetargetAdjustmentFactor: 4,

	ReduceMinDifficulty:  true,
	MinDiffReductionTime: time.Minute * 20,

	// The corrected retarget anchor applies from genesis on testnet; see
	// FullRetargetStart's doc comment for the off-by-one it governs.
	FullRetargetStart: 0,

	AltChain:      true,
	AuxPowFlag:    1 << 8,
	AuxPowChainID: 1,
	StrictAuxPow:  false,
}

// COIN is the number of base units in one whole coin.
const COIN = 100000000

// SubsidyHalvingInterval is the number of blocks after which the block
// subsidy is halved.
const SubsidyHalvingInterval = 210000

// BaseSubsidy is the block subsidy before any halving is applied.
const BaseSubsidy = 50 * COIN
