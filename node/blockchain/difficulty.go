// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/auxchain/auxchaind/node/chaindata"
	"gitlab.com/auxchain/auxchaind/types/pow"
	"gitlab.com/auxchain/auxchaind/types/wire"
)

// findPrevTestNetDifficulty returns the difficulty of the most recent block,
// starting at startBlock itself, which did not have the special testnet minimum
// difficulty rule applied. The walk is iterative and bounded by the retarget
// interval: it stops at the first retarget boundary regardless of bits.
func (c *Chain) findPrevTestNetDifficulty(ctx context.Context, startBlock *wire.Block) (uint32, error) {
	// Search backwards through the chain for the last block without
	// the special rule applied.
	iterBlock := startBlock
	for iterBlock != nil && iterBlock.Height()%c.blocksPerRetarget != 0 &&
		iterBlock.Header.Bits == c.chainParams.PowLimitBits {

		if iterBlock.Height() == 0 {
			iterBlock = nil
			break
		}
		prev, err := c.reader.BlockByHeight(ctx, iterBlock.Height()-1)
		if err != nil {
			return 0, errors.Wrap(err, "testnet difficulty walk-back failed")
		}
		iterBlock = prev
	}

	// Return the found difficulty or the minimum difficulty if no
	// appropriate block was found.
	lastBits := c.chainParams.PowLimitBits
	if iterBlock != nil {
		lastBits = iterBlock.Header.Bits
	}
	return lastBits, nil
}

// retargetAnchorHeight returns the height of the block whose timestamp
// anchors the actual-timespan measurement for a retarget ending at
// lastHeight. The base anchor spans interval-1 gaps; chains past
// FullRetargetStart look back one further block so the measured window
// covers a full interval of gaps.
func (c *Chain) retargetAnchorHeight(lastHeight int32) int32 {
	anchor := lastHeight - c.blocksPerRetarget + 1
	if lastHeight >= c.chainParams.FullRetargetStart {
		anchor--
	}
	if anchor < 0 {
		anchor = 0
	}
	return anchor
}

// CalcNextRequiredDifficulty calculates the required difficulty for the
// block after lastBlock based on the difficulty retarget rules:
//
//   - the block after genesis inherits genesis' bits
//   - off the retarget boundary, the previous difficulty carries over,
//     except on networks with the testnet minimum-difficulty rule, where a
//     slow block may drop to the proof-of-work limit and a fast one reuses
//     the last non-minimum difficulty
//   - on the boundary, the difficulty scales by the actual time the last
//     interval took, clamped to a quarter/quadruple of the target timespan
//     and floored at the proof-of-work limit
//
// newBlockTime is the timestamp the prospective next block will carry; it
// only participates in the testnet rule.
func (c *Chain) CalcNextRequiredDifficulty(ctx context.Context, lastBlock *wire.Block, newBlockTime time.Time) (uint32, error) {
	// Genesis block.
	if lastBlock == nil {
		return c.chainParams.PowLimitBits, nil
	}
	if lastBlock.Height() == 0 {
		return lastBlock.Header.Bits, nil
	}

	// Return the previous block's difficulty requirements if this block
	// is not at a difficulty retarget interval.
	if (lastBlock.Height()+1)%c.blocksPerRetarget != 0 {
		// For networks that support it, allow special reduction of the
		// required difficulty once too much time has elapsed without
		// mining a block.
		if c.chainParams.ReduceMinDifficulty {
			// Return minimum difficulty when more than the desired
			// amount of time has elapsed without mining a block.
			reductionTime := int64(c.chainParams.MinDiffReductionTime / time.Second)
			allowMinTime := lastBlock.Header.Timestamp.Unix() + reductionTime
			if newBlockTime.Unix() > allowMinTime {
				return c.chainParams.PowLimitBits, nil
			}

			// The block was mined within the desired timeframe, so
			// return the difficulty for the last block which did
			// not have the special minimum difficulty rule applied.
			return c.findPrevTestNetDifficulty(ctx, lastBlock)
		}

		// For the main network (or any unrecognized networks), simply
		// return the previous block's difficulty requirements.
		return lastBlock.Header.Bits, nil
	}

	// Get the block node at the previous retarget (targetTimespan days
	// worth of blocks).
	firstBlock, err := c.reader.BlockByHeight(ctx, c.retargetAnchorHeight(lastBlock.Height()))
	if err != nil {
		return 0, errors.Wrap(err, "unable to obtain previous retarget block")
	}

	// Limit the amount of adjustment that can occur to the previous
	// difficulty.
	actualTimespan := lastBlock.Header.Timestamp.Unix() - firstBlock.Header.Timestamp.Unix()
	adjustedTimespan := actualTimespan
	if actualTimespan < c.minRetargetTimespan {
		adjustedTimespan = c.minRetargetTimespan
	} else if actualTimespan > c.maxRetargetTimespan {
		adjustedTimespan = c.maxRetargetTimespan
	}

	// Calculate new target difficulty as:
	//  currentDifficulty * (adjustedTimespan / targetTimespan)
	// The result uses integer division which means it will be slightly
	// rounded down.
	oldTarget := pow.CompactToBigSigned(lastBlock.Header.Bits)
	newTarget := new(big.Int).Mul(oldTarget, big.NewInt(adjustedTimespan))
	targetTimeSpan := int64(c.chainParams.TargetTimespan / time.Second)
	newTarget.Div(newTarget, big.NewInt(targetTimeSpan))

	// Limit new value to the proof of work limit.
	if newTarget.Cmp(c.chainParams.PowLimit) > 0 {
		newTarget.Set(c.chainParams.PowLimit)
	}

	// Log new target difficulty and return it.  The new target logging is
	// intentionally converting the bits back to a number instead of using
	// newTarget since conversion to the compact representation loses
	// precision.
	newTargetBits := pow.BigToCompact(newTarget)
	log.Debug().Msgf("Difficulty retarget at block height %d", lastBlock.Height()+1)
	log.Debug().Msgf("Old target %08x (%064x)", lastBlock.Header.Bits, oldTarget)
	log.Debug().Msgf("New target %08x (%064x)", newTargetBits, pow.CompactToBig(newTargetBits))
	log.Debug().Msgf("Actual timespan %v, adjusted timespan %v, target timespan %v",
		time.Duration(actualTimespan)*time.Second,
		time.Duration(adjustedTimespan)*time.Second,
		c.chainParams.TargetTimespan)

	return newTargetBits, nil
}

// VerifyChild checks that child is a valid chain extension of parent under
// the chain-context rules, in order, each fatal:
//
//  1. child's difficulty bits equal the retarget requirement after parent
//  2. child's timestamp is strictly after parent's median time past
//
// Stateless block validity (hash, proof of work, transactions) is the
// chaindata.BlockValidator's job and is not repeated here.
func (c *Chain) VerifyChild(ctx context.Context, parent, child *wire.Block) error {
	requiredBits, err := c.CalcNextRequiredDifficulty(ctx, parent, child.Header.Timestamp)
	if err != nil {
		return err
	}
	if child.Header.Bits != requiredBits {
		return chaindata.NewVerificationError(chaindata.ErrWrongDifficulty,
			fmt.Sprintf("block difficulty of %08x is not the expected value of %08x",
				child.Header.Bits, requiredBits))
	}

	medianTime, err := c.CalcPastMedianTime(ctx, parent.Height())
	if err != nil {
		return err
	}
	if !child.Header.Timestamp.After(medianTime) {
		return chaindata.NewVerificationError(chaindata.ErrTimestampTooEarly,
			fmt.Sprintf("block timestamp of %v is not after expected %v",
				child.Header.Timestamp, medianTime))
	}

	return nil
}
