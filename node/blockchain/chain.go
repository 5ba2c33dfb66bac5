// Copyright (c) 2013-2018 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockchain implements the chain-context consensus rules: the
// difficulty retarget algorithm with its testnet minimum-difficulty
// exception, the median-time-past rule, and the ordered child-extension
// checks that tie the two together. Block lookups go through the narrow
// chaindata.ChainReader contract; the store behind it is an external
// collaborator.
package blockchain

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/auxchain/auxchaind/node/chaindata"
	"gitlab.com/auxchain/auxchaind/types/chaincfg"
)

// Chain evaluates the chain-context rules over blocks served by a
// ChainReader. It holds no mutable state of its own: two Chains over the
// same reader and params are interchangeable, and concurrent calls need no
// locks.
type Chain struct {
	reader      chaindata.ChainReader
	chainParams *chaincfg.Params

	// These fields are derived from the chain parameters at construction
	// so the hot retarget path does not recompute them.
	blocksPerRetarget   int32
	minRetargetTimespan int64
	maxRetargetTimespan int64
}

// NewChain returns a Chain bound to the given block reader and network
// parameters.
func NewChain(reader chaindata.ChainReader, chainParams *chaincfg.Params) *Chain {
	return &Chain{
		reader:      reader,
		chainParams: chainParams,

		blocksPerRetarget:   chainParams.BlocksPerRetarget(),
		minRetargetTimespan: chainParams.MinRetargetTimespan(),
		maxRetargetTimespan: chainParams.MaxRetargetTimespan(),
	}
}

// Params returns the network parameters this chain validates against.
func (c *Chain) Params() *chaincfg.Params {
	return c.chainParams
}

// Reader returns the underlying block lookup interface.
func (c *Chain) Reader() chaindata.ChainReader {
	return c.reader
}

// timeSorter implements sort.Interface to allow a slice of timestamps to
// be sorted.
type timeSorter []int64

// Len returns the number of timestamps in the slice.  It is part of the
// sort.Interface implementation.
func (s timeSorter) Len() int {
	return len(s)
}

// Swap swaps the timestamps at the passed indices.  It is part of the
// sort.Interface implementation.
func (s timeSorter) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// Less returns whether the timestamp with index i should sort before the
// timestamp with index j.  It is part of the sort.Interface implementation.
func (s timeSorter) Less(i, j int) bool {
	return s[i] < s[j]
}

// CalcPastMedianTime calculates the median time of the previous few blocks
// prior to, and including, the block at the given height. The block count
// consulted is MedianTimeBlocks, truncated near the start of the chain.
func (c *Chain) CalcPastMedianTime(ctx context.Context, height int32) (time.Time, error) {
	first := height - chaindata.MedianTimeBlocks + 1
	if first < 0 {
		first = 0
	}
	heights := make([]int32, 0, chaindata.MedianTimeBlocks)
	for h := first; h <= height; h++ {
		heights = append(heights, h)
	}

	blocks, err := c.reader.BlocksByHeights(ctx, heights)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "median time lookup failed")
	}

	timestamps := make([]int64, len(blocks))
	for i, block := range blocks {
		timestamps[i] = block.Header.Timestamp.Unix()
	}
	sort.Sort(timeSorter(timestamps))

	// NOTE: The consensus rules incorrectly calculate the median for even
	// numbers of blocks.  A true median averages the middle two elements
	// for a set with an even number of elements in it.   Since the constant
	// for the previous number of blocks to be used is odd, this is only an
	// issue for a few blocks near the beginning of the chain.  I suspect
	// this is an optimization even though the result is slightly wrong for
	// a few of the first blocks since after the first few blocks, there
	// will always be an odd number of blocks in the set per the constant.
	//
	// This code follows suit to ensure the same rules are used, however, be
	// aware that should the MedianTimeBlocks constant ever be changed to an
	// even number, this code will be wrong.
	medianTimestamp := timestamps[len(timestamps)/2]
	return time.Unix(medianTimestamp, 0), nil
}
