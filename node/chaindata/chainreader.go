// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaindata

import (
	"context"

	"github.com/pkg/errors"
	"gitlab.com/auxchain/auxchaind/types/wire"
)

// ErrBlockNotFound is returned by ChainReader implementations when no block
// exists at the requested height.
var ErrBlockNotFound = errors.New("block not found")

// ChainReader is the narrow lookup contract the consensus core consumes from
// the block store. The store itself (index layout, database backend, caches)
// is an external collaborator; retarget, median-time, and block-preparation
// code only ever reach it through these three calls.
//
// Every lookup takes a context so that hosts running lookups against a real
// database can bound or cancel them; the core itself performs lookups
// sequentially and observes each result before depending on it.
type ChainReader interface {
	// BlockByHeight returns the block at the given height on the best
	// chain, or an error wrapping ErrBlockNotFound when the height is
	// beyond the tip or otherwise unindexed.
	BlockByHeight(ctx context.Context, height int32) (*wire.Block, error)

	// BlocksByHeights returns the blocks at all the given heights. A
	// single missing height fails the whole batch: partial results are
	// never returned.
	BlocksByHeights(ctx context.Context, heights []int32) ([]*wire.Block, error)

	// TopBlock returns the current best-chain tip.
	TopBlock(ctx context.Context) (*wire.Block, error)
}

// FetchBlocksByHeights is a helper for ChainReader implementations that only
// provide single lookups: it realizes the batch contract on top of
// BlockByHeight, failing atomically on the first missing entry.
func FetchBlocksByHeights(ctx context.Context, reader ChainReader, heights []int32) ([]*wire.Block, error) {
	blocks := make([]*wire.Block, len(heights))
	for i, h := range heights {
		block, err := reader.BlockByHeight(ctx, h)
		if err != nil {
			return nil, errors.Wrapf(err, "batch lookup failed at height %d", h)
		}
		blocks[i] = block
	}
	return blocks, nil
}
