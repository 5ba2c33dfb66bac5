// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mining prepares candidate blocks for an external miner: coinbase
// construction, timestamp selection against the median-time-past floor, and
// the next-difficulty lookup, plus the thin drive loop that hands the
// assembled header and target to a Miner and latches the solved hash.
package mining

import (
	"context"
	"math/big"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/auxchain/auxchaind/node/blockchain"
	"gitlab.com/auxchain/auxchaind/node/chaindata"
	"gitlab.com/auxchain/auxchaind/types/chainhash"
	"gitlab.com/auxchain/auxchaind/types/pow"
	"gitlab.com/auxchain/auxchaind/types/wire"
)

// Miner is the external proof-of-work search contract: given an assembled
// header and its decoded target, return a nonce whose header hash meets the
// target. Implementations must honor ctx cancellation and return promptly;
// the generator imposes no timeout of its own.
type Miner interface {
	Solve(ctx context.Context, header *wire.BlockHeader, target *big.Int) (uint32, error)
}

// BlockGenerator assembles candidate blocks on top of the current chain tip.
type BlockGenerator struct {
	chain *blockchain.Chain
	now   chaindata.TimeSource
}

// NewBlockGenerator returns a generator building on the given chain. A nil
// timeSource defaults to the wall clock.
func NewBlockGenerator(chain *blockchain.Chain, timeSource chaindata.TimeSource) *BlockGenerator {
	if timeSource == nil {
		timeSource = time.Now
	}
	return &BlockGenerator{chain: chain, now: timeSource}
}

// CreateCoinbaseTx returns a coinbase transaction paying value to the
// provided beneficiary script. The single input spends the reserved
// all-zero/max-index outpoint with an empty signature script and the maximum
// sequence, the shape the validator's coinbase classification requires.
func CreateCoinbaseTx(value int64, beneficiary []byte) *wire.MsgTx {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{
		// Coinbase transactions have no inputs, so previous outpoint is
		// zero hash and max index.
		PreviousOutPoint: wire.OutPoint{Hash: chainhash.Hash{}, Index: 0xffffffff},
		SignatureScript:  nil,
		Sequence:         0xffffffff,
	})
	tx.AddTxOut(&wire.TxOut{Value: value, PkScript: beneficiary})
	return tx
}

// PrepareNextBlock assembles an unsolved candidate block extending the
// current chain tip: a fresh coinbase paying the height's subsidy to
// beneficiary, a timestamp, and the difficulty the retarget rules require
// of the next block. When at is the zero time the timestamp is the wall
// clock, raised to one second past the median time past if it lags behind
// that; a non-zero at is used as given, with no median-time floor.
//
// The returned block's nonce is zero and its hash is not yet latched; it is
// mutable until Solve supplies a nonce.
func (g *BlockGenerator) PrepareNextBlock(ctx context.Context, beneficiary []byte, at time.Time) (*wire.Block, []wire.Transaction, error) {
	tip, err := g.chain.Reader().TopBlock(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to fetch chain tip")
	}

	medianTime, err := g.chain.CalcPastMedianTime(ctx, tip.Height())
	if err != nil {
		return nil, nil, err
	}

	blockTime := at
	if blockTime.IsZero() {
		blockTime = g.now()
		if floor := medianTime.Add(time.Second); blockTime.Before(floor) {
			blockTime = floor
		}
	}
	// The header stores whole seconds.
	blockTime = time.Unix(blockTime.Unix(), 0)

	requiredBits, err := g.chain.CalcNextRequiredDifficulty(ctx, tip, blockTime)
	if err != nil {
		return nil, nil, err
	}

	nextHeight := tip.Height() + 1
	coinbase := CreateCoinbaseTx(chaindata.CalcBlockSubsidy(nextHeight), beneficiary)
	txs := []wire.Transaction{coinbase}

	block := wire.NewBlock(wire.BlockHeader{
		Version:    1,
		PrevBlock:  tip.GetHash(),
		MerkleRoot: chaindata.CalcMerkleRoot(txs),
		Timestamp:  blockTime,
		Bits:       requiredBits,
	})
	block.Txs = txs
	block.AttachTo(tip, pow.CalcWork(requiredBits))

	log.Debug().
		Int32("height", nextHeight).
		Uint32("bits", requiredBits).
		Time("timestamp", blockTime).
		Msg("prepared candidate block")

	return block, txs, nil
}

// Solve hands block's header and decoded target to miner and, on success,
// stores the returned nonce and latches the block's hash.
func (g *BlockGenerator) Solve(ctx context.Context, block *wire.Block, miner Miner) error {
	target := pow.CompactToBigUnsigned(block.Header.Bits)
	nonce, err := miner.Solve(ctx, &block.Header, target)
	if err != nil {
		return errors.Wrap(err, "miner failed to solve block")
	}

	block.Header.Nonce = nonce
	hash := block.GetHash()

	log.Debug().
		Uint32("nonce", nonce).
		Str("hash", hash.String()).
		Msg("block solved")

	return nil
}

// MineNextBlock composes PrepareNextBlock and Solve: it assembles a
// candidate on the current tip, drives the miner to a solution, and returns
// the solved block with its transactions and latched hash.
func (g *BlockGenerator) MineNextBlock(ctx context.Context, miner Miner, beneficiary []byte) (*wire.Block, []wire.Transaction, error) {
	block, txs, err := g.PrepareNextBlock(ctx, beneficiary, time.Time{})
	if err != nil {
		return nil, nil, err
	}
	if err := g.Solve(ctx, block, miner); err != nil {
		return nil, nil, err
	}
	return block, txs, nil
}
