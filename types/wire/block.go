// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"math/big"

	"gitlab.com/auxchain/auxchaind/types/chainhash"
)

// Block is a full block: its header, its attachment point in the chain
// (height, cumulative work), its transactions, and an optional AuxPow
// substructure carrying a merge-mining proof. It is immutable after
// construction except for the lazily-latched hash cache and the chain
// attachment fields set by AttachTo.
type Block struct {
	Header BlockHeader

	// Txs is the ordered transaction sequence. It may be nil for a
	// header-only block (e.g. the parent header embedded in an AuxPow).
	Txs []Transaction

	// Aux carries the merge-mining proof when the alt-chain config and the
	// header's AuxPoW flag bit both require it. A non-nil Aux's own Parent
	// never itself carries an Aux: AuxPoW is exactly one level deep.
	Aux *AuxPow

	height    int32
	chainWork *big.Int
	hash      *chainhash.Hash
}

// NewBlock wraps a header into a Block with no chain attachment yet.
func NewBlock(header BlockHeader) *Block {
	return &Block{Header: header}
}

// Height returns the block's height in the chain it is attached to. It is
// meaningless (zero) until AttachTo has been called, except for genesis.
func (b *Block) Height() int32 { return b.height }

// ChainWork returns the cumulative work of the chain ending at this block,
// including this block's own work. Nil until AttachTo has been called.
func (b *Block) ChainWork() *big.Int { return b.chainWork }

// AttachTo sets height and chain work from a parent block: height is the
// parent's height plus one, and chain work accumulates the parent's work
// plus this block's own proof-of-work contribution.
func (b *Block) AttachTo(parent *Block, work *big.Int) {
	b.height = parent.height + 1
	b.chainWork = new(big.Int).Add(parent.chainWork, work)
}

// AttachAt force-sets the chain attachment fields, used when a block is
// read back from storage with its position already indexed. chainWork may be
// nil for stores that do not track cumulative work.
func (b *Block) AttachAt(height int32, chainWork *big.Int) {
	b.height = height
	b.chainWork = chainWork
}

// AttachGenesis marks b as height 0 with the given starting work.
func (b *Block) AttachGenesis(work *big.Int) {
	b.height = 0
	b.chainWork = new(big.Int).Set(work)
}

// CalcHash computes H2(header80), independent of any cached value.
func (b *Block) CalcHash() chainhash.Hash {
	return b.Header.CalcHash()
}

// GetHash returns the cached hash, computing and latching it lazily if
// absent. The cache is written idempotently: repeated calls, even from
// concurrent validations of distinct blocks, converge on identical bytes.
func (b *Block) GetHash() chainhash.Hash {
	if b.hash == nil {
		h := b.CalcHash()
		b.hash = &h
	}
	return *b.hash
}

// HasCachedHash reports whether GetHash has already latched a value,
// distinguishing "never computed" from "computed and happens to be zero".
func (b *Block) HasCachedHash() bool {
	return b.hash != nil
}

// CheckHash reports whether the cached hash matches a fresh computation.
// An absent cached hash is a failure, not an implicit recompute: a block
// must have been hashed (via GetHash) before this check is meaningful.
func (b *Block) CheckHash() bool {
	if b.hash == nil {
		return false
	}
	fresh := b.CalcHash()
	return fresh.IsEqual(b.hash)
}

// SetCachedHash force-latches the hash cache, used when a block is read
// back from storage with its hash already known.
func (b *Block) SetCachedHash(h chainhash.Hash) {
	b.hash = &h
}

// TxHashes returns the ordered leaf hashes for Merkle tree construction.
func (b *Block) TxHashes() []chainhash.Hash {
	leaves := make([]chainhash.Hash, len(b.Txs))
	for i, tx := range b.Txs {
		leaves[i] = tx.TxHash()
	}
	return leaves
}
