// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaindata

import (
	"bytes"
	"fmt"
	"time"

	"gitlab.com/auxchain/auxchaind/types/chaincfg"
	"gitlab.com/auxchain/auxchaind/types/chainhash"
	"gitlab.com/auxchain/auxchaind/types/pow"
	"gitlab.com/auxchain/auxchaind/types/wire"
)

const (
	// MaxTimeOffsetSeconds is the maximum number of seconds a block time
	// is allowed to be ahead of the current time.  This is currently 2
	// hours.
	MaxTimeOffsetSeconds = 2 * 60 * 60

	// MedianTimeBlocks is the number of previous blocks which should be
	// used to calculate the median time used to validate block timestamps.
	MedianTimeBlocks = 11

	// auxChainIDShift is the number of low bits below the registered chain
	// identifier in an AuxPoW block's version field.
	auxChainIDShift = 16
)

// TimeSource supplies the validator's notion of "now" for the future-
// timestamp check. Production code passes time.Now; tests pin it.
type TimeSource func() time.Time

// BlockValidator performs the stateless consensus checks over a single block:
// header identity, proof of work (primary or auxiliary), timestamp sanity,
// AuxPoW linkage, and transaction-set structure. Checks that need chain
// context (difficulty, median time) live in the blockchain package.
type BlockValidator struct {
	params *chaincfg.Params
	now    TimeSource
}

// NewBlockValidator returns a validator bound to the given network
// parameters. A nil timeSource defaults to the wall clock.
func NewBlockValidator(params *chaincfg.Params, timeSource TimeSource) *BlockValidator {
	if timeSource == nil {
		timeSource = time.Now
	}
	return &BlockValidator{params: params, now: timeSource}
}

// AuxPowActive reports whether the AuxPoW rules apply to the given header:
// the network must be configured as an alt chain and the header's version
// must carry the AuxPoW flag bit.
func AuxPowActive(params *chaincfg.Params, header *wire.BlockHeader) bool {
	return params.AltChain && header.Version&params.AuxPowFlag != 0
}

// AuxChainID extracts the registered chain identifier from the high bits of
// a version field.
func AuxChainID(version uint32) uint32 {
	return version >> auxChainIDShift
}

// CheckBlock runs the full ordered stateless validation over block, failing
// with a VerificationError on the first violation:
//
//  1. the cached hash matches a fresh computation over the header
//  2. proof of work holds, against the block's own hash or, for AuxPoW
//     blocks, the parent chain header's hash
//  3. the timestamp is not too far in the future
//  4. for AuxPoW blocks, the coinbase-in-parent Merkle link and the
//     merge-mining coinbase script commitments hold
//  5. when txs is non-nil, the transaction set is structurally sound and
//     commits to the header's Merkle root
//
// Store and miner I/O never occur here; any non-VerificationError return is
// an internal consistency failure (AssertError).
func (v *BlockValidator) CheckBlock(block *wire.Block, txs []wire.Transaction) error {
	if !block.CheckHash() {
		return NewVerificationError(ErrBadHash, fmt.Sprintf(
			"block hash does not match calculated hash %s", block.CalcHash()))
	}

	if err := v.CheckProofOfWork(block); err != nil {
		return err
	}

	if err := v.checkTimestamp(&block.Header); err != nil {
		return err
	}

	if AuxPowActive(v.params, &block.Header) {
		if err := v.CheckMerkleLink(block); err != nil {
			return err
		}
		if err := v.CheckAuxCoinbase(block); err != nil {
			return err
		}
	}

	if txs != nil {
		if err := v.checkTransactions(block, txs); err != nil {
			return err
		}
	}

	return nil
}

// CheckProofOfWork ensures the block's work hash is below the target encoded
// in the header's difficulty bits. For AuxPoW blocks the hash that must meet
// the target is the parent chain header's, not this block's own; the version
// field must additionally name this chain's registered identifier.
func (v *BlockValidator) CheckProofOfWork(block *wire.Block) error {
	target := pow.CompactToBigUnsigned(block.Header.Bits)

	var powHash chainhash.Hash
	if AuxPowActive(v.params, &block.Header) {
		if AuxChainID(block.Header.Version) != v.params.AuxPowChainID {
			return NewVerificationError(ErrPowWrongAuxChain, fmt.Sprintf(
				"block version names aux chain %d, this chain is %d",
				AuxChainID(block.Header.Version), v.params.AuxPowChainID))
		}

		aux := block.Aux
		if aux == nil || aux.Parent == nil {
			return AssertError("auxpow flag set but no aux substructure attached")
		}

		powHash = aux.Parent.CalcHash()
		if claimed := aux.ParentHash; powHash != claimed {
			// The reference implementation only logs this
			// divergence; strict mode turns it into a failure.
			if v.params.StrictAuxPow {
				return NewVerificationError(ErrAuxPowParentHash, fmt.Sprintf(
					"aux parent hash %s does not match computed %s", claimed, powHash))
			}
			log.Warn().
				Str("claimed", claimed.String()).
				Str("computed", powHash.String()).
				Msg("aux parent hash mismatch, continuing with computed hash")
		}
	} else {
		powHash = block.CalcHash()
	}

	if pow.HashToBig(powHash).Cmp(target) > 0 {
		return NewVerificationError(ErrPowBelowTarget, fmt.Sprintf(
			"proof of work hash %s is above target %064x", powHash, target))
	}

	return nil
}

// checkTimestamp rejects headers claiming a time too far past the clock.
func (v *BlockValidator) checkTimestamp(header *wire.BlockHeader) error {
	maxTimestamp := v.now().Add(time.Second * MaxTimeOffsetSeconds)
	if header.Timestamp.After(maxTimestamp) {
		return NewVerificationError(ErrTimestampTooFarFuture, fmt.Sprintf(
			"block timestamp of %v is too far in the future", header.Timestamp))
	}
	return nil
}

// CheckMerkleLink verifies that the AuxPoW's parent coinbase transaction is
// committed to by the parent header's Merkle root via the coinbase branch.
func (v *BlockValidator) CheckMerkleLink(block *wire.Block) error {
	aux := block.Aux
	if aux == nil || aux.Coinbase == nil || aux.Parent == nil {
		return AssertError("merkle link check requires a complete aux substructure")
	}

	folded := chainhash.VerifyMerkleBranch(aux.Coinbase.TxHash(),
		aux.CoinbaseBranch, aux.CoinbaseBranchMask)
	if folded != aux.Parent.Header.MerkleRoot {
		return NewVerificationError(ErrAuxPowMerkleLink, fmt.Sprintf(
			"aux coinbase folds to %s, parent merkle root is %s",
			folded, aux.Parent.Header.MerkleRoot))
	}
	return nil
}

// CheckAuxCoinbase verifies the merge-mining commitments embedded in the
// parent chain's coinbase input script:
//
//   - the aggregated chain hash (this block's hash folded through the
//     blockchain branch, byte-reversed) appears in the script, immediately
//     after the merge-mining tag when the tag is present, or within the
//     legacy window when it is not
//   - the tag, when present, appears exactly once
//   - the aggregation tree size word matches the blockchain branch length
//   - the branch mask matches the slot the script's nonce derives for this
//     chain id
func (v *BlockValidator) CheckAuxCoinbase(block *wire.Block) error {
	aux := block.Aux
	if aux == nil || aux.Coinbase == nil || len(aux.Coinbase.TxIn) == 0 {
		return AssertError("aux coinbase check requires a coinbase with an input")
	}
	script := aux.Coinbase.TxIn[0].SignatureScript

	expected := wire.ReverseHash(aux.AggregateChainHash(block.CalcHash()))

	hashPos := bytes.Index(script, expected[:])
	if hashPos < 0 {
		return NewVerificationError(ErrAuxPowHashNotInScript, fmt.Sprintf(
			"aggregated chain hash %x not found in parent coinbase script", expected))
	}

	tagEnd, tagCount, tagFound := wire.LocateMergeMiningTag(script)
	if tagFound {
		if tagCount > 1 {
			return NewVerificationError(ErrAuxPowHeaderDuplicated, fmt.Sprintf(
				"merge-mining tag occurs %d times in parent coinbase script", tagCount))
		}
		if hashPos != tagEnd {
			return NewVerificationError(ErrAuxPowHashNotAfterHeader, fmt.Sprintf(
				"chain hash at offset %d, expected immediately after tag at %d",
				hashPos, tagEnd))
		}
	} else if hashPos >= wire.LegacyTagSearchWindow {
		return NewVerificationError(ErrAuxPowLegacyOffset, fmt.Sprintf(
			"untagged chain hash at offset %d, beyond the first %d script bytes",
			hashPos, wire.LegacyTagSearchWindow))
	}

	size, nonce, err := wire.ReadSizeAndNonce(script, hashPos+chainhash.HashSize)
	if err != nil {
		return NewVerificationError(ErrAuxPowSizeMismatch,
			"parent coinbase script truncates the aggregation size and nonce words")
	}

	if wantSize := uint32(1) << uint(len(aux.BlockchainBranch)); size != wantSize {
		return NewVerificationError(ErrAuxPowSizeMismatch, fmt.Sprintf(
			"aggregation size word is %d, blockchain branch length requires %d",
			size, wantSize))
	}

	if wantMask := wire.LCGNextMask(nonce, v.params.AuxPowChainID, size); aux.BlockchainBranchMask != wantMask {
		return NewVerificationError(ErrAuxPowMaskMismatch, fmt.Sprintf(
			"blockchain branch mask is %d, nonce %d derives slot %d",
			aux.BlockchainBranchMask, nonce, wantMask))
	}

	return nil
}

// checkTransactions validates the block's transaction set structure and its
// commitment to the header's Merkle root.
func (v *BlockValidator) checkTransactions(block *wire.Block, txs []wire.Transaction) error {
	if len(txs) == 0 {
		return NewVerificationError(ErrNoTransactions,
			"block does not contain any transactions")
	}

	if !txs[0].IsCoinBase() {
		return NewVerificationError(ErrFirstTxNotCoinbase,
			"first transaction in block is not the coinbase")
	}

	for i, tx := range txs[1:] {
		if tx.IsCoinBase() {
			return NewVerificationError(ErrNonFirstTxIsCoinbase, fmt.Sprintf(
				"block contains second coinbase at index %d", i+1))
		}
	}

	if block.Header.MerkleRoot == chainhash.ZeroHash {
		return NewVerificationError(ErrNoMerkleRoot,
			"block carries transactions but no merkle root")
	}

	calculated := CalcMerkleRoot(txs)
	if calculated != block.Header.MerkleRoot {
		return NewVerificationError(ErrMerkleRootMismatch, fmt.Sprintf(
			"block merkle root is invalid - block header indicates %s, but calculated value is %s",
			block.Header.MerkleRoot, calculated))
	}

	return nil
}

// CalcMerkleRoot computes the Merkle root over a transaction sequence.
func CalcMerkleRoot(txs []wire.Transaction) chainhash.Hash {
	leaves := make([]chainhash.Hash, len(txs))
	for i, tx := range txs {
		leaves[i] = tx.TxHash()
	}
	return chainhash.MerkleRoot(leaves)
}

// CalcBlockSubsidy returns the subsidy amount a block at the provided height
// should have. This is mainly used for determining how much the coinbase for
// newly generated blocks awards as well as validating the coinbase for blocks
// has the expected value.
//
// The subsidy is halved every SubsidyHalvingInterval blocks.  Mathematically
// this is: baseSubsidy / 2^(height/SubsidyHalvingInterval)
func CalcBlockSubsidy(height int32) int64 {
	halvings := uint(height / chaincfg.SubsidyHalvingInterval)
	if halvings >= 64 {
		return 0
	}

	// Equivalent to: baseSubsidy / 2^halvings
	return int64(chaincfg.BaseSubsidy) >> halvings
}
