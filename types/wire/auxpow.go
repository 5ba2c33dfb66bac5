// Copyright (c) 2021 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"

	"gitlab.com/auxchain/auxchaind/types/chainhash"
)

// MergeMiningTag is the fixed 4-byte marker a parent-chain coinbase script
// embeds immediately before a merge-mined chain's hash.
var MergeMiningTag = []byte{0xfa, 0xbe, 0x6d, 0x6d}

// LegacyTagSearchWindow bounds how early in a coinbase script the embedded
// hash must begin when no merge-mining tag is present at all.
const LegacyTagSearchWindow = 20

// AuxPow carries the merge-mining proof for a block produced on an
// alt-chain configured with AuxPoW: a parent-chain coinbase transaction
// whose script embeds this block's hash, the Merkle proof linking that
// coinbase into the parent block, the parent header itself, and the
// aggregation proof used when several merge-mined chains share one parent
// block.
//
// Parent is a full Block but its own Aux is always nil: AuxPoW recursion
// runs exactly one level deep.
type AuxPow struct {
	Coinbase *MsgTx

	CoinbaseBranch     []chainhash.Hash
	CoinbaseBranchMask uint32

	Parent *Block

	// ParentHash is the claimed hash of Parent. It is redundant with
	// Parent.CalcHash() and is validated against it, but a mismatch is
	// treated as non-fatal unless StrictAuxPow is configured (see the
	// grounding ledger for the rationale preserved from the source).
	ParentHash chainhash.Hash

	BlockchainBranch     []chainhash.Hash
	BlockchainBranchMask uint32
}

// AggregateChainHash folds the AuxPow's blockchain-level branch over the
// child block's own hash, producing the scalar multiple merge-mined chains
// aggregate behind a single parent coinbase. When no blockchain branch is
// present (a single merge-mined chain), the child hash itself is used.
func (a *AuxPow) AggregateChainHash(childHash chainhash.Hash) chainhash.Hash {
	if len(a.BlockchainBranch) == 0 {
		return childHash
	}
	return chainhash.VerifyMerkleBranch(childHash, a.BlockchainBranch, a.BlockchainBranchMask)
}

// ReverseHash returns a byte-reversed copy of h, the orientation the
// merge-mining coinbase script embeds hashes in.
func ReverseHash(h chainhash.Hash) chainhash.Hash {
	var out chainhash.Hash
	for i := 0; i < chainhash.HashSize; i++ {
		out[i] = h[chainhash.HashSize-1-i]
	}
	return out
}

// LocateMergeMiningTag scans script for the merge-mining tag. It returns
// the byte offset immediately following the tag's last occurrence, the
// number of occurrences found, and whether any were found at all. Callers
// must reject more than one occurrence.
func LocateMergeMiningTag(script []byte) (offset int, count int, found bool) {
	idx := 0
	last := -1
	for {
		rel := bytes.Index(script[idx:], MergeMiningTag)
		if rel < 0 {
			break
		}
		last = idx + rel
		count++
		idx = last + len(MergeMiningTag)
		if idx > len(script) {
			break
		}
	}
	if last < 0 {
		return 0, 0, false
	}
	return last + len(MergeMiningTag), count, true
}

// LCGNextMask computes the expected blockchain-branch mask for a given
// merge-mining nonce and chain id, replaying the reference implementation's
// linear congruential generator exactly: two rounds of
// rand = rand*1103515245 + 12345, with the chain id folded in between,
// all performed modulo 2^32. Widening this arithmetic to 64 bits without
// truncating back to uint32 after each multiply is a consensus bug (the
// wrap-around is load-bearing).
func LCGNextMask(nonce, chainID uint32, size uint32) uint32 {
	rnd := nonce
	rnd = rnd*1103515245 + 12345
	rnd += chainID
	rnd = rnd*1103515245 + 12345
	if size == 0 {
		return rnd
	}
	return rnd % size
}

// ReadSizeAndNonce decodes the two little-endian uint32 words that follow
// the embedded chain hash in a merge-mining coinbase script: the
// aggregation tree size and the nonce used to derive its mask.
func ReadSizeAndNonce(script []byte, hashEnd int) (size, nonce uint32, err error) {
	size, err = readLE32At(script, hashEnd)
	if err != nil {
		return 0, 0, err
	}
	nonce, err = readLE32At(script, hashEnd+4)
	if err != nil {
		return 0, 0, err
	}
	return size, nonce, nil
}

func readLE32At(buf []byte, offset int) (uint32, error) {
	return ReadLE32(buf, offset)
}
