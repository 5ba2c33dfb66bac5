// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"gitlab.com/auxchain/auxchaind/types/chainhash"
)

// StandardizedBlock is the canonical display projection of a block for
// RPC/JSON consumers. Every hash is rendered in reversed (big-endian) hex,
// the orientation explorers and RPC tooling expect. The transaction fields
// are only populated when the block carries its transactions.
type StandardizedBlock struct {
	Hash      string   `json:"hash"`
	Version   uint32   `json:"version"`
	PrevBlock string   `json:"prev_block"`
	MrklRoot  string   `json:"mrkl_root"`
	Time      uint32   `json:"time"`
	Bits      uint32   `json:"bits"`
	Nonce     uint32   `json:"nonce"`
	Height    int32    `json:"height"`
	NTx       int      `json:"n_tx,omitempty"`
	Size      int      `json:"size,omitempty"`
	Tx        []string `json:"tx,omitempty"`
	MrklTree  []string `json:"mrkl_tree,omitempty"`
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a variable length integer.
func VarIntSerializeSize(val uint64) int {
	// The value is small enough to be represented by itself, so it's
	// just 1 byte.
	if val < 0xfd {
		return 1
	}

	// Discriminant 1 byte plus 2 bytes for the uint16.
	if val <= 0xffff {
		return 3
	}

	// Discriminant 1 byte plus 4 bytes for the uint32.
	if val <= 0xffffffff {
		return 5
	}

	// Discriminant 1 byte plus 8 bytes for the uint64.
	return 9
}

// GetStandardizedObject projects the block into its canonical display form.
// When transactions are attached the projection additionally carries their
// count, the serialized block size, the transaction hashes, and the
// flattened Merkle tree.
func (b *Block) GetStandardizedObject() StandardizedBlock {
	out := StandardizedBlock{
		Hash:      b.GetHash().String(),
		Version:   b.Header.Version,
		PrevBlock: b.Header.PrevBlock.String(),
		MrklRoot:  b.Header.MerkleRoot.String(),
		Time:      uint32(b.Header.Timestamp.Unix()),
		Bits:      b.Header.Bits,
		Nonce:     b.Header.Nonce,
		Height:    b.Height(),
	}

	if b.Txs == nil {
		return out
	}

	out.NTx = len(b.Txs)
	out.Size = MaxBlockHeaderPayload + VarIntSerializeSize(uint64(len(b.Txs)))
	out.Tx = make([]string, len(b.Txs))
	for i, tx := range b.Txs {
		out.Size += tx.SerializeSize()
		out.Tx[i] = tx.TxHash().String()
	}

	tree := chainhash.BuildMerkleTreeStore(b.TxHashes())
	out.MrklTree = make([]string, 0, len(tree))
	for _, node := range tree {
		if node == nil {
			continue
		}
		out.MrklTree = append(out.MrklTree, node.String())
	}

	return out
}
