// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/auxchain/auxchaind/types/chainhash"
)

func testBlock(nonce uint32) *Block {
	return NewBlock(BlockHeader{
		Version:   1,
		Timestamp: time.Unix(1231006505, 0),
		Bits:      0x207fffff,
		Nonce:     nonce,
	})
}

func TestBlockHashCache(t *testing.T) {
	block := testBlock(7)

	// No hash has been latched yet, so the check fails rather than
	// recomputing implicitly.
	require.False(t, block.HasCachedHash())
	require.False(t, block.CheckHash())

	h := block.GetHash()
	require.True(t, block.HasCachedHash())
	require.Equal(t, block.CalcHash(), h)
	require.True(t, block.CheckHash())

	// Latching is idempotent.
	require.Equal(t, h, block.GetHash())

	// A stale cache no longer matches after the header mutates.
	block.Header.Nonce = 8
	require.False(t, block.CheckHash())
}

func TestBlockAttachTo(t *testing.T) {
	genesis := testBlock(0)
	genesis.AttachGenesis(big.NewInt(100))
	require.Equal(t, int32(0), genesis.Height())
	require.Equal(t, big.NewInt(100), genesis.ChainWork())

	child := testBlock(1)
	child.AttachTo(genesis, big.NewInt(50))
	require.Equal(t, int32(1), child.Height())
	require.Equal(t, big.NewInt(150), child.ChainWork())

	// The parent's accumulated work is unchanged.
	require.Equal(t, big.NewInt(100), genesis.ChainWork())
}

func TestGetStandardizedObject(t *testing.T) {
	block := testBlock(42)

	headerOnly := block.GetStandardizedObject()
	require.Equal(t, block.GetHash().String(), headerOnly.Hash)
	require.Equal(t, uint32(1231006505), headerOnly.Time)
	require.Zero(t, headerOnly.NTx)
	require.Nil(t, headerOnly.Tx)
	require.Nil(t, headerOnly.MrklTree)

	tx := NewMsgTx(1)
	tx.AddTxIn(&TxIn{
		PreviousOutPoint: OutPoint{Hash: chainhash.Hash{}, Index: 0xffffffff},
		Sequence:         0xffffffff,
	})
	tx.AddTxOut(&TxOut{Value: 50, PkScript: []byte{0x51}})
	block.Txs = []Transaction{tx}
	block.Header.MerkleRoot = chainhash.MerkleRoot(block.TxHashes())

	full := block.GetStandardizedObject()
	require.Equal(t, 1, full.NTx)
	require.Equal(t, []string{tx.TxHash().String()}, full.Tx)
	require.Equal(t, MaxBlockHeaderPayload+1+tx.SerializeSize(), full.Size)
	// A single-leaf tree is just the root, which equals the leaf.
	require.Equal(t, []string{tx.TxHash().String()}, full.MrklTree)
}

func TestVarIntSerializeSize(t *testing.T) {
	require.Equal(t, 1, VarIntSerializeSize(0xfc))
	require.Equal(t, 3, VarIntSerializeSize(0xfd))
	require.Equal(t, 3, VarIntSerializeSize(0xffff))
	require.Equal(t, 5, VarIntSerializeSize(0x10000))
	require.Equal(t, 9, VarIntSerializeSize(1 << 33))
}

func TestIsCoinBase(t *testing.T) {
	coinbase := NewMsgTx(1)
	coinbase.AddTxIn(&TxIn{
		PreviousOutPoint: OutPoint{Hash: chainhash.Hash{}, Index: 0xffffffff},
		Sequence:         0xffffffff,
	})
	require.True(t, coinbase.IsCoinBase())

	spend := NewMsgTx(1)
	spend.AddTxIn(&TxIn{
		PreviousOutPoint: OutPoint{Hash: chainhash.HashH([]byte("prev")), Index: 0},
	})
	require.False(t, spend.IsCoinBase())

	twoIn := NewMsgTx(1)
	twoIn.AddTxIn(&TxIn{PreviousOutPoint: OutPoint{Hash: chainhash.Hash{}, Index: 0xffffffff}})
	twoIn.AddTxIn(&TxIn{PreviousOutPoint: OutPoint{Hash: chainhash.Hash{}, Index: 0xffffffff}})
	require.False(t, twoIn.IsCoinBase())
}
