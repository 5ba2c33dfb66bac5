// Copyright (c) 2021 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/auxchain/auxchaind/types/chainhash"
)

// TestLCGNextMask pins the merge-mining slot derivation to fixed vectors
// computed with strict 32-bit wrap-around arithmetic. A drift here (for
// example widening to 64 bits without truncation) breaks consensus with
// parent chains, so the raw generator value is pinned too.
func TestLCGNextMask(t *testing.T) {
	require.Equal(t, uint32(3), LCGNextMask(0, 1, 8))
	require.Equal(t, uint32(0), LCGNextMask(7, 1, 1))
	require.Equal(t, uint32(2), LCGNextMask(0xdeadbeef, 1, 4))
	require.Equal(t, uint32(9), LCGNextMask(42, 5, 16))

	// size 0 exposes the raw generator output.
	require.Equal(t, uint32(0x15a264eb), LCGNextMask(0, 1, 0))
}

func TestLocateMergeMiningTag(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03}

	t.Run("absent", func(t *testing.T) {
		_, count, found := LocateMergeMiningTag(payload)
		require.False(t, found)
		require.Zero(t, count)
	})

	t.Run("single", func(t *testing.T) {
		script := append(append([]byte{0xde, 0xad}, MergeMiningTag...), payload...)
		offset, count, found := LocateMergeMiningTag(script)
		require.True(t, found)
		require.Equal(t, 1, count)
		require.Equal(t, 6, offset)
	})

	t.Run("duplicated", func(t *testing.T) {
		script := append([]byte{}, MergeMiningTag...)
		script = append(script, payload...)
		script = append(script, MergeMiningTag...)
		_, count, found := LocateMergeMiningTag(script)
		require.True(t, found)
		require.Equal(t, 2, count)
	})
}

func TestReverseHash(t *testing.T) {
	var h chainhash.Hash
	h[0] = 0x01
	h[31] = 0xff

	r := ReverseHash(h)
	require.Equal(t, byte(0xff), r[0])
	require.Equal(t, byte(0x01), r[31])
	require.Equal(t, h, ReverseHash(r))
}

// TestAggregateChainHash confirms an empty blockchain branch passes the
// child hash through untouched, while a non-empty branch folds it.
func TestAggregateChainHash(t *testing.T) {
	child := chainhash.HashH([]byte("child"))
	sibling := chainhash.HashH([]byte("sibling"))

	aux := &AuxPow{}
	require.Equal(t, child, aux.AggregateChainHash(child))

	aux.BlockchainBranch = []chainhash.Hash{sibling}
	require.Equal(t,
		chainhash.VerifyMerkleBranch(child, []chainhash.Hash{sibling}, 0),
		aux.AggregateChainHash(child))
}

func TestReadSizeAndNonce(t *testing.T) {
	script := make([]byte, 40)
	copy(script[32:], LE32(0x00000004))
	copy(script[36:], LE32(0xcafebabe))

	size, nonce, err := ReadSizeAndNonce(script, 32)
	require.NoError(t, err)
	require.Equal(t, uint32(4), size)
	require.Equal(t, uint32(0xcafebabe), nonce)

	_, _, err = ReadSizeAndNonce(script[:36], 32)
	require.Error(t, err)
}
