/*
 * Copyright (c) 2021 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package chainhash

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildMerkleTreeProof(t *testing.T) {
	s2h := func(h string) Hash {
		return HashH([]byte(h))
	}
	leafHash := func(h1, h2 string) Hash {
		ch1 := s2h(h1)
		ch2 := s2h(h2)
		return *HashMerkleBranches(&ch1, &ch2)
	}

	tests := []struct {
		name     string
		txHashes []Hash
		want     []Hash
	}{
		{
			name:     "0",
			txHashes: []Hash{s2h("leaf_0")},
			want:     []Hash{},
		},
		{
			name:     "1",
			txHashes: []Hash{s2h("leaf_0"), s2h("leaf_1")},
			want:     []Hash{s2h("leaf_1")},
		},
		{
			name:     "2",
			txHashes: []Hash{s2h("leaf_0"), s2h("leaf_1"), s2h("leaf_3")},
			want:     []Hash{s2h("leaf_1"), leafHash("leaf_3", "leaf_3")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildMerkleTreeProof(tt.txHashes); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildMerkleTreeProof() = %v, want %v", got, tt.want)
			}

			root := MerkleTreeRoot(tt.txHashes)

			if !ValidateMerkleTreeProof(tt.txHashes[0], tt.want, root) {
				t.Error("ValidateMerkleTreeProof() = false, want true")
			}
		})
	}
}

// TestMerkleRootSingleTx: the Merkle root over a single leaf is that leaf.
func TestMerkleRootSingleTx(t *testing.T) {
	h := HashH([]byte("solo"))
	require.Equal(t, h, MerkleRoot([]Hash{h}))
}

// TestMerkleRootOddDuplicatesLast: an odd-length leaf set duplicates its
// last element to pair at the final level.
func TestMerkleRootOddDuplicatesLast(t *testing.T) {
	a := HashH([]byte("a"))
	b := HashH([]byte("b"))
	c := HashH([]byte("c"))

	got := MerkleRoot([]Hash{a, b, c})
	want := *HashMerkleBranches(HashMerkleBranches(&a, &b), HashMerkleBranches(&c, &c))
	require.Equal(t, want, got)
}

// TestVerifyMerkleBranchRoundTrip: the inclusion proof
// BuildMerkleTreeProof produces for the leading leaf folds back to the
// tree's root under an all-zero mask, for several tree sizes including odd
// ones that force duplication.
func TestVerifyMerkleBranchRoundTrip(t *testing.T) {
	for _, size := range []int{1, 2, 3, 4, 5, 7, 8} {
		leaves := make([]Hash, size)
		for i := range leaves {
			leaves[i] = HashH([]byte{byte(i)})
		}

		root := MerkleRoot(leaves)
		branch := BuildMerkleTreeProof(leaves)
		got := VerifyMerkleBranch(leaves[0], branch, 0)
		require.Equal(t, root, got, "size %d: leaf 0 did not verify against the tree root", size)
	}
}

// TestVerifyMerkleBranchMaskSide confirms the mask's low bit selects which
// side of the concatenation the sibling occupies.
func TestVerifyMerkleBranchMaskSide(t *testing.T) {
	leaf := HashH([]byte("leaf"))
	sibling := HashH([]byte("sibling"))

	asRight := VerifyMerkleBranch(leaf, []Hash{sibling}, 0)
	require.Equal(t, *HashMerkleBranches(&leaf, &sibling), asRight)

	asLeft := VerifyMerkleBranch(leaf, []Hash{sibling}, 1)
	require.Equal(t, *HashMerkleBranches(&sibling, &leaf), asLeft)
}
