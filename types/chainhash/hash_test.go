// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashStringRoundTrip(t *testing.T) {
	h := DoubleHashH([]byte("round trip me"))
	parsed, err := NewHashFromStr(h.String())
	require.NoError(t, err)
	require.Equal(t, h, *parsed)
}

func TestHashStringTooLong(t *testing.T) {
	long := make([]byte, MaxHashStringSize+2)
	for i := range long {
		long[i] = 'a'
	}
	_, err := NewHashFromStr(string(long))
	require.ErrorIs(t, err, ErrHashStrSize)
}

func TestDoubleHashIsHashOfHash(t *testing.T) {
	data := []byte("the quick brown fox")
	want := HashH(HashB(data))
	require.Equal(t, want, DoubleHashH(data))
}

func TestIsEqual(t *testing.T) {
	a := HashH([]byte("a"))
	b := a
	c := HashH([]byte("c"))

	require.True(t, a.IsEqual(&b))
	require.False(t, a.IsEqual(&c))

	var nilHash *Hash
	require.True(t, nilHash.IsEqual(nil))
	require.False(t, a.IsEqual(nil))
}
