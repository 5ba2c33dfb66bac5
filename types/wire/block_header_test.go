// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/auxchain/auxchaind/types/chainhash"
)

// genesisMerkleRoot is the Merkle root of the Bitcoin genesis block's single
// coinbase transaction, in the usual reversed-hex display form.
const genesisMerkleRoot = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"

// genesisHash is the Bitcoin genesis block hash in display form.
const genesisHash = "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"

// TestGenesisHeaderHash pins the header hashing to the best-known vector:
// the Bitcoin genesis header must hash to the genesis block hash.
func TestGenesisHeaderHash(t *testing.T) {
	merkleRoot, err := chainhash.NewHashFromStr(genesisMerkleRoot)
	require.NoError(t, err)

	header := BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.ZeroHash,
		MerkleRoot: *merkleRoot,
		Timestamp:  time.Unix(1231006505, 0),
		Bits:       0x1d00ffff,
		Nonce:      2083236893,
	}

	want, err := chainhash.NewHashFromStr(genesisHash)
	require.NoError(t, err)
	require.Equal(t, *want, header.CalcHash())
}

// TestHeaderSerializeLength confirms the fixed 80-byte wire layout.
func TestHeaderSerializeLength(t *testing.T) {
	header := BlockHeader{Timestamp: time.Unix(0x495fab29, 0)}
	require.Len(t, header.Bytes(), MaxBlockHeaderPayload)
	require.Equal(t, 80, MaxBlockHeaderPayload)
}

// TestHeaderRoundTrip covers the re-serialization invariant: deserializing
// arbitrary 80-byte strings and serializing the result yields the original
// bytes.
func TestHeaderRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(0x5eed))
	for i := 0; i < 64; i++ {
		raw := make([]byte, MaxBlockHeaderPayload)
		_, err := rng.Read(raw)
		require.NoError(t, err)

		var header BlockHeader
		require.NoError(t, header.Deserialize(bytes.NewReader(raw)))
		require.Equal(t, raw, header.Bytes())
	}
}

// TestHeaderFieldLayout spot-checks each field's offset and endianness in
// the serialized form.
func TestHeaderFieldLayout(t *testing.T) {
	var prev, root chainhash.Hash
	prev[0] = 0xaa
	root[0] = 0xbb

	header := BlockHeader{
		Version:    0x01020304,
		PrevBlock:  prev,
		MerkleRoot: root,
		Timestamp:  time.Unix(0x11223344, 0),
		Bits:       0x1d00ffff,
		Nonce:      0x99887766,
	}
	raw := header.Bytes()

	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, raw[0:4])
	require.Equal(t, prev[:], raw[4:36])
	require.Equal(t, root[:], raw[36:68])
	require.Equal(t, []byte{0x44, 0x33, 0x22, 0x11}, raw[68:72])
	require.Equal(t, []byte{0xff, 0xff, 0x00, 0x1d}, raw[72:76])
	require.Equal(t, []byte{0x66, 0x77, 0x88, 0x99}, raw[76:80])
}

func TestReadLE32(t *testing.T) {
	buf := []byte{0x01, 0x00, 0x00, 0x00, 0xff}

	v, err := ReadLE32(buf, 0)
	require.NoError(t, err)
	require.Equal(t, uint32(1), v)

	_, err = ReadLE32(buf, 2)
	require.Error(t, err)
	_, err = ReadLE32(buf, -1)
	require.Error(t, err)
}
