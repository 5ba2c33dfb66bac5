// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"

	"gitlab.com/auxchain/auxchaind/types/chainhash"
)

// Transaction is the narrow contract the validator, Merkle engine, and
// builder consume: hashing, coinbase classification, and a serialized size
// for the standardized display projection. AuxPoW parsing reads the first
// input's script from the concrete *MsgTx held in AuxPow.Coinbase, not
// through this interface. Full script evaluation, signature
// checking, and fee/policy rules are out of scope here and belong to the
// transaction-script engine this package does not implement.
type Transaction interface {
	TxHash() chainhash.Hash
	IsCoinBase() bool
	SerializeSize() int
}

// coinbaseOutpointHash/Index are the reserved previous-outpoint fields that
// mark a transaction input as a coinbase (no prior output is spent).
var coinbaseOutpointHash = chainhash.Hash{}

const coinbaseOutpointIndex = 0xffffffff

// OutPoint defines a bitcoin data type that is used to track previous
// transaction outputs.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// TxIn defines a bitcoin transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
}

// TxOut defines a bitcoin transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// MsgTx implements the Transaction contract backing the Merkle engine and
// the Builder's coinbase construction. It carries only what the consensus
// core needs; witness data and full script fields are omitted since the
// script engine that would use them is an external collaborator.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32

	cachedHash *chainhash.Hash
}

// NewMsgTx returns a new transaction with the given version.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{Version: version}
}

// AddTxIn adds a transaction input to the message.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
	msg.cachedHash = nil
}

// AddTxOut adds a transaction output to the message.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
	msg.cachedHash = nil
}

// IsCoinBase determines whether the transaction is a coinbase transaction:
// a single input whose previous outpoint references the all-zero hash and
// the maximum index.
func (msg *MsgTx) IsCoinBase() bool {
	if len(msg.TxIn) != 1 {
		return false
	}
	prevOut := &msg.TxIn[0].PreviousOutPoint
	return prevOut.Index == coinbaseOutpointIndex && prevOut.Hash.IsEqual(&coinbaseOutpointHash)
}

// Bytes serializes the transaction using a minimal, script-opaque legacy
// encoding: varint-prefixed input/output counts, each input's previous
// outpoint and raw script bytes, each output's value and script, and the
// lock time. Witness encoding is not modeled since the script engine that
// would interpret it is out of scope.
func (msg *MsgTx) Bytes() []byte {
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.LittleEndian, msg.Version)

	writeVarInt(buf, uint64(len(msg.TxIn)))
	for _, in := range msg.TxIn {
		buf.Write(in.PreviousOutPoint.Hash[:])
		_ = binary.Write(buf, binary.LittleEndian, in.PreviousOutPoint.Index)
		writeVarInt(buf, uint64(len(in.SignatureScript)))
		buf.Write(in.SignatureScript)
		_ = binary.Write(buf, binary.LittleEndian, in.Sequence)
	}

	writeVarInt(buf, uint64(len(msg.TxOut)))
	for _, out := range msg.TxOut {
		_ = binary.Write(buf, binary.LittleEndian, out.Value)
		writeVarInt(buf, uint64(len(out.PkScript)))
		buf.Write(out.PkScript)
	}

	_ = binary.Write(buf, binary.LittleEndian, msg.LockTime)
	return buf.Bytes()
}

// TxHash generates the Hash for the transaction, computing and caching it
// idempotently if it has not already been done.
func (msg *MsgTx) TxHash() chainhash.Hash {
	if msg.cachedHash != nil {
		return *msg.cachedHash
	}
	h := chainhash.DoubleHashH(msg.Bytes())
	msg.cachedHash = &h
	return h
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction, used by the standardized display projection's size field.
func (msg *MsgTx) SerializeSize() int {
	return len(msg.Bytes())
}

func writeVarInt(buf *bytes.Buffer, val uint64) {
	switch {
	case val < 0xfd:
		buf.WriteByte(byte(val))
	case val <= 0xffff:
		buf.WriteByte(0xfd)
		_ = binary.Write(buf, binary.LittleEndian, uint16(val))
	case val <= 0xffffffff:
		buf.WriteByte(0xfe)
		_ = binary.Write(buf, binary.LittleEndian, uint32(val))
	default:
		buf.WriteByte(0xff)
		_ = binary.Write(buf, binary.LittleEndian, val)
	}
}
