// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

package chain

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/pqchain/pqledger/internal/address"
	"github.com/pqchain/pqledger/internal/falcon"
	"github.com/pqchain/pqledger/internal/pqhash"
)

// EncodeTransaction writes tx's deterministic wire form: a one-byte type
// discriminant, the fixed-width from/to/public-key/signature fields, and a
// big-endian amount. This is distinct from SigningBytes, which is
// little-endian and omits Type and Signature entirely: the wire encoding
// describes the whole transaction, the signing bytes describe only what was
// signed.
func EncodeTransaction(tx *Transaction) []byte {
	buf := make([]byte, 0, 1+address.Size+falcon.PublicKeySize+falcon.SignatureSize+address.Size+8)
	buf = append(buf, byte(tx.Type))
	buf = append(buf, tx.From.Bytes()...)
	buf = append(buf, tx.FromPublicKey[:]...)
	buf = append(buf, tx.Signature[:]...)
	buf = append(buf, tx.To.Bytes()...)
	buf = binary.BigEndian.AppendUint64(buf, tx.Amount)
	return buf
}

// DecodeTransaction reads one transaction from r in the EncodeTransaction
// layout.
func DecodeTransaction(r io.Reader) (*Transaction, error) {
	var typeByte [1]byte
	if _, err := io.ReadFull(r, typeByte[:]); err != nil {
		return nil, fmt.Errorf("%w: transaction type: %v", ErrDecode, err)
	}

	var from, to [address.Size]byte
	var pub [falcon.PublicKeySize]byte
	var sig [falcon.SignatureSize]byte
	var amount [8]byte

	if _, err := io.ReadFull(r, from[:]); err != nil {
		return nil, fmt.Errorf("%w: from address: %v", ErrDecode, err)
	}
	if _, err := io.ReadFull(r, pub[:]); err != nil {
		return nil, fmt.Errorf("%w: from public key: %v", ErrDecode, err)
	}
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return nil, fmt.Errorf("%w: signature: %v", ErrDecode, err)
	}
	if _, err := io.ReadFull(r, to[:]); err != nil {
		return nil, fmt.Errorf("%w: to address: %v", ErrDecode, err)
	}
	if _, err := io.ReadFull(r, amount[:]); err != nil {
		return nil, fmt.Errorf("%w: amount: %v", ErrDecode, err)
	}

	return &Transaction{
		Type:          Type(typeByte[0]),
		From:          address.FromBytes(from),
		FromPublicKey: falcon.PublicKey(pub),
		Signature:     falcon.Signature(sig),
		To:            address.FromBytes(to),
		Amount:        binary.BigEndian.Uint64(amount[:]),
	}, nil
}

// EncodeTransactions writes a varint-prefixed vector of transactions.
func EncodeTransactions(txs []Transaction) []byte {
	buf := binary.AppendUvarint(nil, uint64(len(txs)))
	for i := range txs {
		buf = append(buf, EncodeTransaction(&txs[i])...)
	}
	return buf
}

// DecodeTransactions reads a varint-prefixed vector of transactions from r.
func DecodeTransactions(r *bytes.Reader) ([]Transaction, error) {
	count, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction count: %v", ErrDecode, err)
	}
	txs := make([]Transaction, 0, count)
	for i := uint64(0); i < count; i++ {
		tx, err := DecodeTransaction(r)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, nil
}

// EncodeBlock writes b's deterministic wire form: varint index and
// timestamp, the raw hash and previous-hash, the transaction vector, and a
// varint nonce.
func EncodeBlock(b *Block) []byte {
	buf := binary.AppendUvarint(nil, b.Index)
	buf = binary.AppendUvarint(buf, b.Timestamp)
	buf = append(buf, b.Hash.Bytes()...)
	buf = append(buf, b.PreviousHash.Bytes()...)
	buf = append(buf, EncodeTransactions(b.Transactions)...)
	buf = binary.AppendUvarint(buf, b.Nonce)
	return buf
}

// DecodeBlock reads one block from r in the EncodeBlock layout.
func DecodeBlock(r *bytes.Reader) (*Block, error) {
	index, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("%w: block index: %v", ErrDecode, err)
	}
	timestamp, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("%w: block timestamp: %v", ErrDecode, err)
	}

	var hashBytes, prevHashBytes [pqhash.Size]byte
	if _, err := io.ReadFull(r, hashBytes[:]); err != nil {
		return nil, fmt.Errorf("%w: block hash: %v", ErrDecode, err)
	}
	if _, err := io.ReadFull(r, prevHashBytes[:]); err != nil {
		return nil, fmt.Errorf("%w: previous hash: %v", ErrDecode, err)
	}

	txs, err := DecodeTransactions(r)
	if err != nil {
		return nil, err
	}

	nonce, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("%w: block nonce: %v", ErrDecode, err)
	}

	return &Block{
		Index:        index,
		Timestamp:    timestamp,
		Hash:         pqhash.FromBytes(hashBytes),
		PreviousHash: pqhash.FromBytes(prevHashBytes),
		Transactions: txs,
		Nonce:        nonce,
	}, nil
}

// EncodeLedger writes a Ledger's wire form: a varint-prefixed sequence of
// encoded blocks, followed by a varint-prefixed sequence of (address, balance)
// balance pairs sorted ascending by raw address bytes, a canonical key
// order so that two ledgers holding identical state always encode to
// identical bytes regardless of Go's unordered map iteration.
func EncodeLedger(l *Ledger) []byte {
	l.mu.RLock()
	defer l.mu.RUnlock()

	buf := binary.AppendUvarint(nil, uint64(len(l.chain)))
	for _, b := range l.chain {
		buf = append(buf, EncodeBlock(b)...)
	}

	addrs := make([]address.Address, 0, len(l.state))
	for a := range l.state {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i].Bytes(), addrs[j].Bytes()) < 0
	})

	buf = binary.AppendUvarint(buf, uint64(len(addrs)))
	for _, a := range addrs {
		buf = append(buf, a.Bytes()...)
		buf = binary.BigEndian.AppendUint64(buf, l.state[a])
	}
	return buf
}

// DecodeLedger reads a Ledger from its EncodeLedger wire form. Rather than
// trusting the encoded balance map, it discards it and replays every
// decoded block through ApplyBlock from an empty state. A tampered or
// stale balance map can never survive a round trip undetected, at the cost
// of re-running every signature check and proof-of-work verification on
// load. The encoded balance-map section is still read (and its length
// sanity-checked) so malformed trailing bytes are caught even though its
// values are never used.
func DecodeLedger(cfg Config, data []byte) (*Ledger, error) {
	r := bytes.NewReader(data)

	blockCount, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("%w: chain length: %v", ErrDecode, err)
	}
	blocks := make([]*Block, 0, blockCount)
	for i := uint64(0); i < blockCount; i++ {
		b, err := DecodeBlock(r)
		if err != nil {
			return nil, fmt.Errorf("chain: decoding block %d: %w", i, err)
		}
		blocks = append(blocks, b)
	}

	stateCount, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("%w: state length: %v", ErrDecode, err)
	}
	for i := uint64(0); i < stateCount; i++ {
		var a [address.Size]byte
		var balance [8]byte
		if _, err := io.ReadFull(r, a[:]); err != nil {
			return nil, fmt.Errorf("%w: state entry %d address: %v", ErrDecode, i, err)
		}
		if _, err := io.ReadFull(r, balance[:]); err != nil {
			return nil, fmt.Errorf("%w: state entry %d balance: %v", ErrDecode, i, err)
		}
	}

	return NewFromChain(cfg, blocks)
}
