// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

package pqhash

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/sha3"
)

// Prefix builds the block header bytes absorbed before the nonce:
// index (big-endian uint64) ‖ timestamp (big-endian, zero-padded to 16
// bytes) ‖ previous_hash (32 raw bytes) ‖ encodedTransactions.
//
// All integer encodings here are big-endian, uniformly. The nonce search
// and verification both hash this same prefix, so sequential and parallel
// computation always agree.
func Prefix(index uint64, timestampMillis uint64, previousHash Hash, encodedTransactions []byte) []byte {
	buf := make([]byte, 0, 8+16+Size+len(encodedTransactions))
	buf = binary.BigEndian.AppendUint64(buf, index)
	// timestamp occupies 16 bytes in the pre-image; the high 8 bytes are
	// always zero for Unix-millisecond values.
	buf = binary.BigEndian.AppendUint64(buf, 0)
	buf = binary.BigEndian.AppendUint64(buf, timestampMillis)
	buf = append(buf, previousHash[:]...)
	buf = append(buf, encodedTransactions...)
	return buf
}

// PrefixHasher holds an absorbed SHA3-256 state over a header prefix, ready
// to be cheaply duplicated per candidate nonce by the PoW search.
type PrefixHasher struct {
	prefix []byte
	seed   hash.Hash
}

// NewPrefixHasher absorbs prefix once and returns a reusable hasher.
func NewPrefixHasher(prefix []byte) *PrefixHasher {
	h := sha3.New256()
	h.Write(prefix)
	return &PrefixHasher{prefix: prefix, seed: h}
}

// CandidateHash computes the hash for a candidate nonce. When the
// underlying sha3 state implements hash.Cloner, the absorbed prefix state
// is duplicated and only the nonce bytes are written; otherwise the prefix
// is re-absorbed from scratch, which is correct but roughly 20x slower
// under a heavy nonce search.
func (p *PrefixHasher) CandidateHash(nonce uint64) Hash {
	var nonceBytes [8]byte
	binary.BigEndian.PutUint64(nonceBytes[:], nonce)

	if c, ok := p.seed.(hash.Cloner); ok {
		if h, err := c.Clone(); err == nil {
			h.Write(nonceBytes[:])
			var out [Size]byte
			h.Sum(out[:0])
			return Hash(out)
		}
	}

	h := sha3.New256()
	h.Write(p.prefix)
	h.Write(nonceBytes[:])
	var out [Size]byte
	h.Sum(out[:0])
	return Hash(out)
}

// CandidateHash is the single-call convenience form used outside a hot PoW
// loop (e.g. VerifyHash): re-absorbs prefix and nonce in one shot.
func CandidateHash(prefix []byte, nonce uint64) Hash {
	var nonceBytes [8]byte
	binary.BigEndian.PutUint64(nonceBytes[:], nonce)
	h := sha3.New256()
	h.Write(prefix)
	h.Write(nonceBytes[:])
	var out [Size]byte
	h.Sum(out[:0])
	return Hash(out)
}
