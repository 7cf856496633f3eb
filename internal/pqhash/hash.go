// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

// Package pqhash implements the block hashing primitive: a two-stage
// SHA3-256 over a big-endian header prefix plus a varying nonce.
package pqhash

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Size is the byte width of a Hash.
const Size = 32

// Hash is a 32-byte opaque digest. Equality is byte-equality.
type Hash [Size]byte

// Zero is the all-zero hash used as the genesis block's previous-hash.
var Zero Hash

// FromBytes builds a Hash from a raw 32-byte array.
func FromBytes(b [Size]byte) Hash {
	return Hash(b)
}

// FromSlice builds a Hash from a byte slice, failing if its length isn't 32.
func FromSlice(b []byte) (Hash, error) {
	var h Hash
	if len(b) != Size {
		return h, fmt.Errorf("pqhash: want %d bytes, got %d", Size, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// Sum256 hashes data in one shot.
func Sum256(data []byte) Hash {
	return Hash(sha3.Sum256(data))
}

// Bytes returns the hash's raw bytes.
func (h Hash) Bytes() []byte {
	return h[:]
}

// Equal reports whether two hashes hold the same bytes.
func (h Hash) Equal(other Hash) bool {
	return h == other
}

// IsZero reports whether h is the all-zero hash.
func (h Hash) IsZero() bool {
	return h == Zero
}

// String renders the hash as lowercase hex, fixed 64 characters.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// LeadingZeroBits counts leading zero bits across the hash's 32 bytes,
// per byte: 8 if the byte is zero, otherwise the number of leading zero
// bits in that byte, and stop.
func (h Hash) LeadingZeroBits() int {
	bits := 0
	for _, b := range h {
		if b == 0 {
			bits += 8
			continue
		}
		n := 0
		for mask := byte(0x80); mask > 0 && b&mask == 0; mask >>= 1 {
			n++
		}
		bits += n
		break
	}
	return bits
}
