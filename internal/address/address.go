// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

// Package address implements the 32-byte account identifier: derived as
// SHA3-256(public key), displayed in Base58.
package address

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/pqchain/pqledger/internal/falcon"
)

// Size is the byte width of an Address.
const Size = 32

var (
	// ErrBase58 is returned when the text form isn't valid Base58.
	ErrBase58 = errors.New("address: invalid base58 encoding")
	// ErrInputLength is returned when decoded bytes aren't exactly Size.
	ErrInputLength = errors.New("address: decoded length must be 32 bytes")
)

// Address is a 32-byte opaque account identifier, distinct from pqhash.Hash.
type Address [Size]byte

// Zero is the all-zero address used by Mint transactions' From fields.
var Zero Address

// FromBytes builds an Address from a raw 32-byte array.
func FromBytes(b [Size]byte) Address {
	return Address(b)
}

// FromPublicKey derives the address that owns pub: SHA3-256 of the full
// 897-byte public key.
func FromPublicKey(pub falcon.PublicKey) Address {
	return Address(sha3.Sum256(pub[:]))
}

// FromBase58 decodes a Base58 address string, failing with ErrBase58 if the
// text isn't valid Base58 or ErrInputLength if it doesn't decode to exactly
// 32 bytes.
func FromBase58(s string) (Address, error) {
	var a Address
	decoded, err := base58.Decode(s)
	if err != nil {
		return a, fmt.Errorf("%w: %v", ErrBase58, err)
	}
	if len(decoded) != Size {
		return a, fmt.Errorf("%w: got %d", ErrInputLength, len(decoded))
	}
	copy(a[:], decoded)
	return a, nil
}

// MustFromBase58 is a test/CLI convenience that panics on error. Never used
// inside the consensus-critical core.
func MustFromBase58(s string) Address {
	a, err := FromBase58(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Bytes returns the address's raw bytes.
func (a Address) Bytes() []byte {
	return a[:]
}

// Equal reports whether two addresses hold the same bytes.
func (a Address) Equal(other Address) bool {
	return a == other
}

// IsZero reports whether a is the all-zero address.
func (a Address) IsZero() bool {
	return a == Zero
}

// String renders the address as Base58.
func (a Address) String() string {
	return base58.Encode(a[:])
}
