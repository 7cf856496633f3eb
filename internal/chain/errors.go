// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

package chain

import (
	"errors"
	"fmt"
)

// Transaction-layer errors. Signature/public-key width errors surface from
// internal/falcon (ErrSignatureBadLength, ErrPublicKeyBadLength) since
// Transaction's Signature and FromPublicKey fields are fixed-width arrays;
// a wrong-width signature can only occur when decoding raw bytes from
// outside the wire codec, which is exactly where internal/falcon's checks
// live.
var (
	// ErrVerification indicates the signature does not verify.
	ErrVerification = errors.New("chain: transaction signature verification failed")
	// ErrPublicKeyAddressMismatch indicates SHA3-256(from_public_key) != from_address.
	ErrPublicKeyAddressMismatch = errors.New("chain: from_public_key does not hash to from_address")
	// ErrInsufficientBalance indicates the sender can't cover amount+cost.
	ErrInsufficientBalance = errors.New("chain: insufficient balance")
)

// Block-layer errors.
var (
	// ErrInvalidHash indicates a block's stored hash doesn't match its
	// recomputed hash, or the recomputed hash no longer meets difficulty.
	ErrInvalidHash = errors.New("chain: invalid block hash")
	// ErrInvalidPreviousHash indicates block.PreviousHash != prev.Hash.
	ErrInvalidPreviousHash = errors.New("chain: invalid previous hash")
	// ErrInvalidIndex indicates block.Index != prev.Index+1.
	ErrInvalidIndex = errors.New("chain: invalid block index")
	// ErrNonceTooHard indicates no nonce in the search space met difficulty.
	ErrNonceTooHard = errors.New("chain: no nonce satisfies difficulty within attempt budget")
	// ErrCancelled indicates the PoW search was cancelled via context.
	ErrCancelled = errors.New("chain: proof-of-work search cancelled")
	ErrEncode    = errors.New("chain: encode error")
	ErrDecode    = errors.New("chain: decode error")
)

// Ledger-layer errors.
var (
	// ErrForbiddenMintTransaction indicates a Mint transaction outside genesis.
	ErrForbiddenMintTransaction = errors.New("chain: mint transaction outside genesis block")
	// ErrBlockNotFound indicates a lookup by index found nothing.
	ErrBlockNotFound = errors.New("chain: block not found")
	// ErrGenesisBlock indicates a malformed or missing genesis block.
	ErrGenesisBlock = errors.New("chain: invalid genesis block")
)

// HashMismatchError carries both the expected and observed hash for
// diagnostics.
type HashMismatchError struct {
	Kind string // "hash", "previous_hash"
	Got  string
	Want string
}

func (e *HashMismatchError) Error() string {
	return "chain: " + e.Kind + " mismatch: got " + e.Got + ", want " + e.Want
}

// Unwrap lets callers match errors.Is(err, ErrInvalidHash) or
// errors.Is(err, ErrInvalidPreviousHash) regardless of the mismatch detail.
func (e *HashMismatchError) Unwrap() error {
	if e.Kind == "previous_hash" {
		return ErrInvalidPreviousHash
	}
	return ErrInvalidHash
}

// IndexMismatchError carries both the expected and observed index.
type IndexMismatchError struct {
	Got, Want uint64
}

func (e *IndexMismatchError) Error() string {
	return fmt.Sprintf("chain: index mismatch: got %d, want %d", e.Got, e.Want)
}

// Unwrap lets callers match errors.Is(err, ErrInvalidIndex).
func (e *IndexMismatchError) Unwrap() error {
	return ErrInvalidIndex
}
