// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/pqchain/pqledger/internal/pow"
	"github.com/pqchain/pqledger/internal/pqhash"
)

// Block is one link in the chain: an ordered set of transactions sealed by
// a proof-of-work nonce.
type Block struct {
	Index        uint64
	Timestamp    uint64 // Unix milliseconds
	Hash         pqhash.Hash
	PreviousHash pqhash.Hash
	Transactions []Transaction
	Nonce        uint64
}

// prefix builds the bytes pow.Search and VerifyHash both hash: the header
// fields plus the block's own transaction vector, ahead of the nonce.
func (b *Block) prefix() []byte {
	return pqhash.Prefix(b.Index, b.Timestamp, b.PreviousHash, EncodeTransactions(b.Transactions))
}

// Forge runs a proof-of-work search to seal index/timestamp/prevHash/txs
// into a new Block at the given difficulty (leading zero bits). ctx governs
// cancellation and is threaded straight into pow.Search.
func Forge(ctx context.Context, index uint64, timestamp uint64, prevHash pqhash.Hash, txs []Transaction, difficulty int, workers int, maxAttempts uint64) (*Block, error) {
	b := &Block{
		Index:        index,
		Timestamp:    timestamp,
		PreviousHash: prevHash,
		Transactions: txs,
	}
	nonce, hash, err := pow.Search(ctx, b.prefix(), difficulty, maxAttempts, workers)
	if err != nil {
		switch {
		case errors.Is(err, pow.ErrNonceTooHard):
			err = ErrNonceTooHard
		case errors.Is(err, pow.ErrCancelled):
			err = ErrCancelled
		}
		return nil, fmt.Errorf("chain: forging block %d: %w", index, err)
	}
	b.Nonce = nonce
	b.Hash = hash
	return b, nil
}

// VerifyHash recomputes the block's hash from its fields and nonce, confirms
// it matches the stored Hash, and additionally confirms the recomputed hash
// still meets difficulty leading zero bits: a block whose hash was
// re-derived consistently but whose difficulty has since dropped (e.g. via
// on-disk tampering combined with a stale nonce) is still invalid.
func (b *Block) VerifyHash(difficulty int) error {
	want := pqhash.CandidateHash(b.prefix(), b.Nonce)
	if want != b.Hash {
		return &HashMismatchError{Kind: "hash", Got: b.Hash.String(), Want: want.String()}
	}
	if want.LeadingZeroBits() < difficulty {
		return fmt.Errorf("%w: %s has %d leading zero bits, want >= %d", ErrInvalidHash, want, want.LeadingZeroBits(), difficulty)
	}
	return nil
}

// Verify checks b against its declared predecessor: correct index
// succession, correct previous-hash linkage, and a self-consistent hash that
// still meets difficulty. prev is nil only for the genesis block, which
// Verify treats as self-contained (index 0, all-zero previous hash).
func (b *Block) Verify(prev *Block, difficulty int) error {
	if prev == nil {
		if b.Index != 0 {
			return &IndexMismatchError{Got: b.Index, Want: 0}
		}
		if !b.PreviousHash.IsZero() {
			return &HashMismatchError{Kind: "previous_hash", Got: b.PreviousHash.String(), Want: pqhash.Zero.String()}
		}
		return b.VerifyHash(difficulty)
	}
	if b.Index != prev.Index+1 {
		return &IndexMismatchError{Got: b.Index, Want: prev.Index + 1}
	}
	if b.PreviousHash != prev.Hash {
		return &HashMismatchError{Kind: "previous_hash", Got: b.PreviousHash.String(), Want: prev.Hash.String()}
	}
	return b.VerifyHash(difficulty)
}

// Summary renders a short one-line description for logging: index, an
// abbreviated hash, nonce, and transaction count. Never used by the
// consensus-critical path, only by cmd/pqledgerd's log output.
func (b *Block) Summary() string {
	h := b.Hash.String()
	if len(h) > 12 {
		h = h[:12] + "…"
	}
	return fmt.Sprintf("block#%d hash=%s nonce=%d txs=%d", b.Index, h, b.Nonce, len(b.Transactions))
}
