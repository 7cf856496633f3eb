// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

package pow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pqchain/pqledger/internal/pqhash"
)

func TestSearchFindsSatisfyingNonce(t *testing.T) {
	prefix := []byte("test-block-prefix")
	const difficulty = 8 // one leading zero byte, cheap to find

	nonce, hash, err := Search(context.Background(), prefix, difficulty, 1_000_000, 4)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if hash.LeadingZeroBits() < difficulty {
		t.Fatalf("returned hash has %d leading zero bits, want >= %d", hash.LeadingZeroBits(), difficulty)
	}
	want := pqhash.CandidateHash(prefix, nonce)
	if want != hash {
		t.Fatalf("returned hash doesn't match recomputed hash for nonce %d", nonce)
	}
}

func TestSearchSingleAndMultiWorkerAgree(t *testing.T) {
	prefix := []byte("agreement-check")
	const difficulty = 6

	n1, h1, err := Search(context.Background(), prefix, difficulty, 200_000, 1)
	if err != nil {
		t.Fatalf("single worker search: %v", err)
	}
	n2, h2, err := Search(context.Background(), prefix, difficulty, 200_000, 8)
	if err != nil {
		t.Fatalf("multi worker search: %v", err)
	}

	if pqhash.CandidateHash(prefix, n1) != h1 || pqhash.CandidateHash(prefix, n2) != h2 {
		t.Fatal("returned nonce/hash pairs must be internally consistent")
	}
	if h1.LeadingZeroBits() < difficulty || h2.LeadingZeroBits() < difficulty {
		t.Fatal("both searches must satisfy difficulty")
	}
}

func TestSearchReturnsNonceTooHard(t *testing.T) {
	prefix := []byte("impossible")
	_, _, err := Search(context.Background(), prefix, 256, 64, 2)
	if !errors.Is(err, ErrNonceTooHard) {
		t.Fatalf("expected ErrNonceTooHard, got %v", err)
	}
}

func TestSearchRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, _, err := Search(ctx, []byte("slow"), 256, 1<<40, 2)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}
