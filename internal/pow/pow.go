// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

// Package pow implements the leading-zero-bits proof-of-work nonce search
// used to seal blocks.
package pow

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/pqchain/pqledger/internal/pqhash"
)

var (
	// ErrNonceTooHard is returned when no nonce in [0, maxAttempts) meets
	// difficulty.
	ErrNonceTooHard = errors.New("pow: no nonce satisfies difficulty within attempt budget")
	// ErrCancelled is returned when ctx is done before a nonce is found.
	ErrCancelled = errors.New("pow: search cancelled")
)

// checkInterval bounds how many hashes a worker computes between checks of
// the shared found flag and ctx cancellation.
const checkInterval = 4096

// Search looks for a nonce such that CandidateHash(prefix, nonce) has at
// least difficulty leading zero bits, trying nonces in [0, maxAttempts).
// workers goroutines search disjoint strided shards concurrently (worker w
// tries w, w+workers, w+2*workers, ...), sharing one atomic "found" flag so
// the first hit stops the rest. The first goroutine to find a satisfying
// nonce reports it; ties are broken by whichever wins the flag's
// compare-and-swap.
func Search(ctx context.Context, prefix []byte, difficulty int, maxAttempts uint64, workers int) (uint64, pqhash.Hash, error) {
	if workers < 1 {
		workers = 1
	}
	if maxAttempts == 0 {
		return 0, pqhash.Hash{}, ErrNonceTooHard
	}

	g, gctx := errgroup.WithContext(ctx)
	var found atomic.Bool
	var resultMu sync.Mutex
	var resultNonce uint64
	var resultHash pqhash.Hash

	for w := 0; w < workers; w++ {
		worker := uint64(w)
		stride := uint64(workers)
		g.Go(func() error {
			hasher := pqhash.NewPrefixHasher(prefix)
			sinceCheck := 0
			for nonce := worker; nonce < maxAttempts; nonce += stride {
				if sinceCheck >= checkInterval {
					if found.Load() {
						return nil
					}
					select {
					case <-gctx.Done():
						return nil
					default:
					}
					sinceCheck = 0
				}
				sinceCheck++

				h := hasher.CandidateHash(nonce)
				if h.LeadingZeroBits() >= difficulty {
					if found.CompareAndSwap(false, true) {
						resultMu.Lock()
						resultNonce = nonce
						resultHash = h
						resultMu.Unlock()
					}
					return nil
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, pqhash.Hash{}, err
	}

	if found.Load() {
		return resultNonce, resultHash, nil
	}
	if ctx.Err() != nil {
		return 0, pqhash.Hash{}, ErrCancelled
	}
	return 0, pqhash.Hash{}, ErrNonceTooHard
}
