// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/pqchain/pqledger/internal/address"
	"github.com/pqchain/pqledger/internal/pqhash"
)

func TestForgeProducesVerifiableBlock(t *testing.T) {
	to := address.FromBytes([32]byte{0x01})
	txs := []Transaction{*NewMint(to, 1000)}

	b, err := Forge(context.Background(), 0, 1700000000000, pqhash.Zero, txs, 8, 4, 500_000)
	if err != nil {
		t.Fatalf("Forge: %v", err)
	}
	if err := b.VerifyHash(8); err != nil {
		t.Fatalf("VerifyHash: %v", err)
	}
	if err := b.Verify(nil, 8); err != nil {
		t.Fatalf("Verify(nil): %v", err)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	to := address.FromBytes([32]byte{0x02})
	txs := []Transaction{*NewMint(to, 500)}

	b, err := Forge(context.Background(), 0, 1700000000000, pqhash.Zero, txs, 8, 4, 500_000)
	if err != nil {
		t.Fatalf("Forge: %v", err)
	}

	b.Transactions[0].Amount = 999999
	if err := b.VerifyHash(8); err == nil {
		t.Fatal("expected VerifyHash to fail after tampering with a transaction amount")
	}
}

func TestForgeSurfacesNonceTooHard(t *testing.T) {
	to := address.FromBytes([32]byte{0x04})
	_, err := Forge(context.Background(), 0, 1, pqhash.Zero, []Transaction{*NewMint(to, 1)}, 256, 2, 100)
	if !errors.Is(err, ErrNonceTooHard) {
		t.Fatalf("expected ErrNonceTooHard, got %v", err)
	}
}

func TestForgeSurfacesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	to := address.FromBytes([32]byte{0x05})
	_, err := Forge(ctx, 0, 1, pqhash.Zero, []Transaction{*NewMint(to, 1)}, 256, 2, 1<<40)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestVerifyChecksLinkage(t *testing.T) {
	genesisTo := address.FromBytes([32]byte{0x03})
	genesis, err := Forge(context.Background(), 0, 1, pqhash.Zero, []Transaction{*NewMint(genesisTo, 1)}, 4, 2, 200_000)
	if err != nil {
		t.Fatalf("Forge genesis: %v", err)
	}

	next, err := Forge(context.Background(), 1, 2, genesis.Hash, nil, 4, 2, 200_000)
	if err != nil {
		t.Fatalf("Forge next: %v", err)
	}
	if err := next.Verify(genesis, 4); err != nil {
		t.Fatalf("Verify(genesis): %v", err)
	}

	wrongIndex, err := Forge(context.Background(), 5, 2, genesis.Hash, nil, 4, 2, 200_000)
	if err != nil {
		t.Fatalf("Forge wrongIndex: %v", err)
	}
	if err := wrongIndex.Verify(genesis, 4); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
}
