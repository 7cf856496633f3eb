// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

package chain

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pqchain/pqledger/internal/address"
	"github.com/pqchain/pqledger/internal/falcon"
)

func mustKeypair(t *testing.T) (falcon.PublicKey, falcon.PrivateKey) {
	t.Helper()
	pub, priv, err := falcon.Default.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	return pub, priv
}

func TestTransferSignAndVerify(t *testing.T) {
	pub, priv := mustKeypair(t)
	to := address.FromBytes([32]byte{0xaa})

	tx, err := NewTransfer(pub, priv, to, 500)
	if err != nil {
		t.Fatalf("NewTransfer: %v", err)
	}
	if tx.Type != Transfer {
		t.Fatalf("expected Transfer type, got %s", tx.Type)
	}
	if err := tx.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestTransferVerifyRejectsTamperedAmount(t *testing.T) {
	pub, priv := mustKeypair(t)
	to := address.FromBytes([32]byte{0xbb})

	tx, err := NewTransfer(pub, priv, to, 100)
	if err != nil {
		t.Fatalf("NewTransfer: %v", err)
	}
	tx.Amount = 999999
	if err := tx.Verify(); err == nil {
		t.Fatal("expected verification failure after tampering with amount")
	}
}

func TestTransferVerifyRejectsPublicKeyAddressMismatch(t *testing.T) {
	pub, priv := mustKeypair(t)
	otherPub, _ := mustKeypair(t)
	to := address.FromBytes([32]byte{0xcc})

	tx, err := NewTransfer(pub, priv, to, 50)
	if err != nil {
		t.Fatalf("NewTransfer: %v", err)
	}
	tx.FromPublicKey = otherPub
	if err := tx.Verify(); !errors.Is(err, ErrPublicKeyAddressMismatch) {
		t.Fatalf("expected ErrPublicKeyAddressMismatch, got %v", err)
	}
}

func TestMintIsUnsignedAndVerifies(t *testing.T) {
	to := address.FromBytes([32]byte{0x01})
	tx := NewMint(to, 1_000_000)

	if tx.Type != Mint {
		t.Fatalf("expected Mint type, got %s", tx.Type)
	}
	if !tx.From.IsZero() {
		t.Fatal("Mint transaction should have a zero From address")
	}
	if err := tx.Verify(); err != nil {
		t.Fatalf("Mint should always verify: %v", err)
	}
}

func TestSigningBytesLayout(t *testing.T) {
	pub, _ := mustKeypair(t)
	to := address.FromBytes([32]byte{0x02})
	tx := &Transaction{
		Type:          Transfer,
		From:          address.FromPublicKey(pub),
		FromPublicKey: pub,
		To:            to,
		Amount:        7,
	}

	got := tx.SigningBytes()
	if len(got) != address.Size+falcon.PublicKeySize+address.Size+8 {
		t.Fatalf("unexpected signing bytes length: %d", len(got))
	}
	if !bytes.Equal(got[:address.Size], tx.From.Bytes()) {
		t.Fatal("signing bytes should begin with from_address")
	}
	if !bytes.Equal(got[address.Size:address.Size+falcon.PublicKeySize], pub[:]) {
		t.Fatal("signing bytes should embed from_public_key next")
	}
	toStart := address.Size + falcon.PublicKeySize
	if !bytes.Equal(got[toStart:toStart+address.Size], to.Bytes()) {
		t.Fatal("signing bytes should place to_address after the public key")
	}
	// Amount is little-endian in the signing payload, unlike the big-endian
	// block header fields.
	wantAmount := []byte{7, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(got[toStart+address.Size:], wantAmount) {
		t.Fatalf("signing bytes should end with little-endian amount, got %x", got[toStart+address.Size:])
	}
	// from_address appears exactly once, at the very front.
	if bytes.Count(got, tx.From.Bytes()) != 1 {
		t.Fatal("from_address should appear exactly once in the signing bytes")
	}
}
