// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

package address

import (
	"testing"

	"github.com/pqchain/pqledger/internal/falcon"
)

func TestFromPublicKeyDeterministic(t *testing.T) {
	var pub falcon.PublicKey
	for i := range pub {
		pub[i] = byte(i)
	}
	a1 := FromPublicKey(pub)
	a2 := FromPublicKey(pub)
	if a1 != a2 {
		t.Fatalf("same public key produced different addresses: %s vs %s", a1, a2)
	}

	pub[0] ^= 0xff
	a3 := FromPublicKey(pub)
	if a1 == a3 {
		t.Fatalf("different public keys produced the same address")
	}
}

func TestBase58RoundTrip(t *testing.T) {
	var pub falcon.PublicKey
	pub[10] = 0x42
	a := FromPublicKey(pub)

	s := a.String()
	back, err := FromBase58(s)
	if err != nil {
		t.Fatalf("FromBase58: %v", err)
	}
	if back != a {
		t.Fatalf("round trip mismatch: got %s, want %s", back, a)
	}
}

func TestFromBase58RejectsBadEncoding(t *testing.T) {
	if _, err := FromBase58("not-valid-base58-!!!"); err == nil {
		t.Fatal("expected error for invalid base58 text")
	}
}

func TestFromBase58RejectsWrongLength(t *testing.T) {
	// "abc" is valid base58 but decodes to fewer than 32 bytes.
	if _, err := FromBase58("abc"); err == nil {
		t.Fatal("expected error for short decoded length")
	}
}

func TestZeroAndEqual(t *testing.T) {
	var a Address
	if !a.IsZero() {
		t.Fatal("zero-value Address should report IsZero")
	}
	if !a.Equal(Zero) {
		t.Fatal("zero-value Address should equal Zero")
	}

	var pub falcon.PublicKey
	pub[0] = 1
	b := FromPublicKey(pub)
	if b.IsZero() {
		t.Fatal("derived address should not be zero")
	}
	if a.Equal(b) {
		t.Fatal("distinct addresses should not be equal")
	}
}
