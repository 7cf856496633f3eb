// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

package rpcserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pqchain/pqledger/internal/address"
	"github.com/pqchain/pqledger/internal/chain"
)

func testLedger(t *testing.T) (*chain.Ledger, address.Address) {
	t.Helper()
	mintAddr := address.FromBytes([32]byte{0x09})
	l, err := chain.New(context.Background(), chain.Config{
		Difficulty:         4,
		TransactionCost:    0,
		MaxNonceAttempts:   2_000_000,
		Workers:            4,
		GenesisMintAddress: mintAddr,
		GenesisMintAmount:  5000,
	})
	if err != nil {
		t.Fatalf("chain.New: %v", err)
	}
	return l, mintAddr
}

func TestHandleBalanceKnownAddress(t *testing.T) {
	l, mintAddr := testLedger(t)
	srv := New(l, nil)

	req := httptest.NewRequest(http.MethodGet, "/balance/"+mintAddr.String(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp balanceResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Balance != 5000 {
		t.Fatalf("balance = %d, want 5000", resp.Balance)
	}
}

func TestHandleBalanceUnknownAddressIsZero(t *testing.T) {
	l, _ := testLedger(t)
	srv := New(l, nil)

	other := address.FromBytes([32]byte{0xfe})
	req := httptest.NewRequest(http.MethodGet, "/balance/"+other.String(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp balanceResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Balance != 0 {
		t.Fatalf("balance = %d, want 0", resp.Balance)
	}
}

func TestHandleBalanceRejectsMalformedAddress(t *testing.T) {
	l, _ := testLedger(t)
	srv := New(l, nil)

	req := httptest.NewRequest(http.MethodGet, "/balance/not-valid-!!!", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "invalid address" {
		t.Fatalf("error = %q, want %q", resp.Error, "invalid address")
	}
}
