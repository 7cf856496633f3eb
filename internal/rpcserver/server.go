// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

// Package rpcserver exposes a read-only HTTP surface over a Ledger: a
// single balance-query endpoint. It holds a shared reference to a
// *chain.Ledger and never mutates it.
package rpcserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pqchain/pqledger/internal/address"
	"github.com/pqchain/pqledger/internal/chain"
)

// Server serves GET /balance/{address} against an in-memory Ledger.
type Server struct {
	ledger *chain.Ledger
	log    *slog.Logger
	mux    *http.ServeMux
}

// New builds a Server over ledger. A nil logger falls back to slog.Default().
func New(ledger *chain.Ledger, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{ledger: ledger, log: log, mux: http.NewServeMux()}
	s.mux.HandleFunc("/balance/", s.handleBalance)
	return s
}

// ServeHTTP satisfies http.Handler, so Server can be passed straight to
// http.ListenAndServe or wrapped in middleware by the caller.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// balanceResponse is the JSON body returned by a successful balance query.
type balanceResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

// errorResponse is the JSON body returned on a transport-level fault.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code, consolidating
// the repeated Content-Type/WriteHeader/Encode sequence.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// handleBalance answers GET /balance/{address_base58} -> {address, balance}.
// A malformed address surfaces as "invalid address"; absent addresses
// resolve to a balance of 0, never an error.
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	raw := r.URL.Path[len("/balance/"):]
	addr, err := address.FromBase58(raw)
	if err != nil {
		s.log.Debug("rejected balance query", "raw", raw, "err", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid address"})
		return
	}

	balance := s.ledger.Balance(addr)
	writeJSON(w, http.StatusOK, balanceResponse{Address: addr.String(), Balance: balance})
}
