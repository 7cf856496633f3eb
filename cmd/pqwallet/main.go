// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

// Command pqwallet is the CLI front-end: wallet generation, account
// inspection, and balance lookups against a running pqledgerd. None of this
// is part of the ledger's consensus contract; it is a thin client over
// internal/walletfile and internal/rpcserver's HTTP surface.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/pqchain/pqledger/internal/address"
	"github.com/pqchain/pqledger/internal/falcon"
	"github.com/pqchain/pqledger/internal/walletfile"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		runGenerate(os.Args[2:])
	case "account":
		runAccount(os.Args[2:])
	case "balance":
		runBalance(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pqwallet <generate|account|balance> [flags]")
}

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	out := fs.String("out", "wallet.yaml", "Path to write the new wallet file")
	fs.Parse(args)

	pub, priv, err := falcon.Default.GenerateKeypair()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pqwallet: generating keypair: %v\n", err)
		os.Exit(1)
	}
	if err := walletfile.Save(*out, pub, priv); err != nil {
		fmt.Fprintf(os.Stderr, "pqwallet: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *out)
	fmt.Printf("address: %s\n", address.FromPublicKey(pub))
}

func runAccount(args []string) {
	fs := flag.NewFlagSet("account", flag.ExitOnError)
	in := fs.String("wallet", "wallet.yaml", "Path to a wallet file")
	fs.Parse(args)

	pub, _, err := walletfile.Load(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pqwallet: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("public key: %x\n", pub[:])
	fmt.Printf("address:    %s\n", address.FromPublicKey(pub))
}

type balanceResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func runBalance(args []string) {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	rpcAddr := fs.String("rpc", "http://localhost:8585", "pqledgerd RPC base URL")
	addrStr := fs.String("address", "", "Base58 address to query (required)")
	fs.Parse(args)

	if *addrStr == "" {
		fmt.Fprintln(os.Stderr, "pqwallet: -address is required")
		os.Exit(1)
	}
	if _, err := address.FromBase58(*addrStr); err != nil {
		fmt.Fprintf(os.Stderr, "pqwallet: invalid address: %v\n", err)
		os.Exit(1)
	}

	resp, err := http.Get(*rpcAddr + "/balance/" + *addrStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pqwallet: querying %s: %v\n", *rpcAddr, err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			fmt.Fprintf(os.Stderr, "pqwallet: %s\n", e.Error)
		} else {
			fmt.Fprintf(os.Stderr, "pqwallet: rpc returned status %d\n", resp.StatusCode)
		}
		os.Exit(1)
	}

	var b balanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		fmt.Fprintf(os.Stderr, "pqwallet: decoding response: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %d\n", b.Address, b.Balance)
}
