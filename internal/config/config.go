// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

// Package config holds the ledger's runtime parameters: proof-of-work
// difficulty, transaction cost, nonce search budget, and genesis mint
// settings. Loaded from YAML: a Default() baseline, overlaid by an optional
// file on disk.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pqchain/pqledger/internal/address"
	"github.com/pqchain/pqledger/internal/chain"
)

// genesisMintAddressBytes is the hard-coded 32-byte genesis mint recipient.
// The raw bytes are the source of truth; the Base58 literal operators see is
// always derived from them, so the value and its display form cannot drift
// apart.
var genesisMintAddressBytes = [address.Size]byte{
	0x70, 0x71, 0x6c, 0x65, 0x64, 0x67, 0x65, 0x72,
	0x2d, 0x67, 0x65, 0x6e, 0x65, 0x73, 0x69, 0x73,
	0x2d, 0x6d, 0x69, 0x6e, 0x74, 0x2d, 0x61, 0x64,
	0x64, 0x72, 0x65, 0x73, 0x73, 0x2d, 0x76, 0x31,
}

// DefaultGenesisMintAddress is the hard-coded genesis mint recipient. All
// nodes using this default converge on the same genesis balance entry.
var DefaultGenesisMintAddress = address.FromBytes(genesisMintAddressBytes)

// DefaultGenesisMintAddressBase58 is DefaultGenesisMintAddress's Base58 text
// form, the literal an operator would paste into a config file.
var DefaultGenesisMintAddressBase58 = DefaultGenesisMintAddress.String()

const (
	// DefaultDifficulty is the number of leading zero bits a block hash must
	// carry: one full leading zero byte.
	DefaultDifficulty = 8
	// DefaultTransactionCost is the constant per-transaction burn. Zero
	// today; the field exists so a non-zero fee is a config change, not a
	// schema change.
	DefaultTransactionCost = 0
	// DefaultMaxNonceAttempts bounds the proof-of-work search space tried
	// before giving up with ErrNonceTooHard.
	DefaultMaxNonceAttempts = 1_000_000_000
	// DefaultRPCPort is the port internal/rpcserver listens on by default.
	DefaultRPCPort = 8585
)

// DefaultGenesisMintAmount is half the uint64 range, leaving headroom so
// no sequence of transfers can overflow a balance.
const DefaultGenesisMintAmount = ^uint64(0) / 2

// Config holds every tunable of the ledger engine. The description tags are
// documentation only; the struct is its own schema doc.
type Config struct {
	Difficulty         int    `yaml:"difficulty" description:"Leading zero bits required in a block hash" default:"8"`
	TransactionCost    uint64 `yaml:"transaction_cost" description:"Flat cost burned per transaction" default:"0"`
	MaxNonceAttempts   uint64 `yaml:"max_nonce_attempts" description:"Nonces tried before NonceTooHard" default:"1000000000"`
	Workers            int    `yaml:"workers" description:"Proof-of-work worker goroutines (0 = GOMAXPROCS)" default:"0"`
	GenesisMintAddress string `yaml:"genesis_mint_address" description:"Base58 address credited by the genesis Mint" default:"8ZvyWsto9zAY37WXsjNMSneyadLF2XBy6m4Bf8hnL6un"`
	GenesisMintAmount  uint64 `yaml:"genesis_mint_amount" description:"Units credited to the genesis mint address" default:"9223372036854775807"`
	RPCPort            int    `yaml:"rpc_port" description:"Port internal/rpcserver listens on" default:"8585"`
}

// Default returns the baseline configuration: one leading zero byte of
// difficulty, zero transaction cost, half the uint64 range minted to the
// hard-coded genesis address, and a GOMAXPROCS-sized PoW worker pool.
func Default() Config {
	return Config{
		Difficulty:         DefaultDifficulty,
		TransactionCost:    DefaultTransactionCost,
		MaxNonceAttempts:   DefaultMaxNonceAttempts,
		Workers:            0,
		GenesisMintAddress: DefaultGenesisMintAddressBase58,
		GenesisMintAmount:  DefaultGenesisMintAmount,
		RPCPort:            DefaultRPCPort,
	}
}

// Load reads YAML configuration from path, overlaying it onto Default().
// A missing file is not an error; it returns the default configuration.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// ChainConfig resolves the textual Config into chain.Config, the shape the
// ledger engine actually consumes: a parsed GenesisMintAddress and a
// resolved worker count (GOMAXPROCS when Workers is left at its zero value).
func (c Config) ChainConfig() (chain.Config, error) {
	mintAddr, err := address.FromBase58(c.GenesisMintAddress)
	if err != nil {
		return chain.Config{}, fmt.Errorf("config: genesis_mint_address: %w", err)
	}

	workers := c.Workers
	if workers <= 0 {
		workers = numCPU()
	}

	return chain.Config{
		Difficulty:         c.Difficulty,
		TransactionCost:    c.TransactionCost,
		MaxNonceAttempts:   c.MaxNonceAttempts,
		Workers:            workers,
		GenesisMintAddress: mintAddr,
		GenesisMintAmount:  c.GenesisMintAmount,
	}, nil
}
