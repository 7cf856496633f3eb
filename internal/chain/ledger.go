// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

package chain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pqchain/pqledger/internal/address"
	"github.com/pqchain/pqledger/internal/pqhash"
)

// Config is the subset of internal/config.Config the ledger needs to forge
// and admit blocks. Defined here, rather than importing internal/config
// directly, so the chain package has no dependency on configuration parsing.
type Config struct {
	Difficulty         int
	TransactionCost    uint64
	MaxNonceAttempts   uint64
	Workers            int
	GenesisMintAddress address.Address
	GenesisMintAmount  uint64
}

// Ledger is the account-balance state machine: an ordered chain of blocks
// plus the balance map that results from applying them in order. Every
// exported method takes mu; callers that need multi-step consistency hold a
// snapshot from Blocks/Balances instead of calling back in.
type Ledger struct {
	mu    sync.RWMutex
	cfg   Config
	chain []*Block
	state map[address.Address]uint64
}

// New forges and applies a fresh genesis block crediting cfg.GenesisMintAddress
// with cfg.GenesisMintAmount, then returns the resulting Ledger. Genesis is
// not frozen: each call runs its own proof-of-work search, so two
// independently started ledgers will not share a genesis hash unless one is
// persisted and reloaded via DecodeLedger.
func New(ctx context.Context, cfg Config) (*Ledger, error) {
	mint := NewMint(cfg.GenesisMintAddress, cfg.GenesisMintAmount)
	// Genesis is pinned to timestamp 0 so its hash varies only with the
	// searched nonce, never with wall-clock time at boot.
	genesis, err := Forge(ctx, 0, 0, pqhash.Zero, []Transaction{*mint}, cfg.Difficulty, cfg.Workers, cfg.MaxNonceAttempts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenesisBlock, err)
	}

	l := &Ledger{
		cfg:   cfg,
		chain: nil,
		state: make(map[address.Address]uint64),
	}
	if err := l.applyBlockLocked(genesis, true); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenesisBlock, err)
	}
	return l, nil
}

// NewFromChain rebuilds a Ledger by replaying an already-forged chain of
// blocks (e.g. one decoded from disk) through ApplyBlock, one block at a
// time starting from genesis. DecodeLedger builds on this: the encoded
// balance map is never trusted directly, only recomputed by replay.
func NewFromChain(cfg Config, blocks []*Block) (*Ledger, error) {
	l := &Ledger{
		cfg:   cfg,
		chain: nil,
		state: make(map[address.Address]uint64),
	}
	for i, b := range blocks {
		if err := l.ApplyBlock(b); err != nil {
			return nil, fmt.Errorf("chain: replaying block %d: %w", i, err)
		}
	}
	return l, nil
}

// ApplyBlock validates block against the current tip and, if valid, commits
// its transactions to the balance map. The state transition is staged into
// a scratch copy of the balance map and only swapped in once every
// transaction in the block has been validated, an all-or-nothing commit
// rather than a partial application followed by rollback.
func (l *Ledger) ApplyBlock(block *Block) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.applyBlockLocked(block, len(l.chain) == 0)
}

func (l *Ledger) applyBlockLocked(block *Block, isGenesis bool) error {
	var prev *Block
	if len(l.chain) > 0 {
		prev = l.chain[len(l.chain)-1]
	}
	if err := block.Verify(prev, l.cfg.Difficulty); err != nil {
		return err
	}

	scratch := make(map[address.Address]uint64, len(l.state))
	for k, v := range l.state {
		scratch[k] = v
	}

	for i := range block.Transactions {
		tx := &block.Transactions[i]
		if tx.Type == Mint && !isGenesis {
			return ErrForbiddenMintTransaction
		}
		if err := tx.Verify(); err != nil {
			return fmt.Errorf("chain: block %d tx %d: %w", block.Index, i, err)
		}

		switch tx.Type {
		case Mint:
			scratch[tx.To] += tx.Amount
		case Transfer:
			total := tx.Amount + l.cfg.TransactionCost
			if scratch[tx.From] < total {
				return fmt.Errorf("chain: block %d tx %d: %w", block.Index, i, ErrInsufficientBalance)
			}
			scratch[tx.From] -= total
			scratch[tx.To] += tx.Amount
		}
	}

	l.state = scratch
	l.chain = append(l.chain, block)
	return nil
}

// Forge reads the current tip and seals txs into a new block on top of it.
func (l *Ledger) Forge(ctx context.Context, txs []Transaction) (*Block, error) {
	l.mu.RLock()
	tip := l.chain[len(l.chain)-1]
	l.mu.RUnlock()

	return Forge(ctx, tip.Index+1, uint64(time.Now().UnixMilli()), tip.Hash, txs, l.cfg.Difficulty, l.cfg.Workers, l.cfg.MaxNonceAttempts)
}

// Balance returns addr's balance, 0 if the address has never been credited.
func (l *Ledger) Balance(addr address.Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state[addr]
}

// Height returns the index of the chain's tip block.
func (l *Ledger) Height() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.chain[len(l.chain)-1].Index
}

// Tip returns the chain's most recently applied block.
func (l *Ledger) Tip() *Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.chain[len(l.chain)-1]
}

// BlockByIndex returns the block at the given index, or ErrBlockNotFound.
func (l *Ledger) BlockByIndex(index uint64) (*Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if index >= uint64(len(l.chain)) {
		return nil, ErrBlockNotFound
	}
	return l.chain[index], nil
}

// Blocks returns a copy of the full chain, oldest first.
func (l *Ledger) Blocks() []*Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*Block, len(l.chain))
	copy(out, l.chain)
	return out
}

// Balances returns a copy of the full balance map.
func (l *Ledger) Balances() map[address.Address]uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[address.Address]uint64, len(l.state))
	for k, v := range l.state {
		out[k] = v
	}
	return out
}
