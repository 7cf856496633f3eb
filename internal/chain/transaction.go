// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

// Package chain implements the account-based ledger core: transactions,
// blocks, and the replayable Ledger state machine built on top of them.
package chain

import (
	"encoding/binary"
	"fmt"

	"github.com/pqchain/pqledger/internal/address"
	"github.com/pqchain/pqledger/internal/falcon"
)

// Type distinguishes the two admissible transaction shapes.
type Type uint8

const (
	// Mint credits To with Amount out of nowhere. Only admissible inside the
	// genesis block; a Mint anywhere else is rejected by the ledger.
	Mint Type = 0
	// Transfer debits From by Amount plus the ledger's transaction cost,
	// credits To by Amount, and requires a valid Falcon-512 signature from
	// From's keypair.
	Transfer Type = 1
)

func (t Type) String() string {
	switch t {
	case Mint:
		return "mint"
	case Transfer:
		return "transfer"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Transaction moves Amount from From to To. Mint transactions carry a zero
// From, a zero FromPublicKey, and a zero Signature; NewMint builds them, and
// the ledger admits them only inside the genesis block.
type Transaction struct {
	Type          Type
	From          address.Address
	FromPublicKey falcon.PublicKey
	Signature     falcon.Signature
	To            address.Address
	Amount        uint64
}

// SigningBytes builds the canonical 969-byte message a Transfer signs and
// verifies over: from_address (32) ‖ from_public_key (897) ‖ to_address (32)
// ‖ amount, little-endian (8). The little-endian amount is load-bearing:
// the block header hashes its integers big-endian, and every existing
// signature depends on this exact layout.
func (tx *Transaction) SigningBytes() []byte {
	buf := make([]byte, 0, address.Size+falcon.PublicKeySize+address.Size+8)
	buf = append(buf, tx.From.Bytes()...)
	buf = append(buf, tx.FromPublicKey[:]...)
	buf = append(buf, tx.To.Bytes()...)
	buf = binary.LittleEndian.AppendUint64(buf, tx.Amount)
	return buf
}

// Sign computes tx.Signature over tx.SigningBytes() using priv. The caller
// must have already set From, FromPublicKey, To, and Amount.
func (tx *Transaction) Sign(priv falcon.PrivateKey) error {
	sig, err := falcon.Default.Sign(priv, tx.SigningBytes())
	if err != nil {
		return fmt.Errorf("chain: signing transaction: %w", err)
	}
	tx.Signature = sig
	return nil
}

// Verify checks a transaction's internal consistency. Mint transactions
// verify unconditionally here; whether a Mint is admissible at all is a
// placement question the Ledger answers, not the transaction itself.
// Transfer transactions must have FromPublicKey hash to From, and
// Signature must verify over SigningBytes.
func (tx *Transaction) Verify() error {
	if tx.Type == Mint {
		return nil
	}
	if address.FromPublicKey(tx.FromPublicKey) != tx.From {
		return ErrPublicKeyAddressMismatch
	}
	if err := falcon.Default.Verify(tx.FromPublicKey, tx.SigningBytes(), tx.Signature); err != nil {
		return fmt.Errorf("%w: %v", ErrVerification, err)
	}
	return nil
}

// NewTransfer builds and signs a Transfer transaction in one call. fromPub
// and priv must be the public and private halves of the same keypair.
func NewTransfer(fromPub falcon.PublicKey, priv falcon.PrivateKey, to address.Address, amount uint64) (*Transaction, error) {
	tx := &Transaction{
		Type:          Transfer,
		From:          address.FromPublicKey(fromPub),
		FromPublicKey: fromPub,
		To:            to,
		Amount:        amount,
	}
	if err := tx.Sign(priv); err != nil {
		return nil, err
	}
	return tx, nil
}

// NewMint builds an unsigned Mint transaction crediting to with amount. Only
// valid as a genesis block transaction; the ledger rejects it elsewhere.
func NewMint(to address.Address, amount uint64) *Transaction {
	return &Transaction{
		Type:   Mint,
		To:     to,
		Amount: amount,
	}
}
