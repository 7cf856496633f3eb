// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

// Package falcon wraps the Falcon-512 post-quantum signature scheme behind
// a small capability interface, so the consensus-critical packages never
// import the underlying library directly. Swapping signature schemes (e.g.
// to Dilithium) only touches this package.
package falcon

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/open-quantum-safe/liboqs-go/oqs"
)

// algName is the liboqs identifier of the Falcon-512 parameter set.
const algName = "Falcon-512"

// Byte widths of the Falcon-512 parameter set. A decode of any other length
// is an error, never a truncate-or-pad. SignatureSize is the maximum width
// of a Falcon-512 compressed signature; shorter raw signatures are stored
// zero-padded to this fixed width.
const (
	PublicKeySize  = 897
	PrivateKeySize = 1281
	SignatureSize  = 752
)

var (
	// ErrPublicKeyBadLength is returned when decoding a public key of the
	// wrong width.
	ErrPublicKeyBadLength = errors.New("falcon: public key has wrong length")
	// ErrPrivateKeyBadLength is returned when decoding a private key of the
	// wrong width.
	ErrPrivateKeyBadLength = errors.New("falcon: private key has wrong length")
	// ErrSignatureBadLength is returned when decoding a signature of the
	// wrong width.
	ErrSignatureBadLength = errors.New("falcon: signature has wrong length")
	// ErrVerification is returned when a signature fails to verify.
	ErrVerification = errors.New("falcon: signature verification failed")
)

// PublicKey is a Falcon-512 public key.
type PublicKey [PublicKeySize]byte

// PrivateKey is a Falcon-512 private (secret) key.
type PrivateKey [PrivateKeySize]byte

// Signature is a detached Falcon-512 signature, zero-padded to its fixed
// maximum width. Falcon's compressed encoding always ends each coefficient
// with a set bit, so a raw signature never terminates in a zero byte and the
// padded form decodes unambiguously.
type Signature [SignatureSize]byte

// raw strips the zero padding, recovering the signature bytes the library
// produced.
func (s Signature) raw() []byte {
	return bytes.TrimRight(s[:], "\x00")
}

// PublicKeyFromBytes decodes a public key, failing on any width but
// PublicKeySize.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeySize {
		return pk, fmt.Errorf("%w: got %d", ErrPublicKeyBadLength, len(b))
	}
	copy(pk[:], b)
	return pk, nil
}

// SignatureFromBytes decodes a signature, failing on any width but
// SignatureSize.
func SignatureFromBytes(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureSize {
		return sig, fmt.Errorf("%w: got %d", ErrSignatureBadLength, len(b))
	}
	copy(sig[:], b)
	return sig, nil
}

// PrivateKeyFromBytes decodes a private key, failing on any width but
// PrivateKeySize. Used by internal/walletfile when loading a key file from
// disk.
func PrivateKeyFromBytes(b []byte) (PrivateKey, error) {
	var pk PrivateKey
	if len(b) != PrivateKeySize {
		return pk, fmt.Errorf("%w: got %d", ErrPrivateKeyBadLength, len(b))
	}
	copy(pk[:], b)
	return pk, nil
}

// Scheme is the signature capability the ledger depends on. The core
// packages code against this interface only. GenerateKeypair draws from the
// library's CSPRNG; callers must never assume keygen is deterministic.
type Scheme interface {
	GenerateKeypair() (PublicKey, PrivateKey, error)
	Sign(priv PrivateKey, message []byte) (Signature, error)
	Verify(pub PublicKey, message []byte, sig Signature) error
}

// falcon512 implements Scheme over liboqs's Falcon-512.
type falcon512 struct{}

// Default is the Falcon-512 scheme used throughout the ledger.
var Default Scheme = falcon512{}

// GenerateKeypair produces a new Falcon-512 keypair.
func (falcon512) GenerateKeypair() (PublicKey, PrivateKey, error) {
	signer := oqs.Signature{}
	defer signer.Clean()
	if err := signer.Init(algName, nil); err != nil {
		return PublicKey{}, PrivateKey{}, fmt.Errorf("falcon: init: %w", err)
	}
	pubBytes, err := signer.GenerateKeyPair()
	if err != nil {
		return PublicKey{}, PrivateKey{}, fmt.Errorf("falcon: keygen: %w", err)
	}
	pub, err := PublicKeyFromBytes(pubBytes)
	if err != nil {
		return PublicKey{}, PrivateKey{}, err
	}
	priv, err := PrivateKeyFromBytes(signer.ExportSecretKey())
	if err != nil {
		return PublicKey{}, PrivateKey{}, err
	}
	return pub, priv, nil
}

// Sign produces a detached signature over message, zero-padded to the fixed
// SignatureSize width.
func (falcon512) Sign(priv PrivateKey, message []byte) (Signature, error) {
	signer := oqs.Signature{}
	defer signer.Clean()
	if err := signer.Init(algName, priv[:]); err != nil {
		return Signature{}, fmt.Errorf("falcon: init: %w", err)
	}
	raw, err := signer.Sign(message)
	if err != nil {
		return Signature{}, fmt.Errorf("falcon: sign: %w", err)
	}
	if len(raw) > SignatureSize {
		return Signature{}, fmt.Errorf("%w: got %d", ErrSignatureBadLength, len(raw))
	}
	var sig Signature
	copy(sig[:], raw)
	return sig, nil
}

// Verify checks a detached signature over message against pub.
func (falcon512) Verify(pub PublicKey, message []byte, sig Signature) error {
	verifier := oqs.Signature{}
	defer verifier.Clean()
	if err := verifier.Init(algName, nil); err != nil {
		return fmt.Errorf("falcon: init: %w", err)
	}
	ok, err := verifier.Verify(message, sig.raw(), pub[:])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerification, err)
	}
	if !ok {
		return ErrVerification
	}
	return nil
}
