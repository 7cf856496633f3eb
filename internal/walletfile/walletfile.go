// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

// Package walletfile round-trips a Falcon-512 keypair to a plaintext YAML
// file on disk, for the CLI and tests. There is no at-rest encryption or
// passphrase wrapping here; this is the minimal file format that lets the
// CLI survive a restart, not a production key-custody design.
package walletfile

import (
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pqchain/pqledger/internal/address"
	"github.com/pqchain/pqledger/internal/falcon"
)

// File is the on-disk shape: hex-encoded key material plus the address it
// derives, stored for convenience. Load re-derives the address and compares
// rather than trusting the stored value.
type File struct {
	PublicKey  string `yaml:"public_key"`
	PrivateKey string `yaml:"private_key"`
	Address    string `yaml:"address"`
}

// Save writes pub/priv to path as plaintext YAML.
func Save(path string, pub falcon.PublicKey, priv falcon.PrivateKey) error {
	f := File{
		PublicKey:  hex.EncodeToString(pub[:]),
		PrivateKey: hex.EncodeToString(priv[:]),
		Address:    address.FromPublicKey(pub).String(),
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("walletfile: marshalling %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("walletfile: writing %s: %w", path, err)
	}
	return nil
}

// Load reads a wallet file from path and decodes its keypair. The stored
// Address field is recomputed from PublicKey and compared, so a hand-edited
// or corrupted file is rejected rather than silently producing a keypair
// whose address doesn't match its own record.
func Load(path string) (falcon.PublicKey, falcon.PrivateKey, error) {
	var zero falcon.PrivateKey
	data, err := os.ReadFile(path)
	if err != nil {
		return falcon.PublicKey{}, zero, fmt.Errorf("walletfile: reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return falcon.PublicKey{}, zero, fmt.Errorf("walletfile: parsing %s: %w", path, err)
	}

	pubBytes, err := hex.DecodeString(f.PublicKey)
	if err != nil {
		return falcon.PublicKey{}, zero, fmt.Errorf("walletfile: %s: bad public_key hex: %w", path, err)
	}
	pub, err := falcon.PublicKeyFromBytes(pubBytes)
	if err != nil {
		return falcon.PublicKey{}, zero, fmt.Errorf("walletfile: %s: %w", path, err)
	}

	privBytes, err := hex.DecodeString(f.PrivateKey)
	if err != nil {
		return falcon.PublicKey{}, zero, fmt.Errorf("walletfile: %s: bad private_key hex: %w", path, err)
	}
	priv, err := falcon.PrivateKeyFromBytes(privBytes)
	if err != nil {
		return falcon.PublicKey{}, zero, fmt.Errorf("walletfile: %s: %w", path, err)
	}

	wantAddr := address.FromPublicKey(pub)
	if wantAddr.String() != f.Address {
		return falcon.PublicKey{}, zero, fmt.Errorf("walletfile: %s: stored address %s doesn't match public key (derives to %s)", path, f.Address, wantAddr)
	}

	return pub, priv, nil
}
