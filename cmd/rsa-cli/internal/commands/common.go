// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands implements the rsa-cli command groups.
package commands

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dark-bio/rsa-go/key"
)

// handler carries the shared dependencies of the commands. The entropy
// source is a field so tests can swap in a deterministic reader.
type handler struct {
	random io.Reader
}

func newHandler() *handler {
	return &handler{random: rand.Reader}
}

// readPublicKey loads a PEM public key, accepting both the PKCS#1 and the
// X.509 SubjectPublicKeyInfo armor.
func readPublicKey(path string) (*key.PublicKey, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read public key: %w", err)
	}
	pub, err := key.ParsePublicKeyPEM(data)
	if err != nil {
		if pub, pkixErr := key.ParsePublicKeyPKIXPEM(data); pkixErr == nil {
			return pub, nil
		}
		return nil, fmt.Errorf("failed to parse public key %s: %w", path, err)
	}
	return pub, nil
}

func readPrivateKey(path string) (*key.PrivateKey, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	priv, err := key.ParsePrivateKeyPEM(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key %s: %w", path, err)
	}
	return priv, nil
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
