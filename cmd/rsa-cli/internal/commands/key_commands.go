// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dark-bio/rsa-go/cose"
	"github.com/dark-bio/rsa-go/key"
)

// generateKeys creates a fresh keypair and writes it as a uuid-named PEM
// pair into the key directory.
func (h *handler) generateKeys(cmd *cobra.Command, _ []string) error {
	keySize, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		return err
	}
	exponent, err := cmd.Flags().GetInt64("exponent")
	if err != nil {
		return err
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		return err
	}

	pub, priv, err := key.GenerateKeypair(cmd.Context(), h.random, keySize, exponent)
	if err != nil {
		return fmt.Errorf("failed to generate keypair: %w", err)
	}

	id := uuid.New().String()
	privPath := filepath.Join(keyDir, fmt.Sprintf("%s-private-key.pem", id))
	pubPath := filepath.Join(keyDir, fmt.Sprintf("%s-public-key.pem", id))

	if err := writeOutput(privPath, priv.MarshalPEM()); err != nil {
		return err
	}
	if err := writeOutput(pubPath, pub.MarshalPEM()); err != nil {
		return err
	}

	cmd.Printf("Private key saved at %s\n", privPath)
	cmd.Printf("Public key saved at %s\n", pubPath)
	return nil
}

// exportCOSE re-encodes a PEM public key as a binary COSE_Key.
func (h *handler) exportCOSE(cmd *cobra.Command, _ []string) error {
	publicKeyPath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		return err
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return err
	}

	pub, err := readPublicKey(publicKeyPath)
	if err != nil {
		return err
	}
	encoded, err := cose.MarshalKey(pub)
	if err != nil {
		return fmt.Errorf("failed to encode COSE key: %w", err)
	}
	if err := writeOutput(outputFile, encoded); err != nil {
		return err
	}

	cmd.Printf("COSE key saved at %s\n", outputFile)
	return nil
}

// InitKeyCommands registers the key management commands.
func InitKeyCommands(rootCmd *cobra.Command) {
	h := newHandler()

	generateKeysCmd := &cobra.Command{
		Use:   "generate-keys",
		Short: "Generate an RSA keypair as a PEM pair",
		RunE:  h.generateKeys,
	}
	generateKeysCmd.Flags().Int("key-size", 2048, "Modulus size in bits")
	generateKeysCmd.Flags().Int64("exponent", key.DefaultExponent, "Public exponent")
	generateKeysCmd.Flags().String("key-dir", ".", "Directory to store the keypair")
	rootCmd.AddCommand(generateKeysCmd)

	exportCOSECmd := &cobra.Command{
		Use:   "export-cose",
		Short: "Export a public key as a COSE_Key",
		RunE:  h.exportCOSE,
	}
	exportCOSECmd.Flags().String("public-key", "", "Path to PEM public key")
	exportCOSECmd.Flags().String("output-file", "", "Path to COSE_Key output file")
	rootCmd.AddCommand(exportCOSECmd)
}
