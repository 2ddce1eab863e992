// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dark-bio/rsa-go/pkcs1"
)

// encryptFile encrypts a file under a public key using PKCS#1 v1.5
// padding. The input must fit the single-block limit of the key.
func (h *handler) encryptFile(cmd *cobra.Command, _ []string) error {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return err
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return err
	}
	publicKeyPath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		return err
	}

	pub, err := readPublicKey(publicKeyPath)
	if err != nil {
		return err
	}
	plaintext, err := readInput(inputFile)
	if err != nil {
		return err
	}

	ciphertext, err := pkcs1.Encrypt(h.random, plaintext, pub)
	if err != nil {
		return fmt.Errorf("failed to encrypt: %w", err)
	}
	if err := writeOutput(outputFile, ciphertext); err != nil {
		return err
	}

	cmd.Printf("Encrypted data saved at %s\n", outputFile)
	return nil
}

// decryptFile decrypts a single PKCS#1 v1.5 block with a private key.
func (h *handler) decryptFile(cmd *cobra.Command, _ []string) error {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return err
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return err
	}
	privateKeyPath, err := cmd.Flags().GetString("private-key")
	if err != nil {
		return err
	}

	priv, err := readPrivateKey(privateKeyPath)
	if err != nil {
		return err
	}
	ciphertext, err := readInput(inputFile)
	if err != nil {
		return err
	}

	plaintext, err := pkcs1.Decrypt(h.random, ciphertext, priv)
	if err != nil {
		return fmt.Errorf("failed to decrypt: %w", err)
	}
	if err := writeOutput(outputFile, plaintext); err != nil {
		return err
	}

	cmd.Printf("Decrypted data saved at %s\n", outputFile)
	return nil
}

// InitCipherCommands registers the encryption commands.
func InitCipherCommands(rootCmd *cobra.Command) {
	h := newHandler()

	encryptCmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a file with a public key",
		RunE:  h.encryptFile,
	}
	encryptCmd.Flags().String("input-file", "", "Path to file to encrypt")
	encryptCmd.Flags().String("output-file", "", "Path to encrypted output file")
	encryptCmd.Flags().String("public-key", "", "Path to PEM public key")
	rootCmd.AddCommand(encryptCmd)

	decryptCmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a file with a private key",
		RunE:  h.decryptFile,
	}
	decryptCmd.Flags().String("input-file", "", "Path to encrypted file")
	decryptCmd.Flags().String("output-file", "", "Path to decrypted output file")
	decryptCmd.Flags().String("private-key", "", "Path to PEM private key")
	rootCmd.AddCommand(decryptCmd)
}
