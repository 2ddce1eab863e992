// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dark-bio/rsa-go/pkcs1"
)

// signFile signs a file with a private key and writes the detached
// signature.
func (h *handler) signFile(cmd *cobra.Command, _ []string) error {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return err
	}
	signatureFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return err
	}
	privateKeyPath, err := cmd.Flags().GetString("private-key")
	if err != nil {
		return err
	}
	hashName, err := cmd.Flags().GetString("hash")
	if err != nil {
		return err
	}

	priv, err := readPrivateKey(privateKeyPath)
	if err != nil {
		return err
	}
	message, err := readInput(inputFile)
	if err != nil {
		return err
	}

	signature, err := pkcs1.Sign(h.random, message, priv, hashName)
	if err != nil {
		return fmt.Errorf("failed to sign: %w", err)
	}
	if err := writeOutput(signatureFile, signature); err != nil {
		return err
	}

	cmd.Printf("Signature saved at %s\n", signatureFile)
	return nil
}

// verifyFile checks a detached signature against a file.
func (h *handler) verifyFile(cmd *cobra.Command, _ []string) error {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return err
	}
	signatureFile, err := cmd.Flags().GetString("signature-file")
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
	message, err := readInput(inputFile)
	if err != nil {
		return err
	}
	signature, err := readInput(signatureFile)
	if err != nil {
		return err
	}

	hashName, err := pkcs1.Verify(message, signature, pub)
	if err != nil {
		return fmt.Errorf("signature is invalid: %w", err)
	}

	cmd.Printf("Signature is valid (%s)\n", hashName)
	return nil
}

// InitSignatureCommands registers the signing commands.
func InitSignatureCommands(rootCmd *cobra.Command) {
	h := newHandler()

	signCmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a file with a private key",
		RunE:  h.signFile,
	}
	signCmd.Flags().String("input-file", "", "Path to file to sign")
	signCmd.Flags().String("output-file", "", "Path to signature output file")
	signCmd.Flags().String("private-key", "", "Path to PEM private key")
	signCmd.Flags().String("hash", "SHA-256",
		fmt.Sprintf("Hash algorithm (%s)", strings.Join(pkcs1.HashNames(), ", ")))
	rootCmd.AddCommand(signCmd)

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a detached signature",
		RunE:  h.verifyFile,
	}
	verifyCmd.Flags().String("input-file", "", "Path to signed file")
	verifyCmd.Flags().String("signature-file", "", "Path to signature file")
	verifyCmd.Flags().String("public-key", "", "Path to PEM public key")
	rootCmd.AddCommand(verifyCmd)
}
