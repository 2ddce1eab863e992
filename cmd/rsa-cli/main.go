// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package main is the entry point for the rsa-cli tool. It registers the
// key, encryption and signature command groups and runs the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dark-bio/rsa-go/cmd/rsa-cli/internal/commands"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "rsa-cli",
		Short: "RSA key generation, encryption and signing",
		Long: `rsa-cli performs RSA operations on files: keypair generation,
PKCS#1 v1.5 encryption and decryption, and PKCS#1 v1.5 signing and
verification. Keys are read and written as PEM, with an optional
COSE_Key export for the public half.`,
		SilenceUsage: true,
	}

	commands.InitKeyCommands(rootCmd)
	commands.InitCipherCommands(rootCmd)
	commands.InitSignatureCommands(rootCmd)

	return rootCmd.Execute()
}
