// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package randnum produces cryptographically sourced random integers of a
// requested bit length.
//
// The entropy source is an injected io.Reader; callers normally pass
// crypto/rand.Reader. The reader may block until enough entropy is
// available, that is part of its contract.
package randnum

import (
	"errors"
	"fmt"
	"io"
	"math/big"
)

// ErrBits is returned when a non-positive bit count is requested.
var ErrBits = errors.New("randnum: bit count must be positive")

// ReadRandomBits reads nbits random bits from the entropy source, rounded up
// to a whole number of bytes. When nbits is not a multiple of eight, the
// excess high bits of the leading byte are cleared.
func ReadRandomBits(random io.Reader, nbits int) ([]byte, error) {
	if nbits <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBits, nbits)
	}
	buf := make([]byte, (nbits+7)/8)
	if _, err := io.ReadFull(random, buf); err != nil {
		return nil, fmt.Errorf("randnum: entropy source: %w", err)
	}
	if rbits := nbits % 8; rbits != 0 {
		buf[0] &= byte(1<<rbits) - 1
	}
	return buf, nil
}

// ReadRandomInt reads a random integer of exactly nbits bits. The top bit is
// forced so the result never has a shorter bit length.
func ReadRandomInt(random io.Reader, nbits int) (*big.Int, error) {
	raw, err := ReadRandomBits(random, nbits)
	if err != nil {
		return nil, err
	}
	value := new(big.Int).SetBytes(raw)
	return value.SetBit(value, nbits-1, 1), nil
}

// ReadRandomOddInt reads a random odd integer of exactly nbits bits.
func ReadRandomOddInt(random io.Reader, nbits int) (*big.Int, error) {
	value, err := ReadRandomInt(random, nbits)
	if err != nil {
		return nil, err
	}
	return value.SetBit(value, 0, 1), nil
}

// Int returns a uniform random integer in [0, max] using rejection sampling:
// draws of max.BitLen() bits that exceed max are discarded and redrawn, so
// no modulo bias is introduced. max must be positive.
func Int(random io.Reader, max *big.Int) (*big.Int, error) {
	if max.Sign() <= 0 {
		return nil, errors.New("randnum: max must be positive")
	}
	nbits := max.BitLen()
	for {
		raw, err := ReadRandomBits(random, nbits)
		if err != nil {
			return nil, err
		}
		value := new(big.Int).SetBytes(raw)
		if value.Cmp(max) <= 0 {
			return value, nil
		}
	}
}
