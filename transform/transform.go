// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transform converts between non-negative big integers and
// fixed-width big-endian byte sequences.
//
// Every other package in this module moves values across the integer/byte
// boundary through these two functions, so the round-trip invariant
// BytesToInt(IntToBytes(v, l)) == v holds for all 0 <= v < 256^l.
package transform

import (
	"errors"
	"fmt"
	"math/big"
)

// Error types for fixed-width conversion failures
var (
	ErrOverflow  = errors.New("transform: integer does not fit target width")
	ErrAlignment = errors.New("transform: length not a multiple of word size")
)

// BytesToInt decodes a big-endian byte sequence into a non-negative integer.
// An empty slice decodes to zero.
func BytesToInt(raw []byte) *big.Int {
	return new(big.Int).SetBytes(raw)
}

// IntToBytes encodes a non-negative integer as a big-endian byte sequence of
// exactly length bytes, left-padded with zeros. It fails with ErrOverflow if
// the value is negative or needs more than length bytes to represent.
func IntToBytes(value *big.Int, length int) ([]byte, error) {
	if value.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative value", ErrOverflow)
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrOverflow, length)
	}
	if ByteSize(value) > length && value.Sign() != 0 {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrOverflow, ByteSize(value), length)
	}
	out := make([]byte, length)
	value.FillBytes(out)
	return out, nil
}

// IntToBytesAligned encodes like IntToBytes but additionally requires length
// to be a multiple of wordBytes, so the result can be handed to word-aligned
// embedded buffers without post-processing. It fails with ErrAlignment when
// the length is not aligned.
func IntToBytesAligned(value *big.Int, length, wordBytes int) ([]byte, error) {
	if wordBytes <= 0 || length%wordBytes != 0 {
		return nil, fmt.Errorf("%w: length %d, word %d", ErrAlignment, length, wordBytes)
	}
	return IntToBytes(value, length)
}

// ByteSize returns the number of bytes required to hold the absolute value
// of the integer. Zero takes one byte.
func ByteSize(value *big.Int) int {
	if value.Sign() == 0 {
		return 1
	}
	return (value.BitLen() + 7) / 8
}
