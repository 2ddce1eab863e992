// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package core implements the raw RSA transform: modular exponentiation of
// integers in [0, n).
//
// There is no padding and no randomness here. All policy lives in pkcs1;
// this layer is kept deliberately thin so advanced callers can reach the
// textbook operation directly.
package core

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrOverflow is returned when the input integer is outside [0, n). This is
// a caller contract violation, not a cryptographic failure.
var ErrOverflow = errors.New("core: input out of range for modulus")

// EncryptInt returns message^e mod n. The message must be in [0, n).
func EncryptInt(message, e, n *big.Int) (*big.Int, error) {
	if err := checkRange(message, n); err != nil {
		return nil, err
	}
	return new(big.Int).Exp(message, e, n), nil
}

// DecryptInt returns cipher^d mod n. The cipher must be in [0, n).
func DecryptInt(cipher, d, n *big.Int) (*big.Int, error) {
	if err := checkRange(cipher, n); err != nil {
		return nil, err
	}
	return new(big.Int).Exp(cipher, d, n), nil
}

func checkRange(value, n *big.Int) error {
	if value.Sign() < 0 {
		return fmt.Errorf("%w: negative input", ErrOverflow)
	}
	if value.Cmp(n) >= 0 {
		return fmt.Errorf("%w: input not below modulus", ErrOverflow)
	}
	return nil
}
