// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package key holds RSA key material and derives keypairs from freshly
// generated primes.
//
// https://datatracker.ietf.org/doc/html/rfc8017
//
// Keys are value objects: built once by generation or parsing, never
// mutated afterwards, and therefore safe to share across goroutines.
package key

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/dark-bio/rsa-go/core"
	"github.com/dark-bio/rsa-go/prime"
	"github.com/dark-bio/rsa-go/randnum"
)

// DefaultExponent is the public exponent used by essentially every modern
// deployment.
const DefaultExponent = 65537

// MinKeySize is the smallest modulus bit length GenerateKeypair accepts.
// Anything below this is trivially factorable; parsing existing keys has no
// such floor so tiny interop fixtures stay readable.
const MinKeySize = 128

// Error types for key generation and validation failures
var (
	ErrUnusableExponent = errors.New("key: public exponent must be an odd number >= 3")
	ErrKeySizeTooSmall  = errors.New("key: modulus size below minimum")
	ErrInvalidKey       = errors.New("key: inconsistent key material")
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// PublicKey is the public half of an RSA keypair. Treat the fields as
// immutable after construction.
type PublicKey struct {
	N *big.Int // modulus
	E *big.Int // public exponent
}

// PrivateKey is the private half of an RSA keypair. The CRT values DP, DQ
// and QInv are derived at construction for the PKCS#1 serialization and are
// never mutated. Treat all fields as immutable.
type PrivateKey struct {
	N *big.Int // modulus
	E *big.Int // public exponent
	D *big.Int // private exponent
	P *big.Int // first prime factor
	Q *big.Int // second prime factor

	DP   *big.Int // d mod (p-1)
	DQ   *big.Int // d mod (q-1)
	QInv *big.Int // q^-1 mod p
}

// PublicKey returns the public counterpart of the private key.
func (k *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{N: k.N, E: k.E}
}

// GenerateKeypair creates a fresh keypair with a modulus of nbits bits: two
// distinct primes of nbits/2 bits each, redrawn until the exponent is
// invertible modulo lambda(n). The search runs until it succeeds or ctx is
// cancelled; random is the entropy source (crypto/rand.Reader in normal
// use).
func GenerateKeypair(ctx context.Context, random io.Reader, nbits int, exponent int64) (*PublicKey, *PrivateKey, error) {
	if nbits < MinKeySize {
		return nil, nil, fmt.Errorf("%w: %d < %d bits", ErrKeySizeTooSmall, nbits, MinKeySize)
	}
	// An even or undersized exponent can never be inverted modulo the even
	// lambda(n), so retrying would loop forever. Fail up front instead.
	if exponent < 3 || exponent%2 == 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnusableExponent, exponent)
	}
	e := big.NewInt(exponent)

	for {
		p, err := prime.GetPrime(ctx, random, nbits/2)
		if err != nil {
			return nil, nil, err
		}
		q, err := prime.GetPrime(ctx, random, nbits/2)
		if err != nil {
			return nil, nil, err
		}
		if p.Cmp(q) == 0 {
			continue
		}
		pMinusOne := new(big.Int).Sub(p, one)
		qMinusOne := new(big.Int).Sub(q, one)
		if !prime.AreRelativelyPrime(e, pMinusOne) || !prime.AreRelativelyPrime(e, qMinusOne) {
			continue
		}

		// lambda(n) = lcm(p-1, q-1) = (p-1)(q-1) / gcd(p-1, q-1)
		gcd := new(big.Int).GCD(nil, nil, pMinusOne, qMinusOne)
		lambda := new(big.Int).Mul(pMinusOne, qMinusOne)
		lambda.Div(lambda, gcd)

		d := new(big.Int).ModInverse(e, lambda)
		if d == nil {
			// Unreachable given the coprimality checks above.
			continue
		}
		priv := newPrivateKey(new(big.Int).Mul(p, q), e, d, p, q)
		return priv.PublicKey(), priv, nil
	}
}

func newPrivateKey(n, e, d, p, q *big.Int) *PrivateKey {
	return &PrivateKey{
		N: n, E: e, D: d, P: p, Q: q,
		DP:   new(big.Int).Mod(d, new(big.Int).Sub(p, one)),
		DQ:   new(big.Int).Mod(d, new(big.Int).Sub(q, one)),
		QInv: new(big.Int).ModInverse(q, p),
	}
}

// validate checks the arithmetic consistency of parsed key material: the
// primes must multiply to the modulus and the CRT values must match the
// exponents.
func (k *PrivateKey) validate() error {
	if k.N.Sign() <= 0 || k.N.Bit(0) == 0 {
		return fmt.Errorf("%w: modulus must be positive and odd", ErrInvalidKey)
	}
	// Degenerate factors like p = 1, q = n satisfy p*q == n but blow up
	// the CRT recomputation below, so bound the primes first.
	if k.P.Cmp(two) < 0 || k.Q.Cmp(two) < 0 {
		return fmt.Errorf("%w: prime factor below 2", ErrInvalidKey)
	}
	var pq big.Int
	if pq.Mul(k.P, k.Q).Cmp(k.N) != 0 {
		return fmt.Errorf("%w: p*q != n", ErrInvalidKey)
	}
	want := newPrivateKey(k.N, k.E, k.D, k.P, k.Q)
	if want.QInv == nil ||
		k.DP.Cmp(want.DP) != 0 || k.DQ.Cmp(want.DQ) != 0 || k.QInv.Cmp(want.QInv) != 0 {
		return fmt.Errorf("%w: CRT values do not match exponents", ErrInvalidKey)
	}
	return nil
}

// BlindedEncrypt performs the private-key operation message^d mod n behind a
// fresh random blinding factor, as used for signing. Blinding is a
// best-effort timing mitigation, not a constant-time guarantee.
func (k *PrivateKey) BlindedEncrypt(random io.Reader, message *big.Int) (*big.Int, error) {
	return k.blindedExp(random, message)
}

// BlindedDecrypt performs the private-key operation cipher^d mod n behind a
// fresh random blinding factor, as used for decryption.
func (k *PrivateKey) BlindedDecrypt(random io.Reader, cipher *big.Int) (*big.Int, error) {
	return k.blindedExp(random, cipher)
}

func (k *PrivateKey) blindedExp(random io.Reader, input *big.Int) (*big.Int, error) {
	if input.Sign() < 0 || input.Cmp(k.N) >= 0 {
		return nil, fmt.Errorf("%w: input not below modulus", core.ErrOverflow)
	}
	r, rInv, err := k.blindingFactor(random)
	if err != nil {
		return nil, err
	}
	// input * r^e mod n hides the true base from the exponentiation.
	blinded := new(big.Int).Exp(r, k.E, k.N)
	blinded.Mul(blinded, input).Mod(blinded, k.N)

	result, err := core.DecryptInt(blinded, k.D, k.N)
	if err != nil {
		return nil, err
	}
	return result.Mul(result, rInv).Mod(result, k.N), nil
}

// blindingFactor draws a random r invertible modulo n and returns it with
// its inverse. A fresh factor is drawn per operation; caching one would
// make the key mutable shared state.
func (k *PrivateKey) blindingFactor(random io.Reader) (r, rInv *big.Int, err error) {
	max := new(big.Int).Sub(k.N, one)
	for {
		r, err = randnum.Int(random, max)
		if err != nil {
			return nil, nil, err
		}
		if r.Sign() == 0 {
			continue
		}
		if rInv = new(big.Int).ModInverse(r, k.N); rInv != nil {
			return r, rInv, nil
		}
	}
}
