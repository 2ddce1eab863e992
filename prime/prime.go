// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prime generates probable primes of a requested bit length.
//
// Candidates below a small-number threshold are settled by trial division;
// everything above goes through Miller-Rabin with random witnesses.
package prime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/dark-bio/rsa-go/randnum"
)

// ErrBitsTooSmall is returned when the requested bit length cannot hold a
// prime search candidate.
var ErrBitsTooSmall = errors.New("prime: bit length too small")

// millerRabinRounds is the number of random witnesses tested per candidate.
// For uniformly drawn candidates this pushes the false-positive probability
// below 2^-128 (Damgard-Landrock-Pomerance average-case bounds).
const millerRabinRounds = 40

// smallPrimes holds every prime below 1000. Candidates below 1000^2 are
// settled exactly by trial division against this table.
var smallPrimes = sievePrimes(1000)

// smallPrimeBound is the exclusive limit below which trial division against
// smallPrimes is a complete primality proof.
var smallPrimeBound = big.NewInt(1000 * 1000)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

func sievePrimes(limit int) []*big.Int {
	composite := make([]bool, limit)
	var primes []*big.Int
	for n := 2; n < limit; n++ {
		if composite[n] {
			continue
		}
		primes = append(primes, big.NewInt(int64(n)))
		for m := n * n; m < limit; m += n {
			composite[m] = true
		}
	}
	return primes
}

// IsPrime reports whether n is prime. Below one million the answer is exact;
// above it the answer is probabilistic with negligible error. The entropy
// source feeds the Miller-Rabin witness draws.
func IsPrime(random io.Reader, n *big.Int) (bool, error) {
	if n.Cmp(two) < 0 {
		return false, nil
	}
	for _, p := range smallPrimes {
		if n.Cmp(p) == 0 {
			return true, nil
		}
		var rem big.Int
		if rem.Mod(n, p).Sign() == 0 {
			return false, nil
		}
	}
	if n.Cmp(smallPrimeBound) < 0 {
		// Trial division above is complete for n < 1000^2.
		return true, nil
	}
	return millerRabin(random, n, millerRabinRounds)
}

// millerRabin tests n (odd, > 3) with rounds random witnesses drawn
// uniformly from [2, n-2]. A false return is always correct; a true return
// is wrong with probability at most 4^-rounds.
func millerRabin(random io.Reader, n *big.Int, rounds int) (bool, error) {
	// Decompose n-1 as d * 2^r with d odd.
	nMinusOne := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinusOne)
	r := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		r++
	}

	witnessMax := new(big.Int).Sub(n, big.NewInt(4)) // [0, n-4] shifted to [2, n-2]
	x := new(big.Int)

witnesses:
	for i := 0; i < rounds; i++ {
		a, err := randnum.Int(random, witnessMax)
		if err != nil {
			return false, err
		}
		a.Add(a, two)

		x.Exp(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinusOne) == 0 {
			continue
		}
		for j := 0; j < r-1; j++ {
			x.Mul(x, x).Mod(x, n)
			if x.Cmp(one) == 0 {
				return false, nil
			}
			if x.Cmp(nMinusOne) == 0 {
				continue witnesses
			}
		}
		return false, nil
	}
	return true, nil
}

// GetPrime returns a prime of exactly nbits bits. It samples odd candidates
// with the top bit forced and retries until one passes IsPrime. The search
// has no internal retry cap; it stops only when ctx is cancelled, in which
// case the context's error is returned and the in-progress candidate is
// discarded.
func GetPrime(ctx context.Context, random io.Reader, nbits int) (*big.Int, error) {
	if nbits < 2 {
		return nil, fmt.Errorf("%w: %d bits", ErrBitsTooSmall, nbits)
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidate, err := randnum.ReadRandomOddInt(random, nbits)
		if err != nil {
			return nil, err
		}
		ok, err := IsPrime(random, candidate)
		if err != nil {
			return nil, err
		}
		if ok {
			return candidate, nil
		}
	}
}

// AreRelativelyPrime reports whether gcd(a, b) == 1.
func AreRelativelyPrime(a, b *big.Int) bool {
	var gcd big.Int
	return gcd.GCD(nil, nil, a, b).Cmp(one) == 0
}
