// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prime

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"testing"
)

// Tests IsPrime exhaustively below 10000 against an independent sieve.
func TestIsPrimeExhaustiveSmall(t *testing.T) {
	const limit = 10000
	composite := make([]bool, limit)
	for n := 2; n < limit; n++ {
		if composite[n] {
			continue
		}
		for m := n * n; m < limit; m += n {
			composite[m] = true
		}
	}
	for n := 0; n < limit; n++ {
		got, err := IsPrime(rand.Reader, big.NewInt(int64(n)))
		if err != nil {
			t.Fatalf("IsPrime(%d): %v", n, err)
		}
		want := n >= 2 && !composite[n]
		if got != want {
			t.Errorf("IsPrime(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestIsPrimeLarge(t *testing.T) {
	// 2^127 - 1 is a Mersenne prime; its neighbors are composite.
	m127 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	ok, err := IsPrime(rand.Reader, m127)
	if err != nil {
		t.Fatalf("IsPrime(2^127-1): %v", err)
	}
	if !ok {
		t.Error("IsPrime(2^127-1) = false, want true")
	}
	for _, delta := range []int64{1, 2} {
		n := new(big.Int).Add(m127, big.NewInt(delta))
		ok, err := IsPrime(rand.Reader, n)
		if err != nil {
			t.Fatalf("IsPrime(2^127-1+%d): %v", delta, err)
		}
		if ok {
			t.Errorf("IsPrime(2^127-1+%d) = true, want false", delta)
		}
	}
}

func TestGetPrimeSixteenBits(t *testing.T) {
	for i := 0; i < 8; i++ {
		p, err := GetPrime(context.Background(), rand.Reader, 16)
		if err != nil {
			t.Fatalf("GetPrime(16): %v", err)
		}
		if p.Int64() < 32768 || p.Int64() > 65535 {
			t.Fatalf("GetPrime(16) = %v, outside [32768, 65535]", p)
		}
		ok, err := IsPrime(rand.Reader, p)
		if err != nil {
			t.Fatalf("IsPrime(%v): %v", p, err)
		}
		if !ok {
			t.Fatalf("GetPrime(16) returned composite %v", p)
		}
	}
}

func TestGetPrimeExactBitLength(t *testing.T) {
	for _, nbits := range []int{64, 128, 256} {
		p, err := GetPrime(context.Background(), rand.Reader, nbits)
		if err != nil {
			t.Fatalf("GetPrime(%d): %v", nbits, err)
		}
		if p.BitLen() != nbits {
			t.Errorf("GetPrime(%d): bit length %d", nbits, p.BitLen())
		}
	}
}

func TestGetPrimeRejectsTinyBits(t *testing.T) {
	if _, err := GetPrime(context.Background(), rand.Reader, 1); !errors.Is(err, ErrBitsTooSmall) {
		t.Errorf("GetPrime(1) error = %v, want ErrBitsTooSmall", err)
	}
}

func TestGetPrimeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := GetPrime(ctx, rand.Reader, 512); !errors.Is(err, context.Canceled) {
		t.Errorf("GetPrime on cancelled ctx = %v, want context.Canceled", err)
	}
}

func TestAreRelativelyPrime(t *testing.T) {
	cases := []struct {
		a, b int64
		want bool
	}{
		{2, 3, true},
		{2, 4, false},
		{65537, 65536, true},
		{48, 180, false},
	}
	for _, c := range cases {
		if got := AreRelativelyPrime(big.NewInt(c.a), big.NewInt(c.b)); got != c.want {
			t.Errorf("AreRelativelyPrime(%d, %d) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
