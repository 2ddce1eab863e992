// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randnum

import (
	"bytes"
	"crypto/rand"
	"errors"
	"math/big"
	"testing"
)

func TestReadRandomBitsLength(t *testing.T) {
	for _, nbits := range []int{1, 7, 8, 9, 63, 64, 65, 512} {
		raw, err := ReadRandomBits(rand.Reader, nbits)
		if err != nil {
			t.Fatalf("ReadRandomBits(%d): %v", nbits, err)
		}
		if want := (nbits + 7) / 8; len(raw) != want {
			t.Errorf("ReadRandomBits(%d): %d bytes, want %d", nbits, len(raw), want)
		}
		if new(big.Int).SetBytes(raw).BitLen() > nbits {
			t.Errorf("ReadRandomBits(%d): excess high bits set", nbits)
		}
	}
}

func TestReadRandomBitsRejectsZero(t *testing.T) {
	if _, err := ReadRandomBits(rand.Reader, 0); !errors.Is(err, ErrBits) {
		t.Errorf("ReadRandomBits(0) error = %v, want ErrBits", err)
	}
}

// Tests that the deterministic masking matches the entropy stream: a fixed
// reader must yield the low bits of its first byte.
func TestReadRandomBitsMasking(t *testing.T) {
	raw, err := ReadRandomBits(bytes.NewReader([]byte{0xff, 0xff}), 10)
	if err != nil {
		t.Fatalf("ReadRandomBits: %v", err)
	}
	if !bytes.Equal(raw, []byte{0x03, 0xff}) {
		t.Errorf("masked read = %x, want 03ff", raw)
	}
}

func TestReadRandomIntExactBitLength(t *testing.T) {
	for _, nbits := range []int{2, 16, 127, 128, 512} {
		for i := 0; i < 16; i++ {
			value, err := ReadRandomInt(rand.Reader, nbits)
			if err != nil {
				t.Fatalf("ReadRandomInt(%d): %v", nbits, err)
			}
			if value.BitLen() != nbits {
				t.Fatalf("ReadRandomInt(%d): bit length %d", nbits, value.BitLen())
			}
		}
	}
}

func TestReadRandomOddInt(t *testing.T) {
	for i := 0; i < 32; i++ {
		value, err := ReadRandomOddInt(rand.Reader, 64)
		if err != nil {
			t.Fatalf("ReadRandomOddInt: %v", err)
		}
		if value.Bit(0) != 1 {
			t.Fatalf("ReadRandomOddInt returned even value %v", value)
		}
		if value.BitLen() != 64 {
			t.Fatalf("ReadRandomOddInt: bit length %d", value.BitLen())
		}
	}
}

func TestIntStaysInRange(t *testing.T) {
	max := big.NewInt(1000)
	for i := 0; i < 200; i++ {
		value, err := Int(rand.Reader, max)
		if err != nil {
			t.Fatalf("Int: %v", err)
		}
		if value.Sign() < 0 || value.Cmp(max) > 0 {
			t.Fatalf("Int out of range: %v", value)
		}
	}
}

// Tests the rejection path: a stream whose first draw exceeds max must be
// discarded in favor of the next one.
func TestIntRejectsOversizeDraw(t *testing.T) {
	// max = 0x0100 needs 9 bits; the first draw masks to 0x1ff > max and is
	// rejected, the second masks to 0xff and is accepted.
	src := bytes.NewReader([]byte{0xff, 0xff, 0x00, 0xff})
	value, err := Int(src, big.NewInt(0x0100))
	if err != nil {
		t.Fatalf("Int: %v", err)
	}
	if value.Int64() != 0xff {
		t.Errorf("Int = %v, want 255", value)
	}
}

func TestIntRejectsNonPositiveMax(t *testing.T) {
	if _, err := Int(rand.Reader, big.NewInt(0)); err == nil {
		t.Error("Int(0) succeeded, want error")
	}
}
