// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
)

// Tests that every value representable in a given width survives the
// bytes -> int -> bytes round trip, exhaustively for 1 and 2 byte widths.
func TestRoundTrip(t *testing.T) {
	for _, length := range []int{1, 2} {
		max := 1 << (8 * length)
		for v := 0; v < max; v++ {
			enc, err := IntToBytes(big.NewInt(int64(v)), length)
			if err != nil {
				t.Fatalf("IntToBytes(%d, %d): %v", v, length, err)
			}
			if len(enc) != length {
				t.Fatalf("IntToBytes(%d, %d): length %d", v, length, len(enc))
			}
			if got := BytesToInt(enc); got.Int64() != int64(v) {
				t.Fatalf("round trip of %d: have %v", v, got)
			}
		}
	}
}

func TestEmptyDecodesToZero(t *testing.T) {
	if got := BytesToInt(nil); got.Sign() != 0 {
		t.Errorf("BytesToInt(nil) = %v, want 0", got)
	}
	if got := BytesToInt([]byte{}); got.Sign() != 0 {
		t.Errorf("BytesToInt(empty) = %v, want 0", got)
	}
}

func TestSingleByteBoundary(t *testing.T) {
	enc, err := IntToBytes(big.NewInt(255), 1)
	if err != nil {
		t.Fatalf("IntToBytes(255, 1): %v", err)
	}
	if !bytes.Equal(enc, []byte{0xff}) {
		t.Errorf("IntToBytes(255, 1) = %x, want ff", enc)
	}
	if _, err := IntToBytes(big.NewInt(256), 1); !errors.Is(err, ErrOverflow) {
		t.Errorf("IntToBytes(256, 1) error = %v, want ErrOverflow", err)
	}
}

func TestNegativeRejected(t *testing.T) {
	if _, err := IntToBytes(big.NewInt(-1), 4); !errors.Is(err, ErrOverflow) {
		t.Errorf("IntToBytes(-1, 4) error = %v, want ErrOverflow", err)
	}
}

func TestNegativeLengthRejected(t *testing.T) {
	// Zero fits any non-negative width, so it is the value most likely to
	// slip past a width check; a negative length must still fail.
	for _, value := range []*big.Int{big.NewInt(0), big.NewInt(7)} {
		if _, err := IntToBytes(value, -1); !errors.Is(err, ErrOverflow) {
			t.Errorf("IntToBytes(%v, -1) error = %v, want ErrOverflow", value, err)
		}
	}
}

func TestLeftPadding(t *testing.T) {
	enc, err := IntToBytes(big.NewInt(0x0102), 4)
	if err != nil {
		t.Fatalf("IntToBytes: %v", err)
	}
	if !bytes.Equal(enc, []byte{0, 0, 1, 2}) {
		t.Errorf("IntToBytes(0x0102, 4) = %x, want 00000102", enc)
	}
}

func TestAligned(t *testing.T) {
	if _, err := IntToBytesAligned(big.NewInt(7), 6, 4); !errors.Is(err, ErrAlignment) {
		t.Errorf("unaligned length error = %v, want ErrAlignment", err)
	}
	enc, err := IntToBytesAligned(big.NewInt(7), 8, 4)
	if err != nil {
		t.Fatalf("IntToBytesAligned: %v", err)
	}
	if len(enc) != 8 || enc[7] != 7 {
		t.Errorf("IntToBytesAligned(7, 8, 4) = %x", enc)
	}
}

func TestByteSize(t *testing.T) {
	cases := []struct {
		value *big.Int
		want  int
	}{
		{big.NewInt(0), 1},
		{big.NewInt(255), 1},
		{big.NewInt(256), 2},
		{new(big.Int).Lsh(big.NewInt(1), 1023), 128},
		{new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 1024), big.NewInt(1)), 128},
		{new(big.Int).Lsh(big.NewInt(1), 1024), 129},
	}
	for _, c := range cases {
		if got := ByteSize(c.value); got != c.want {
			t.Errorf("ByteSize(%v) = %d, want %d", c.value, got, c.want)
		}
	}
}
