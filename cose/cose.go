// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cose implements the COSE_Key encoding of RSA public keys.
//
// https://datatracker.ietf.org/doc/html/rfc8230
//
// A key is a CBOR map with kty (label 1) fixed to RSA (3), the modulus at
// label -1 and the public exponent at label -2, both as minimal-length
// big-endian byte strings. Encoding is deterministic per RFC 8949 §4.2 so
// the same key always serializes to the same bytes.
package cose

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/dark-bio/rsa-go/key"
	"github.com/dark-bio/rsa-go/transform"
)

// KeyTypeRSA is the COSE key type registered for RSA keys.
const KeyTypeRSA = 3

// Error types for COSE_Key parsing
var (
	ErrFormat  = errors.New("cose: malformed key")
	ErrKeyType = errors.New("cose: not an RSA key")
)

// coseKey is the wire form of an RSA COSE_Key.
type coseKey struct {
	Kty int64  `cbor:"1,keyasint"`
	N   []byte `cbor:"-1,keyasint"`
	E   []byte `cbor:"-2,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}
	if decMode, err = (cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}).DecMode(); err != nil {
		panic(err)
	}
}

// MarshalKey serializes the public key as a deterministic RSA COSE_Key.
func MarshalKey(pub *key.PublicKey) ([]byte, error) {
	if pub.N.Sign() <= 0 || pub.E.Sign() <= 0 {
		return nil, fmt.Errorf("%w: non-positive component", ErrFormat)
	}
	return encMode.Marshal(&coseKey{
		Kty: KeyTypeRSA,
		N:   pub.N.Bytes(),
		E:   pub.E.Bytes(),
	})
}

// ParseKey parses an RSA COSE_Key into a public key. Keys of any other
// type fail with ErrKeyType; byte strings with redundant leading zeroes
// are rejected since they break the one-key-one-encoding property.
func ParseKey(data []byte) (*key.PublicKey, error) {
	var wire coseKey
	if err := decMode.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if wire.Kty != KeyTypeRSA {
		return nil, fmt.Errorf("%w: kty %d", ErrKeyType, wire.Kty)
	}
	n, err := parseComponent(wire.N)
	if err != nil {
		return nil, fmt.Errorf("%w: modulus", err)
	}
	e, err := parseComponent(wire.E)
	if err != nil {
		return nil, fmt.Errorf("%w: exponent", err)
	}
	if n.Bit(0) == 0 {
		return nil, fmt.Errorf("%w: even modulus", ErrFormat)
	}
	return &key.PublicKey{N: n, E: e}, nil
}

func parseComponent(raw []byte) (*big.Int, error) {
	if len(raw) == 0 {
		return nil, ErrFormat
	}
	if raw[0] == 0 {
		return nil, ErrFormat
	}
	return transform.BytesToInt(raw), nil
}
