// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package key

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/dark-bio/rsa-go/asn1"
	"github.com/dark-bio/rsa-go/pem"
)

// PEM labels for the supported key encodings
const (
	LabelPublicKey  = "RSA PUBLIC KEY"  // PKCS#1 RSAPublicKey
	LabelPKIXKey    = "PUBLIC KEY"      // X.509 SubjectPublicKeyInfo
	LabelPrivateKey = "RSA PRIVATE KEY" // PKCS#1 RSAPrivateKey
)

// ErrLabel is returned when a PEM block carries the wrong label for the
// requested key type.
var ErrLabel = errors.New("key: unexpected PEM label")

func checkPublic(n, e *big.Int) error {
	if n.Sign() <= 0 || n.Bit(0) == 0 {
		return fmt.Errorf("%w: modulus must be positive and odd", ErrInvalidKey)
	}
	if e.Sign() <= 0 {
		return fmt.Errorf("%w: exponent must be positive", ErrInvalidKey)
	}
	return nil
}

// ParsePublicKeyDER parses a PKCS#1 DER-encoded public key.
func ParsePublicKeyDER(der []byte) (*PublicKey, error) {
	n, e, err := asn1.DecodeRSAPublicKey(der)
	if err != nil {
		return nil, err
	}
	if err := checkPublic(n, e); err != nil {
		return nil, err
	}
	return &PublicKey{N: n, E: e}, nil
}

// MustParsePublicKeyDER parses a PKCS#1 DER-encoded public key.
// It panics if the parsing fails.
func MustParsePublicKeyDER(der []byte) *PublicKey {
	k, err := ParsePublicKeyDER(der)
	if err != nil {
		panic("key: " + err.Error())
	}
	return k
}

// ParsePublicKeyPEM parses a PEM-encoded PKCS#1 public key
// (label "RSA PUBLIC KEY").
func ParsePublicKeyPEM(text []byte) (*PublicKey, error) {
	label, blob, err := pem.Decode(text)
	if err != nil {
		return nil, err
	}
	if label != LabelPublicKey {
		return nil, fmt.Errorf("%w: %q", ErrLabel, label)
	}
	return ParsePublicKeyDER(blob)
}

// MustParsePublicKeyPEM parses a PEM-encoded PKCS#1 public key.
// It panics if the parsing fails.
func MustParsePublicKeyPEM(text []byte) *PublicKey {
	k, err := ParsePublicKeyPEM(text)
	if err != nil {
		panic("key: " + err.Error())
	}
	return k
}

// ParsePublicKeyPKIXDER parses an X.509 SubjectPublicKeyInfo DER-encoded
// public key.
func ParsePublicKeyPKIXDER(der []byte) (*PublicKey, error) {
	n, e, err := asn1.DecodeSubjectPublicKeyInfo(der)
	if err != nil {
		return nil, err
	}
	if err := checkPublic(n, e); err != nil {
		return nil, err
	}
	return &PublicKey{N: n, E: e}, nil
}

// ParsePublicKeyPKIXPEM parses a PEM-encoded X.509 public key
// (label "PUBLIC KEY"), the format produced by openssl rsa -pubout.
func ParsePublicKeyPKIXPEM(text []byte) (*PublicKey, error) {
	label, blob, err := pem.Decode(text)
	if err != nil {
		return nil, err
	}
	if label != LabelPKIXKey {
		return nil, fmt.Errorf("%w: %q", ErrLabel, label)
	}
	return ParsePublicKeyPKIXDER(blob)
}

// MarshalDER serializes the public key to PKCS#1 DER format.
func (k *PublicKey) MarshalDER() []byte {
	return asn1.EncodeRSAPublicKey(k.N, k.E)
}

// MarshalPEM serializes the public key to PKCS#1 PEM format.
func (k *PublicKey) MarshalPEM() []byte {
	return pem.Encode(LabelPublicKey, k.MarshalDER())
}

// MarshalPKIXDER serializes the public key to X.509 SubjectPublicKeyInfo
// DER format.
func (k *PublicKey) MarshalPKIXDER() []byte {
	return asn1.EncodeSubjectPublicKeyInfo(k.N, k.E)
}

// MarshalPKIXPEM serializes the public key to X.509 PEM format.
func (k *PublicKey) MarshalPKIXPEM() []byte {
	return pem.Encode(LabelPKIXKey, k.MarshalPKIXDER())
}

// ParsePrivateKeyDER parses a PKCS#1 DER-encoded private key and validates
// its arithmetic consistency.
func ParsePrivateKeyDER(der []byte) (*PrivateKey, error) {
	raw, err := asn1.DecodeRSAPrivateKey(der)
	if err != nil {
		return nil, err
	}
	k := &PrivateKey{
		N: raw.N, E: raw.E, D: raw.D, P: raw.P, Q: raw.Q,
		DP: raw.DP, DQ: raw.DQ, QInv: raw.QInv,
	}
	if err := k.validate(); err != nil {
		return nil, err
	}
	return k, nil
}

// MustParsePrivateKeyDER parses a PKCS#1 DER-encoded private key.
// It panics if the parsing fails.
func MustParsePrivateKeyDER(der []byte) *PrivateKey {
	k, err := ParsePrivateKeyDER(der)
	if err != nil {
		panic("key: " + err.Error())
	}
	return k
}

// ParsePrivateKeyPEM parses a PEM-encoded PKCS#1 private key
// (label "RSA PRIVATE KEY").
func ParsePrivateKeyPEM(text []byte) (*PrivateKey, error) {
	label, blob, err := pem.Decode(text)
	if err != nil {
		return nil, err
	}
	if label != LabelPrivateKey {
		return nil, fmt.Errorf("%w: %q", ErrLabel, label)
	}
	return ParsePrivateKeyDER(blob)
}

// MustParsePrivateKeyPEM parses a PEM-encoded PKCS#1 private key.
// It panics if the parsing fails.
func MustParsePrivateKeyPEM(text []byte) *PrivateKey {
	k, err := ParsePrivateKeyPEM(text)
	if err != nil {
		panic("key: " + err.Error())
	}
	return k
}

// MarshalDER serializes the private key to PKCS#1 DER format.
func (k *PrivateKey) MarshalDER() []byte {
	return asn1.EncodeRSAPrivateKey(&asn1.RSAPrivateKey{
		N: k.N, E: k.E, D: k.D, P: k.P, Q: k.Q,
		DP: k.DP, DQ: k.DQ, QInv: k.QInv,
	})
}

// MarshalPEM serializes the private key to PKCS#1 PEM format.
func (k *PrivateKey) MarshalPEM() []byte {
	return pem.Encode(LabelPrivateKey, k.MarshalDER())
}
