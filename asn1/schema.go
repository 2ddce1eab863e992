// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asn1

import (
	"errors"
	"fmt"
	"math/big"
)

// OIDRSAEncryption identifies the rsaEncryption algorithm in
// SubjectPublicKeyInfo headers (RFC 8017, Appendix C).
var OIDRSAEncryption = OID{1, 2, 840, 113549, 1, 1, 1}

// Error types for schema-level decoding failures
var (
	ErrNegativeField    = errors.New("asn1: negative key field")
	ErrBadVersion       = errors.New("asn1: unsupported key version")
	ErrUnknownAlgorithm = errors.New("asn1: unexpected algorithm identifier")
)

// RSAPrivateKey mirrors the PKCS#1 RSAPrivateKey schema (RFC 8017, A.1.2):
// a flat SEQUENCE of version 0 and nine INTEGER fields.
type RSAPrivateKey struct {
	N    *big.Int
	E    *big.Int
	D    *big.Int
	P    *big.Int
	Q    *big.Int
	DP   *big.Int // d mod (p-1)
	DQ   *big.Int // d mod (q-1)
	QInv *big.Int // q^-1 mod p
}

// EncodeRSAPublicKey encodes the PKCS#1 RSAPublicKey structure {n, e}.
func EncodeRSAPublicKey(n, e *big.Int) []byte {
	enc := NewEncoder()
	enc.Sequence(func(seq *Encoder) {
		seq.Integer(n)
		seq.Integer(e)
	})
	return enc.Bytes()
}

// DecodeRSAPublicKey decodes the PKCS#1 RSAPublicKey structure.
func DecodeRSAPublicKey(der []byte) (n, e *big.Int, err error) {
	dec := NewDecoder(der)
	seq, err := dec.ReadSequence()
	if err != nil {
		return nil, nil, err
	}
	if err := dec.Finish(); err != nil {
		return nil, nil, err
	}
	if n, err = seq.ReadInteger(); err != nil {
		return nil, nil, err
	}
	if e, err = seq.ReadInteger(); err != nil {
		return nil, nil, err
	}
	if err := seq.Finish(); err != nil {
		return nil, nil, err
	}
	if n.Sign() < 0 || e.Sign() < 0 {
		return nil, nil, ErrNegativeField
	}
	return n, e, nil
}

// EncodeRSAPrivateKey encodes the PKCS#1 RSAPrivateKey structure with
// version 0.
func EncodeRSAPrivateKey(key *RSAPrivateKey) []byte {
	enc := NewEncoder()
	enc.Sequence(func(seq *Encoder) {
		seq.Integer(big.NewInt(0))
		for _, field := range key.fields() {
			seq.Integer(field)
		}
	})
	return enc.Bytes()
}

// DecodeRSAPrivateKey decodes the PKCS#1 RSAPrivateKey structure. Only
// two-prime version 0 keys are accepted.
func DecodeRSAPrivateKey(der []byte) (*RSAPrivateKey, error) {
	dec := NewDecoder(der)
	seq, err := dec.ReadSequence()
	if err != nil {
		return nil, err
	}
	if err := dec.Finish(); err != nil {
		return nil, err
	}
	version, err := seq.ReadInteger()
	if err != nil {
		return nil, err
	}
	if version.Sign() != 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadVersion, version)
	}
	key := new(RSAPrivateKey)
	for _, field := range key.fields() {
		value, err := seq.ReadInteger()
		if err != nil {
			return nil, err
		}
		if value.Sign() < 0 {
			return nil, ErrNegativeField
		}
		field.Set(value)
	}
	if err := seq.Finish(); err != nil {
		return nil, err
	}
	return key, nil
}

// fields returns the nine integer fields in schema order, allocating any
// that are still nil so decode can fill them in place.
func (key *RSAPrivateKey) fields() []*big.Int {
	ptrs := []**big.Int{&key.N, &key.E, &key.D, &key.P, &key.Q, &key.DP, &key.DQ, &key.QInv}
	fields := make([]*big.Int, len(ptrs))
	for i, p := range ptrs {
		if *p == nil {
			*p = new(big.Int)
		}
		fields[i] = *p
	}
	return fields
}

// EncodeSubjectPublicKeyInfo wraps an RSA public key in the X.509
// SubjectPublicKeyInfo structure: an rsaEncryption algorithm header and the
// PKCS#1 encoding inside a BIT STRING.
func EncodeSubjectPublicKeyInfo(n, e *big.Int) []byte {
	enc := NewEncoder()
	enc.Sequence(func(spki *Encoder) {
		spki.Sequence(func(alg *Encoder) {
			alg.ObjectIdentifier(OIDRSAEncryption)
			alg.Null()
		})
		spki.BitString(EncodeRSAPublicKey(n, e), 0)
	})
	return enc.Bytes()
}

// DecodeSubjectPublicKeyInfo unwraps the X.509 SubjectPublicKeyInfo
// structure and decodes the embedded PKCS#1 public key. Algorithms other
// than rsaEncryption are rejected.
func DecodeSubjectPublicKeyInfo(der []byte) (n, e *big.Int, err error) {
	dec := NewDecoder(der)
	spki, err := dec.ReadSequence()
	if err != nil {
		return nil, nil, err
	}
	if err := dec.Finish(); err != nil {
		return nil, nil, err
	}
	alg, err := spki.ReadSequence()
	if err != nil {
		return nil, nil, err
	}
	oid, err := alg.ReadObjectIdentifier()
	if err != nil {
		return nil, nil, err
	}
	if !oid.Equal(OIDRSAEncryption) {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, oid)
	}
	if err := alg.ReadNull(); err != nil {
		return nil, nil, err
	}
	if err := alg.Finish(); err != nil {
		return nil, nil, err
	}
	inner, unused, err := spki.ReadBitString()
	if err != nil {
		return nil, nil, err
	}
	if unused != 0 {
		return nil, nil, fmt.Errorf("%w: key with partial byte", ErrInvalidBits)
	}
	if err := spki.Finish(); err != nil {
		return nil, nil, err
	}
	return DecodeRSAPublicKey(inner)
}

// EncodeDigestInfo encodes the DigestInfo structure binding a hash
// algorithm identifier to a digest value (RFC 8017, 9.2):
//
//	DigestInfo ::= SEQUENCE {
//	    digestAlgorithm SEQUENCE { OID, NULL },
//	    digest          OCTET STRING
//	}
func EncodeDigestInfo(oid OID, digest []byte) []byte {
	enc := NewEncoder()
	enc.Sequence(func(info *Encoder) {
		info.Sequence(func(alg *Encoder) {
			alg.ObjectIdentifier(oid)
			alg.Null()
		})
		info.OctetString(digest)
	})
	return enc.Bytes()
}

// DecodeDigestInfo decodes the DigestInfo structure, returning the hash
// algorithm identifier and the digest bytes.
func DecodeDigestInfo(der []byte) (OID, []byte, error) {
	dec := NewDecoder(der)
	info, err := dec.ReadSequence()
	if err != nil {
		return nil, nil, err
	}
	if err := dec.Finish(); err != nil {
		return nil, nil, err
	}
	alg, err := info.ReadSequence()
	if err != nil {
		return nil, nil, err
	}
	oid, err := alg.ReadObjectIdentifier()
	if err != nil {
		return nil, nil, err
	}
	if err := alg.ReadNull(); err != nil {
		return nil, nil, err
	}
	if err := alg.Finish(); err != nil {
		return nil, nil, err
	}
	digest, err := info.ReadOctetString()
	if err != nil {
		return nil, nil, err
	}
	if err := info.Finish(); err != nil {
		return nil, nil, err
	}
	return oid, digest, nil
}
