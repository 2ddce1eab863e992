// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pkcs1 implements PKCS#1 v1.5 encryption and signing.
//
// https://datatracker.ietf.org/doc/html/rfc8017
//
// Encryption uses type-2 blocks with at least 8 bytes of nonzero random
// padding; signing uses type-1 blocks around a DER DigestInfo. Decryption
// and verification failures are deliberately reported through a single
// generic error each, so callers cannot be turned into a padding oracle.
// The private-key operations are always blinded.
package pkcs1

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"errors"
	"fmt"
	"hash"
	"io"
	"sort"

	"golang.org/x/crypto/sha3"

	"github.com/dark-bio/rsa-go/asn1"
	"github.com/dark-bio/rsa-go/core"
	"github.com/dark-bio/rsa-go/key"
	"github.com/dark-bio/rsa-go/transform"
)

// Error types for PKCS#1 operations
var (
	ErrMessageTooLong = errors.New("pkcs1: message too long for key size")
	ErrDecryption     = errors.New("pkcs1: decryption error")
	ErrVerification   = errors.New("pkcs1: verification error")
	ErrHash           = errors.New("pkcs1: unsupported hash")
)

// minPadding is the smallest number of random padding bytes in a type-2
// block shorter padding makes the block malleable enough to attack.
const minPadding = 8

type hashInfo struct {
	oid  asn1.OID
	size int
	new  func() hash.Hash
}

// hashRegistry is the fixed table of supported digest algorithms, built
// once at init and never mutated. OIDs per RFC 8017 B.1 and RFC 8702.
var hashRegistry = map[string]hashInfo{
	"MD5":      {asn1.OID{1, 2, 840, 113549, 2, 5}, md5.Size, md5.New},
	"SHA-1":    {asn1.OID{1, 3, 14, 3, 2, 26}, sha1.Size, sha1.New},
	"SHA-224":  {asn1.OID{2, 16, 840, 1, 101, 3, 4, 2, 4}, sha256.Size224, sha256.New224},
	"SHA-256":  {asn1.OID{2, 16, 840, 1, 101, 3, 4, 2, 1}, sha256.Size, sha256.New},
	"SHA-384":  {asn1.OID{2, 16, 840, 1, 101, 3, 4, 2, 2}, sha512.Size384, sha512.New384},
	"SHA-512":  {asn1.OID{2, 16, 840, 1, 101, 3, 4, 2, 3}, sha512.Size, sha512.New},
	"SHA3-256": {asn1.OID{2, 16, 840, 1, 101, 3, 4, 2, 8}, 32, sha3.New256},
	"SHA3-512": {asn1.OID{2, 16, 840, 1, 101, 3, 4, 2, 10}, 64, sha3.New512},
}

// HashNames returns the supported hash names in sorted order.
func HashNames() []string {
	names := make([]string, 0, len(hashRegistry))
	for name := range hashRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ComputeHash digests the message with the named hash algorithm.
func ComputeHash(message []byte, hashName string) ([]byte, error) {
	info, ok := hashRegistry[hashName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrHash, hashName)
	}
	h := info.new()
	h.Write(message)
	return h.Sum(nil), nil
}

func hashNameByOID(oid asn1.OID) (string, bool) {
	for name, info := range hashRegistry {
		if info.oid.Equal(oid) {
			return name, true
		}
	}
	return "", false
}

// padForEncryption builds a type-2 block: 00 02 <nonzero random> 00 message.
func padForEncryption(random io.Reader, message []byte, targetLen int) ([]byte, error) {
	if len(message) > targetLen-minPadding-3 {
		return nil, fmt.Errorf("%w: %d bytes, space for %d", ErrMessageTooLong, len(message), targetLen-minPadding-3)
	}
	block := make([]byte, targetLen)
	block[1] = 0x02
	padding := block[2 : targetLen-len(message)-1]
	if err := fillNonZero(random, padding); err != nil {
		return nil, err
	}
	copy(block[targetLen-len(message):], message)
	return block, nil
}

// fillNonZero fills buf with random bytes, redrawing any zero byte so the
// padding never contains the terminator value.
func fillNonZero(random io.Reader, buf []byte) error {
	if _, err := io.ReadFull(random, buf); err != nil {
		return fmt.Errorf("pkcs1: entropy source: %w", err)
	}
	for i := range buf {
		for buf[i] == 0 {
			if _, err := io.ReadFull(random, buf[i:i+1]); err != nil {
				return fmt.Errorf("pkcs1: entropy source: %w", err)
			}
		}
	}
	return nil
}

// padForSigning builds a type-1 block: 00 01 ff..ff 00 message. The padding
// is deterministic so the same input always signs to the same block.
func padForSigning(message []byte, targetLen int) ([]byte, error) {
	if len(message) > targetLen-minPadding-3 {
		return nil, fmt.Errorf("%w: %d bytes, space for %d", ErrMessageTooLong, len(message), targetLen-minPadding-3)
	}
	block := make([]byte, targetLen)
	block[1] = 0x01
	for i := 2; i < targetLen-len(message)-1; i++ {
		block[i] = 0xff
	}
	copy(block[targetLen-len(message):], message)
	return block, nil
}

// Encrypt encrypts the message with type-2 padding. The message can be at
// most k-11 bytes for a k-byte modulus; longer messages fail with
// ErrMessageTooLong.
func Encrypt(random io.Reader, message []byte, pub *key.PublicKey) ([]byte, error) {
	k := transform.ByteSize(pub.N)
	padded, err := padForEncryption(random, message, k)
	if err != nil {
		return nil, err
	}
	cipher, err := core.EncryptInt(transform.BytesToInt(padded), pub.E, pub.N)
	if err != nil {
		return nil, err
	}
	return transform.IntToBytes(cipher, k)
}

// Decrypt decrypts a type-2 ciphertext. The private-key operation is
// blinded with fresh randomness from random, and the unpad runs with
// constant structure; every failure surfaces as the same ErrDecryption with
// no detail, since any distinction would hand an oracle to an attacker.
func Decrypt(random io.Reader, ciphertext []byte, priv *key.PrivateKey) ([]byte, error) {
	k := transform.ByteSize(priv.N)
	if len(ciphertext) != k || k < 11 {
		return nil, ErrDecryption
	}
	plain, err := priv.BlindedDecrypt(random, transform.BytesToInt(ciphertext))
	if err != nil {
		return nil, ErrDecryption
	}
	block, err := transform.IntToBytes(plain, k)
	if err != nil {
		return nil, ErrDecryption
	}

	firstZero := subtle.ConstantTimeByteEq(block[0], 0x00)
	secondTwo := subtle.ConstantTimeByteEq(block[1], 0x02)

	// Locate the 00 separator without branching on secret bytes.
	sepIndex := 0
	searching := 1
	for i := 2; i < len(block); i++ {
		isZero := subtle.ConstantTimeByteEq(block[i], 0x00)
		sepIndex = subtle.ConstantTimeSelect(searching&isZero, i, sepIndex)
		searching = subtle.ConstantTimeSelect(isZero, 0, searching)
	}
	found := subtle.ConstantTimeEq(int32(searching), 0)
	enoughPadding := subtle.ConstantTimeLessOrEq(2+minPadding, sepIndex)

	if firstZero&secondTwo&found&enoughPadding != 1 {
		return nil, ErrDecryption
	}
	return block[sepIndex+1:], nil
}

// SignHash signs a precomputed digest: the digest is wrapped in a DER
// DigestInfo naming the hash algorithm, padded as a type-1 block and raised
// to the private exponent (blinded). The digest length must match the
// algorithm.
func SignHash(random io.Reader, digest []byte, priv *key.PrivateKey, hashName string) ([]byte, error) {
	info, ok := hashRegistry[hashName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrHash, hashName)
	}
	if len(digest) != info.size {
		return nil, fmt.Errorf("%w: digest length %d, want %d for %s", ErrHash, len(digest), info.size, hashName)
	}
	k := transform.ByteSize(priv.N)
	padded, err := padForSigning(asn1.EncodeDigestInfo(info.oid, digest), k)
	if err != nil {
		return nil, err
	}
	signed, err := priv.BlindedEncrypt(random, transform.BytesToInt(padded))
	if err != nil {
		return nil, err
	}
	return transform.IntToBytes(signed, k)
}

// Sign hashes the message with the named algorithm and signs the digest.
// This is a detached signature; the message itself is not altered.
func Sign(random io.Reader, message []byte, priv *key.PrivateKey, hashName string) ([]byte, error) {
	digest, err := ComputeHash(message, hashName)
	if err != nil {
		return nil, err
	}
	return SignHash(random, digest, priv, hashName)
}

// Verify checks the signature against the message and returns the name of
// the hash algorithm the signer used. The expected block is rebuilt from
// the message and compared as a whole in constant time; any mismatch, in
// the padding, the algorithm identifier or the digest, fails with the same
// ErrVerification.
func Verify(message, signature []byte, pub *key.PublicKey) (string, error) {
	k := transform.ByteSize(pub.N)
	clearsig, err := openSignature(signature, pub, k)
	if err != nil {
		return "", err
	}
	oid, _, err := digestInfoFromBlock(clearsig)
	if err != nil {
		return "", err
	}
	hashName, ok := hashNameByOID(oid)
	if !ok {
		return "", ErrVerification
	}

	digest, err := ComputeHash(message, hashName)
	if err != nil {
		return "", ErrVerification
	}
	expected, err := padForSigning(asn1.EncodeDigestInfo(oid, digest), k)
	if err != nil {
		return "", ErrVerification
	}
	if subtle.ConstantTimeCompare(expected, clearsig) != 1 {
		return "", ErrVerification
	}
	return hashName, nil
}

// HashFromSignature reports which hash algorithm produced the signature
// without verifying it. Use Verify when the message is at hand.
func HashFromSignature(signature []byte, pub *key.PublicKey) (string, error) {
	clearsig, err := openSignature(signature, pub, transform.ByteSize(pub.N))
	if err != nil {
		return "", err
	}
	oid, _, err := digestInfoFromBlock(clearsig)
	if err != nil {
		return "", err
	}
	hashName, ok := hashNameByOID(oid)
	if !ok {
		return "", ErrVerification
	}
	return hashName, nil
}

// openSignature applies the public exponent and returns the fixed-width
// clear block.
func openSignature(signature []byte, pub *key.PublicKey, k int) ([]byte, error) {
	if len(signature) != k {
		return nil, ErrVerification
	}
	opened, err := core.DecryptInt(transform.BytesToInt(signature), pub.E, pub.N)
	if err != nil {
		return nil, ErrVerification
	}
	block, err := transform.IntToBytes(opened, k)
	if err != nil {
		return nil, ErrVerification
	}
	return block, nil
}

// digestInfoFromBlock strips the type-1 framing from a clear signature
// block and parses the embedded DigestInfo. This parse only selects the
// hash algorithm; Verify re-checks the entire block in constant time
// afterwards.
func digestInfoFromBlock(block []byte) (asn1.OID, []byte, error) {
	if len(block) < 11 || block[0] != 0x00 || block[1] != 0x01 {
		return nil, nil, ErrVerification
	}
	i := 2
	for ; i < len(block) && block[i] == 0xff; i++ {
	}
	if i < 2+minPadding || i == len(block) || block[i] != 0x00 {
		return nil, nil, ErrVerification
	}
	oid, digest, err := asn1.DecodeDigestInfo(block[i+1:])
	if err != nil {
		return nil, nil, ErrVerification
	}
	return oid, digest, nil
}
