// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asn1 implements a tiny DER encoder and decoder.
//
// https://www.itu.int/rec/T-REC-X.690
//
// This is an implementation of the DER subset needed to represent RSA key
// material, focusing on strictness rather than flexibility or completeness.
// The following universal types are supported:
//   - SEQUENCE
//   - INTEGER (minimal two's-complement)
//   - OBJECT IDENTIFIER (base-128 arcs)
//   - BIT STRING (leading unused-bits byte)
//   - OCTET STRING
//   - NULL
//
// Decoding rejects indefinite and non-minimal lengths, non-minimal integer
// encodings and trailing bytes, so every byte sequence has at most one
// accepted interpretation.
package asn1

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// DER tag bytes for the supported universal types
const (
	TagInteger          = 0x02
	TagBitString        = 0x03
	TagOctetString      = 0x04
	TagNull             = 0x05
	TagObjectIdentifier = 0x06
	TagSequence         = 0x30
)

// Error types for DER decoding failures
var (
	ErrTruncated      = errors.New("asn1: unexpected end of data")
	ErrUnexpectedTag  = errors.New("asn1: unexpected tag")
	ErrNonMinimal     = errors.New("asn1: non-minimal encoding")
	ErrTrailingBytes  = errors.New("asn1: unexpected trailing bytes")
	ErrInvalidOID     = errors.New("asn1: invalid object identifier")
	ErrInvalidBits    = errors.New("asn1: invalid bit string")
	ErrInvalidNull    = errors.New("asn1: invalid null")
	ErrIndefiniteLen  = errors.New("asn1: indefinite length not allowed")
	ErrLengthOverflow = errors.New("asn1: length overflows int")
)

// OID is an object identifier as a sequence of integer arcs.
type OID []int

// String returns the dotted decimal form of the identifier.
func (oid OID) String() string {
	parts := make([]string, len(oid))
	for i, arc := range oid {
		parts[i] = strconv.Itoa(arc)
	}
	return strings.Join(parts, ".")
}

// Equal reports whether two identifiers have the same arcs.
func (oid OID) Equal(other OID) bool {
	if len(oid) != len(other) {
		return false
	}
	for i := range oid {
		if oid[i] != other[i] {
			return false
		}
	}
	return true
}

func (oid OID) valid() bool {
	if len(oid) < 2 || oid[0] < 0 || oid[0] > 2 {
		return false
	}
	if oid[0] < 2 && (oid[1] < 0 || oid[1] >= 40) {
		return false
	}
	for _, arc := range oid {
		if arc < 0 {
			return false
		}
	}
	return true
}

// Encoder is the low-level DER encoder. Methods append one value each; the
// zero encoder is not usable, construct one with NewEncoder.
type Encoder struct {
	buf []byte
}

// NewEncoder creates a DER encoder with a small pre-allocated buffer (key
// structures for common moduli fit in about 1.5KB).
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 2048)}
}

// Bytes returns the encoded output accumulated so far.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Integer appends an INTEGER in minimal two's-complement form. Non-negative
// values whose top magnitude bit is set receive a leading 0x00 byte so they
// stay unambiguously positive.
func (e *Encoder) Integer(value *big.Int) {
	e.buf = append(e.buf, TagInteger)
	content := integerContent(value)
	e.appendLength(len(content))
	e.buf = append(e.buf, content...)
}

func integerContent(value *big.Int) []byte {
	switch value.Sign() {
	case 0:
		return []byte{0x00}
	case 1:
		mag := value.Bytes()
		if mag[0]&0x80 != 0 {
			return append([]byte{0x00}, mag...)
		}
		return mag
	default:
		// Two's complement of the absolute value, minimal width.
		bits := value.BitLen()
		width := bits/8 + 1
		shifted := new(big.Int).Add(value, new(big.Int).Lsh(big.NewInt(1), uint(8*width)))
		content := make([]byte, width)
		shifted.FillBytes(content)
		if width >= 2 && content[0] == 0xff && content[1]&0x80 != 0 {
			return content[1:]
		}
		return content
	}
}

// Null appends a NULL value.
func (e *Encoder) Null() {
	e.buf = append(e.buf, TagNull, 0x00)
}

// ObjectIdentifier appends an OBJECT IDENTIFIER. It panics on identifiers
// that violate the X.660 arc constraints; all identifiers in this module are
// package constants, so a violation is a programming error.
func (e *Encoder) ObjectIdentifier(oid OID) {
	if !oid.valid() {
		panic("asn1: invalid object identifier " + oid.String())
	}
	var content []byte
	content = appendBase128(content, 40*oid[0]+oid[1])
	for _, arc := range oid[2:] {
		content = appendBase128(content, arc)
	}
	e.buf = append(e.buf, TagObjectIdentifier)
	e.appendLength(len(content))
	e.buf = append(e.buf, content...)
}

func appendBase128(dst []byte, value int) []byte {
	start := len(dst)
	for {
		dst = append(dst, byte(value&0x7f))
		value >>= 7
		if value == 0 {
			break
		}
	}
	// Reverse the septets into big-endian order and set continuation bits.
	for i, j := start, len(dst)-1; i < j; i, j = i+1, j-1 {
		dst[i], dst[j] = dst[j], dst[i]
	}
	for i := start; i < len(dst)-1; i++ {
		dst[i] |= 0x80
	}
	return dst
}

// OctetString appends an OCTET STRING.
func (e *Encoder) OctetString(content []byte) {
	e.buf = append(e.buf, TagOctetString)
	e.appendLength(len(content))
	e.buf = append(e.buf, content...)
}

// BitString appends a BIT STRING with the given count of unused trailing
// bits in the final byte. Key structures always wrap whole bytes, so the
// count is normally zero; it panics outside [0, 7].
func (e *Encoder) BitString(content []byte, unusedBits int) {
	if unusedBits < 0 || unusedBits > 7 || (len(content) == 0 && unusedBits != 0) {
		panic("asn1: invalid unused bit count")
	}
	e.buf = append(e.buf, TagBitString)
	e.appendLength(len(content) + 1)
	e.buf = append(e.buf, byte(unusedBits))
	e.buf = append(e.buf, content...)
}

// Sequence appends a SEQUENCE whose contents are produced by the callback
// on a nested encoder.
func (e *Encoder) Sequence(build func(*Encoder)) {
	nested := &Encoder{buf: make([]byte, 0, 256)}
	build(nested)
	e.buf = append(e.buf, TagSequence)
	e.appendLength(len(nested.buf))
	e.buf = append(e.buf, nested.buf...)
}

func (e *Encoder) appendLength(length int) {
	if length < 0x80 {
		e.buf = append(e.buf, byte(length))
		return
	}
	var tmp [8]byte
	n := 0
	for v := length; v > 0; v >>= 8 {
		n++
	}
	for i := n - 1; i >= 0; i-- {
		tmp[i] = byte(length)
		length >>= 8
	}
	e.buf = append(e.buf, 0x80|byte(n))
	e.buf = append(e.buf, tmp[:n]...)
}

// Decoder is the low-level DER decoder: a cursor over an input buffer that
// consumes one value per Read call. Call Finish to assert the input was
// consumed exactly.
type Decoder struct {
	buf []byte
	off int
}

// NewDecoder creates a decoder over the given DER bytes.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{buf: data}
}

// Finish fails with ErrTrailingBytes unless the whole input was consumed.
func (d *Decoder) Finish() error {
	if d.off != len(d.buf) {
		return fmt.Errorf("%w: %d bytes remain", ErrTrailingBytes, len(d.buf)-d.off)
	}
	return nil
}

// Empty reports whether the decoder has consumed its whole input.
func (d *Decoder) Empty() bool {
	return d.off == len(d.buf)
}

// ReadInteger consumes an INTEGER and returns its value.
func (d *Decoder) ReadInteger() (*big.Int, error) {
	content, err := d.readTLV(TagInteger)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: empty integer", ErrTruncated)
	}
	if len(content) > 1 {
		// A leading 0x00 (or 0xff) byte that does not change the value means
		// the encoding is not minimal.
		if (content[0] == 0x00 && content[1]&0x80 == 0) ||
			(content[0] == 0xff && content[1]&0x80 != 0) {
			return nil, fmt.Errorf("%w: padded integer", ErrNonMinimal)
		}
	}
	value := new(big.Int).SetBytes(content)
	if content[0]&0x80 != 0 {
		value.Sub(value, new(big.Int).Lsh(big.NewInt(1), uint(8*len(content))))
	}
	return value, nil
}

// ReadNull consumes a NULL value.
func (d *Decoder) ReadNull() error {
	content, err := d.readTLV(TagNull)
	if err != nil {
		return err
	}
	if len(content) != 0 {
		return fmt.Errorf("%w: %d content bytes", ErrInvalidNull, len(content))
	}
	return nil
}

// ReadObjectIdentifier consumes an OBJECT IDENTIFIER.
func (d *Decoder) ReadObjectIdentifier() (OID, error) {
	content, err := d.readTLV(TagObjectIdentifier)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: empty identifier", ErrInvalidOID)
	}
	var arcs []int
	for i := 0; i < len(content); {
		if content[i] == 0x80 {
			return nil, fmt.Errorf("%w: non-minimal arc", ErrInvalidOID)
		}
		arc := 0
		for {
			if i == len(content) {
				return nil, fmt.Errorf("%w: truncated arc", ErrInvalidOID)
			}
			if arc > (maxInt-0x7f)>>7 {
				return nil, fmt.Errorf("%w: arc overflow", ErrInvalidOID)
			}
			b := content[i]
			arc = arc<<7 | int(b&0x7f)
			i++
			if b&0x80 == 0 {
				break
			}
		}
		arcs = append(arcs, arc)
	}
	first := arcs[0]
	oid := make(OID, 0, len(arcs)+1)
	switch {
	case first < 40:
		oid = append(oid, 0, first)
	case first < 80:
		oid = append(oid, 1, first-40)
	default:
		oid = append(oid, 2, first-80)
	}
	oid = append(oid, arcs[1:]...)
	return oid, nil
}

// ReadOctetString consumes an OCTET STRING and returns its contents.
func (d *Decoder) ReadOctetString() ([]byte, error) {
	return d.readTLV(TagOctetString)
}

// ReadBitString consumes a BIT STRING, returning the payload bytes and the
// count of unused trailing bits.
func (d *Decoder) ReadBitString() ([]byte, int, error) {
	content, err := d.readTLV(TagBitString)
	if err != nil {
		return nil, 0, err
	}
	if len(content) == 0 {
		return nil, 0, fmt.Errorf("%w: missing unused-bits byte", ErrInvalidBits)
	}
	unused := int(content[0])
	if unused > 7 || (len(content) == 1 && unused != 0) {
		return nil, 0, fmt.Errorf("%w: %d unused bits", ErrInvalidBits, unused)
	}
	return content[1:], unused, nil
}

// ReadSequence consumes a SEQUENCE and returns a decoder over its contents.
func (d *Decoder) ReadSequence() (*Decoder, error) {
	content, err := d.readTLV(TagSequence)
	if err != nil {
		return nil, err
	}
	return &Decoder{buf: content}, nil
}

const maxInt = int(^uint(0) >> 1)

func (d *Decoder) readTLV(wantTag byte) ([]byte, error) {
	if len(d.buf)-d.off < 2 {
		return nil, ErrTruncated
	}
	if tag := d.buf[d.off]; tag != wantTag {
		return nil, fmt.Errorf("%w: have 0x%02x, want 0x%02x", ErrUnexpectedTag, tag, wantTag)
	}
	off := d.off + 1

	first := d.buf[off]
	off++
	length := int(first)
	if first == 0x80 {
		return nil, ErrIndefiniteLen
	}
	if first > 0x80 {
		lenBytes := int(first & 0x7f)
		if lenBytes > len(d.buf)-off {
			return nil, ErrTruncated
		}
		if d.buf[off] == 0x00 {
			return nil, fmt.Errorf("%w: padded length", ErrNonMinimal)
		}
		length = 0
		for i := 0; i < lenBytes; i++ {
			if length > maxInt>>8 {
				return nil, ErrLengthOverflow
			}
			length = length<<8 | int(d.buf[off])
			off++
		}
		if length < 0x80 {
			return nil, fmt.Errorf("%w: long-form length", ErrNonMinimal)
		}
	}
	if length > len(d.buf)-off {
		return nil, ErrTruncated
	}
	d.off = off + length
	return d.buf[off : off+length], nil
}
