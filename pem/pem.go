// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pem provides strict PEM armor encoding and decoding.
//
// https://datatracker.ietf.org/doc/html/rfc7468
//
// Decoding is deliberately stricter than the RFC allows: the header must
// start the input, line endings must be consistent, the base64 body is
// decoded in strict mode and nothing may follow the footer. Key files are
// machine-written, so any deviation is treated as corruption.
package pem

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrFormat is the base error for every malformed-armor failure; inspect it
// with errors.Is.
var ErrFormat = errors.New("pem: malformed PEM block")

var (
	armorBegin  = []byte("-----BEGIN ")
	armorEnd    = []byte("-----END ")
	armorDashes = []byte("-----")
)

// Encode wraps a body in PEM armor under the given label. The base64 body
// is folded at 64 columns and lines end with \n.
func Encode(label string, body []byte) []byte {
	b64 := base64.StdEncoding.EncodeToString(body)

	var buf bytes.Buffer
	buf.Write(armorBegin)
	buf.WriteString(label)
	buf.Write(armorDashes)
	buf.WriteByte('\n')
	for len(b64) > 0 {
		line := b64
		if len(line) > 64 {
			line = b64[:64]
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
		b64 = b64[len(line):]
	}
	buf.Write(armorEnd)
	buf.WriteString(label)
	buf.Write(armorDashes)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// Decode strips the armor from a single PEM block and returns its label and
// base64-decoded body. Every failure wraps ErrFormat.
func Decode(data []byte) (label string, body []byte, err error) {
	if !bytes.HasPrefix(data, armorBegin) {
		return "", nil, fmt.Errorf("%w: missing begin line", ErrFormat)
	}
	headerEnd := bytes.IndexByte(data, '\n')
	if headerEnd < 0 {
		return "", nil, fmt.Errorf("%w: incomplete begin line", ErrFormat)
	}

	// The first line fixes the line-ending style for the whole block.
	lineEnding := []byte("\n")
	header := data[:headerEnd]
	if headerEnd > 0 && data[headerEnd-1] == '\r' {
		lineEnding = []byte("\r\n")
		header = header[:len(header)-1]
	}
	if !bytes.HasSuffix(header, armorDashes) {
		return "", nil, fmt.Errorf("%w: malformed begin line", ErrFormat)
	}
	label = string(header[len(armorBegin) : len(header)-len(armorDashes)])
	if label == "" {
		return "", nil, fmt.Errorf("%w: empty label", ErrFormat)
	}

	footer := append(append(append([]byte(nil), armorEnd...), label...), armorDashes...)
	footerIdx := bytes.Index(data[headerEnd+1:], footer)
	if footerIdx < 0 {
		return "", nil, fmt.Errorf("%w: missing end line for %q", ErrFormat, label)
	}
	footerStart := headerEnd + 1 + footerIdx
	rest := data[footerStart+len(footer):]
	if len(rest) > 0 && !bytes.Equal(rest, lineEnding) {
		return "", nil, fmt.Errorf("%w: trailing data after end line", ErrFormat)
	}

	lines := data[headerEnd+1 : footerStart]
	if len(lines) > 0 && !bytes.HasSuffix(lines, lineEnding) {
		return "", nil, fmt.Errorf("%w: base64 body not newline-terminated", ErrFormat)
	}
	b64 := bytes.ReplaceAll(lines, lineEnding, nil)
	if bytes.ContainsAny(b64, "\r\n") {
		return "", nil, fmt.Errorf("%w: inconsistent line endings", ErrFormat)
	}

	body, decodeErr := base64.StdEncoding.Strict().DecodeString(string(b64))
	if decodeErr != nil {
		return "", nil, fmt.Errorf("%w: invalid base64 body", ErrFormat)
	}
	return label, body, nil
}
