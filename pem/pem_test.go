// rsa-go: self-contained RSA public-key cryptography
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pem

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	body := bytes.Repeat([]byte{0x5a, 0xa5, 0x00, 0xff}, 40)
	text := Encode("RSA PRIVATE KEY", body)

	label, got, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if label != "RSA PRIVATE KEY" {
		t.Errorf("label = %q", label)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("body mismatch")
	}
}

func TestEncodeFoldsAt64(t *testing.T) {
	text := Encode("RSA PUBLIC KEY", bytes.Repeat([]byte{0x01}, 100))
	for i, line := range strings.Split(strings.TrimSuffix(string(text), "\n"), "\n") {
		if len(line) > 64 && !strings.HasPrefix(line, "-----") {
			t.Errorf("line %d longer than 64 chars: %q", i, line)
		}
	}
	if !strings.HasPrefix(string(text), "-----BEGIN RSA PUBLIC KEY-----\n") {
		t.Errorf("missing begin line: %q", text)
	}
	if !strings.HasSuffix(string(text), "-----END RSA PUBLIC KEY-----\n") {
		t.Errorf("missing end line: %q", text)
	}
}

func TestEncodeEmptyBody(t *testing.T) {
	label, body, err := Decode(Encode("PUBLIC KEY", nil))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if label != "PUBLIC KEY" || len(body) != 0 {
		t.Errorf("label=%q body=%x", label, body)
	}
}

func TestDecodeCRLF(t *testing.T) {
	text := bytes.ReplaceAll(Encode("PUBLIC KEY", []byte("hello")), []byte("\n"), []byte("\r\n"))
	label, body, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode CRLF: %v", err)
	}
	if label != "PUBLIC KEY" || string(body) != "hello" {
		t.Errorf("label=%q body=%q", label, body)
	}
}

func TestDecodeFailures(t *testing.T) {
	good := string(Encode("RSA PUBLIC KEY", []byte("payload")))
	cases := map[string]string{
		"no begin":         "RSA PUBLIC KEY-----\nAAAA\n-----END RSA PUBLIC KEY-----\n",
		"leading junk":     "junk\n" + good,
		"missing end":      strings.Replace(good, "-----END RSA PUBLIC KEY-----\n", "", 1),
		"label mismatch":   strings.Replace(good, "-----END RSA PUBLIC KEY", "-----END PUBLIC KEY", 1),
		"trailing data":    good + "trailing",
		"bad base64":       strings.Replace(good, "\n", "\n!!!!\n", 1),
		"empty label":      "-----BEGIN -----\nAAAA\n-----END -----\n",
		"incomplete begin": "-----BEGIN RSA PUBLIC KEY-----",
	}
	for name, text := range cases {
		if _, _, err := Decode([]byte(text)); !errors.Is(err, ErrFormat) {
			t.Errorf("%s: error = %v, want ErrFormat", name, err)
		}
	}
}

func FuzzDecode(f *testing.F) {
	f.Add(Encode("RSA PUBLIC KEY", []byte("seed")))
	f.Add(Encode("RSA PRIVATE KEY", bytes.Repeat([]byte{0xff}, 256)))
	f.Add([]byte("-----BEGIN X-----\n-----END X-----\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		label, body, err := Decode(data)
		if err != nil {
			return
		}
		// Accepted inputs must survive a re-encode/decode cycle.
		label2, body2, err := Decode(Encode(label, body))
		if err != nil {
			t.Fatalf("re-decode failed: %v", err)
		}
		if label2 != label || !bytes.Equal(body2, body) {
			t.Fatalf("roundtrip mismatch: %q/%x vs %q/%x", label, body, label2, body2)
		}
	})
}
