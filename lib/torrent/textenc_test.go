// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package torrent

import (
	"strings"
	"testing"
)

// cp1251Be is the single byte for the Cyrillic capital letter Be in
// code page 1251. It is not valid UTF-8 on its own.
var cp1251Be = []byte{0xC1}

func newTextRecord(data map[string]any) (*Backbone, *StringField) {
	b := NewBackbone(data)
	encoding := NewStringField(b, "encoding").WithEncoding("ASCII")
	codepage := NewIntegerField(b, "codepage").Min(1)
	b.BindEncodingContext(encoding, codepage)
	return b, NewStringField(b, "comment")
}

func TestDecodeTextDefaultsToUTF8(t *testing.T) {
	_, field := newTextRecord(map[string]any{"comment": []byte("Б")})

	value, _, err := field.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "Б" {
		t.Errorf("Get() = %q", value)
	}
}

func TestDecodeTextUsesEncodingField(t *testing.T) {
	_, field := newTextRecord(map[string]any{
		"encoding": []byte("cp1251"),
		"comment":  cp1251Be,
	})

	value, _, err := field.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "Б" {
		t.Errorf("Get() = %q, want the cp1251 letter Be", value)
	}
}

func TestDecodeTextUsesCodepageField(t *testing.T) {
	_, field := newTextRecord(map[string]any{
		"codepage": int64(1251),
		"comment":  cp1251Be,
	})

	value, _, err := field.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "Б" {
		t.Errorf("Get() = %q, want the cp1251 letter Be", value)
	}
}

func TestDecodeTextEncodingFieldWins(t *testing.T) {
	// When both are present the encoding field takes priority.
	_, field := newTextRecord(map[string]any{
		"encoding": []byte("cp1251"),
		"codepage": int64(437),
		"comment":  cp1251Be,
	})

	value, _, err := field.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "Б" {
		t.Errorf("Get() = %q, want the cp1251 letter Be", value)
	}
}

func TestDecodeTextFixedEncodingBeatsContext(t *testing.T) {
	// A field pinned to cp1251 ignores the record's cp437 context:
	// 0xC1 is the letter Be in cp1251 but a box-drawing glyph in cp437.
	b := NewBackbone(map[string]any{
		"codepage": int64(437),
		"title":    cp1251Be,
	})
	codepage := NewIntegerField(b, "codepage").Min(1)
	b.BindEncodingContext(nil, codepage)
	field := NewStringField(b, "title").WithEncoding("cp1251")

	value, _, err := field.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "Б" {
		t.Errorf("Get() = %q, want the pinned cp1251 decoding", value)
	}
}

func TestDecodeTextContextBeatsUTF8(t *testing.T) {
	// 0xD0 0x91 is valid UTF-8 for the letter Be, but the record says
	// cp1251, where those bytes mean something else. The record's own
	// encoding is tried first.
	_, field := newTextRecord(map[string]any{
		"codepage": int64(1251),
		"comment":  []byte{0xD0, 0x91},
	})

	value, _, err := field.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "Р‘" {
		t.Errorf("Get() = %q, want the cp1251 reading, not the UTF-8 one", value)
	}
}

func TestDecodeTextContextLoadsEncodingField(t *testing.T) {
	b, field := newTextRecord(map[string]any{
		"encoding": []byte("cp1251"),
		"comment":  cp1251Be,
	})

	if _, _, err := field.Get(); err != nil {
		t.Fatalf("Get: %v", err)
	}
	// Resolving the comment consumed the encoding field too.
	if _, exists := b.Data["encoding"]; exists {
		t.Error("encoding key still raw after context resolution")
	}
}

func TestDecodeTextFallbackEncoding(t *testing.T) {
	b, field := newTextRecord(map[string]any{"comment": cp1251Be})
	b.SetFallbackEncoding("cp1251")

	value, _, err := field.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "Б" {
		t.Errorf("Get() = %q, want the fallback decoding", value)
	}
}

func TestDecodeTextUTF8BeatsFallback(t *testing.T) {
	b, field := newTextRecord(map[string]any{"comment": []byte("plain")})
	b.SetFallbackEncoding("cp1251")

	value, _, err := field.Get()
	if err != nil || value != "plain" {
		t.Errorf("Get() = %q, %v", value, err)
	}
}

func TestDecodeTextFailureNamesCandidates(t *testing.T) {
	// 0x98 is unmapped in cp1251 and not valid UTF-8.
	b, field := newTextRecord(map[string]any{"comment": []byte{0x98}})
	b.SetFallbackEncoding("cp1251")

	_, _, err := field.Get()
	if err == nil {
		t.Fatal("Get decoded an undecodable byte")
	}
	if !strings.Contains(err.Error(), "UTF-8 or cp1251") {
		t.Errorf("error %q does not name the attempted encodings", err)
	}
}

func TestDecodeTextUnknownEncoding(t *testing.T) {
	_, field := newTextRecord(map[string]any{
		"encoding": []byte("klingon-8"),
		"comment":  []byte("x"),
	})

	_, _, err := field.Get()
	if err == nil || !strings.Contains(err.Error(), "unknown encoding") {
		t.Errorf("Get() error = %v, want an unknown-encoding error", err)
	}
}

func TestDecodeTextFixedEncodingIsStrict(t *testing.T) {
	// The encoding field itself is pinned to ASCII; a non-ASCII byte
	// in it must not fall back to anything.
	b := NewBackbone(map[string]any{"encoding": append([]byte("cp1251"), 0xC1)})
	encoding := NewStringField(b, "encoding").WithEncoding("ASCII")
	b.BindEncodingContext(encoding, nil)

	if _, _, err := encoding.Get(); err == nil {
		t.Error("Get accepted non-ASCII bytes in an ASCII-pinned field")
	}
}

func TestDecodeTextCodepage437(t *testing.T) {
	// 0xE1 is the sharp s in code page 437.
	_, field := newTextRecord(map[string]any{
		"codepage": int64(437),
		"comment":  []byte{0xE1},
	})

	value, _, err := field.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "ß" {
		t.Errorf("Get() = %q, want the cp437 sharp s", value)
	}
}
