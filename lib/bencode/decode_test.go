// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeValues(t *testing.T) {
	cases := []struct {
		input string
		want  any
	}{
		// Byte strings.
		{"0:", []byte{}},
		{"1:1", []byte("1")},
		{"4:spam", []byte("spam")},
		{"10:1234567890", []byte("1234567890")},

		// Integers.
		{"i0e", int64(0)},
		{"i1e", int64(1)},
		{"i-1e", int64(-1)},
		{"i10e", int64(10)},
		{"i-10e", int64(-10)},
		// The full unsigned 64-bit range is supported.
		{"i18446744073709551615e", uint64(0xFFFFFFFFFFFFFFFF)},

		// Lists.
		{"le", []any{}},
		{"l4:spam4:eggse", []any{[]byte("spam"), []byte("eggs")}},
		{"l4:spamli-10eee", []any{[]byte("spam"), []any{int64(-10)}}},

		// Dictionaries.
		{"de", map[string]any{}},
		{"d3:cow3:moo4:spam4:eggse", map[string]any{"cow": []byte("moo"), "spam": []byte("eggs")}},
		{"d6:answeri42e3:cowl3:mooee", map[string]any{"cow": []any{[]byte("moo")}, "answer": int64(42)}},
	}

	for _, c := range cases {
		got, err := Decode([]byte(c.input))
		if err != nil {
			t.Errorf("Decode(%q): %v", c.input, err)
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Decode(%q) = %#v, want %#v", c.input, got, c.want)
		}
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		input string
		code  Code
	}{
		{"", CodeEmptyInput},
		{"x", CodeUnknownSelector},

		// Byte strings.
		{"0", CodeMissingLengthDelimiter},
		{"00:", CodeMalformedLength},
		{"0 :", CodeMalformedLength},
		{"2.:x", CodeMalformedLength},
		{"2:x", CodeLengthOutOfBounds},
		{"0:x", CodeTrailingBytes},

		// Integers.
		{"ie", CodeMalformedInteger},
		{"i e", CodeMalformedInteger},
		{"i+1e", CodeMalformedInteger},
		{"i03e", CodeMalformedInteger},
		{"i-0e", CodeMalformedInteger},
		{"i 1 e", CodeMalformedInteger},
		{"i0", CodeMissingIntegerTerminator},
		{"i0e-", CodeTrailingBytes},
		// One past the unsigned 64-bit maximum.
		{"i18446744073709551616e", CodeMalformedInteger},

		// Lists.
		{"l e", CodeUnknownSelector},
		{"le-", CodeTrailingBytes},
		{"l", CodeMissingListTerminator},

		// Dictionaries.
		{"d e", CodeUnknownSelector},
		{"de-", CodeTrailingBytes},
		{"d", CodeMissingDictTerminator},
		{"d3:cow", CodeMissingDictTerminator},
		{"d3:cowe", CodeUnknownSelector},
		{"d3:cowi0e3:cowi0ee", CodeDuplicateKey},
		{"di0e3:cowe", CodeUnsupportedKeyType},
		{"dl4:spame3:cowe", CodeUnsupportedKeyType},
	}

	for _, c := range cases {
		_, err := Decode([]byte(c.input))
		if err == nil {
			t.Errorf("Decode(%q) succeeded, want code %v", c.input, c.code)
			continue
		}
		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) {
			t.Errorf("Decode(%q) returned %T, want *DecodeError", c.input, err)
			continue
		}
		if decodeErr.Code != c.code {
			t.Errorf("Decode(%q) failed with %v (%v), want %v", c.input, decodeErr.Code, decodeErr, c.code)
		}
	}
}

func TestDecodeErrorCarriesOffset(t *testing.T) {
	_, err := Decode([]byte("l4:spamxe"))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if decodeErr.Code != CodeUnknownSelector {
		t.Errorf("code = %v, want %v", decodeErr.Code, CodeUnknownSelector)
	}
	if decodeErr.Offset != 7 {
		t.Errorf("offset = %d, want 7 (position of the bad selector)", decodeErr.Offset)
	}
}

func TestDecodeTextKeys(t *testing.T) {
	got, err := DecodeTextKeys([]byte("d4:spam4:eggse"))
	if err != nil {
		t.Fatalf("DecodeTextKeys: %v", err)
	}
	want := map[string]any{"spam": []byte("eggs")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}

	// A multi-byte UTF-8 key is fine.
	got, err = DecodeTextKeys([]byte("d4:\xF0\x9F\x92\xA9i0ee"))
	if err != nil {
		t.Fatalf("DecodeTextKeys: %v", err)
	}
	if _, ok := got.(map[string]any)["\U0001F4A9"]; !ok {
		t.Errorf("expected pile-of-poo key, got %#v", got)
	}
}

func TestDecodeTextKeysRejectsInvalidUTF8(t *testing.T) {
	cases := []string{
		"d4:\x80abci0ee",          // invalid first byte
		"d4:\xF0\x82\x82\xACi0ee", // overlong encoding
		"d3:\xED\xA0\x80i0ee",     // surrogate half
	}
	for _, input := range cases {
		_, err := DecodeTextKeys([]byte(input))
		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) || decodeErr.Code != CodeInvalidUTF8Key {
			t.Errorf("DecodeTextKeys(%q) = %v, want CodeInvalidUTF8Key", input, err)
		}

		// The same input decodes fine when keys stay raw bytes.
		if _, err := Decode([]byte(input)); err != nil {
			t.Errorf("Decode(%q) with raw keys: %v", input, err)
		}
	}
}

func TestDecodeEncodeNormalizesKeyOrder(t *testing.T) {
	// The decoder tolerates unsorted dictionaries; re-encoding always
	// produces the sorted canonical form, so only canonical input
	// round-trips byte for byte.
	value, err := Decode([]byte("d4:infod4:name8:file.txt6:lengthi1024eee"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	encoded, err := Encode(value)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(encoded) != "d4:infod6:lengthi1024e4:name8:file.txtee" {
		t.Errorf("Encode produced %q, want sorted keys", encoded)
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	inputs := []string{
		"0:",
		"4:spam",
		"i0e",
		"i-10e",
		"i18446744073709551615e",
		"le",
		"de",
		"l4:spamli-10eee",
		"d6:answeri42e3:cowl3:mooee",
		"d4:infod6:lengthi1024e4:name8:file.txtee",
	}
	for _, input := range inputs {
		value, err := Decode([]byte(input))
		if err != nil {
			t.Errorf("Decode(%q): %v", input, err)
			continue
		}
		encoded, err := Encode(value)
		if err != nil {
			t.Errorf("Encode(Decode(%q)): %v", input, err)
			continue
		}
		if string(encoded) != input {
			t.Errorf("round trip of %q produced %q", input, encoded)
		}
	}
}
