// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestEncodeValues(t *testing.T) {
	cases := []struct {
		value any
		want  string
	}{
		// Byte strings. The empty string still gets its colon, and a
		// terminating zero byte gets no special treatment.
		{[]byte{}, "0:"},
		{[]byte("spam\x00"), "5:spam\x00"},
		{[]byte("1234567890"), "10:1234567890"},

		// Text encodes as its UTF-8 bytes.
		{"", "0:"},
		{"spam\x00", "5:spam\x00"},
		{"\U0001F4A9", "4:\xF0\x9F\x92\xA9"},

		// Integers.
		{0, "i0e"},
		{int64(-1), "i-1e"},
		{int64(10), "i10e"},
		{uint(7), "i7e"},
		{uint64(0xFFFFFFFFFFFFFFFF), "i18446744073709551615e"},

		// Booleans map to 0/1.
		{false, "i0e"},
		{true, "i1e"},

		// Timestamps store as epoch seconds.
		{time.Unix(12, 0).UTC(), "i12e"},

		// Lists.
		{[]any{}, "le"},
		{[]any{[]byte("spam"), []byte("eggs")}, "l4:spam4:eggse"},
		{[]any{map[string]any{"x": []any{}}, []any{int64(-10)}}, "ld1:xleeli-10eee"},
		{[]string{"spam", "eggs"}, "l4:spam4:eggse"},

		// Dictionaries.
		{map[string]any{}, "de"},
		{map[string]any{"cow": []byte("moo"), "spam": []byte("eggs")}, "d3:cow3:moo4:spam4:eggse"},
		{map[string]any{"cow": []any{[]byte("moo")}, "answer": int64(42)}, "d6:answeri42e3:cowl3:mooee"},
	}

	for _, c := range cases {
		got, err := Encode(c.value)
		if err != nil {
			t.Errorf("Encode(%#v): %v", c.value, err)
			continue
		}
		if string(got) != c.want {
			t.Errorf("Encode(%#v) = %q, want %q", c.value, got, c.want)
		}
	}
}

func TestEncodeSortsKeysByByteValue(t *testing.T) {
	// Insertion order is not observable; the output is always sorted.
	got, err := Encode(map[string]any{"b": int64(1), "a": int64(2)})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(got) != "d1:ai2e1:bi1ee" {
		t.Errorf("got %q, want keys in a-before-b order", got)
	}
}

func TestEncodeRejectsUnsupportedTypes(t *testing.T) {
	for _, value := range []any{nil, 1.2, complex(0, 3), struct{}{}, map[int]any{}} {
		_, err := Encode(value)
		var encodeErr *EncodeError
		if !errors.As(err, &encodeErr) {
			t.Errorf("Encode(%#v) = %v, want *EncodeError", value, err)
		}
	}
}

func TestEncodeTo(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeTo(&buf, map[string]any{"cow": []byte("moo")})
	if err != nil {
		t.Fatalf("EncodeTo: %v", err)
	}
	if buf.String() != "d3:cow3:mooe" {
		t.Errorf("got %q", buf.String())
	}
}

func TestIterEncodeChunks(t *testing.T) {
	cases := []struct {
		value any
		want  []string
	}{
		{[]byte{}, []string{"0", ":"}},
		{[]byte("spam"), []string{"4", ":", "spam"}},
		{int64(0), []string{"i", "0", "e"}},
		{int64(-1), []string{"i", "-1", "e"}},
		{[]any{}, []string{"l", "e"}},
		{[]any{[]byte("spam"), []any{int64(-10)}},
			[]string{"l", "4", ":", "spam", "l", "i", "-10", "e", "e", "e"}},
		{map[string]any{}, []string{"d", "e"}},
		{map[string]any{"cow": []any{[]byte("moo")}, "answer": int64(42)},
			[]string{"d", "6", ":", "answer", "i", "42", "e", "3", ":", "cow", "l", "3", ":", "moo", "e", "e"}},
	}

	for _, c := range cases {
		var got []string
		for chunk, err := range IterEncode(c.value) {
			if err != nil {
				t.Fatalf("IterEncode(%#v): %v", c.value, err)
			}
			got = append(got, string(chunk))
		}
		if len(got) != len(c.want) {
			t.Errorf("IterEncode(%#v) yielded %q, want %q", c.value, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("IterEncode(%#v) chunk %d = %q, want %q", c.value, i, got[i], c.want[i])
			}
		}
	}
}

func TestIterEncodeReportsError(t *testing.T) {
	var sawError bool
	for _, err := range IterEncode([]any{[]byte("ok"), 1.5}) {
		if err != nil {
			sawError = true
		}
	}
	if !sawError {
		t.Error("expected an error chunk for the unsupported float")
	}
}

func TestIterEncodeStopsEarly(t *testing.T) {
	count := 0
	for range IterEncode([]any{[]byte("spam"), []byte("eggs")}) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("yielded %d chunks before break, want 2", count)
	}
}
