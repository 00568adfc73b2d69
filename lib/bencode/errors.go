// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import "fmt"

// Code identifies the specific way an input failed to decode. Tests
// and callers that need to distinguish failure modes compare against
// these constants instead of matching message text.
type Code uint8

const (
	// CodeEmptyInput: the input had zero length.
	CodeEmptyInput Code = iota + 1

	// CodeUnknownSelector: the byte at the cursor is not a valid type
	// selector (digit, 'i', 'l', or 'd').
	CodeUnknownSelector

	// CodeMissingLengthDelimiter: a byte string's decimal length was
	// not followed by ':'.
	CodeMissingLengthDelimiter

	// CodeMalformedLength: the length text is not canonical decimal
	// (leading zero, sign, whitespace, or non-digit characters).
	CodeMalformedLength

	// CodeLengthOutOfBounds: the declared byte-string length reads
	// past the end of the input.
	CodeLengthOutOfBounds

	// CodeMalformedInteger: the integer text does not round-trip to
	// the same text when re-stringified (leading zero, '+', embedded
	// whitespace, "-0", or out of the supported 64-bit range).
	CodeMalformedInteger

	// CodeMissingIntegerTerminator: no 'e' after an integer's digits.
	CodeMissingIntegerTerminator

	// CodeMissingListTerminator: input ended inside a list.
	CodeMissingListTerminator

	// CodeMissingDictTerminator: input ended inside a dictionary.
	CodeMissingDictTerminator

	// CodeUnsupportedKeyType: a dictionary key is not a byte string.
	CodeUnsupportedKeyType

	// CodeDuplicateKey: a dictionary contains the same key twice.
	CodeDuplicateKey

	// CodeInvalidUTF8Key: a dictionary key is not valid UTF-8 while
	// decoding in text-key mode.
	CodeInvalidUTF8Key

	// CodeTrailingBytes: bytes remain after the top-level value.
	CodeTrailingBytes
)

var codeNames = map[Code]string{
	CodeEmptyInput:               "empty input",
	CodeUnknownSelector:          "unknown type selector",
	CodeMissingLengthDelimiter:   "missing length delimiter",
	CodeMalformedLength:          "malformed length",
	CodeLengthOutOfBounds:        "length out of bounds",
	CodeMalformedInteger:         "malformed integer",
	CodeMissingIntegerTerminator: "missing integer terminator",
	CodeMissingListTerminator:    "missing list terminator",
	CodeMissingDictTerminator:    "missing dict terminator",
	CodeUnsupportedKeyType:       "unsupported key type",
	CodeDuplicateKey:             "duplicate key",
	CodeInvalidUTF8Key:           "invalid UTF-8 key",
	CodeTrailingBytes:            "trailing bytes",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint8(c))
}

// DecodeError reports a malformed or non-canonical input. Offset is
// the byte position in the input where the problem was detected.
type DecodeError struct {
	Code   Code
	Offset int
	Detail string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bencode: %s at offset %d", e.Detail, e.Offset)
}

// EncodeError reports a value outside the closed universe the encoder
// accepts.
type EncodeError struct {
	Detail string
}

func (e *EncodeError) Error() string {
	return "bencode: " + e.Detail
}
