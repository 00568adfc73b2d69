// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Decode parses exactly one bencoded value spanning the whole input.
// Dictionary keys are returned as Go strings holding the raw key
// bytes, so keys that are not valid UTF-8 round-trip losslessly.
func Decode(data []byte) (any, error) {
	return decode(data, false)
}

// DecodeTextKeys parses like [Decode] but requires every dictionary
// key to be strict UTF-8 text, failing with [CodeInvalidUTF8Key]
// otherwise. The torrent field layer uses this mode so that declared
// fields can be looked up by readable key name.
func DecodeTextKeys(data []byte) (any, error) {
	return decode(data, true)
}

func decode(data []byte, textKeys bool) (any, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Code: CodeEmptyInput, Detail: "input is empty"}
	}

	d := &decoder{data: data, textKeys: textKeys}
	value, err := d.value()
	if err != nil {
		return nil, err
	}
	if d.pos != len(d.data) {
		return nil, d.errorf(CodeTrailingBytes, "%d trailing bytes after top-level value", len(d.data)-d.pos)
	}
	return value, nil
}

type decoder struct {
	data     []byte
	pos      int
	textKeys bool
}

func (d *decoder) errorf(code Code, format string, args ...any) *DecodeError {
	return &DecodeError{Code: code, Offset: d.pos, Detail: fmt.Sprintf(format, args...)}
}

// value dispatches on the type selector byte at the cursor. The
// cursor is known to be in bounds when value is called.
func (d *decoder) value() (any, error) {
	switch selector := d.data[d.pos]; {
	case selector >= '0' && selector <= '9':
		return d.byteString()
	case selector == 'i':
		return d.integer()
	case selector == 'l':
		return d.list()
	case selector == 'd':
		return d.dict()
	default:
		return nil, d.errorf(CodeUnknownSelector, "unknown type selector 0x%02X", selector)
	}
}

// byteString parses <length>:<bytes>. The length text must be
// canonical decimal: digits only, no leading zero unless it is "0"
// itself.
func (d *decoder) byteString() ([]byte, error) {
	start := d.pos
	colon := bytes.IndexByte(d.data[start:], ':')
	if colon < 0 {
		return nil, d.errorf(CodeMissingLengthDelimiter, "missing length delimiter")
	}

	lengthText := string(d.data[start : start+colon])
	length, err := strconv.ParseUint(lengthText, 10, 64)
	if err != nil || strconv.FormatUint(length, 10) != lengthText {
		return nil, d.errorf(CodeMalformedLength, "malformed length %q", lengthText)
	}

	payload := start + colon + 1
	if length > uint64(len(d.data)-payload) {
		return nil, d.errorf(CodeLengthOutOfBounds, "length %d exceeds remaining input", length)
	}

	d.pos = payload + int(length)
	return d.data[payload:d.pos], nil
}

// integer parses i<decimal>e. The decimal text must round-trip
// exactly when the value is re-stringified, which rejects leading
// zeros, a '+' sign, embedded whitespace, and "-0" in one check.
// Values above the signed 64-bit range decode as uint64, covering the
// full unsigned range found in the wild.
func (d *decoder) integer() (any, error) {
	start := d.pos + 1
	end := bytes.IndexByte(d.data[start:], 'e')
	if end < 0 {
		return nil, d.errorf(CodeMissingIntegerTerminator, "missing integer terminator")
	}

	text := string(d.data[start : start+end])
	advance := func() { d.pos = start + end + 1 }

	if signed, err := strconv.ParseInt(text, 10, 64); err == nil {
		if strconv.FormatInt(signed, 10) != text {
			return nil, d.errorf(CodeMalformedInteger, "malformed integer %q", text)
		}
		advance()
		return signed, nil
	}

	unsigned, err := strconv.ParseUint(text, 10, 64)
	if err != nil || strconv.FormatUint(unsigned, 10) != text {
		return nil, d.errorf(CodeMalformedInteger, "malformed integer %q", text)
	}
	advance()
	return unsigned, nil
}

func (d *decoder) list() ([]any, error) {
	d.pos++ // consume 'l'
	items := []any{}
	for d.pos < len(d.data) {
		if d.data[d.pos] == 'e' {
			d.pos++
			return items, nil
		}
		item, err := d.value()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return nil, d.errorf(CodeMissingListTerminator, "missing list terminator")
}

func (d *decoder) dict() (map[string]any, error) {
	d.pos++ // consume 'd'
	result := make(map[string]any)
	for d.pos < len(d.data) {
		if d.data[d.pos] == 'e' {
			d.pos++
			return result, nil
		}

		switch selector := d.data[d.pos]; {
		case selector >= '0' && selector <= '9':
			// Byte-string key follows.
		case selector == 'i' || selector == 'l' || selector == 'd':
			return nil, d.errorf(CodeUnsupportedKeyType, "unsupported key type (selector %q)", selector)
		default:
			return nil, d.errorf(CodeUnknownSelector, "unknown type selector 0x%02X", selector)
		}

		keyOffset := d.pos
		rawKey, err := d.byteString()
		if err != nil {
			return nil, err
		}
		if d.textKeys && !utf8.Valid(rawKey) {
			return nil, &DecodeError{Code: CodeInvalidUTF8Key, Offset: keyOffset,
				Detail: fmt.Sprintf("%q is not a UTF-8 key", rawKey)}
		}
		key := string(rawKey)
		if _, dup := result[key]; dup {
			return nil, &DecodeError{Code: CodeDuplicateKey, Offset: keyOffset,
				Detail: fmt.Sprintf("duplicate key %q", key)}
		}

		if d.pos >= len(d.data) {
			break
		}
		value, err := d.value()
		if err != nil {
			return nil, err
		}
		result[key] = value
	}
	return nil, d.errorf(CodeMissingDictTerminator, "missing dict terminator")
}
