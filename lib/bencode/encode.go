// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"sort"
	"strconv"
	"time"
)

// Encode returns the canonical bencoding of v.
//
// The accepted value universe is closed: []byte and string encode as
// byte strings (strings by their UTF-8 bytes), bool as i0e/i1e, the
// integer kinds int, int64, uint, and uint64 as i<decimal>e, []any and
// []string as lists, and map[string]any as a dictionary with keys
// sorted ascending by byte value. time.Time encodes as its Unix epoch
// seconds, which is how a saved creation-date field is stored in the
// backing dictionary. Anything else fails with an [EncodeError].
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	err := encodeValue(func(chunk []byte) error {
		buf.Write(chunk)
		return nil
	}, v)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo writes the canonical bencoding of v to w incrementally,
// without materializing the whole encoding in memory.
func EncodeTo(w io.Writer, v any) error {
	return encodeValue(func(chunk []byte) error {
		_, err := w.Write(chunk)
		return err
	}, v)
}

// errStopIteration signals that the consumer of IterEncode stopped
// ranging early. It never escapes this package.
var errStopIteration = errors.New("bencode: iteration stopped")

// IterEncode yields the encoding of v as an ordered sequence of byte
// chunks (length digits, delimiters, payloads). On an unsupported
// value the sequence ends with a single non-nil error. Yielded chunks
// may alias the input value and are only valid until the next
// iteration step.
func IterEncode(v any) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		err := encodeValue(func(chunk []byte) error {
			if !yield(chunk, nil) {
				return errStopIteration
			}
			return nil
		}, v)
		if err != nil && !errors.Is(err, errStopIteration) {
			yield(nil, err)
		}
	}
}

var (
	chunkColon   = []byte(":")
	chunkIntOpen = []byte("i")
	chunkEnd     = []byte("e")
	chunkList    = []byte("l")
	chunkDict    = []byte("d")
)

// encodeValue is the exhaustive switch over the closed value
// universe. Every variant emits its parts through emit and any other
// type lands in the default arm.
func encodeValue(emit func([]byte) error, v any) error {
	switch value := v.(type) {
	case []byte:
		return encodeBytes(emit, value)
	case string:
		return encodeBytes(emit, []byte(value))
	case bool:
		digit := []byte("0")
		if value {
			digit = []byte("1")
		}
		return emitAll(emit, chunkIntOpen, digit, chunkEnd)
	case int:
		return encodeInt(emit, strconv.AppendInt(nil, int64(value), 10))
	case int64:
		return encodeInt(emit, strconv.AppendInt(nil, value, 10))
	case uint:
		return encodeInt(emit, strconv.AppendUint(nil, uint64(value), 10))
	case uint64:
		return encodeInt(emit, strconv.AppendUint(nil, value, 10))
	case time.Time:
		return encodeInt(emit, strconv.AppendInt(nil, value.Unix(), 10))
	case []any:
		if err := emit(chunkList); err != nil {
			return err
		}
		for _, item := range value {
			if err := encodeValue(emit, item); err != nil {
				return err
			}
		}
		return emit(chunkEnd)
	case []string:
		if err := emit(chunkList); err != nil {
			return err
		}
		for _, item := range value {
			if err := encodeBytes(emit, []byte(item)); err != nil {
				return err
			}
		}
		return emit(chunkEnd)
	case map[string]any:
		return encodeDict(emit, value)
	default:
		return &EncodeError{Detail: fmt.Sprintf("value of type %T cannot be encoded", v)}
	}
}

func encodeBytes(emit func([]byte) error, b []byte) error {
	if err := emitAll(emit, strconv.AppendInt(nil, int64(len(b)), 10), chunkColon); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	return emit(b)
}

func encodeInt(emit func([]byte) error, digits []byte) error {
	return emitAll(emit, chunkIntOpen, digits, chunkEnd)
}

func encodeDict(emit func([]byte) error, dict map[string]any) error {
	keys := make([]string, 0, len(dict))
	for key := range dict {
		keys = append(keys, key)
	}
	// Go string comparison is bytewise, which is exactly the
	// byte-lexicographic key order the wire format requires.
	sort.Strings(keys)

	if err := emit(chunkDict); err != nil {
		return err
	}
	for _, key := range keys {
		if err := encodeBytes(emit, []byte(key)); err != nil {
			return err
		}
		if err := encodeValue(emit, dict[key]); err != nil {
			return err
		}
	}
	return emit(chunkEnd)
}

func emitAll(emit func([]byte) error, chunks ...[]byte) error {
	for _, chunk := range chunks {
		if err := emit(chunk); err != nil {
			return err
		}
	}
	return nil
}
