// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

// Package bencode implements the BitTorrent metainfo wire format.
//
// Bencoding is a canonical, self-delimiting binary encoding with four
// value kinds: byte strings (<length>:<bytes>), integers (i<decimal>e),
// lists (l...e), and dictionaries (d...e) whose byte-string keys are
// emitted in ascending byte order. The codec here is strict about
// canonical form on both sides: the decoder rejects redundant digits,
// signs, whitespace, unsorted input is tolerated but duplicate keys are
// not, and the encoder always produces the unique canonical byte
// sequence for a value. Same logical data always produces identical
// bytes.
//
// Decoded values use the closed Go universe []byte, int64 (overflowing
// to uint64 for values above the signed range), []any, and
// map[string]any. Dictionary keys are Go strings holding the raw key
// bytes; [DecodeTextKeys] additionally requires every key to be valid
// UTF-8, which is what the torrent field layer relies on to look
// fields up by name.
//
// For buffer-oriented operations:
//
//	value, err := bencode.Decode(data)
//	data, err := bencode.Encode(value)
//
// For streaming the encoding to a sink, or consuming it chunk by
// chunk:
//
//	err := bencode.EncodeTo(w, value)
//	for chunk, err := range bencode.IterEncode(value) { ... }
//
// Both entry points are pure functions over in-memory data and are
// safe to call concurrently on independent inputs.
package bencode
