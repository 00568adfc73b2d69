// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

// Package torrent provides a typed, validated view over torrent
// metainfo dictionaries.
//
// A [Metainfo] wraps the generic dictionary produced by decoding a
// .torrent file. Declared fields (announce, creation date, comment,
// nodes, ...) are pulled out of the dictionary on load, run through
// their validation chain, and cached as typed values; whatever remains
// in [Backbone].Data is exactly the unknown data, preserved verbatim
// across load and save. Saving pushes the typed values back into the
// dictionary and re-encodes it.
//
// Field loading is lazy and order-sensitive: text fields resolve the
// record-wide "encoding" or "codepage" field before decoding their
// bytes, and a field consumed early that way is never reloaded later
// in the same bulk pass. Failed validation leaves the backing
// dictionary untouched.
//
// A Metainfo instance mutates its dictionary and field caches in
// place without synchronization; concurrent use of one instance must
// be serialized by the caller. Distinct instances are independent.
package torrent
