// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package torrent

import (
	"errors"
	"fmt"
	"os"

	"github.com/clot-foundation/clot/lib/bencode"
)

// Metainfo is the typed view over a .torrent metainfo dictionary. The
// declared fields cover the common top-level keys; everything else
// rides along in [Backbone].Data.
type Metainfo struct {
	*Backbone

	Info         *DictField
	Announce     *URLField
	AnnounceList *AnnounceListField
	CreationDate *TimestampField
	Comment      *StringField
	CreatedBy    *StringField
	Encoding     *StringField
	Publisher    *StringField
	PublisherURL *URLField
	Nodes        *NodeListField
	URLList      *URLListField
	Private      *IntegerField
	Codepage     *IntegerField
}

// Option adjusts how a Metainfo is constructed.
type Option func(*options)

type options struct {
	lazy             bool
	fallbackEncoding string
	schemes          []string
}

// Lazy defers field loading to first access instead of validating the
// whole record up front.
func Lazy() Option {
	return func(o *options) { o.lazy = true }
}

// FallbackEncoding names the character set tried last when decoding
// text fields.
func FallbackEncoding(name string) Option {
	return func(o *options) { o.fallbackEncoding = name }
}

// Schemes replaces the allowed URL scheme set on every URL-bearing
// field (announce, announce-list, publisher-url, url-list).
func Schemes(schemes ...string) Option {
	return func(o *options) { o.schemes = schemes }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns an empty in-memory record.
func New(opts ...Option) *Metainfo {
	return newMetainfo(nil, buildOptions(opts))
}

func newMetainfo(data map[string]any, o options) *Metainfo {
	b := NewBackbone(data)
	if o.fallbackEncoding != "" {
		b.SetFallbackEncoding(o.fallbackEncoding)
	}

	m := &Metainfo{Backbone: b}
	m.Info = NewDictField(b, "info")
	m.Announce = NewURLField(b, "announce")
	m.AnnounceList = NewAnnounceListField(b, "announce-list")
	m.CreationDate = NewTimestampField(b, "creation date")
	m.Comment = NewStringField(b, "comment")
	m.CreatedBy = NewStringField(b, "created by")
	m.Encoding = NewStringField(b, "encoding").WithEncoding("ASCII")
	m.Publisher = NewStringField(b, "publisher")
	m.PublisherURL = NewURLField(b, "publisher-url")
	m.Nodes = NewNodeListField(b, "nodes")
	m.URLList = NewURLListField(b, "url-list")
	m.Private = NewIntegerField(b, "private").Min(0).Max(1)
	m.Codepage = NewIntegerField(b, "codepage").Min(1)

	if o.schemes != nil {
		m.Announce.Schemes(o.schemes...)
		m.AnnounceList.Schemes(o.schemes...)
		m.PublisherURL.Schemes(o.schemes...)
		m.URLList.Schemes(o.schemes...)
	}

	b.BindEncodingContext(m.Encoding, m.Codepage)
	return m
}

// Parse decodes raw metainfo bytes. The top-level value must be a
// dictionary. Unless the [Lazy] option is given, all declared fields
// are loaded and validated before Parse returns.
func Parse(raw []byte, opts ...Option) (*Metainfo, error) {
	o := buildOptions(opts)

	value, err := bencode.DecodeTextKeys(raw)
	if err != nil {
		return nil, err
	}
	dict, ok := value.(map[string]any)
	if !ok {
		return nil, errors.New("expected top-level dictionary")
	}

	m := newMetainfo(dict, o)
	if !o.lazy {
		if err := m.LoadFields(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Load reads and parses a .torrent file. The record remembers the
// path, so [Backbone.Save] writes back to the same file.
func Load(path string, opts ...Option) (*Metainfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(raw, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.path = path
	return m, nil
}
