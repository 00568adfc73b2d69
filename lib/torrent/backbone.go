// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package torrent

import (
	"errors"
	"fmt"
	"os"

	"github.com/clot-foundation/clot/lib/bencode"
)

// Backbone is a generic record over a decoded dictionary. Concrete
// record types (such as [Metainfo]) declare typed fields against it;
// whatever no field claims stays in Data untouched, which is what
// makes load-edit-save lossless for unknown keys.
type Backbone struct {
	// Data is the backing dictionary. Keys consumed by loaded fields
	// are absent here until the next save pushes them back.
	Data map[string]any

	path             string
	fallbackEncoding string
	fields           []fieldRef
	encodingField    *StringField
	codepageField    *IntegerField
}

// NewBackbone wraps a decoded dictionary. A nil dictionary starts an
// empty record.
func NewBackbone(data map[string]any) *Backbone {
	if data == nil {
		data = map[string]any{}
	}
	return &Backbone{Data: data}
}

func (b *Backbone) register(f fieldRef) {
	b.fields = append(b.fields, f)
}

// Path returns the file the record was loaded from or last saved to,
// or "" when the record has no file association.
func (b *Backbone) Path() string { return b.path }

// SetFallbackEncoding sets the character set tried last when decoding
// text fields, after the record's own encoding context and UTF-8.
func (b *Backbone) SetFallbackEncoding(name string) {
	b.fallbackEncoding = name
}

// BindEncodingContext nominates the fields that carry the record-wide
// text encoding. Either may be nil. Text fields without a fixed
// encoding consult these before falling back to UTF-8. The encoding
// field itself must be constructed with a fixed encoding; resolving it
// through the context it provides would recurse.
func (b *Backbone) BindEncodingContext(encoding *StringField, codepage *IntegerField) {
	b.encodingField = encoding
	b.codepageField = codepage
}

// LoadFields resets every declared field and loads them in declaration
// order. A field already loaded as a side effect of an earlier field's
// encoding-context resolution is not loaded again. The first failure
// aborts the pass; fields not yet reached stay unloaded and their raw
// keys stay in Data.
func (b *Backbone) LoadFields() error {
	for _, f := range b.fields {
		f.markUnloaded()
	}
	for _, f := range b.fields {
		if f.isLoaded() {
			continue
		}
		if err := f.load(); err != nil {
			return err
		}
	}
	return nil
}

// SaveFields pushes every loaded field's value back into Data. Fields
// never touched since the last load pass are left alone.
func (b *Backbone) SaveFields() {
	for _, f := range b.fields {
		f.save()
	}
}

// SaveAs encodes the record and writes it to path. Without overwrite
// the write is exclusive-create; an existing file surfaces an error
// satisfying errors.Is(err, fs.ErrExist). On success the record
// remembers path for later [Backbone.Save] calls.
func (b *Backbone) SaveAs(path string, overwrite bool) error {
	b.SaveFields()
	raw, err := bencode.Encode(b.Data)
	if err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	if _, err := file.Write(raw); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	b.path = path
	return nil
}

// Save rewrites the file the record came from.
func (b *Backbone) Save() error {
	if b.path == "" {
		return errors.New("expected a torrent loaded from file")
	}
	return b.SaveAs(b.path, true)
}

// Field returns the declared field bound to key, or nil. The caller
// type-asserts to the concrete field kind.
func (b *Backbone) Field(key string) any {
	for _, f := range b.fields {
		if f.Key() == key {
			return f
		}
	}
	return nil
}

// Keys returns the declared field keys in declaration order.
func (b *Backbone) Keys() []string {
	keys := make([]string, len(b.fields))
	for i, f := range b.fields {
		keys[i] = f.Key()
	}
	return keys
}

func (b *Backbone) String() string {
	return fmt.Sprintf("Backbone(%d fields, %d raw keys)", len(b.fields), len(b.Data))
}
