// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package torrent

import (
	"fmt"
	"time"
)

// attr is the state shared by every field kind: the owning record, the
// dictionary key, and the load-state flags. A field starts unloaded;
// the first read (or an assignment) moves it to loaded, at which point
// present says whether the record has a value for the key.
type attr struct {
	backbone *Backbone
	key      string
	loaded   bool
	present  bool
}

// Key returns the dictionary key the field is bound to.
func (a *attr) Key() string { return a.key }

func (a *attr) isLoaded() bool { return a.loaded }

func (a *attr) markUnloaded() {
	a.loaded = false
	a.present = false
}

// consume marks the field loaded with a value and removes the raw key
// from the record. Called only after validation succeeded, so a failed
// load never disturbs the dictionary.
func (a *attr) consume() {
	a.loaded = true
	a.present = true
	delete(a.backbone.Data, a.key)
}

// consumeAbsent marks the field loaded without a value.
func (a *attr) consumeAbsent() {
	a.loaded = true
	a.present = false
	delete(a.backbone.Data, a.key)
}

// fieldRef is the per-field interface the record drives bulk loading
// and saving through.
type fieldRef interface {
	Key() string
	isLoaded() bool
	markUnloaded()
	load() error
	save()
}

// DictField holds a nested dictionary, such as the info dictionary.
// Its contents are not validated beyond the shape check.
type DictField struct {
	attr
	value map[string]any
}

func NewDictField(b *Backbone, key string) *DictField {
	f := &DictField{attr: attr{backbone: b, key: key}}
	b.register(f)
	return f
}

func (f *DictField) load() error {
	raw, ok := f.backbone.Data[f.key]
	if !ok {
		f.loaded = true
		return nil
	}
	dict, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("%s: expected %v to be a dictionary", f.key, raw)
	}
	f.value = dict
	f.consume()
	return nil
}

// Get returns the dictionary and whether the record has one. The first
// call loads and validates the raw value.
func (f *DictField) Get() (map[string]any, bool, error) {
	if !f.loaded {
		if err := f.load(); err != nil {
			return nil, false, err
		}
	}
	return f.value, f.present, nil
}

func (f *DictField) Set(value map[string]any) error {
	if value == nil {
		return fmt.Errorf("%s: expected a dictionary, got nil", f.key)
	}
	f.value = value
	f.consume()
	return nil
}

// Clear removes the value; on save the key is deleted.
func (f *DictField) Clear() {
	f.value = nil
	f.consumeAbsent()
}

func (f *DictField) save() {
	if !f.loaded {
		return
	}
	if f.present {
		f.backbone.Data[f.key] = f.value
	} else {
		delete(f.backbone.Data, f.key)
	}
}

// BytesField holds a raw byte string with no text interpretation.
type BytesField struct {
	attr
	nonEmpty bool
	value    []byte
}

func NewBytesField(b *Backbone, key string) *BytesField {
	f := &BytesField{attr: attr{backbone: b, key: key}}
	b.register(f)
	return f
}

// NonEmpty rejects empty or whitespace-only values.
func (f *BytesField) NonEmpty() *BytesField {
	f.nonEmpty = true
	return f
}

func (f *BytesField) check(value []byte) error {
	if f.nonEmpty {
		return checkNonEmptyBytes(f.key, value)
	}
	return nil
}

func (f *BytesField) load() error {
	raw, ok := f.backbone.Data[f.key]
	if !ok {
		f.loaded = true
		return nil
	}
	value, ok := raw.([]byte)
	if !ok {
		return fmt.Errorf("%s: expected %v to be a byte string", f.key, raw)
	}
	if err := f.check(value); err != nil {
		return err
	}
	f.value = value
	f.consume()
	return nil
}

func (f *BytesField) Get() ([]byte, bool, error) {
	if !f.loaded {
		if err := f.load(); err != nil {
			return nil, false, err
		}
	}
	return f.value, f.present, nil
}

func (f *BytesField) Set(value []byte) error {
	if err := f.check(value); err != nil {
		return err
	}
	f.value = value
	f.consume()
	return nil
}

func (f *BytesField) Clear() {
	f.value = nil
	f.consumeAbsent()
}

func (f *BytesField) save() {
	if !f.loaded {
		return
	}
	if f.present {
		f.backbone.Data[f.key] = f.value
	} else {
		delete(f.backbone.Data, f.key)
	}
}

// StringField holds text decoded from the stored byte string. Without
// a fixed encoding the record-wide encoding context applies; see
// [Backbone] for the candidate order.
type StringField struct {
	attr
	nonEmpty      bool
	fixedEncoding string
	value         string
}

func NewStringField(b *Backbone, key string) *StringField {
	f := &StringField{attr: attr{backbone: b, key: key}}
	b.register(f)
	return f
}

// NonEmpty rejects empty or whitespace-only values.
func (f *StringField) NonEmpty() *StringField {
	f.nonEmpty = true
	return f
}

// WithEncoding pins the field to one character set, bypassing the
// record-wide encoding context.
func (f *StringField) WithEncoding(name string) *StringField {
	f.fixedEncoding = name
	return f
}

func (f *StringField) check(value string) error {
	if f.nonEmpty {
		return checkNonEmptyString(f.key, value)
	}
	return nil
}

func (f *StringField) load() error {
	raw, ok := f.backbone.Data[f.key]
	if !ok {
		f.loaded = true
		return nil
	}
	data, ok := raw.([]byte)
	if !ok {
		return fmt.Errorf("%s: expected %v to be a byte string", f.key, raw)
	}
	value, err := f.backbone.decodeText(f.key, data, f.fixedEncoding)
	if err != nil {
		return err
	}
	if err := f.check(value); err != nil {
		return err
	}
	f.value = value
	f.consume()
	return nil
}

func (f *StringField) Get() (string, bool, error) {
	if !f.loaded {
		if err := f.load(); err != nil {
			return "", false, err
		}
	}
	return f.value, f.present, nil
}

// Set stores already-decoded text; only the terminal checks run.
func (f *StringField) Set(value string) error {
	if err := f.check(value); err != nil {
		return err
	}
	f.value = value
	f.consume()
	return nil
}

func (f *StringField) Clear() {
	f.value = ""
	f.consumeAbsent()
}

func (f *StringField) save() {
	if !f.loaded {
		return
	}
	if f.present {
		f.backbone.Data[f.key] = f.value
	} else {
		delete(f.backbone.Data, f.key)
	}
}

// IntegerField holds a signed integer with optional inclusive bounds.
type IntegerField struct {
	attr
	minValue *int64
	maxValue *int64
	value    int64
}

func NewIntegerField(b *Backbone, key string) *IntegerField {
	f := &IntegerField{attr: attr{backbone: b, key: key}}
	b.register(f)
	return f
}

// Min sets the inclusive lower bound.
func (f *IntegerField) Min(n int64) *IntegerField {
	f.minValue = &n
	return f
}

// Max sets the inclusive upper bound.
func (f *IntegerField) Max(n int64) *IntegerField {
	f.maxValue = &n
	return f
}

func (f *IntegerField) load() error {
	raw, ok := f.backbone.Data[f.key]
	if !ok {
		f.loaded = true
		return nil
	}
	value, err := intValue(f.key, raw)
	if err != nil {
		return err
	}
	if err := checkBounds(f.key, value, f.minValue, f.maxValue); err != nil {
		return err
	}
	f.value = value
	f.consume()
	return nil
}

func (f *IntegerField) Get() (int64, bool, error) {
	if !f.loaded {
		if err := f.load(); err != nil {
			return 0, false, err
		}
	}
	return f.value, f.present, nil
}

func (f *IntegerField) Set(value int64) error {
	if err := checkBounds(f.key, value, f.minValue, f.maxValue); err != nil {
		return err
	}
	f.value = value
	f.consume()
	return nil
}

func (f *IntegerField) Clear() {
	f.value = 0
	f.consumeAbsent()
}

func (f *IntegerField) save() {
	if !f.loaded {
		return
	}
	if f.present {
		f.backbone.Data[f.key] = f.value
	} else {
		delete(f.backbone.Data, f.key)
	}
}

// TimestampField holds an absolute timestamp stored as Unix epoch
// seconds. Loaded values are UTC.
type TimestampField struct {
	attr
	value time.Time
}

func NewTimestampField(b *Backbone, key string) *TimestampField {
	f := &TimestampField{attr: attr{backbone: b, key: key}}
	b.register(f)
	return f
}

func (f *TimestampField) load() error {
	raw, ok := f.backbone.Data[f.key]
	if !ok {
		f.loaded = true
		return nil
	}
	seconds, err := intValue(f.key, raw)
	if err != nil {
		return err
	}
	value, err := epochTime(f.key, seconds)
	if err != nil {
		return err
	}
	f.value = value
	f.consume()
	return nil
}

func (f *TimestampField) Get() (time.Time, bool, error) {
	if !f.loaded {
		if err := f.load(); err != nil {
			return time.Time{}, false, err
		}
	}
	return f.value, f.present, nil
}

// Set stores a timestamp. The zero time is the not-a-timestamp marker
// and is rejected.
func (f *TimestampField) Set(value time.Time) error {
	if value.IsZero() {
		return fmt.Errorf("%s: the zero time is not a valid timestamp", f.key)
	}
	if year := value.UTC().Year(); year < 1 || year > 9999 {
		return fmt.Errorf("%s: timestamp %v is out of range", f.key, value)
	}
	f.value = value
	f.consume()
	return nil
}

func (f *TimestampField) Clear() {
	f.value = time.Time{}
	f.consumeAbsent()
}

func (f *TimestampField) save() {
	if !f.loaded {
		return
	}
	if f.present {
		f.backbone.Data[f.key] = f.value
	} else {
		delete(f.backbone.Data, f.key)
	}
}

// URLField holds a single URL with an allowed-scheme set.
type URLField struct {
	attr
	schemes []string
	value   string
}

func NewURLField(b *Backbone, key string) *URLField {
	f := &URLField{attr: attr{backbone: b, key: key}, schemes: defaultSchemes}
	b.register(f)
	return f
}

// Schemes replaces the allowed scheme set.
func (f *URLField) Schemes(schemes ...string) *URLField {
	f.schemes = schemes
	return f
}

func (f *URLField) load() error {
	raw, ok := f.backbone.Data[f.key]
	if !ok {
		f.loaded = true
		return nil
	}
	text, err := textValue(f.key, raw)
	if err != nil {
		return err
	}
	value, present, err := checkURL(f.key, text, f.schemes)
	if err != nil {
		return err
	}
	if !present {
		// A whitespace-only URL is treated as absent.
		f.value = ""
		f.consumeAbsent()
		return nil
	}
	f.value = value
	f.consume()
	return nil
}

func (f *URLField) Get() (string, bool, error) {
	if !f.loaded {
		if err := f.load(); err != nil {
			return "", false, err
		}
	}
	return f.value, f.present, nil
}

func (f *URLField) Set(value string) error {
	trimmed, present, err := checkURL(f.key, value, f.schemes)
	if err != nil {
		return err
	}
	if !present {
		f.Clear()
		return nil
	}
	f.value = trimmed
	f.consume()
	return nil
}

func (f *URLField) Clear() {
	f.value = ""
	f.consumeAbsent()
}

func (f *URLField) save() {
	if !f.loaded {
		return
	}
	if f.present {
		f.backbone.Data[f.key] = f.value
	} else {
		delete(f.backbone.Data, f.key)
	}
}
