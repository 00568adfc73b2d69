// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package torrent

import (
	"fmt"
	"strings"
)

// Converter identities for list adoption. A [List] built by a field
// carries the token of the converter that validated it; a field
// presented with a list carrying its own token adopts it without
// re-validating the elements. Fields with a customized scheme set get
// a fresh token, so their lists never cross-pollinate.
var (
	urlListToken      = &convToken{"url-list"}
	nodeListToken     = &convToken{"node-list"}
	announceListToken = &convToken{"announce-list"}
)

func urlConv(key string, schemes []string) Conv[string] {
	return func(item any) (string, bool, error) {
		text, err := textValue(key, item)
		if err != nil {
			return "", false, err
		}
		return checkURL(key, text, schemes)
	}
}

// URLListField holds zero or more URLs. The stored form collapses: an
// empty list deletes the key, a single URL stores as a bare string,
// more store as a list.
type URLListField struct {
	attr
	schemes []string
	token   *convToken
	value   *List[string]
}

func NewURLListField(b *Backbone, key string) *URLListField {
	f := &URLListField{
		attr:    attr{backbone: b, key: key},
		schemes: defaultSchemes,
		token:   urlListToken,
	}
	b.register(f)
	return f
}

// Schemes replaces the allowed scheme set. Lists built under a custom
// set are only adopted by fields sharing the same set.
func (f *URLListField) Schemes(schemes ...string) *URLListField {
	f.schemes = schemes
	f.token = &convToken{"url-list:" + strings.Join(schemes, ",")}
	return f
}

func (f *URLListField) build(items ...any) (*List[string], error) {
	return newTokenList(urlConv(f.key, f.schemes), f.token, items...)
}

func (f *URLListField) load() error {
	raw, ok := f.backbone.Data[f.key]
	if !ok {
		f.loaded = true
		return nil
	}

	var items []any
	switch value := raw.(type) {
	case []byte:
		// A bare URL string stands in for a one-element list.
		items = []any{value}
	case []any:
		items = value
	default:
		return fmt.Errorf("%s: expected %v to be a URL or a list of URLs", f.key, raw)
	}

	list, err := f.build(items...)
	if err != nil {
		return err
	}
	f.value = list
	f.consume()
	return nil
}

func (f *URLListField) Get() (*List[string], bool, error) {
	if !f.loaded {
		if err := f.load(); err != nil {
			return nil, false, err
		}
	}
	return f.value, f.present, nil
}

// Set accepts a single URL, a slice of URLs, or a [List] built by a
// field with the same element semantics (adopted as-is).
func (f *URLListField) Set(value any) error {
	var list *List[string]
	switch v := value.(type) {
	case *List[string]:
		if v.token == f.token {
			list = v
			break
		}
		rebuilt, err := f.build(anySlice(v.Items())...)
		if err != nil {
			return err
		}
		list = rebuilt
	case string:
		built, err := f.build(v)
		if err != nil {
			return err
		}
		list = built
	case []string:
		built, err := f.build(anySlice(v)...)
		if err != nil {
			return err
		}
		list = built
	case []any:
		built, err := f.build(v...)
		if err != nil {
			return err
		}
		list = built
	default:
		return fmt.Errorf("%s: expected %v to be a URL or a list of URLs", f.key, value)
	}
	f.value = list
	f.consume()
	return nil
}

func (f *URLListField) Clear() {
	f.value = nil
	f.consumeAbsent()
}

func (f *URLListField) save() {
	if !f.loaded {
		return
	}
	if !f.present || f.value.Len() == 0 {
		delete(f.backbone.Data, f.key)
		return
	}
	if f.value.Len() == 1 {
		f.backbone.Data[f.key] = f.value.At(0)
		return
	}
	f.backbone.Data[f.key] = f.value.Items()
}

// NodeListField holds DHT bootstrap nodes. Stored as [host, port]
// pairs, surfaced as "host:port" text.
type NodeListField struct {
	attr
	value *List[string]
}

func NewNodeListField(b *Backbone, key string) *NodeListField {
	f := &NodeListField{attr: attr{backbone: b, key: key}}
	b.register(f)
	return f
}

// nodeConv accepts both wire-form pairs and "host:port" text, so the
// same converter serves loading and assignment.
func nodeConv(key string) Conv[string] {
	return func(item any) (string, bool, error) {
		if text, ok := item.(string); ok {
			return checkHostPort(key, text)
		}
		return checkNodePair(key, item)
	}
}

func (f *NodeListField) build(items ...any) (*List[string], error) {
	return newTokenList(nodeConv(f.key), nodeListToken, items...)
}

func (f *NodeListField) load() error {
	raw, ok := f.backbone.Data[f.key]
	if !ok {
		f.loaded = true
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("%s: expected %v to be a list of [host, port] pairs", f.key, raw)
	}
	list, err := f.build(items...)
	if err != nil {
		return err
	}
	f.value = list
	f.consume()
	return nil
}

func (f *NodeListField) Get() (*List[string], bool, error) {
	if !f.loaded {
		if err := f.load(); err != nil {
			return nil, false, err
		}
	}
	return f.value, f.present, nil
}

// Set accepts "host:port" strings, [host, port] pairs, or a [List]
// built by a node list field (adopted as-is).
func (f *NodeListField) Set(value any) error {
	var list *List[string]
	switch v := value.(type) {
	case *List[string]:
		if v.token == nodeListToken {
			list = v
			break
		}
		rebuilt, err := f.build(anySlice(v.Items())...)
		if err != nil {
			return err
		}
		list = rebuilt
	case []string:
		built, err := f.build(anySlice(v)...)
		if err != nil {
			return err
		}
		list = built
	case []any:
		built, err := f.build(v...)
		if err != nil {
			return err
		}
		list = built
	default:
		return fmt.Errorf("%s: expected %v to be a list of nodes", f.key, value)
	}
	f.value = list
	f.consume()
	return nil
}

func (f *NodeListField) Clear() {
	f.value = nil
	f.consumeAbsent()
}

func (f *NodeListField) save() {
	if !f.loaded {
		return
	}
	if !f.present || f.value.Len() == 0 {
		delete(f.backbone.Data, f.key)
		return
	}
	pairs := make([]any, 0, f.value.Len())
	for _, node := range f.value.Items() {
		host, port := splitHostPort(node)
		pairs = append(pairs, []any{host, port})
	}
	f.backbone.Data[f.key] = pairs
}

// AnnounceListField holds tracker tiers: a list of tiers, each tier a
// list of URLs tried in order.
type AnnounceListField struct {
	attr
	schemes   []string
	tierToken *convToken
	value     *List[*List[string]]
}

func NewAnnounceListField(b *Backbone, key string) *AnnounceListField {
	f := &AnnounceListField{
		attr:      attr{backbone: b, key: key},
		schemes:   defaultSchemes,
		tierToken: urlListToken,
	}
	b.register(f)
	return f
}

// Schemes replaces the allowed scheme set for every tier. Tiers built
// under a custom set carry their own token and are never adopted by
// URL list fields with a different set.
func (f *AnnounceListField) Schemes(schemes ...string) *AnnounceListField {
	f.schemes = schemes
	f.tierToken = &convToken{"url-list:" + strings.Join(schemes, ",")}
	return f
}

func (f *AnnounceListField) tierConv() Conv[*List[string]] {
	urls := urlConv(f.key, f.schemes)
	return func(item any) (*List[string], bool, error) {
		var items []any
		switch v := item.(type) {
		case *List[string]:
			items = anySlice(v.Items())
		case []string:
			items = anySlice(v)
		case []any:
			items = v
		default:
			return nil, false, fmt.Errorf("%s: expected %v to be a tier of URLs", f.key, item)
		}
		tier, err := newTokenList(urls, f.tierToken, items...)
		if err != nil {
			return nil, false, err
		}
		if tier.Len() == 0 {
			// Tiers that validate down to nothing vanish.
			return nil, false, nil
		}
		return tier, true, nil
	}
}

func (f *AnnounceListField) build(items ...any) (*List[*List[string]], error) {
	return newTokenList(f.tierConv(), announceListToken, items...)
}

func (f *AnnounceListField) load() error {
	raw, ok := f.backbone.Data[f.key]
	if !ok {
		f.loaded = true
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("%s: expected %v to be a list of tiers", f.key, raw)
	}
	list, err := f.build(items...)
	if err != nil {
		return err
	}
	f.value = list
	f.consume()
	return nil
}

func (f *AnnounceListField) Get() (*List[*List[string]], bool, error) {
	if !f.loaded {
		if err := f.load(); err != nil {
			return nil, false, err
		}
	}
	return f.value, f.present, nil
}

// Set accepts a slice of tiers, where each tier is a slice of URLs or
// a URL [List], or a tier [List] built by an announce list field.
func (f *AnnounceListField) Set(value any) error {
	var list *List[*List[string]]
	switch v := value.(type) {
	case *List[*List[string]]:
		if v.token == announceListToken {
			list = v
			break
		}
		rebuilt, err := f.build(anySlice(v.Items())...)
		if err != nil {
			return err
		}
		list = rebuilt
	case []any:
		built, err := f.build(v...)
		if err != nil {
			return err
		}
		list = built
	case [][]string:
		items := make([]any, len(v))
		for i, tier := range v {
			items[i] = tier
		}
		built, err := f.build(items...)
		if err != nil {
			return err
		}
		list = built
	default:
		return fmt.Errorf("%s: expected %v to be a list of tiers", f.key, value)
	}
	f.value = list
	f.consume()
	return nil
}

func (f *AnnounceListField) Clear() {
	f.value = nil
	f.consumeAbsent()
}

func (f *AnnounceListField) save() {
	if !f.loaded {
		return
	}
	if !f.present || f.value.Len() == 0 {
		delete(f.backbone.Data, f.key)
		return
	}
	tiers := make([]any, 0, f.value.Len())
	for _, tier := range f.value.Items() {
		tiers = append(tiers, tier.Items())
	}
	f.backbone.Data[f.key] = tiers
}

// anySlice widens a typed slice for element-wise conversion.
func anySlice[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
