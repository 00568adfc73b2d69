// Copyright 2026 The Clot Authors
// SPDX-License-Identifier: Apache-2.0

package torrent

import "fmt"

// Conv converts and validates one raw element for a [List]. A false
// ok with a nil error means the element is silently skipped (the way
// a whitespace-only URL disappears from a URL list); an error rejects
// the whole mutation.
type Conv[T any] func(item any) (value T, ok bool, err error)

// convToken identifies the converter a List was built with. Fields
// hand their own token to lists they build, so that a list can later
// be adopted as-is by another field with the same element semantics
// instead of being re-validated element by element.
type convToken struct{ name string }

// List is an ordered sequence of typed elements where every insertion
// runs through the injected converter. It is the value type of the
// URL-list, node-list, and announce-list fields.
type List[T any] struct {
	conv  Conv[T]
	token *convToken
	items []T
}

// NewList builds a list by converting each item in order. Items the
// converter skips are dropped; the first conversion error aborts.
func NewList[T any](conv Conv[T], items ...any) (*List[T], error) {
	return newTokenList(conv, nil, items...)
}

func newTokenList[T any](conv Conv[T], token *convToken, items ...any) (*List[T], error) {
	list := &List[T]{conv: conv, token: token, items: make([]T, 0, len(items))}
	for _, item := range items {
		if item == nil {
			continue
		}
		value, ok, err := conv(item)
		if err != nil {
			return nil, err
		}
		if ok {
			list.items = append(list.items, value)
		}
	}
	return list, nil
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return len(l.items) }

// At returns the element at index i. Out-of-range indexes panic with
// the usual slice semantics.
func (l *List[T]) At(i int) T { return l.items[i] }

// Items returns a copy of the elements.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Append converts and appends items in order.
func (l *List[T]) Append(items ...any) error {
	for _, item := range items {
		value, ok, err := l.conv(item)
		if err != nil {
			return err
		}
		if ok {
			l.items = append(l.items, value)
		}
	}
	return nil
}

// Insert converts item and inserts it before index i.
func (l *List[T]) Insert(i int, item any) error {
	value, ok, err := l.conv(item)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	l.items = append(l.items, value)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = value
	return nil
}

// SetAt replaces the element at index i. The value is converted
// before the index is touched, so a conversion error leaves the list
// unchanged.
func (l *List[T]) SetAt(i int, item any) error {
	value, ok, err := l.conv(item)
	if err != nil {
		return err
	}
	if !ok {
		l.Delete(i)
		return nil
	}
	l.items[i] = value
	return nil
}

// Delete removes the element at index i.
func (l *List[T]) Delete(i int) {
	l.items = append(l.items[:i], l.items[i+1:]...)
}

func (l *List[T]) String() string {
	return fmt.Sprintf("List(%v)", l.items)
}
